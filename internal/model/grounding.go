package model

// GroundingMetadata is citation metadata returned alongside web-search
// grounded generations. It is passed through from the oracle verbatim;
// URI sanitization happens at the rendering boundary, not here.
type GroundingMetadata struct {
	GroundingChunks  []GroundingChunk `json:"groundingChunks,omitempty"`
	WebSearchQueries []string         `json:"webSearchQueries,omitempty"`
}

// GroundingChunk carries at most one of the two source variants.
type GroundingChunk struct {
	Web              *GroundingSource `json:"web,omitempty"`
	RetrievedContext *GroundingSource `json:"retrievedContext,omitempty"`
}

// GroundingSource is a single citation.
type GroundingSource struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// Source returns whichever variant the chunk carries, or nil.
func (c GroundingChunk) Source() *GroundingSource {
	if c.Web != nil {
		return c.Web
	}
	return c.RetrievedContext
}
