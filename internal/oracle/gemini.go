package oracle

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/DhaatuTheGamer/dealdigger-ai/internal/config"
	"github.com/DhaatuTheGamer/dealdigger-ai/internal/model"
	"github.com/DhaatuTheGamer/dealdigger-ai/pkg/gemini"
)

// geminiOracle adapts the Gemini API client to the Client interface.
type geminiOracle struct {
	client gemini.Client
}

// NewGemini builds a Gemini-backed oracle from config.
func NewGemini(cfg config.GeminiConfig) Client {
	opts := []gemini.Option{}
	if cfg.BaseURL != "" {
		opts = append(opts, gemini.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Model != "" {
		opts = append(opts, gemini.WithModel(cfg.Model))
	}
	return &geminiOracle{client: gemini.NewClient(cfg.Key, opts...)}
}

func (o *geminiOracle) Generate(ctx context.Context, req Request) (*Response, error) {
	gr := gemini.GenerateContentRequest{
		Contents: []gemini.Content{
			{Role: "user", Parts: []gemini.Part{{Text: req.Prompt}}},
		},
	}
	if req.System != "" {
		gr.SystemInstruction = &gemini.Content{Parts: []gemini.Part{{Text: req.System}}}
	}

	switch req.Mode {
	case ModeGrounded:
		gr.Tools = []gemini.Tool{{GoogleSearch: &gemini.GoogleSearch{}}}
	default:
		gr.GenerationConfig = &gemini.GenerationConfig{ResponseMIMEType: "application/json"}
	}

	resp, err := o.client.GenerateContent(ctx, gr)
	if err != nil {
		return nil, eris.Wrap(err, "oracle: gemini generate")
	}

	out := &Response{Text: resp.Text()}
	if len(resp.Candidates) > 0 && resp.Candidates[0].GroundingMetadata != nil {
		out.Grounding = convertGrounding(resp.Candidates[0].GroundingMetadata)
	}
	return out, nil
}

// convertGrounding maps the wire-level grounding metadata into the domain
// type, preserving it verbatim.
func convertGrounding(gm *gemini.GroundingMetadata) *model.GroundingMetadata {
	out := &model.GroundingMetadata{
		WebSearchQueries: gm.WebSearchQueries,
	}
	for _, chunk := range gm.GroundingChunks {
		var c model.GroundingChunk
		if chunk.Web != nil {
			c.Web = &model.GroundingSource{URI: chunk.Web.URI, Title: chunk.Web.Title}
		}
		if chunk.RetrievedContext != nil {
			c.RetrievedContext = &model.GroundingSource{
				URI:   chunk.RetrievedContext.URI,
				Title: chunk.RetrievedContext.Title,
			}
		}
		out.GroundingChunks = append(out.GroundingChunks, c)
	}
	return out
}
