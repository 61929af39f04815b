package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateContent(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantErr  string
		wantText string
	}{
		{
			name:   "success",
			status: http.StatusOK,
			body: `{
				"candidates": [{"content": {"role": "model", "parts": [{"text": "[{\"title\":\"A\"}]"}]}, "finishReason": "STOP"}],
				"usageMetadata": {"promptTokenCount": 12, "candidatesTokenCount": 8, "totalTokenCount": 20}
			}`,
			wantText: `[{"title":"A"}]`,
		},
		{
			name:   "multiple_parts_concatenated",
			status: http.StatusOK,
			body: `{
				"candidates": [{"content": {"parts": [{"text": "[{\"title\":"}, {"text": "\"A\"}]"}]}}]
			}`,
			wantText: `[{"title":"A"}]`,
		},
		{
			name:    "invalid_key",
			status:  http.StatusBadRequest,
			body:    `{"error": {"code": 400, "message": "API key not valid", "status": "INVALID_ARGUMENT"}}`,
			wantErr: "unexpected status 400",
		},
		{
			name:    "rate_limit",
			status:  http.StatusTooManyRequests,
			body:    `{"error": {"code": 429, "message": "quota exceeded"}}`,
			wantErr: "unexpected status 429",
		},
		{
			name:    "malformed_response",
			status:  http.StatusOK,
			body:    `{not json`,
			wantErr: "unmarshal response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/models/gemini-2.5-flash:generateContent", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient("test-key", WithBaseURL(srv.URL))

			resp, err := client.GenerateContent(context.Background(), GenerateContentRequest{
				Contents: []Content{{Role: "user", Parts: []Part{{Text: "Hi"}}}},
			})

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, resp)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, tt.wantText, resp.Text())
		})
	}
}

func TestGenerateContentGrounding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req GenerateContentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Tools, 1)
		assert.NotNil(t, req.Tools[0].GoogleSearch)
		assert.Nil(t, req.GenerationConfig)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [{
				"content": {"parts": [{"text": "grounded"}]},
				"groundingMetadata": {
					"groundingChunks": [
						{"web": {"uri": "https://example.com/deal", "title": "Example Deal"}},
						{"retrievedContext": {"uri": "https://cache.example.com", "title": "Cached"}}
					],
					"webSearchQueries": ["best laptop deals"]
				}
			}]
		}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	resp, err := client.GenerateContent(context.Background(), GenerateContentRequest{
		Contents: []Content{{Role: "user", Parts: []Part{{Text: "find deals"}}}},
		Tools:    []Tool{{GoogleSearch: &GoogleSearch{}}},
	})
	require.NoError(t, err)

	gm := resp.Candidates[0].GroundingMetadata
	require.NotNil(t, gm)
	require.Len(t, gm.GroundingChunks, 2)
	assert.Equal(t, "https://example.com/deal", gm.GroundingChunks[0].Web.URI)
	assert.Nil(t, gm.GroundingChunks[0].RetrievedContext)
	assert.Equal(t, "Cached", gm.GroundingChunks[1].RetrievedContext.Title)
	assert.Equal(t, []string{"best laptop deals"}, gm.WebSearchQueries)
}

func TestRequestModelOverridesDefault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-2.5-pro:generateContent", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "ok"}]}}]}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL), WithModel("gemini-2.5-flash"))
	_, err := client.GenerateContent(context.Background(), GenerateContentRequest{
		Model:    "gemini-2.5-pro",
		Contents: []Content{{Role: "user", Parts: []Part{{Text: "test"}}}},
	})
	require.NoError(t, err)
}

func TestResponseTextEmpty(t *testing.T) {
	var nilResp *GenerateContentResponse
	assert.Equal(t, "", nilResp.Text())
	assert.Equal(t, "", (&GenerateContentResponse{}).Text())
}
