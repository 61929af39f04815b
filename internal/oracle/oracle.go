// Package oracle abstracts the remote generative-AI backend. The rest of
// the application treats it as an opaque, occasionally unreliable
// request/response dependency: prompt in, raw text plus optional grounding
// metadata out.
package oracle

import (
	"context"
	"errors"

	"github.com/DhaatuTheGamer/dealdigger-ai/internal/model"
)

// ErrCredentialsMissing signals that no API key is configured for the
// selected provider. This is a configuration fact, not a transient
// condition; callers substitute deterministic placeholder data instead of
// retrying.
var ErrCredentialsMissing = errors.New("oracle: credentials missing")

// Mode selects how the oracle is asked to respond. The two modes are
// mutually exclusive by construction: a request carries exactly one.
type Mode int

const (
	// ModeStructured hints the backend to respond with pure JSON.
	ModeStructured Mode = iota
	// ModeGrounded engages web-search augmentation. Grounded responses are
	// not guaranteed to be pure JSON, so the structured hint is not sent.
	ModeGrounded
)

// Request is a single generation request.
type Request struct {
	System string
	Prompt string
	Mode   Mode
}

// Response carries the raw generated text and, for grounded requests,
// whatever citation metadata the backend returned.
type Response struct {
	Text      string
	Grounding *model.GroundingMetadata
}

// Client performs one generation round-trip.
type Client interface {
	Generate(ctx context.Context, req Request) (*Response, error)
}
