package oracle

import (
	"context"
	"sync"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/DhaatuTheGamer/dealdigger-ai/internal/config"
)

// limiterBurst allows short bursts (a search plus a few verifications)
// without waiting on the per-minute budget.
const limiterBurst = 5

// Gate owns the lazily constructed oracle client and tracks whether the
// remote backend is reachable at all. Construction is re-attempted on
// every call while the credential is missing; a successful construction is
// cached and reused for the life of the process. There is no retry or
// backoff here: a missing credential is configuration, not weather.
type Gate struct {
	cfg *config.Config

	mu     sync.Mutex
	client Client
}

// NewGate creates a gate over the given configuration. The config is
// consulted on every construction attempt, so a caller that mutates it
// (tests, a future reconfigure endpoint) gets picked up on the next call.
func NewGate(cfg *config.Config) *Gate {
	return &Gate{cfg: cfg}
}

// Available reports whether an oracle client can be (or has been) built.
func (g *Gate) Available() bool {
	_, err := g.Client()
	return err == nil
}

// Client returns the shared oracle client, constructing it on first need.
// Returns ErrCredentialsMissing when the selected provider has no key.
func (g *Gate) Client() (Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client != nil {
		return g.client, nil
	}

	c, err := g.build()
	if err != nil {
		return nil, err
	}
	g.client = c
	return c, nil
}

func (g *Gate) build() (Client, error) {
	var inner Client
	switch g.cfg.Oracle.Provider {
	case "", "gemini":
		if g.cfg.Gemini.Key == "" {
			return nil, ErrCredentialsMissing
		}
		inner = NewGemini(g.cfg.Gemini)
	case "claude":
		if g.cfg.Anthropic.Key == "" {
			return nil, ErrCredentialsMissing
		}
		inner = NewClaude(g.cfg.Anthropic)
	default:
		return nil, eris.Errorf("oracle: unknown provider %q", g.cfg.Oracle.Provider)
	}

	rpm := g.cfg.Oracle.RequestsPerMinute
	if rpm <= 0 {
		return inner, nil
	}
	return &limitedClient{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(float64(rpm)/60.0), limiterBurst),
	}, nil
}

// limitedClient throttles oracle calls with a token bucket.
type limitedClient struct {
	inner   Client
	limiter *rate.Limiter
}

func (l *limitedClient) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "oracle: rate limit wait")
	}
	return l.inner.Generate(ctx, req)
}
