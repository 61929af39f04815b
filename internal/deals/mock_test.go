package deals

import (
	"context"

	"github.com/DhaatuTheGamer/dealdigger-ai/internal/oracle"
)

// fakeOracle is a scripted oracle client recording the last request.
type fakeOracle struct {
	resp    *oracle.Response
	err     error
	lastReq oracle.Request
	calls   int
}

func (f *fakeOracle) Generate(_ context.Context, req oracle.Request) (*oracle.Response, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

// fakeSource hands out a fixed client or a fixed construction error.
type fakeSource struct {
	client oracle.Client
	err    error
}

func (f *fakeSource) Client() (oracle.Client, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.client, nil
}
