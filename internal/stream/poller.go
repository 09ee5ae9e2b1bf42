package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/san-kum/roboviz/internal/arbiter"
)

// StatusPoller tracks the backend's training flag over plain HTTP. The
// websocket streams carry frames, but whether a run is in progress is a
// REST fact the backend exposes separately.
type StatusPoller struct {
	url      string
	interval time.Duration
	client   *http.Client
	arb      *arbiter.Context
}

type statusResponse struct {
	Active  bool   `json:"active"`
	Profile string `json:"profile"`
}

// NewStatusPoller polls url every interval and pushes the flag into the
// arbiter.
func NewStatusPoller(url string, interval time.Duration, arb *arbiter.Context) *StatusPoller {
	return &StatusPoller{
		url:      url,
		interval: interval,
		client:   &http.Client{Timeout: interval},
		arb:      arb,
	}
}

// Run polls until ctx is cancelled. An unreachable backend reads as
// "not training"; the arbiter then falls through to preview or local.
func (p *StatusPoller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *StatusPoller) poll(ctx context.Context) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return
	}
	resp, err := p.client.Do(req)
	if err != nil {
		p.arb.SetTrainingActive(false)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		p.arb.SetTrainingActive(false)
		return
	}
	var status statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return
	}
	p.arb.SetTrainingActive(status.Active)
	if status.Profile != "" {
		p.arb.SetProfile(status.Profile)
	}
}
