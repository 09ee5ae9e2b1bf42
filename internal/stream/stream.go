// Package stream maintains the websocket connections to the training
// backend. Each connection runs one reader goroutine that decodes frames
// and hands them to the arbiter; a dropped socket demotes its source and
// retries with a fixed backoff.
package stream

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/san-kum/roboviz/internal/arbiter"
	"github.com/san-kum/roboviz/internal/wire"
)

// redialDelay paces reconnect attempts after a failed dial or a dropped
// socket.
const redialDelay = 2 * time.Second

// Conn is one resilient websocket subscription.
type Conn struct {
	url       string
	onMessage func([]byte)
	onDown    func()

	mu  sync.Mutex
	ws  *websocket.Conn
	gen int // bumped on every (re)dial so stale readers go quiet
}

// NewPreview subscribes to the idle preview stream and feeds the arbiter.
func NewPreview(url string, arb *arbiter.Context) *Conn {
	return &Conn{
		url: url,
		onMessage: func(data []byte) {
			if st, ok := wire.DecodePreview(data); ok {
				arb.SetPreview(st)
			}
		},
		onDown: arb.ClearPreview,
	}
}

// NewTraining subscribes to the training stream. Telemetry flows on every
// frame; the spatial snapshot only when the backend embeds one.
func NewTraining(url string, arb *arbiter.Context) *Conn {
	return &Conn{
		url: url,
		onMessage: func(data []byte) {
			frame, ok := wire.DecodeTraining(data)
			if !ok {
				return
			}
			arb.SetTelemetry(arbiter.Telemetry{
				CompletedSteps: frame.CompletedSteps,
				TotalSteps:     frame.TotalSteps,
				Episode:        frame.Episode,
				Reward:         frame.Reward,
			})
			if frame.HasEnvState() {
				arb.SetTraining(frame.EnvState.State())
			}
		},
		onDown: arb.ClearTraining,
	}
}

// Run dials and reads until ctx is cancelled, redialing after errors. It
// blocks; callers start it in a goroutine.
func (c *Conn) Run(ctx context.Context) {
	for {
		if err := c.session(ctx); err != nil {
			c.onDown()
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(redialDelay):
		}
	}
}

// session dials once and pumps messages until the socket or ctx dies.
func (c *Conn) session(ctx context.Context) error {
	ws, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.ws = ws
	c.mu.Unlock()

	// Unblock ReadMessage when ctx is cancelled.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			ws.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			return err
		}
		c.mu.Lock()
		live := gen == c.gen
		c.mu.Unlock()
		if !live {
			// A newer session owns the callbacks; this reader is stale.
			return nil
		}
		c.onMessage(data)
	}
}

// Close tears down the current socket. A Run loop observing a cancelled
// ctx exits; otherwise it will redial.
func (c *Conn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	if c.ws != nil {
		c.ws.Close()
		c.ws = nil
	}
}
