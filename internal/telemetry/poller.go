package telemetry

import (
	"context"
	"log"
	"time"

	"github.com/sentinel/sentinel-display/internal/history"
)

// PollInterval is the fixed telemetry cadence.
const PollInterval = 2 * time.Second

// Poller issues one synchronous metrics request per due tick and applies the
// result to the dashboard model. A failed tick is skipped entirely: no
// partial update, no retry before the next scheduled tick. Requests are
// single-flight because Poll runs synchronously on the main loop.
type Poller struct {
	client   *Client
	interval time.Duration

	active   bool
	lastPoll time.Time

	// Dashboard model, read by the renderer via the main loop.
	CPU           *history.Buffer
	RAM           *history.Buffer
	DiskPercent   float64
	UptimeSeconds uint32
	Timestamp     string
}

// NewPoller creates a Poller writing into the given history buffers.
func NewPoller(client *Client, cpu, ram *history.Buffer) *Poller {
	return &Poller{
		client:   client,
		interval: PollInterval,
		CPU:      cpu,
		RAM:      ram,
	}
}

// SetInterval overrides the poll cadence. Used by tests.
func (p *Poller) SetInterval(d time.Duration) { p.interval = d }

// Activate marks polling active, once, at dashboard entry. The first poll
// becomes due immediately.
func (p *Poller) Activate(now time.Time) {
	if p.active {
		return
	}
	p.active = true
	p.lastPoll = now.Add(-p.interval)
}

// Deactivate stops polling, e.g. after a reset back to portal mode.
func (p *Poller) Deactivate() { p.active = false }

// Active reports whether polling has been activated.
func (p *Poller) Active() bool { return p.active }

// Due reports whether the poll interval has elapsed since the last poll.
func (p *Poller) Due(now time.Time) bool {
	return p.active && now.Sub(p.lastPoll) >= p.interval
}

// Poll performs one synchronous metrics fetch and applies it. It returns
// true when the dashboard model changed and a redraw is needed. The tick is
// consumed either way, so a failure is not retried before the next interval.
func (p *Poller) Poll(ctx context.Context, now time.Time) bool {
	p.lastPoll = now

	sample, err := p.client.Fetch(ctx)
	if err != nil {
		log.Printf("telemetry: poll skipped: %v", err)
		return false
	}
	p.apply(sample)
	return true
}

// apply updates the dashboard model from a decoded sample. Percentages are
// clamped to [0,100] by the history buffers; disk is clamped here since it
// is stored as a bare scalar with no history.
func (p *Poller) apply(s Sample) {
	p.CPU.Append(s.CPUPercent)
	p.RAM.Append(s.RAMPercent)
	p.DiskPercent = history.Clamp(s.DiskPercent, 0, 100)
	p.UptimeSeconds = s.UptimeSeconds
	p.Timestamp = s.Timestamp
}
