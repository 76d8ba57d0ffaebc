package viewstate

import (
	"sync"

	"github.com/skycast-app/skycast/internal/weather"
)

// Phase is the caller-visible fetch lifecycle.
type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseError   Phase = "error"
	PhaseReady   Phase = "ready"
)

// State is one authoritative snapshot of the view. Snapshot and
// Forecast are replaced together on success and left untouched on
// failure, so a failed search never clobbers what was on screen.
type State struct {
	Phase    Phase                    `json:"phase"`
	Reason   string                   `json:"reason,omitempty"`
	Snapshot *weather.Snapshot        `json:"snapshot,omitempty"`
	Forecast []weather.ForecastSample `json:"forecast,omitempty"`
	Units    weather.Units            `json:"units"`
	Seq      uint64                   `json:"seq"`
}

// Container holds the view state and arbitrates overlapping fetches.
// Begin tags each fetch with a monotonically increasing sequence
// number; a completion is applied only if it is the latest issued, so
// a slow stale response can never overwrite a newer one.
type Container struct {
	mu     sync.Mutex
	latest uint64
	state  State
}

func NewContainer() *Container {
	return &Container{
		state: State{
			Phase: PhaseLoading,
			Units: weather.DefaultUnits,
		},
	}
}

// Begin starts a new fetch: the phase drops to loading and the
// returned sequence number must accompany the matching Complete or
// Fail call.
func (c *Container) Begin(units weather.Units) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.latest++
	c.state.Phase = PhaseLoading
	c.state.Reason = ""
	c.state.Units = units
	c.state.Seq = c.latest
	return c.latest
}

// Complete applies a successful result. It reports false, leaving the
// state alone, when a newer fetch has been issued since seq.
func (c *Container) Complete(seq uint64, snapshot *weather.Snapshot, forecast []weather.ForecastSample) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.latest {
		return false
	}

	c.state.Phase = PhaseReady
	c.state.Reason = ""
	c.state.Snapshot = snapshot
	c.state.Forecast = forecast
	return true
}

// Fail records a failure reason. Stale failures are discarded the same
// way as stale successes. The previous snapshot is kept for the next
// successful fetch to replace.
func (c *Container) Fail(seq uint64, reason string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.latest {
		return false
	}

	c.state.Phase = PhaseError
	c.state.Reason = reason
	return true
}

// State returns a copy of the current state.
func (c *Container) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.state
	if s.Forecast != nil {
		forecast := make([]weather.ForecastSample, len(s.Forecast))
		copy(forecast, s.Forecast)
		s.Forecast = forecast
	}
	if s.Snapshot != nil {
		snapshot := *s.Snapshot
		s.Snapshot = &snapshot
	}
	return s
}
