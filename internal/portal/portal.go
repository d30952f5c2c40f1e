// Package portal implements the captive provisioning portal: a wildcard DNS
// responder plus an HTTP server exposing the configuration UI. Handlers run
// on the HTTP server's goroutines, so anything that changes connectivity
// state is queued as an Action and applied by the main loop.
package portal

import "github.com/sentinel/sentinel-display/internal/config"

// ActionKind identifies a mutation requested through the portal.
type ActionKind int

const (
	// ActionConnect asks the loop to attempt a station connection with the
	// just-saved credentials.
	ActionConnect ActionKind = iota
	// ActionReset asks the loop to force access-point mode. The config
	// store has already been cleared by the handler.
	ActionReset
)

func (k ActionKind) String() string {
	switch k {
	case ActionConnect:
		return "connect"
	case ActionReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Action is a portal request handed to the main loop.
type Action struct {
	Kind   ActionKind
	Config config.Config
}
