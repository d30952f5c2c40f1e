// Package connect owns the Wi-Fi mode state machine: access point versus
// station, bounded connection attempts, and fallback. This package performs
// no I/O beyond the Radio interface and never sleeps; time is always
// injected, so the state machine is testable without hardware or waiting.
package connect

import "time"

// State is the device connectivity mode.
type State int

const (
	// Idle is the boot state, before any mode has been selected.
	Idle State = iota
	// ApBroadcasting means the device hosts its own configuration network.
	ApBroadcasting
	// StaConnecting means a station association attempt is in progress.
	StaConnecting
	// StaConnected means the device joined a network and holds an address.
	StaConnected
	// StaFailed means the last attempt timed out; the radio has been
	// reverted to access-point mode and the portal is active again.
	StaFailed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case ApBroadcasting:
		return "AP_BROADCASTING"
	case StaConnecting:
		return "STA_CONNECTING"
	case StaConnected:
		return "STA_CONNECTED"
	case StaFailed:
		return "STA_FAILED"
	default:
		return "UNKNOWN"
	}
}

// Event reports a transition the main loop must react to.
type Event int

const (
	// EventNone means nothing changed this tick.
	EventNone Event = iota
	// EventEnteredAP fires when the hotspot comes up, at boot, after a
	// failed attempt, or after a reset.
	EventEnteredAP
	// EventConnected fires once per successful station attempt.
	EventConnected
	// EventFailed fires at most once per attempt, on timeout.
	EventFailed
)

// Attempt bounds: poll every 500ms, up to 60 polls (about 30 seconds).
const (
	PollInterval = 500 * time.Millisecond
	MaxPolls     = 60
)
