package connect

import (
	"fmt"
	"log"
	"time"

	"github.com/sentinel/sentinel-display/internal/wifi"
)

// Manager drives the connectivity state machine over a Radio. It is owned by
// the main loop and must not be shared across goroutines.
type Manager struct {
	radio  wifi.Radio
	apSSID string

	state     State
	apIP      string
	stationIP string

	// connection attempt bookkeeping
	polls    int
	nextPoll time.Time
}

// NewManager creates a Manager in the Idle state. apSSID is the fixed name
// the portal network is announced under.
func NewManager(radio wifi.Radio, apSSID string) *Manager {
	return &Manager{radio: radio, apSSID: apSSID}
}

// State returns the current connectivity state.
func (m *Manager) State() State { return m.state }

// StationIP returns the station address, valid once StaConnected.
func (m *Manager) StationIP() string { return m.stationIP }

// APIP returns the access-point address, valid while the portal is active.
func (m *Manager) APIP() string { return m.apIP }

// APSSID returns the fixed portal network name.
func (m *Manager) APSSID() string { return m.apSSID }

// PortalActive reports whether the captive portal should be serving. The
// portal runs both in the plain access-point state and after a failed
// attempt, since a failed attempt reverts the radio to access-point mode.
func (m *Manager) PortalActive() bool {
	return m.state == ApBroadcasting || m.state == StaFailed
}

// StartHotspot announces the portal network and enters ApBroadcasting.
func (m *Manager) StartHotspot() (Event, error) {
	ip, err := m.radio.StartHotspot(m.apSSID)
	if err != nil {
		return EventNone, fmt.Errorf("start hotspot: %w", err)
	}
	m.state = ApBroadcasting
	m.apIP = ip
	m.stationIP = ""
	log.Printf("connect: portal network %q announced at %s", m.apSSID, ip)
	return EventEnteredAP, nil
}

// BeginConnect starts a bounded station association attempt. An empty
// password is accepted and attempts open-network association. The attempt's
// outcome is delivered by Tick.
func (m *Manager) BeginConnect(ssid, password string, now time.Time) error {
	if ssid == "" {
		return fmt.Errorf("begin connect: empty SSID")
	}
	if err := m.radio.StartStation(ssid, password); err != nil {
		return fmt.Errorf("begin connect: %w", err)
	}
	m.state = StaConnecting
	m.polls = 0
	m.nextPoll = now.Add(PollInterval)
	log.Printf("connect: attempting station connection to %q", ssid)
	return nil
}

// Tick advances an in-flight attempt. While StaConnecting it polls the radio
// at most once per PollInterval; after MaxPolls without an address the
// attempt fails exactly once, reverting the radio to the portal network.
// Outside StaConnecting, Tick is a no-op.
func (m *Manager) Tick(now time.Time) Event {
	if m.state != StaConnecting || now.Before(m.nextPoll) {
		return EventNone
	}
	m.nextPoll = now.Add(PollInterval)
	m.polls++

	connected, ip, err := m.radio.StationStatus()
	if err != nil {
		log.Printf("connect: station status: %v", err)
	}
	if connected {
		m.state = StaConnected
		m.stationIP = ip
		log.Printf("connect: station connected, address %s", ip)
		return EventConnected
	}

	if m.polls >= MaxPolls {
		log.Printf("connect: attempt timed out after %d polls, reverting to portal", m.polls)
		return m.fail()
	}
	return EventNone
}

// fail reverts to access-point mode after a timed-out attempt.
func (m *Manager) fail() Event {
	ip, err := m.radio.StartHotspot(m.apSSID)
	if err != nil {
		// The radio is in an unknown mode; stay in StaFailed so the next
		// reset or save retries the hotspot.
		log.Printf("connect: hotspot fallback: %v", err)
	} else {
		m.apIP = ip
	}
	m.state = StaFailed
	m.stationIP = ""
	return EventFailed
}

// Reset forces the device back to ApBroadcasting with no connection attempt.
// Deliverable from any state. The caller clears the config store.
func (m *Manager) Reset() (Event, error) {
	return m.StartHotspot()
}
