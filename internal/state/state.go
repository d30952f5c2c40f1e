// Package state provides a thread-safe snapshot of device state. The main
// loop writes it; the portal HTTP handlers read it. It exists because the
// HTTP server runs on its own goroutines while every transition still happens
// on the loop.
package state

import (
	"sync"
	"time"

	"github.com/sentinel/sentinel-display/internal/config"
	"github.com/sentinel/sentinel-display/internal/connect"
)

// Snapshot is a point-in-time view of device state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Connectivity connect.State
	StationIP    string
	APSSID       string
	APIP         string

	// Provisioning record summary for the status page. The password and
	// token are deliberately not carried here.
	Provisioned bool
	SSID        string
	ServerIP    string
	ServerPort  string

	StartTime time.Time
	Now       time.Time
}

// Connected reports whether the device holds a station address.
func (s Snapshot) Connected() bool {
	return s.Connectivity == connect.StaConnected
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable device state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time.
func NewTracker(startTime time.Time) *Tracker {
	return &Tracker{snap: Snapshot{StartTime: startTime}}
}

// SetConnectivity records the connectivity state and station address.
// Called from the main loop on every transition.
func (t *Tracker) SetConnectivity(s connect.State, stationIP string) {
	t.mu.Lock()
	t.snap.Connectivity = s
	t.snap.StationIP = stationIP
	t.mu.Unlock()
}

// SetAP records the announced portal network.
func (t *Tracker) SetAP(ssid, ip string) {
	t.mu.Lock()
	t.snap.APSSID = ssid
	t.snap.APIP = ip
	t.mu.Unlock()
}

// SetConfig records the provisioning summary shown on the status page.
func (t *Tracker) SetConfig(cfg config.Config, ok bool) {
	t.mu.Lock()
	t.snap.Provisioned = ok
	t.snap.SSID = cfg.SSID
	t.snap.ServerIP = cfg.ServerIP
	t.snap.ServerPort = cfg.ServerPort
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of device state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
