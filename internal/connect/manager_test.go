package connect

import (
	"testing"
	"time"

	"github.com/sentinel/sentinel-display/internal/wifi"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

// runAttempt drives Tick at the poll cadence until an event fires or the
// bound is well exceeded, returning the event and the number of polls taken.
func runAttempt(t *testing.T, m *Manager) (Event, int) {
	t.Helper()
	now := t0
	for i := 0; i < MaxPolls*2+2; i++ {
		now = now.Add(PollInterval)
		if ev := m.Tick(now); ev != EventNone {
			return ev, i + 1
		}
	}
	return EventNone, 0
}

func TestStartHotspot(t *testing.T) {
	radio := wifi.NewFakeRadio()
	m := NewManager(radio, "Sentinel")

	ev, err := m.StartHotspot()
	if err != nil {
		t.Fatalf("StartHotspot: %v", err)
	}
	if ev != EventEnteredAP {
		t.Errorf("event: got %v, want EventEnteredAP", ev)
	}
	if m.State() != ApBroadcasting {
		t.Errorf("state: got %v, want ApBroadcasting", m.State())
	}
	if m.APIP() == "" {
		t.Error("expected AP address to be recorded")
	}
	if len(radio.HotspotSSIDs) != 1 || radio.HotspotSSIDs[0] != "Sentinel" {
		t.Errorf("hotspot announced as %v, want [Sentinel]", radio.HotspotSSIDs)
	}
	if !m.PortalActive() {
		t.Error("portal should be active in ApBroadcasting")
	}
}

func TestConnectSucceeds(t *testing.T) {
	radio := wifi.NewFakeRadio()
	radio.ConnectAfterPolls = 3
	m := NewManager(radio, "Sentinel")

	if err := m.BeginConnect("Home", "secret", t0); err != nil {
		t.Fatalf("BeginConnect: %v", err)
	}
	if m.State() != StaConnecting {
		t.Fatalf("state: got %v, want StaConnecting", m.State())
	}
	if radio.StationSSID != "Home" || radio.StationPass != "secret" {
		t.Errorf("radio got %q/%q, want Home/secret", radio.StationSSID, radio.StationPass)
	}

	ev, _ := runAttempt(t, m)
	if ev != EventConnected {
		t.Fatalf("event: got %v, want EventConnected", ev)
	}
	if m.State() != StaConnected {
		t.Errorf("state: got %v, want StaConnected", m.State())
	}
	if m.StationIP() == "" {
		t.Error("expected station address to be recorded")
	}
	if m.PortalActive() {
		t.Error("portal must not be active while StaConnected")
	}
}

func TestConnectTimesOutExactlyOnce(t *testing.T) {
	radio := wifi.NewFakeRadio()
	radio.ConnectAfterPolls = -1 // never associates
	m := NewManager(radio, "Sentinel")

	if err := m.BeginConnect("Home", "wrong", t0); err != nil {
		t.Fatalf("BeginConnect: %v", err)
	}

	now := t0
	failures := 0
	for i := 0; i < MaxPolls*3; i++ {
		now = now.Add(PollInterval)
		if ev := m.Tick(now); ev == EventFailed {
			failures++
		}
	}
	if failures != 1 {
		t.Errorf("expected exactly 1 EventFailed per attempt, got %d", failures)
	}
	if m.State() != StaFailed {
		t.Errorf("state: got %v, want StaFailed", m.State())
	}
	if !m.PortalActive() {
		t.Error("portal should be active after a failed attempt")
	}
	// Fallback must have re-announced the portal network.
	if len(radio.HotspotSSIDs) != 1 || radio.HotspotSSIDs[0] != "Sentinel" {
		t.Errorf("fallback hotspot: got %v, want [Sentinel]", radio.HotspotSSIDs)
	}
	if radio.StatusPolls != MaxPolls {
		t.Errorf("radio polled %d times, want %d", radio.StatusPolls, MaxPolls)
	}
}

func TestTickRespectsPollInterval(t *testing.T) {
	radio := wifi.NewFakeRadio()
	radio.ConnectAfterPolls = -1
	m := NewManager(radio, "Sentinel")

	if err := m.BeginConnect("Home", "", t0); err != nil {
		t.Fatal(err)
	}

	// Ticking faster than the poll interval must not consume attempts.
	now := t0
	for i := 0; i < 100; i++ {
		now = now.Add(10 * time.Millisecond)
		m.Tick(now)
	}
	if radio.StatusPolls > 2 {
		t.Errorf("expected at most 2 status polls in ~1s, got %d", radio.StatusPolls)
	}
}

func TestEmptyPasswordAttemptsOpenNetwork(t *testing.T) {
	radio := wifi.NewFakeRadio()
	m := NewManager(radio, "Sentinel")

	if err := m.BeginConnect("OpenNet", "", t0); err != nil {
		t.Fatalf("BeginConnect with empty password: %v", err)
	}
	if radio.StationSSID != "OpenNet" || radio.StationPass != "" {
		t.Errorf("radio got %q/%q, want OpenNet with empty password", radio.StationSSID, radio.StationPass)
	}
}

func TestBeginConnectRejectsEmptySSID(t *testing.T) {
	m := NewManager(wifi.NewFakeRadio(), "Sentinel")
	if err := m.BeginConnect("", "pw", t0); err == nil {
		t.Error("expected error for empty SSID")
	}
}

func TestResetFromAnyState(t *testing.T) {
	states := []func(m *Manager, radio *wifi.FakeRadio){
		func(m *Manager, _ *wifi.FakeRadio) {}, // Idle
		func(m *Manager, _ *wifi.FakeRadio) { m.StartHotspot() },
		func(m *Manager, _ *wifi.FakeRadio) { m.BeginConnect("Home", "pw", t0) },
		func(m *Manager, radio *wifi.FakeRadio) { // StaConnected
			radio.ConnectAfterPolls = 0
			m.BeginConnect("Home", "pw", t0)
			m.Tick(t0.Add(PollInterval))
		},
		func(m *Manager, radio *wifi.FakeRadio) { // StaFailed
			radio.ConnectAfterPolls = -1
			m.BeginConnect("Home", "pw", t0)
			now := t0
			for i := 0; i < MaxPolls+1; i++ {
				now = now.Add(PollInterval)
				m.Tick(now)
			}
		},
	}

	for i, setup := range states {
		radio := wifi.NewFakeRadio()
		m := NewManager(radio, "Sentinel")
		setup(m, radio)

		ev, err := m.Reset()
		if err != nil {
			t.Fatalf("case %d: Reset: %v", i, err)
		}
		if ev != EventEnteredAP {
			t.Errorf("case %d: event: got %v, want EventEnteredAP", i, ev)
		}
		if m.State() != ApBroadcasting {
			t.Errorf("case %d: state after Reset: got %v, want ApBroadcasting", i, m.State())
		}
		if m.StationIP() != "" {
			t.Errorf("case %d: station IP should be cleared on Reset", i)
		}
	}
}

func TestStateStrings(t *testing.T) {
	want := map[State]string{
		Idle:           "IDLE",
		ApBroadcasting: "AP_BROADCASTING",
		StaConnecting:  "STA_CONNECTING",
		StaConnected:   "STA_CONNECTED",
		StaFailed:      "STA_FAILED",
	}
	for s, str := range want {
		if s.String() != str {
			t.Errorf("State(%d).String() = %q, want %q", s, s.String(), str)
		}
	}
}
