package state

import (
	"testing"
	"time"

	"github.com/sentinel/sentinel-display/internal/config"
	"github.com/sentinel/sentinel-display/internal/connect"
)

func TestTrackerSnapshot(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tr := NewTracker(start)

	tr.SetAP("Sentinel", "10.42.0.1")
	tr.SetConnectivity(connect.StaConnected, "192.168.1.50")
	tr.SetConfig(config.Config{
		SSID:       "Home",
		Password:   "secret",
		ServerIP:   "10.0.0.5",
		ServerPort: "12345",
		Auth:       "tok1",
	}, true)

	snap := tr.Snapshot()
	if snap.Connectivity != connect.StaConnected || !snap.Connected() {
		t.Errorf("connectivity: got %v", snap.Connectivity)
	}
	if snap.StationIP != "192.168.1.50" {
		t.Errorf("station IP: got %q", snap.StationIP)
	}
	if snap.APSSID != "Sentinel" || snap.APIP != "10.42.0.1" {
		t.Errorf("AP: got %q %q", snap.APSSID, snap.APIP)
	}
	if !snap.Provisioned || snap.SSID != "Home" || snap.ServerIP != "10.0.0.5" || snap.ServerPort != "12345" {
		t.Errorf("config summary: got %+v", snap)
	}
	if !snap.StartTime.Equal(start) {
		t.Errorf("start time: got %v", snap.StartTime)
	}
	if snap.Now.Before(start) {
		t.Error("Now should be set at snapshot time")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	tr := NewTracker(time.Now())
	tr.SetConnectivity(connect.ApBroadcasting, "")

	snap := tr.Snapshot()
	tr.SetConnectivity(connect.StaConnected, "1.2.3.4")

	if snap.Connectivity != connect.ApBroadcasting {
		t.Error("snapshot mutated by later update")
	}
}

func TestSetConfigClearsOnAbsent(t *testing.T) {
	tr := NewTracker(time.Now())
	tr.SetConfig(config.Config{SSID: "Home"}, true)
	tr.SetConfig(config.Config{}, false)

	snap := tr.Snapshot()
	if snap.Provisioned || snap.SSID != "" {
		t.Errorf("expected cleared config summary, got %+v", snap)
	}
}
