package wifi

import "errors"

// FakeRadio is a test double with scripted scan results and a configurable
// association outcome.
type FakeRadio struct {
	// ScanResults are returned by Scan.
	ScanResults []Network

	// ScanError, if set, is returned by Scan.
	ScanError error

	// HotspotIP is returned by StartHotspot. Defaults to 10.42.0.1.
	HotspotIP string

	// HotspotError, if set, is returned by StartHotspot.
	HotspotError error

	// StationError, if set, is returned by StartStation.
	StationError error

	// ConnectAfterPolls makes StationStatus report connected once it has
	// been called that many times since the last StartStation. Negative
	// means the association never completes.
	ConnectAfterPolls int

	// StationIP is reported once connected. Defaults to 192.168.1.50.
	StationIP string

	// Recorded activity for assertions.
	HotspotSSIDs  []string
	StationSSID   string
	StationPass   string
	StatusPolls   int
	Closed        bool
	hotspotActive bool
}

// NewFakeRadio creates a FakeRadio whose association succeeds immediately.
func NewFakeRadio() *FakeRadio {
	return &FakeRadio{}
}

// Scan returns the scripted results.
func (f *FakeRadio) Scan() ([]Network, error) {
	if f.ScanError != nil {
		return nil, f.ScanError
	}
	return f.ScanResults, nil
}

// StartHotspot records the SSID and reports the fake AP address.
func (f *FakeRadio) StartHotspot(ssid string) (string, error) {
	if f.HotspotError != nil {
		return "", f.HotspotError
	}
	f.HotspotSSIDs = append(f.HotspotSSIDs, ssid)
	f.hotspotActive = true
	ip := f.HotspotIP
	if ip == "" {
		ip = "10.42.0.1"
	}
	return ip, nil
}

// StartStation records the credentials and resets the status poll counter.
func (f *FakeRadio) StartStation(ssid, password string) error {
	if f.StationError != nil {
		return f.StationError
	}
	f.StationSSID = ssid
	f.StationPass = password
	f.StatusPolls = 0
	f.hotspotActive = false
	return nil
}

// StationStatus reports connected after ConnectAfterPolls calls.
func (f *FakeRadio) StationStatus() (bool, string, error) {
	if f.StationSSID == "" {
		return false, "", errors.New("no station association started")
	}
	f.StatusPolls++
	if f.ConnectAfterPolls < 0 || f.StatusPolls <= f.ConnectAfterPolls {
		return false, "", nil
	}
	ip := f.StationIP
	if ip == "" {
		ip = "192.168.1.50"
	}
	return true, ip, nil
}

// HotspotActive reports whether the last mode change was to hotspot.
func (f *FakeRadio) HotspotActive() bool {
	return f.hotspotActive
}

// Close marks the radio as closed.
func (f *FakeRadio) Close() error {
	f.Closed = true
	return nil
}
