//go:build !linux

package wifi

import "errors"

var errUnsupported = errors.New("wifi: not supported on this platform (requires Linux with NetworkManager)")

// RealRadio is not available on non-Linux platforms.
type RealRadio struct{}

// NewRealRadio returns an error on non-Linux platforms.
func NewRealRadio(iface string) (*RealRadio, error) {
	return nil, errUnsupported
}

func (r *RealRadio) Scan() ([]Network, error)                { return nil, errUnsupported }
func (r *RealRadio) StartHotspot(ssid string) (string, error) { return "", errUnsupported }
func (r *RealRadio) StartStation(ssid, password string) error { return errUnsupported }
func (r *RealRadio) StationStatus() (bool, string, error)     { return false, "", errUnsupported }
func (r *RealRadio) Close() error                             { return nil }
