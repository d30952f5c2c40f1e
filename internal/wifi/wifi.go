// Package wifi provides Wi-Fi radio control with hardware abstraction.
// The real implementation drives NetworkManager via nmcli, which owns the
// radio on the appliance's OS image. The fake implementation allows testing
// the connectivity state machine and the portal without hardware.
package wifi

// Network is one entry from a radio scan.
type Network struct {
	SSID      string
	SignalDBm int
	Open      bool
}

// MaxScanNetworks bounds the deduplicated scan list. Pathological
// environments with more distinct SSIDs are truncated.
const MaxScanNetworks = 32

// Radio controls the device radio. Exactly one mode is active at a time:
// hotspot (access point) or station.
type Radio interface {
	// Scan performs a network scan and returns the raw results, which may
	// contain duplicate SSIDs from repeat beacons or multiple APs.
	Scan() ([]Network, error)

	// StartHotspot brings the radio up as an access point with the given
	// SSID and returns the AP's IPv4 address. Any station association is
	// dropped.
	StartHotspot(ssid string) (string, error)

	// StartStation begins association with the given network and returns
	// without waiting for the association to complete. An empty password
	// attempts open-network association.
	StartStation(ssid, password string) error

	// StationStatus reports whether the station has associated and acquired
	// an address, and if so which one.
	StationStatus() (connected bool, ip string, err error)

	// Close releases radio resources.
	Close() error
}

// Dedupe returns at most max scan entries with one entry per unique SSID.
// The first-seen signal strength and security classification are kept;
// duplicates and empty SSIDs are dropped. Order of first appearance is
// preserved.
func Dedupe(nets []Network, max int) []Network {
	if max <= 0 {
		max = MaxScanNetworks
	}
	seen := make(map[string]struct{}, len(nets))
	out := make([]Network, 0, max)
	for _, n := range nets {
		if n.SSID == "" {
			continue
		}
		if _, dup := seen[n.SSID]; dup {
			continue
		}
		seen[n.SSID] = struct{}{}
		out = append(out, n)
		if len(out) == max {
			break
		}
	}
	return out
}
