//go:build linux

package wifi

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// RealRadio drives the Wi-Fi radio through nmcli. NetworkManager owns the
// radio on the appliance image, handles WPA supplicant configuration and DHCP
// for station mode, and provides the shared-address hotspot used by the
// captive portal.
type RealRadio struct {
	iface string
}

// NewRealRadio creates a radio bound to the given wireless interface
// (typically "wlan0").
func NewRealRadio(iface string) (*RealRadio, error) {
	if _, err := exec.LookPath("nmcli"); err != nil {
		return nil, fmt.Errorf("nmcli not found: %w", err)
	}
	return &RealRadio{iface: iface}, nil
}

// Scan lists visible networks. Results may contain duplicate SSIDs; callers
// dedupe with Dedupe.
func (r *RealRadio) Scan() ([]Network, error) {
	out, err := exec.Command("nmcli", "-t", "-f", "SSID,SIGNAL,SECURITY",
		"device", "wifi", "list", "ifname", r.iface, "--rescan", "yes").Output()
	if err != nil {
		return nil, fmt.Errorf("wifi scan: %w", err)
	}
	return parseScan(string(out)), nil
}

// parseScan parses nmcli terse output: one "SSID:SIGNAL:SECURITY" per line.
func parseScan(out string) []Network {
	var nets []Network
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Split(line, ":")
		if len(fields) < 3 {
			continue
		}
		signal, err := strconv.Atoi(fields[1])
		if err != nil {
			continue
		}
		sec := fields[2]
		nets = append(nets, Network{
			SSID:      fields[0],
			SignalDBm: percentToDBm(signal),
			Open:      sec == "" || sec == "--",
		})
	}
	return nets
}

// percentToDBm inverts NetworkManager's quality mapping (quality ≈ 2*(dBm+100)).
func percentToDBm(pct int) int {
	return pct/2 - 100
}

// StartHotspot brings the interface up as a shared access point. The
// connection profile is recreated each time so a stale profile can't pin an
// old SSID.
func (r *RealRadio) StartHotspot(ssid string) (string, error) {
	// Ignore failure: the profile may not exist yet.
	exec.Command("nmcli", "connection", "delete", "sentinel-hotspot").Run()

	err := exec.Command("nmcli", "device", "wifi", "hotspot",
		"ifname", r.iface, "con-name", "sentinel-hotspot", "ssid", ssid).Run()
	if err != nil {
		return "", fmt.Errorf("start hotspot: %w", err)
	}

	ip, err := r.interfaceIP()
	if err != nil {
		return "", fmt.Errorf("hotspot address: %w", err)
	}
	return ip, nil
}

// StartStation begins association without waiting for completion; progress
// is observed through StationStatus.
func (r *RealRadio) StartStation(ssid, password string) error {
	exec.Command("nmcli", "connection", "down", "sentinel-hotspot").Run()

	args := []string{"--wait", "1", "device", "wifi", "connect", ssid, "ifname", r.iface}
	if password != "" {
		args = append(args, "password", password)
	}
	// A non-zero exit here usually means "still activating", which is
	// exactly the window StationStatus polls through. Real failures also
	// surface there, as a timeout.
	exec.Command("nmcli", args...).Run()
	return nil
}

// StationStatus reports association + address acquisition state.
func (r *RealRadio) StationStatus() (bool, string, error) {
	out, err := exec.Command("nmcli", "-t", "-f", "GENERAL.STATE",
		"device", "show", r.iface).Output()
	if err != nil {
		return false, "", fmt.Errorf("station status: %w", err)
	}
	// GENERAL.STATE:100 (connected)
	if !strings.Contains(string(out), ":100 ") && !strings.Contains(string(out), ":100(") {
		return false, "", nil
	}
	ip, err := r.interfaceIP()
	if err != nil || ip == "" {
		return false, "", nil
	}
	return true, ip, nil
}

func (r *RealRadio) interfaceIP() (string, error) {
	out, err := exec.Command("nmcli", "-t", "-f", "IP4.ADDRESS",
		"device", "show", r.iface).Output()
	if err != nil {
		return "", err
	}
	// IP4.ADDRESS[1]:10.42.0.1/24
	for _, line := range strings.Split(string(out), "\n") {
		_, val, found := strings.Cut(line, ":")
		if !found || val == "" {
			continue
		}
		addr, _, _ := strings.Cut(val, "/")
		return addr, nil
	}
	return "", nil
}

// Close tears down the hotspot profile if one is active.
func (r *RealRadio) Close() error {
	exec.Command("nmcli", "connection", "down", "sentinel-hotspot").Run()
	return nil
}
