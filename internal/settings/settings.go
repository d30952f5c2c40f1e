// Package settings loads the daemon's deployment settings from a YAML file.
// These are operator knobs (addresses, device paths, the AP name) as opposed
// to the provisioning record, which the portal writes at runtime.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sentinel/sentinel-display/internal/config"
)

// DefaultPath is where the settings file lives on the appliance.
const DefaultPath = "/etc/sentineld/settings.yaml"

// Settings holds the daemon's deployment knobs.
type Settings struct {
	// APSSID is the network name announced in access-point mode.
	APSSID string `yaml:"ap_ssid"`

	// HTTPAddr is the portal HTTP listen address.
	HTTPAddr string `yaml:"http_addr"`

	// DNSAddr is the captive DNS listen address.
	DNSAddr string `yaml:"dns_addr"`

	// ConfigPath is where the provisioning record is persisted.
	ConfigPath string `yaml:"config_path"`

	// PollInterval is the telemetry poll cadence.
	PollInterval time.Duration `yaml:"poll_interval"`

	// TickInterval is the main loop cadence.
	TickInterval time.Duration `yaml:"tick_interval"`

	// TouchPin is the GPIO line the touch controller's pen signal is on.
	TouchPin int `yaml:"touch_pin"`

	// Framebuffer is the display device.
	Framebuffer FramebufferSettings `yaml:"framebuffer"`

	// WifiInterface is the wireless interface the radio manages.
	WifiInterface string `yaml:"wifi_interface"`
}

// FramebufferSettings describes the display device.
type FramebufferSettings struct {
	Device string `yaml:"device"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Default returns the settings used when no file is present.
func Default() Settings {
	return Settings{
		APSSID:       "Sentinel",
		HTTPAddr:     ":80",
		DNSAddr:      ":53",
		ConfigPath:   config.DefaultPath,
		PollInterval: 2 * time.Second,
		TickInterval: 50 * time.Millisecond,
		TouchPin:     17,
		Framebuffer: FramebufferSettings{
			Device: "/dev/fb0",
			Width:  320,
			Height: 240,
		},
		WifiInterface: "wlan0",
	}
}

// Load reads settings from path, filling omitted fields with defaults.
// A missing file is not an error: the defaults are returned as-is.
func Load(path string) (Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("read settings: %w", err)
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse settings: %w", err)
	}
	if err := s.validate(); err != nil {
		return s, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

func (s Settings) validate() error {
	if s.APSSID == "" {
		return errors.New("ap_ssid must not be empty")
	}
	if s.ConfigPath == "" {
		return errors.New("config_path must not be empty")
	}
	if s.PollInterval <= 0 {
		return errors.New("poll_interval must be positive")
	}
	if s.TickInterval <= 0 {
		return errors.New("tick_interval must be positive")
	}
	if s.Framebuffer.Width <= 0 || s.Framebuffer.Height <= 0 {
		return errors.New("framebuffer dimensions must be positive")
	}
	return nil
}
