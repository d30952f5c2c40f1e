// Package config persists the device provisioning record: Wi-Fi credentials
// and the remote server endpoint. Absence of the record is a valid state — it
// means the device is unprovisioned and must enter access-point mode.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

// DefaultPath is where the provisioning record lives on the appliance.
const DefaultPath = "/var/lib/sentineld/config.json"

// Config is the persisted provisioning record. Field names match the JSON
// body accepted by the portal's save endpoint.
type Config struct {
	SSID       string `json:"ssid"`
	Password   string `json:"password"`
	ServerIP   string `json:"ip"`
	ServerPort string `json:"port"`
	Auth       string `json:"auth"`
	DeviceID   string `json:"device_id,omitempty"`
}

// Complete reports whether the record carries everything needed to reach the
// remote server. An empty Password is deliberately allowed: it means "attempt
// open-network association".
func (c Config) Complete() bool {
	return c.SSID != "" && c.ServerIP != "" && c.ServerPort != "" && c.Auth != ""
}

// ServerEndpoint returns the base URL of the configured remote server.
func (c Config) ServerEndpoint() string {
	return fmt.Sprintf("http://%s:%s", c.ServerIP, c.ServerPort)
}

// Store reads and writes the provisioning record as a single JSON file.
// Writes are whole-record replacements.
type Store struct {
	path string
}

// NewStore creates a Store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted record. A missing or malformed file is not an
// error: it returns (zero, false) and logs the condition, leaving the device
// unprovisioned.
func (s *Store) Load() (Config, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("config: read %s: %v", s.path, err)
		}
		return Config{}, false
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Printf("config: malformed record in %s: %v", s.path, err)
		return Config{}, false
	}
	return cfg, true
}

// Save replaces the persisted record wholesale. The new record is written to
// a temporary file and renamed into place so a failed write leaves the prior
// record untouched.
func (s *Store) Save(cfg Config) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}

// Clear deletes the persisted record. Clearing an absent record is a no-op.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove config: %w", err)
	}
	return nil
}
