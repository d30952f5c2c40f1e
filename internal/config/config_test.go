package config

import (
	"os"
	"path/filepath"
	"testing"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "config.json"))
}

func TestLoadAbsent(t *testing.T) {
	s := testStore(t)
	if _, ok := s.Load(); ok {
		t.Error("Load on absent file should report false")
	}
}

func TestLoadMalformed(t *testing.T) {
	s := testStore(t)
	if err := os.WriteFile(s.Path(), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Load(); ok {
		t.Error("Load on malformed file should report false")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := testStore(t)
	want := Config{
		SSID:       "Home",
		Password:   "secret",
		ServerIP:   "10.0.0.5",
		ServerPort: "12345",
		Auth:       "tok1",
		DeviceID:   "f2b4a1e0-0000-4000-8000-000000000001",
	}
	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, ok := s.Load()
	if !ok {
		t.Fatal("Load after Save reported absent")
	}
	if got != want {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestSaveOverwritesWholesale(t *testing.T) {
	s := testStore(t)
	if err := s.Save(Config{SSID: "old", Password: "p", ServerIP: "1.2.3.4", ServerPort: "1", Auth: "a"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(Config{SSID: "new"}); err != nil {
		t.Fatal(err)
	}

	got, ok := s.Load()
	if !ok {
		t.Fatal("Load reported absent")
	}
	if got.SSID != "new" || got.Password != "" || got.Auth != "" {
		t.Errorf("save should replace the whole record, got %+v", got)
	}
}

func TestClearIdempotent(t *testing.T) {
	s := testStore(t)
	if err := s.Save(Config{SSID: "x"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok := s.Load(); ok {
		t.Error("Load after Clear should report absent")
	}
	// Clearing again must not error.
	if err := s.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}

func TestComplete(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{"all fields", Config{SSID: "s", Password: "p", ServerIP: "1.1.1.1", ServerPort: "80", Auth: "t"}, true},
		{"empty password is still complete", Config{SSID: "s", ServerIP: "1.1.1.1", ServerPort: "80", Auth: "t"}, true},
		{"missing ssid", Config{ServerIP: "1.1.1.1", ServerPort: "80", Auth: "t"}, false},
		{"missing server", Config{SSID: "s", Auth: "t"}, false},
		{"missing auth", Config{SSID: "s", ServerIP: "1.1.1.1", ServerPort: "80"}, false},
		{"zero", Config{}, false},
	}
	for _, tt := range tests {
		if got := tt.cfg.Complete(); got != tt.want {
			t.Errorf("%s: Complete() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestServerEndpoint(t *testing.T) {
	c := Config{ServerIP: "10.0.0.5", ServerPort: "12345"}
	if got, want := c.ServerEndpoint(), "http://10.0.0.5:12345"; got != want {
		t.Errorf("ServerEndpoint() = %q, want %q", got, want)
	}
}
