package portal

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net"
	"net/http"

	"github.com/google/uuid"

	"github.com/sentinel/sentinel-display/internal/config"
	"github.com/sentinel/sentinel-display/internal/state"
	"github.com/sentinel/sentinel-display/internal/wifi"
)

// maxSaveBodySize bounds the save request body.
const maxSaveBodySize = 4 << 10

// probePaths are the well-known URLs operating systems fetch to detect a
// captive portal. Answering them with the configuration page makes the OS
// surface its portal UI.
var probePaths = []string{
	"/generate_204",              // Android/Chrome
	"/gen_204",                   // Android alt
	"/hotspot-detect.html",       // Apple
	"/library/test/success.html", // Apple alt
	"/ncsi.txt",                  // Windows
	"/connecttest.txt",           // Windows alt
}

// Server serves the configuration UI. It is live in both portal mode and
// station mode; in station mode the root page doubles as the status panel.
type Server struct {
	httpServer *http.Server
	tracker    *state.Tracker
	store      *config.Store
	radio      wifi.Radio
	actions    chan<- Action
}

// New creates a portal Server. Mutations are queued on actions for the main
// loop; if the queue is full the request is dropped and logged.
func New(addr string, tracker *state.Tracker, store *config.Store, radio wifi.Radio, actions chan<- Action) *Server {
	s := &Server{
		tracker: tracker,
		store:   store,
		radio:   radio,
		actions: actions,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/scan", s.handleScan)
	mux.HandleFunc("/save", s.handleSave)
	mux.HandleFunc("/reset", s.handleReset)
	for _, p := range probePaths {
		mux.HandleFunc(p, s.handleRoot)
	}
	// The root pattern also catches every unmatched path, which is exactly
	// what a captive portal wants.
	mux.HandleFunc("/", s.handleRoot)

	s.httpServer = &http.Server{Addr: addr, Handler: mux}
	return s
}

// ListenAndServe starts listening. It blocks until the server is shut down.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Serve accepts connections on the given listener. Useful for tests.
func (s *Server) Serve(ln net.Listener) error {
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the routing table for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) enqueue(a Action) {
	select {
	case s.actions <- a:
	default:
		log.Printf("portal: action queue full, dropping %s", a.Kind)
	}
}

// handleRoot serves the status page when a configuration exists, otherwise
// the scan/save form. It also answers the OS captive-portal probes and every
// unmatched path.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	snap := s.tracker.Snapshot()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	renderRoot(w, snap)
}

// handleScan runs a radio scan and returns the deduplicated network list as
// an HTML fragment the configuration page swaps in.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var nets []wifi.Network
	if raw, err := s.radio.Scan(); err != nil {
		log.Printf("portal: scan: %v", err)
	} else {
		nets = wifi.Dedupe(raw, wifi.MaxScanNetworks)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	renderScan(w, nets)
}

// saveRequest is the JSON body accepted by the save endpoint.
type saveRequest struct {
	SSID     string `json:"ssid"`
	Password string `json:"password"`
	IP       string `json:"ip"`
	Port     string `json:"port"`
	Auth     string `json:"auth"`
}

// handleSave persists a new provisioning record and queues a station-connect
// attempt with the new credentials. Write-only.
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxSaveBodySize))
	if err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	var req saveRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	cfg := config.Config{
		SSID:       req.SSID,
		Password:   req.Password,
		ServerIP:   req.IP,
		ServerPort: req.Port,
		Auth:       req.Auth,
	}
	// Keep the device identity stable across re-provisioning; mint one on
	// the first save.
	if prev, ok := s.store.Load(); ok && prev.DeviceID != "" {
		cfg.DeviceID = prev.DeviceID
	} else {
		cfg.DeviceID = uuid.NewString()
	}

	if err := s.store.Save(cfg); err != nil {
		log.Printf("portal: save config: %v", err)
		http.Error(w, "Failed to save configuration", http.StatusInternalServerError)
		return
	}
	s.tracker.SetConfig(cfg, true)
	log.Printf("portal: configuration saved, wifi=%q server=%s:%s", cfg.SSID, cfg.ServerIP, cfg.ServerPort)

	if cfg.SSID != "" {
		s.enqueue(Action{Kind: ActionConnect, Config: cfg})
	}
	w.Write([]byte("OK"))
}

// handleReset clears the provisioning record, queues the fallback to
// access-point mode, and sends the caller back to the root page.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Clear(); err != nil {
		log.Printf("portal: clear config: %v", err)
	}
	s.tracker.SetConfig(config.Config{}, false)
	log.Printf("portal: configuration reset")

	s.enqueue(Action{Kind: ActionReset})
	http.Redirect(w, r, "/", http.StatusFound)
}
