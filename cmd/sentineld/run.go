package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sentinel/sentinel-display/internal/config"
	"github.com/sentinel/sentinel-display/internal/connect"
	"github.com/sentinel/sentinel-display/internal/display"
	"github.com/sentinel/sentinel-display/internal/history"
	"github.com/sentinel/sentinel-display/internal/input"
	"github.com/sentinel/sentinel-display/internal/portal"
	"github.com/sentinel/sentinel-display/internal/settings"
	"github.com/sentinel/sentinel-display/internal/state"
	"github.com/sentinel/sentinel-display/internal/telemetry"
	"github.com/sentinel/sentinel-display/internal/wifi"
)

// Transient screen durations, matched to how long the text stays readable.
const (
	stationUpDuration = 1500 * time.Millisecond
	pairingDuration   = 2 * time.Second
)

func run(set settings.Settings) error {
	radio, err := wifi.NewRealRadio(set.WifiInterface)
	if err != nil {
		return err
	}
	defer radio.Close()

	sampler, err := input.NewRealSampler(set.TouchPin)
	if err != nil {
		return err
	}
	defer sampler.Close()

	fb, err := display.NewFramebuffer(set.Framebuffer.Device, set.Framebuffer.Width, set.Framebuffer.Height)
	if err != nil {
		return err
	}
	defer fb.Close()

	store := config.NewStore(set.ConfigPath)
	tracker := state.NewTracker(time.Now())
	actions := make(chan portal.Action, 8)

	c := newController(set, store, tracker, radio, sampler, display.NewRenderer(fb), actions)

	// The configuration page is served in every mode: it is the captive
	// portal while the hotspot is up and the status panel once connected.
	srv := portal.New(set.HTTPAddr, tracker, store, radio, actions)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("http server error: %v", err)
		}
	}()
	defer srv.Shutdown(context.Background())
	log.Printf("portal listening on %s", set.HTTPAddr)

	c.boot(time.Now())
	defer c.stopDNS()

	ticker := time.NewTicker(set.TickInterval)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return c.runLoop(ticker.C, sigCh)
}

// controller owns all mutable device state. Everything it holds is touched
// only from the loop; the portal handlers reach it exclusively through the
// actions channel and the state tracker.
type controller struct {
	set     settings.Settings
	store   *config.Store
	tracker *state.Tracker
	mgr     *connect.Manager
	sampler input.Sampler
	render  *display.Renderer
	actions chan portal.Action

	ctx context.Context
	dns *portal.DNSResponder

	cfg    config.Config
	client *telemetry.Client
	poller *telemetry.Poller
	cpu    *history.Buffer
	ram    *history.Buffer

	edge   input.Edge
	layout display.Layout

	dashboardActive bool
	transientUntil  time.Time
	afterTransient  func(now time.Time)
}

func newController(set settings.Settings, store *config.Store, tracker *state.Tracker,
	radio wifi.Radio, sampler input.Sampler, render *display.Renderer,
	actions chan portal.Action) *controller {
	return &controller{
		set:     set,
		store:   store,
		tracker: tracker,
		mgr:     connect.NewManager(radio, set.APSSID),
		sampler: sampler,
		render:  render,
		actions: actions,
		ctx:     context.Background(),
		cpu:     history.New(history.DefaultCapacity),
		ram:     history.New(history.DefaultCapacity),
	}
}

// boot decides the starting mode: attempt the stored credentials if a record
// exists, otherwise announce the portal network.
func (c *controller) boot(now time.Time) {
	cfg, ok := c.store.Load()
	c.tracker.SetConfig(cfg, ok)

	if ok && cfg.SSID != "" {
		c.beginConnect(cfg, now)
		return
	}
	log.Printf("no provisioning record, entering access-point mode")
	c.startPortal()
}

// runLoop is the cooperative main loop. One tick handles, in order: transient
// screen expiry, touch input, a due telemetry poll, queued portal actions,
// and the connectivity state machine.
func (c *controller) runLoop(tick <-chan time.Time, sig <-chan os.Signal) error {
	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			return nil

		case <-tick:
			c.step(time.Now())
		}
	}
}

func (c *controller) step(now time.Time) {
	if !c.transientUntil.IsZero() && !now.Before(c.transientUntil) {
		c.transientUntil = time.Time{}
		if fn := c.afterTransient; fn != nil {
			c.afterTransient = nil
			fn(now)
		}
	}

	touched, err := c.sampler.Touched()
	if err != nil {
		log.Printf("touch read error: %v", err)
	} else if c.edge.Update(touched) && c.dashboardActive && c.transientUntil.IsZero() {
		c.layout = c.layout.Next()
		log.Printf("layout switched to %s", c.layout)
		c.redraw()
	}

	if c.poller != nil && c.dashboardActive && c.poller.Due(now) {
		if c.poller.Poll(c.ctx, now) {
			c.redraw()
		}
	}

	for drained := false; !drained; {
		select {
		case a := <-c.actions:
			c.handleAction(a, now)
		default:
			drained = true
		}
	}

	c.handleEvent(c.mgr.Tick(now), now)
}

func (c *controller) handleAction(a portal.Action, now time.Time) {
	switch a.Kind {
	case portal.ActionConnect:
		c.leaveDashboard()
		c.beginConnect(a.Config, now)

	case portal.ActionReset:
		c.leaveDashboard()
		c.cfg = config.Config{}
		c.closeTelemetry()
		c.startPortal()
	}
}

func (c *controller) handleEvent(ev connect.Event, now time.Time) {
	switch ev {
	case connect.EventConnected:
		c.stopDNS()
		ip := c.mgr.StationIP()
		c.tracker.SetConnectivity(connect.StaConnected, ip)
		c.openTelemetry()
		c.render.RenderStationUp(c.cfg.SSID, ip)
		c.showTransient(now, stationUpDuration, c.pair)

	case connect.EventFailed:
		c.tracker.SetConnectivity(connect.StaFailed, "")
		c.tracker.SetAP(c.mgr.APSSID(), c.mgr.APIP())
		c.startDNS()
		c.render.RenderPortal(c.mgr.APSSID(), c.mgr.APIP())
	}
}

// beginConnect starts a station attempt with the given record. DNS capture
// stops immediately so clients on the hotspot are not strung along while the
// radio switches modes.
func (c *controller) beginConnect(cfg config.Config, now time.Time) {
	c.stopDNS()
	c.cfg = cfg
	c.render.RenderConnecting(cfg.SSID)
	if err := c.mgr.BeginConnect(cfg.SSID, cfg.Password, now); err != nil {
		log.Printf("connect attempt rejected: %v", err)
		c.startPortal()
		return
	}
	c.tracker.SetConnectivity(connect.StaConnecting, "")
}

// pair performs the one-shot server handshake after a station connection and
// shows the outcome banner before the dashboard appears.
func (c *controller) pair(now time.Time) {
	endpoint := c.cfg.ServerIP + ":" + c.cfg.ServerPort
	if err := c.client.Pair(c.ctx); err != nil {
		log.Printf("pairing with %s failed: %v", endpoint, err)
		c.render.RenderPairing(false, "Check server at "+endpoint)
	} else {
		log.Printf("paired with %s", endpoint)
		c.render.RenderPairing(true, "Server: "+endpoint)
	}
	c.showTransient(now, pairingDuration, c.enterDashboard)
}

// enterDashboard activates telemetry polling and paints the first layout.
// The first poll is due on the next tick.
func (c *controller) enterDashboard(now time.Time) {
	c.dashboardActive = true
	c.layout = display.LayoutCharts
	c.poller.Activate(now)
	c.redraw()
}

func (c *controller) leaveDashboard() {
	c.dashboardActive = false
	c.transientUntil = time.Time{}
	c.afterTransient = nil
	if c.poller != nil {
		c.poller.Deactivate()
	}
}

// startPortal reverts to access-point mode: hotspot up, DNS capture on, the
// setup splash on screen.
func (c *controller) startPortal() {
	if _, err := c.mgr.Reset(); err != nil {
		log.Printf("hotspot start failed: %v", err)
		return
	}
	c.tracker.SetConnectivity(c.mgr.State(), "")
	c.tracker.SetAP(c.mgr.APSSID(), c.mgr.APIP())
	c.startDNS()
	c.render.RenderPortal(c.mgr.APSSID(), c.mgr.APIP())
}

// openTelemetry builds a fresh client and poller from the current record.
// The history buffers are reused so a reconnect keeps its chart history.
func (c *controller) openTelemetry() {
	c.closeTelemetry()
	c.client = telemetry.NewClient(c.cfg.ServerEndpoint(), c.cfg.Auth, c.cfg.DeviceID)
	c.poller = telemetry.NewPoller(c.client, c.cpu, c.ram)
	c.poller.SetInterval(c.set.PollInterval)
}

func (c *controller) closeTelemetry() {
	if c.client != nil {
		c.client.Close()
		c.client = nil
	}
	c.poller = nil
}

func (c *controller) showTransient(now time.Time, d time.Duration, after func(time.Time)) {
	c.transientUntil = now.Add(d)
	c.afterTransient = after
}

func (c *controller) startDNS() {
	c.stopDNS()
	ip := net.ParseIP(c.mgr.APIP())
	if ip == nil {
		log.Printf("dns capture disabled: bad hotspot address %q", c.mgr.APIP())
		return
	}
	c.dns = portal.NewDNSResponder(c.set.DNSAddr, ip)
	c.dns.Start()
	log.Printf("dns capture on %s -> %s", c.set.DNSAddr, ip)
}

func (c *controller) stopDNS() {
	if c.dns == nil {
		return
	}
	if err := c.dns.Stop(); err != nil {
		log.Printf("dns shutdown: %v", err)
	}
	c.dns = nil
}

func (c *controller) redraw() {
	c.render.Render(c.layout, c.stats())
}

func (c *controller) stats() display.Stats {
	s := display.Stats{
		CPU:      c.cpu.Values(),
		RAM:      c.ram.Values(),
		Capacity: c.cpu.Cap(),
	}
	if c.poller != nil {
		s.DiskPercent = c.poller.DiskPercent
		s.UptimeSeconds = c.poller.UptimeSeconds
		s.Timestamp = c.poller.Timestamp
	}
	return s
}
