// Package display renders the appliance screens: the two dashboard layouts,
// the captive-portal splash, and the transient connection/pairing banners.
// All drawing targets drivers.Displayer, so the renderer works identically
// against the framebuffer and the in-memory fake used in tests.
package display

import (
	"image/color"
	"log"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinydraw"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
	"tinygo.org/x/tinyfont/freesans"
)

var (
	colorBG   = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorText = color.RGBA{A: 0xff}
	colorGrid = color.RGBA{R: 0xbd, G: 0xbd, B: 0xbd, A: 0xff}
	colorCPU  = color.RGBA{B: 0xff, A: 0xff}
	colorRAM  = color.RGBA{G: 0xc0, A: 0xff}
	colorUsed = color.RGBA{R: 0xf0, A: 0xff}
	colorFree = color.RGBA{G: 0xc0, A: 0xff}
	colorOK   = color.RGBA{G: 0xa0, A: 0xff}
	colorFail = color.RGBA{R: 0xd0, A: 0xff}
)

var (
	fontTitle = &freesans.Bold9pt7b
	fontBody  = &freesans.Regular9pt7b
	fontSmall = &tinyfont.TomThumb
	fontClock = &freemono.Bold24pt7b
)

// Stats is the dashboard model handed to the renderer on each repaint.
// CPU and RAM are chronological (oldest first); Capacity fixes the chart's
// horizontal scale so the line grows left-to-right until the history wraps.
type Stats struct {
	CPU           []float64
	RAM           []float64
	Capacity      int
	DiskPercent   float64
	UptimeSeconds uint32
	Timestamp     string
}

// Renderer draws full screens onto a display device. Every render repaints
// its whole region; there is no partial-diff redraw.
type Renderer struct {
	d    drivers.Displayer
	w, h int16
}

// NewRenderer creates a Renderer for the given device.
func NewRenderer(d drivers.Displayer) *Renderer {
	w, h := d.Size()
	return &Renderer{d: d, w: w, h: h}
}

// Render repaints the given layout from the dashboard model.
func (r *Renderer) Render(l Layout, s Stats) {
	switch l {
	case LayoutClock:
		r.RenderClock(s)
	default:
		r.RenderCharts(s)
	}
}

// RenderCharts draws the primary dashboard: title bar, uptime readout, CPU
// and RAM line charts, and the storage bar.
func (r *Renderer) RenderCharts(s Stats) {
	r.fillScreen(colorBG)
	tinyfont.WriteLine(r.d, fontTitle, 6, 16, "Sentinel Monitor", colorText)
	r.drawUptime(s.UptimeSeconds)

	const margin = 8
	x := int16(margin)
	chartW := r.w - 2*margin
	chartH := int16(60)
	y := int16(24)

	r.drawLineChart(x, y, chartW, chartH, s.CPU, s.Capacity, colorCPU, "CPU")
	y += chartH + 10
	r.drawLineChart(x, y, chartW, chartH, s.RAM, s.Capacity, colorRAM, "RAM")
	y += chartH + 16
	r.drawStorageBar(x, y, chartW, 18, s.DiskPercent)

	r.flush()
}

// RenderClock draws the clock layout: a large time-of-day readout from the
// last metrics timestamp, the uptime readout, and mini CPU/RAM charts.
func (r *Renderer) RenderClock(s Stats) {
	r.fillScreen(colorBG)
	r.centered(fontClock, 52, ClockFromTimestamp(s.Timestamp), colorText)
	r.drawUptime(s.UptimeSeconds)

	const margin = 8
	x := int16(margin)
	chartW := r.w - 2*margin
	chartH := int16(48)
	y := int16(70)

	r.drawLineChart(x, y, chartW, chartH, s.CPU, s.Capacity, colorCPU, "CPU")
	y += chartH + 8
	r.drawLineChart(x, y, chartW, chartH, s.RAM, s.Capacity, colorRAM, "RAM")

	r.flush()
}

// RenderPortal draws the screen shown while the configuration network is
// broadcasting.
func (r *Renderer) RenderPortal(apSSID, apIP string) {
	r.fillScreen(colorBG)
	r.centered(fontTitle, r.h/2-30, "Sentinel Setup", colorText)
	r.centered(fontBody, r.h/2, "Wi-Fi network: "+apSSID, colorText)
	r.centered(fontBody, r.h/2+24, "Browse to http://"+apIP, colorText)
	r.flush()
}

// RenderConnecting draws the screen shown while a station association attempt
// is in flight.
func (r *Renderer) RenderConnecting(ssid string) {
	r.fillScreen(colorBG)
	r.centered(fontTitle, r.h/2-10, "Connecting to Wi-Fi", colorText)
	r.centered(fontBody, r.h/2+20, ssid, colorText)
	r.flush()
}

// RenderStationUp draws the transient screen shown when a station connection
// succeeds: the joined network, the station address, and the panel URL.
func (r *Renderer) RenderStationUp(ssid, ip string) {
	r.fillScreen(colorBG)
	r.centered(fontTitle, r.h/2-40, "SUCCESS", colorOK)
	r.centered(fontBody, r.h/2-8, "Connected to:", colorText)
	r.centered(fontBody, r.h/2+16, ssid, colorText)
	r.centered(fontSmall, r.h/2+36, "IP: "+ip, colorText)
	r.centered(fontSmall, r.h/2+48, "Config: http://"+ip, colorOK)
	r.flush()
}

// RenderPairing draws the transient pairing outcome banner.
func (r *Renderer) RenderPairing(ok bool, detail string) {
	r.fillScreen(colorBG)
	if ok {
		r.centered(fontTitle, r.h/2-20, "Paired!", colorOK)
	} else {
		r.centered(fontTitle, r.h/2-20, "Pairing Failed", colorFail)
	}
	r.centered(fontBody, r.h/2+20, detail, colorText)
	r.flush()
}

func (r *Renderer) fillScreen(c color.RGBA) {
	tinydraw.FilledRectangle(r.d, 0, 0, r.w, r.h, c)
}

// centered writes a line horizontally centered at the given baseline.
func (r *Renderer) centered(font tinyfont.Fonter, y int16, s string, c color.RGBA) {
	_, outboxWidth := tinyfont.LineWidth(font, s)
	x := (r.w - int16(outboxWidth)) / 2
	if x < 0 {
		x = 0
	}
	tinyfont.WriteLine(r.d, font, x, y, s, c)
}

func (r *Renderer) flush() {
	if err := r.d.Display(); err != nil {
		log.Printf("display: flush: %v", err)
	}
}
