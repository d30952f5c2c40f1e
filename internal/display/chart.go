package display

import (
	"fmt"
	"image/color"
	"strings"

	"tinygo.org/x/tinydraw"
	"tinygo.org/x/tinyfont"

	"github.com/sentinel/sentinel-display/internal/history"
)

// mapValueToY maps a percentage onto a chart's vertical extent: 0% at the
// bottom edge, 100% at the top. Out-of-range values are clamped before
// mapping.
func mapValueToY(pct float64, top, height int16) int16 {
	pct = history.Clamp(pct, 0, 100)
	return top + int16((100-pct)*float64(height)/100)
}

// drawLineChart draws one bordered chart area: title, reference gridlines at
// 25/50/75%, the sample polyline oldest-to-newest, and the most recent
// sample's percentage as a label. capacity fixes the horizontal scale so the
// line grows rightward until the history wraps.
func (r *Renderer) drawLineChart(x, y, w, h int16, values []float64, capacity int, c color.RGBA, title string) {
	tinydraw.FilledRectangle(r.d, x, y, w, h, colorBG)
	tinydraw.Rectangle(r.d, x, y, w, h, colorText)
	tinyfont.WriteLine(r.d, fontSmall, x+4, y+9, title, colorText)

	plotX := x + 2
	plotY := y + 15
	plotW := w - 4
	plotH := h - 20

	for _, p := range []float64{25, 50, 75} {
		gy := mapValueToY(p, plotY, plotH)
		tinydraw.Line(r.d, x+1, gy, x+w-2, gy, colorGrid)
	}

	points := len(values)
	if points == 0 {
		return
	}
	tinyfont.WriteLine(r.d, fontSmall, x+w-26, y+9,
		fmt.Sprintf("%2.0f%%", values[points-1]), colorText)
	if points == 1 {
		r.d.SetPixel(plotX, mapValueToY(values[0], plotY, plotH), c)
		return
	}

	if capacity < points {
		capacity = points
	}
	prevX := plotX
	prevY := mapValueToY(values[0], plotY, plotH)
	for i := 1; i < points; i++ {
		px := plotX + int16(i*int(plotW)/(capacity-1))
		py := mapValueToY(values[i], plotY, plotH)
		tinydraw.Line(r.d, prevX, prevY, px, py, c)
		prevX, prevY = px, py
	}
}

// drawStorageBar draws the latest disk usage as a two-segment proportional
// bar: used on the left, free on the right.
func (r *Renderer) drawStorageBar(x, y, w, h int16, usedPct float64) {
	usedPct = history.Clamp(usedPct, 0, 100)

	tinydraw.FilledRectangle(r.d, x, y, w, h, colorBG)
	tinydraw.Rectangle(r.d, x, y, w, h, colorText)

	usedW := int16(float64(w) * usedPct / 100)
	if usedW > 2 {
		tinydraw.FilledRectangle(r.d, x+1, y+1, usedW-2, h-2, colorUsed)
	}
	if usedW < w-2 {
		tinydraw.FilledRectangle(r.d, x+usedW+1, y+1, w-usedW-2, h-2, colorFree)
	}

	tinyfont.WriteLine(r.d, fontSmall, x+4, y-3, "Storage", colorText)
	tinyfont.WriteLine(r.d, fontSmall, x+w-26, y-3,
		fmt.Sprintf("%2.0f%%", usedPct), colorText)
}

// drawUptime renders the uptime readout in a small cleared box at top right.
func (r *Renderer) drawUptime(seconds uint32) {
	const boxW, boxH = 110, 12
	x := r.w - boxW - 4
	y := int16(2)
	tinydraw.FilledRectangle(r.d, x, y, boxW, boxH, colorBG)
	tinyfont.WriteLine(r.d, fontSmall, x+2, y+8, "Up: "+FormatUptime(seconds), colorText)
}

// FormatUptime renders seconds as "Nd HH:MM:SS", omitting the days segment
// when it is zero.
func FormatUptime(seconds uint32) string {
	days := seconds / 86400
	seconds %= 86400
	hours := seconds / 3600
	seconds %= 3600
	minutes := seconds / 60
	secs := seconds % 60

	if days > 0 {
		return fmt.Sprintf("%dd %02d:%02d:%02d", days, hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}

// ClockFromTimestamp extracts the time of day from an ISO-8601 timestamp by
// taking the 8 characters after the date/time separator. A timestamp with no
// separator, or one too short, yields the placeholder readout.
func ClockFromTimestamp(ts string) string {
	tpos := strings.IndexByte(ts, 'T')
	if tpos < 0 || len(ts) < tpos+9 {
		return "--:--:--"
	}
	return ts[tpos+1 : tpos+9]
}
