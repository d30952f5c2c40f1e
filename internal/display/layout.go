package display

// Layout selects which dashboard screen is drawn. The selection is cyclic
// and advances only on touch down edges.
type Layout int

const (
	LayoutCharts Layout = iota
	LayoutClock

	layoutCount
)

func (l Layout) String() string {
	switch l {
	case LayoutCharts:
		return "charts"
	case LayoutClock:
		return "clock"
	default:
		return "unknown"
	}
}

// Next returns the layout following l in the cycle. This is the whole
// transition function for touch down edges; it is independent of any
// rendering code.
func (l Layout) Next() Layout {
	return (l + 1) % layoutCount
}
