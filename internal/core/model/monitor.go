package model

// MonitorInfo describes one attached display.
type MonitorInfo struct {
	Handle      string  `json:"handle"`
	Bounds      Rect    `json:"bounds"`
	DPI         int     `json:"dpi"`
	ScaleFactor float64 `json:"scale_factor"`
	IsPrimary   bool    `json:"is_primary"`
}

// Contains reports whether the point lies within this monitor.
func (monitor MonitorInfo) Contains(point Point) bool {
	return monitor.Bounds.Contains(point)
}

// Center returns the monitor's center point.
func (monitor MonitorInfo) Center() Point {
	return Point{
		X: monitor.Bounds.X + monitor.Bounds.Width/2,
		Y: monitor.Bounds.Y + monitor.Bounds.Height/2,
	}
}
