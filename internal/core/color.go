package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for road elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorWhite
	ColorBrightWhite
	ColorGray
	ColorDarkGray
	ColorDim
	ColorStorm
)
