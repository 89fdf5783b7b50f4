// Package styles provides Lipgloss styles for the segcut terminal UI using the Ciapre colour palette.
package styles

import "github.com/charmbracelet/lipgloss"

// Color palette - Ciapre (warm, earthy) theme from Gogh
const (
	// DeepPurple is the main background colour
	DeepPurple = lipgloss.Color("#191C27")
	// DarkPurple is a secondary dark background
	DarkPurple = lipgloss.Color("#181818")
	// Purple is the border/dim accent colour
	Purple = lipgloss.Color("#5C4F4B")
	// BrightPurple is used for highlights and focus states
	BrightPurple = lipgloss.Color("#724D7C")
	// Lavender is a secondary text colour
	Lavender = lipgloss.Color("#AEA47A")
	// LightLavender is the primary text colour
	LightLavender = lipgloss.Color("#F3DBB2")
	// Pink is used for headers
	Pink = lipgloss.Color("#D33061")
	// Cyan marks interactive elements and output paths
	Cyan = lipgloss.Color("#3097C6")
	// Amber marks work in progress
	Amber = lipgloss.Color("#CC8B3F")
	// Red is used for errors
	Red = lipgloss.Color("#AC3835")
	// Green is used for success
	Green = lipgloss.Color("#A6A75D")
)

// Title is the style for screen headers.
var Title = lipgloss.NewStyle().
	Foreground(Pink).
	Bold(true)

// PrimaryText is the style for primary text content
var PrimaryText = lipgloss.NewStyle().
	Foreground(LightLavender)

// SecondaryText is the style for less prominent text
var SecondaryText = lipgloss.NewStyle().
	Foreground(Lavender)

// Muted is for hints and placeholders.
var Muted = lipgloss.NewStyle().
	Foreground(Purple)

// Path is the style for file paths.
var Path = lipgloss.NewStyle().
	Foreground(Cyan)

// Pending is the style for the segment being cut.
var Pending = lipgloss.NewStyle().
	Foreground(Amber)

// Error is the style for error messages
var Error = lipgloss.NewStyle().
	Foreground(Red).
	Bold(true)

// Success is the style for success messages
var Success = lipgloss.NewStyle().
	Foreground(Green).
	Bold(true)
