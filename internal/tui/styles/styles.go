package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	InkBlue   = lipgloss.Color("#3B82F6")
	DimGray   = lipgloss.Color("#6B7280")
	LightGray = lipgloss.Color("#9CA3AF")
	White     = lipgloss.Color("#F9FAFB")
	Green     = lipgloss.Color("#10B981")
	Red       = lipgloss.Color("#EF4444")
	Gold      = lipgloss.Color("#E5A00D")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(InkBlue)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	StarStyle = lipgloss.NewStyle().
			Foreground(Gold)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(InkBlue)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(LightGray)
)

// Raw list indicator characters (unstyled)
const (
	UnreadIndicator = "●"
	StarIndicator   = "★"
)
