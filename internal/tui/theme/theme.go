package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Role is the semantic style of a run of text on screen.
type Role int

const (
	RoleNormal Role = iota
	RoleBold
	RoleSelected
	RoleSelectedDim
	RoleScrollTrack
	RoleScrollTrackDim
	RoleScrollThumb
	RoleScrollThumbDim
	RoleStatus
	RolePromptLabel
	roleCount
)

var roleNames = [roleCount]string{
	RoleNormal:         "normal",
	RoleBold:           "bold",
	RoleSelected:       "selected",
	RoleSelectedDim:    "selected-dim",
	RoleScrollTrack:    "scroll-track",
	RoleScrollTrackDim: "scroll-track-dim",
	RoleScrollThumb:    "scroll-thumb",
	RoleScrollThumbDim: "scroll-thumb-dim",
	RoleStatus:         "status",
	RolePromptLabel:    "prompt-label",
}

func (r Role) String() string {
	if r < 0 || r >= roleCount {
		return "unknown"
	}
	return roleNames[r]
}

type Theme struct {
	styles [roleCount]lipgloss.Style
}

// New builds the monochrome theme on r. Only attributes are used so the
// dashboard looks the same on every color profile.
func New(r *lipgloss.Renderer) Theme {
	var t Theme
	t.styles[RoleNormal] = r.NewStyle()
	t.styles[RoleBold] = r.NewStyle().Bold(true)
	t.styles[RoleSelected] = r.NewStyle().Reverse(true)
	t.styles[RoleSelectedDim] = r.NewStyle().Faint(true).Reverse(true)
	t.styles[RoleScrollTrack] = r.NewStyle()
	t.styles[RoleScrollTrackDim] = r.NewStyle().Faint(true)
	t.styles[RoleScrollThumb] = r.NewStyle().Reverse(true)
	t.styles[RoleScrollThumbDim] = r.NewStyle().Faint(true).Reverse(true)
	t.styles[RoleStatus] = r.NewStyle().Reverse(true)
	t.styles[RolePromptLabel] = r.NewStyle().Reverse(true)
	return t
}

func (t Theme) Style(role Role) lipgloss.Style {
	if role < 0 || role >= roleCount {
		role = RoleNormal
	}
	return t.styles[role]
}

func (t Theme) Render(role Role, text string) string {
	if text == "" {
		return text
	}
	return t.Style(role).Render(text)
}

// Dim returns the unfocused variant of a role.
func Dim(role Role) Role {
	switch role {
	case RoleSelected:
		return RoleSelectedDim
	case RoleScrollTrack:
		return RoleScrollTrackDim
	case RoleScrollThumb:
		return RoleScrollThumbDim
	default:
		return role
	}
}
