package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-helios/internal/render"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing star system..."
	}
	if m.width < 40 || m.height < 10 {
		return "Terminal too small for the system view"
	}
	if m.frame == nil {
		// Degraded: the compositor refused the viewport. Keep the HUD so
		// the user still sees mode state.
		return lipgloss.JoinVertical(lipgloss.Left, "", m.renderHUD())
	}

	canvas := renderCanvas(m.frame)
	hud := m.renderHUD()
	return lipgloss.JoinVertical(lipgloss.Left, canvas, hud)
}

// renderCanvas converts a composited frame to a styled string. Styles are
// cached per hex color because a frame reuses few distinct colors.
func renderCanvas(buf *render.Buffer) string {
	var b strings.Builder
	styles := make(map[string]lipgloss.Style)

	for y := 0; y < buf.H; y++ {
		if y > 0 {
			b.WriteString("\n")
		}
		for x := 0; x < buf.W; x++ {
			cell := buf.At(x, y)
			if cell.Glyph == ' ' {
				b.WriteByte(' ')
				continue
			}
			hex := cell.Color.Clamped().Hex()
			style, ok := styles[hex]
			if !ok {
				style = lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
				styles[hex] = style
			}
			b.WriteString(style.Render(string(cell.Glyph)))
		}
	}
	return b.String()
}

// RenderPlain converts a frame to plain runes without styling, for
// non-terminal output.
func RenderPlain(buf *render.Buffer) string {
	var b strings.Builder
	for y := 0; y < buf.H; y++ {
		if y > 0 {
			b.WriteString("\n")
		}
		for x := 0; x < buf.W; x++ {
			b.WriteRune(buf.At(x, y).Glyph)
		}
	}
	return b.String()
}

func (m Model) renderHUD() string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(12)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	alertStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)

	// Header line with focus info.
	if m.focusIdx >= 0 && m.focusIdx < len(m.cfg.Bodies) {
		body := m.cfg.Bodies[m.focusIdx]
		b.WriteString(headerStyle.Render(fmt.Sprintf("◆ %s", body.Name)))
		b.WriteString("  ")
		b.WriteString(labelStyle.Render("Distance:"))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%.3f AU", body.SemiMajorAU)))
		b.WriteString("  ")
		b.WriteString(labelStyle.Render("Period:"))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%.1f d", body.PeriodDays)))
	} else {
		b.WriteString(headerStyle.Render(fmt.Sprintf("☉ %s", m.cfg.StarName)))
		b.WriteString("  ")
		b.WriteString(dimStyle.Render("(center of the system)"))
	}
	b.WriteString("\n")

	// Second line: mode indicators.
	labelName := "off"
	switch m.labelMode {
	case LabelFocused:
		labelName = "focus"
	case LabelAll:
		labelName = "all"
	}
	bloomName := "off"
	if m.comp.Enabled() {
		bloomName = "on"
	}

	b.WriteString(dimStyle.Render("Zoom:"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.2gx", zoomLevels[m.zoomLevel])))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("Warp:"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.3gx", m.timeScale*m.speedBoost)))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("Labels:"))
	b.WriteString(valueStyle.Render(labelName))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("Bloom:"))
	b.WriteString(valueStyle.Render(bloomName))
	if m.userPaused {
		b.WriteString("  ")
		b.WriteString(alertStyle.Render("‖ PAUSED"))
	} else if m.hidden {
		b.WriteString("  ")
		b.WriteString(dimStyle.Render("(idle)"))
	}
	b.WriteString("\n")

	b.WriteString(dimStyle.Render("  [space] pause  [+/-] zoom  [</>] warp  [j/k] focus  [l] labels  [b] bloom  [q] quit"))
	return b.String()
}
