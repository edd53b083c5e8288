package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/windtunnel/internal/viz"
)

const panelWidth = 34

func (m model) View() string {
	th := m.sess.Theme
	title := viz.GradientText("w i n d t u n n e l", th.Primary, th.Accent)

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.viewParams(),
		m.viewObject(),
		m.viewResult(),
	)
	scene := m.viewScene()
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", scene)

	var b strings.Builder
	b.WriteString("\n  " + title + "  " + viz.Subtle.Render(m.viewLabel()) + "\n")
	b.WriteString(body + "\n")
	if g := m.viewGraph(); g != "" {
		b.WriteString(g + "\n")
	}
	b.WriteString(m.viewStatus() + "\n")
	b.WriteString(m.viewHints() + "\n")
	return b.String()
}

func (m model) viewLabel() string {
	cam := m.sess.Camera
	if v, err := viz.LookupView(cam.View); err == nil {
		return fmt.Sprintf("%s view  zoom %.1fx  theme %s", v.Label, cam.Zoom, m.sess.Theme.Name)
	}
	return fmt.Sprintf("az %.0f° el %.0f°  zoom %.1fx  theme %s", cam.Azimuth, cam.Elevation, cam.Zoom, m.sess.Theme.Name)
}

func (m model) viewParams() string {
	var b strings.Builder
	head := viz.Title
	if m.focus != focusParams {
		head = viz.Subtle
	}
	b.WriteString(head.Render("parameters") + "\n")
	for i, p := range m.params {
		val := fmt.Sprintf("%10.4g", p.get(m.sess))
		if m.state == stateEdit && i == m.cursor {
			val = fmt.Sprintf("%10s", m.editBuf+"▋")
		}
		line := fmt.Sprintf("%-12s%s %s", p.name, val, p.unit)
		if i == m.cursor && m.focus == focusParams {
			b.WriteString(viz.Selected.Render("▸ "+line) + "\n")
		} else {
			b.WriteString(viz.MetricLabel.Render("  "+line) + "\n")
		}
	}
	return viz.Panel.Width(panelWidth).Render(strings.TrimRight(b.String(), "\n"))
}

func (m model) viewObject() string {
	s := m.sess
	head := viz.Title
	if m.focus != focusObject {
		head = viz.Subtle
	}
	var b strings.Builder
	b.WriteString(head.Render("object") + "\n")
	if s.Object == nil {
		b.WriteString(viz.Subtle.Render("no STL loaded (o)"))
		return viz.Panel.Width(panelWidth).Render(b.String())
	}
	p := s.Config.ObjectPosition
	e := s.Object.Extent()
	b.WriteString(metric("triangles", fmt.Sprintf("%d", s.Object.NumTriangles())) + "\n")
	b.WriteString(metric("position", fmt.Sprintf("%.1f %.1f %.1f", p[0], p[1], p[2])) + "\n")
	b.WriteString(metric("extent", fmt.Sprintf("%.2f %.2f %.2f", e.X, e.Y, e.Z)) + "\n")
	b.WriteString(metric("area", fmt.Sprintf("%.2f m²", s.FrontalArea())))
	return viz.Panel.Width(panelWidth).Render(b.String())
}

func (m model) viewResult() string {
	s := m.sess
	var b strings.Builder
	b.WriteString(viz.Title.Render("result") + "\n")
	if txt := s.ResultText(); txt != "" {
		b.WriteString(viz.MetricValue.Render(txt) + "\n")
	} else {
		b.WriteString(viz.Subtle.Render("press r to run") + "\n")
	}
	b.WriteString(metric("Re", fmt.Sprintf("%.3g", s.Reynolds())) + "\n")
	turb := "off"
	if s.Turbulence {
		turb = "on"
	}
	b.WriteString(metric("turbulence", turb))
	return viz.Panel.Width(panelWidth).Render(b.String())
}

func metric(label, value string) string {
	return viz.MetricLabel.Render(fmt.Sprintf("%-11s", label)) + viz.MetricValue.Render(value)
}

func (m model) sceneSize() (int, int) {
	w := m.width - panelWidth - 8
	h := m.height - 14
	if m.sess.RangeData != nil {
		h -= 12
	}
	if w < 40 {
		w = 40
	}
	if h < 12 {
		h = 12
	}
	return w, h
}

func (m model) viewScene() string {
	w, h := m.sceneSize()
	c := m.sess.Render(w, h)
	return viz.Panel.Render(c.Render(viz.Painter(m.sess.Theme)))
}

func (m model) viewGraph() string {
	data := m.sess.RangeData
	if data == nil || data.Len() < 2 {
		return ""
	}
	w := m.width - 16
	if w < 30 {
		w = 30
	}
	graph := asciigraph.Plot(data.DragForces,
		asciigraph.Height(8),
		asciigraph.Width(w),
		asciigraph.Caption(fmt.Sprintf("drag force (N), %.4g to %.4g m/s", data.Velocities[0], data.Velocities[data.Len()-1])),
	)
	power := "  " + viz.MetricLabel.Render("power ") + viz.SparklineChart(data.Powers, w)
	return graph + "\n" + power
}

func (m model) viewStatus() string {
	s := m.sess
	if m.state == statePrompt {
		label := actions[m.pending].label
		return "  " + viz.Title.Render(label+": ") + m.promptBuf + "▋"
	}
	line := strings.ReplaceAll(s.Status, "\n", "  ")
	if strings.Contains(s.Status, "error") || strings.HasPrefix(s.Status, "Movement blocked") || strings.HasPrefix(s.Status, "No ") {
		return "  " + viz.StatusError.Render(line)
	}
	return "  " + viz.StatusOK.Render(line)
}

func (m model) viewHints() string {
	var hint string
	switch {
	case m.state == statePrompt:
		hint = "enter confirm  esc cancel"
	case m.state == stateEdit:
		hint = "enter set  esc cancel"
	case m.focus == focusObject:
		hint = "←→ x  ↑↓ z  pgup/pgdn y  x/y/z rotate  0 reset  g scale  tab params"
	default:
		hint = "↑↓ select  ←→ adjust  enter edit  tab object"
	}
	common := "r run  a range  s stream  t tunnel p  p surface p  b turb  1-4 view  ±zoom  [] orbit  o stl  w/O config  e/E export  P plot  c shot  v/V save run  T theme  q quit"
	return "  " + viz.KeyHint.Render(hint) + "\n  " + viz.KeyHint.Render(common)
}
