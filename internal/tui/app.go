package tui

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/windtunnel/internal/logging"
	"github.com/san-kum/windtunnel/internal/tunnel"
	"github.com/san-kum/windtunnel/internal/viz"
	"gonum.org/v1/gonum/spatial/r3"
)

type state int

const (
	stateMain state = iota
	stateEdit
	statePrompt
)

type focus int

const (
	focusParams focus = iota
	focusObject
)

// action is a file operation waiting for a path from the prompt.
type action int

const (
	actLoadSTL action = iota
	actSaveConfig
	actLoadConfig
	actExportResult
	actExportRange
	actPlotRange
	actScreenshot
)

var actions = map[action]struct {
	label string
	def   string
}{
	actLoadSTL:      {"load STL", ""},
	actSaveConfig:   {"save config", "windtunnel.json"},
	actLoadConfig:   {"load config", "windtunnel.json"},
	actExportResult: {"export result", "result.json"},
	actExportRange:  {"export range", "range.json"},
	actPlotRange:    {"plot range", "range.png"},
	actScreenshot:   {"screenshot", "screenshot.png"},
}

type model struct {
	sess   *tunnel.Session
	params []param
	log    *logging.Logger

	state  state
	focus  focus
	cursor int

	editBuf string

	pending   action
	promptBuf string

	width  int
	height int
}

func NewApp(sess *tunnel.Session) *model {
	return &model{
		sess:   sess,
		params: newParams(),
		log:    logging.Default(),
		width:  120,
		height: 40,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.state {
	case stateEdit:
		return m.editKey(msg)
	case statePrompt:
		return m.promptKey(msg)
	}
	return m.mainKey(msg)
}

func (m model) editKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		v, err := strconv.ParseFloat(strings.TrimSpace(m.editBuf), 64)
		if err != nil {
			m.sess.Status = fmt.Sprintf("Invalid value: %q", m.editBuf)
		} else {
			m.setParam(v)
		}
		m.state = stateMain
		m.editBuf = ""
	case "esc":
		m.state = stateMain
		m.editBuf = ""
	case "backspace":
		if len(m.editBuf) > 0 {
			m.editBuf = m.editBuf[:len(m.editBuf)-1]
		}
	default:
		if len(msg.String()) == 1 {
			c := msg.String()[0]
			if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == 'e' {
				m.editBuf += string(c)
			}
		}
	}
	return m, nil
}

func (m model) promptKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		path := strings.TrimSpace(m.promptBuf)
		m.state = stateMain
		m.promptBuf = ""
		m.runAction(m.pending, path)
	case tea.KeyEsc:
		m.state = stateMain
		m.promptBuf = ""
		m.sess.Status = "Cancelled."
	case tea.KeyBackspace:
		if r := []rune(m.promptBuf); len(r) > 0 {
			m.promptBuf = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.promptBuf += " "
	case tea.KeyRunes:
		m.promptBuf += string(msg.Runes)
	}
	return m, nil
}

func (m model) mainKey(msg tea.KeyMsg) (model, tea.Cmd) {
	ctx := context.Background()
	s := m.sess

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		if m.focus == focusParams {
			m.focus = focusObject
		} else {
			m.focus = focusParams
		}
		return m, nil
	case "r":
		s.RunSimulation(ctx)
	case "a":
		s.RangeAnalysis(s.Range)
	case "p":
		s.VisualizePressure()
	case "s":
		s.VisualizeStreamlines(ctx)
	case "t":
		s.VisualizeTunnelPressure()
	case "b":
		s.ToggleTurbulence(ctx)
	case "g":
		s.ApplyScale()
	case "0":
		s.ResetObject()
	case "1", "2", "3", "4":
		name := viz.Views()[int(msg.String()[0]-'1')].Name
		s.SetView(name)
	case "+", "=":
		s.Camera.ZoomIn()
	case "-", "_":
		s.Camera.ZoomOut()
	case "[":
		s.Camera.Orbit(-15, 0)
	case "]":
		s.Camera.Orbit(15, 0)
	case "{":
		s.Camera.Orbit(0, -15)
	case "}":
		s.Camera.Orbit(0, 15)
	case "T":
		s.Theme = viz.NextTheme(s.Theme.Name)
		s.Status = fmt.Sprintf("Theme: %s", s.Theme.Name)
	case "v":
		s.SaveRun(ctx, false)
	case "V":
		s.SaveRun(ctx, true)
	case "o":
		return m.prompt(actLoadSTL), nil
	case "ctrl+s", "w":
		return m.prompt(actSaveConfig), nil
	case "ctrl+o", "O":
		return m.prompt(actLoadConfig), nil
	case "e":
		return m.prompt(actExportResult), nil
	case "E":
		return m.prompt(actExportRange), nil
	case "P":
		return m.prompt(actPlotRange), nil
	case "c":
		return m.prompt(actScreenshot), nil
	default:
		if m.focus == focusObject {
			return m.objectKey(msg)
		}
		return m.paramKey(msg)
	}
	return m, nil
}

func (m model) paramKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.params)-1 {
			m.cursor++
		}
	case "left", "h":
		p := m.params[m.cursor]
		m.setParam(p.get(m.sess) - p.delta)
	case "right", "l":
		p := m.params[m.cursor]
		m.setParam(p.get(m.sess) + p.delta)
	case "enter", " ":
		m.state = stateEdit
		m.editBuf = strconv.FormatFloat(m.params[m.cursor].get(m.sess), 'g', -1, 64)
	}
	return m, nil
}

// objectKey moves the object in the screen plane of the iso view: arrows
// move along x and z, pgup/pgdown along y. x, y and z rotate.
func (m model) objectKey(msg tea.KeyMsg) (model, tea.Cmd) {
	s := m.sess
	step := s.MoveStep
	switch msg.String() {
	case "left", "h":
		s.Move(r3.Vec{X: -step})
	case "right", "l":
		s.Move(r3.Vec{X: step})
	case "up", "k":
		s.Move(r3.Vec{Z: step})
	case "down", "j":
		s.Move(r3.Vec{Z: -step})
	case "pgup", "K":
		s.Move(r3.Vec{Y: step})
	case "pgdown", "J":
		s.Move(r3.Vec{Y: -step})
	case "x", "y", "z":
		s.Rotate(msg.String(), s.RotateStep)
	case "X", "Y", "Z":
		s.Rotate(strings.ToLower(msg.String()), -s.RotateStep)
	}
	return m, nil
}

func (m *model) setParam(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		m.sess.Status = "Invalid value"
		return
	}
	p := m.params[m.cursor]
	// keep adjustments from drifting on binary fractions
	v = math.Round(v*1e9) / 1e9
	if err := p.set(m.sess, v); err != nil {
		return
	}
	m.log.Debug("param", logging.F("name", p.name), logging.F("value", v))
}

func (m model) prompt(a action) model {
	m.state = statePrompt
	m.pending = a
	m.promptBuf = actions[a].def
	return m
}

func (m *model) runAction(a action, path string) {
	s := m.sess
	switch a {
	case actLoadSTL:
		if s.LoadSTL(path) == nil {
			s.Camera.Fit(s.Config.Tunnel.Bounds())
		}
	case actSaveConfig:
		s.SaveConfig(path)
	case actLoadConfig:
		s.LoadConfig(path)
	case actExportResult:
		s.ExportResult(path, false)
	case actExportRange:
		s.ExportRange(path)
	case actPlotRange:
		s.PlotRange(path)
	case actScreenshot:
		s.Screenshot(path)
	}
}

// Run starts the full-screen terminal UI on sess.
func Run(sess *tunnel.Session) error {
	p := tea.NewProgram(NewApp(sess), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
