// Package ui provides the terminal user interface using Bubble Tea. The
// frame loop runs here: every frame tick advances the clock and kinematics,
// syncs the scene graph and asks the compositor for a composited frame.
package ui

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-helios/internal/astro"
	"github.com/litescript/ls-helios/internal/config"
	"github.com/litescript/ls-helios/internal/logging"
	"github.com/litescript/ls-helios/internal/render"
	"github.com/litescript/ls-helios/internal/scene"
	"github.com/litescript/ls-helios/internal/sim"
)

// hudLines is the number of rows reserved under the canvas.
const hudLines = 3

// FrameTickMsg drives one unit of frame work.
type FrameTickMsg time.Time

// LabelMode controls which body labels are drawn.
type LabelMode int

const (
	LabelNone LabelMode = iota
	LabelFocused
	LabelAll
)

// Discrete zoom levels for clean stepping.
var zoomLevels = []float64{0.25, 0.5, 0.75, 1.0, 1.5, 2.0, 3.0, 5.0}

const defaultZoomLevel = 3 // index of 1.0

// Model is the root Bubble Tea model.
type Model struct {
	cfg    config.Config
	logger *logging.Logger

	// Simulation and render pipeline.
	sys   *sim.System
	graph *scene.Graph
	clock *sim.Clock
	comp  *render.Compositor

	// Viewport. Resizes are queued and applied at the next frame boundary
	// so a frame never renders with mismatched buffer dimensions.
	width, height int
	pendingW      int
	pendingH      int
	resizePending bool
	ready         bool

	// Pause state: user pause and hidden-terminal pause combine.
	userPaused bool
	hidden     bool

	// View state.
	timeScale  float64
	speedBoost float64
	zoomLevel  int
	labelMode  LabelMode
	focusIdx   int // -1 = star, otherwise index into cfg.Bodies

	frame    *render.Buffer // last composited frame, nil if degraded
	frameErr error
}

// New creates the root model with a ready simulation pipeline.
func New(cfg config.Config, sys *sim.System, graph *scene.Graph, comp *render.Compositor, logger *logging.Logger) Model {
	return Model{
		cfg:        cfg,
		logger:     logger,
		sys:        sys,
		graph:      graph,
		clock:      sim.NewClock(),
		comp:       comp,
		timeScale:  cfg.TimeScale,
		speedBoost: cfg.SpeedBoost,
		zoomLevel:  defaultZoomLevel,
		labelMode:  LabelFocused,
		focusIdx:   -1,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.frameTickCmd()
}

func (m Model) frameTickCmd() tea.Cmd {
	interval := time.Second / time.Duration(m.cfg.FPS)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameTickMsg(t)
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// Queued: applied at the next frame boundary, never mid-frame.
		m.pendingW = msg.Width
		m.pendingH = msg.Height
		m.resizePending = true
		m.ready = true
		return m, nil

	case tea.BlurMsg:
		m.hidden = true
		m.applyPause()
		return m, nil

	case tea.FocusMsg:
		m.hidden = false
		m.applyPause()
		return m, nil

	case FrameTickMsg:
		m = m.stepFrame()
		return m, m.frameTickCmd()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case " ":
		m.userPaused = !m.userPaused
		m.applyPause()

	case "b":
		m.comp.SetEnabled(!m.comp.Enabled())

	case "l":
		m.labelMode = (m.labelMode + 1) % 3

	case "j", "[":
		m.focusIdx--
		if m.focusIdx < -1 {
			m.focusIdx = len(m.cfg.Bodies) - 1
		}
	case "k", "]":
		m.focusIdx++
		if m.focusIdx >= len(m.cfg.Bodies) {
			m.focusIdx = -1
		}

	case "+", "=":
		if m.zoomLevel < len(zoomLevels)-1 {
			m.zoomLevel++
		}
	case "-":
		if m.zoomLevel > 0 {
			m.zoomLevel--
		}

	case ">":
		m.timeScale *= 2
	case "<":
		if m.timeScale > 1.0/16 {
			m.timeScale /= 2
		}

	case "r":
		m.zoomLevel = defaultZoomLevel
		m.timeScale = m.cfg.TimeScale
		m.speedBoost = m.cfg.SpeedBoost
		m.focusIdx = -1
	}
	return m, nil
}

// applyPause reconciles the clock with the combined pause state. Visibility
// changes only ever touch the clock, never the compositor or the scene.
func (m *Model) applyPause() {
	if m.userPaused || m.hidden {
		m.clock.Pause()
	} else {
		m.clock.Resume()
	}
}

// stepFrame runs one unit of frame work: apply any queued resize, advance
// the simulation, sync the scene and composite.
func (m Model) stepFrame() Model {
	if m.resizePending {
		m.width = m.pendingW
		m.height = m.pendingH
		m.comp.Resize(m.width, m.canvasHeight())
		m.resizePending = false
	}
	if !m.ready {
		return m
	}

	dt := m.clock.Tick()
	m.sys.Advance(dt, m.timeScale, m.speedBoost)
	m.graph.Sync(m.sys)
	m.applyLabelVisibility()

	frame, err := m.comp.RenderFrame(m.graph, m.view())
	m.frame = frame
	m.frameErr = err
	return m
}

func (m Model) canvasHeight() int {
	h := m.height - hudLines
	if h < 0 {
		h = 0
	}
	return h
}

// FitProjection builds a projection that fits the outermost orbit inside a
// canvas of the given size.
func FitProjection(w, h int, maxOrbitUnits float64) astro.ProjectionConfig {
	cfg := astro.DefaultProjectionConfig()
	if w <= 0 || h <= 0 || maxOrbitUnits <= 0 {
		return cfg
	}
	maxDisplay := math.Min(float64(w)/2, float64(h)/2/cfg.Aspect) * 0.95
	cfg.CellsPerUnit = maxDisplay / math.Log10(maxOrbitUnits+1)
	return cfg
}

func (m Model) maxOrbitUnits() float64 {
	max := 0.0
	for _, b := range m.cfg.Bodies {
		if r := b.SemiMajorAU * m.cfg.UnitsPerAU; r > max {
			max = r
		}
	}
	return max
}

func (m Model) view() render.View {
	proj := FitProjection(m.width, m.canvasHeight(), m.maxOrbitUnits())
	proj.Zoom = zoomLevels[m.zoomLevel]
	return render.View{
		Proj:    proj,
		OriginX: m.width / 2,
		OriginY: m.canvasHeight() / 2,
		Time:    m.sys.Elapsed(),
	}
}

// focusedName returns the display name of the focused object.
func (m Model) focusedName() string {
	if m.focusIdx < 0 || m.focusIdx >= len(m.cfg.Bodies) {
		return m.cfg.StarName
	}
	return m.cfg.Bodies[m.focusIdx].Name
}

// applyLabelVisibility toggles label nodes per the label mode. The
// compositor and rasterizer never special-case labels; visibility is the
// only mechanism.
func (m Model) applyLabelVisibility() {
	focused := m.focusedName()
	for name, label := range m.graph.Labels {
		switch m.labelMode {
		case LabelAll:
			label.Visible = true
		case LabelFocused:
			label.Visible = name == focused
		default:
			label.Visible = false
		}
	}
}
