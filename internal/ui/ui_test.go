package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-helios/internal/astro"
	"github.com/litescript/ls-helios/internal/config"
	"github.com/litescript/ls-helios/internal/logging"
	"github.com/litescript/ls-helios/internal/render"
	"github.com/litescript/ls-helios/internal/scene"
	"github.com/litescript/ls-helios/internal/shader"
	"github.com/litescript/ls-helios/internal/sim"
)

// fakeNow returns a controllable time source stepping 16ms per call after
// the first.
func fakeNow() func() time.Time {
	t := time.Unix(1700000000, 0)
	return func() time.Time {
		t = t.Add(16 * time.Millisecond)
		return t
	}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := config.Default()
	cfg.EpochSeconds = 1700000000

	sys, err := sim.NewSystem(cfg)
	if err != nil {
		t.Fatalf("NewSystem: %v", err)
	}
	g, err := scene.Build(cfg, sys, shader.NewLava(shader.DefaultLavaConfig()))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	comp := render.NewCompositor(cfg.Bloom, logging.Discard())

	m := New(cfg, sys, g, comp, logging.Discard())
	m.clock = sim.NewClockFunc(fakeNow())
	return m
}

func resize(m Model, w, h int) Model {
	next, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return next.(Model)
}

func tick(m Model) Model {
	next, _ := m.Update(FrameTickMsg(time.Now()))
	return next.(Model)
}

func key(m Model, k string) Model {
	var msg tea.KeyMsg
	switch k {
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	next, _ := m.Update(msg)
	return next.(Model)
}

func bodyAngles(m Model) []float64 {
	angles := make([]float64, len(m.sys.Bodies))
	for i, b := range m.sys.Bodies {
		angles[i] = b.Angle
	}
	return angles
}

func TestResizeAppliedAtFrameBoundary(t *testing.T) {
	m := newTestModel(t)
	m = resize(m, 120, 38)

	// The resize is queued: no frame has run, so no buffer exists yet.
	if m.frame != nil {
		t.Fatal("frame rendered before any frame tick")
	}

	m = tick(m)
	if m.frame == nil {
		t.Fatal("no frame after tick")
	}
	if m.frame.W != 120 || m.frame.H != 38-hudLines {
		t.Errorf("frame dims = %dx%d, want %dx%d", m.frame.W, m.frame.H, 120, 38-hudLines)
	}
}

func TestResizeDoesNotAdvanceSimulation(t *testing.T) {
	m := newTestModel(t)
	m = resize(m, 120, 38)
	m = tick(m)

	before := bodyAngles(m)
	m = resize(m, 80, 24)
	m = resize(m, 200, 50)

	after := bodyAngles(m)
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("body %d angle changed on resize without a frame tick", i)
		}
	}
}

func TestPauseKeyStopsAdvance(t *testing.T) {
	m := newTestModel(t)
	m = resize(m, 120, 38)
	m = tick(m) // arm the clock
	m = tick(m)

	m = key(m, " ")
	if !m.userPaused {
		t.Fatal("space did not set pause")
	}

	before := bodyAngles(m)
	m = tick(m)
	m = tick(m)
	after := bodyAngles(m)
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("body %d advanced while paused", i)
		}
	}

	// Resuming advances again.
	m = key(m, " ")
	m = tick(m)
	m = tick(m)
	resumed := bodyAngles(m)
	if resumed[0] == after[0] {
		t.Error("bodies did not advance after resume")
	}
}

func TestBlurPausesUntilFocus(t *testing.T) {
	m := newTestModel(t)
	m = resize(m, 120, 38)
	m = tick(m)
	m = tick(m)

	next, _ := m.Update(tea.BlurMsg{})
	m = next.(Model)

	before := bodyAngles(m)
	m = tick(m)
	if angles := bodyAngles(m); angles[0] != before[0] {
		t.Error("bodies advanced while terminal hidden")
	}

	next, _ = m.Update(tea.FocusMsg{})
	m = next.(Model)
	m = tick(m)
	m = tick(m)
	if angles := bodyAngles(m); angles[0] == before[0] {
		t.Error("bodies did not advance after focus returned")
	}
}

func TestBlurDoesNotOverrideUserPause(t *testing.T) {
	m := newTestModel(t)
	m = resize(m, 120, 38)
	m = tick(m)

	m = key(m, " ") // user pause
	next, _ := m.Update(tea.BlurMsg{})
	m = next.(Model)
	next, _ = m.Update(tea.FocusMsg{})
	m = next.(Model)

	if !m.clock.Paused() {
		t.Error("focus return resumed the clock despite user pause")
	}
}

func TestZoomKeysStayInRange(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < 20; i++ {
		m = key(m, "+")
	}
	if m.zoomLevel != len(zoomLevels)-1 {
		t.Errorf("zoom level = %d, want max %d", m.zoomLevel, len(zoomLevels)-1)
	}
	for i := 0; i < 20; i++ {
		m = key(m, "-")
	}
	if m.zoomLevel != 0 {
		t.Errorf("zoom level = %d, want 0", m.zoomLevel)
	}
}

func TestLabelModeCycles(t *testing.T) {
	m := newTestModel(t)
	if m.labelMode != LabelFocused {
		t.Fatalf("initial label mode = %v, want LabelFocused", m.labelMode)
	}
	m = key(m, "l")
	if m.labelMode != LabelAll {
		t.Errorf("after one press: %v, want LabelAll", m.labelMode)
	}
	m = key(m, "l")
	if m.labelMode != LabelNone {
		t.Errorf("after two presses: %v, want LabelNone", m.labelMode)
	}
	m = key(m, "l")
	if m.labelMode != LabelFocused {
		t.Errorf("after three presses: %v, want LabelFocused", m.labelMode)
	}
}

func TestLabelVisibilityFollowsMode(t *testing.T) {
	m := newTestModel(t)
	m = resize(m, 120, 38)

	m.labelMode = LabelAll
	m = tick(m)
	for name, label := range m.graph.Labels {
		if !label.Visible {
			t.Errorf("label %q hidden in LabelAll mode", name)
		}
	}

	m.labelMode = LabelNone
	m = tick(m)
	for name, label := range m.graph.Labels {
		if label.Visible {
			t.Errorf("label %q visible in LabelNone mode", name)
		}
	}
}

func TestBloomToggleKey(t *testing.T) {
	m := newTestModel(t)
	if !m.comp.Enabled() {
		t.Fatal("bloom should start enabled")
	}
	m = key(m, "b")
	if m.comp.Enabled() {
		t.Error("b did not disable bloom")
	}
	m = key(m, "b")
	if !m.comp.Enabled() {
		t.Error("b did not re-enable bloom")
	}
}

func TestFocusCycleWraps(t *testing.T) {
	m := newTestModel(t)
	n := len(m.cfg.Bodies)

	m = key(m, "k")
	if m.focusIdx != 0 {
		t.Fatalf("first next = %d, want 0", m.focusIdx)
	}
	for i := 0; i < n; i++ {
		m = key(m, "k")
	}
	if m.focusIdx != -1 {
		t.Errorf("cycle past last body = %d, want -1 (star)", m.focusIdx)
	}
	m = key(m, "j")
	if m.focusIdx != n-1 {
		t.Errorf("prev from star = %d, want %d", m.focusIdx, n-1)
	}
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(t)
	for _, k := range []string{"q", "ctrl+c"} {
		var msg tea.KeyMsg
		if k == "ctrl+c" {
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		} else {
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Errorf("key %q returned no command", k)
			continue
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("key %q did not quit", k)
		}
	}
}

func TestFitProjectionContainsOutermostOrbit(t *testing.T) {
	w, h := 160, 45
	maxOrbit := 30.07 * 6.0 // outermost orbit in scene units
	proj := FitProjection(w, h, maxOrbit)

	rx := astro.DisplayRadius(maxOrbit, proj)
	ry := rx * proj.Aspect
	if rx > float64(w)/2 {
		t.Errorf("horizontal extent %v exceeds half-width %v", rx, float64(w)/2)
	}
	if ry > float64(h)/2 {
		t.Errorf("vertical extent %v exceeds half-height %v", ry, float64(h)/2)
	}
}

func TestViewShowsHUDState(t *testing.T) {
	m := newTestModel(t)
	m = resize(m, 120, 38)
	m = tick(m)

	out := m.View()
	if !strings.Contains(out, m.cfg.StarName) {
		t.Error("HUD missing star name when star is focused")
	}

	m = key(m, "k") // focus first body
	m = tick(m)
	out = m.View()
	if !strings.Contains(out, m.cfg.Bodies[0].Name) {
		t.Errorf("HUD missing focused body name %q", m.cfg.Bodies[0].Name)
	}

	m = key(m, " ")
	out = m.View()
	if !strings.Contains(out, "PAUSED") {
		t.Error("HUD missing pause indicator")
	}
}

func TestRenderPlainDimensions(t *testing.T) {
	buf, err := render.NewBuffer(10, 4)
	if err != nil {
		t.Fatal(err)
	}
	out := RenderPlain(buf)
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("plain render has %d lines, want 4", len(lines))
	}
	for i, line := range lines {
		if len([]rune(line)) != 10 {
			t.Errorf("line %d has %d runes, want 10", i, len([]rune(line)))
		}
	}
}
