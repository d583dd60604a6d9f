package viz

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/scene"
	"github.com/san-kum/gravsim/internal/timescale"
)

func testModel(t *testing.T) Model {
	t.Helper()
	cfg := config.GetPreset("binary")
	s, err := scene.Build(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return NewModel(s, timescale.New(cfg.ClockOptions()), cfg.Tick)
}

// press sends key one second after the previous press.
func press(m Model, key string) Model {
	next, _ := m.handleKey(key, m.lastNudge.Add(time.Second))
	return next.(Model)
}

func TestModelStep(t *testing.T) {
	m := testModel(t)
	before := m.scene.World.Positions()

	next, cmd := m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if m.ticks != 1 || m.scene.World.Steps() != 1 {
		t.Errorf("expected one step, got ticks=%d steps=%d", m.ticks, m.scene.World.Steps())
	}
	if m.scene.World.Positions()[1] == before[1] {
		t.Error("orbiting body should move")
	}
	if len(m.trails[1]) != 1 {
		t.Errorf("expected one trail point, got %d", len(m.trails[1]))
	}
}

func TestModelPause(t *testing.T) {
	m := testModel(t)
	m = press(m, " ")
	if !m.clock.Paused() {
		t.Fatal("space should pause")
	}

	before := m.scene.World.Positions()
	m.step()
	if m.scene.World.Positions()[1] != before[1] {
		t.Error("paused world should not move")
	}

	m = press(m, " ")
	if m.clock.Speed() != 1 {
		t.Errorf("resume should restore speed 1, got %f", m.clock.Speed())
	}
}

func TestModelSpeedKeys(t *testing.T) {
	m := testModel(t)

	m = press(m, "+")
	if m.clock.Speed() <= 1 {
		t.Errorf("expected faster speed, got %f", m.clock.Speed())
	}
	m = press(m, "0")
	if m.clock.Speed() != 1 {
		t.Errorf("expected reset to 1, got %f", m.clock.Speed())
	}
	m = press(m, "shift+down")
	if !m.clock.Paused() {
		t.Errorf("fast decrease should clamp at zero, got %f", m.clock.Speed())
	}
}

func TestModelSpawn(t *testing.T) {
	m := testModel(t)
	n := m.scene.World.Len()

	m = press(m, "n")
	if m.scene.World.Len() != n+1 {
		t.Errorf("expected %d bodies, got %d", n+1, m.scene.World.Len())
	}
	if len(m.trails) != n+1 {
		t.Errorf("expected a trail per body, got %d", len(m.trails))
	}
	_ = m.View()
}

func TestModelQuit(t *testing.T) {
	m := testModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestNudgeElapsed(t *testing.T) {
	m := testModel(t)
	now := time.Now()

	if got := m.nudgeElapsed(now); got != maxNudgeGap.Seconds() {
		t.Errorf("first press should count as %f, got %f", maxNudgeGap.Seconds(), got)
	}
	if got := m.nudgeElapsed(now.Add(100 * time.Millisecond)); got != 0.1 {
		t.Errorf("expected 0.1, got %f", got)
	}
	if got := m.nudgeElapsed(now.Add(101 * time.Millisecond)); got != minNudgeGap.Seconds() {
		t.Errorf("expected %f, got %f", minNudgeGap.Seconds(), got)
	}
}

func TestFormatSimTime(t *testing.T) {
	tests := []struct {
		t    float64
		want string
	}{
		{12.34, "12.3s"},
		{7200, "2.00h"},
		{172800, "2.00d"},
	}
	for _, tt := range tests {
		if got := formatSimTime(tt.t); got != tt.want {
			t.Errorf("formatSimTime(%f) = %q, want %q", tt.t, got, tt.want)
		}
	}
}
