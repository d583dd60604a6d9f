package automation

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/gravsim/internal/timescale"
)

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.yaml")
	data := `name: demo
events:
  - at: 2
    action: pause
  - at: 1
    action: faster
    hold: 2
  - at: 3
    action: resume
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadScript(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if s.Name != "demo" || len(s.Events) != 3 {
		t.Errorf("unexpected script: %+v", s)
	}
}

func TestLoadScriptUnknownAction(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("events:\n  - at: 0\n    action: warp\n"), 0644)

	if _, err := LoadScript(path); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("expected ErrUnknownAction, got %v", err)
	}
}

func TestPlayer(t *testing.T) {
	clock := timescale.New(timescale.DefaultOptions())
	spawned := 0
	s := &Script{Events: []Event{
		{At: 2, Action: ActionPause},
		{At: 1, Action: ActionFaster, Hold: 2},
		{At: 3, Action: ActionResume},
		{At: 4, Action: ActionSpawn, Value: 3},
		{At: 5, Action: ActionSetSpeed, Value: 0.25},
	}}
	p := NewPlayer(s, clock, func() error { spawned++; return nil })

	steps := []struct {
		wall  float64
		speed float64
	}{
		{0.5, 1},
		{1, 2},
		{2.5, 0},
		{3, 2},
		{5, 0.25},
	}
	for i, st := range steps {
		if err := p.Control(i, st.wall); err != nil {
			t.Fatalf("control at %f: %v", st.wall, err)
		}
		if clock.Speed() != st.speed {
			t.Errorf("at %f: expected speed %f, got %f", st.wall, st.speed, clock.Speed())
		}
	}
	if spawned != 3 {
		t.Errorf("expected 3 spawns, got %d", spawned)
	}
	if !p.Done() {
		t.Error("expected every event to have fired")
	}
}

func TestPlayerSpawnUnavailable(t *testing.T) {
	clock := timescale.New(timescale.DefaultOptions())
	p := NewPlayer(&Script{Events: []Event{{Action: ActionSpawn}}}, clock, nil)
	if err := p.Control(0, 0); err == nil {
		t.Error("expected error without a spawn function")
	}
}
