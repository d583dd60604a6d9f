// Package automation replays scripted live-view input during headless runs.
package automation

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/gravsim/internal/timescale"
)

var ErrUnknownAction = errors.New("automation: unknown action")

// Action names accepted in a script.
const (
	ActionPause    = "pause"
	ActionResume   = "resume"
	ActionToggle   = "toggle"
	ActionFaster   = "faster"
	ActionSlower   = "slower"
	ActionReset    = "reset"
	ActionSpawn    = "spawn"
	ActionSetSpeed = "speed"
)

// Script is a time-ordered list of input events.
type Script struct {
	Name   string  `yaml:"name"`
	Events []Event `yaml:"events"`
}

// Event fires once, on the first tick whose wall time reaches At.
type Event struct {
	At     float64 `yaml:"at"`
	Action string  `yaml:"action"`
	// Hold is how long a speed key is held, in seconds.
	Hold float64 `yaml:"hold"`
	Fast bool    `yaml:"fast"`
	// Value is the target of the speed action, or the spawn count.
	Value float64 `yaml:"value"`
}

// LoadScript loads a script from a YAML file
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, err
	}
	if err := script.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &script, nil
}

func (s *Script) Validate() error {
	for i, ev := range s.Events {
		switch ev.Action {
		case ActionPause, ActionResume, ActionToggle, ActionReset, ActionSpawn, ActionSetSpeed:
		case ActionFaster, ActionSlower:
			if ev.Hold < 0 {
				return fmt.Errorf("event %d: hold must not be negative", i)
			}
		default:
			return fmt.Errorf("event %d: %w: %q", i, ErrUnknownAction, ev.Action)
		}
	}
	return nil
}

// Player applies a script to a clock. It satisfies sim.Controller.
type Player struct {
	events []Event
	next   int
	clock  *timescale.Clock
	spawn  func() error
}

// NewPlayer prepares s for playback. spawn may be nil when the script has no
// spawn events.
func NewPlayer(s *Script, clock *timescale.Clock, spawn func() error) *Player {
	events := append([]Event(nil), s.Events...)
	sort.SliceStable(events, func(i, j int) bool { return events[i].At < events[j].At })
	return &Player{events: events, clock: clock, spawn: spawn}
}

// Control fires every pending event whose time has come.
func (p *Player) Control(tick int, wall float64) error {
	for p.next < len(p.events) && p.events[p.next].At <= wall {
		ev := p.events[p.next]
		p.next++
		if err := p.apply(ev); err != nil {
			return fmt.Errorf("event at %.3fs: %w", ev.At, err)
		}
	}
	return nil
}

// Done reports whether every event has fired.
func (p *Player) Done() bool { return p.next >= len(p.events) }

func (p *Player) apply(ev Event) error {
	c := p.clock
	switch ev.Action {
	case ActionPause:
		if !c.Paused() {
			c.TogglePause()
		}
	case ActionResume:
		if c.Paused() {
			c.TogglePause()
		}
	case ActionToggle:
		c.TogglePause()
	case ActionFaster:
		c.Increase(ev.Hold, ev.Fast)
	case ActionSlower:
		c.Decrease(ev.Hold, ev.Fast)
	case ActionReset:
		c.Reset()
	case ActionSetSpeed:
		c.SetSpeed(ev.Value)
	case ActionSpawn:
		if p.spawn == nil {
			return errors.New("spawn not available")
		}
		for range max(1, int(ev.Value)) {
			if err := p.spawn(); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, ev.Action)
	}
	return nil
}
