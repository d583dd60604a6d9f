package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/scene"
	"github.com/san-kum/gravsim/internal/timescale"
)

var presetInfo = map[string]string{
	"swarm":   "500 bodies, 3 heavy",
	"moon":    "earth and moon",
	"binary":  "star and planet",
	"figure":  "three-body figure eight",
	"collide": "head-on, repulsive contact",
}

const (
	stateMenu = iota
	stateSim
)

// App is a preset picker that hands over to a live Model.
type App struct {
	state, cursor int
	presets       []string
	err           error
	live          Model
	width, height int
}

func NewInteractiveApp() App {
	return App{presets: config.ListPresets()}
}

func (a App) Init() tea.Cmd { return nil }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		a.width, a.height = ws.Width, ws.Height
	}
	if a.state == stateSim {
		next, cmd := a.live.Update(msg)
		a.live = next.(Model)
		return a, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.presets)-1 {
			a.cursor++
		}
	case "enter", " ":
		return a.start()
	}
	return a, nil
}

func (a App) start() (tea.Model, tea.Cmd) {
	cfg := config.GetPreset(a.presets[a.cursor])
	s, err := scene.Build(cfg)
	if err != nil {
		a.err = err
		return a, nil
	}
	a.live = NewModel(s, timescale.New(cfg.ClockOptions()), cfg.Tick)
	if a.width > 0 {
		a.live.resize(a.width, a.height)
	}
	a.state = stateSim
	return a, a.live.Init()
}

func (a App) View() string {
	if a.state == stateSim {
		return a.live.View()
	}

	var b strings.Builder
	sub := subtle()
	b.WriteString("\n\n    " + GradientText("GRAVSIM", CurrentTheme.Primary, CurrentTheme.Secondary) + "\n    " + sub.Render("n-body gravity") + "\n    " + sub.Render("─────────────────────────") + "\n\n")
	for i, name := range a.presets {
		desc := presetInfo[name]
		if i == a.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n",
				lipgloss.NewStyle().Foreground(CurrentTheme.Secondary).Bold(true).Render("▸"),
				lipgloss.NewStyle().Foreground(CurrentTheme.Text).Bold(true).Render(fmt.Sprintf("%-10s", name)),
				lipgloss.NewStyle().Foreground(CurrentTheme.Accent).Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", sub.Render(fmt.Sprintf("%-10s", name)), sub.Render(desc)))
		}
	}
	if a.err != nil {
		b.WriteString("\n    " + statusPaused().Render(a.err.Error()) + "\n")
	}
	b.WriteString("\n    " + sub.Render("j/k navigate  enter select  q quit") + "\n")
	return b.String()
}

// RunInteractive shows the preset picker full screen.
func RunInteractive() error {
	_, err := tea.NewProgram(NewInteractiveApp(), tea.WithAltScreen()).Run()
	return err
}

// RunLive shows the live view of s full screen.
func RunLive(s *scene.Scene, clock *timescale.Clock, tick float64) error {
	_, err := tea.NewProgram(NewModel(s, clock, tick), tea.WithAltScreen()).Run()
	return err
}
