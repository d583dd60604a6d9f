package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/gravsim/internal/scene"
	"github.com/san-kum/gravsim/internal/timescale"
)

const (
	defaultWidth    = 80
	defaultHeight   = 24
	statsWidth      = 46
	historyCapacity = 600
	trailCapacity   = 120
	energyEvery     = 8
	rotateStep      = 0.1

	// a held key repeats between these; gaps outside count as one press
	minNudgeGap = time.Second / 30
	maxNudgeGap = 250 * time.Millisecond
)

type TickMsg time.Time

// Model is the live view: it owns the scene, advances it every frame by the
// clock's effective step and renders bodies, trails and a HUD.
type Model struct {
	scene *scene.Scene
	clock *timescale.Clock
	tick  float64

	width, height int
	canvas        *Canvas
	camera        *Camera
	trails        [][]mgl64.Vec3
	showTrails    bool
	showAxes      bool
	showHelp      bool

	ticks         int
	simTime       float64
	energyHistory []float64
	speedHistory  []float64
	lastNudge     time.Time
	status        string
}

// NewModel creates a live view over s. tick is the wall-clock frame period
// in seconds.
func NewModel(s *scene.Scene, clock *timescale.Clock, tick float64) Model {
	m := Model{
		scene:         s,
		clock:         clock,
		tick:          tick,
		width:         defaultWidth,
		height:        defaultHeight,
		canvas:        NewCanvas(defaultWidth, defaultHeight),
		camera:        NewCamera(),
		showTrails:    true,
		energyHistory: make([]float64, 0, historyCapacity),
		speedHistory:  make([]float64, 0, historyCapacity),
	}
	m.camera.FitTo(sceneExtent(s))
	m.syncTrails()
	return m
}

// sceneExtent is the largest absolute coordinate of any body, or the spawn
// extent for an empty scene.
func sceneExtent(s *scene.Scene) float64 {
	extent := 0.0
	for _, p := range s.World.Positions() {
		for k := 0; k < 3; k++ {
			extent = math.Max(extent, math.Abs(p[k]))
		}
	}
	if extent == 0 {
		extent = s.Spawner.Extent()
	}
	return extent
}

func (m Model) frame() time.Duration {
	return time.Duration(m.tick * float64(time.Second))
}

func (m Model) Init() tea.Cmd {
	frame := m.frame()
	return tea.Tick(frame, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg.String(), time.Now())
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		m.step()
		frame := m.frame()
		return m, tea.Tick(frame, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m Model) handleKey(key string, now time.Time) (tea.Model, tea.Cmd) {
	switch key {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case " ":
		m.clock.TogglePause()
	case "+", "=", "up":
		m.clock.Increase(m.nudgeElapsed(now), false)
	case "-", "down":
		m.clock.Decrease(m.nudgeElapsed(now), false)
	case "shift+up", "pgup":
		m.clock.Increase(m.nudgeElapsed(now), true)
	case "shift+down", "pgdown":
		m.clock.Decrease(m.nudgeElapsed(now), true)
	case "0":
		m.clock.Reset()
	case "n":
		if idx, err := m.scene.Spawn(); err != nil {
			m.status = err.Error()
		} else {
			m.status = fmt.Sprintf("spawned body %d", idx)
			m.syncTrails()
		}
	case "x":
		m.camera.RotateX(rotateStep)
	case "X":
		m.camera.RotateX(-rotateStep)
	case "y":
		m.camera.RotateY(rotateStep)
	case "Y":
		m.camera.RotateY(-rotateStep)
	case "z":
		m.camera.RotateZ(rotateStep)
	case "Z":
		m.camera.RotateZ(-rotateStep)
	case "]":
		m.camera.ZoomIn()
	case "[":
		m.camera.ZoomOut()
	case "t":
		m.showTrails = !m.showTrails
		if !m.showTrails {
			for i := range m.trails {
				m.trails[i] = m.trails[i][:0]
			}
		}
	case "a":
		m.showAxes = !m.showAxes
	case "c":
		NextTheme()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// nudgeElapsed converts the gap since the previous nudge key into the
// duration the key was held.
func (m *Model) nudgeElapsed(now time.Time) float64 {
	gap := now.Sub(m.lastNudge)
	m.lastNudge = now
	switch {
	case gap <= 0 || gap > maxNudgeGap:
		gap = maxNudgeGap
	case gap < minNudgeGap:
		gap = minNudgeGap
	}
	return gap.Seconds()
}

func (m *Model) resize(w, h int) {
	cw := max(10, w-statsWidth-6)
	ch := max(5, h-2)
	m.width, m.height = cw, ch
	m.canvas = NewCanvas(cw, ch)
}

// step advances the world by one frame of wall time.
func (m *Model) step() {
	dt := m.clock.EffectiveDt(m.tick)
	w := m.scene.World
	w.Step(dt)
	m.ticks++
	m.simTime += dt

	if m.showTrails && dt != 0 {
		for i, p := range w.Positions() {
			m.trails[i] = append(m.trails[i], p)
			if len(m.trails[i]) > trailCapacity {
				m.trails[i] = m.trails[i][1:]
			}
		}
	}

	m.speedHistory = appendCapped(m.speedHistory, m.clock.Speed())
	if m.ticks%energyEvery == 0 {
		m.energyHistory = appendCapped(m.energyHistory, w.Energy())
	}
}

func appendCapped(s []float64, v float64) []float64 {
	s = append(s, v)
	if len(s) > historyCapacity {
		s = s[1:]
	}
	return s
}

// syncTrails grows the trail slice to one entry per body.
func (m *Model) syncTrails() {
	for len(m.trails) < m.scene.World.Len() {
		m.trails = append(m.trails, make([]mgl64.Vec3, 0, trailCapacity))
	}
}

// draw renders the current world into the canvas.
func (m *Model) draw() {
	m.canvas.Clear()
	wf := NewWireframe()
	if m.showAxes {
		ext := 1 / m.camera.Scale
		wf.Edges = append(wf.Edges, CreateAxesWireframe(ext).Edges...)
		wf.Edges = append(wf.Edges, CreateBoundsWireframe(m.scene.Spawner.Extent(), string(CurrentTheme.Muted)).Edges...)
	}

	colors := make([]string, len(m.scene.Appearance))
	for i, a := range m.scene.Appearance {
		colors[i] = a.Color.Hex()
	}

	if m.showTrails {
		for i, trail := range m.trails {
			faded := m.scene.Appearance[i].Color.BlendRgb(black, 0.6).Hex()
			for _, p := range trail {
				wf.AddPoint(p, faded)
			}
		}
	}
	for i, p := range m.scene.World.Positions() {
		wf.AddPoint(p, colors[i])
	}
	Render3D(m.canvas, wf, m.camera)
}

// Snapshot draws the current bodies of s, without trails, onto a new canvas
// of width x height characters.
func Snapshot(s *scene.Scene, width, height int) *Canvas {
	m := Model{
		scene:  s,
		canvas: NewCanvas(width, height),
		camera: NewCamera(),
	}
	m.camera.FitTo(sceneExtent(s))
	m.draw()
	return m.canvas
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.Render())

	var s strings.Builder
	title := GradientText("GRAVSIM", CurrentTheme.Primary, CurrentTheme.Secondary)
	s.WriteString(title + "  " + subtle().Render(m.scene.Name) + "\n\n")

	if m.clock.Paused() {
		s.WriteString(statusPaused().Render("PAUSED") + "\n\n")
	} else {
		s.WriteString(statusRunning().Render("RUNNING") + "\n\n")
	}

	s.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("%.2fx", m.clock.Speed())) + "\n")
	s.WriteString(labelStyle.Render("") + SparklineChart(m.speedHistory, 30) + "\n")
	s.WriteString(labelStyle.Render("Bodies") + valueStyle.Render(fmt.Sprintf("%d", m.scene.World.Len())) + "\n")
	s.WriteString(labelStyle.Render("Ticks") + valueStyle.Render(fmt.Sprintf("%d", m.ticks)) + "\n")
	s.WriteString(labelStyle.Render("Sim time") + valueStyle.Render(formatSimTime(m.simTime)) + "\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	if m.status != "" {
		s.WriteString(subtle().Render(m.status) + "\n")
	}

	s.WriteString("\n" + Separator(30) + "\n")
	s.WriteString(helpStyle.Render("SP:Pause +/-:Speed 0:Reset\nN:Spawn T:Trails ?:Help Q:Quit"))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

const helpText = `
  Space        pause / resume
  + - up down  change speed
  shift+up/dn  change speed fast (also pgup/pgdown)
  0            reset speed to 1x
  n            spawn a body
  x y z        rotate view (shift reverses)
  [ ]          zoom out / in
  t            toggle trails
  a            toggle axes and spawn bounds
  c            cycle colour theme
  q            quit
`

// formatSimTime prints seconds of simulated time with a readable unit.
func formatSimTime(t float64) string {
	switch {
	case math.Abs(t) >= 86400:
		return fmt.Sprintf("%.2fd", t/86400)
	case math.Abs(t) >= 3600:
		return fmt.Sprintf("%.2fh", t/3600)
	default:
		return fmt.Sprintf("%.1fs", t)
	}
}
