package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/ballpit/internal/config"
	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/metrics"
	"github.com/san-kum/ballpit/internal/scenario"
	"github.com/san-kum/ballpit/internal/sim"
)

const historyCapacity = 240

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
)

type TickMsg time.Time

// Options configures the viewer.
type Options struct {
	Title       string
	FPS         int
	Width       int // canvas cells
	Height      int
	SpawnRadius float32
	SpawnSpeed  float32
	Seed        int64
}

func DefaultOptions() Options {
	return Options{
		Title:       "ballpit",
		FPS:         config.DefaultFPS,
		Width:       80,
		Height:      24,
		SpawnRadius: config.DefaultRadius,
		SpawnSpeed:  config.DefaultSpeed,
		Seed:        config.DefaultSeed,
	}
}

// OptionsFromConfig takes frame rate, seed and spawn size from cfg. Spawned
// bodies match the layout's radius and speed when it sets them.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := DefaultOptions()
	opts.FPS = cfg.FPS
	opts.Seed = cfg.Seed
	if cfg.Layout.Radius > 0 {
		opts.SpawnRadius = cfg.Layout.Radius
	}
	if cfg.Layout.MaxSpeed > 0 {
		opts.SpawnSpeed = cfg.Layout.MaxSpeed
	}
	return opts
}

// Model steps a simulation once per frame and draws it.
type Model struct {
	sim     *sim.Simulation
	opts    Options
	initial []dynamo.Body
	src     scenario.Source

	canvas *Canvas
	proj   Projection

	running bool
	bodies  []dynamo.Body
	ptrs    []*dynamo.Body
	energy  *metrics.KineticEnergy
	peak    *metrics.PeakSpeed
	inside  *metrics.Containment
	pairs   *metrics.Contacts

	energyHistory  []float64
	contactHistory []float64
	lastContacts   float64
	status         string
}

// NewModel wraps s. The bodies present now become the reset target.
func NewModel(s *sim.Simulation, opts Options) *Model {
	if opts.FPS <= 0 {
		opts.FPS = config.DefaultFPS
	}
	// explicit layouts leave these unset
	if !(opts.SpawnRadius > 0) {
		opts.SpawnRadius = config.DefaultRadius
	}
	if !(opts.SpawnSpeed > 0) {
		opts.SpawnSpeed = config.DefaultSpeed
	}
	c := NewCanvas(opts.Width, opts.Height)
	m := &Model{
		sim:            s,
		opts:           opts,
		initial:        s.Bodies(),
		src:            scenario.NewSource(opts.Seed),
		canvas:         c,
		proj:           Fit(c, s.Bounds()),
		running:        true,
		energy:         metrics.NewKineticEnergy(),
		peak:           metrics.NewPeakSpeed(),
		inside:         metrics.NewContainment(s.Bounds()),
		pairs:          metrics.NewContacts(),
		energyHistory:  make([]float64, 0, historyCapacity),
		contactHistory: make([]float64, 0, historyCapacity),
	}
	m.observe()
	return m
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input between frames and steps the simulation on TickMsg.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "s":
			if !m.running {
				m.step()
			}
		case "r":
			m.reset()
		case "a":
			m.spawn()
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	m.sim.Step()
	m.observe()
}

// observe refreshes the body snapshot and the viewer's own metrics.
func (m *Model) observe() {
	m.bodies = m.sim.Bodies()
	m.ptrs = m.ptrs[:0]
	for i := range m.bodies {
		m.ptrs = append(m.ptrs, &m.bodies[i])
	}
	tick := m.sim.Tick()
	m.energy.Observe(m.ptrs, tick)
	m.peak.Observe(m.ptrs, tick)
	m.inside.Observe(m.ptrs, tick)
	m.pairs.Observe(m.ptrs, tick)

	m.energyHistory = pushBounded(m.energyHistory, m.energy.Value())
	total := m.pairs.Value()
	m.contactHistory = pushBounded(m.contactHistory, total-m.lastContacts)
	m.lastContacts = total
}

func (m *Model) reset() {
	m.sim.Reset()
	for _, b := range m.initial {
		m.sim.Add(b)
	}
	m.energy.Reset()
	m.peak.Reset()
	m.inside.Reset()
	m.pairs.Reset()
	m.energyHistory = m.energyHistory[:0]
	m.contactHistory = m.contactHistory[:0]
	m.lastContacts = 0
	m.status = "reset"
	m.observe()
}

func (m *Model) spawn() {
	b, err := scenario.RandomBody(m.src, m.sim.Bounds(), m.opts.SpawnRadius, m.opts.SpawnSpeed)
	if err != nil {
		m.status = err.Error()
		return
	}
	h := m.sim.Add(b)
	m.status = "spawned " + h.String()
	m.bodies = m.sim.Bodies()
}

func pushBounded(h []float64, v float64) []float64 {
	if len(h) == historyCapacity {
		copy(h, h[1:])
		h = h[:len(h)-1]
	}
	return append(h, v)
}

func finite(vals []float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// View renders the canvas beside the stats panel.
func (m *Model) View() string {
	m.canvas.Clear()
	m.canvas.DrawFrame()
	m.canvas.DrawBodies(m.bodies, m.proj)
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(HeaderStyle.Render(strings.ToUpper(m.opts.Title)) + "\n\n")
	if m.running {
		s.WriteString(StatusRunning.Render("RUNNING"))
	} else {
		s.WriteString(StatusPaused.Render("PAUSED"))
	}
	s.WriteString("\n")

	if len(m.energyHistory) > 1 && finite(m.energyHistory) {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	row := func(label, value string) {
		s.WriteString(MetricLabel.Render(label) + MetricValue.Render(value) + "\n")
	}
	row("Tick", fmt.Sprintf("%d", m.sim.Tick()))
	row("Bodies", fmt.Sprintf("%d", m.sim.Len()))
	row("Pair mode", m.sim.PairMode().String())
	row("Energy", fmt.Sprintf("%.4g", m.energy.Value()))
	row("Peak speed", fmt.Sprintf("%.4g", m.peak.Value()))
	row("Contacts", fmt.Sprintf("%.0f", m.pairs.Value()))
	s.WriteString(MetricLabel.Render("") + Sparkline(m.contactHistory, 24) + "\n")
	s.WriteString(MetricLabel.Render("Contained") + ProgressBar(m.inside.Value(), 20) + "\n")

	if m.status != "" {
		s.WriteString("\n" + Subtle.Render(m.status) + "\n")
	}
	s.WriteString("\n" + Separator(36) + "\n")
	s.WriteString(KeyHint.Render("SP:Pause S:Step A:Spawn\nR:Reset  Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}
