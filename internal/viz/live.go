package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/lmarzola/odelab/internal/ode"
)

const historyCapacity = 600

type TickMsg time.Time

// Model steps one integration live on the same fixed grid the batch
// driver would use, so a finished live run matches a stored one point
// for point.
type Model struct {
	name    string
	rhs     ode.RHS
	stepper *ode.Stepper
	y0      ode.State
	t0, t1  float64
	h       float64
	grid    int

	state   ode.State
	step    int
	idx     int
	history []float64
	running bool
	done    bool
	err     error
}

// NewModel prepares a live run. The stepper's dimension must match y0.
func NewModel(name string, rhs ode.RHS, stepper *ode.Stepper, y0 ode.State, t0, t1, h float64) Model {
	m := Model{
		name:    name,
		rhs:     rhs,
		stepper: stepper,
		y0:      y0.Clone(),
		t0:      t0,
		t1:      t1,
		h:       h,
		grid:    ode.GridSize(t0, t1, h),
		state:   y0.Clone(),
		history: make([]float64, 0, historyCapacity),
		running: true,
	}
	m.history = append(m.history, y0[0])
	return m
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if !m.done && m.err == nil {
				m.running = !m.running
			}
		case "tab":
			m.idx = (m.idx + 1) % len(m.state)
			m.history = append(m.history[:0], m.state[m.idx])
		case "r":
			m.reset()
		}
	case TickMsg:
		if m.running && !m.done && m.err == nil {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) advance() {
	t := m.t0 + float64(m.step)*m.h
	if err := m.stepper.Step(m.rhs, t, m.state, m.h, m.state); err != nil {
		m.err = err
		m.running = false
		return
	}
	m.step++
	m.history = append(m.history, m.state[m.idx])
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
	if m.step >= m.grid-1 {
		m.done = true
		m.running = false
	}
}

func (m *Model) reset() {
	copy(m.state, m.y0)
	m.step = 0
	m.history = append(m.history[:0], m.y0[m.idx])
	m.err = nil
	m.done = false
	m.running = true
}

func (m Model) View() string {
	var s strings.Builder

	title := fmt.Sprintf("%s  %s  h=%g", strings.ToUpper(m.name), m.stepper.Order(), m.h)
	s.WriteString(headerStyle.Render(title) + "\n")

	switch {
	case m.err != nil:
		s.WriteString(errorStyle.Render("FAILED: "+m.err.Error()) + "\n")
	case m.done:
		s.WriteString(statusPaused.Render("DONE") + "\n")
	case m.running:
		s.WriteString(statusRunning.Render("RUNNING") + "\n")
	default:
		s.WriteString(statusPaused.Render("PAUSED") + "\n")
	}

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption(fmt.Sprintf("x%d", m.idx)),
		)
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	t := m.t0 + float64(m.step)*m.h
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.4g", t)) + "\n")
	s.WriteString(labelStyle.Render("Step") + valueStyle.Render(fmt.Sprintf("%d / %d", m.step, m.grid-1)) + "\n")
	for i, v := range m.state {
		s.WriteString(labelStyle.Render(fmt.Sprintf("x%d", i)) + valueStyle.Render(fmt.Sprintf("%+.6f", v)) + "\n")
	}

	progress := 0.0
	if m.grid > 1 {
		progress = float64(m.step) / float64(m.grid-1)
	}
	s.WriteString("\n" + ProgressBar(progress, 40) + "\n")
	s.WriteString(helpStyle.Render("space: pause  tab: component  r: reset  q: quit"))
	return s.String()
}
