package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/rotanim/internal/metrics"
	"github.com/san-kum/rotanim/internal/playback"
	"github.com/san-kum/rotanim/internal/session"
)

const historyCapacity = 120

// Model is the interactive player.
type Model struct {
	sess     *session.Session
	sched    *Scheduler
	canvas   *Canvas
	trace    *metrics.Trace
	drift    *metrics.NormDrift
	interval time.Duration
	theme    Theme
	st       styles
	showHelp bool
	status   string
}

// NewPlayer builds a session on a bubbletea scheduler and wraps it in a Model.
func NewPlayer(opts session.Options, interval time.Duration) (Model, error) {
	sched := NewScheduler()
	sess, err := session.New(opts, sched)
	if err != nil {
		return Model{}, err
	}
	return NewModel(sess, sched, interval), nil
}

// NewModel attaches a terminal canvas to sess and draws the first frame. sched
// must be the scheduler sess was built with.
func NewModel(sess *session.Session, sched *Scheduler, interval time.Duration) Model {
	if interval <= 0 {
		interval = playback.DefaultInterval
	}
	m := Model{
		sess:     sess,
		sched:    sched,
		canvas:   NewCanvas(),
		trace:    metrics.NewTrace(),
		drift:    metrics.NewNormDrift(),
		interval: interval,
		theme:    ThemeMidnight,
		st:       newStyles(ThemeMidnight),
	}
	sess.AddSink(m.canvas)
	c := sess.Chain()
	m.trace.OnStep(c.Index(), c.CurrentView())
	m.drift.Observe(c.Index(), c.CurrentView())
	c.AddObserver(m.trace)
	c.AddObserver(metrics.Set{m.drift})
	if err := sess.Render(); err != nil {
		m.status = err.Error()
	}
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// Update handles keys and playback ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	ctrl := m.sess.Controller()
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.sess.Close()
			return m, tea.Quit
		case "right", "l":
			m.manual(m.sess.StepForward)
		case "left", "h":
			m.manual(m.sess.StepBackward)
		case "0":
			m.manual(m.sess.Reset)
		case "e":
			m.manual(m.sess.GotoEnd)
		case "f":
			ctrl.PlayForward(m.interval)
		case "r":
			ctrl.PlayReverse(m.interval)
		case " ":
			ctrl.Toggle(m.interval)
		case "g":
			if _, err := m.sess.NextGradient(); err != nil {
				m.status = err.Error()
			}
		case "t":
			m.theme = NextTheme(m.theme.Name)
			m.st = newStyles(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
		return m, m.sched.Drain()
	case TickMsg:
		cmd := m.sched.Handle(msg)
		if err := ctrl.Err(); err != nil {
			m.status = err.Error()
		}
		return m, tea.Batch(cmd, m.sched.Drain())
	}
	return m, nil
}

// manual pauses playback before a hand-driven move.
func (m *Model) manual(move func() error) {
	m.sess.Controller().Pause()
	if err := move(); err != nil {
		m.status = err.Error()
		return
	}
	m.status = ""
}

func (m Model) statusLine() string {
	ctrl := m.sess.Controller()
	switch {
	case m.status != "":
		return m.st.failed.Render("ERROR " + m.status)
	case ctrl.Playing():
		return m.st.playing.Render(strings.ToUpper(ctrl.State().String()))
	}
	return m.st.stopped.Render("STOPPED")
}

// View renders the TUI interface.
func (m Model) View() string {
	c := m.sess.Chain()
	canvasView := m.st.canvas.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(m.st.header.Render("ROTANIM") + "\n")
	s.WriteString(m.statusLine() + "\n\n")
	s.WriteString(m.st.label.Render("Step") + m.st.value.Render(fmt.Sprintf("%d / %d", c.Index(), c.Len())) + "\n")
	s.WriteString(m.st.progressBar(c.Index(), c.Len(), 30) + "\n\n")

	frames := m.trace.Frames()
	if len(frames) > historyCapacity {
		frames = frames[len(frames)-historyCapacity:]
	}
	cur := metrics.Compute(c.Index(), c.CurrentView())
	s.WriteString(m.st.label.Render("Gradient") + m.st.value.Render(m.sess.Renderer().Gradient()) + "\n")
	s.WriteString(m.st.label.Render("Size") + m.st.value.Render(fmt.Sprintf("%d×%d", c.Rows(), c.Cols())) + "\n")
	s.WriteString(m.st.label.Render("Seed") + m.st.value.Render(fmt.Sprintf("%d", m.sess.Seed())) + "\n")
	s.WriteString(m.st.label.Render("Session") + m.st.value.Render(m.sess.ID.String()[:8]) + "\n")
	s.WriteString(m.st.label.Render("Mean") + m.st.value.Render(fmt.Sprintf("%.4f", cur.Mean)) + "\n")
	s.WriteString(m.st.label.Render("Range") + m.st.value.Render(fmt.Sprintf("[%.3f, %.3f]", cur.Min, cur.Max)) + "\n")
	s.WriteString(m.st.label.Render("Norm") + m.st.value.Render(fmt.Sprintf("%.6f", cur.Norm)) + "\n")
	s.WriteString(m.st.label.Render("Drift") + m.st.value.Render(fmt.Sprintf("%.2e", m.drift.Value())) + "\n")

	if len(frames) > 1 {
		means := make([]float64, len(frames))
		stds := make([]float64, len(frames))
		for i, f := range frames {
			means[i] = f.Mean
			stds[i] = f.StdDev
		}
		chart := asciigraph.Plot(means, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("mean"))
		s.WriteString(m.st.graph.Render(chart) + "\n")
		s.WriteString(m.st.label.Render("Spread") + m.st.value.Render(Sparkline(stds, 30)) + "\n")
	}

	s.WriteString(m.st.hint.Render("\n←→ step  f/r play  space pause\n0 reset  e end  g gradient  t theme\n? help  q quit"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.st.panel.Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  → / l    - Step forward             ║
║  ← / h    - Step backward            ║
║  f        - Play forward             ║
║  r        - Play reverse             ║
║  Space    - Pause / resume           ║
║  0        - Back to plaintext        ║
║  e        - Jump to ciphertext       ║
║  g        - Next gradient            ║
║  t        - Next theme               ║
║  ?        - Toggle this help         ║
║  q        - Quit                     ║
╚══════════════════════════════════════╝`
