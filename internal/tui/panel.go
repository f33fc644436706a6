package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kartoza/kartoza-audio-limiter/internal/limiter"
	"github.com/kartoza/kartoza-audio-limiter/internal/models"
)

// telemetryInterval is how often the panel refreshes the level meter.
const telemetryInterval = 100 * time.Millisecond

const meterWidth = 50

// telemetryTickMsg carries the periodic telemetry refresh.
type telemetryTickMsg time.Time

// param describes one adjustable limiter parameter: its range, step and
// accessors into the flat settings snapshot.
type param struct {
	name   string
	min    float64
	max    float64
	step   float64
	isBool bool
	// stab marks stabilizer tuning rows, dimmed while the stabilizer is off.
	stab   bool
	get    func(*models.Settings) float64
	set    func(*models.Settings, float64)
	format func(float64) string
}

func formatPercent(v float64) string { return fmt.Sprintf("%.0f%%", v*100) }
func formatMillis(v float64) string  { return fmt.Sprintf("%.0f ms", v*1000) }
func formatSeconds(v float64) string { return fmt.Sprintf("%.1f s", v) }
func formatDB(v float64) string      { return fmt.Sprintf("%.1f dB", v) }
func formatFactor(v float64) string  { return fmt.Sprintf("x%.1f", v) }
func formatCount(v float64) string   { return fmt.Sprintf("%.0f", v) }

func formatBool(v float64) string {
	if v != 0 {
		return "on"
	}
	return "off"
}

// panelParams builds the parameter rows. Ranges and steps follow the
// original control sliders.
func panelParams() []param {
	return []param{
		{
			name: "Volume cap", min: 0.01, max: 1.0, step: 0.01,
			get:    func(s *models.Settings) float64 { return s.VolumeCap },
			set:    func(s *models.Settings, v float64) { s.VolumeCap = v },
			format: formatPercent,
		},
		{
			name: "Attack", min: 0, max: 1.0, step: 0.01,
			get:    func(s *models.Settings) float64 { return s.AttackTime },
			set:    func(s *models.Settings, v float64) { s.AttackTime = v },
			format: formatMillis,
		},
		{
			name: "Release", min: 0, max: 5.0, step: 0.05,
			get:    func(s *models.Settings) float64 { return s.ReleaseTime },
			set:    func(s *models.Settings, v float64) { s.ReleaseTime = v },
			format: formatMillis,
		},
		{
			name: "Hold", min: 0, max: 2.0, step: 0.01,
			get:    func(s *models.Settings) float64 { return s.HoldTime },
			set:    func(s *models.Settings, v float64) { s.HoldTime = v },
			format: formatMillis,
		},
		{
			name: "User cooldown", min: 0, max: 10.0, step: 0.5,
			get:    func(s *models.Settings) float64 { return s.UserCooldown },
			set:    func(s *models.Settings, v float64) { s.UserCooldown = v },
			format: formatSeconds,
		},
		{
			name: "Leeway", min: 0, max: 12.0, step: 0.5,
			get:    func(s *models.Settings) float64 { return s.LeewayDB },
			set:    func(s *models.Settings, v float64) { s.LeewayDB = v },
			format: formatDB,
		},
		{
			name: "Dampening", min: 1.0, max: 4.0, step: 0.1,
			get:    func(s *models.Settings) float64 { return s.Dampening },
			set:    func(s *models.Settings, v float64) { s.Dampening = v },
			format: formatFactor,
		},
		{
			name: "Dampening ramp", min: 0, max: 5.0, step: 0.1,
			get:    func(s *models.Settings) float64 { return s.DampeningSpeed },
			set:    func(s *models.Settings, v float64) { s.DampeningSpeed = v },
			format: formatSeconds,
		},
		{
			name: "Stabilizer", isBool: true,
			get: func(s *models.Settings) float64 {
				if s.StabilizerEnabled {
					return 1
				}
				return 0
			},
			set:    func(s *models.Settings, v float64) { s.StabilizerEnabled = v != 0 },
			format: formatBool,
		},
		{
			name: "  Window", min: 1, max: 30, step: 1, stab: true,
			get:    func(s *models.Settings) float64 { return s.StabilizerWindow },
			set:    func(s *models.Settings, v float64) { s.StabilizerWindow = v },
			format: formatSeconds,
		},
		{
			name: "  Threshold", min: 2, max: 20, step: 1, stab: true,
			get:    func(s *models.Settings) float64 { return float64(s.StabilizerThreshold) },
			set:    func(s *models.Settings, v float64) { s.StabilizerThreshold = int(v + 0.5) },
			format: formatCount,
		},
		{
			name: "  Max leeway", min: 0, max: 24, step: 0.5, stab: true,
			get:    func(s *models.Settings) float64 { return s.StabilizerMaxLeeway },
			set:    func(s *models.Settings, v float64) { s.StabilizerMaxLeeway = v },
			format: formatDB,
		},
		{
			name: "  Step", min: 0.1, max: 6.0, step: 0.1, stab: true,
			get:    func(s *models.Settings) float64 { return s.StabilizerStep },
			set:    func(s *models.Settings, v float64) { s.StabilizerStep = v },
			format: formatDB,
		},
		{
			name: "  Change threshold", min: 0.01, max: 0.5, step: 0.01, stab: true,
			get:    func(s *models.Settings) float64 { return s.StabilizerChangeThreshold },
			set:    func(s *models.Settings, v float64) { s.StabilizerChangeThreshold = v },
			format: formatPercent,
		},
	}
}

// Model is the one-screen control panel.
type Model struct {
	backend Backend

	settings models.Settings
	tel      limiter.Telemetry

	params   []param
	selected int

	meter progress.Model

	width  int
	height int

	err error
}

// NewModel builds the panel around a backend.
func NewModel(backend Backend) *Model {
	meter := progress.New(
		progress.WithGradient("#4CAF50", "#E95420"),
		progress.WithWidth(meterWidth),
		progress.WithoutPercentage(),
	)

	return &Model{
		backend:  backend,
		settings: backend.Settings(),
		tel:      backend.Telemetry(),
		params:   panelParams(),
		meter:    meter,
	}
}

func tickTelemetry() tea.Cmd {
	return tea.Tick(telemetryInterval, func(t time.Time) tea.Msg {
		return telemetryTickMsg(t)
	})
}

// Init starts the telemetry refresh.
func (m *Model) Init() tea.Cmd {
	return tickTelemetry()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case telemetryTickMsg:
		m.tel = m.backend.Telemetry()
		return m, tickTelemetry()

	case tea.KeyMsg:
		m.err = nil

		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.err = m.backend.Close()
			return m, tea.Quit

		case "up", "k":
			m.selected--
			if m.selected < 0 {
				m.selected = len(m.params) - 1
			}
			return m, nil

		case "down", "j":
			m.selected++
			if m.selected >= len(m.params) {
				m.selected = 0
			}
			return m, nil

		case "left", "h":
			m.adjust(-1)
			return m, nil

		case "right", "l":
			m.adjust(1)
			return m, nil

		case " ":
			m.err = m.backend.Toggle()
			return m, nil

		case "s":
			m.toggleStabilizer()
			return m, nil

		case "r":
			if err := m.backend.Reset(); err != nil {
				m.err = err
				return m, nil
			}
			m.settings = m.backend.Settings()
			return m, nil
		}
	}

	return m, nil
}

// adjust nudges the selected parameter by dir steps and pushes the change.
func (m *Model) adjust(dir float64) {
	p := m.params[m.selected]

	if p.isBool {
		p.set(&m.settings, 1-p.get(&m.settings))
	} else {
		v := p.get(&m.settings) + dir*p.step
		if v < p.min {
			v = p.min
		}
		if v > p.max {
			v = p.max
		}
		p.set(&m.settings, v)
	}

	m.err = m.backend.Apply(m.settings)
}

func (m *Model) toggleStabilizer() {
	m.settings.StabilizerEnabled = !m.settings.StabilizerEnabled
	m.err = m.backend.Apply(m.settings)
}

// View renders the panel
func (m *Model) View() string {
	state, stateColor := "Watching", ColorGreen
	switch {
	case !m.tel.Running:
		state, stateColor = "Disabled", ColorGray
	case m.tel.Limiting:
		state, stateColor = "Limiting", ColorOrange
	}

	header := RenderHeader(state, stateColor)

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderMeter(),
		"",
		m.renderParams(),
		"",
		m.renderStatusLine(),
	)

	helpText := "↑/↓: select • ←/→: adjust • space: enable/disable • s: stabilizer • r: reset • q: save & quit"
	footer := RenderHelpFooter(helpText, m.width)

	return LayoutWithHeaderFooter(header, content, footer, m.width, m.height)
}

// renderMeter draws the live level bar with the cap marker above it.
func (m *Model) renderMeter() string {
	markerPos := int(m.tel.VolumeCap * meterWidth)
	if markerPos >= meterWidth {
		markerPos = meterWidth - 1
	}
	marker := strings.Repeat(" ", markerPos) + ActiveStyle.Render("▼")

	bar := m.meter.ViewAs(m.tel.Peak)

	leeway := fmt.Sprintf("%.1f dB", m.tel.CurrentLeeway)
	if m.tel.CurrentLeeway != m.tel.BaseLeeway {
		leeway = fmt.Sprintf("%.1f dB (base %.1f)", m.tel.CurrentLeeway, m.tel.BaseLeeway)
	}

	readout := LabelStyle.Render(fmt.Sprintf("Peak %3.0f%%   Volume %3.0f%%   Leeway %s",
		m.tel.Peak*100, m.tel.Volume*100, leeway))

	return lipgloss.JoinVertical(lipgloss.Left, marker, bar, readout)
}

// renderParams draws the parameter list with the selection cursor.
func (m *Model) renderParams() string {
	labelStyle := LabelStyle.Width(20)
	labelActiveStyle := ActiveStyle.Width(20)
	dimStyle := lipgloss.NewStyle().Foreground(ColorDarkGray)

	var rows []string
	for i, p := range m.params {
		value := p.format(p.get(&m.settings))

		cursor := "  "
		label := labelStyle.Render(p.name)
		styledValue := ValueStyle.Render(value)

		if p.stab && !m.settings.StabilizerEnabled {
			label = dimStyle.Width(20).Render(p.name)
			styledValue = dimStyle.Render(value)
		}
		if i == m.selected {
			cursor = ActiveStyle.Render("▶ ")
			label = labelActiveStyle.Render(p.name)
			styledValue = ActiveStyle.Render(value)
		}

		rows = append(rows, cursor+label+" "+styledValue)
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) renderStatusLine() string {
	if m.err != nil {
		return ErrorStyle.Render("Error: " + m.err.Error())
	}
	return ""
}
