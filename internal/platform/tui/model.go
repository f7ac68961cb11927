package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/road-remembers/internal/config"
	"github.com/vovakirdan/road-remembers/internal/core"
	"github.com/vovakirdan/road-remembers/internal/road"
)

// Model is the Bubble Tea model hosting one road session.
type Model struct {
	ctrl       *road.Controller
	roadCfg    config.RoadConfig
	screen     *core.Screen
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	keyMapper  *KeyMapper
	quitting   bool
}

// NewModel creates a session model. The sink receives memory snapshots; nil discards them.
func NewModel(roadCfg config.RoadConfig, cfg core.RuntimeConfig, sink road.Sink) Model {
	ctrl := road.NewController(road.Options{
		Config: roadCfg,
		Random: road.SourceForSeed(cfg.Seed),
		Sink:   sink,
	})

	return Model{
		ctrl:       ctrl,
		roadCfg:    roadCfg,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case promptExpiredMsg:
		m.ctrl.ConsumePrompt(msg.seq)
		return m, nil
	}

	return m, nil
}

// handleKey buffers input for the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.Close()
		m.quitting = true
		return m, tea.Quit
	}

	if key.Matches(msg, m.keyMapper.Keys().Screenshot) {
		m.saveScreenshot()
	}
	return m, nil
}

// handleTick applies buffered input and advances the simulation.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.ctrl.Apply(m.inputFrame)
	m.inputFrame.Clear()

	result := m.ctrl.Tick(now)

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	if result.NewPrompt != nil {
		cmds = append(cmds, promptExpiryCmd(m.roadCfg.Timing.PromptLifetime(), result.NewPrompt.Seq))
	}
	return m, tea.Batch(cmds...)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	road.RenderSnapshot(m.ctrl.Snapshot(), m.roadCfg.World, m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".road", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	filename := fmt.Sprintf("road_%s.txt", time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	road.RenderSnapshot(m.ctrl.Snapshot(), m.roadCfg.World, m.screen)
	return RenderScreen(m.screen)
}

// Close tears the session down, forwarding the final memory snapshot. Safe to call twice.
func (m Model) Close() {
	m.ctrl.Close()
}

// Controller exposes the simulation for inspection.
func (m Model) Controller() *road.Controller {
	return m.ctrl
}

// closer is implemented by models that own a simulation.
type closer interface {
	Close()
}

// closeOnQuit is a program filter that tears the session down however it ends.
func closeOnQuit(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.QuitMsg); ok {
		if c, ok := model.(closer); ok {
			c.Close()
		}
	}
	return msg
}

// Run starts the Bubble Tea program for a local session.
func Run(roadCfg config.RoadConfig, cfg core.RuntimeConfig, sink road.Sink) error {
	model := NewModel(roadCfg, cfg, sink)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithFilter(closeOnQuit),
	)

	_, err := p.Run()
	model.Close()
	return err
}
