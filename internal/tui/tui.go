package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/persona-chronicles/internal/models"
	"github.com/tatianab/persona-chronicles/internal/store"
)

type sessionState int

const (
	stateSelection sessionState = iota
	stateLoading
	statePlaying
	stateGameOver
	stateConfigError
)

type model struct {
	state    sessionState
	store    *store.Store
	chars    []models.Character
	cursor   int
	viewport viewport.Model
	game     models.GameState
	err      error
	width    int
	height   int
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D4AF37")).
			Bold(true).
			Underline(true)

	storyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE"))

	pastStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#777777")).
			Italic(true)

	choiceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCCCCC"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D4AF37")).
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	sidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CC4444")).
			Bold(true)
)

// NewModel builds the TUI over a store and the selectable characters.
func NewModel(st *store.Store, chars []models.Character) model {
	return model{
		state: stateSelection,
		store: st,
		chars: chars,
		game:  st.Read(),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

type turnResolvedMsg struct {
	state models.GameState
	err   error
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = logWidth(msg.Width)
		m.viewport.Height = msg.Height - 6
		if m.state == statePlaying || m.state == stateLoading {
			m.viewport.SetContent(m.renderLog())
		}

	case turnResolvedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateConfigError
			return m, nil
		}
		m.game = msg.state
		m.cursor = 0
		if m.game.Phase == models.PhaseGameOver {
			m.state = stateGameOver
			return m, nil
		}
		m.state = statePlaying
		m.viewport.SetContent(m.renderLog())
		m.viewport.GotoBottom()
		return m, nil
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.state {
	case stateSelection:
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.chars)-1 {
				m.cursor++
			}
		case "enter":
			m.game = m.store.StartNewGame(m.chars[m.cursor])
			m.cursor = 0
			m.state = statePlaying
			if m.viewport.Width == 0 {
				m.viewport = viewport.New(logWidth(m.width), m.height-6)
			}
			m.viewport.SetContent(m.renderLog())
			m.viewport.GotoBottom()
		}

	case statePlaying:
		choices := m.currentChoices()
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(choices)-1 {
				m.cursor++
			}
		case "enter":
			if len(choices) == 0 {
				return m, nil
			}
			choice := choices[m.cursor]
			// One turn in flight at a time: the loading state swallows
			// input until the turn resolves.
			m.state = stateLoading
			return m, m.resolveTurn(choice.Text)
		}

	case stateLoading:
		// Input disabled while the turn resolves.

	case stateGameOver:
		switch msg.String() {
		case "r":
			m.game = m.store.Reset()
			m.cursor = 0
			m.state = stateSelection
		case "q", "esc", "enter":
			return m, tea.Quit
		}

	case stateConfigError:
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		default:
			m.err = nil
			m.state = statePlaying
		}
	}

	return m, nil
}

func (m model) resolveTurn(choiceText string) tea.Cmd {
	return func() tea.Msg {
		next, err := m.store.ResolveTurn(context.Background(), choiceText)
		return turnResolvedMsg{state: next, err: err}
	}
}

func (m model) currentChoices() []models.StoryChoice {
	if m.game.CurrentStory == nil {
		return nil
	}
	return m.game.CurrentStory.Choices
}

func (m model) View() string {
	var s string

	switch m.state {
	case stateSelection:
		s = m.renderSelection()

	case stateLoading:
		main := lipgloss.JoinHorizontal(lipgloss.Top, m.viewport.View(), m.renderSidebar())
		s = lipgloss.JoinVertical(lipgloss.Left,
			main,
			"\n"+hintStyle.Render("The rule engine is weighing the consequences..."),
		)

	case statePlaying:
		main := lipgloss.JoinHorizontal(lipgloss.Top, m.viewport.View(), m.renderSidebar())
		s = lipgloss.JoinVertical(lipgloss.Left,
			main,
			"\n"+m.renderChoices(),
			"\n"+hintStyle.Render("up/down to choose, enter to act, q to quit"),
		)

	case stateGameOver:
		s = m.renderGameOver()

	case stateConfigError:
		s = fmt.Sprintf(
			"%s\n\n%v\n\n%s",
			dangerStyle.Render("PROVIDER NOT CONFIGURED"),
			m.err,
			hintStyle.Render("Fix settings.yaml or the environment, then press any key."),
		)
	}

	return "\n" + s + "\n"
}

func (m model) renderSelection() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("CHRONICLES OF THE PERSONA") + "\n\n")
	b.WriteString("Choose your mask. The rules of this world are written in blood and choices.\n\n")
	for i, c := range m.chars {
		line := fmt.Sprintf("%s, %s  (STR %d / WIT %d / CHA %d)", c.Name, c.Title, c.Strength, c.Wits, c.Charm)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> "+line) + "\n")
			b.WriteString(hintStyle.Render("    "+c.Description) + "\n")
		} else {
			b.WriteString(choiceStyle.Render("  "+line) + "\n")
		}
	}
	b.WriteString("\n" + hintStyle.Render("up/down to browse, enter to begin, q to quit"))
	return b.String()
}

func (m model) renderGameOver() string {
	title := "THE JOURNEY UNRAVELS"
	if m.game.TurnCount > m.game.MaxTurns {
		title = "FATE FULFILLED"
	}
	summary := m.game.FinalSummary
	if summary == "" {
		summary = "Your story ends here, mid-sentence..."
	}
	stats := m.game.RealityStats
	return fmt.Sprintf(
		"%s\n\n\"%s\"\n\n%s\n\n%s",
		dangerStyle.Render(title),
		storyStyle.Render(summary),
		fmt.Sprintf("Final credibility: %d   Mind remaining: %d   Turns survived: %d",
			stats.Credibility, models.StatMax-stats.Stress, m.game.TurnCount),
		hintStyle.Render("r to start over, q to quit"),
	)
}

func (m model) renderLog() string {
	width := logWidth(m.width)
	var b strings.Builder
	for i, node := range m.game.StoryLog {
		if i == len(m.game.StoryLog)-1 {
			b.WriteString(storyStyle.Width(width).Render(node.Text))
		} else {
			b.WriteString(pastStyle.Width(width).Render(node.Text))
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

func (m model) renderChoices() string {
	choices := m.currentChoices()
	if len(choices) == 0 {
		return hintStyle.Render("No paths remain open.")
	}
	var b strings.Builder
	for i, c := range choices {
		label := c.Text
		var hints []string
		if c.Cost != "" {
			hints = append(hints, "cost: "+c.Cost)
		}
		if c.Risk != "" {
			hints = append(hints, "risk: "+c.Risk)
		}
		if len(hints) > 0 {
			label += "  [" + strings.Join(hints, ", ") + "]"
		}
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + label))
		} else {
			b.WriteString(choiceStyle.Render("  " + label))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) renderSidebar() string {
	stats := m.game.RealityStats
	var b strings.Builder
	b.WriteString(titleStyle.Render("REALITY MAPPING") + "\n")
	b.WriteString(fmt.Sprintf("Credibility %2d/10\nStress      %2d/10\nConnections %2d/10\n\n",
		stats.Credibility, stats.Stress, stats.Connections))
	b.WriteString(titleStyle.Render("ACT") + "\n")
	b.WriteString(fmt.Sprintf("%d / %d\n\n", m.game.TurnCount, m.game.MaxTurns))
	b.WriteString(titleStyle.Render("WORLD RULES") + "\n")
	for _, r := range m.game.ActiveRules() {
		b.WriteString(fmt.Sprintf("- %s (%s)\n", r.Title, r.Kind))
	}

	sidebarWidth := int(float64(m.width) * 0.23)
	return sidebarStyle.Width(sidebarWidth).Height(m.viewport.Height).Render(b.String())
}

func logWidth(total int) int {
	return int(float64(total) * 0.75)
}

// Run starts the TUI over the given store.
func Run(st *store.Store, chars []models.Character) error {
	p := tea.NewProgram(NewModel(st, chars), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
