package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"focusden/internal/engine"
	"focusden/internal/storage"
	"focusden/internal/ui"
)

// RunTimer drives the countdown for an already-running session. The
// timer lives entirely client-side; the engine only hears about the
// session again when complete/cancel fires.
func RunTimer(ctx context.Context, svc *engine.Service, userID string, session *storage.FocusSession, out io.Writer) error {
	m := newTimerModel(ctx, svc, userID, session)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}

type timerModel struct {
	ctx     context.Context
	svc     *engine.Service
	userID  string
	session *storage.FocusSession

	width    int
	resolved bool
	busy     bool
	summary  *engine.RewardSummary
	outcome  string
	err      error
}

type tickMsg time.Time

type resolvedMsg struct {
	summary *engine.RewardSummary
	outcome string
	err     error
}

func newTimerModel(ctx context.Context, svc *engine.Service, userID string, session *storage.FocusSession) timerModel {
	return timerModel{ctx: ctx, svc: svc, userID: userID, session: session}
}

func (m timerModel) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m timerModel) remaining() time.Duration {
	end := m.session.StartedAt.Add(time.Duration(m.session.DurationMinutes) * time.Minute)
	d := time.Until(end)
	if d < 0 {
		return 0
	}
	return d
}

func (m timerModel) completeCmd() tea.Cmd {
	return func() tea.Msg {
		summary, err := m.svc.Complete(m.ctx, m.userID, m.session.ID)
		return resolvedMsg{summary: summary, outcome: "completed", err: err}
	}
}

func (m timerModel) cancelCmd() tea.Cmd {
	return func() tea.Msg {
		_, err := m.svc.Cancel(m.ctx, m.userID, m.session.ID)
		return resolvedMsg{outcome: "cancelled", err: err}
	}
}

func (m timerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tickMsg:
		if m.resolved || m.busy {
			return m, nil
		}
		if m.remaining() == 0 {
			m.busy = true
			return m, m.completeCmd()
		}
		return m, tickCmd()
	case resolvedMsg:
		m.busy = false
		m.resolved = true
		m.summary = msg.summary
		m.outcome = msg.outcome
		m.err = msg.err
		return m, nil
	case tea.KeyMsg:
		if m.resolved {
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c", "q":
			// Leave the session running; it can be completed or
			// cancelled later, arbitrarily late.
			return m, tea.Quit
		case "enter", "c":
			m.busy = true
			return m, m.completeCmd()
		case "x":
			m.busy = true
			return m, m.cancelCmd()
		}
	}
	return m, nil
}

func (m timerModel) View() string {
	var b strings.Builder

	if m.resolved {
		if m.err != nil {
			b.WriteString(ui.Bad.Render(ui.IconError+" "+m.err.Error()) + "\n")
			b.WriteString(ui.Muted.Render("press any key to exit") + "\n")
			return b.String()
		}
		if m.summary == nil {
			b.WriteString(ui.Warn.Render(ui.IconCancel+" Session cancelled.") + "\n")
			b.WriteString(ui.Muted.Render("press any key to exit") + "\n")
			return b.String()
		}
		b.WriteString(ui.Heading(ui.IconTrophy, "Session complete!") + "\n\n")
		b.WriteString(RenderReward(m.summary))
		b.WriteString("\n" + ui.Muted.Render("press any key to exit") + "\n")
		return b.String()
	}

	remaining := m.remaining()
	total := time.Duration(m.session.DurationMinutes) * time.Minute
	b.WriteString(ui.Heading(ui.IconTimer, fmt.Sprintf("Focus — %d min", m.session.DurationMinutes)) + "\n\n")
	b.WriteString("  " + ui.Title.Render(formatClock(remaining)) + "\n")
	b.WriteString("  " + progressBar(total-remaining, total, barWidth(m.width)) + "\n\n")
	if m.busy {
		b.WriteString(ui.Muted.Render("  resolving…") + "\n")
	} else {
		b.WriteString(ui.Muted.Render("  c complete now · x cancel · q detach") + "\n")
	}
	return b.String()
}

func formatClock(d time.Duration) string {
	d = d.Round(time.Second)
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", mins, secs)
}

func barWidth(termWidth int) int {
	if termWidth <= 0 {
		return 30
	}
	w := termWidth - 10
	if w < 10 {
		return 10
	}
	if w > 50 {
		return 50
	}
	return w
}

func progressBar(elapsed, total time.Duration, width int) string {
	if total <= 0 {
		total = time.Minute
	}
	ratio := float64(elapsed) / float64(total)
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * float64(width))
	return ui.Good.Render(strings.Repeat("█", filled)) + ui.Muted.Render(strings.Repeat("░", width-filled))
}

// RenderReward renders a RewardSummary for both the TUI and the CLI
// done command.
func RenderReward(r *engine.RewardSummary) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s   %s %s\n",
		ui.IconBolt, ui.Good.Render(fmt.Sprintf("+%d XP", r.XPAwarded)),
		ui.IconGold, ui.Gold.Render(fmt.Sprintf("+%d gold", r.GoldAwarded))))
	if r.LeveledUp {
		b.WriteString(fmt.Sprintf("%s %s → level %d\n", ui.IconSparkle, ui.BadgeLevelUp, r.NewLevel))
	}
	b.WriteString(fmt.Sprintf("%s level %d (%d/%d xp)\n", ui.IconFocus, r.NewLevel, r.CurrentXP, r.XPForNextLevel))
	b.WriteString(fmt.Sprintf("%s streak %d (best %d)\n", ui.IconFlame, r.StreakCount, r.LongestStreak))
	for _, up := range r.WorldUpgrades {
		b.WriteString(fmt.Sprintf("%s %s upgraded to level %d!\n", ui.RoomIcon(string(up.Room)), ui.Good.Render(string(up.Room)), up.NewLevel))
	}
	if r.CosmeticDrop != nil {
		b.WriteString(fmt.Sprintf("%s drop: %s (%s)\n", ui.IconDrop, ui.Title.Render(r.CosmeticDrop.Name), ui.RarityText(r.CosmeticDrop.Rarity)))
	}
	return b.String()
}
