// ABOUTME: Bubble Tea message types and commands used in the board's message loop.
// ABOUTME: Tick messages carry the target card ID so stale continuations can be guard-checked.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/oklog/ulid/v2"

	"github.com/2389-research/cardpress/board/core"
	"github.com/2389-research/cardpress/export"
	"github.com/2389-research/cardpress/llm"
)

// PrintDoneMsg fires when the submit transition's fixed delay elapses and
// the pending text should materialize as a card.
type PrintDoneMsg struct{}

// TypingTickMsg advances one card's typewriter animation. The ID lets the
// update loop drop ticks that outlive their card.
type TypingTickMsg struct {
	ID ulid.ULID
}

// GeneratedMsg carries AI-generated text back into the submit path.
type GeneratedMsg struct {
	Text string
}

// SnapshotMsg reports the result of a card export.
type SnapshotMsg struct {
	Path string
	Err  error
}

// PrintDelayCmd schedules the card materialization after the print
// transition's fixed duration.
func PrintDelayCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return PrintDoneMsg{}
	})
}

// TypingTickCmd schedules the next typewriter tick for a card.
func TypingTickCmd(id ulid.ULID, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return TypingTickMsg{ID: id}
	})
}

// GenerateCmd runs the text generator off the event loop. The generator
// boundary never fails, so the message always carries usable text.
func GenerateCmd(ctx context.Context, gen llm.Generator, prompt string) tea.Cmd {
	return func() tea.Msg {
		return GeneratedMsg{Text: gen.Generate(ctx, prompt)}
	}
}

// SnapshotCmd exports a card off the event loop.
func SnapshotCmd(snap export.Snapshot, card core.Card) tea.Cmd {
	return func() tea.Msg {
		path, err := snap.Write(card)
		return SnapshotMsg{Path: path, Err: err}
	}
}
