// ABOUTME: Top-level Bubble Tea AppModel wiring stores, drag controller, typing animators, and panels.
// ABOUTME: Implements tea.Model (Init, Update, View); all card mutations happen inside Update.
package tui

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/oklog/ulid/v2"

	"github.com/2389-research/cardpress/audio"
	"github.com/2389-research/cardpress/board/core"
	"github.com/2389-research/cardpress/board/drag"
	"github.com/2389-research/cardpress/board/geom"
	"github.com/2389-research/cardpress/board/typing"
	"github.com/2389-research/cardpress/export"
	"github.com/2389-research/cardpress/llm"
	"github.com/2389-research/cardpress/prompts"
	"github.com/2389-research/cardpress/settings"
)

const (
	printDelay        = 450 * time.Millisecond
	doubleClickWindow = 400 * time.Millisecond
	spawnJitter       = 3
	zoneTolerance     = 2
	boardTop          = 1 // rows above the board: title bar
	chromeRows        = 3 // title + input + status
)

// mode selects which surface has the screen.
type mode int

const (
	modeBoard mode = iota
	modeHistory
	modePrompts
	modeDetail
)

// AppModel is the board's composition root. Pointer fields survive Bubble
// Tea copying the model by value.
type AppModel struct {
	store   *core.CardStore
	history *core.HistoryStore
	dragger *drag.Controller
	anims   map[ulid.ULID]*typing.Animator

	cfg     settings.Source
	gen     llm.Generator
	clicker *audio.Clicker
	library *prompts.Store // nil when no prompt database is configured
	rng     *rand.Rand

	input  textinput.Model
	mode   mode
	width  int
	height int

	// submit transition
	printing      bool
	pending       string
	pendingOrigin [2]string // id, label

	// transient drag view state; the store is written only on drag end
	dragPos   geom.Position
	dragOver  bool
	dragMoved bool

	// double-press tracking
	lastPressID ulid.ULID
	lastPress   time.Time

	historyPanel HistoryPanel
	promptPanel  PromptPanel
	detailPanel  DetailPanel

	status string
}

// NewAppModel wires the board from its collaborators. library may be nil.
func NewAppModel(cfg settings.Source, gen llm.Generator, clicker *audio.Clicker, library *prompts.Store) AppModel {
	input := textinput.New()
	input.Placeholder = "type a thought and press enter"
	input.Prompt = PromptStyle.Render("> ")
	input.CharLimit = 500
	input.Focus()

	store := core.NewCardStore()
	return AppModel{
		store:        store,
		history:      core.NewHistoryStore(),
		dragger:      drag.NewController(store, geom.Rect{}, zoneTolerance),
		anims:        make(map[ulid.ULID]*typing.Animator),
		cfg:          cfg,
		gen:          gen,
		clicker:      clicker,
		library:      library,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		input:        input,
		promptPanel:  NewPromptPanel(library),
		historyPanel: HistoryPanel{},
		detailPanel:  NewDetailPanel(),
	}
}

// Init implements tea.Model.
func (m AppModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case PrintDoneMsg:
		return m.handlePrintDone()
	case TypingTickMsg:
		return m.handleTypingTick(msg)
	case GeneratedMsg:
		return m.submit(msg.Text, m.pendingOrigin[0], m.pendingOrigin[1])
	case SnapshotMsg:
		if msg.Err != nil {
			m.status = StatusErrorStyle.Render(fmt.Sprintf("export failed: %v", msg.Err))
		} else {
			m.status = "exported " + msg.Path
		}
		return m, nil
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m.routeToPanel(msg)
}

// handleResize recomputes the board area and archive zone.
func (m AppModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.dragger.SetZone(m.archiveZone())
	m.input.Width = msg.Width - 4
	m.detailPanel.SetSize(msg.Width, msg.Height)
	m.promptPanel.SetSize(msg.Width, msg.Height)
	return m, nil
}

// boardSize is the drawable board area below the title bar.
func (m AppModel) boardSize() geom.Size {
	h := m.height - chromeRows
	if h < 1 {
		h = 1
	}
	return geom.Size{Width: m.width, Height: h}
}

// archiveZone sits in the board's bottom-right corner.
func (m AppModel) archiveZone() geom.Rect {
	b := m.boardSize()
	const zw, zh = 16, 4
	return geom.Rect{
		Min:  geom.Position{X: b.Width - zw - 1, Y: b.Height - zh},
		Size: geom.Size{Width: zw, Height: zh},
	}
}

// submit starts the print transition for new card text. A submission while
// one is already in flight is ignored.
func (m AppModel) submit(text, originID, originLabel string) (tea.Model, tea.Cmd) {
	text = strings.TrimRight(text, "\n ")
	if m.printing || strings.TrimSpace(text) == "" {
		return m, nil
	}
	m.printing = true
	m.pending = text
	m.pendingOrigin = [2]string{originID, originLabel}
	m.status = "printing..."
	return m, PrintDelayCmd(printDelay)
}

// handlePrintDone materializes the pending text as a spawned card.
func (m AppModel) handlePrintDone() (tea.Model, tea.Cmd) {
	if !m.printing {
		return m, nil
	}
	m.printing = false

	s := m.cfg.Current()
	card := core.NewCard(m.pending)
	card.OriginID = m.pendingOrigin[0]
	card.OriginLabel = m.pendingOrigin[1]
	m.pending = ""
	m.pendingOrigin = [2]string{}

	layout := layoutCard(card, nil)
	card.Pos = geom.SpawnPosition(m.rng, m.boardSize(), layout.rect(geom.Position{}).Size, spawnJitter)
	card.Rotation = geom.SpawnRotation(m.rng, 2.5)

	m.archiveEvicted(m.store.Insert(card, s.MaxCards))
	m.store.BringToFront(card.ID)

	m.anims[card.ID] = typing.NewAnimator(card.Text, s.MaxAnimated)
	m.status = ""
	return m, TypingTickCmd(card.ID, time.Duration(s.TypingTickMs)*time.Millisecond)
}

// archiveEvicted moves overflow cards into history, cleaning up any animator
// or drag session attached to them.
func (m *AppModel) archiveEvicted(evicted []core.Card) {
	for _, c := range evicted {
		delete(m.anims, c.ID)
		if id, ok := m.dragger.DraggingID(); ok && id == c.ID {
			m.dragger.Cancel()
		}
		m.history.Archive(c)
	}
}

// handleTypingTick advances one card's typewriter. Ticks that outlive their
// card are dropped so a continuation never fires against a missing card.
func (m AppModel) handleTypingTick(msg TypingTickMsg) (tea.Model, tea.Cmd) {
	anim, ok := m.anims[msg.ID]
	if !ok {
		return m, nil
	}
	if _, live := m.store.Get(msg.ID); !live {
		delete(m.anims, msg.ID)
		return m, nil
	}
	if _, revealed := anim.Tick(); revealed {
		m.clicker.KeyClick()
	}
	if anim.State() == typing.Done {
		m.clicker.Chime()
		delete(m.anims, msg.ID)
		return m, nil
	}
	s := m.cfg.Current()
	return m, TypingTickCmd(msg.ID, time.Duration(s.TypingTickMs)*time.Millisecond)
}

// handleMouse drives the drag controller from the pointer event stream.
func (m AppModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != modeBoard {
		return m, nil
	}
	p := geom.Position{X: msg.X, Y: msg.Y - boardTop}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		return m.handlePress(p)
	case tea.MouseActionMotion:
		if pos, over, ok := m.dragger.Move(p); ok {
			m.dragPos = geom.Clamp(pos, m.boardSize(), geom.Size{Width: cardWidth, Height: 3})
			m.dragOver = over
			m.dragMoved = true
		}
		return m, nil
	case tea.MouseActionRelease:
		return m.handleRelease(p)
	}
	return m, nil
}

// handlePress begins a drag or, on a quick second press, opens the detail view.
func (m AppModel) handlePress(p geom.Position) (tea.Model, tea.Cmd) {
	id, ok := m.cardAt(p)
	if !ok {
		return m, nil
	}
	now := time.Now()
	if id == m.lastPressID && now.Sub(m.lastPress) < doubleClickWindow {
		m.dragger.Cancel()
		m.lastPressID = ulid.ULID{}
		return m.openDetail(id)
	}
	m.lastPressID = id
	m.lastPress = now

	if m.dragger.Begin(id, p) {
		if card, ok := m.store.Get(id); ok {
			m.dragPos = card.Pos
		}
		m.dragOver = false
		m.dragMoved = false
	}
	return m, nil
}

// handleRelease commits the drag. A release over the archive zone retires
// the card; a release without motion toggles a checklist line under the
// pointer.
func (m AppModel) handleRelease(p geom.Position) (tea.Model, tea.Cmd) {
	id, over, ok := m.dragger.End(p)
	if !ok {
		return m, nil
	}
	m.dragOver = false

	if over {
		if card, live := m.store.MoveToHistory(id); live {
			delete(m.anims, card.ID)
			m.history.Archive(card)
			m.status = "card archived"
		}
		return m, nil
	}

	if card, live := m.store.Get(id); live {
		m.store.UpdatePosition(id, geom.Clamp(card.Pos, m.boardSize(), layoutCard(card, nil).rect(geom.Position{}).Size))
		if !m.dragMoved {
			m.toggleChecklistAt(card, p)
		}
	}
	return m, nil
}

// toggleChecklistAt flips the checklist line under the pointer, if any.
// Only settled cards respond; a card still typing has no stable rows.
func (m *AppModel) toggleChecklistAt(card core.Card, p geom.Position) {
	if card.Kind != core.ChecklistCard {
		return
	}
	if _, animating := m.anims[card.ID]; animating {
		return
	}
	layout := layoutCard(card, nil)
	line, ok := layout.sourceLineAt(card.Pos, p)
	if !ok || !card.IsChecklistLine(line) {
		return
	}
	m.store.SetChecklistLine(card.ID, line, !card.Checklist[line])
}

// cardAt returns the topmost card whose rectangle contains p.
func (m AppModel) cardAt(p geom.Position) (ulid.ULID, bool) {
	var best ulid.ULID
	bestZ := -1
	found := false
	for _, card := range m.store.Cards() {
		layout := layoutCard(card, m.anims[card.ID])
		if geom.Contains(p, layout.rect(m.cardPos(card))) && card.Z > bestZ {
			best = card.ID
			bestZ = card.Z
			found = true
		}
	}
	return best, found
}

// cardPos returns the display position: the transient drag position for the
// tracked card, the committed store position otherwise.
func (m AppModel) cardPos(card core.Card) geom.Position {
	if id, ok := m.dragger.DraggingID(); ok && id == card.ID {
		return m.dragPos
	}
	return card.Pos
}

// handleKey routes keys by mode.
func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.mode {
	case modeHistory:
		return m.handleHistoryKey(msg)
	case modePrompts:
		return m.handlePromptKey(msg)
	case modeDetail:
		return m.handleDetailKey(msg)
	}

	switch msg.Type {
	case tea.KeyEnter:
		text := m.input.Value()
		m.input.Reset()
		origin := m.promptPanel.ActiveOrigin()
		return m.submit(text, origin[0], origin[1])
	case tea.KeyCtrlG:
		prompt := strings.TrimSpace(m.input.Value())
		if prompt == "" || m.printing {
			return m, nil
		}
		m.input.Reset()
		m.pendingOrigin = m.promptPanel.ActiveOrigin()
		m.status = "generating..."
		return m, GenerateCmd(context.Background(), llm.Safe{Inner: m.gen}, prompt)
	case tea.KeyCtrlH:
		m.mode = modeHistory
		m.historyPanel.Reset(m.history.Len())
		return m, nil
	case tea.KeyCtrlP:
		if m.library == nil {
			m.status = "no prompt database configured"
			return m, nil
		}
		m.mode = modePrompts
		return m, m.promptPanel.Reload()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// routeToPanel forwards non-global messages to the active overlay.
func (m AppModel) routeToPanel(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.mode {
	case modePrompts:
		m.promptPanel, cmd = m.promptPanel.Update(msg)
	case modeDetail:
		m.detailPanel, cmd = m.detailPanel.Update(msg)
	}
	return m, cmd
}

// openDetail shows the read-only inspect view for a card.
func (m AppModel) openDetail(id ulid.ULID) (tea.Model, tea.Cmd) {
	card, ok := m.store.Get(id)
	if !ok {
		return m, nil
	}
	m.mode = modeDetail
	m.detailPanel.Show(card)
	return m, nil
}

// handleHistoryKey drives the archive overlay.
func (m AppModel) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+h", "q":
		m.mode = modeBoard
		return m, nil
	case "up", "k":
		m.historyPanel.Up()
		return m, nil
	case "down", "j":
		m.historyPanel.Down(m.history.Len())
		return m, nil
	case "enter":
		entries := m.history.Newest()
		if m.historyPanel.cursor >= len(entries) {
			return m, nil
		}
		return m.restore(entries[m.historyPanel.cursor].ID)
	}
	return m, nil
}

// restore re-spawns an archived card: same id, text, and checklist, fresh
// position, rotation, and z. The insert may immediately re-evict another
// card under the FIFO policy.
func (m AppModel) restore(id ulid.ULID) (tea.Model, tea.Cmd) {
	card, ok := m.history.Restore(id)
	if !ok {
		return m, nil
	}
	s := m.cfg.Current()
	layout := layoutCard(card, nil)
	card.Pos = geom.SpawnPosition(m.rng, m.boardSize(), layout.rect(geom.Position{}).Size, spawnJitter)
	card.Rotation = geom.SpawnRotation(m.rng, 2.5)

	m.archiveEvicted(m.store.Insert(card, s.MaxCards))
	m.store.BringToFront(card.ID)
	m.historyPanel.Reset(m.history.Len())
	m.mode = modeBoard
	m.status = "card restored"
	return m, nil
}

// handlePromptKey drives the prompt manager overlay.
func (m AppModel) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.promptPanel.Editing() {
		var cmd tea.Cmd
		m.promptPanel, cmd = m.promptPanel.Update(msg)
		return m, cmd
	}
	switch msg.String() {
	case "esc", "ctrl+p", "q":
		m.mode = modeBoard
		return m, nil
	case "enter":
		if content, ok := m.promptPanel.Use(); ok {
			m.input.SetValue(content)
			m.mode = modeBoard
		}
		return m, nil
	case "n":
		return m, m.promptPanel.StartCreate(m.input.Value())
	case "u":
		return m, m.promptPanel.UpdateSelected(m.input.Value())
	case "d":
		return m, m.promptPanel.DeleteSelected()
	}
	var cmd tea.Cmd
	m.promptPanel, cmd = m.promptPanel.Update(msg)
	return m, cmd
}

// handleDetailKey drives the inspect overlay.
func (m AppModel) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.mode = modeBoard
		return m, nil
	case "a":
		id := m.detailPanel.CardID()
		if card, ok := m.store.MoveToHistory(id); ok {
			delete(m.anims, id)
			m.history.Archive(card)
			m.status = "card archived"
		}
		m.mode = modeBoard
		return m, nil
	case "x":
		id := m.detailPanel.CardID()
		if did, ok := m.dragger.DraggingID(); ok && did == id {
			m.dragger.Cancel()
		}
		delete(m.anims, id)
		m.store.Remove(id)
		m.mode = modeBoard
		m.status = "card discarded"
		return m, nil
	case "s":
		s := m.cfg.Current()
		if s.ExportDir == "" {
			m.status = "export dir not configured"
			return m, nil
		}
		if card, ok := m.store.Get(m.detailPanel.CardID()); ok {
			return m, SnapshotCmd(export.Snapshot{Dir: s.ExportDir}, card)
		}
		return m, nil
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		id := m.detailPanel.CardID()
		if card, ok := m.store.Get(id); ok {
			n := int(msg.String()[0] - '0')
			if line, ok := nthChecklistLine(card, n); ok {
				m.store.SetChecklistLine(id, line, !card.Checklist[line])
				if updated, ok := m.store.Get(id); ok {
					m.detailPanel.Show(updated)
				}
			}
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.detailPanel, cmd = m.detailPanel.Update(msg)
	return m, cmd
}

// nthChecklistLine maps 1-based n to the nth checklist line's index.
func nthChecklistLine(card core.Card, n int) (int, bool) {
	lines := core.ChecklistLines(card.Text)
	if n < 1 || n > len(lines) {
		return 0, false
	}
	return lines[n-1], true
}

// View implements tea.Model.
func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	if m.width < 40 || m.height < 12 {
		return fmt.Sprintf("Terminal too small (%dx%d). Minimum: 40x12.", m.width, m.height)
	}

	switch m.mode {
	case modeHistory:
		return m.historyPanel.View(m.history, m.width, m.height)
	case modePrompts:
		return m.promptPanel.View()
	case modeDetail:
		return m.detailPanel.View()
	}
	return m.boardView()
}

// boardView composites the title bar, card canvas, input line, and status bar.
func (m AppModel) boardView() string {
	b := m.boardSize()
	canvas := NewCanvas(b.Width, b.Height)

	zone := m.archiveZone()
	zoneStyle := styleZone
	if m.dragOver {
		zoneStyle = styleZoneHot
	}
	canvas.DrawBox(zone, zoneStyle)
	canvas.DrawText(geom.Position{X: zone.Min.X + 2, Y: zone.Min.Y + zone.Size.Height/2}, zone.Size.Width-4, "archive ⌫", zoneStyle)

	cards := m.store.Cards()
	sort.Slice(cards, func(i, j int) bool { return cards[i].Z < cards[j].Z })
	draggingID, dragging := m.dragger.DraggingID()
	for _, card := range cards {
		style := styleCard
		if dragging && card.ID == draggingID {
			style = styleCardActive
		}
		layoutCard(card, m.anims[card.ID]).draw(canvas, m.cardPos(card), style)
	}

	title := TitleStyle.Render(" cardpress ") +
		BackgroundStyle.Render("enter: print · ctrl+g: generate · ctrl+h: history · ctrl+p: prompts · double-click: inspect")

	status := fmt.Sprintf("%d live · %d archived", m.store.Len(), m.history.Len())
	if m.printing {
		status += " · printing"
	}
	if m.status != "" {
		status += " · " + m.status
	}

	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(canvas.View(boardPalette()))
	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	sb.WriteString(StatusBarStyle.Width(m.width).Render(status))
	return sb.String()
}
