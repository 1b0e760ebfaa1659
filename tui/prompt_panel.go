// ABOUTME: Prompt manager overlay: lists stored templates and drives CRUD against the SQLite store.
// ABOUTME: Enter loads a template into the submit line; n/u/d create, update, and delete.
package tui

import (
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/2389-research/cardpress/prompts"
)

// promptItem adapts a stored template to the bubbles list item interfaces.
type promptItem struct {
	t prompts.Template
}

func (i promptItem) Title() string { return i.t.Name }

func (i promptItem) Description() string {
	desc := firstLine(i.t.Content, 60)
	if len(i.t.Tags) > 0 {
		desc += "  [" + strings.Join(i.t.Tags, ", ") + "]"
	}
	return desc
}

func (i promptItem) FilterValue() string { return i.t.Name }

// PromptPanel is the template browser and editor overlay.
type PromptPanel struct {
	store *prompts.Store

	list    list.Model
	name    textinput.Model
	editing bool
	pending string // content awaiting a name during create

	active [2]string // id, label of the last-used template
	status string
}

// NewPromptPanel creates the overlay. store may be nil; the panel then
// renders a hint instead of a list.
func NewPromptPanel(store *prompts.Store) PromptPanel {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "prompts"
	l.SetShowHelp(false)

	name := textinput.New()
	name.Placeholder = "template name"
	name.CharLimit = 80

	return PromptPanel{store: store, list: l, name: name}
}

// SetSize resizes the template list.
func (p *PromptPanel) SetSize(width, height int) {
	p.list.SetSize(width-4, height-6)
}

// ActiveOrigin returns the id/label of the template last loaded into the
// submit line, for stamping onto cards it produces.
func (p PromptPanel) ActiveOrigin() [2]string {
	return p.active
}

// Editing reports whether the name input owns the keyboard.
func (p PromptPanel) Editing() bool {
	return p.editing
}

// Reload refreshes the list from the store.
func (p *PromptPanel) Reload() tea.Cmd {
	if p.store == nil {
		return nil
	}
	templates, err := p.store.List()
	if err != nil {
		log.Printf("component=tui action=prompt_list_failed err=%v", err)
		p.status = "failed to load templates"
		return nil
	}
	items := make([]list.Item, len(templates))
	for i, t := range templates {
		items[i] = promptItem{t: t}
	}
	return p.list.SetItems(items)
}

// Use returns the selected template's content and records it as the active
// origin for subsequent submissions.
func (p *PromptPanel) Use() (string, bool) {
	item, ok := p.list.SelectedItem().(promptItem)
	if !ok {
		return "", false
	}
	p.active = [2]string{item.t.ID, item.t.Name}
	return item.t.Content, true
}

// StartCreate begins naming a new template whose content is the current
// submit line.
func (p *PromptPanel) StartCreate(content string) tea.Cmd {
	if p.store == nil || strings.TrimSpace(content) == "" {
		p.status = "type the template content into the submit line first"
		return nil
	}
	p.editing = true
	p.pending = content
	p.name.Reset()
	return p.name.Focus()
}

// UpdateSelected replaces the selected template's content with the submit
// line, keeping its name and tags.
func (p *PromptPanel) UpdateSelected(content string) tea.Cmd {
	item, ok := p.list.SelectedItem().(promptItem)
	if !ok || p.store == nil {
		return nil
	}
	if strings.TrimSpace(content) == "" {
		p.status = "nothing in the submit line to save"
		return nil
	}
	if _, err := p.store.Update(item.t.ID, item.t.Name, content, item.t.Tags); err != nil {
		log.Printf("component=tui action=prompt_update_failed id=%s err=%v", item.t.ID, err)
		p.status = "update failed"
		return nil
	}
	p.status = "updated " + item.t.Name
	return p.Reload()
}

// DeleteSelected removes the selected template.
func (p *PromptPanel) DeleteSelected() tea.Cmd {
	item, ok := p.list.SelectedItem().(promptItem)
	if !ok || p.store == nil {
		return nil
	}
	if err := p.store.Delete(item.t.ID); err != nil {
		log.Printf("component=tui action=prompt_delete_failed id=%s err=%v", item.t.ID, err)
		p.status = "delete failed"
		return nil
	}
	p.status = "deleted " + item.t.Name
	return p.Reload()
}

// Update routes messages to the name input while editing, the list otherwise.
func (p PromptPanel) Update(msg tea.Msg) (PromptPanel, tea.Cmd) {
	if p.editing {
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.Type {
			case tea.KeyEnter:
				return p.finishCreate()
			case tea.KeyEsc:
				p.editing = false
				p.pending = ""
				return p, nil
			}
		}
		var cmd tea.Cmd
		p.name, cmd = p.name.Update(msg)
		return p, cmd
	}
	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return p, cmd
}

// finishCreate persists the pending template under the entered name.
func (p PromptPanel) finishCreate() (PromptPanel, tea.Cmd) {
	name := strings.TrimSpace(p.name.Value())
	if name == "" {
		p.status = "a template needs a name"
		return p, nil
	}
	if _, err := p.store.Create(name, p.pending, nil); err != nil {
		log.Printf("component=tui action=prompt_create_failed err=%v", err)
		p.status = "create failed"
		p.editing = false
		return p, nil
	}
	p.editing = false
	p.pending = ""
	p.status = "saved " + name
	return p, p.Reload()
}

// View renders the overlay.
func (p PromptPanel) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(" prompts "))
	b.WriteString(BackgroundStyle.Render("enter: use · n: new · u: update · d: delete · esc: back"))
	b.WriteString("\n\n")

	if p.store == nil {
		b.WriteString(ValueStyle.Render("  no prompt database configured"))
		return b.String()
	}
	if p.editing {
		b.WriteString(LabelStyle.Render("name"))
		b.WriteString(p.name.View())
		b.WriteString("\n")
	} else {
		b.WriteString(p.list.View())
	}
	if p.status != "" {
		b.WriteString("\n")
		b.WriteString(BackgroundStyle.Render(p.status))
	}
	return b.String()
}
