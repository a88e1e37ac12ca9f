package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"riseabove/backend/app/dto"
)

// xpStep is how much +/- changes the selected skill.
const xpStep = 10

type DashboardModel struct {
	Client *Client
	Table  table.Model
	Skills []dto.SkillItem
	Err    error
	Status string

	dirty  bool
	adding bool
	input  textinput.Model

	// discardArmed is set after an r with unsaved edits; a second r reloads.
	discardArmed bool
}

// skillsMsg is a fresh list from the server. With keepLocal, unsaved xp
// edits are reapplied to the skills that still exist.
type skillsMsg struct {
	skills    []dto.SkillItem
	keepLocal bool
	err       error
}

// actionMsg reports a finished write; the list is reloaded after it.
type actionMsg struct {
	status    string
	keepLocal bool
	err       error
}

func NewDashboardModel(c *Client, width, height int) DashboardModel {
	columns := []table.Column{
		{Title: "Skill", Width: 40},
		{Title: "XP", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(tableHeight(height)),
	)

	sStyle := table.DefaultStyles()
	sStyle.Header = sStyle.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	sStyle.Selected = sStyle.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(sStyle)

	in := textinput.New()
	in.Prompt = "New skill: "
	in.Placeholder = "Chess"
	in.CharLimit = 100

	return DashboardModel{Client: c, Table: t, input: in}
}

func tableHeight(height int) int {
	if height <= 0 {
		return 15
	}
	if h := height - 10; h > 3 {
		return h
	}
	return 3
}

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd(false)
}

func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case skillsMsg:
		if msg.err != nil {
			m.Err = msg.err
			return m, nil
		}
		m.Err = nil
		if msg.keepLocal && m.dirty {
			m.Skills, m.dirty = mergeLocal(msg.skills, m.Skills)
		} else {
			m.Skills, m.dirty = msg.skills, false
		}
		m.syncRows()
		return m, nil

	case actionMsg:
		if msg.err != nil {
			m.Err = msg.err
			m.Status = ""
			return m, nil
		}
		m.Err = nil
		m.Status = msg.status
		return m, m.loadCmd(msg.keepLocal)

	case tea.KeyMsg:
		if m.adding {
			return m.updateAdding(msg)
		}
		armed := m.discardArmed
		m.discardArmed = false
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "r":
			if m.dirty && !armed {
				m.discardArmed = true
				m.Status = "Unsaved changes: press r again to discard them"
				return m, nil
			}
			m.Status = ""
			return m, m.loadCmd(false)
		case "a":
			m.adding = true
			m.input.SetValue("")
			return m, m.input.Focus()
		case "+", "=":
			m.adjust(xpStep)
			return m, nil
		case "-":
			m.adjust(-xpStep)
			return m, nil
		case "s":
			return m, m.saveCmd()
		case "d":
			if i := m.Table.Cursor(); i >= 0 && i < len(m.Skills) {
				return m, m.deleteCmd(m.Skills[i].Skillname)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func (m DashboardModel) updateAdding(msg tea.KeyMsg) (DashboardModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.adding = false
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		name := strings.TrimSpace(m.input.Value())
		m.adding = false
		m.input.Blur()
		if name == "" {
			return m, nil
		}
		return m, m.addCmd(name)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// adjust changes the selected skill locally; s sends every change.
func (m *DashboardModel) adjust(delta int) {
	i := m.Table.Cursor()
	if i < 0 || i >= len(m.Skills) {
		return
	}
	m.Skills[i].XP += delta
	m.dirty = true
	m.syncRows()
}

func (m *DashboardModel) syncRows() {
	rows := make([]table.Row, 0, len(m.Skills))
	for _, s := range m.Skills {
		rows = append(rows, table.Row{s.Skillname, strconv.Itoa(s.XP)})
	}
	m.Table.SetRows(rows)
	if c := m.Table.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.Table.SetCursor(len(rows) - 1)
	}
}

// mergeLocal returns fresh with the xp of every skill also in local taken
// from local, and whether that differs from the server.
func mergeLocal(fresh, local []dto.SkillItem) ([]dto.SkillItem, bool) {
	edited := make(map[string]int, len(local))
	for _, s := range local {
		edited[s.Skillname] = s.XP
	}
	out := make([]dto.SkillItem, len(fresh))
	dirty := false
	for i, s := range fresh {
		if xp, ok := edited[s.Skillname]; ok && xp != s.XP {
			s.XP = xp
			dirty = true
		}
		out[i] = s
	}
	return out, dirty
}

func (m DashboardModel) loadCmd(keepLocal bool) tea.Cmd {
	c := m.Client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		skills, err := c.Skills(ctx)
		return skillsMsg{skills: skills, keepLocal: keepLocal, err: err}
	}
}

func (m DashboardModel) addCmd(name string) tea.Cmd {
	c := m.Client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		s, err := c.AddSkill(ctx, name)
		return actionMsg{status: fmt.Sprintf("Added %s", s.Skillname), keepLocal: true, err: err}
	}
}

func (m DashboardModel) saveCmd() tea.Cmd {
	c := m.Client
	batch := append([]dto.SkillItem(nil), m.Skills...)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := c.SaveXP(ctx, batch)
		return actionMsg{status: fmt.Sprintf("Saved %d skills", len(batch)), err: err}
	}
}

func (m DashboardModel) deleteCmd(name string) tea.Cmd {
	c := m.Client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := c.DeleteSkill(ctx, name)
		return actionMsg{status: fmt.Sprintf("Deleted %s", name), keepLocal: true, err: err}
	}
}

func (m DashboardModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("RiseAbove - Skills") + "\n\n")
	b.WriteString(m.Table.View())
	b.WriteString("\n\n")

	if m.adding {
		b.WriteString(m.input.View() + "\n")
		b.WriteString(blurredStyle.Render("Enter to add, Esc to cancel"))
	} else {
		b.WriteString(blurredStyle.Render("a add  +/- xp  s save  d delete  r refresh  q quit"))
	}
	if m.dirty {
		b.WriteString("\n" + dirtyStyle("unsaved changes, press s to save"))
	}
	if m.Status != "" {
		b.WriteString("\n" + statusMessageStyle(m.Status))
	}
	if m.Err != nil {
		b.WriteString("\n" + errorMessageStyle(m.Err.Error()))
	}
	return b.String()
}
