package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

type state int

const (
	stateLogin state = iota
	stateDashboard
)

type RootModel struct {
	State     state
	Login     LoginModel
	Dashboard DashboardModel
	Quitting  bool
	width     int
	height    int
}

func NewRootModel(server string) RootModel {
	return RootModel{
		State: stateLogin,
		Login: NewLoginModel(server),
	}
}

func (m RootModel) Init() tea.Cmd {
	return m.Login.Init()
}

func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.Dashboard.Table.SetHeight(tableHeight(msg.Height))
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.Quitting = true
			return m, tea.Quit
		}

	case loginResultMsg:
		if msg.err == nil && m.State == stateLogin {
			m.State = stateDashboard
			m.Dashboard = NewDashboardModel(msg.client, m.width, m.height)
			return m, m.Dashboard.Init()
		}
	}

	var cmd tea.Cmd
	switch m.State {
	case stateLogin:
		m.Login, cmd = m.Login.Update(msg)
	case stateDashboard:
		m.Dashboard, cmd = m.Dashboard.Update(msg)
		if isQuit(msg, m.Dashboard) {
			m.Quitting = true
		}
	}
	return m, cmd
}

func isQuit(msg tea.Msg, d DashboardModel) bool {
	k, ok := msg.(tea.KeyMsg)
	return ok && !d.adding && k.String() == "q"
}

func (m RootModel) View() string {
	if m.Quitting {
		return "Bye!\n"
	}
	switch m.State {
	case stateLogin:
		return m.Login.View()
	case stateDashboard:
		return m.Dashboard.View()
	}
	return "Unknown state"
}
