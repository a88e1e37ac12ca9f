package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riseabove/backend/app/dto"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loadedDashboard(t *testing.T, skills ...dto.SkillItem) DashboardModel {
	t.Helper()
	m := NewDashboardModel(NewClient("http://unused"), 80, 30)
	m, _ = m.Update(skillsMsg{skills: skills})
	require.Len(t, m.Table.Rows(), len(skills))
	return m
}

func TestDashboard_AdjustIsLocalUntilSaved(t *testing.T) {
	m := loadedDashboard(t, dto.SkillItem{Skillname: "Chess", XP: 150}, dto.SkillItem{Skillname: "Go", XP: 0})

	m, cmd := m.Update(key("+"))
	assert.Nil(t, cmd)
	m, _ = m.Update(key("+"))
	assert.Equal(t, 170, m.Skills[0].XP)
	assert.Equal(t, "170", m.Table.Rows()[0][1])
	assert.True(t, m.dirty)

	m, _ = m.Update(key("-"))
	assert.Equal(t, 160, m.Skills[0].XP)
	assert.Contains(t, m.View(), "unsaved changes")

	m, cmd = m.Update(key("s"))
	assert.NotNil(t, cmd)

	// a reload replaces local edits
	m, _ = m.Update(skillsMsg{skills: []dto.SkillItem{{Skillname: "Chess", XP: 160}}})
	assert.False(t, m.dirty)
	assert.Len(t, m.Table.Rows(), 1)
}

func TestDashboard_AddPromptSwallowsKeys(t *testing.T) {
	m := loadedDashboard(t)

	m, _ = m.Update(key("a"))
	require.True(t, m.adding)
	m, _ = m.Update(key("q"))
	assert.True(t, m.adding)
	assert.Equal(t, "q", m.input.Value())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.adding)
}

func TestDashboard_ErrorsAreShown(t *testing.T) {
	m := loadedDashboard(t, dto.SkillItem{Skillname: "Chess"})
	m, cmd := m.Update(actionMsg{err: &APIError{Status: 404, Message: "Skill not found"}})
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "Skill not found")

	m, cmd = m.Update(actionMsg{status: "Deleted Chess"})
	assert.NotNil(t, cmd)
	assert.Nil(t, m.Err)
	assert.Contains(t, m.View(), "Deleted Chess")
}

func TestRoot_LoginSwitchesToDashboard(t *testing.T) {
	var m tea.Model = NewRootModel("http://127.0.0.1:5000")
	m, _ = m.Update(loginResultMsg{err: &APIError{Status: 401, Message: "Invalid username or password"}})
	assert.Equal(t, stateLogin, m.(RootModel).State)
	assert.Contains(t, m.View(), "Invalid username or password")

	m, cmd := m.Update(loginResultMsg{client: NewClient("http://127.0.0.1:5000")})
	assert.Equal(t, stateDashboard, m.(RootModel).State)
	assert.NotNil(t, cmd)
}

func TestDashboard_RefreshAsksBeforeDroppingEdits(t *testing.T) {
	m := loadedDashboard(t, dto.SkillItem{Skillname: "Chess", XP: 150})
	m, _ = m.Update(key("+"))

	m, cmd := m.Update(key("r"))
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "press r again")
	assert.Equal(t, 160, m.Skills[0].XP)

	// any other key disarms
	m, _ = m.Update(key("+"))
	m, cmd = m.Update(key("r"))
	assert.Nil(t, cmd)

	m, cmd = m.Update(key("r"))
	assert.NotNil(t, cmd)
	m, _ = m.Update(skillsMsg{skills: []dto.SkillItem{{Skillname: "Chess", XP: 150}}})
	assert.False(t, m.dirty)
	assert.Equal(t, 150, m.Skills[0].XP)
}

func TestDashboard_RefreshWithoutEditsReloadsAtOnce(t *testing.T) {
	m := loadedDashboard(t, dto.SkillItem{Skillname: "Chess", XP: 150})
	_, cmd := m.Update(key("r"))
	assert.NotNil(t, cmd)
}

func TestDashboard_ReloadAfterWriteKeepsEdits(t *testing.T) {
	m := loadedDashboard(t, dto.SkillItem{Skillname: "Chess", XP: 150}, dto.SkillItem{Skillname: "Go", XP: 0})
	m, _ = m.Update(key("+"))

	// Go was deleted and Guitar added elsewhere; the Chess edit survives
	m, _ = m.Update(skillsMsg{keepLocal: true, skills: []dto.SkillItem{
		{Skillname: "Chess", XP: 150},
		{Skillname: "Guitar", XP: 0},
	}})
	assert.True(t, m.dirty)
	assert.Equal(t, []dto.SkillItem{{Skillname: "Chess", XP: 160}, {Skillname: "Guitar", XP: 0}}, m.Skills)
	assert.Equal(t, "160", m.Table.Rows()[0][1])
}

func TestMergeLocal_NoDifferenceIsClean(t *testing.T) {
	fresh := []dto.SkillItem{{Skillname: "Chess", XP: 10}}
	out, dirty := mergeLocal(fresh, []dto.SkillItem{{Skillname: "Chess", XP: 10}})
	assert.False(t, dirty)
	assert.Equal(t, fresh, out)
}
