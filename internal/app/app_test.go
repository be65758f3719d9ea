package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/adaptiq/internal/router"
	"github.com/abhisek/adaptiq/internal/screens/welcome"
)

type stubScreen struct{ updates int }

func (s *stubScreen) Init() tea.Cmd { return nil }
func (s *stubScreen) Update(tea.Msg) (router.Screen, tea.Cmd) {
	s.updates++
	return s, nil
}
func (s *stubScreen) View(int, int) string { return "body" }
func (s *stubScreen) Title() string        { return "Stub" }

func TestNameMsgUpdatesLearner(t *testing.T) {
	m := New(&stubScreen{}, "")
	updated, _ := m.Update(welcome.NameMsg{Name: "Dana"})
	if got := updated.(Model).learner; got != "Dana" {
		t.Errorf("learner = %q, want Dana", got)
	}
}

func TestQuitMsg(t *testing.T) {
	m := New(&stubScreen{}, "x")
	_, cmd := m.Update(QuitMsg{})
	if cmd == nil {
		t.Fatal("QuitMsg should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("QuitMsg should quit the program")
	}
}

func TestKeysReachScreen(t *testing.T) {
	s := &stubScreen{}
	m := New(s, "")
	m.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if s.updates != 1 {
		t.Errorf("updates = %d, want 1", s.updates)
	}

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
	if s.updates != 1 {
		t.Error("ctrl+c should not reach the screen")
	}
}

func TestViewBeforeSize(t *testing.T) {
	m := New(&stubScreen{}, "")
	v := m.View()
	if !v.AltScreen {
		t.Error("view should use the alternate screen")
	}
}
