package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

type stubScreen struct {
	title   string
	initRan bool
	got     []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	s.got = append(s.got, msg)
	return s, nil
}

func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

type pingMsg struct{}

func TestPushAndPop(t *testing.T) {
	first := &stubScreen{title: "first"}
	r := New(first)

	second := &stubScreen{title: "second"}
	r.Push(second)
	if r.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", r.Depth())
	}
	if !second.initRan {
		t.Error("Push should run Init")
	}
	if got := r.Active().Title(); got != "second" {
		t.Errorf("Active() = %q, want second", got)
	}

	r.Pop()
	if got := r.Active().Title(); got != "first" {
		t.Errorf("after Pop Active() = %q, want first", got)
	}
}

func TestPopKeepsLastScreen(t *testing.T) {
	r := New(&stubScreen{title: "only"})
	r.Pop()
	if r.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", r.Depth())
	}
}

func TestReplaceKeepsDepth(t *testing.T) {
	r := New(&stubScreen{title: "welcome"})
	r.Push(&stubScreen{title: "session"})

	summary := &stubScreen{title: "summary"}
	r.Update(ReplaceScreenMsg{Screen: summary})

	if r.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", r.Depth())
	}
	if r.Active() != summary {
		t.Errorf("Active() = %q, want summary", r.Active().Title())
	}
	if !summary.initRan {
		t.Error("Replace should run Init")
	}
}

func TestMessagesReachActiveScreen(t *testing.T) {
	bottom := &stubScreen{title: "bottom"}
	top := &stubScreen{title: "top"}
	r := New(bottom)
	r.Update(PushScreenMsg{Screen: top})
	r.Update(pingMsg{})

	if len(top.got) != 1 {
		t.Errorf("top received %d messages, want 1", len(top.got))
	}
	if len(bottom.got) != 0 {
		t.Errorf("bottom received %d messages, want 0", len(bottom.got))
	}
	if got := r.View(80, 24); got != "top" {
		t.Errorf("View() = %q, want top", got)
	}
}

func TestCommandHelpers(t *testing.T) {
	s := &stubScreen{title: "x"}
	if msg, ok := Push(s)().(PushScreenMsg); !ok || msg.Screen != s {
		t.Errorf("Push() produced %T", msg)
	}
	if msg, ok := Replace(s)().(ReplaceScreenMsg); !ok || msg.Screen != s {
		t.Errorf("Replace() produced %T", msg)
	}
	if _, ok := Pop()().(PopScreenMsg); !ok {
		t.Error("Pop() should produce PopScreenMsg")
	}
}
