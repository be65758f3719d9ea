package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/adaptiq/internal/router"
	"github.com/abhisek/adaptiq/internal/store"
)

type fakeRepo struct {
	sessions []store.SessionData
	err      error
}

func (f *fakeRepo) Get(context.Context, string) (*store.SessionData, error) { return nil, store.ErrNotFound }
func (f *fakeRepo) Save(context.Context, *store.SessionData) error         { return nil }
func (f *fakeRepo) List(context.Context, string) ([]store.SessionData, error) {
	return f.sessions, f.err
}

func key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code, Text: string(code)}
}

func sampleSession() store.SessionData {
	return store.SessionData{
		ID:           "s1",
		UserID:       "kid",
		Mode:         "mini_exam",
		StartedAt:    time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC),
		TotalScore:   75,
		TotalTimeSec: 125,
		Sections: []store.SectionResultData{
			{Section: "math", Questions: 2, Answers: []store.AnswerData{{Correct: true}, {Correct: false}}},
			{Section: "shapes", Questions: 2, Answers: []store.AnswerData{{Correct: true}, {Correct: true}}},
		},
	}
}

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	msg := s.Init()()
	s.Update(msg)
}

func TestLine(t *testing.T) {
	got := Line(sampleSession())
	for _, want := range []string{"mini exam", "2:05", "4 answered", "75%"} {
		if !strings.Contains(got, want) {
			t.Errorf("Line() = %q, want it to contain %q", got, want)
		}
	}
}

func TestViewListsSessions(t *testing.T) {
	s := New(&fakeRepo{sessions: []store.SessionData{sampleSession()}}, "kid", nil)
	if v := s.View(80, 20); !strings.Contains(v, "Loading") {
		t.Errorf("View before load = %q, want loading message", v)
	}
	load(t, s)

	v := s.View(100, 20)
	if !strings.Contains(v, "mini exam") {
		t.Errorf("View = %q, want session line", v)
	}
	if strings.Contains(v, "Shapes") {
		t.Error("sections should be hidden until expanded")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	v = s.View(100, 20)
	if !strings.Contains(v, "1/2") || !strings.Contains(v, "2/2") {
		t.Errorf("expanded View = %q, want per-section counts", v)
	}
}

func TestViewEmptyAndError(t *testing.T) {
	s := New(&fakeRepo{}, "kid", nil)
	load(t, s)
	if v := s.View(80, 20); !strings.Contains(v, "No sessions yet") {
		t.Errorf("View = %q, want empty message", v)
	}

	s = New(&fakeRepo{err: errors.New("disk gone")}, "kid", nil)
	load(t, s)
	if v := s.View(80, 20); !strings.Contains(v, "disk gone") {
		t.Errorf("View = %q, want error", v)
	}
}

func TestNavigationBounds(t *testing.T) {
	a, b := sampleSession(), sampleSession()
	b.ID = "s2"
	s := New(&fakeRepo{sessions: []store.SessionData{a, b}}, "kid", nil)
	load(t, s)

	s.Update(key('k'))
	if s.selected != 0 {
		t.Errorf("selected = %d, want 0", s.selected)
	}
	s.Update(key('j'))
	s.Update(key('j'))
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1", s.selected)
	}
}

func TestEscRunsDone(t *testing.T) {
	s := New(&fakeRepo{}, "kid", nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("esc returned no command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("esc with nil done should pop")
	}
}
