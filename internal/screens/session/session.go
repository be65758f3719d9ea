package session

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/adaptiq/internal/router"
	sess "github.com/abhisek/adaptiq/internal/session"
	"github.com/abhisek/adaptiq/internal/ui/components"
	"github.com/abhisek/adaptiq/internal/ui/layout"
)

// SectionPause is how long the section transition stays up unless a key
// is pressed.
const SectionPause = 2 * time.Second

var errNoQuestions = errors.New("no questions are available for this session")

type phase int

const (
	phaseLoading phase = iota
	phaseQuestion
	phaseFeedback
	phaseSectionBreak
	phaseEnding
	phaseError
)

// Options configures a SessionScreen.
type Options struct {
	Manager *sess.Manager
	Mode    sess.Mode
	Config  sess.Config
	// Finish builds the screen shown after the session ends.
	Finish func(*sess.Session) router.Screen
	// Clock defaults to time.Now. It should match the manager's clock.
	Clock func() time.Time
}

// SessionScreen runs one session on a Manager: it shows each question,
// reports the answer and walks through the sections.
type SessionScreen struct {
	manager *sess.Manager
	mode    sess.Mode
	config  sess.Config
	finish  func(*sess.Session) router.Screen
	now     func() time.Time

	phase       phase
	confirmQuit bool
	choice      components.MultiChoice
	result      *sess.Result
	errMsg      string
}

var (
	_ router.Screen          = (*SessionScreen)(nil)
	_ router.KeyHintProvider = (*SessionScreen)(nil)
)

func New(opts Options) *SessionScreen {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &SessionScreen{
		manager: opts.Manager,
		mode:    opts.Mode,
		config:  opts.Config,
		finish:  opts.Finish,
		now:     clock,
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	m, mode, cfg := s.manager, s.mode, s.config
	return func() tea.Msg {
		started, err := m.Start(context.Background(), mode, cfg)
		return startedMsg{Session: started, Err: err}
	}
}

func (s *SessionScreen) Title() string {
	switch s.mode {
	case sess.ModeAdaptive:
		return "Adaptive Practice"
	case sess.ModeMiniExam:
		return "Mini Exam"
	case sess.ModeFullExam:
		return "Full Exam"
	default:
		return "Practice"
	}
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.confirmQuit:
		return []layout.KeyHint{{Key: "Y", Description: "End session"}, {Key: "N", Description: "Keep going"}}
	case s.phase == phaseFeedback, s.phase == phaseSectionBreak, s.phase == phaseError:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	case s.phase == phaseQuestion:
		return []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "↑↓ Enter", Description: "Choose"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return nil
}

// showsFeedback reports whether answers are checked right away. Exams
// move on without revealing the answer.
func (s *SessionScreen) showsFeedback() bool {
	return s.mode == sess.ModePractice || s.mode == sess.ModeAdaptive
}

func (s *SessionScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		return s, s.handleStarted(msg)
	case tickMsg:
		return s, s.handleTick()
	case sectionReadyMsg:
		if s.phase == phaseSectionBreak && s.manager.Progress().Section == msg.section {
			return s, s.enterNextSection()
		}
		return s, nil
	case endedMsg:
		if msg.Err != nil {
			s.fail(msg.Err)
			return s, nil
		}
		return s, router.Replace(s.finish(msg.Session))
	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *SessionScreen) handleStarted(msg startedMsg) tea.Cmd {
	if msg.Err != nil {
		s.fail(msg.Err)
		return nil
	}
	if msg.Session.QuestionCount() == 0 {
		s.fail(errNoQuestions)
		return nil
	}
	return tea.Batch(s.showQuestion(), tick())
}

// showQuestion displays the current question, skipping empty sections.
func (s *SessionScreen) showQuestion() tea.Cmd {
	qs, ok := s.manager.CurrentQuestion()
	if !ok {
		return s.finishSection()
	}
	s.phase = phaseQuestion
	s.result = nil
	s.choice = components.NewMultiChoice(qs.Question.Options)
	return nil
}

func (s *SessionScreen) handleKey(key tea.KeyPressMsg) tea.Cmd {
	k := key.String()
	if s.confirmQuit {
		switch k {
		case "y", "Y":
			s.confirmQuit = false
			return s.end()
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return nil
	}

	switch s.phase {
	case phaseError:
		return router.Pop()
	case phaseFeedback:
		return s.advance()
	case phaseSectionBreak:
		return s.enterNextSection()
	case phaseQuestion:
		if k == "esc" {
			s.confirmQuit = true
			return nil
		}
		var picked bool
		s.choice, picked = s.choice.Update(key)
		if picked {
			return s.answer(s.choice.Chosen)
		}
	}
	return nil
}

func (s *SessionScreen) answer(option int) tea.Cmd {
	res, err := s.manager.Answer(context.Background(), option)
	if err != nil {
		s.fail(err)
		return nil
	}
	if !s.showsFeedback() {
		return s.advance()
	}
	s.result = res
	s.choice.Reveal(res.CorrectOption)
	s.phase = phaseFeedback
	return nil
}

// advance moves to the next question, or closes the section.
func (s *SessionScreen) advance() tea.Cmd {
	if s.manager.NextQuestion() {
		return s.showQuestion()
	}
	return s.finishSection()
}

// finishSection pauses before the next section, or ends the session
// after the last one.
func (s *SessionScreen) finishSection() tea.Cmd {
	p := s.manager.Progress()
	if p.Section >= p.TotalSections {
		return s.end()
	}
	s.phase = phaseSectionBreak
	section := p.Section
	return tea.Tick(SectionPause, func(time.Time) tea.Msg { return sectionReadyMsg{section: section} })
}

func (s *SessionScreen) enterNextSection() tea.Cmd {
	if !s.manager.NextSection() {
		return s.end()
	}
	return s.showQuestion()
}

func (s *SessionScreen) end() tea.Cmd {
	if s.phase == phaseEnding {
		return nil
	}
	s.phase = phaseEnding
	m := s.manager
	return func() tea.Msg {
		ended, err := m.End(context.Background())
		return endedMsg{Session: ended, Err: err}
	}
}

func (s *SessionScreen) handleTick() tea.Cmd {
	switch s.phase {
	case phaseEnding, phaseError:
		return nil
	case phaseQuestion, phaseFeedback:
		if left, ok := s.manager.SectionTimeLeft(s.now()); ok && left <= 0 {
			return tea.Batch(s.finishSection(), tick())
		}
	}
	return tick()
}

func (s *SessionScreen) fail(err error) {
	s.phase = phaseError
	s.errMsg = err.Error()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}
