package session

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/adaptiq/internal/content"
	"github.com/abhisek/adaptiq/internal/mastery"
	"github.com/abhisek/adaptiq/internal/skills"
	"github.com/abhisek/adaptiq/internal/store"
)

var (
	// ErrNoActiveSession is returned when ending or answering without a
	// started session.
	ErrNoActiveSession = errors.New("no active session")

	// ErrNoQuestion is returned when the current section has no question
	// to answer.
	ErrNoQuestion = errors.New("no current question")
)

// MasteryUpdater records answers. *mastery.Service implements it.
type MasteryUpdater interface {
	UpdateMastery(ctx context.Context, a mastery.Answer) (*mastery.SkillStats, error)
}

// Selector picks an adaptive question mix. *adaptive.Selector implements it.
type Selector interface {
	Select(ctx context.Context, userID string, total int) ([]content.Question, error)
}

// Options wires a Manager to its collaborators.
type Options struct {
	Source   content.Source
	Selector Selector
	Mastery  MasteryUpdater
	Sessions store.SessionRepo
	Logger   *zap.Logger

	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Manager runs one learner's sessions, one at a time.
type Manager struct {
	userID   string
	source   content.Source
	selector Selector
	mastery  MasteryUpdater
	sessions store.SessionRepo
	logger   *zap.Logger
	now      func() time.Time

	current     *Session
	sectionIdx  int
	questionIdx int
}

// NewManager creates a session manager for userID.
func NewManager(userID string, opts Options) *Manager {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Manager{
		userID:   userID,
		source:   opts.Source,
		selector: opts.Selector,
		mastery:  opts.Mastery,
		sessions: opts.Sessions,
		logger:   logger.Named("session"),
		now:      clock,
	}
}

// Start builds a new session and shows its first question. A session
// that is still running is discarded.
func (m *Manager) Start(ctx context.Context, mode Mode, cfg Config) (*Session, error) {
	cfg = resolveConfig(mode, cfg)
	for _, sec := range cfg.Sections {
		if !sec.Valid() {
			return nil, fmt.Errorf("unknown section %q", sec)
		}
	}
	if m.current != nil {
		m.logger.Warn("discarding unfinished session", zap.String("session", m.current.ID))
	}

	var sections []*Section
	var err error
	if mode == ModeAdaptive {
		sections, err = m.adaptiveSections(ctx, cfg)
	} else {
		sections, err = m.freshSections(ctx, cfg)
	}
	if err != nil {
		return nil, err
	}

	now := m.now()
	s := &Session{
		ID:        uuid.NewString(),
		UserID:    m.userID,
		Mode:      mode,
		Config:    cfg,
		StartedAt: now,
		Sections:  sections,
	}
	m.current, m.sectionIdx, m.questionIdx = s, 0, 0
	if len(sections) > 0 {
		m.enterSection(now)
	}

	m.logger.Info("session started",
		zap.String("session", s.ID),
		zap.String("mode", string(mode)),
		zap.Int("sections", len(sections)),
		zap.Int("questions", s.QuestionCount()),
	)
	return s, nil
}

func resolveConfig(mode Mode, cfg Config) Config {
	def := DefaultConfig(mode)
	if len(cfg.Sections) == 0 {
		cfg.Sections = def.Sections
	}
	if cfg.Difficulty == "" {
		cfg.Difficulty = def.Difficulty
	}
	if cfg.TimerMode == "" {
		cfg.TimerMode = def.TimerMode
	}
	if cfg.QuestionsPerSection < 0 {
		cfg.QuestionsPerSection = 0
	}
	return cfg
}

func questionCount(cfg Config, sec skills.SectionType) int {
	if cfg.QuestionsPerSection > 0 {
		return cfg.QuestionsPerSection
	}
	sc, _ := skills.Config(sec)
	return sc.DefaultQuestionCount
}

func timeLimit(cfg Config, sec skills.SectionType) int {
	if cfg.TimerMode != TimerPerSection {
		return 0
	}
	if cfg.TimeLimitSec > 0 {
		return cfg.TimeLimitSec
	}
	sc, _ := skills.Config(sec)
	return int(sc.DefaultTime / time.Second)
}

// freshSections generates new questions for every section.
func (m *Manager) freshSections(ctx context.Context, cfg Config) ([]*Section, error) {
	out := make([]*Section, 0, len(cfg.Sections))
	for _, sec := range cfg.Sections {
		qs, err := m.source.Generate(ctx, sec, cfg.Difficulty, questionCount(cfg, sec))
		if err != nil {
			return nil, fmt.Errorf("generate %s questions: %w", sec, err)
		}
		out = append(out, newSection(sec, timeLimit(cfg, sec), qs))
	}
	return out, nil
}

// adaptiveSections asks the selector for the whole session and groups the
// result by section. Sections that received nothing are kept empty.
func (m *Manager) adaptiveSections(ctx context.Context, cfg Config) ([]*Section, error) {
	total := 0
	for _, sec := range cfg.Sections {
		total += questionCount(cfg, sec)
	}
	qs, err := m.selector.Select(ctx, m.userID, total)
	if err != nil {
		return nil, fmt.Errorf("select adaptive questions: %w", err)
	}
	grouped := make(map[skills.SectionType][]content.Question)
	for _, q := range qs {
		grouped[q.Section] = append(grouped[q.Section], q)
	}
	out := make([]*Section, 0, len(cfg.Sections))
	for _, sec := range cfg.Sections {
		out = append(out, newSection(sec, timeLimit(cfg, sec), grouped[sec]))
	}
	return out, nil
}

func newSection(sec skills.SectionType, limit int, qs []content.Question) *Section {
	s := &Section{Type: sec, TimeLimitSec: limit, Questions: make([]*QuestionState, len(qs))}
	for i, q := range qs {
		s.Questions[i] = &QuestionState{Question: q, Selected: -1}
	}
	return s
}

// enterSection starts the current section and shows its first question.
func (m *Manager) enterSection(now time.Time) {
	sec := m.current.Sections[m.sectionIdx]
	sec.StartedAt = now
	if len(sec.Questions) > 0 {
		sec.Questions[0].ShownAt = now
	}
}

// Session returns the running session, or nil.
func (m *Manager) Session() *Session { return m.current }

// Active reports whether a session is running.
func (m *Manager) Active() bool { return m.current != nil }

func (m *Manager) currentState() *QuestionState {
	if m.current == nil || m.sectionIdx >= len(m.current.Sections) {
		return nil
	}
	sec := m.current.Sections[m.sectionIdx]
	if m.questionIdx >= len(sec.Questions) {
		return nil
	}
	return sec.Questions[m.questionIdx]
}

// CurrentSection returns the section being worked on.
func (m *Manager) CurrentSection() (*Section, bool) {
	if m.current == nil || m.sectionIdx >= len(m.current.Sections) {
		return nil, false
	}
	return m.current.Sections[m.sectionIdx], true
}

// CurrentQuestion returns the question on screen.
func (m *Manager) CurrentQuestion() (*QuestionState, bool) {
	qs := m.currentState()
	return qs, qs != nil
}

// Answer records the selected option for the current question and updates
// mastery. Time spent runs from when the question was shown and is rounded
// to whole seconds. A second answer to the same question changes nothing.
func (m *Manager) Answer(ctx context.Context, option int) (*Result, error) {
	if m.current == nil {
		return nil, ErrNoActiveSession
	}
	qs := m.currentState()
	if qs == nil {
		return nil, ErrNoQuestion
	}
	q := qs.Question
	if qs.Answered {
		return &Result{
			Correct:       qs.Correct,
			CorrectOption: q.CorrectOption,
			Explanation:   q.Explanation,
			TimeSpentSec:  qs.TimeSpentSec,
		}, nil
	}

	now := m.now()
	spent := int(math.Round(now.Sub(qs.ShownAt).Seconds()))
	if qs.ShownAt.IsZero() || spent < 0 {
		spent = 0
	}
	correct := q.IsCorrect(option)

	// The question stays unanswered until mastery is stored, so a failed
	// update can be retried.
	stats, err := m.mastery.UpdateMastery(ctx, mastery.Answer{
		Key:                mastery.Key{UserID: m.userID, Section: q.Section, Skill: q.Skill},
		Correct:            correct,
		TimeSpentSec:       float64(spent),
		RecommendedTimeSec: float64(q.RecommendedTimeSec),
	})
	if err != nil {
		return nil, fmt.Errorf("update mastery: %w", err)
	}

	qs.Answered = true
	qs.AnsweredAt = now
	qs.Selected = option
	qs.Correct = correct
	qs.TimeSpentSec = spent
	return &Result{
		Correct:       correct,
		CorrectOption: q.CorrectOption,
		Explanation:   q.Explanation,
		TimeSpentSec:  spent,
		MasteryScore:  stats.MasteryScore,
	}, nil
}

// NextQuestion moves to the next question of the section. It returns
// false at the end of the section.
func (m *Manager) NextQuestion() bool {
	sec, ok := m.CurrentSection()
	if !ok || m.questionIdx+1 >= len(sec.Questions) {
		return false
	}
	m.questionIdx++
	sec.Questions[m.questionIdx].ShownAt = m.now()
	return true
}

// NextSection closes the current section and starts the next one. It
// returns false when there are no more sections.
func (m *Manager) NextSection() bool {
	sec, ok := m.CurrentSection()
	if !ok {
		return false
	}
	now := m.now()
	if sec.EndedAt.IsZero() {
		sec.EndedAt = now
	}
	if m.sectionIdx+1 >= len(m.current.Sections) {
		return false
	}
	m.sectionIdx++
	m.questionIdx = 0
	m.enterSection(now)
	return true
}

// Progress reports the position in the running session.
func (m *Manager) Progress() Progress {
	if m.current == nil {
		return Progress{}
	}
	p := Progress{
		Section:       m.sectionIdx + 1,
		Question:      m.questionIdx + 1,
		TotalSections: len(m.current.Sections),
	}
	if sec, ok := m.CurrentSection(); ok {
		p.TotalQuestions = len(sec.Questions)
	}
	return p
}

// SectionTimeLeft returns the remaining time of a per-section timer. The
// second result is false when the section has no time limit.
func (m *Manager) SectionTimeLeft(now time.Time) (time.Duration, bool) {
	sec, ok := m.CurrentSection()
	if !ok || m.current.Config.TimerMode != TimerPerSection || sec.TimeLimitSec <= 0 {
		return 0, false
	}
	left := time.Duration(sec.TimeLimitSec)*time.Second - now.Sub(sec.StartedAt)
	return max(left, 0), true
}

// QuestionTimeLeft returns the remaining time of a per-question timer,
// which runs for the question's recommended time.
func (m *Manager) QuestionTimeLeft(now time.Time) (time.Duration, bool) {
	qs := m.currentState()
	if qs == nil || m.current.Config.TimerMode != TimerPerQuestion {
		return 0, false
	}
	left := time.Duration(qs.Question.RecommendedTimeSec)*time.Second - now.Sub(qs.ShownAt)
	return max(left, 0), true
}

// End finishes the running session, computes its totals and persists it.
func (m *Manager) End(ctx context.Context) (*Session, error) {
	s := m.current
	if s == nil {
		return nil, ErrNoActiveSession
	}
	now := m.now()
	if sec, ok := m.CurrentSection(); ok && sec.EndedAt.IsZero() {
		sec.EndedAt = now
	}

	answered, correct, spent := 0, 0, 0
	for _, sec := range s.Sections {
		for _, q := range sec.Questions {
			if !q.Answered {
				continue
			}
			answered++
			spent += q.TimeSpentSec
			if q.Correct {
				correct++
			}
		}
	}
	s.EndedAt = now
	s.TotalTimeSec = spent
	if answered > 0 {
		s.TotalScore = math.Round(float64(correct) / float64(answered) * 100)
	}

	if err := m.sessions.Save(ctx, toData(s)); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	m.current = nil
	m.logger.Info("session ended",
		zap.String("session", s.ID),
		zap.Int("answered", answered),
		zap.Int("correct", correct),
		zap.Float64("score", s.TotalScore),
	)
	return s, nil
}

func toData(s *Session) *store.SessionData {
	d := &store.SessionData{
		ID:           s.ID,
		UserID:       s.UserID,
		Mode:         string(s.Mode),
		Difficulty:   string(s.Config.Difficulty),
		TimerMode:    string(s.Config.TimerMode),
		StartedAt:    s.StartedAt,
		EndedAt:      s.EndedAt,
		TotalScore:   s.TotalScore,
		TotalTimeSec: s.TotalTimeSec,
	}
	for _, sec := range s.Sections {
		sd := store.SectionResultData{
			Section:      string(sec.Type),
			Questions:    len(sec.Questions),
			TimeLimitSec: sec.TimeLimitSec,
		}
		for _, q := range sec.Questions {
			if !q.Answered {
				continue
			}
			sd.Answers = append(sd.Answers, store.AnswerData{
				QuestionID:   q.Question.ID,
				Skill:        string(q.Question.Skill),
				Difficulty:   string(q.Question.Difficulty),
				Selected:     q.Selected,
				Correct:      q.Correct,
				TimeSpentSec: q.TimeSpentSec,
			})
		}
		d.Sections = append(d.Sections, sd)
	}
	return d
}
