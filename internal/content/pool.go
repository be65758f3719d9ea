package content

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/adaptiq/internal/skills"
)

// ErrNotOpen is returned by Generate before Open has been called.
var ErrNotOpen = errors.New("question pool not open")

// Options configures a Pool.
type Options struct {
	// Rand drives every random choice. Nil seeds from the clock.
	Rand *rand.Rand

	Logger *zap.Logger

	// LLM, when set, is asked first; procedural generators fill any gap.
	LLM Source

	// Generators overrides the procedural generators. Nil means
	// DefaultGenerators.
	Generators []Generator
}

// Pool generates fresh questions and keeps a registry of everything it
// has handed out. Ids are unique for the lifetime of the pool.
type Pool struct {
	mu     sync.Mutex
	opened bool
	rng    *rand.Rand
	logger *zap.Logger
	llm    Source

	pending    []Generator
	generators map[skills.SectionType]Generator

	byID      map[string]Question
	bySection map[skills.SectionType][]string
}

// NewPool creates a pool. Call Open before generating.
func NewPool(opts Options) *Pool {
	rng := opts.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	gens := opts.Generators
	if gens == nil {
		gens = DefaultGenerators()
	}
	return &Pool{
		rng:       rng,
		logger:    logger.Named("content"),
		llm:       opts.LLM,
		pending:   gens,
		byID:      make(map[string]Question),
		bySection: make(map[skills.SectionType][]string),
	}
}

// Open registers the generators. Calling it again is a no-op.
func (p *Pool) Open() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.opened {
		return nil
	}

	gens := make(map[skills.SectionType]Generator, len(p.pending))
	for _, g := range p.pending {
		sec := g.Section()
		if !sec.Valid() {
			return fmt.Errorf("generator for unknown section %q", sec)
		}
		if _, dup := gens[sec]; dup {
			return fmt.Errorf("duplicate generator for section %q", sec)
		}
		gens[sec] = g
	}
	p.generators = gens
	p.pending = nil
	p.opened = true
	p.logger.Debug("question pool opened", zap.Int("generators", len(gens)))
	return nil
}

// Generate returns up to count fresh questions for section. The LLM source
// is tried first when configured; its failures are logged and the
// procedural generator takes over.
func (p *Pool) Generate(ctx context.Context, section skills.SectionType, d skills.Difficulty, count int) ([]Question, error) {
	p.mu.Lock()
	opened := p.opened
	p.mu.Unlock()
	if !opened {
		return nil, ErrNotOpen
	}
	if !section.Valid() {
		return nil, fmt.Errorf("unknown section %q", section)
	}
	if count <= 0 {
		return nil, nil
	}

	var fromLLM []Question
	if p.llm != nil {
		qs, err := p.llm.Generate(ctx, section, d, count)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			p.logger.Warn("llm content failed, using generators",
				zap.String("section", string(section)), zap.Error(err))
		}
		fromLLM = qs
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	out := p.register(fromLLM, count)
	if missing := count - len(out); missing > 0 {
		g, ok := p.generators[section]
		if !ok {
			p.logger.Warn("no generator for section", zap.String("section", string(section)))
			return out, nil
		}
		out = append(out, p.register(g.Generate(p.rng, d, missing), missing)...)
	}
	return out, nil
}

// register validates qs and records up to limit of them. Invalid
// questions and id collisions are dropped. Callers hold p.mu.
func (p *Pool) register(qs []Question, limit int) []Question {
	out := make([]Question, 0, min(len(qs), limit))
	for _, q := range qs {
		if len(out) == limit {
			break
		}
		if err := Validate(q); err != nil {
			p.logger.Warn("dropping invalid question", zap.Error(err))
			continue
		}
		if _, dup := p.byID[q.ID]; dup {
			p.logger.Warn("dropping question with reused id", zap.String("id", q.ID))
			continue
		}
		p.byID[q.ID] = q
		p.bySection[q.Section] = append(p.bySection[q.Section], q.ID)
		out = append(out, q)
	}
	return out
}

// ForSection returns every question generated for section, oldest first.
func (p *Pool) ForSection(section skills.SectionType) []Question {
	p.mu.Lock()
	defer p.mu.Unlock()
	ids := p.bySection[section]
	out := make([]Question, len(ids))
	for i, id := range ids {
		out[i] = p.byID[id]
	}
	return out
}

// Size returns the number of registered questions.
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.byID)
}
