package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"portfolio-content-be/internal/entity"
	"portfolio-content-be/internal/pkg/logger"
	"portfolio-content-be/internal/repository/contract"
	"portfolio-content-be/internal/repository/specification"
	"portfolio-content-be/internal/repository/unitofwork"
	"portfolio-content-be/pkg/events"

	"github.com/google/uuid"
)

// fakeContentRepository evaluates the specifications the services use
// against an in-memory table.
type fakeContentRepository struct {
	mu      sync.Mutex
	rows    map[uuid.UUID]*entity.Content
	findErr error
}

func newFakeContentRepository(rows ...*entity.Content) *fakeContentRepository {
	r := &fakeContentRepository{rows: make(map[uuid.UUID]*entity.Content)}
	for _, c := range rows {
		r.rows[c.Id] = c
	}
	return r
}

func (r *fakeContentRepository) Create(_ context.Context, content *entity.Content) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *content
	r.rows[content.Id] = &copied
	return nil
}

func (r *fakeContentRepository) Update(_ context.Context, content *entity.Content) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *content
	r.rows[content.Id] = &copied
	return nil
}

func (r *fakeContentRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.rows[id]; ok {
		now := time.Now()
		c.DeletedAt = &now
		c.IsDeleted = true
	}
	return nil
}

func (r *fakeContentRepository) match(specs []specification.Specification) []*entity.Content {
	var out []*entity.Content
	page := specification.Pagination{}
	for _, c := range r.rows {
		if c.IsDeleted {
			continue
		}
		ok := true
		for _, spec := range specs {
			switch s := spec.(type) {
			case specification.ByID:
				ok = ok && c.Id == s.ID
			case specification.ByKind:
				ok = ok && string(c.Kind) == s.Kind
			case specification.BySlug:
				ok = ok && c.Slug == s.Slug
			case specification.Published:
				ok = ok && c.Published
			case specification.ExcludeID:
				ok = ok && c.Id != s.ID
			case specification.Pagination:
				page = s
			}
		}
		if ok {
			copied := *c
			out = append(out, &copied)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].PublishedAt, out[j].PublishedAt
		if a == nil || b == nil {
			return a != nil
		}
		return a.After(*b)
	})

	if page.Limit > 0 {
		if page.Offset >= len(out) {
			return nil
		}
		end := page.Offset + page.Limit
		if end > len(out) {
			end = len(out)
		}
		out = out[page.Offset:end]
	}
	return out
}

func (r *fakeContentRepository) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Content, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	found := r.match(specs)
	if len(found) == 0 {
		return nil, nil
	}
	return found[0], nil
}

func (r *fakeContentRepository) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Content, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.match(specs), nil
}

func (r *fakeContentRepository) Count(_ context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.match(specs))), nil
}

type fakeUnitOfWork struct {
	repo *fakeContentRepository
}

func (u *fakeUnitOfWork) Begin(context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                { return nil }
func (u *fakeUnitOfWork) Rollback() error              { return nil }

func (u *fakeUnitOfWork) ContentRepository() contract.ContentRepository { return u.repo }

type fakeFactory struct {
	repo *fakeContentRepository
}

func (f *fakeFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork {
	return &fakeUnitOfWork{repo: f.repo}
}

type fakePublisher struct {
	mu       sync.Mutex
	payloads [][]byte
	err      error
}

func (p *fakePublisher) Publish(_ context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return p.err
}

type fakeEventBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *fakeEventBus) Publish(_ context.Context, event events.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
	return nil
}

func (b *fakeEventBus) types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.events))
	for _, e := range b.events {
		out = append(out, e.EventType())
	}
	return out
}

// failingCache errors on every call.
type failingCache struct{}

var errCacheDown = errors.New("cache down")

func (failingCache) Get(context.Context, uuid.UUID, int64) (*entity.RenderedContent, bool, error) {
	return nil, false, errCacheDown
}
func (failingCache) Set(context.Context, *entity.RenderedContent) error { return errCacheDown }
func (failingCache) Delete(context.Context, uuid.UUID) error             { return errCacheDown }

type loggedLine struct {
	level   string
	module  string
	message string
}

// recordingLogger keeps every line in memory.
type recordingLogger struct {
	logger.NopLogger
	mu    sync.Mutex
	lines []loggedLine
}

func (l *recordingLogger) record(level, module, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, loggedLine{level: level, module: module, message: message})
}

func (l *recordingLogger) Debug(module, message string, _ map[string]interface{}) {
	l.record("DEBUG", module, message)
}
func (l *recordingLogger) Info(module, message string, _ map[string]interface{}) {
	l.record("INFO", module, message)
}
func (l *recordingLogger) Warn(module, message string, _ map[string]interface{}) {
	l.record("WARN", module, message)
}
func (l *recordingLogger) Error(module, message string, _ map[string]interface{}) {
	l.record("ERROR", module, message)
}

func (l *recordingLogger) has(level, message string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.lines {
		if line.level == level && line.message == message {
			return true
		}
	}
	return false
}
