package submission_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/anikett35/MediMage/internal/submission"
)

// mockRepository is an in-memory submission.Repository
type mockRepository struct {
	mu     sync.Mutex
	items  map[string]submission.Submission
	order  []string
	writes int
	err    error
}

func newMockRepository() *mockRepository {
	return &mockRepository{items: make(map[string]submission.Submission)}
}

func (m *mockRepository) Create(ctx context.Context, s *submission.Submission) (*submission.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.writes++
	m.items[s.ID] = *s
	m.order = append(m.order, s.ID)
	out := *s
	return &out, nil
}

func (m *mockRepository) List(ctx context.Context) ([]submission.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]submission.Submission, 0, len(m.items))
	for _, id := range m.order {
		if s, ok := m.items[id]; ok {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *mockRepository) Delete(ctx context.Context, id string) (*submission.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	s, ok := m.items[id]
	if !ok {
		return nil, submission.ErrSubmissionNotFound
	}
	m.writes++
	delete(m.items, id)
	return &s, nil
}

func (m *mockRepository) DeleteAll(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	m.writes++
	n := int64(len(m.items))
	m.items = make(map[string]submission.Submission)
	m.order = nil
	return n, nil
}

func (m *mockRepository) UpdateStatus(ctx context.Context, id string, status submission.Status, updatedAt time.Time) (*submission.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	s, ok := m.items[id]
	if !ok {
		return nil, submission.ErrSubmissionNotFound
	}
	m.writes++
	s.Status = status
	s.UpdatedAt = updatedAt
	m.items[id] = s
	return &s, nil
}

func (m *mockRepository) writeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// mockProducer records every event it is handed
type mockProducer struct {
	mu     sync.Mutex
	keys   []string
	events []interface{}
	err    error
}

func (p *mockProducer) SendMessage(ctx context.Context, key string, value interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	p.events = append(p.events, value)
	return p.err
}

// stepClock returns a clock that advances by step on every call
func stepClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	current := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now := current
		current = current.Add(step)
		return now
	}
}
