package memory

import (
	"context"
	"sync"

	"github.com/sanosuguru/go-event-scheduler/internal/domain/event"
)

// EventRepository はイベントリポジトリのインメモリ実装
// 登録順を保持し、開催地・会場の検索は全件走査で行う
type EventRepository struct {
	mu     sync.RWMutex
	events []*event.Event
}

// NewEventRepository はEventRepositoryを作成する
func NewEventRepository() *EventRepository {
	return &EventRepository{}
}

func (r *EventRepository) Create(_ context.Context, e *event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e.Clone())
	return nil
}

func (r *EventRepository) GetByID(_ context.Context, id string) (*event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(id); i >= 0 {
		return r.events[i].Clone(), nil
	}
	return nil, event.ErrEventNotFound
}

func (r *EventRepository) List(_ context.Context) ([]*event.Event, error) {
	return r.filter(func(*event.Event) bool { return true }), nil
}

func (r *EventRepository) ListByLocation(_ context.Context, location event.Location) ([]*event.Event, error) {
	return r.filter(func(e *event.Event) bool { return e.Location == location }), nil
}

func (r *EventRepository) ListByVenue(_ context.Context, venue event.Venue) ([]*event.Event, error) {
	return r.filter(func(e *event.Event) bool { return e.Venue == venue }), nil
}

// Update は既存の位置のまま置き換える
func (r *EventRepository) Update(_ context.Context, id string, e *event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return event.ErrEventNotFound
	}
	r.events[i] = e.Clone()
	return nil
}

func (r *EventRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return event.ErrEventNotFound
	}
	r.events = append(r.events[:i], r.events[i+1:]...)
	return nil
}

// Ping は常に成功する
func (r *EventRepository) Ping(context.Context) error { return nil }

func (r *EventRepository) indexOf(id string) int {
	for i, e := range r.events {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (r *EventRepository) filter(match func(*event.Event) bool) []*event.Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*event.Event, 0, len(r.events))
	for _, e := range r.events {
		if match(e) {
			result = append(result, e.Clone())
		}
	}
	return result
}

var _ event.Repository = (*EventRepository)(nil)
