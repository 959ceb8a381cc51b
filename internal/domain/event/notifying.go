package event

import (
	"context"
	"fmt"
	"sync"
)

// ObserverErrorHandler はオブザーバーへの通知失敗を受け取る
type ObserverErrorHandler func(observer Observer, change Change, err error)

// NotifyingRepository は Repository をラップし、変更をオブザーバーへ通知する
//
// 変更操作と購読登録は同じミューテックスで直列化されるため、スナップショットより先に
// 差分が届くことはない。オブザーバーは通知の中で変更操作を呼び出してはならない。
// 通知は登録順に同期的に行われ、あるオブザーバーの失敗は後続の配信と呼び出し元に影響しない。
type NotifyingRepository struct {
	repo Repository

	mu        sync.Mutex
	observers []Observer
	onError   ObserverErrorHandler
}

// NewNotifyingRepository は NotifyingRepository を作成する
func NewNotifyingRepository(repo Repository, onError ObserverErrorHandler) *NotifyingRepository {
	return &NotifyingRepository{repo: repo, onError: onError}
}

// AddObserver はオブザーバーを登録し、現在の全状態をスナップショットとして渡す
// 登録済みの場合は何もしない
func (r *NotifyingRepository) AddObserver(ctx context.Context, obs Observer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(obs) >= 0 {
		return nil
	}

	events, err := r.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("スナップショットの取得に失敗しました: %w", err)
	}
	records := make([]Record, len(events))
	for i, e := range events {
		records[i] = e.Serialize()
	}
	if err := obs.Snapshot(ctx, records); err != nil {
		return fmt.Errorf("スナップショットの配信に失敗しました: %w", err)
	}

	r.observers = append(r.observers, obs)
	return nil
}

// RemoveObserver はオブザーバーの登録を解除する。未登録の場合は何もしない
func (r *NotifyingRepository) RemoveObserver(obs Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.indexOf(obs); i >= 0 {
		r.observers = append(r.observers[:i:i], r.observers[i+1:]...)
	}
}

// Observers は登録中のオブザーバー数を返す
func (r *NotifyingRepository) Observers() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.observers)
}

func (r *NotifyingRepository) indexOf(obs Observer) int {
	for i, o := range r.observers {
		if o == obs {
			return i
		}
	}
	return -1
}

// Create はイベントを保存し CREATE を通知する
func (r *NotifyingRepository) Create(ctx context.Context, e *Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.repo.Create(ctx, e); err != nil {
		return err
	}
	rec := e.Serialize()
	r.notify(ctx, Change{Action: ActionCreate, EventID: e.ID, Record: &rec})
	return nil
}

// Update はイベントを置き換え UPDATE を通知する
func (r *NotifyingRepository) Update(ctx context.Context, id string, e *Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.repo.Update(ctx, id, e); err != nil {
		return err
	}
	rec := e.Serialize()
	r.notify(ctx, Change{Action: ActionUpdate, EventID: e.ID, PrevID: id, Record: &rec})
	return nil
}

// Delete はイベントを削除し DELETE を通知する
func (r *NotifyingRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.repo.Delete(ctx, id); err != nil {
		return err
	}
	r.notify(ctx, Change{Action: ActionDelete, EventID: id})
	return nil
}

func (r *NotifyingRepository) GetByID(ctx context.Context, id string) (*Event, error) {
	return r.repo.GetByID(ctx, id)
}

func (r *NotifyingRepository) List(ctx context.Context) ([]*Event, error) {
	return r.repo.List(ctx)
}

func (r *NotifyingRepository) ListByLocation(ctx context.Context, location Location) ([]*Event, error) {
	return r.repo.ListByLocation(ctx, location)
}

func (r *NotifyingRepository) ListByVenue(ctx context.Context, venue Venue) ([]*Event, error) {
	return r.repo.ListByVenue(ctx, venue)
}

func (r *NotifyingRepository) notify(ctx context.Context, change Change) {
	for _, obs := range r.observers {
		if err := r.deliver(ctx, obs, change); err != nil && r.onError != nil {
			r.onError(obs, change, err)
		}
	}
}

// deliver は1件配信する。パニックはエラーに変換する
func (r *NotifyingRepository) deliver(ctx context.Context, obs Observer, change Change) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("オブザーバーがパニックしました: %v", p)
		}
	}()
	return obs.Notify(ctx, change)
}

// インターフェースを満たしているか確認
var _ Repository = (*NotifyingRepository)(nil)
