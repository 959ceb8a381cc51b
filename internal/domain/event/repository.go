package event

import "context"

// Repository はイベントリポジトリのインターフェース
type Repository interface {
	// Create は新しいイベントを保存する
	Create(ctx context.Context, event *Event) error

	// GetByID はIDからイベントを取得する
	GetByID(ctx context.Context, id string) (*Event, error)

	// List は全イベントを登録順に取得する
	List(ctx context.Context) ([]*Event, error)

	// ListByLocation は開催地が一致するイベントを取得する
	ListByLocation(ctx context.Context, location Location) ([]*Event, error)

	// ListByVenue は会場が一致するイベントを取得する
	ListByVenue(ctx context.Context, venue Venue) ([]*Event, error)

	// Update はIDのイベントを新しいイベントで置き換える
	Update(ctx context.Context, id string, event *Event) error

	// Delete はイベントを削除する
	Delete(ctx context.Context, id string) error
}

// Action はリポジトリで発生した変更の種類
type Action string

const (
	ActionCreate Action = "CREATE"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
)

// Change はオブザーバーへ通知される変更内容
// DELETE の場合 Record は nil
type Change struct {
	Action  Action
	EventID string
	// PrevID は UPDATE で置き換えられたイベントのID。IDが変わらなければ EventID と同じ
	PrevID  string
	Record  *Record
}

// ReplacedID は変更前のイベントIDを返す
func (c Change) ReplacedID() string {
	if c.PrevID != "" {
		return c.PrevID
	}
	return c.EventID
}

// Observer はリポジトリの変更を購読する
type Observer interface {
	// Snapshot は購読開始時に現在の全状態を受け取る
	Snapshot(ctx context.Context, records []Record) error

	// Notify は変更を1件受け取る
	Notify(ctx context.Context, change Change) error
}
