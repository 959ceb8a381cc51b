package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-event-scheduler/internal/domain/event"
)

const selectEvents = `
	SELECT event_id, event_time, title, location, venue, number_of_participants, creation_time, modify_time
	FROM events`

// eventRow はDBの行を表す構造体
// 日時は固定フォーマットの文字列で保存する
type eventRow struct {
	EventID      string `db:"event_id"`
	EventTime    string `db:"event_time"`
	Title        string `db:"title"`
	Location     string `db:"location"`
	Venue        string `db:"venue"`
	Participants int64  `db:"number_of_participants"`
	CreationTime string `db:"creation_time"`
	ModifyTime   string `db:"modify_time"`
}

func newEventRow(e *event.Event) eventRow {
	rec := e.Serialize()
	return eventRow{
		EventID:      rec.EventID,
		EventTime:    rec.EventTime,
		Title:        rec.Title,
		Location:     rec.Location,
		Venue:        rec.Venue,
		Participants: rec.Participants,
		CreationTime: rec.CreationTime,
		ModifyTime:   rec.ModifyTime,
	}
}

// toEntity はeventRowをEventエンティティに変換する
func (r *eventRow) toEntity() (*event.Event, error) {
	e, err := event.FromRecord(event.Record{
		EventID:      r.EventID,
		EventTime:    r.EventTime,
		Title:        r.Title,
		Location:     r.Location,
		Venue:        r.Venue,
		Participants: r.Participants,
		CreationTime: r.CreationTime,
		ModifyTime:   r.ModifyTime,
	})
	if err != nil {
		return nil, fmt.Errorf("イベント %s の復元に失敗しました: %w", r.EventID, err)
	}
	return e, nil
}

// EventRepository はイベントリポジトリのPostgreSQL実装
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository はEventRepositoryを作成する
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create は新しいイベントを作成する
func (r *EventRepository) Create(ctx context.Context, e *event.Event) error {
	query := `
		INSERT INTO events (event_id, event_time, title, location, venue, number_of_participants, creation_time, modify_time)
		VALUES (:event_id, :event_time, :title, :location, :venue, :number_of_participants, :creation_time, :modify_time)
	`
	if _, err := r.db.NamedExecContext(ctx, query, newEventRow(e)); err != nil {
		return fmt.Errorf("イベント作成に失敗しました: %w", err)
	}
	return nil
}

// GetByID はIDからイベントを取得する
func (r *EventRepository) GetByID(ctx context.Context, id string) (*event.Event, error) {
	var row eventRow
	err := r.db.GetContext(ctx, &row, selectEvents+` WHERE event_id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, event.ErrEventNotFound
		}
		return nil, fmt.Errorf("イベント取得に失敗しました: %w", err)
	}
	return row.toEntity()
}

// List は全イベントを登録順に取得する
func (r *EventRepository) List(ctx context.Context) ([]*event.Event, error) {
	return r.queryEvents(ctx, selectEvents+` ORDER BY seq`)
}

// ListByLocation は開催地が一致するイベントを取得する
func (r *EventRepository) ListByLocation(ctx context.Context, location event.Location) ([]*event.Event, error) {
	return r.queryEvents(ctx, selectEvents+` WHERE location = $1 ORDER BY seq`, location.String())
}

// ListByVenue は会場が一致するイベントを取得する
func (r *EventRepository) ListByVenue(ctx context.Context, venue event.Venue) ([]*event.Event, error) {
	return r.queryEvents(ctx, selectEvents+` WHERE venue = $1 ORDER BY seq`, venue.String())
}

// Update はIDの行を置き換える。登録順（seq）は維持される
func (r *EventRepository) Update(ctx context.Context, id string, e *event.Event) error {
	query := `
		UPDATE events
		SET event_id = $1, event_time = $2, title = $3, location = $4, venue = $5,
		    number_of_participants = $6, creation_time = $7, modify_time = $8
		WHERE event_id = $9
	`
	row := newEventRow(e)
	result, err := r.db.ExecContext(ctx, query,
		row.EventID, row.EventTime, row.Title, row.Location, row.Venue,
		row.Participants, row.CreationTime, row.ModifyTime, id,
	)
	if err != nil {
		return fmt.Errorf("イベント更新に失敗しました: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("更新結果の確認に失敗しました: %w", err)
	}
	if rowsAffected == 0 {
		return event.ErrEventNotFound
	}
	return nil
}

// Delete はイベントを削除する
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE event_id = $1`, id)
	if err != nil {
		return fmt.Errorf("イベント削除に失敗しました: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("削除結果の確認に失敗しました: %w", err)
	}
	if rowsAffected == 0 {
		return event.ErrEventNotFound
	}
	return nil
}

// Ping はデータベース接続を確認する
func (r *EventRepository) Ping(ctx context.Context) error {
	return Ping(ctx, r.db)
}

func (r *EventRepository) queryEvents(ctx context.Context, query string, args ...any) ([]*event.Event, error) {
	var rows []eventRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("イベント一覧取得に失敗しました: %w", err)
	}

	events := make([]*event.Event, 0, len(rows))
	for i := range rows {
		e, err := rows[i].toEntity()
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

// インターフェースを満たしているか確認
var _ event.Repository = (*EventRepository)(nil)
