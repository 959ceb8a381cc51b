package event

import (
	"fmt"
	"time"
)

// TimestampLayout は外部表現で使う固定幅の日時フォーマット（月/日/年, 時:分:秒）
const TimestampLayout = "01/02/2006, 15:04:05"

// Record はイベントをシリアライズした外部表現
type Record struct {
	EventID      string `json:"event_id"`
	EventTime    string `json:"event_time"`
	Title        string `json:"title"`
	Location     string `json:"location"`
	Venue        string `json:"venue"`
	Participants int64  `json:"number_of_participants"`
	CreationTime string `json:"creation_time"`
	ModifyTime   string `json:"modify_time"`
}

// Serialize はイベントを外部表現に変換する
func (e *Event) Serialize() Record {
	return Record{
		EventID:      e.ID,
		EventTime:    FormatTimestamp(e.EventTime.Time()),
		Title:        e.Title.String(),
		Location:     e.Location.String(),
		Venue:        e.Venue.String(),
		Participants: e.Participants.Int64(),
		CreationTime: FormatTimestamp(e.CreatedAt),
		ModifyTime:   FormatTimestamp(e.ModifiedAt),
	}
}

// FormatTimestamp は日時を固定フォーマット（UTC）の文字列にする
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp は固定フォーマットの文字列を UTC の日時として読む
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.ParseInLocation(TimestampLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
	}
	return t, nil
}

// FromRecord は外部表現からイベントを復元する
func FromRecord(r Record) (*Event, error) {
	eventTime, err := ParseTimestamp(r.EventTime)
	if err != nil {
		return nil, err
	}
	createdAt, err := ParseTimestamp(r.CreationTime)
	if err != nil {
		return nil, err
	}
	modifiedAt, err := ParseTimestamp(r.ModifyTime)
	if err != nil {
		return nil, err
	}
	return Restore(r.EventID, eventTime, r.Title, r.Location, r.Venue, r.Participants, createdAt, modifiedAt)
}
