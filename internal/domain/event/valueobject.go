package event

import (
	"strings"
	"time"
)

// Title はイベントのタイトル（小文字に正規化）
type Title struct{ value string }

// NewTitle はタイトルを作成する
func NewTitle(s string) Title { return Title{value: strings.ToLower(s)} }

func (t Title) String() string { return t.value }

// Location はイベントの開催地（小文字に正規化）
type Location struct{ value string }

// NewLocation は開催地を作成する
func NewLocation(s string) Location { return Location{value: strings.ToLower(s)} }

func (l Location) String() string { return l.value }

// Venue はイベントの会場（小文字に正規化）
type Venue struct{ value string }

// NewVenue は会場を作成する
func NewVenue(s string) Venue { return Venue{value: strings.ToLower(s)} }

func (v Venue) String() string { return v.value }

// Participants は参加人数
// 上限 10^200 は int64 の範囲を超えるため、int64 の最大値が実質的な上限となる
type Participants struct{ value int64 }

// NewParticipants は参加人数を作成する
func NewParticipants(n int64) (Participants, error) {
	if n < 0 {
		return Participants{}, ErrInvalidParticipants
	}
	return Participants{value: n}, nil
}

func (p Participants) Int64() int64 { return p.value }

// EventTime はイベントの開催時刻
type EventTime struct{ value time.Time }

// NewEventTime は開催時刻を作成する。現在時刻より後でなければならない
func NewEventTime(t time.Time) (EventTime, error) {
	if !t.After(time.Now()) {
		return EventTime{}, ErrEventTimeNotInFuture
	}
	return EventTime{value: t.UTC()}, nil
}

func (t EventTime) Time() time.Time { return t.value }

func (t EventTime) Equal(other EventTime) bool { return t.value.Equal(other.value) }
