package event

import (
	"time"

	"github.com/google/uuid"
)

// Event はイベントエンティティを表す
type Event struct {
	ID           string
	EventTime    EventTime
	Title        Title
	Location     Location
	Venue        Venue
	Participants Participants
	CreatedAt    time.Time
	ModifiedAt   time.Time
}

// Create は新しいイベントを作成する（IDを採番し、作成時刻=更新時刻とする）
func Create(eventTime EventTime, title Title, location Location, venue Venue, participants Participants) *Event {
	now := time.Now().UTC()
	return &Event{
		ID:           uuid.New().String(),
		EventTime:    eventTime,
		Title:        title,
		Location:     location,
		Venue:        venue,
		Participants: participants,
		CreatedAt:    now,
		ModifiedAt:   now,
	}
}

// Restore は永続化済みの値からイベントを復元する
// 過去のイベントも読み出せるよう、開催時刻の未来チェックは行わない
func Restore(id string, eventTime time.Time, title, location, venue string, participants int64, createdAt, modifiedAt time.Time) (*Event, error) {
	if id == "" {
		return nil, ErrEventIDRequired
	}
	p, err := NewParticipants(participants)
	if err != nil {
		return nil, err
	}
	return &Event{
		ID:           id,
		EventTime:    EventTime{value: eventTime.UTC()},
		Title:        NewTitle(title),
		Location:     NewLocation(location),
		Venue:        NewVenue(venue),
		Participants: p,
		CreatedAt:    createdAt.UTC(),
		ModifiedAt:   modifiedAt.UTC(),
	}, nil
}

// UpdateTime は開催時刻を更新する
func (e *Event) UpdateTime(t EventTime) {
	e.EventTime = t
	e.touch()
}

// UpdateTitle はタイトルを更新する
func (e *Event) UpdateTitle(t Title) {
	e.Title = t
	e.touch()
}

// UpdateLocation は開催地を更新する
func (e *Event) UpdateLocation(l Location) {
	e.Location = l
	e.touch()
}

// UpdateVenue は会場を更新する
func (e *Event) UpdateVenue(v Venue) {
	e.Venue = v
	e.touch()
}

// UpdateParticipants は参加人数を更新する
func (e *Event) UpdateParticipants(p Participants) {
	e.Participants = p
	e.touch()
}

// touch は更新時刻を進める。時計の分解能で同値になる場合も必ず前回より後にする
func (e *Event) touch() {
	now := time.Now().UTC()
	if !now.After(e.ModifiedAt) {
		now = e.ModifiedAt.Add(time.Nanosecond)
	}
	e.ModifiedAt = now
}

// Clone はイベントのコピーを返す
func (e *Event) Clone() *Event {
	c := *e
	return &c
}
