package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/sanosuguru/go-event-scheduler/internal/domain/event"
)

var tracer = otel.Tracer("github.com/sanosuguru/go-event-scheduler/internal/application")

// ErrInvalidSortKey は未知の並び替えキー
var ErrInvalidSortKey = errors.New("並び替えキーが不正です")

// SortKey は一覧の並び替えキー。どのキーも降順
type SortKey string

const (
	SortNone           SortKey = ""
	SortByEventTime    SortKey = "event_time"
	SortByParticipants SortKey = "participants"
	SortByCreationTime SortKey = "creation_time"
)

// ParseSortKey はクエリの値を SortKey に変換する
func ParseSortKey(s string) (SortKey, error) {
	switch s {
	case "":
		return SortNone, nil
	case "event_time", "date":
		return SortByEventTime, nil
	case "participants", "number_of_participants":
		return SortByParticipants, nil
	case "creation_time":
		return SortByCreationTime, nil
	default:
		return SortNone, fmt.Errorf("%w: %q", ErrInvalidSortKey, s)
	}
}

type EventService struct {
	eventRepo event.Repository
}

func NewEventService(eventRepo event.Repository) *EventService {
	return &EventService{eventRepo: eventRepo}
}

type CreateEventInput struct {
	Title        string
	Location     string
	Venue        string
	Participants int64
	EventTime    time.Time
}

func (s *EventService) CreateEvent(ctx context.Context, input CreateEventInput) (e *event.Event, err error) {
	ctx, span := tracer.Start(ctx, "EventService.CreateEvent")
	defer func() { endSpan(span, err) }()

	eventTime, err := event.NewEventTime(input.EventTime)
	if err != nil {
		return nil, fmt.Errorf("バリデーションエラー: %w", err)
	}
	participants, err := event.NewParticipants(input.Participants)
	if err != nil {
		return nil, fmt.Errorf("バリデーションエラー: %w", err)
	}

	e = event.Create(eventTime, event.NewTitle(input.Title), event.NewLocation(input.Location), event.NewVenue(input.Venue), participants)
	span.SetAttributes(attribute.String("event.id", e.ID))

	if err := s.eventRepo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("イベント作成に失敗しました: %w", err)
	}
	return e, nil
}

func (s *EventService) GetEvent(ctx context.Context, id string) (e *event.Event, err error) {
	ctx, span := tracer.Start(ctx, "EventService.GetEvent", trace.WithAttributes(attribute.String("event.id", id)))
	defer func() { endSpan(span, err) }()

	return s.eventRepo.GetByID(ctx, id)
}

func (s *EventService) ListEvents(ctx context.Context, sortKey SortKey) (events []*event.Event, err error) {
	ctx, span := tracer.Start(ctx, "EventService.ListEvents", trace.WithAttributes(attribute.String("sort_key", string(sortKey))))
	defer func() { endSpan(span, err) }()

	events, err = s.eventRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	sortEvents(events, sortKey)
	return events, nil
}

func (s *EventService) ListEventsByLocation(ctx context.Context, location string, sortKey SortKey) (events []*event.Event, err error) {
	ctx, span := tracer.Start(ctx, "EventService.ListEventsByLocation", trace.WithAttributes(
		attribute.String("event.location", location),
		attribute.String("sort_key", string(sortKey)),
	))
	defer func() { endSpan(span, err) }()

	events, err = s.eventRepo.ListByLocation(ctx, event.NewLocation(location))
	if err != nil {
		return nil, err
	}
	sortEvents(events, sortKey)
	return events, nil
}

func (s *EventService) ListEventsByVenue(ctx context.Context, venue string, sortKey SortKey) (events []*event.Event, err error) {
	ctx, span := tracer.Start(ctx, "EventService.ListEventsByVenue", trace.WithAttributes(
		attribute.String("event.venue", venue),
		attribute.String("sort_key", string(sortKey)),
	))
	defer func() { endSpan(span, err) }()

	events, err = s.eventRepo.ListByVenue(ctx, event.NewVenue(venue))
	if err != nil {
		return nil, err
	}
	sortEvents(events, sortKey)
	return events, nil
}

// UpdateEventInput は部分更新の入力。nil の項目は変更しない
type UpdateEventInput struct {
	ID           string
	Title        *string
	Location     *string
	Venue        *string
	Participants *int64
	EventTime    *time.Time
}

func (s *EventService) UpdateEvent(ctx context.Context, input UpdateEventInput) (e *event.Event, err error) {
	ctx, span := tracer.Start(ctx, "EventService.UpdateEvent", trace.WithAttributes(attribute.String("event.id", input.ID)))
	defer func() { endSpan(span, err) }()

	e, err = s.eventRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	// 全項目を検証してから変更する
	var (
		eventTime    event.EventTime
		participants event.Participants
	)
	if input.EventTime != nil {
		if eventTime, err = event.NewEventTime(*input.EventTime); err != nil {
			return nil, fmt.Errorf("バリデーションエラー: %w", err)
		}
	}
	if input.Participants != nil {
		if participants, err = event.NewParticipants(*input.Participants); err != nil {
			return nil, fmt.Errorf("バリデーションエラー: %w", err)
		}
	}

	if input.EventTime != nil {
		e.UpdateTime(eventTime)
	}
	if input.Title != nil {
		e.UpdateTitle(event.NewTitle(*input.Title))
	}
	if input.Venue != nil {
		e.UpdateVenue(event.NewVenue(*input.Venue))
	}
	if input.Location != nil {
		e.UpdateLocation(event.NewLocation(*input.Location))
	}
	if input.Participants != nil {
		e.UpdateParticipants(participants)
	}

	if err := s.eventRepo.Update(ctx, input.ID, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, id string) (err error) {
	ctx, span := tracer.Start(ctx, "EventService.DeleteEvent", trace.WithAttributes(attribute.String("event.id", id)))
	defer func() { endSpan(span, err) }()

	return s.eventRepo.Delete(ctx, id)
}

// sortEvents はキーの降順に並べる。同値は元の順序を保つ
func sortEvents(events []*event.Event, key SortKey) {
	var less func(a, b *event.Event) bool
	switch key {
	case SortByEventTime:
		less = func(a, b *event.Event) bool { return a.EventTime.Time().After(b.EventTime.Time()) }
	case SortByParticipants:
		less = func(a, b *event.Event) bool { return a.Participants.Int64() > b.Participants.Int64() }
	case SortByCreationTime:
		less = func(a, b *event.Event) bool { return a.CreatedAt.After(b.CreatedAt) }
	default:
		return
	}
	sort.SliceStable(events, func(i, j int) bool { return less(events[i], events[j]) })
}

// endSpan はエラーを記録してスパンを閉じる。未検出は正常系として扱う
func endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, event.ErrEventNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
