package handler

import (
	"context"

	"github.com/sanosuguru/go-event-scheduler/internal/application"
	"github.com/sanosuguru/go-event-scheduler/internal/domain/event"
)

// EventServiceInterface はイベントサービスのインターフェース
type EventServiceInterface interface {
	CreateEvent(ctx context.Context, input application.CreateEventInput) (*event.Event, error)
	GetEvent(ctx context.Context, id string) (*event.Event, error)
	ListEvents(ctx context.Context, sortKey application.SortKey) ([]*event.Event, error)
	ListEventsByLocation(ctx context.Context, location string, sortKey application.SortKey) ([]*event.Event, error)
	ListEventsByVenue(ctx context.Context, venue string, sortKey application.SortKey) ([]*event.Event, error)
	UpdateEvent(ctx context.Context, input application.UpdateEventInput) (*event.Event, error)
	DeleteEvent(ctx context.Context, id string) error
}

// Pinger はストレージの疎通確認
type Pinger interface {
	Ping(ctx context.Context) error
}
