package application

import (
	"context"

	"github.com/sanosuguru/go-event-scheduler/internal/domain/event"
	"github.com/sanosuguru/go-event-scheduler/internal/pkg/metrics"
)

// MutationCounter は確定した変更をアクション別に数えるオブザーバー
type MutationCounter struct {
	metrics *metrics.Metrics
}

func NewMutationCounter(m *metrics.Metrics) *MutationCounter {
	return &MutationCounter{metrics: m}
}

func (c *MutationCounter) Snapshot(context.Context, []event.Record) error {
	return nil
}

func (c *MutationCounter) Notify(_ context.Context, change event.Change) error {
	c.metrics.EventMutationsTotal.WithLabelValues(string(change.Action)).Inc()
	return nil
}

var _ event.Observer = (*MutationCounter)(nil)
