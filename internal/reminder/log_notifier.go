package reminder

import (
	"context"

	"go.uber.org/zap"
)

// LogNotifier はリマインダーをログに出力する
type LogNotifier struct {
	log *zap.Logger
}

// NewLogNotifier は LogNotifier を作成する
func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) SendReminder(_ context.Context, r Reminder) error {
	n.log.Info("まもなく開催されます",
		zap.String("event_id", r.Event.EventID),
		zap.String("title", r.Event.Title),
		zap.String("location", r.Event.Location),
		zap.String("venue", r.Event.Venue),
		zap.String("event_time", r.Event.EventTime),
		zap.Int64("participants", r.Event.Participants),
		zap.Duration("remaining", r.Remaining),
	)
	return nil
}
