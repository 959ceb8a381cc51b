package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-event-scheduler/internal/pkg/logger"
)

// Scanner はリマインダー対象を走査するインターフェース
type Scanner interface {
	Scan(ctx context.Context) (int, error)
}

// ReminderScanner は一定間隔でリマインダーを走査するワーカー
type ReminderScanner struct {
	scanner  Scanner
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

// NewReminderScanner は新しいワーカーを作成
func NewReminderScanner(s Scanner, interval time.Duration) *ReminderScanner {
	return &ReminderScanner{
		scanner:  s,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start はワーカーを開始し、停止するまでブロックする
// 起動直後に1回走査する
func (w *ReminderScanner) Start(ctx context.Context) {
	logger.Info("リマインダー走査開始", zap.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	defer close(w.doneCh)

	w.scan(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.Info("リマインダー走査停止（コンテキストキャンセル）")
			return
		case <-w.stopCh:
			logger.Info("リマインダー走査停止（停止要求）")
			return
		case <-ticker.C:
			w.scan(ctx)
		}
	}
}

// Stop はワーカーを停止し、終了を待つ。複数回呼んでもよい
func (w *ReminderScanner) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	<-w.doneCh
}

// scan はリマインダーを1回走査する。エラーはログに残して継続する
func (w *ReminderScanner) scan(ctx context.Context) {
	log := logger.Get()
	log.Debug("リマインダー走査")

	count, err := w.scanner.Scan(ctx)
	if err != nil {
		log.Error("リマインダー走査失敗", zap.Error(err))
		return
	}

	if count > 0 {
		log.Info("リマインダーを送信", zap.Int("count", count))
	}
}
