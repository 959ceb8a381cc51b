package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-event-scheduler/internal/domain/event"
	"github.com/sanosuguru/go-event-scheduler/internal/pkg/clock"
	"github.com/sanosuguru/go-event-scheduler/internal/pkg/logger"
	"github.com/sanosuguru/go-event-scheduler/internal/pkg/metrics"
)

// DefaultLeadTime は開催の何分前からリマインドするか
const DefaultLeadTime = 30 * time.Minute

// Reminder は送信するリマインダーの内容
type Reminder struct {
	Event     event.Record
	EventTime time.Time
	// Remaining は走査時点から開催までの時間
	Remaining time.Duration
}

// Notifier はリマインダーを送信する
type Notifier interface {
	SendReminder(ctx context.Context, r Reminder) error
}

// Claimer は複数レプリカ間でリマインダーの送信者を1台に決める
type Claimer interface {
	Claim(ctx context.Context, eventID string, eventTime time.Time) (bool, error)
	Release(ctx context.Context, eventID string, eventTime time.Time) error
}

type entry struct {
	record    event.Record
	eventTime time.Time
	seen      bool
}

// Service はリポジトリの変更を購読してイベントのミラーを保持し、
// リマインダー期間に入ったイベントを通知する
type Service struct {
	mu      sync.Mutex
	entries []*entry

	clock     clock.Clock
	leadTime  time.Duration
	claimer   Claimer
	metrics   *metrics.Metrics
	notifiers []Notifier
}

// NewService は Service を作成する。claimer と m は nil でもよい
func NewService(clk clock.Clock, leadTime time.Duration, claimer Claimer, m *metrics.Metrics, notifiers ...Notifier) *Service {
	if leadTime <= 0 {
		leadTime = DefaultLeadTime
	}
	return &Service{
		clock:     clk,
		leadTime:  leadTime,
		claimer:   claimer,
		metrics:   m,
		notifiers: notifiers,
	}
}

// Snapshot はミラーを全状態で置き換える。全件未通知として扱う
func (s *Service) Snapshot(_ context.Context, records []event.Record) error {
	entries := make([]*entry, 0, len(records))
	for _, rec := range records {
		e, err := newEntry(rec)
		if err != nil {
			return err
		}
		entries = append(entries, e)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = entries
	s.observeSize()
	return nil
}

// Notify は変更を1件ミラーへ反映する
func (s *Service) Notify(_ context.Context, change event.Change) error {
	switch change.Action {
	case event.ActionCreate:
		if change.Record == nil {
			return fmt.Errorf("CREATE 通知にイベントがありません: %s", change.EventID)
		}
		e, err := newEntry(*change.Record)
		if err != nil {
			return err
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		s.entries = append(s.entries, e)

	case event.ActionUpdate:
		if change.Record == nil {
			return fmt.Errorf("UPDATE 通知にイベントがありません: %s", change.EventID)
		}
		e, err := newEntry(*change.Record)
		if err != nil {
			return err
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		// IDが変わる更新では古いIDのエントリを置き換える
		if i := s.indexOf(change.ReplacedID()); i >= 0 {
			prev := s.entries[i]
			// 開催時刻が変わらなければ通知済みの状態を引き継ぐ
			e.seen = prev.seen && prev.eventTime.Equal(e.eventTime)
			s.removeAt(i)
		}
		s.entries = append(s.entries, e)

	case event.ActionDelete:
		s.mu.Lock()
		defer s.mu.Unlock()
		if i := s.indexOf(change.EventID); i >= 0 {
			s.removeAt(i)
		}

	default:
		return fmt.Errorf("未知の変更種別です: %s", change.Action)
	}

	s.observeSize()
	return nil
}

// Scan はリマインダー期間（開催時刻 - リード時間 < 現在 < 開催時刻）に入った
// 未通知のイベントを通知済みにしてリマインダーを送り、送った件数を返す
func (s *Service) Scan(ctx context.Context) (int, error) {
	start := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.ReminderScanDuration.Observe(time.Since(start).Seconds())
		}
	}()

	now := s.clock.Now()
	due := s.collectDue(now)

	sent := 0
	for _, r := range due {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		if s.remind(ctx, r) {
			sent++
		}
	}
	return sent, nil
}

// Tracked はミラー内のイベント数を返す
func (s *Service) Tracked() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// collectDue はロック内で対象を通知済みにし、送信内容を取り出す
func (s *Service) collectDue(now time.Time) []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []Reminder
	for _, e := range s.entries {
		if e.seen {
			continue
		}
		if e.eventTime.Add(-s.leadTime).Before(now) && now.Before(e.eventTime) {
			e.seen = true
			due = append(due, Reminder{
				Event:     e.record,
				EventTime: e.eventTime,
				Remaining: e.eventTime.Sub(now),
			})
		}
	}
	return due
}

// remind は1件送信する。他のレプリカが送信済みなら送らない
func (s *Service) remind(ctx context.Context, r Reminder) bool {
	log := logger.With(logger.Component("reminder"), logger.EventID(r.Event.EventID))

	if s.claimer != nil {
		ok, err := s.claimer.Claim(ctx, r.Event.EventID, r.EventTime)
		if err != nil {
			// 確保できない場合も送信を優先する
			log.Warn("リマインダーの確保に失敗しました", zap.Error(err))
		} else if !ok {
			log.Debug("他のレプリカが送信済みです")
			s.count("skipped")
			return false
		}
	}

	failed := 0
	for _, n := range s.notifiers {
		if err := n.SendReminder(ctx, r); err != nil {
			failed++
			log.Error("リマインダー送信に失敗しました", zap.Error(err))
		}
	}

	if len(s.notifiers) > 0 && failed == len(s.notifiers) {
		s.count("failed")
		if s.claimer != nil {
			if err := s.claimer.Release(ctx, r.Event.EventID, r.EventTime); err != nil {
				log.Warn("リマインダーの解放に失敗しました", zap.Error(err))
			}
		}
		return false
	}

	s.count("sent")
	log.Info("リマインダーを送信しました",
		zap.Time("event_time", r.EventTime),
		zap.Duration("remaining", r.Remaining),
	)
	return true
}

func (s *Service) count(status string) {
	if s.metrics != nil {
		s.metrics.RemindersTotal.WithLabelValues(status).Inc()
	}
}

func (s *Service) observeSize() {
	if s.metrics != nil {
		s.metrics.ReminderMirrorSize.Set(float64(len(s.entries)))
	}
}

func (s *Service) indexOf(id string) int {
	for i, e := range s.entries {
		if e.record.EventID == id {
			return i
		}
	}
	return -1
}

func (s *Service) removeAt(i int) {
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
}

func newEntry(rec event.Record) (*entry, error) {
	t, err := event.ParseTimestamp(rec.EventTime)
	if err != nil {
		return nil, fmt.Errorf("イベント %s の開催時刻を読めません: %w", rec.EventID, err)
	}
	return &entry{record: rec, eventTime: t}, nil
}

var _ event.Observer = (*Service)(nil)
