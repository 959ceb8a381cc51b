// @title Event Scheduler API
// @version 1.0
// @description イベントの登録・検索・更新と開催前リマインダーを提供する API
// @host localhost:8080
// @BasePath /api/v1
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sanosuguru/go-event-scheduler/internal/api"
	"github.com/sanosuguru/go-event-scheduler/internal/api/handler"
	"github.com/sanosuguru/go-event-scheduler/internal/application"
	"github.com/sanosuguru/go-event-scheduler/internal/config"
	"github.com/sanosuguru/go-event-scheduler/internal/domain/event"
	"github.com/sanosuguru/go-event-scheduler/internal/infrastructure/email"
	"github.com/sanosuguru/go-event-scheduler/internal/infrastructure/kafka"
	"github.com/sanosuguru/go-event-scheduler/internal/infrastructure/memory"
	"github.com/sanosuguru/go-event-scheduler/internal/infrastructure/postgres"
	redisinfra "github.com/sanosuguru/go-event-scheduler/internal/infrastructure/redis"
	"github.com/sanosuguru/go-event-scheduler/internal/pkg/clock"
	"github.com/sanosuguru/go-event-scheduler/internal/pkg/logger"
	"github.com/sanosuguru/go-event-scheduler/internal/pkg/metrics"
	"github.com/sanosuguru/go-event-scheduler/internal/reminder"
	"github.com/sanosuguru/go-event-scheduler/internal/worker"
)

const (
	kafkaPartitions        = 3
	kafkaReplicationFactor = 1
	startupTimeout         = 15 * time.Second
)

// storage はリポジトリと疎通確認先
type storage interface {
	event.Repository
	handler.Pinger
}

func main() {
	if err := run(); err != nil {
		logger.Error("起動に失敗しました", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	log := logger.Init(cfg.App.Env)
	defer func() { _ = logger.Sync() }()

	m := metrics.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	startCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	store, closeStore, err := openStorage(startCtx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	repo := event.NewNotifyingRepository(store, func(obs event.Observer, change event.Change, err error) {
		m.ObserverFailuresTotal.WithLabelValues(string(change.Action)).Inc()
		log.Error("オブザーバーへの通知に失敗しました",
			zap.String("observer", fmt.Sprintf("%T", obs)),
			zap.String("action", string(change.Action)),
			logger.EventID(change.EventID),
			zap.Error(err),
		)
	})

	if err := repo.AddObserver(startCtx, application.NewMutationCounter(m)); err != nil {
		return fmt.Errorf("メトリクスの購読に失敗しました: %w", err)
	}

	// リマインダー
	var claimer reminder.Claimer
	if cfg.Redis.Enabled {
		rc := redisinfra.NewClient(&cfg.Redis)
		defer closeRedis(rc)
		if err := redisinfra.Ping(startCtx, rc); err != nil {
			return err
		}
		claimer = redisinfra.NewReminderClaimer(rc, cfg.Redis.ClaimTTL)
		log.Info("Redis に接続しました", zap.String("addr", cfg.Redis.Addr()))
	}

	reminders := reminder.NewService(
		clock.NewSystem(),
		cfg.Reminder.LeadTime,
		claimer,
		m,
		reminder.NewLogNotifier(log),
		email.NewReminderNotifier(cfg.Mailer),
	)
	if err := repo.AddObserver(startCtx, reminders); err != nil {
		return fmt.Errorf("リマインダーの購読に失敗しました: %w", err)
	}

	// 変更フィード
	if cfg.Kafka.Enabled() {
		client, err := kafka.NewClient(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return err
		}
		defer client.Close()
		if err := kafka.EnsureTopic(startCtx, client, cfg.Kafka.Topic, kafkaPartitions, kafkaReplicationFactor); err != nil {
			return err
		}
		if err := repo.AddObserver(startCtx, kafka.NewChangePublisher(client, cfg.Kafka.Topic)); err != nil {
			return fmt.Errorf("変更フィードの購読に失敗しました: %w", err)
		}
		log.Info("変更フィードを有効化しました", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	e := api.NewServer(api.Handlers{
		Event:  handler.NewEventHandler(application.NewEventService(repo)),
		Health: handler.NewHealthHandler(store),
	}, m, cfg.Metrics)
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	scanner := worker.NewReminderScanner(reminders, cfg.Reminder.ScanInterval)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("サーバーを起動します", zap.String("port", cfg.Server.Port), zap.String("storage", cfg.Storage.Driver))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("サーバー起動エラー: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		scanner.Start(gctx)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("サーバーをシャットダウンしています...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("サーバーシャットダウンエラー: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("サーバーが正常にシャットダウンしました")
	return nil
}

// openStorage は設定に応じたリポジトリを開く
func openStorage(ctx context.Context, cfg *config.Config) (storage, func(), error) {
	switch cfg.Storage.Driver {
	case "memory":
		logger.Warn("インメモリストレージを使用します。再起動でデータは失われます")
		return memory.NewEventRepository(), func() {}, nil
	case "postgres":
		db, err := postgres.NewConnection(&cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.Ping(ctx, db); err != nil {
			closeDB(db)
			return nil, nil, fmt.Errorf("データベース疎通確認に失敗しました: %w", err)
		}
		if err := postgres.RunMigrations(db.DB); err != nil {
			closeDB(db)
			return nil, nil, err
		}
		return postgres.NewEventRepository(db), func() { closeDB(db) }, nil
	default:
		return nil, nil, fmt.Errorf("未知のストレージです: %q", cfg.Storage.Driver)
	}
}

func closeDB(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		logger.Warn("データベース切断に失敗しました", zap.Error(err))
	}
}

func closeRedis(rc *goredis.Client) {
	if err := rc.Close(); err != nil {
		logger.Warn("Redis切断に失敗しました", zap.Error(err))
	}
}
