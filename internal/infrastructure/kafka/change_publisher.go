package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/sanosuguru/go-event-scheduler/internal/domain/event"
)

// Producer は kgo.Client のうち送信に使う部分
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// ChangeMessage はトピックに送る変更メッセージ
type ChangeMessage struct {
	Action      event.Action  `json:"action"`
	EventID     string        `json:"event_id"`
	PrevEventID string        `json:"prev_event_id,omitempty"`
	Event       *event.Record `json:"event,omitempty"`
}

// ChangePublisher はリポジトリの変更を Kafka トピックへ送るオブザーバー
// キーはイベントIDなので、同じイベントの変更は同じパーティションに順に並ぶ
type ChangePublisher struct {
	producer Producer
	topic    string
}

// NewChangePublisher は ChangePublisher を作成する
func NewChangePublisher(producer Producer, topic string) *ChangePublisher {
	return &ChangePublisher{producer: producer, topic: topic}
}

// NewClient は変更フィード用の Kafka クライアントを作成する
func NewClient(brokers []string, topic string) (*kgo.Client, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, fmt.Errorf("Kafkaクライアント作成に失敗しました: %w", err)
	}
	return client, nil
}

// EnsureTopic はトピックがなければ作成する
func EnsureTopic(ctx context.Context, client *kgo.Client, topic string, partitions int32, replicationFactor int16) error {
	adm := kadm.NewClient(client)
	resp, err := adm.CreateTopic(ctx, partitions, replicationFactor, nil, topic)
	if err != nil {
		return fmt.Errorf("トピック作成に失敗しました: %w", err)
	}
	if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("トピック作成に失敗しました: %w", resp.Err)
	}
	return nil
}

// Snapshot は何もしない。フィードには購読開始後の変更だけを流す
func (p *ChangePublisher) Snapshot(context.Context, []event.Record) error {
	return nil
}

// Notify は変更を1件送信する
func (p *ChangePublisher) Notify(ctx context.Context, change event.Change) error {
	msg := ChangeMessage{
		Action:  change.Action,
		EventID: change.EventID,
		Event:   change.Record,
	}
	if change.Action == event.ActionUpdate && change.ReplacedID() != change.EventID {
		msg.PrevEventID = change.ReplacedID()
	}
	value, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("変更メッセージのエンコードに失敗しました: %w", err)
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(change.EventID),
		Value: value,
	}
	if err := p.producer.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("変更メッセージの送信に失敗しました: %w", err)
	}
	return nil
}

var _ event.Observer = (*ChangePublisher)(nil)
