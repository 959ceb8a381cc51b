package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript は所有者確認と削除をアトミックに行う
const releaseScript = `
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	else
		return 0
	end
`

// ReminderClaimer は複数レプリカのうち1台だけがリマインダーを送るよう、
// イベントと開催時刻の組ごとに Redis のキーを確保する
type ReminderClaimer struct {
	client *redis.Client
	owner  string
	ttl    time.Duration
}

// NewReminderClaimer は ReminderClaimer を作成する
// ttl は確保したキーの有効期限で、リマインダー期間より長くする
func NewReminderClaimer(client *redis.Client, ttl time.Duration) *ReminderClaimer {
	return &ReminderClaimer{
		client: client,
		owner:  uuid.New().String(),
		ttl:    ttl,
	}
}

// Claim はキーを確保する。他のレプリカが確保済みなら false を返す
// 開催時刻が変わると別のキーになるため、時刻変更後は再度送信できる
func (c *ReminderClaimer) Claim(ctx context.Context, eventID string, eventTime time.Time) (bool, error) {
	ok, err := c.client.SetNX(ctx, ClaimKey(eventID, eventTime), c.owner, c.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("リマインダーの確保に失敗: %w", err)
	}
	return ok, nil
}

// Release は自分が確保したキーを解放する。他者のキーには触れない
func (c *ReminderClaimer) Release(ctx context.Context, eventID string, eventTime time.Time) error {
	_, err := c.client.Eval(ctx, releaseScript, []string{ClaimKey(eventID, eventTime)}, c.owner).Int()
	if err != nil {
		return fmt.Errorf("リマインダーの解放に失敗: %w", err)
	}
	return nil
}

// ClaimKey はリマインダー確保用のキーを返す
func ClaimKey(eventID string, eventTime time.Time) string {
	return fmt.Sprintf("reminder:%s:%d", eventID, eventTime.Unix())
}
