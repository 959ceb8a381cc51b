package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/sanosuguru/go-event-scheduler/internal/domain/event"
)

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	args := m.Called(ctx, rs)
	return args.Get(0).(kgo.ProduceResults)
}

func TestChangePublisher_Notify(t *testing.T) {
	ctx := context.Background()
	rec := &event.Record{EventID: "ev-1", Title: "yuv1", Participants: 10}

	t.Run("作成はイベント付きで送信される", func(t *testing.T) {
		producer := new(MockProducer)
		var sent *kgo.Record
		producer.On("ProduceSync", ctx, mock.Anything).
			Run(func(args mock.Arguments) {
				sent = args.Get(1).([]*kgo.Record)[0]
			}).
			Return(kgo.ProduceResults{{}})

		p := NewChangePublisher(producer, "event-changes")
		err := p.Notify(ctx, event.Change{Action: event.ActionCreate, EventID: "ev-1", Record: rec})
		require.NoError(t, err)

		require.NotNil(t, sent)
		assert.Equal(t, "event-changes", sent.Topic)
		assert.Equal(t, []byte("ev-1"), sent.Key)

		var msg ChangeMessage
		require.NoError(t, json.Unmarshal(sent.Value, &msg))
		assert.Equal(t, event.ActionCreate, msg.Action)
		assert.Equal(t, "ev-1", msg.EventID)
		require.NotNil(t, msg.Event)
		assert.Equal(t, "yuv1", msg.Event.Title)
		producer.AssertExpectations(t)
	})

	t.Run("削除はイベントを含まない", func(t *testing.T) {
		producer := new(MockProducer)
		var sent *kgo.Record
		producer.On("ProduceSync", ctx, mock.Anything).
			Run(func(args mock.Arguments) {
				sent = args.Get(1).([]*kgo.Record)[0]
			}).
			Return(kgo.ProduceResults{{}})

		p := NewChangePublisher(producer, "event-changes")
		require.NoError(t, p.Notify(ctx, event.Change{Action: event.ActionDelete, EventID: "ev-1"}))

		assert.JSONEq(t, `{"action":"DELETE","event_id":"ev-1"}`, string(sent.Value))
	})

	t.Run("IDが変わる更新は旧IDを含む", func(t *testing.T) {
		producer := new(MockProducer)
		var sent *kgo.Record
		producer.On("ProduceSync", ctx, mock.Anything).
			Run(func(args mock.Arguments) {
				sent = args.Get(1).([]*kgo.Record)[0]
			}).
			Return(kgo.ProduceResults{{}})

		p := NewChangePublisher(producer, "event-changes")
		require.NoError(t, p.Notify(ctx, event.Change{Action: event.ActionUpdate, EventID: "ev-1", PrevID: "ev-0", Record: rec}))

		var msg ChangeMessage
		require.NoError(t, json.Unmarshal(sent.Value, &msg))
		assert.Equal(t, "ev-1", msg.EventID)
		assert.Equal(t, "ev-0", msg.PrevEventID)
		assert.Equal(t, []byte("ev-1"), sent.Key)
	})

	t.Run("IDが同じ更新は旧IDを含まない", func(t *testing.T) {
		producer := new(MockProducer)
		var sent *kgo.Record
		producer.On("ProduceSync", ctx, mock.Anything).
			Run(func(args mock.Arguments) {
				sent = args.Get(1).([]*kgo.Record)[0]
			}).
			Return(kgo.ProduceResults{{}})

		p := NewChangePublisher(producer, "event-changes")
		require.NoError(t, p.Notify(ctx, event.Change{Action: event.ActionUpdate, EventID: "ev-1", PrevID: "ev-1", Record: rec}))

		assert.NotContains(t, string(sent.Value), "prev_event_id")
	})

	t.Run("送信エラーを返す", func(t *testing.T) {
		producer := new(MockProducer)
		brokerErr := errors.New("broker unavailable")
		producer.On("ProduceSync", ctx, mock.Anything).
			Return(kgo.ProduceResults{{Err: brokerErr}})

		p := NewChangePublisher(producer, "event-changes")
		err := p.Notify(ctx, event.Change{Action: event.ActionUpdate, EventID: "ev-1", Record: rec})

		assert.ErrorIs(t, err, brokerErr)
	})
}

func TestChangePublisher_SnapshotIsNoop(t *testing.T) {
	producer := new(MockProducer)
	p := NewChangePublisher(producer, "event-changes")

	err := p.Snapshot(context.Background(), []event.Record{{EventID: "ev-1"}})

	require.NoError(t, err)
	producer.AssertNotCalled(t, "ProduceSync", mock.Anything, mock.Anything)
}
