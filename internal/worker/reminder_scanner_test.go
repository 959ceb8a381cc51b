package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockScanner はScannerのモック
type MockScanner struct {
	mock.Mock
}

func (m *MockScanner) Scan(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func TestNewReminderScanner(t *testing.T) {
	mockScanner := new(MockScanner)

	w := NewReminderScanner(mockScanner, time.Minute)

	assert.NotNil(t, w)
	assert.Equal(t, time.Minute, w.interval)
	assert.NotNil(t, w.stopCh)
	assert.NotNil(t, w.doneCh)

	select {
	case <-w.stopCh:
		t.Fatal("stopCh should not be closed initially")
	default:
	}
}

func TestReminderScanner_Scan(t *testing.T) {
	tests := []struct {
		name  string
		count int
		err   error
	}{
		{name: "リマインダーを送信した", count: 3},
		{name: "対象なし", count: 0},
		{name: "エラーが発生しても継続する", err: assert.AnError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockScanner := new(MockScanner)
			mockScanner.On("Scan", mock.Anything).Return(tt.count, tt.err)

			w := NewReminderScanner(mockScanner, time.Minute)
			assert.NotPanics(t, func() { w.scan(context.Background()) })

			mockScanner.AssertExpectations(t)
		})
	}
}

func TestReminderScanner_StartStop(t *testing.T) {
	t.Run("起動直後と一定間隔で走査し、Stopで停止する", func(t *testing.T) {
		var calls atomic.Int32
		mockScanner := new(MockScanner)
		mockScanner.On("Scan", mock.Anything).
			Run(func(mock.Arguments) { calls.Add(1) }).
			Return(0, nil)

		w := NewReminderScanner(mockScanner, 20*time.Millisecond)

		go w.Start(context.Background())

		assert.Eventually(t, func() bool {
			return calls.Load() >= 2
		}, time.Second, 5*time.Millisecond)

		w.Stop()
		// 2回目のStopもブロックしない
		w.Stop()

		select {
		case <-w.doneCh:
		case <-time.After(time.Second):
			t.Error("scanner did not stop in time")
		}
	})

	t.Run("コンテキストキャンセルで停止する", func(t *testing.T) {
		mockScanner := new(MockScanner)
		mockScanner.On("Scan", mock.Anything).Return(0, nil).Maybe()

		w := NewReminderScanner(mockScanner, 50*time.Millisecond)

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan struct{})
		go func() {
			w.Start(ctx)
			close(done)
		}()

		time.Sleep(80 * time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Error("scanner did not stop after context cancel")
		}

		// 停止後のStopは即座に戻る
		w.Stop()
	})
}
