package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-event-scheduler/internal/domain/event"
)

var eventColumns = []string{
	"event_id", "event_time", "title", "location", "venue",
	"number_of_participants", "creation_time", "modify_time",
}

func newMockRepo(t *testing.T) (*EventRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewEventRepository(sqlx.NewDb(db, "postgres")), mock
}

func testEvent(t *testing.T) *event.Event {
	t.Helper()
	ts := time.Date(2030, 5, 6, 7, 8, 9, 0, time.UTC)
	e, err := event.Restore("ev-1", ts, "Yuv1", "Ramat Hasharon", "Mi Casa", 10, ts.AddDate(-1, 0, 0), ts.AddDate(-1, 0, 0))
	require.NoError(t, err)
	return e
}

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	e := testEvent(t)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO events`).
					WithArgs("ev-1", "05/06/2030, 07:08:09", "yuv1", "ramat hasharon", "mi casa", int64(10),
						"05/06/2029, 07:08:09", "05/06/2029, 07:08:09").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO events`).WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			tt.mock(mock)

			err := repo.Create(ctx, e)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, sql.ErrConnDone)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM events WHERE event_id = \$1`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows(eventColumns).AddRow(
						"ev-1", "05/06/2030, 07:08:09", "yuv1", "ramat hasharon", "mi casa", int64(10),
						"05/06/2029, 07:08:09", "05/06/2029, 07:08:10"))
			},
		},
		{
			name: "not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM events WHERE event_id = \$1`).
					WithArgs("ev-1").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: event.ErrEventNotFound,
		},
		{
			name: "corrupt timestamp",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM events WHERE event_id = \$1`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows(eventColumns).AddRow(
						"ev-1", "2030-05-06", "yuv1", "ramat hasharon", "mi casa", int64(10),
						"05/06/2029, 07:08:09", "05/06/2029, 07:08:10"))
			},
			wantErr: event.ErrInvalidTimestamp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			tt.mock(mock)

			got, err := repo.GetByID(ctx, "ev-1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "ev-1", got.ID)
			assert.Equal(t, "yuv1", got.Title.String())
			assert.Equal(t, int64(10), got.Participants.Int64())
			assert.Equal(t, time.Date(2030, 5, 6, 7, 8, 9, 0, time.UTC), got.EventTime.Time())
			assert.True(t, got.ModifiedAt.After(got.CreatedAt))
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_Lists(t *testing.T) {
	ctx := context.Background()
	rows := func() *sqlmock.Rows {
		return sqlmock.NewRows(eventColumns).
			AddRow("ev-1", "05/06/2030, 07:08:09", "a", "tel aviv", "barby", int64(1), "01/01/2029, 00:00:00", "01/01/2029, 00:00:00").
			AddRow("ev-2", "05/07/2030, 07:08:09", "b", "tel aviv", "zappa", int64(2), "01/02/2029, 00:00:00", "01/02/2029, 00:00:00")
	}

	t.Run("List", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(`FROM events ORDER BY seq`).WillReturnRows(rows())

		got, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "ev-1", got[0].ID)
		assert.Equal(t, "ev-2", got[1].ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ListByLocation", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(`WHERE location = \$1 ORDER BY seq`).
			WithArgs("tel aviv").
			WillReturnRows(rows())

		got, err := repo.ListByLocation(ctx, event.NewLocation("Tel Aviv"))
		require.NoError(t, err)
		assert.Len(t, got, 2)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ListByVenue", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(`WHERE venue = \$1 ORDER BY seq`).
			WithArgs("barby").
			WillReturnRows(sqlmock.NewRows(eventColumns))

		got, err := repo.ListByVenue(ctx, event.NewVenue("BARBY"))
		require.NoError(t, err)
		assert.Empty(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(`FROM events ORDER BY seq`).WillReturnError(sql.ErrConnDone)

		_, err := repo.List(ctx)
		assert.ErrorIs(t, err, sql.ErrConnDone)
	})
}

func TestEventRepository_Update(t *testing.T) {
	ctx := context.Background()
	e := testEvent(t)

	tests := []struct {
		name    string
		result  sql.Result
		wantErr error
	}{
		{name: "updated", result: sqlmock.NewResult(0, 1)},
		{name: "not found", result: sqlmock.NewResult(0, 0), wantErr: event.ErrEventNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			mock.ExpectExec(`UPDATE events`).
				WithArgs("ev-1", "05/06/2030, 07:08:09", "yuv1", "ramat hasharon", "mi casa", int64(10),
					"05/06/2029, 07:08:09", "05/06/2029, 07:08:09", "old-id").
				WillReturnResult(tt.result)

			err := repo.Update(ctx, "old-id", e)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "deleted",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM events WHERE event_id = \$1`).
					WithArgs("ev-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM events WHERE event_id = \$1`).
					WithArgs("ev-1").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: event.ErrEventNotFound,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM events`).WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			tt.mock(mock)

			err := repo.Delete(ctx, "ev-1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
