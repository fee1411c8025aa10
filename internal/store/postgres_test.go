package store

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowlogic-ai/lead-intake/internal/model"
)

func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	return &PostgresStore{pool: mock}, mock
}

func TestPostgres_CreateRun(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO runs`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), "dana@acmefreight.test",
			string(model.RunStatusQueued), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	run, err := s.CreateRun(context.Background(), storeSubmission())
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, model.RunStatusQueued, run.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetRun_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT id, submission, status, result, created_at, updated_at FROM runs WHERE id = \$1`).
		WithArgs("nonexistent-run").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetRun(context.Background(), "nonexistent-run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetRun(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	now := time.Now().UTC()

	rows := pgxmock.NewRows([]string{"id", "submission", "status", "result", "created_at", "updated_at"}).
		AddRow("run-1", []byte(`{"company":"Acme Freight"}`), "complete",
			[]byte(`{"run_id":"run-1","success":true,"ack_sent":true,"sales_sent":true}`), now, now)

	mock.ExpectQuery(`SELECT id, submission, status, result, created_at, updated_at FROM runs WHERE id = \$1`).
		WithArgs("run-1").
		WillReturnRows(rows)

	run, err := s.GetRun(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, "Acme Freight", run.Submission.Company)
	require.NotNil(t, run.Result)
	assert.True(t, run.Result.Success)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_UpdateRunStatus_Missing(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`UPDATE runs SET status`).
		WithArgs(string(model.RunStatusScoring), pgxmock.AnyArg(), "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.UpdateRunStatus(context.Background(), "missing", model.RunStatusScoring)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_RecordStage(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO run_stages`).
		WithArgs(pgxmock.AnyArg(), "run-1", "score", model.StageStatusComplete, "", int64(12), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	stage := &model.StageResult{Name: "score", Status: model.StageStatusComplete, Duration: 12}
	require.NoError(t, s.RecordStage(context.Background(), "run-1", stage))
	assert.Equal(t, "run-1", stage.RunID)
	assert.NotEmpty(t, stage.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ListStages(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	errMsg := "boom"
	rows := pgxmock.NewRows([]string{"id", "run_id", "name", "status", "error", "duration_ms"}).
		AddRow("st-1", "run-1", "score", model.StageStatusComplete, (*string)(nil), int64(3)).
		AddRow("st-2", "run-1", "client", model.StageStatusFailed, &errMsg, int64(420))

	mock.ExpectQuery(`SELECT id, run_id, name, status, error, duration_ms FROM run_stages`).
		WithArgs("run-1").
		WillReturnRows(rows)

	stages, err := s.ListStages(context.Background(), "run-1")
	require.NoError(t, err)
	require.Len(t, stages, 2)
	assert.Equal(t, "", stages[0].Error)
	assert.Equal(t, "boom", stages[1].Error)
	assert.NoError(t, mock.ExpectationsWereMet())
}
