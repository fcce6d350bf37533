// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/critique/internal/platform/postgres"
)

func TestWithTx(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name   string
		setup  func(mock pgxmock.PgxPoolIface)
		fn     func(tx pgx.Tx) error
		expect error
	}{
		{
			name: "commit",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectExec(`DELETE FROM blog.comment`).WillReturnResult(pgxmock.NewResult("DELETE", 1))
				mock.ExpectCommit()
			},
			fn: func(tx pgx.Tx) error {
				_, err := tx.Exec(context.Background(), `DELETE FROM blog.comment`)
				return err
			},
		},
		{
			name: "rollback_on_error",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectRollback()
			},
			fn:     func(pgx.Tx) error { return boom },
			expect: boom,
		},
		{
			name: "begin_fails",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin().WillReturnError(boom)
			},
			fn:     func(pgx.Tx) error { t.Fatal("fn must not run"); return nil },
			expect: boom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setup(mock)
			err = postgres.WithTx(context.Background(), mock, tt.fn)
			if tt.expect != nil {
				assert.ErrorIs(t, err, tt.expect)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectPing()
	assert.NoError(t, postgres.Ping(context.Background(), mock))

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	err = postgres.Ping(context.Background(), mock)
	assert.ErrorContains(t, err, "postgres: ping failed")
}
