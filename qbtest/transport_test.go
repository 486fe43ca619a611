package qbtest_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qbsql "github.com/Exotik850/quick-oxibooks-sql"
	"github.com/Exotik850/quick-oxibooks-sql/qbo"
	"github.com/Exotik850/quick-oxibooks-sql/qbtest"
)

// TestTransport covers result serving and call recording.
func TestTransport(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("zero value serves no rows", func(t *testing.T) {
		t.Parallel()

		var fake qbtest.Transport
		rows, err := fake.Execute(ctx, "select * from Customer", "Customer")
		require.NoError(t, err)
		assert.Empty(t, rows)
		assert.Equal(t, 1, fake.CallCount())
	})

	t.Run("preloaded results", func(t *testing.T) {
		t.Parallel()

		fake := qbtest.New(
			qbtest.WithResults("Customer",
				map[string]any{"Id": "1", "DisplayName": "Acme"},
				map[string]any{"Id": "2", "DisplayName": "Globex"},
			),
		)
		rows, err := fake.Execute(ctx, "select * from Customer", "Customer")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "Acme", rows[0]["DisplayName"])

		rows, err = fake.Execute(ctx, "select * from Invoice", "Invoice")
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("error injection", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("rate limited")
		fake := qbtest.New(qbtest.WithError("Invoice", boom))

		_, err := fake.Execute(ctx, "select * from Invoice", "Invoice")
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, fake.CallCount(), "failed calls are still recorded")

		fake.SetError("Invoice", nil)
		_, err = fake.Execute(ctx, "select * from Invoice", "Invoice")
		assert.NoError(t, err)
	})

	t.Run("records calls in order with unique ids", func(t *testing.T) {
		t.Parallel()

		fake := qbtest.New()
		_, err := fake.Execute(ctx, "q1", "Customer")
		require.NoError(t, err)
		_, err = fake.Execute(ctx, "q2", "Invoice")
		require.NoError(t, err)

		calls := fake.Calls()
		require.Len(t, calls, 2)
		assert.Equal(t, "q1", calls[0].Query)
		assert.Equal(t, "Customer", calls[0].Entity)
		assert.Equal(t, "q2", calls[1].Query)
		assert.NotEqual(t, uuid.Nil, calls[0].RequestID)
		assert.NotEqual(t, calls[0].RequestID, calls[1].RequestID)

		last, ok := fake.LastCall()
		require.True(t, ok)
		assert.Equal(t, "q2", last.Query)
	})

	t.Run("reset keeps configuration", func(t *testing.T) {
		t.Parallel()

		fake := qbtest.New(qbtest.WithResults("Customer", map[string]any{"Id": "1"}))
		_, err := fake.Execute(ctx, "q", "Customer")
		require.NoError(t, err)

		fake.Reset()
		assert.Zero(t, fake.CallCount())
		_, ok := fake.LastCall()
		assert.False(t, ok)

		rows, err := fake.Execute(ctx, "q", "Customer")
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("honors context cancellation", func(t *testing.T) {
		t.Parallel()

		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		fake := qbtest.New()
		_, err := fake.Execute(cancelled, "q", "Customer")
		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, fake.CallCount())
	})
}

// TestTransportWithQuery drives the fake through Query.Execute.
func TestTransportWithQuery(t *testing.T) {
	t.Parallel()

	query, err := qbsql.Compile(
		`select display_name from Customer where balance > 500`,
		qbsql.WithSchema(qbo.Schemas()),
	)
	require.NoError(t, err)

	fake := qbtest.New(qbtest.WithResults("Customer", map[string]any{"DisplayName": "Acme"}))
	rows, err := query.Execute(context.Background(), fake)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	last, ok := fake.LastCall()
	require.True(t, ok)
	assert.Equal(t, `select DisplayName from Customer where Balance > '500'`, last.Query)
	assert.Equal(t, "Customer", last.Entity)
}
