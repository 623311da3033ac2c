package repositories

import (
	"context"
	"testing"

	"ledger/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBackend(t *testing.T) {
	for _, name := range []string{"postgres", "mongo", "cached", "memory"} {
		b, err := ParseBackend(name)
		require.NoError(t, err)
		assert.Equal(t, Backend(name), b)
	}

	_, err := ParseBackend("sqlite")
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestOpen_Memory(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, config.Config{Backend: "memory"}, discardLogger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(ctx) })

	assert.Equal(t, BackendMemory, db.Backend)
	assert.NoError(t, db.Ping(ctx))

	for id, limit := range map[uint32]uint32{1: 100000, 2: 80000, 3: 1000000, 4: 10000000, 5: 500000} {
		stmt, err := db.GetStatement(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, limit, stmt.Balance.Limit)
		assert.Equal(t, int32(0), stmt.Balance.Total)
	}

	balance, err := db.AddTransaction(ctx, 1, withdraw(100000))
	require.NoError(t, err)
	assert.Equal(t, int32(-100000), balance.Total)

	_, err = db.GetStatement(ctx, 6)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), config.Config{Backend: "cassandra"}, nil)
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestDatabase_Close(t *testing.T) {
	var order []int
	d := NewDatabase(BackendMemory, NewMemoryRepository())
	d.closers = append(d.closers,
		func(context.Context) error { order = append(order, 1); return nil },
		func(context.Context) error { order = append(order, 2); return assert.AnError },
	)

	err := d.Close(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, []int{2, 1}, order)
}
