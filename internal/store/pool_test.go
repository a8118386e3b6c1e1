package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/onboard-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockPool(t *testing.T, maxConns int) (*Pool, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, log := logger.NewTestLogger(t)
	return NewPool(db, PoolOptions{MaxConns: maxConns}, log), mock
}

func TestNewPool_PanicsOnNilDB(t *testing.T) {
	assert.Panics(t, func() {
		NewPool(nil, PoolOptions{}, nil)
	})
}

func TestPool_AcquireRelease(t *testing.T) {
	pool, _ := newMockPool(t, 2)

	conn, err := pool.Acquire(context.Background())
	require.NoError(t, err)
	require.NotNil(t, conn)
	assert.Equal(t, 1, pool.Stats().InUse)

	pool.Release(conn)
	assert.Equal(t, 0, pool.Stats().InUse)
	assert.Equal(t, 2, pool.MaxConns())
}

func TestPool_ReleaseTwiceIsNoop(t *testing.T) {
	pool, _ := newMockPool(t, 1)

	conn, err := pool.Acquire(context.Background())
	require.NoError(t, err)

	pool.Release(conn)
	assert.NotPanics(t, func() { pool.Release(conn) })
	assert.NotPanics(t, func() { pool.Release(nil) })
	assert.Equal(t, 0, pool.Stats().InUse)

	again, err := pool.Acquire(context.Background())
	require.NoError(t, err, "pool slot should be free after release")
	pool.Release(again)
}

func TestPool_AcquireBlocksAtMaxConns(t *testing.T) {
	pool, _ := newMockPool(t, 1)

	held, err := pool.Acquire(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = pool.Acquire(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConnection)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	acquired := make(chan *Conn, 1)
	go func() {
		c, err := pool.Acquire(context.Background())
		if err == nil {
			acquired <- c
		}
	}()

	select {
	case <-acquired:
		t.Fatal("acquire should block while the only connection is held")
	case <-time.After(20 * time.Millisecond):
	}

	pool.Release(held)

	select {
	case c := <-acquired:
		pool.Release(c)
	case <-time.After(time.Second):
		t.Fatal("blocked acquire should proceed after release")
	}
}

func TestPool_ConcurrentAcquireNeverExceedsMax(t *testing.T) {
	const maxConns = 3
	pool, _ := newMockPool(t, maxConns)

	var inUse, peak atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conn, err := pool.Acquire(context.Background())
			if !assert.NoError(t, err) {
				return
			}
			n := inUse.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			inUse.Add(-1)
			pool.Release(conn)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, peak.Load(), int32(maxConns))
	assert.Equal(t, 0, pool.Stats().InUse)
}

func TestPool_Ping(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	pool := NewPool(db, PoolOptions{MaxConns: 1}, nil)

	mock.ExpectPing()
	assert.NoError(t, pool.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	err = pool.Ping(context.Background())
	assert.ErrorIs(t, err, ErrConnection)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPool_Close(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	closed := false
	pool := NewPool(db, PoolOptions{OnClose: func() { closed = true }}, nil)

	mock.ExpectClose()
	require.NoError(t, pool.Close())
	assert.True(t, closed, "OnClose hook should run")
	assert.NoError(t, mock.ExpectationsWereMet())

	_, err = pool.Acquire(context.Background())
	assert.ErrorIs(t, err, ErrConnection, "acquire after close should fail")
}
