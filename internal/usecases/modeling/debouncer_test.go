package modeling

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/business-model-api/internal/domain"
)

type recordedFlush struct {
	ownerID int
	changes []domain.Change
}

type flushRecorder struct {
	mu      sync.Mutex
	flushes []recordedFlush
	err     error
}

func (r *flushRecorder) flush(_ context.Context, ownerID int, changes []domain.Change) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.flushes = append(r.flushes, recordedFlush{ownerID: ownerID, changes: changes})
	return r.err
}

func (r *flushRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.flushes)
}

func TestDebouncer_CoalescesEdits(t *testing.T) {
	recorder := &flushRecorder{}
	d := newDebouncer(20*time.Millisecond, recorder.flush, nil)

	d.Enqueue(1, []domain.Change{domain.UpsertChange(domain.COGS{ID: "c1", MonthlyCost: 1})})
	d.Enqueue(1, []domain.Change{domain.UpsertChange(domain.COGS{ID: "c2", MonthlyCost: 2})})
	d.Enqueue(1, []domain.Change{domain.UpsertChange(domain.COGS{ID: "c1", MonthlyCost: 3})})

	assert.Equal(t, 2, d.Pending())
	assert.True(t, d.HasPending(1))

	require.Eventually(t, func() bool { return recorder.count() == 1 }, time.Second, 5*time.Millisecond)

	recorder.mu.Lock()
	flushed := recorder.flushes[0]
	recorder.mu.Unlock()

	assert.Equal(t, 1, flushed.ownerID)
	require.Len(t, flushed.changes, 2)
	assert.Equal(t, 3.0, flushed.changes[0].Record.(domain.COGS).MonthlyCost)
	assert.False(t, d.HasPending(1))
}

func TestDebouncer_FlushOwner(t *testing.T) {
	recorder := &flushRecorder{}
	d := newDebouncer(time.Hour, recorder.flush, nil)

	d.Enqueue(1, []domain.Change{domain.DeleteChange(domain.KindCOGS, "c1")})
	d.Enqueue(2, []domain.Change{domain.DeleteChange(domain.KindCOGS, "c2")})

	require.NoError(t, d.FlushOwner(context.Background(), 1))
	assert.Equal(t, 1, recorder.count())
	assert.False(t, d.HasPending(1))
	assert.True(t, d.HasPending(2))

	// Sem pendências não há gravação
	require.NoError(t, d.FlushOwner(context.Background(), 1))
	assert.Equal(t, 1, recorder.count())
}

func TestDebouncer_FlushAllReportsErrors(t *testing.T) {
	recorder := &flushRecorder{err: errors.New("conexão perdida")}

	var mu sync.Mutex
	failed := map[int]bool{}
	d := newDebouncer(time.Hour, recorder.flush, func(ownerID int, err error) {
		mu.Lock()
		defer mu.Unlock()
		failed[ownerID] = true
	})

	d.Enqueue(1, []domain.Change{domain.DeleteChange(domain.KindCOGS, "c1")})
	d.Enqueue(2, []domain.Change{domain.DeleteChange(domain.KindCOGS, "c2")})

	err := d.FlushAll(context.Background())
	assert.EqualError(t, err, "conexão perdida")
	assert.Equal(t, 2, recorder.count())
	assert.Equal(t, map[int]bool{1: true, 2: true}, failed)
	assert.Zero(t, d.Pending())
}

func TestDebouncer_IgnoresEmptyChanges(t *testing.T) {
	recorder := &flushRecorder{}
	d := newDebouncer(time.Millisecond, recorder.flush, nil)

	d.Enqueue(1, nil)

	assert.False(t, d.HasPending(1))
	assert.NoError(t, d.FlushAll(context.Background()))
	assert.Zero(t, recorder.count())
}
