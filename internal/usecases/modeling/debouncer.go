package modeling

import (
	"context"
	"sync"
	"time"

	"github.com/vfg2006/business-model-api/internal/domain"
)

type flushFunc func(ctx context.Context, ownerID int, changes []domain.Change) error

// debouncer acumula alterações por usuário e grava tudo numa transação
// depois de interval sem novas edições. A última versão de cada registro vence.
type debouncer struct {
	interval time.Duration
	flush    flushFunc
	onError  func(ownerID int, err error)

	mu      sync.Mutex
	pending map[int]*pendingWrite

	// flushMu mantém as gravações na mesma ordem em que os lotes foram fechados
	flushMu sync.Mutex
}

type pendingWrite struct {
	changes []domain.Change
	timer   *time.Timer
}

func newDebouncer(interval time.Duration, flush flushFunc, onError func(int, error)) *debouncer {
	return &debouncer{
		interval: interval,
		flush:    flush,
		onError:  onError,
		pending:  make(map[int]*pendingWrite),
	}
}

// Enqueue agenda as alterações e reinicia a contagem do usuário
func (d *debouncer) Enqueue(ownerID int, changes []domain.Change) {
	if len(changes) == 0 {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	write, ok := d.pending[ownerID]
	if !ok {
		write = &pendingWrite{}
		d.pending[ownerID] = write
	}

	write.changes = mergeChanges(write.changes, changes)

	if write.timer != nil {
		write.timer.Stop()
	}
	write.timer = time.AfterFunc(d.interval, func() {
		if err := d.FlushOwner(context.Background(), ownerID); err != nil && d.onError != nil {
			d.onError(ownerID, err)
		}
	})
}

// Pending devolve quantas alterações aguardam gravação
func (d *debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	total := 0
	for _, write := range d.pending {
		total += len(write.changes)
	}
	return total
}

// HasPending indica se o usuário tem alterações ainda não gravadas
func (d *debouncer) HasPending(ownerID int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, ok := d.pending[ownerID]
	return ok
}

func (d *debouncer) take(ownerID int) []domain.Change {
	d.mu.Lock()
	defer d.mu.Unlock()

	write, ok := d.pending[ownerID]
	if !ok {
		return nil
	}

	if write.timer != nil {
		write.timer.Stop()
	}
	delete(d.pending, ownerID)

	return write.changes
}

// FlushOwner grava imediatamente o que estiver pendente para o usuário
func (d *debouncer) FlushOwner(ctx context.Context, ownerID int) error {
	d.flushMu.Lock()
	defer d.flushMu.Unlock()

	changes := d.take(ownerID)
	if len(changes) == 0 {
		return nil
	}

	return d.flush(ctx, ownerID, changes)
}

// FlushAll grava as pendências de todos os usuários. Falhas são reportadas por onError
// e a primeira é devolvida.
func (d *debouncer) FlushAll(ctx context.Context) error {
	d.mu.Lock()
	owners := make([]int, 0, len(d.pending))
	for ownerID := range d.pending {
		owners = append(owners, ownerID)
	}
	d.mu.Unlock()

	var firstErr error
	for _, ownerID := range owners {
		if err := d.FlushOwner(ctx, ownerID); err != nil {
			if d.onError != nil {
				d.onError(ownerID, err)
			}
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}
