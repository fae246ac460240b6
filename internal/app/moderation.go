package app

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"

	"smarthotel/internal/domain"
)

// ModerationList is the admin approval queue for one status filter. Approve and
// reject remove the item locally on success instead of re-fetching; the record
// reappears under its new status on the next load of that filter.
type ModerationList struct {
	backend domain.Backend

	mu       sync.Mutex
	status   domain.HotelStatus
	items    []domain.HotelRecord
	inflight map[string]struct{}
	loadGen  uint64
}

func NewModerationList(b domain.Backend) *ModerationList {
	return &ModerationList{
		backend:  b,
		status:   domain.StatusPending,
		inflight: map[string]struct{}{},
	}
}

func (m *ModerationList) Status() domain.HotelStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

func (m *ModerationList) Items() []domain.HotelRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.HotelRecord, len(m.items))
	copy(out, m.items)
	return out
}

// InFlight reports whether an action for this item is outstanding; only that
// row's controls are disabled, the rest stay interactive.
func (m *ModerationList) InFlight(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.inflight[id]
	return ok
}

// Load fetches the collection for a status filter. A newer Load supersedes an
// in-flight one; the superseded response is discarded.
func (m *ModerationList) Load(ctx context.Context, status domain.HotelStatus) error {
	if _, ok := domain.ParseHotelStatus(string(status)); !ok {
		return fmt.Errorf("unknown status filter %q", status)
	}
	m.mu.Lock()
	m.loadGen++
	gen := m.loadGen
	m.status = status
	m.mu.Unlock()

	items, err := m.backend.AdminHotels(ctx, status)

	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.loadGen {
		return domain.ErrStale
	}
	if err != nil {
		return fmt.Errorf("load %s hotels: %w", status, err)
	}
	m.items = items
	return nil
}

func (m *ModerationList) Approve(ctx context.Context, id string) error {
	return m.act(ctx, id, domain.StatusApproved)
}

func (m *ModerationList) Reject(ctx context.Context, id string) error {
	return m.act(ctx, id, domain.StatusRejected)
}

// MarkPending sends a record back to the review queue.
func (m *ModerationList) MarkPending(ctx context.Context, id string) error {
	return m.act(ctx, id, domain.StatusPending)
}

func (m *ModerationList) act(ctx context.Context, id string, to domain.HotelStatus) error {
	m.mu.Lock()
	if _, busy := m.inflight[id]; busy {
		m.mu.Unlock()
		return domain.ErrRequestInFlight
	}
	m.inflight[id] = struct{}{}
	m.mu.Unlock()

	err := m.backend.SetHotelStatus(ctx, id, to)

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.inflight, id) // cleared regardless of outcome
	if err != nil {
		return fmt.Errorf("set hotel %s to %s: %w", id, to, err)
	}
	if to != m.status {
		m.removeLocked(id)
	}
	return nil
}

// Delete removes a hotel record outright.
func (m *ModerationList) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	if _, busy := m.inflight[id]; busy {
		m.mu.Unlock()
		return domain.ErrRequestInFlight
	}
	m.inflight[id] = struct{}{}
	m.mu.Unlock()

	err := m.backend.DeleteHotel(ctx, id)

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.inflight, id)
	if err != nil {
		return fmt.Errorf("delete hotel %s: %w", id, err)
	}
	m.removeLocked(id)
	return nil
}

func (m *ModerationList) removeLocked(id string) {
	for i, h := range m.items {
		if h.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return
		}
	}
}

// ApproveAll runs one action per id with bounded concurrency; per-item failures
// are collected, not fatal to the batch.
func (m *ModerationList) ApproveAll(ctx context.Context, ids []string, workers int) []error {
	if workers <= 0 {
		workers = 4
	}
	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup
	var emu sync.Mutex
	var errs []error

	for _, id := range ids {
		if err := sem.Acquire(ctx, 1); err != nil {
			emu.Lock()
			errs = append(errs, err)
			emu.Unlock()
			break
		}
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			defer sem.Release(1)
			if err := m.Approve(ctx, id); err != nil {
				emu.Lock()
				errs = append(errs, fmt.Errorf("hotel %s: %w", id, err))
				emu.Unlock()
			}
		}(id)
	}
	wg.Wait()
	return errs
}
