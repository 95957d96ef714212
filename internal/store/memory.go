package store

import (
	"context"
	"sync"
	"time"

	"github.com/gramshield/dashboard/internal/entity"
)

// Per-operation delays applied when latency simulation is on. They model
// the round trip to a real backend for UI testing and have no effect on
// results.
const (
	delayGetAll  = 300 * time.Millisecond
	delayGetByID = 200 * time.Millisecond
	delayCreate  = 400 * time.Millisecond
	delayUpdate  = 350 * time.Millisecond
	delayDelete  = 250 * time.Millisecond
)

// MemoryOptions configures the in-memory mock backend.
type MemoryOptions struct {
	// SimulateLatency delays every operation by a fixed per-operation
	// amount before it completes.
	SimulateLatency bool
	// Now supplies creation timestamps; defaults to time.Now.
	Now func() time.Time
}

func (o MemoryOptions) clock() func() time.Time {
	if o.Now != nil {
		return o.Now
	}
	return time.Now
}

// collection is the generic in-memory record table shared by the four
// adapters. It owns its slice exclusively; every read hands out copies.
type collection[T any] struct {
	name     string
	mu       sync.Mutex
	recs     []T
	recID    func(T) int
	defaults func(fields map[string]any, now time.Time)
	now      func() time.Time
	simulate bool
}

func (c *collection[T]) wait(ctx context.Context, d time.Duration) error {
	if !c.simulate {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *collection[T]) getAll(ctx context.Context) ([]T, error) {
	if err := c.wait(ctx, delayGetAll); err != nil {
		return nil, &FetchError{Entity: c.name, Err: err}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.recs...), nil
}

func (c *collection[T]) getByID(ctx context.Context, id int) (T, error) {
	var zero T
	if err := c.wait(ctx, delayGetByID); err != nil {
		return zero, &FetchError{Entity: c.name, Err: err}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(id)
	if i < 0 {
		return zero, &NotFoundError{Entity: c.name, ID: id}
	}
	return c.recs[i], nil
}

func (c *collection[T]) create(ctx context.Context, fields map[string]any) (T, error) {
	var zero T
	if err := c.wait(ctx, delayCreate); err != nil {
		return zero, &CreateError{Entity: c.name, Err: err}
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	local := stripID(fields)
	if c.defaults != nil {
		c.defaults(local, c.now())
	}
	local["Id"] = c.nextID()

	rec, err := decodeRecord[T](local)
	if err != nil {
		return zero, &CreateError{Entity: c.name, Err: err}
	}
	c.recs = append(c.recs, rec)
	return rec, nil
}

func (c *collection[T]) update(ctx context.Context, id int, fields map[string]any) (T, error) {
	var zero T
	if err := c.wait(ctx, delayUpdate); err != nil {
		return zero, &UpdateError{Entity: c.name, ID: id, Err: err}
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(id)
	if i < 0 {
		return zero, &NotFoundError{Entity: c.name, ID: id}
	}

	local, err := encodeRecord(c.recs[i])
	if err != nil {
		return zero, &UpdateError{Entity: c.name, ID: id, Err: err}
	}
	for k, v := range stripID(fields) {
		local[k] = v
	}
	rec, err := decodeRecord[T](local)
	if err != nil {
		return zero, &UpdateError{Entity: c.name, ID: id, Err: err}
	}
	c.recs[i] = rec
	return rec, nil
}

func (c *collection[T]) delete(ctx context.Context, id int) (T, error) {
	var zero T
	if err := c.wait(ctx, delayDelete); err != nil {
		return zero, &DeleteError{Entity: c.name, ID: id, Err: err}
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(id)
	if i < 0 {
		return zero, &NotFoundError{Entity: c.name, ID: id}
	}
	rec := c.recs[i]
	c.recs = append(c.recs[:i], c.recs[i+1:]...)
	return rec, nil
}

func (c *collection[T]) index(id int) int {
	for i, rec := range c.recs {
		if c.recID(rec) == id {
			return i
		}
	}
	return -1
}

func (c *collection[T]) nextID() int {
	max := 0
	for _, rec := range c.recs {
		if id := c.recID(rec); id > max {
			max = id
		}
	}
	return max + 1
}

// MemoryThreatStore is the in-memory mock adapter for threats.
type MemoryThreatStore struct {
	col *collection[entity.Threat]
}

// NewMemoryThreatStore builds a threat adapter seeded with the given
// records.
func NewMemoryThreatStore(seed []entity.Threat, opts MemoryOptions) *MemoryThreatStore {
	return &MemoryThreatStore{col: &collection[entity.Threat]{
		name:     ThreatMapping.Table,
		recs:     append([]entity.Threat(nil), seed...),
		recID:    entity.Threat.RecordID,
		now:      opts.clock(),
		simulate: opts.SimulateLatency,
		defaults: func(fields map[string]any, now time.Time) {
			if v, ok := fields["status"]; !ok || v == "" || v == nil {
				fields["status"] = string(entity.ThreatStatusActive)
			}
			if _, ok := fields["timestamp"]; !ok {
				fields["timestamp"] = now
			}
		},
	}}
}

func (s *MemoryThreatStore) GetAll(ctx context.Context) ([]entity.Threat, error) {
	return s.col.getAll(ctx)
}

func (s *MemoryThreatStore) GetByID(ctx context.Context, id int) (entity.Threat, error) {
	return s.col.getByID(ctx, id)
}

func (s *MemoryThreatStore) Create(ctx context.Context, fields map[string]any) (entity.Threat, error) {
	return s.col.create(ctx, fields)
}

func (s *MemoryThreatStore) Update(ctx context.Context, id int, fields map[string]any) (entity.Threat, error) {
	return s.col.update(ctx, id, fields)
}

func (s *MemoryThreatStore) Delete(ctx context.Context, id int) (entity.Threat, error) {
	return s.col.delete(ctx, id)
}

func (s *MemoryThreatStore) GetByStatus(ctx context.Context, status entity.ThreatStatus) ([]entity.Threat, error) {
	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Threat, 0, len(all))
	for _, t := range all {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *MemoryThreatStore) GetBySeverity(ctx context.Context, severity entity.Severity) ([]entity.Threat, error) {
	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Threat, 0, len(all))
	for _, t := range all {
		if t.Severity == severity {
			out = append(out, t)
		}
	}
	return out, nil
}

// MemoryAccountStore is the in-memory mock adapter for suspicious accounts.
type MemoryAccountStore struct {
	col *collection[entity.SuspiciousAccount]
}

// NewMemoryAccountStore builds an account adapter seeded with the given
// records.
func NewMemoryAccountStore(seed []entity.SuspiciousAccount, opts MemoryOptions) *MemoryAccountStore {
	return &MemoryAccountStore{col: &collection[entity.SuspiciousAccount]{
		name:     AccountMapping.Table,
		recs:     append([]entity.SuspiciousAccount(nil), seed...),
		recID:    entity.SuspiciousAccount.RecordID,
		now:      opts.clock(),
		simulate: opts.SimulateLatency,
		defaults: func(fields map[string]any, now time.Time) {
			if _, ok := fields["firstSeen"]; !ok {
				fields["firstSeen"] = now
			}
		},
	}}
}

func (s *MemoryAccountStore) GetAll(ctx context.Context) ([]entity.SuspiciousAccount, error) {
	return s.col.getAll(ctx)
}

func (s *MemoryAccountStore) GetByID(ctx context.Context, id int) (entity.SuspiciousAccount, error) {
	return s.col.getByID(ctx, id)
}

func (s *MemoryAccountStore) Create(ctx context.Context, fields map[string]any) (entity.SuspiciousAccount, error) {
	return s.col.create(ctx, fields)
}

func (s *MemoryAccountStore) Update(ctx context.Context, id int, fields map[string]any) (entity.SuspiciousAccount, error) {
	return s.col.update(ctx, id, fields)
}

func (s *MemoryAccountStore) Delete(ctx context.Context, id int) (entity.SuspiciousAccount, error) {
	return s.col.delete(ctx, id)
}

func (s *MemoryAccountStore) GetByThreatScore(ctx context.Context, minScore int) ([]entity.SuspiciousAccount, error) {
	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.SuspiciousAccount, 0, len(all))
	for _, a := range all {
		if a.ThreatScore >= minScore {
			out = append(out, a)
		}
	}
	return out, nil
}

// MemoryKeywordStore is the in-memory mock adapter for watchlist keywords.
type MemoryKeywordStore struct {
	col *collection[entity.Keyword]
}

// NewMemoryKeywordStore builds a keyword adapter seeded with the given
// records.
func NewMemoryKeywordStore(seed []entity.Keyword, opts MemoryOptions) *MemoryKeywordStore {
	return &MemoryKeywordStore{col: &collection[entity.Keyword]{
		name:     KeywordMapping.Table,
		recs:     append([]entity.Keyword(nil), seed...),
		recID:    entity.Keyword.RecordID,
		now:      opts.clock(),
		simulate: opts.SimulateLatency,
		defaults: func(fields map[string]any, now time.Time) {
			if _, ok := fields["isActive"]; !ok {
				fields["isActive"] = true
			}
		},
	}}
}

func (s *MemoryKeywordStore) GetAll(ctx context.Context) ([]entity.Keyword, error) {
	return s.col.getAll(ctx)
}

func (s *MemoryKeywordStore) GetByID(ctx context.Context, id int) (entity.Keyword, error) {
	return s.col.getByID(ctx, id)
}

func (s *MemoryKeywordStore) Create(ctx context.Context, fields map[string]any) (entity.Keyword, error) {
	return s.col.create(ctx, fields)
}

func (s *MemoryKeywordStore) Update(ctx context.Context, id int, fields map[string]any) (entity.Keyword, error) {
	return s.col.update(ctx, id, fields)
}

func (s *MemoryKeywordStore) Delete(ctx context.Context, id int) (entity.Keyword, error) {
	return s.col.delete(ctx, id)
}

func (s *MemoryKeywordStore) GetActive(ctx context.Context) ([]entity.Keyword, error) {
	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Keyword, 0, len(all))
	for _, k := range all {
		if k.IsActive {
			out = append(out, k)
		}
	}
	return out, nil
}

func (s *MemoryKeywordStore) ToggleActive(ctx context.Context, id int) (entity.Keyword, error) {
	cur, err := s.GetByID(ctx, id)
	if err != nil {
		return entity.Keyword{}, err
	}
	return s.Update(ctx, id, map[string]any{"isActive": !cur.IsActive})
}

// MemoryAlertStore is the in-memory mock adapter for alerts.
type MemoryAlertStore struct {
	col *collection[entity.Alert]
}

// NewMemoryAlertStore builds an alert adapter seeded with the given
// records.
func NewMemoryAlertStore(seed []entity.Alert, opts MemoryOptions) *MemoryAlertStore {
	return &MemoryAlertStore{col: &collection[entity.Alert]{
		name:     AlertMapping.Table,
		recs:     append([]entity.Alert(nil), seed...),
		recID:    entity.Alert.RecordID,
		now:      opts.clock(),
		simulate: opts.SimulateLatency,
		defaults: func(fields map[string]any, now time.Time) {
			// Server-owned fields regardless of the payload.
			fields["createdAt"] = now
			fields["isRead"] = false
		},
	}}
}

func (s *MemoryAlertStore) GetAll(ctx context.Context) ([]entity.Alert, error) {
	return s.col.getAll(ctx)
}

func (s *MemoryAlertStore) GetByID(ctx context.Context, id int) (entity.Alert, error) {
	return s.col.getByID(ctx, id)
}

func (s *MemoryAlertStore) Create(ctx context.Context, fields map[string]any) (entity.Alert, error) {
	return s.col.create(ctx, fields)
}

func (s *MemoryAlertStore) Update(ctx context.Context, id int, fields map[string]any) (entity.Alert, error) {
	return s.col.update(ctx, id, fields)
}

func (s *MemoryAlertStore) Delete(ctx context.Context, id int) (entity.Alert, error) {
	return s.col.delete(ctx, id)
}

func (s *MemoryAlertStore) GetUnread(ctx context.Context) ([]entity.Alert, error) {
	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Alert, 0, len(all))
	for _, a := range all {
		if !a.IsRead {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *MemoryAlertStore) MarkRead(ctx context.Context, id int) (entity.Alert, error) {
	return s.Update(ctx, id, map[string]any{"isRead": true})
}

// NewMemoryStores builds the full in-memory backend seeded with the
// sample monitoring dataset.
func NewMemoryStores(opts MemoryOptions) Stores {
	return Stores{
		Threats:  NewMemoryThreatStore(SeedThreats(), opts),
		Accounts: NewMemoryAccountStore(SeedAccounts(), opts),
		Keywords: NewMemoryKeywordStore(SeedKeywords(), opts),
		Alerts:   NewMemoryAlertStore(SeedAlerts(), opts),
	}
}
