package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/gramshield/dashboard/internal/entity"
	"github.com/gramshield/dashboard/internal/platform"
)

// RemoteOptions configures the platform-backed adapters.
type RemoteOptions struct {
	Client *platform.Client
	// Redis optionally caches GetAll snapshots; nil disables caching.
	Redis *redis.Client
	// SnapshotTTL bounds how long a cached snapshot is served before the
	// platform is asked again.
	SnapshotTTL time.Duration
	Logger      *zap.Logger
	// Now supplies server-defaulted timestamps; defaults to time.Now.
	Now func() time.Time
}

func (o RemoteOptions) clock() func() time.Time {
	if o.Now != nil {
		return o.Now
	}
	return time.Now
}

// remoteTable is the shared platform-backed record table. All operations
// translate through the entity's Mapping so the rest of the system only
// ever sees local field names.
type remoteTable[T any] struct {
	client   *platform.Client
	mapping  Mapping
	rdb      *redis.Client
	ttl      time.Duration
	log      *zap.Logger
	now      func() time.Time
	defaults func(fields map[string]any, now time.Time)
}

func newRemoteTable[T any](mapping Mapping, opts RemoteOptions, defaults func(map[string]any, time.Time)) *remoteTable[T] {
	ttl := opts.SnapshotTTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &remoteTable[T]{
		client:   opts.Client,
		mapping:  mapping,
		rdb:      opts.Redis,
		ttl:      ttl,
		log:      log,
		now:      opts.clock(),
		defaults: defaults,
	}
}

func (r *remoteTable[T]) snapshotKey() string {
	return "gramshield:snapshot:" + r.mapping.Table
}

func (r *remoteTable[T]) getAll(ctx context.Context) ([]T, error) {
	if cached, ok := r.cachedSnapshot(ctx); ok {
		return cached, nil
	}

	raw, err := r.client.FetchRecords(ctx, r.mapping.Table, r.mapping.RemoteFields())
	if err != nil {
		return nil, &FetchError{Entity: r.mapping.Table, Err: err}
	}
	recs := make([]T, 0, len(raw))
	for _, remote := range raw {
		rec, err := r.normalizeOne(remote)
		if err != nil {
			return nil, &FetchError{Entity: r.mapping.Table, Err: err}
		}
		recs = append(recs, rec)
	}
	r.storeSnapshot(ctx, recs)
	return recs, nil
}

func (r *remoteTable[T]) getByID(ctx context.Context, id int) (T, error) {
	var zero T
	remote, err := r.client.FetchRecordByID(ctx, r.mapping.Table, id, r.mapping.RemoteFields())
	if err != nil {
		if errors.Is(err, platform.ErrRecordNotFound) {
			return zero, &NotFoundError{Entity: r.mapping.Table, ID: id}
		}
		return zero, &FetchError{Entity: r.mapping.Table, Err: err}
	}
	return r.normalizeOne(remote)
}

func (r *remoteTable[T]) create(ctx context.Context, fields map[string]any) (T, error) {
	var zero T
	local := stripID(fields)
	if r.defaults != nil {
		r.defaults(local, r.now())
	}
	remote, err := r.mapping.Denormalize(local)
	if err != nil {
		return zero, &CreateError{Entity: r.mapping.Table, Err: err}
	}

	results, err := r.client.CreateRecords(ctx, r.mapping.Table, []map[string]any{remote})
	if err != nil {
		return zero, &CreateError{Entity: r.mapping.Table, Err: err}
	}
	res, err := singleResult(results)
	if err != nil {
		return zero, &CreateError{Entity: r.mapping.Table, Err: err}
	}
	rec, err := r.normalizeOne(res.Data)
	if err != nil {
		return zero, &CreateError{Entity: r.mapping.Table, Err: err}
	}
	r.invalidateSnapshot(ctx)
	return rec, nil
}

func (r *remoteTable[T]) update(ctx context.Context, id int, fields map[string]any) (T, error) {
	var zero T
	remote, err := r.mapping.Denormalize(stripID(fields))
	if err != nil {
		return zero, &UpdateError{Entity: r.mapping.Table, ID: id, Err: err}
	}
	remote["Id"] = id

	results, err := r.client.UpdateRecords(ctx, r.mapping.Table, []map[string]any{remote})
	if err != nil {
		if errors.Is(err, platform.ErrRecordNotFound) {
			return zero, &NotFoundError{Entity: r.mapping.Table, ID: id}
		}
		return zero, &UpdateError{Entity: r.mapping.Table, ID: id, Err: err}
	}
	res, err := singleResult(results)
	if err != nil {
		return zero, &UpdateError{Entity: r.mapping.Table, ID: id, Err: err}
	}
	rec, err := r.normalizeOne(res.Data)
	if err != nil {
		return zero, &UpdateError{Entity: r.mapping.Table, ID: id, Err: err}
	}
	r.invalidateSnapshot(ctx)
	return rec, nil
}

func (r *remoteTable[T]) delete(ctx context.Context, id int) (T, error) {
	var zero T
	rec, err := r.getByID(ctx, id)
	if err != nil {
		return zero, err
	}

	results, err := r.client.DeleteRecords(ctx, r.mapping.Table, []int{id})
	if err != nil {
		if errors.Is(err, platform.ErrRecordNotFound) {
			return zero, &NotFoundError{Entity: r.mapping.Table, ID: id}
		}
		return zero, &DeleteError{Entity: r.mapping.Table, ID: id, Err: err}
	}
	if res, err := singleResult(results); err != nil {
		return zero, &DeleteError{Entity: r.mapping.Table, ID: id, Err: err}
	} else if !res.Success {
		return zero, &DeleteError{Entity: r.mapping.Table, ID: id, Err: platform.ResultError(res)}
	}
	r.invalidateSnapshot(ctx)
	return rec, nil
}

func (r *remoteTable[T]) normalizeOne(remote map[string]any) (T, error) {
	var zero T
	local, err := r.mapping.Normalize(remote)
	if err != nil {
		return zero, err
	}
	return decodeRecord[T](local)
}

func (r *remoteTable[T]) cachedSnapshot(ctx context.Context) ([]T, bool) {
	if r.rdb == nil {
		return nil, false
	}
	data, err := r.rdb.Get(ctx, r.snapshotKey()).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Warn("Snapshot cache read failed", zap.String("table", r.mapping.Table), zap.Error(err))
		}
		return nil, false
	}
	var recs []T
	if err := json.Unmarshal(data, &recs); err != nil {
		r.log.Warn("Snapshot cache decode failed", zap.String("table", r.mapping.Table), zap.Error(err))
		return nil, false
	}
	return recs, true
}

func (r *remoteTable[T]) storeSnapshot(ctx context.Context, recs []T) {
	if r.rdb == nil {
		return
	}
	data, err := json.Marshal(recs)
	if err != nil {
		return
	}
	if err := r.rdb.Set(ctx, r.snapshotKey(), data, r.ttl).Err(); err != nil {
		r.log.Warn("Snapshot cache write failed", zap.String("table", r.mapping.Table), zap.Error(err))
	}
}

func (r *remoteTable[T]) invalidateSnapshot(ctx context.Context) {
	if r.rdb == nil {
		return
	}
	if err := r.rdb.Del(ctx, r.snapshotKey()).Err(); err != nil {
		r.log.Warn("Snapshot cache invalidation failed", zap.String("table", r.mapping.Table), zap.Error(err))
	}
}

func singleResult(results []platform.RecordResult) (platform.RecordResult, error) {
	if len(results) != 1 {
		return platform.RecordResult{}, fmt.Errorf("expected 1 result, got %d", len(results))
	}
	res := results[0]
	if !res.Success {
		return platform.RecordResult{}, platform.ResultError(res)
	}
	return res, nil
}

// RemoteThreatStore is the platform-backed adapter for threats.
type RemoteThreatStore struct {
	tbl *remoteTable[entity.Threat]
}

// NewRemoteThreatStore builds a threat adapter over the record platform.
func NewRemoteThreatStore(opts RemoteOptions) *RemoteThreatStore {
	return &RemoteThreatStore{tbl: newRemoteTable[entity.Threat](ThreatMapping, opts,
		func(fields map[string]any, now time.Time) {
			if v, ok := fields["status"]; !ok || v == "" || v == nil {
				fields["status"] = string(entity.ThreatStatusActive)
			}
			if _, ok := fields["timestamp"]; !ok {
				fields["timestamp"] = now
			}
		})}
}

func (s *RemoteThreatStore) GetAll(ctx context.Context) ([]entity.Threat, error) {
	return s.tbl.getAll(ctx)
}

func (s *RemoteThreatStore) GetByID(ctx context.Context, id int) (entity.Threat, error) {
	return s.tbl.getByID(ctx, id)
}

func (s *RemoteThreatStore) Create(ctx context.Context, fields map[string]any) (entity.Threat, error) {
	return s.tbl.create(ctx, fields)
}

func (s *RemoteThreatStore) Update(ctx context.Context, id int, fields map[string]any) (entity.Threat, error) {
	return s.tbl.update(ctx, id, fields)
}

func (s *RemoteThreatStore) Delete(ctx context.Context, id int) (entity.Threat, error) {
	return s.tbl.delete(ctx, id)
}

func (s *RemoteThreatStore) GetByStatus(ctx context.Context, status entity.ThreatStatus) ([]entity.Threat, error) {
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

func (s *RemoteThreatStore) GetBySeverity(ctx context.Context, severity entity.Severity) ([]entity.Threat, error) {
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

// RemoteAccountStore is the platform-backed adapter for suspicious
// accounts.
type RemoteAccountStore struct {
	tbl *remoteTable[entity.SuspiciousAccount]
}

// NewRemoteAccountStore builds an account adapter over the record
// platform.
func NewRemoteAccountStore(opts RemoteOptions) *RemoteAccountStore {
	return &RemoteAccountStore{tbl: newRemoteTable[entity.SuspiciousAccount](AccountMapping, opts,
		func(fields map[string]any, now time.Time) {
			if _, ok := fields["firstSeen"]; !ok {
				fields["firstSeen"] = now
			}
		})}
}

func (s *RemoteAccountStore) GetAll(ctx context.Context) ([]entity.SuspiciousAccount, error) {
	return s.tbl.getAll(ctx)
}

func (s *RemoteAccountStore) GetByID(ctx context.Context, id int) (entity.SuspiciousAccount, error) {
	return s.tbl.getByID(ctx, id)
}

func (s *RemoteAccountStore) Create(ctx context.Context, fields map[string]any) (entity.SuspiciousAccount, error) {
	return s.tbl.create(ctx, fields)
}

func (s *RemoteAccountStore) Update(ctx context.Context, id int, fields map[string]any) (entity.SuspiciousAccount, error) {
	return s.tbl.update(ctx, id, fields)
}

func (s *RemoteAccountStore) Delete(ctx context.Context, id int) (entity.SuspiciousAccount, error) {
	return s.tbl.delete(ctx, id)
}

func (s *RemoteAccountStore) GetByThreatScore(ctx context.Context, minScore int) ([]entity.SuspiciousAccount, error) {
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

// RemoteKeywordStore is the platform-backed adapter for watchlist
// keywords.
type RemoteKeywordStore struct {
	tbl *remoteTable[entity.Keyword]
}

// NewRemoteKeywordStore builds a keyword adapter over the record platform.
func NewRemoteKeywordStore(opts RemoteOptions) *RemoteKeywordStore {
	return &RemoteKeywordStore{tbl: newRemoteTable[entity.Keyword](KeywordMapping, opts,
		func(fields map[string]any, _ time.Time) {
			if _, ok := fields["isActive"]; !ok {
				fields["isActive"] = true
			}
		})}
}

func (s *RemoteKeywordStore) GetAll(ctx context.Context) ([]entity.Keyword, error) {
	return s.tbl.getAll(ctx)
}

func (s *RemoteKeywordStore) GetByID(ctx context.Context, id int) (entity.Keyword, error) {
	return s.tbl.getByID(ctx, id)
}

func (s *RemoteKeywordStore) Create(ctx context.Context, fields map[string]any) (entity.Keyword, error) {
	return s.tbl.create(ctx, fields)
}

func (s *RemoteKeywordStore) Update(ctx context.Context, id int, fields map[string]any) (entity.Keyword, error) {
	return s.tbl.update(ctx, id, fields)
}

func (s *RemoteKeywordStore) Delete(ctx context.Context, id int) (entity.Keyword, error) {
	return s.tbl.delete(ctx, id)
}

func (s *RemoteKeywordStore) GetActive(ctx context.Context) ([]entity.Keyword, error) {
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

func (s *RemoteKeywordStore) ToggleActive(ctx context.Context, id int) (entity.Keyword, error) {
	cur, err := s.GetByID(ctx, id)
	if err != nil {
		return entity.Keyword{}, err
	}
	return s.Update(ctx, id, map[string]any{"isActive": !cur.IsActive})
}

// RemoteAlertStore is the platform-backed adapter for alerts.
type RemoteAlertStore struct {
	tbl *remoteTable[entity.Alert]
}

// NewRemoteAlertStore builds an alert adapter over the record platform.
func NewRemoteAlertStore(opts RemoteOptions) *RemoteAlertStore {
	return &RemoteAlertStore{tbl: newRemoteTable[entity.Alert](AlertMapping, opts,
		func(fields map[string]any, now time.Time) {
			fields["createdAt"] = now
			fields["isRead"] = false
		})}
}

func (s *RemoteAlertStore) GetAll(ctx context.Context) ([]entity.Alert, error) {
	return s.tbl.getAll(ctx)
}

func (s *RemoteAlertStore) GetByID(ctx context.Context, id int) (entity.Alert, error) {
	return s.tbl.getByID(ctx, id)
}

func (s *RemoteAlertStore) Create(ctx context.Context, fields map[string]any) (entity.Alert, error) {
	return s.tbl.create(ctx, fields)
}

func (s *RemoteAlertStore) Update(ctx context.Context, id int, fields map[string]any) (entity.Alert, error) {
	return s.tbl.update(ctx, id, fields)
}

func (s *RemoteAlertStore) Delete(ctx context.Context, id int) (entity.Alert, error) {
	return s.tbl.delete(ctx, id)
}

func (s *RemoteAlertStore) GetUnread(ctx context.Context) ([]entity.Alert, error) {
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

func (s *RemoteAlertStore) MarkRead(ctx context.Context, id int) (entity.Alert, error) {
	return s.Update(ctx, id, map[string]any{"isRead": true})
}

// NewRemoteStores builds the full platform-backed backend.
func NewRemoteStores(opts RemoteOptions) Stores {
	return Stores{
		Threats:  NewRemoteThreatStore(opts),
		Accounts: NewRemoteAccountStore(opts),
		Keywords: NewRemoteKeywordStore(opts),
		Alerts:   NewRemoteAlertStore(opts),
	}
}
