package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/edirooss/streamforge/internal/domain/project"
)

var (
	// ErrNotFound means the project ID does not exist in the store.
	ErrNotFound = errors.New("project not found")
)

// ProjectStore keeps one workspace's saved bot projects in an ordered slice
// (by insertion sequence) with O(1) access via an ID→pointer map and
// ID→position map.
//
// Consistency Model:
//   - Redis is the source of truth (one JSON document per project).
//   - RAM holds a materialized, read-optimized view rebuilt on open.
//   - Writes are serialized by writeMu; Redis I/O happens outside the state
//     lock and the in-memory mutation is applied only after it succeeds.
//   - Reads never touch Redis.
//
// Keys:
//   - <keyPrefix><seq>    → JSON(project.Record)
//   - <keyPrefix>id_seq   → INCR sequence; monotonic, never recycled, gap-tolerant
//
// The public project ID is a UUIDv4 generated at create time. The sequence
// only orders records; it is never exposed.
//
// The prefix is exclusive to the owning process.
type ProjectStore struct {
	log       *zap.Logger
	rdb       *redis.Client
	keyPrefix string

	writeMu sync.Mutex
	stateRW sync.RWMutex

	byID map[string]*project.Record // id -> record
	pos  map[string]int             // id -> index into ordered list
	list []*project.Record          // ordered by seq ascending

	now func() time.Time
}

// NewProjectStore constructs a ready-to-use ProjectStore, reconciling any
// documents already under keyPrefix into memory.
func NewProjectStore(ctx context.Context, log *zap.Logger, rdb *redis.Client, keyPrefix string) (*ProjectStore, error) {
	if rdb == nil {
		return nil, errors.New("nil redis client")
	}
	if keyPrefix == "" {
		return nil, fmt.Errorf("invalid keyPrefix: must be non-empty")
	}
	if !strings.HasSuffix(keyPrefix, ":") {
		keyPrefix = keyPrefix + ":"
	}
	if log == nil {
		log = zap.NewNop()
	}

	s := &ProjectStore{
		rdb:       rdb,
		keyPrefix: keyPrefix,
		log:       log,
		byID:      make(map[string]*project.Record),
		pos:       make(map[string]int),
		list:      make([]*project.Record, 0),
		now:       time.Now,
	}

	if err := s.reconcile(ctx); err != nil {
		return nil, fmt.Errorf("reconcile: %w", err)
	}
	return s, nil
}

// Create validates r, assigns a fresh ID and timestamp, persists the project
// and appends it to the list. Returns a value copy.
func (s *ProjectStore) Create(ctx context.Context, r project.Resource) (project.BotProject, error) {
	if err := r.Validate(); err != nil {
		return project.BotProject{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	seq, err := s.rdb.Incr(ctx, sequenceKey(s.keyPrefix)).Result()
	if err != nil {
		return project.BotProject{}, fmt.Errorf("generate seq via INCR: %w", err)
	}
	rec := &project.Record{
		Seq:        seq,
		BotProject: project.NewBotProject(&r, uuid.NewString(), s.now()),
	}

	if err := s.persistRecord(ctx, rec); err != nil {
		return project.BotProject{}, fmt.Errorf("persist: %w", err)
	}

	s.stateRW.Lock()
	s.pos[rec.ID] = len(s.list)
	s.list = append(s.list, rec)
	s.byID[rec.ID] = rec
	s.stateRW.Unlock()

	return clone(rec), nil
}

// Delete removes the project and compacts the ordered list.
// Returns the deleted project.
func (s *ProjectStore) Delete(ctx context.Context, id string) (project.BotProject, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.stateRW.RLock()
	rec, ok := s.byID[id]
	delIdx := s.pos[id]
	s.stateRW.RUnlock()
	if !ok {
		return project.BotProject{}, ErrNotFound
	}

	if err := s.rdb.Del(ctx, recordKey(s.keyPrefix, rec.Seq)).Err(); err != nil {
		return project.BotProject{}, fmt.Errorf("purge: del: %w", err)
	}

	s.stateRW.Lock()
	last := len(s.list) - 1
	copy(s.list[delIdx:], s.list[delIdx+1:])
	s.list[last] = nil
	s.list = s.list[:last]
	delete(s.byID, id)
	delete(s.pos, id)
	for i := delIdx; i < len(s.list); i++ {
		s.pos[s.list[i].ID] = i
	}
	s.stateRW.Unlock()

	return clone(rec), nil
}

// GetOne returns the project for id as a value copy.
func (s *ProjectStore) GetOne(id string) (project.BotProject, error) {
	s.stateRW.RLock()
	defer s.stateRW.RUnlock()
	rec, ok := s.byID[id]
	if !ok {
		return project.BotProject{}, ErrNotFound
	}
	return clone(rec), nil
}

// GetList returns all projects, oldest first.
func (s *ProjectStore) GetList() []project.BotProject {
	s.stateRW.RLock()
	defer s.stateRW.RUnlock()
	out := make([]project.BotProject, len(s.list))
	for i := range s.list {
		out[i] = clone(s.list[i])
	}
	return out
}

// Len returns the number of stored projects.
func (s *ProjectStore) Len() int {
	s.stateRW.RLock()
	defer s.stateRW.RUnlock()
	return len(s.list)
}

func (s *ProjectStore) persistRecord(ctx context.Context, rec *project.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := s.rdb.Set(ctx, recordKey(s.keyPrefix, rec.Seq), data, 0).Err(); err != nil {
		return fmt.Errorf("set: %w", err)
	}
	return nil
}

// clone copies rec so callers never share the dependency slice.
func clone(rec *project.Record) project.BotProject {
	p := rec.BotProject
	p.Dependencies = append([]string{}, rec.Dependencies...)
	return p
}

func recordKey(keyPrefix string, seq int64) string { return keyPrefix + strconv.FormatInt(seq, 10) }
func sequenceKey(keyPrefix string) string          { return keyPrefix + "id_seq" }

// reconcile scans Redis for documents under keyPrefix and publishes the
// rebuilt state before the store accepts operations. Only the sequence key
// may be written, to push it past the highest recovered seq.
//
// Redis connectivity problems are fatal. Non-conforming keys, undecodable
// documents and seq/ID mismatches are logged and skipped.
func (s *ProjectStore) reconcile(ctx context.Context) error {
	start := time.Now()
	seqKey := sequenceKey(s.keyPrefix)
	pattern := s.keyPrefix + "*"

	s.log.Debug("reconcile: start", zap.String("prefix", s.keyPrefix))

	errs := 0
	var keys []string
	seqByKey := make(map[string]int64)
	iter := s.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		k := iter.Val()
		if k == seqKey {
			continue
		}
		seq, err := strconv.ParseInt(strings.TrimPrefix(k, s.keyPrefix), 10, 64)
		if err != nil || seq <= 0 {
			s.log.Warn("reconcile: keyPrefix collision detected (non-conforming key); skipping", zap.String("key", k))
			errs++
			continue
		}
		seqByKey[k] = seq
		keys = append(keys, k)
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}

	records := make([]*project.Record, 0, len(keys))
	if len(keys) > 0 {
		vals, err := s.rdb.MGet(ctx, keys...).Result()
		if err != nil {
			return fmt.Errorf("redis mget: %w", err)
		}
		seen := make(map[string]bool, len(vals))
		for i, raw := range vals {
			key := keys[i]
			str, ok := raw.(string)
			if !ok {
				s.log.Warn("reconcile: missing value; skipping", zap.String("key", key))
				errs++
				continue
			}
			var rec project.Record
			if err := json.Unmarshal([]byte(str), &rec); err != nil {
				s.log.Warn("reconcile: deserialization failed; skipping", zap.String("key", key), zap.Error(err))
				errs++
				continue
			}
			if rec.Seq != seqByKey[key] {
				s.log.Warn("reconcile: seq mismatch; skipping",
					zap.String("key", key),
					zap.Int64("expected_seq", seqByKey[key]),
					zap.Int64("doc_seq", rec.Seq),
				)
				errs++
				continue
			}
			if _, err := uuid.Parse(rec.ID); err != nil || seen[rec.ID] {
				s.log.Warn("reconcile: invalid or duplicate id; skipping", zap.String("key", key), zap.String("id", rec.ID))
				errs++
				continue
			}
			seen[rec.ID] = true
			rr := rec
			records = append(records, &rr)
		}
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Seq < records[j].Seq })

	byID := make(map[string]*project.Record, len(records))
	pos := make(map[string]int, len(records))
	for i, rec := range records {
		byID[rec.ID] = rec
		pos[rec.ID] = i
	}

	if n := len(records); n > 0 {
		maxSeq := records[n-1].Seq
		cur, err := s.rdb.IncrBy(ctx, seqKey, 0).Result()
		if err != nil {
			return fmt.Errorf("redis incrby(0) seq read: %w", err)
		}
		if cur < maxSeq {
			if err := s.rdb.Set(ctx, seqKey, maxSeq, 0).Err(); err != nil {
				return fmt.Errorf("redis set seq to maxSeq: %w", err)
			}
		}
	}

	s.stateRW.Lock()
	s.byID = byID
	s.pos = pos
	s.list = records
	s.stateRW.Unlock()

	s.log.Info("reconcile: complete",
		zap.String("prefix", s.keyPrefix),
		zap.Int("recovered", len(records)),
		zap.Int("errors", errs),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}
