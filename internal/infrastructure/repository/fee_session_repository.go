package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"commerce-api/internal/config"
	"commerce-api/internal/domain/entity"
	"commerce-api/internal/domain/repository"
	"commerce-api/internal/infrastructure/redis"
)

// NewFeeSessionRepository stores session fees in redis, or in process memory
// when redis is disabled.
func NewFeeSessionRepository(cfg *config.Config, rc *redis.RedisClient, logger *zap.Logger) repository.FeeSessionRepository {
	if rc == nil {
		return NewMemoryFeeSessionRepository(cfg.Fees.SessionTTL)
	}
	return &redisFeeSessionRepository{
		client: rc,
		prefix: cfg.Fees.KeyPrefix,
		ttl:    cfg.Fees.SessionTTL,
		logger: logger,
	}
}

// redisFeeSessionRepository keeps one hash per session, one field per fee id.
type redisFeeSessionRepository struct {
	client *redis.RedisClient
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

func (r *redisFeeSessionRepository) key(sessionID string) string {
	return r.prefix + sessionID
}

func (r *redisFeeSessionRepository) Load(ctx context.Context, sessionID string) (map[string]entity.Fee, error) {
	raw, err := r.client.HGetAll(ctx, r.key(sessionID))
	if err != nil {
		return nil, fmt.Errorf("failed to load session fees: %w", err)
	}
	return r.decode(sessionID, raw), nil
}

func (r *redisFeeSessionRepository) Put(ctx context.Context, sessionID, feeID string, fee entity.Fee) (map[string]entity.Fee, error) {
	payload, err := json.Marshal(fee)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session fee: %w", err)
	}

	raw, err := r.client.HSetGetAll(ctx, r.key(sessionID), feeID, payload, r.ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to save session fee: %w", err)
	}
	return r.decode(sessionID, raw), nil
}

func (r *redisFeeSessionRepository) Clear(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.key(sessionID)); err != nil {
		return fmt.Errorf("failed to clear session fees: %w", err)
	}
	return nil
}

// decode skips fields that no longer parse as a fee
func (r *redisFeeSessionRepository) decode(sessionID string, raw map[string]string) map[string]entity.Fee {
	fees := make(map[string]entity.Fee, len(raw))
	for id, payload := range raw {
		var fee entity.Fee
		if err := json.Unmarshal([]byte(payload), &fee); err != nil {
			r.logger.Warn("Discarding unreadable session fee",
				zap.String("session", sessionID),
				zap.String("fee", id),
				zap.Error(err),
			)
			continue
		}
		fees[id] = fee
	}
	return fees
}

type memorySession struct {
	fees      map[string]entity.Fee
	expiresAt time.Time
}

type memoryFeeSessionRepository struct {
	mu        sync.Mutex
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
	sessions  map[string]*memorySession
}

// NewMemoryFeeSessionRepository keeps session fees in process memory. A
// session expires ttl after its last fee was put. A zero ttl never expires.
func NewMemoryFeeSessionRepository(ttl time.Duration) repository.FeeSessionRepository {
	return newMemoryFeeSessionRepository(ttl, time.Now)
}

func newMemoryFeeSessionRepository(ttl time.Duration, now func() time.Time) *memoryFeeSessionRepository {
	return &memoryFeeSessionRepository{
		ttl:       ttl,
		now:       now,
		lastSweep: now(),
		sessions:  make(map[string]*memorySession),
	}
}

func (r *memoryFeeSessionRepository) Load(ctx context.Context, sessionID string) (map[string]entity.Fee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.live(sessionID, r.now())
	if s == nil {
		return make(map[string]entity.Fee), nil
	}
	return copyFees(s.fees), nil
}

func (r *memoryFeeSessionRepository) Put(ctx context.Context, sessionID, feeID string, fee entity.Fee) (map[string]entity.Fee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweep(now)

	s := r.live(sessionID, now)
	if s == nil {
		s = &memorySession{fees: make(map[string]entity.Fee)}
		r.sessions[sessionID] = s
	}
	s.fees[feeID] = fee
	if r.ttl > 0 {
		s.expiresAt = now.Add(r.ttl)
	}
	return copyFees(s.fees), nil
}

func (r *memoryFeeSessionRepository) Clear(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, sessionID)
	return nil
}

// live returns the session or nil, dropping it when expired. Callers hold mu.
func (r *memoryFeeSessionRepository) live(sessionID string, now time.Time) *memorySession {
	s, ok := r.sessions[sessionID]
	if !ok {
		return nil
	}
	if r.expired(s, now) {
		delete(r.sessions, sessionID)
		return nil
	}
	return s
}

func (r *memoryFeeSessionRepository) expired(s *memorySession, now time.Time) bool {
	return r.ttl > 0 && !now.Before(s.expiresAt)
}

// sweep drops every expired session, at most once per ttl. Callers hold mu.
func (r *memoryFeeSessionRepository) sweep(now time.Time) {
	if r.ttl <= 0 || now.Sub(r.lastSweep) < r.ttl {
		return
	}
	for id, s := range r.sessions {
		if r.expired(s, now) {
			delete(r.sessions, id)
		}
	}
	r.lastSweep = now
}

func copyFees(fees map[string]entity.Fee) map[string]entity.Fee {
	out := make(map[string]entity.Fee, len(fees))
	for id, fee := range fees {
		out[id] = fee
	}
	return out
}
