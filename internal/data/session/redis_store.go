package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/wardrobe-backend/internal/domain/wardrobe"
	"github.com/yungbote/wardrobe-backend/internal/platform/dbctx"
	"github.com/yungbote/wardrobe-backend/internal/platform/logger"
)

const redisKeyPrefix = "wardrobe:generation_session:"

type redisStore struct {
	rdb goredis.UniversalClient
	ttl time.Duration
	log *logger.Logger
}

func NewRedisStore(rdb goredis.UniversalClient, ttl time.Duration, baseLog *logger.Logger) Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &redisStore{
		rdb: rdb,
		ttl: ttl,
		log: baseLog.With("store", "RedisGenerationSessionStore"),
	}
}

func redisKey(sessionID uuid.UUID) string {
	return redisKeyPrefix + sessionID.String()
}

func (s *redisStore) Get(ctx context.Context, sessionID uuid.UUID) (*wardrobe.GenerationSession, error) {
	if sessionID == uuid.Nil {
		return nil, nil
	}
	raw, err := s.rdb.Get(ctx, redisKey(sessionID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session: %w", err)
	}
	var out wardrobe.GenerationSession
	if err := json.Unmarshal(raw, &out); err != nil {
		s.log.Warn("dropping unreadable generation session", "session_id", sessionID, "error", err)
		if delErr := s.rdb.Del(ctx, redisKey(sessionID)).Err(); delErr != nil {
			s.log.Warn("failed to delete unreadable generation session", "session_id", sessionID, "error", delErr)
		}
		return nil, nil
	}
	return &out, nil
}

func (s *redisStore) Save(ctx context.Context, gs *wardrobe.GenerationSession) error {
	if gs == nil || gs.SessionID == uuid.Nil {
		return fmt.Errorf("generation session requires a session id")
	}
	raw, err := json.Marshal(gs)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, redisKey(gs.SessionID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (s *redisStore) Clear(ctx context.Context, sessionID uuid.UUID) error {
	if sessionID == uuid.Nil {
		return nil
	}
	return s.rdb.Del(ctx, redisKey(sessionID)).Err()
}

// MarkRated runs under WATCH; a concurrent write to the key aborts the claim.
func (s *redisStore) MarkRated(dbc dbctx.Context, sessionID, generationID uuid.UUID, rating int) (bool, error) {
	if sessionID == uuid.Nil || generationID == uuid.Nil {
		return false, nil
	}
	return s.swapRated(ctxOf(dbc), sessionID, func(gs *wardrobe.GenerationSession) bool {
		if gs.GenerationID != generationID || gs.Rated {
			return false
		}
		gs.Rated = true
		gs.LastRating = &rating
		return true
	})
}

// ReleaseRating clears a claim made by MarkRated for the same generation.
func (s *redisStore) ReleaseRating(ctx context.Context, sessionID, generationID uuid.UUID) error {
	_, err := s.swapRated(ctx, sessionID, func(gs *wardrobe.GenerationSession) bool {
		if gs.GenerationID != generationID || !gs.Rated {
			return false
		}
		gs.Rated = false
		gs.LastRating = nil
		return true
	})
	return err
}

// swapRated applies mutate to the stored session inside a WATCH transaction
// and writes it back with the remaining TTL. It reports whether a write
// happened.
func (s *redisStore) swapRated(ctx context.Context, sessionID uuid.UUID, mutate func(*wardrobe.GenerationSession) bool) (bool, error) {
	key := redisKey(sessionID)
	wrote := false
	err := s.rdb.Watch(ctx, func(tx *goredis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, goredis.Nil) {
			return nil
		}
		if err != nil {
			return err
		}
		var gs wardrobe.GenerationSession
		if err := json.Unmarshal(raw, &gs); err != nil {
			return fmt.Errorf("decode session: %w", err)
		}
		if !mutate(&gs) {
			return nil
		}
		next, err := json.Marshal(&gs)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(p goredis.Pipeliner) error {
			p.Set(ctx, key, next, goredis.KeepTTL)
			return nil
		})
		if err != nil {
			return err
		}
		wrote = true
		return nil
	}, key)
	if errors.Is(err, goredis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis update session: %w", err)
	}
	return wrote, nil
}

func ctxOf(dbc dbctx.Context) context.Context {
	if dbc.Ctx == nil {
		return context.Background()
	}
	return dbc.Ctx
}
