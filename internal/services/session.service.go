package services

import (
	"context"
	"fmt"
	"time"

	"rcsc-server/config"
	"rcsc-server/internal/database"
	"rcsc-server/internal/logger"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"
)

// ErrSessionNotFound covers both unknown and expired tokens.
var ErrSessionNotFound = fmt.Errorf("session not found")

// SessionService stores moderator sessions in the Session cache with a
// sliding TTL.
type SessionService struct {
	cache database.CacheClient
	ttl   time.Duration
	log   logger.Logger
}

func NewSessionService(db database.DB, config config.Config) *SessionService {
	ttl := time.Duration(config.SessionTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}

	return &SessionService{
		cache: db.Cache.Session,
		ttl:   ttl,
		log:   logger.New("SessionService"),
	}
}

func (s *SessionService) Create(ctx context.Context, moderatorID string) (string, error) {
	log := s.log.Function("Create")

	token := uuid.New().String()
	cmd := s.cache.B().Set().Key(sessionKey(token)).Value(moderatorID).
		Ex(s.ttl).Build()
	if err := s.cache.Do(ctx, cmd).Error(); err != nil {
		return "", log.Err("failed to store session", err, "moderatorID", moderatorID)
	}

	return token, nil
}

// Get resolves a token to a moderator id and refreshes the TTL.
func (s *SessionService) Get(ctx context.Context, token string) (string, error) {
	log := s.log.Function("Get")

	cmd := s.cache.B().Getex().Key(sessionKey(token)).Ex(s.ttl).Build()
	moderatorID, err := s.cache.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return "", ErrSessionNotFound
		}
		return "", log.Err("failed to read session", err)
	}

	return moderatorID, nil
}

func (s *SessionService) Delete(ctx context.Context, token string) error {
	log := s.log.Function("Delete")

	cmd := s.cache.B().Del().Key(sessionKey(token)).Build()
	if err := s.cache.Do(ctx, cmd).Error(); err != nil {
		return log.Err("failed to delete session", err)
	}

	return nil
}

func sessionKey(token string) string {
	return "session:" + token
}
