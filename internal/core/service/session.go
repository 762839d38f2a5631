package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"resizer/internal/core/domain"
	"resizer/internal/core/port"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

// SessionStore reads and writes the persisted authentication record. Reads
// never fail: a missing or corrupt record is treated as no session.
type SessionStore struct {
	storage port.SessionStorage
}

func NewSessionStore(storage port.SessionStorage) *SessionStore {
	return &SessionStore{storage: storage}
}

func (s *SessionStore) AccessToken() string {
	return domain.ExtractToken(s.record())
}

func (s *SessionStore) UserID() string {
	return domain.ExtractUserID(s.record())
}

// Identity reads the user id and access token in a single pass.
func (s *SessionStore) Identity() domain.Identity {
	record := s.record()

	return domain.Identity{
		UserID:      domain.ExtractUserID(record),
		AccessToken: domain.ExtractToken(record),
	}
}

// HasSession reports whether a record is persisted at all.
func (s *SessionStore) HasSession() bool {
	raw, err := s.storage.Load()
	if err != nil {
		log.Warn().Err(err).Msg("failed to read session record")
		return false
	}

	return len(strings.TrimSpace(string(raw))) > 0
}

// Save persists a login response body. When a token is found anywhere in
// the body it is copied to the top level accessToken field.
func (s *SessionStore) Save(body []byte) error {
	var record any
	if err := json.Unmarshal(body, &record); err != nil {
		return fmt.Errorf("invalid session record: %w", err)
	}

	if m, ok := record.(map[string]any); ok {
		if token := domain.ExtractToken(m); token != "" {
			m["accessToken"] = token
		}
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("error encoding session record: %w", err)
	}

	return s.storage.Save(data)
}

func (s *SessionStore) Clear() error {
	return s.storage.Delete()
}

// TokenExpiry reports the exp claim of a JWT access token. The signature is
// not verified; the value is informational only.
func (s *SessionStore) TokenExpiry() (time.Time, bool) {
	token := s.AccessToken()
	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		log.Debug().Err(err).Msg("access token is not a JWT")
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}

	return exp.Time, true
}

func (s *SessionStore) record() any {
	raw, err := s.storage.Load()
	if err != nil {
		log.Warn().Err(err).Msg("failed to read session record")
		return nil
	}

	if len(raw) == 0 {
		return nil
	}

	var record any
	if err := json.Unmarshal(raw, &record); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			log.Error().Err(err).Int64("offset", syntaxErr.Offset).Msg("failed to parse session record")
		} else {
			log.Error().Err(err).Msg("failed to parse session record")
		}
		return nil
	}

	return record
}
