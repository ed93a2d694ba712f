package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"

	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/redis"
)

// KeyValueStore is the subset of the redis client the session store needs.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	SessionKey(sessionID string) string
}

// RedisStore keeps session values in redis and only a signed session id in the cookie.
type RedisStore struct {
	kv      KeyValueStore
	Codecs  []securecookie.Codec
	Options *sessions.Options
	ttl     time.Duration
}

var _ sessions.Store = (*RedisStore)(nil)

func NewRedisStore(kv KeyValueStore, cfg config.SessionConfig) (*RedisStore, error) {
	if kv == nil {
		return nil, errors.New("redis client required for redis sessions")
	}
	return &RedisStore{
		kv:      kv,
		Codecs:  codecsFor(cfg),
		Options: cookieOptions(cfg),
		ttl:     cfg.TTL(),
	}, nil
}

// Get returns the session cached in the request registry, loading it on first use.
func (s *RedisStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New loads the session named by the request cookie. A missing, tampered or
// expired cookie yields a fresh session.
func (s *RedisStore) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := *s.Options
	session.Options = &opts
	session.IsNew = true

	cookie, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}

	var id string
	if err := securecookie.DecodeMulti(name, cookie.Value, &id, s.Codecs...); err != nil {
		return session, err
	}

	found, err := s.load(r.Context(), id, session)
	if err != nil {
		return session, err
	}
	if found {
		session.ID = id
		session.IsNew = false
	}
	return session, nil
}

// Save writes the values to redis and refreshes the cookie. A negative MaxAge deletes both.
func (s *RedisStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	ctx := r.Context()

	if session.Options != nil && session.Options.MaxAge < 0 {
		if session.ID != "" {
			if err := s.kv.Del(ctx, s.kv.SessionKey(session.ID)); err != nil {
				return fmt.Errorf("delete session: %w", err)
			}
		}
		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		session.ID = uuid.NewString()
	}

	payload, err := encodeValues(session.Values)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, s.kv.SessionKey(session.ID), payload, s.ttl); err != nil {
		return fmt.Errorf("store session: %w", err)
	}

	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, s.Codecs...)
	if err != nil {
		return fmt.Errorf("encode session cookie: %w", err)
	}
	http.SetCookie(w, sessions.NewCookie(session.Name(), encoded, session.Options))
	return nil
}

func (s *RedisStore) load(ctx context.Context, id string, session *sessions.Session) (bool, error) {
	raw, err := s.kv.Get(ctx, s.kv.SessionKey(id))
	if redis.IsMissing(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load session: %w", err)
	}

	values := map[string]string{}
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return false, fmt.Errorf("decode session: %w", err)
	}
	for k, v := range values {
		session.Values[k] = v
	}
	return true, nil
}

func encodeValues(values map[any]any) (string, error) {
	out := make(map[string]string, len(values))
	for k, v := range values {
		key, ok := k.(string)
		if !ok {
			return "", fmt.Errorf("session key %v is not a string", k)
		}
		value, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("session value %q has unsupported type %T", key, v)
		}
		out[key] = value
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}
	return string(raw), nil
}
