package session

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"

	"github.com/angelmondragon/storefront-backend/pkg/config"
)

// NewStore builds the gorilla store selected by cfg.Backend. kv is only used by the redis backend.
func NewStore(cfg config.SessionConfig, kv KeyValueStore) (sessions.Store, error) {
	if cfg.Secret == "" {
		return nil, errors.New("session secret required")
	}
	switch cfg.Normalized() {
	case config.SessionBackendCookie, "":
		return NewCookieStore(cfg), nil
	case config.SessionBackendRedis:
		return NewRedisStore(kv, cfg)
	default:
		return nil, fmt.Errorf("unsupported session backend %q", cfg.Backend)
	}
}

// NewCookieStore keeps all session values in a signed cookie.
func NewCookieStore(cfg config.SessionConfig) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(cfg.Secret))
	store.Options = cookieOptions(cfg)
	store.MaxAge(cfg.MaxAge)
	return store
}

func cookieOptions(cfg config.SessionConfig) *sessions.Options {
	return &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.MaxAge,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func codecsFor(cfg config.SessionConfig) []securecookie.Codec {
	codecs := securecookie.CodecsFromPairs([]byte(cfg.Secret))
	for _, codec := range codecs {
		if sc, ok := codec.(*securecookie.SecureCookie); ok {
			sc.MaxAge(cfg.MaxAge)
		}
	}
	return codecs
}
