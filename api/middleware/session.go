package middleware

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/session"
)

// Session loads the visitor session and installs it in the request context.
// An unreadable cookie starts a fresh session instead of failing the request.
func Session(store sessions.Store, cookieName string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			raw, err := store.Get(r, cookieName)
			if err != nil && logg != nil {
				logg.Warn(logg.WithField(ctx, "error", err.Error()), "session.reset")
			}
			if raw == nil {
				raw = sessions.NewSession(store, cookieName)
			}

			sess := session.Wrap(raw)
			if trace := traceFromContext(ctx); trace != nil {
				trace.session = sess
			}
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sess.ID())
			}
			next.ServeHTTP(w, r.WithContext(WithSession(ctx, sess)))
		})
	}
}
