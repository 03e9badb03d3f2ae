package middleware

import (
	"net/http"

	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/settings"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/pkg/response"
)

// SessionMiddleware gates routes behind the persisted login flag. The
// single-user model has no tokens: the practitioner either unlocked
// the app with the password or did not.
type SessionMiddleware struct {
	settings *settings.Store
}

func NewSessionMiddleware(settingsStore *settings.Store) *SessionMiddleware {
	return &SessionMiddleware{
		settings: settingsStore,
	}
}

func (m *SessionMiddleware) RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.settings.LoggedIn() {
			response.Unauthorized(w, "Login required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
