package common

import (
	"net/http"
	"strings"

	"github.com/matst80/slask-wardrobe/pkg/session"
)

const SessionCookieName = "sid"

func setSessionCookie(w http.ResponseWriter, r *http.Request, sessionId string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionId,
		Domain:   strings.TrimPrefix(hostname(r.Host), "."),
		SameSite: http.SameSiteNoneMode,
		Secure:   r.TLS != nil,
		HttpOnly: true,
		MaxAge:   int(session.DefaultTTL.Seconds()),
		Path:     "/",
	})
}

func hostname(host string) string {
	if i := strings.LastIndexByte(host, ':'); i > 0 && !strings.Contains(host[i:], "]") {
		return host[:i]
	}
	return host
}

// HandleSessionCookie returns the session named by the sid cookie, creating a new session
// and setting the cookie when it is missing or unknown.
func HandleSessionCookie(store *session.Store, w http.ResponseWriter, r *http.Request) *session.Session {
	id := ""
	if c, err := r.Cookie(SessionCookieName); err == nil {
		id = c.Value
	}
	s, created := store.GetOrCreate(id)
	if created {
		setSessionCookie(w, r, s.Id)
	}
	return s
}
