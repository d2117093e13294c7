package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const sessionContextKey contextKey = "session"

const sessionCookieName = "furnitech_session"

// SessionMaxAge bounds how long a signed session cookie stays valid.
const SessionMaxAge = 24 * time.Hour

// Flash kinds, matching the alert styles in the layout template.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// Flash is a one-shot notice shown on the next rendered page.
type Flash struct {
	Kind    string `json:"k"`
	Message string `json:"m"`
}

// Session is the state carried in the signed session cookie.
type Session struct {
	AdminID  string  `json:"aid,omitempty"`
	Username string  `json:"u,omitempty"`
	Flashes  []Flash `json:"f,omitempty"`
}

// IsAuthenticated reports whether an administrator is logged in.
func (s Session) IsAuthenticated() bool {
	return s.AdminID != ""
}

// SessionStore encodes sessions into a signed and encrypted cookie.
type SessionStore struct {
	codec  *securecookie.SecureCookie
	secure bool
}

// NewSessionStore creates a cookie-backed session store.
// PRE: hashKey is 32 or 64 bytes; blockKey is 16, 24 or 32 bytes
// POST: cookies older than SessionMaxAge are rejected on decode
func NewSessionStore(hashKey, blockKey []byte, secure bool) *SessionStore {
	codec := securecookie.New(hashKey, blockKey)
	codec.MaxAge(int(SessionMaxAge.Seconds()))
	codec.SetSerializer(securecookie.JSONEncoder{})
	return &SessionStore{codec: codec, secure: secure}
}

// Load decodes the session cookie. A missing, expired or tampered cookie
// yields an empty session.
func (ss *SessionStore) Load(r *http.Request) Session {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return Session{}
	}
	var sess Session
	if err := ss.codec.Decode(sessionCookieName, cookie.Value, &sess); err != nil {
		slog.Debug("session_decode_failed", "error", err)
		return Session{}
	}
	return sess
}

// Save writes sess as the response's session cookie, replacing any
// session cookie already queued on w.
// PRE: response headers have not been written
func (ss *SessionStore) Save(w http.ResponseWriter, sess Session) error {
	value, err := ss.codec.Encode(sessionCookieName, sess)
	if err != nil {
		return err
	}
	dropQueuedCookie(w.Header(), sessionCookieName)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		HttpOnly: true,
		Secure:   ss.secure,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   int(SessionMaxAge.Seconds()),
	})
	return nil
}

func dropQueuedCookie(h http.Header, name string) {
	prefix := name + "="
	var kept []string
	for _, v := range h.Values("Set-Cookie") {
		if !strings.HasPrefix(v, prefix) {
			kept = append(kept, v)
		}
	}
	h.Del("Set-Cookie")
	for _, v := range kept {
		h.Add("Set-Cookie", v)
	}
}

// sessionState is the mutable per-request session stored in the context.
type sessionState struct {
	sess  Session
	store *SessionStore
	w     http.ResponseWriter
}

func (st *sessionState) save() {
	if st.store == nil || st.w == nil {
		return
	}
	if err := st.store.Save(st.w, st.sess); err != nil {
		slog.Error("session_save_failed", "error", err)
	}
}

// Sessions returns middleware that loads the session cookie into the context.
// It does NOT block unauthenticated requests; use RequireAdmin for that.
func Sessions(store *SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			st := &sessionState{sess: store.Load(r), store: store, w: w}
			ctx := context.WithValue(r.Context(), sessionContextKey, st)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin returns middleware that redirects anonymous requests to the login page.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetSessionFromContext(r.Context()); !ok {
			AddFlash(r.Context(), FlashError, "Please log in to access the admin panel.")
			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func stateFromContext(ctx context.Context) *sessionState {
	st, _ := ctx.Value(sessionContextKey).(*sessionState)
	return st
}

// CurrentSession returns the request's session, including pending flashes.
func CurrentSession(ctx context.Context) Session {
	if st := stateFromContext(ctx); st != nil {
		return st.sess
	}
	return Session{}
}

// GetSessionFromContext returns the session and whether an administrator is logged in.
func GetSessionFromContext(ctx context.Context) (Session, bool) {
	sess := CurrentSession(ctx)
	return sess, sess.IsAuthenticated()
}

// SetIdentity records a successful login.
// POST: session carries adminID and username; cookie re-issued
func SetIdentity(ctx context.Context, adminID, username string) {
	st := stateFromContext(ctx)
	if st == nil {
		return
	}
	st.sess.AdminID = adminID
	st.sess.Username = username
	st.save()
}

// ClearIdentity logs the administrator out. Pending flashes survive.
func ClearIdentity(ctx context.Context) {
	st := stateFromContext(ctx)
	if st == nil {
		return
	}
	st.sess.AdminID = ""
	st.sess.Username = ""
	st.save()
}

// AddFlash queues a notice for the next rendered page.
func AddFlash(ctx context.Context, kind, message string) {
	st := stateFromContext(ctx)
	if st == nil {
		return
	}
	st.sess.Flashes = append(st.sess.Flashes, Flash{Kind: kind, Message: message})
	st.save()
}

// PopFlashes returns and clears the pending notices.
// PRE: response headers have not been written
func PopFlashes(ctx context.Context) []Flash {
	st := stateFromContext(ctx)
	if st == nil || len(st.sess.Flashes) == 0 {
		return nil
	}
	flashes := st.sess.Flashes
	st.sess.Flashes = nil
	st.save()
	return flashes
}

// ContextWithSession returns a context carrying sess without a backing cookie.
// Mutations are visible through CurrentSession on the returned context.
// Intended for use in tests.
func ContextWithSession(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, &sessionState{sess: sess})
}
