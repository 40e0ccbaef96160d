package auth

import (
	"net/http"

	"github.com/gorilla/securecookie"
)

const sessionCookie = "session"

// Session identifies the requester, as asserted by a signed cookie.
type Session struct {
	UserId   int64
	Username string
}

// Sessions issues, clears and resolves signed identity cookies. There's no
// server side session store: the cookie is the session, but its signature
// prevents clients from forging another user's identity.
type Sessions struct {
	codec *securecookie.SecureCookie
}

// NewSessions builds a session codec from a mandatory hash key and an optional
// block key; a nil block key signs cookies without encrypting their contents.
func NewSessions(hashKey, blockKey []byte) *Sessions {
	return &Sessions{codec: securecookie.New(hashKey, blockKey)}
}

// Issue signs the session and sets its cookie on the response.
func (s *Sessions) Issue(writer http.ResponseWriter, session Session) error {
	encoded, err := s.codec.Encode(sessionCookie, session)
	if err != nil {
		return err
	}
	http.SetCookie(writer, &http.Cookie{
		Name:     sessionCookie,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear expires the identity cookie.
func (s *Sessions) Clear(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Resolve extracts the session from the request's cookies. Absent, forged or
// damaged cookies resolve to an anonymous request rather than an error, since
// most routes welcome unauthenticated visitors.
func (s *Sessions) Resolve(request *http.Request) (Session, bool) {
	cookie, err := request.Cookie(sessionCookie)
	if err != nil {
		return Session{}, false
	}
	var session Session
	if err = s.codec.Decode(sessionCookie, cookie.Value, &session); err != nil {
		return Session{}, false
	}
	return session, session.UserId > 0
}
