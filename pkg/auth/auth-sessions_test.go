package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testHashKey = []byte("0123456789abcdef0123456789abcdef")

func issueRequestWithSession(t *testing.T, sessions *Sessions, session Session) *http.Request {
	t.Helper()
	recorder := httptest.NewRecorder()
	require.NoError(t, sessions.Issue(recorder, session))

	request := httptest.NewRequest(http.MethodGet, "/profile", nil)
	for _, cookie := range recorder.Result().Cookies() {
		request.AddCookie(cookie)
	}
	return request
}

func TestSessionRoundTrip(t *testing.T) {
	sessions := NewSessions(testHashKey, nil)

	request := issueRequestWithSession(t, sessions, Session{UserId: 7, Username: "bernice@example.com"})

	session, authenticated := sessions.Resolve(request)
	assert.True(t, authenticated)
	assert.Equal(t, int64(7), session.UserId)
	assert.Equal(t, "bernice@example.com", session.Username)
}

func TestResolveRejectsForgedCookies(t *testing.T) {
	sessions := NewSessions(testHashKey, nil)

	// a cookie signed with a different key must resolve to anonymous
	forger := NewSessions([]byte("another-key-another-key-another!"), nil)
	request := issueRequestWithSession(t, forger, Session{UserId: 1, Username: "impostor"})

	_, authenticated := sessions.Resolve(request)
	assert.False(t, authenticated)
}

func TestResolveWithoutCookieIsAnonymous(t *testing.T) {
	sessions := NewSessions(testHashKey, nil)

	request := httptest.NewRequest(http.MethodGet, "/note/all", nil)

	_, authenticated := sessions.Resolve(request)
	assert.False(t, authenticated)
}

func TestClearExpiresCookie(t *testing.T) {
	sessions := NewSessions(testHashKey, nil)

	recorder := httptest.NewRecorder()
	sessions.Clear(recorder)

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "session", cookies[0].Name)
	assert.Negative(t, cookies[0].MaxAge)
}
