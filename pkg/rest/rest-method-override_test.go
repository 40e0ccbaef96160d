package rest

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func overrideRequest(t *testing.T, form url.Values) *http.Request {
	t.Helper()
	request := httptest.NewRequest(http.MethodPost, "/note/1", strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return request
}

func TestMethodOverrideRewritesTunnelledMethods(t *testing.T) {
	var seen string
	handler := MethodOverride(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Method
	}))

	handler.ServeHTTP(httptest.NewRecorder(), overrideRequest(t, url.Values{"_method": {"PUT"}}))
	assert.Equal(t, http.MethodPut, seen)

	handler.ServeHTTP(httptest.NewRecorder(), overrideRequest(t, url.Values{"_method": {"delete"}}))
	assert.Equal(t, http.MethodDelete, seen)
}

func TestMethodOverrideIgnoresUnknownMethods(t *testing.T) {
	var seen string
	handler := MethodOverride(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Method
	}))

	handler.ServeHTTP(httptest.NewRecorder(), overrideRequest(t, url.Values{"_method": {"PATCH"}}))
	assert.Equal(t, http.MethodPost, seen)

	handler.ServeHTTP(httptest.NewRecorder(), overrideRequest(t, url.Values{}))
	assert.Equal(t, http.MethodPost, seen)
}

func TestMethodOverrideLeavesFormReadable(t *testing.T) {
	var habitat string
	handler := MethodOverride(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		habitat = r.PostFormValue("habitat")
	}))

	form := url.Values{"_method": {"PUT"}, "habitat": {"mudflat"}}
	handler.ServeHTTP(httptest.NewRecorder(), overrideRequest(t, form))
	assert.Equal(t, "mudflat", habitat)
}

func TestMethodOverrideSkipsNonPostRequests(t *testing.T) {
	var seen string
	handler := MethodOverride(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Method
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/note/1?_method=DELETE", nil))
	assert.Equal(t, http.MethodGet, seen)
}
