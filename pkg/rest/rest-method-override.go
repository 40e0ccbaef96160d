package rest

import (
	"net/http"
	"strings"
)

// overrideField is the form field HTML forms use to tunnel PUT and DELETE requests through POST.
const overrideField = "_method"

// MethodOverride rewrites POST requests carrying a `_method` form field into the
// method they stand for, before the router dispatches them. Only PUT and DELETE
// are honoured; anything else leaves the request untouched.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.Method == http.MethodPost {
			// ParseForm caches the body's fields on the request, so handlers can still read them
			if err := request.ParseForm(); err == nil {
				switch method := strings.ToUpper(request.PostForm.Get(overrideField)); method {
				case http.MethodPut, http.MethodDelete:
					request.Method = method
				}
			}
		}
		next.ServeHTTP(writer, request)
	})
}
