package dragonball

import (
	"net/http"
	"strings"
)

// RequestInterceptor mutates an outgoing request before it reaches the
// transport. Interceptors run once per request, in registration order, and
// cannot fail.
type RequestInterceptor interface {
	Intercept(req *http.Request)
}

// InterceptorFunc adapts a function to RequestInterceptor.
type InterceptorFunc func(req *http.Request)

// Intercept calls f(req).
func (f InterceptorFunc) Intercept(req *http.Request) {
	f(req)
}

// AuthenticationInterceptor sets a Bearer Authorization header from the
// session store, replacing any Authorization already present. Without a
// stored session the request is left untouched.
type AuthenticationInterceptor struct {
	Store SessionStore
}

// NewAuthenticationInterceptor returns an interceptor reading from store.
func NewAuthenticationInterceptor(store SessionStore) *AuthenticationInterceptor {
	return &AuthenticationInterceptor{Store: store}
}

// Intercept implements RequestInterceptor.
func (a *AuthenticationInterceptor) Intercept(req *http.Request) {
	if a == nil || a.Store == nil {
		return
	}
	token, ok := a.Store.GetSession()
	if !ok {
		return
	}
	req.Header.Set("Authorization", "Bearer "+strings.ToValidUTF8(string(token), "\uFFFD"))
}
