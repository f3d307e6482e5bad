// Package dbtest provides a fake DragonBall API for tests and local runs. It
// serves the login and heroes endpoints over TLS from embedded fixtures.
package dbtest

import (
	"context"
	"crypto/tls"
	_ "embed"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/segmentio/encoding/json"
	"golang.org/x/crypto/bcrypt"

	"github.com/ambiyansyah-risyal/dragonball"
	"github.com/ambiyansyah-risyal/dragonball/heroes"
)

const (
	// DefaultUsername and DefaultPassword are accepted by every fake API.
	DefaultUsername = "goku@keepcoding.es"
	DefaultPassword = "kamehameha"

	// certificateHost is a name covered by the httptest certificate.
	certificateHost = "example.com"
)

var (
	//go:embed testdata/heroes.json
	heroesFixture []byte

	//go:embed testdata/hero_detail.json
	heroDetailFixture []byte
)

// HeroesFixture returns the raw 16 hero fixture.
func HeroesFixture() []byte {
	return append([]byte(nil), heroesFixture...)
}

// HeroDetailFixture returns the raw fixture holding only Goku.
func HeroDetailFixture() []byte {
	return append([]byte(nil), heroDetailFixture...)
}

// Heroes decodes HeroesFixture.
func Heroes() []heroes.Hero {
	var list []heroes.Hero
	if err := json.Unmarshal(heroesFixture, &list); err != nil {
		panic("dbtest: invalid heroes fixture: " + err.Error())
	}
	return list
}

// API is the fake API state and handler.
type API struct {
	mu     sync.RWMutex
	users  map[string][]byte
	tokens map[string]string
	heroes []heroes.Hero
	router *mux.Router
}

// Option configures an API.
type Option func(*API)

// WithUser adds an account. The password is kept only as a bcrypt hash.
func WithUser(username, password string) Option {
	return func(a *API) {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		if err != nil {
			panic("dbtest: hashing password: " + err.Error())
		}
		a.users[username] = hash
	}
}

// WithHeroes replaces the served heroes.
func WithHeroes(list []heroes.Hero) Option {
	return func(a *API) {
		a.heroes = append([]heroes.Hero(nil), list...)
	}
}

// NewAPI returns a fake API with the default account and the hero fixture.
func NewAPI(opts ...Option) *API {
	a := &API{
		users:  make(map[string][]byte),
		tokens: make(map[string]string),
		heroes: Heroes(),
	}
	WithUser(DefaultUsername, DefaultPassword)(a)
	for _, opt := range opts {
		opt(a)
	}

	r := mux.NewRouter()
	r.HandleFunc(heroes.LoginPath, a.handleLogin).Methods(http.MethodPost)
	r.HandleFunc(heroes.HeroesPath, a.handleHeroes).Methods(http.MethodPost)
	a.router = r
	return a
}

// Handler returns the HTTP handler serving the API.
func (a *API) Handler() http.Handler {
	return a.router
}

// IssueToken registers a valid token for username without a login call.
func (a *API) IssueToken(username string) string {
	token := uuid.NewString()
	a.mu.Lock()
	a.tokens[token] = username
	a.mu.Unlock()
	return token
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	username, password, ok := r.BasicAuth()
	if !ok {
		http.Error(w, "missing basic credentials", http.StatusUnauthorized)
		return
	}

	a.mu.RLock()
	hash, known := a.users[username]
	a.mu.RUnlock()
	if !known || bcrypt.CompareHashAndPassword(hash, []byte(password)) != nil {
		http.Error(w, "wrong username or password", http.StatusUnauthorized)
		return
	}

	token := a.IssueToken(username)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(token))
}

func (a *API) handleHeroes(w http.ResponseWriter, r *http.Request) {
	if !a.authorized(r) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var filter struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&filter); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	a.mu.RLock()
	matches := make([]heroes.Hero, 0, len(a.heroes))
	want := strings.ToLower(filter.Name)
	for _, h := range a.heroes {
		if want == "" || strings.Contains(strings.ToLower(h.Name), want) {
			matches = append(matches, h)
		}
	}
	a.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(matches)
}

func (a *API) authorized(r *http.Request) bool {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || token == "" {
		return false
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, ok = a.tokens[token]
	return ok
}

// Server is an API served by an httptest TLS server.
type Server struct {
	*API
	*httptest.Server
}

// NewServer starts a TLS server for a new API. Call Close when done.
func NewServer(opts ...Option) *Server {
	api := NewAPI(opts...)
	return &Server{API: api, Server: httptest.NewTLSServer(api.Handler())}
}

// NewServerAt starts a TLS server for a new API listening on addr.
func NewServerAt(addr string, opts ...Option) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	api := NewAPI(opts...)
	srv := httptest.NewUnstartedServer(api.Handler())
	_ = srv.Listener.Close()
	srv.Listener = ln
	srv.StartTLS()
	return &Server{API: api, Server: srv}, nil
}

// Transport returns an HTTP client that sends every request, whatever its
// host, to the server and trusts its certificate.
func (s *Server) Transport() *http.Client {
	base := s.Server.Client().Transport.(*http.Transport).Clone()
	addr := s.Server.Listener.Addr().String()

	var dialer net.Dialer
	base.DialContext = func(ctx context.Context, network, _ string) (net.Conn, error) {
		return dialer.DialContext(ctx, network, addr)
	}
	if base.TLSClientConfig == nil {
		base.TLSClientConfig = &tls.Config{}
	}
	base.TLSClientConfig.ServerName = certificateHost

	return &http.Client{Transport: base}
}

// Client returns a dragonball client wired to the server. Requests keep their
// descriptor host; the transport routes them here.
func (s *Server) Client(opts ...dragonball.Option) *dragonball.Client {
	all := append([]dragonball.Option{dragonball.WithHTTPClient(s.Transport())}, opts...)
	return dragonball.New(all...)
}
