// ABOUTME: In-process fake of the auth and game services for tests
// ABOUTME: Issues HS256 tokens and keeps per-user resources and buildings in memory

package testutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/markalston/realm-client/internal/client"
)

// CollectCooldown is how often a player may collect
const CollectCooldown = time.Hour

const tokenTTL = 15 * time.Minute

// TokenClaims is the payload of tokens issued by the fake auth service
type TokenClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

type player struct {
	id            int
	username      string
	passwordHash  []byte
	resources     client.ResourceState
	buildings     client.BuildingLevels
	lastCollected time.Time
}

// FakeAPI serves both services from one httptest server
type FakeAPI struct {
	Server *httptest.Server

	mu      sync.Mutex
	secret  []byte
	players map[string]*player
	byID    map[int]*player
	nextID  int
	now     func() time.Time
	hits    map[string]int

	// Hook, when set, runs before every handler. Returning true means the
	// hook wrote the response.
	Hook func(w http.ResponseWriter, r *http.Request) bool
}

// Route defines a fake endpoint with its HTTP method and handler.
type Route struct {
	Method  string
	Path    string
	Handler http.HandlerFunc
}

// NewFakeAPI starts a fake server that is closed when the test ends
func NewFakeAPI(t testing.TB) *FakeAPI {
	t.Helper()
	f := &FakeAPI{
		secret:  []byte("test-secret"),
		players: make(map[string]*player),
		byID:    make(map[int]*player),
		nextID:  1,
		now:     time.Now,
		hits:    make(map[string]int),
	}

	mux := http.NewServeMux()
	for _, r := range f.Routes() {
		mux.HandleFunc(r.Method+" "+r.Path, chain(r.Handler, logRequest, f.countHits, f.runHook))
	}
	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Server.Close)
	return f
}

// Routes returns the endpoints of both services
func (f *FakeAPI) Routes() []Route {
	return []Route{
		// Auth service
		{Method: http.MethodPost, Path: "/api/login", Handler: f.login},
		{Method: http.MethodPost, Path: "/api/register", Handler: f.register},

		// Game service
		{Method: http.MethodGet, Path: "/resources", Handler: f.resources},
		{Method: http.MethodPost, Path: "/collect_resources", Handler: f.collect},
		{Method: http.MethodPost, Path: "/build/{building}", Handler: f.build},
	}
}

// URL is the base URL of both services
func (f *FakeAPI) URL() string {
	return f.Server.URL
}

// SetClock replaces the time source used for cooldowns and token expiry
func (f *FakeAPI) SetClock(now func() time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = now
}

// AddPlayer registers a player directly and returns their ID
func (f *FakeAPI) AddPlayer(username, password string, resources client.ResourceState) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, err := f.addPlayerLocked(username, password)
	if err != nil {
		panic(err)
	}
	p.resources = resources
	return p.id
}

// Resources returns the stored counters of a player
func (f *FakeAPI) Resources(username string) client.ResourceState {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.players[username]; ok {
		return p.resources
	}
	return client.ResourceState{}
}

// Hits returns how many requests reached path
func (f *FakeAPI) Hits(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

// IssueToken signs a token for the player, as the auth service would
func (f *FakeAPI) IssueToken(id int, username string) string {
	f.mu.Lock()
	now := f.now()
	f.mu.Unlock()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(id),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
		Username: username,
	})
	s, err := token.SignedString(f.secret)
	if err != nil {
		panic(fmt.Sprintf("failed to sign token: %v", err))
	}
	return s
}

func (f *FakeAPI) login(w http.ResponseWriter, r *http.Request) {
	var creds client.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Username == "" || creds.Password == "" {
		writeMessage(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	p, ok := f.players[creds.Username]
	f.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword(p.passwordHash, []byte(creds.Password)) != nil {
		writeMessage(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}

	token := f.IssueToken(p.id, p.username)
	writeJSON(w, http.StatusOK, client.AuthResult{
		AccessToken: token,
		RedirectURL: f.URL() + "/game?token=" + token,
	})
}

func (f *FakeAPI) register(w http.ResponseWriter, r *http.Request) {
	var creds client.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Username == "" || creds.Password == "" {
		writeMessage(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	_, err := f.addPlayerLocked(creds.Username, creds.Password)
	f.mu.Unlock()
	if errors.Is(err, errPlayerExists) {
		writeMessage(w, "User already exists", http.StatusConflict)
		return
	}
	if err != nil {
		writeMessage(w, "Internal Server Error during registration", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, client.RegisterResult{
		Message:     "User registered successfully",
		RedirectURL: f.URL() + "/login",
	})
}

func (f *FakeAPI) resources(w http.ResponseWriter, r *http.Request) {
	p, ok := f.authenticate(w, r)
	if !ok {
		return
	}
	f.mu.Lock()
	state := p.resources
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, state)
}

func (f *FakeAPI) collect(w http.ResponseWriter, r *http.Request) {
	p, ok := f.authenticate(w, r)
	if !ok {
		return
	}

	f.mu.Lock()
	now := f.now()
	if !p.lastCollected.IsZero() && now.Sub(p.lastCollected) < CollectCooldown {
		f.mu.Unlock()
		writeMessage(w, "Вы уже собирали ресурсы в течение последнего часа.", http.StatusForbidden)
		return
	}
	p.resources.Wood += p.buildings.Sawmill * 10
	p.resources.Stone += p.buildings.Quarry * 5
	p.resources.Gold += p.buildings.Mine * 2
	p.lastCollected = now
	state := p.resources
	result := client.CollectResult{Resources: &state, Message: "Ресурсы успешно собраны!"}
	f.mu.Unlock()

	writeJSON(w, http.StatusOK, result)
}

func (f *FakeAPI) build(w http.ResponseWriter, r *http.Request) {
	p, ok := f.authenticate(w, r)
	if !ok {
		return
	}

	building := r.PathValue("building")
	f.mu.Lock()
	switch building {
	case "sawmill":
		p.buildings.Sawmill++
	case "quarry":
		p.buildings.Quarry++
	case "mine":
		p.buildings.Mine++
	default:
		f.mu.Unlock()
		writeMessage(w, "Указан недопустимый тип здания", http.StatusBadRequest)
		return
	}
	levels := p.buildings
	f.mu.Unlock()

	name := strings.ToUpper(building[:1]) + building[1:]
	writeJSON(w, http.StatusOK, client.BuildResult{
		Message:   name + " level increased successfully!",
		Buildings: &levels,
	})
}

// authenticate accepts a bearer token or the access_token cookie
func (f *FakeAPI) authenticate(w http.ResponseWriter, r *http.Request) (*player, bool) {
	raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if raw == "" {
		if c, err := r.Cookie("access_token"); err == nil {
			raw = c.Value
		}
	}
	if raw == "" {
		writeMessage(w, "Token is required", http.StatusUnauthorized)
		return nil, false
	}

	f.mu.Lock()
	now := f.now
	f.mu.Unlock()

	claims := &TokenClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return f.secret, nil
	}, jwt.WithTimeFunc(now))
	if err != nil {
		writeMessage(w, "Invalid token", http.StatusUnauthorized)
		return nil, false
	}

	id, err := strconv.Atoi(claims.Subject)
	if err != nil {
		writeMessage(w, "Invalid user ID format in token", http.StatusUnauthorized)
		return nil, false
	}

	f.mu.Lock()
	p, ok := f.byID[id]
	f.mu.Unlock()
	if !ok {
		writeMessage(w, "User data not found", http.StatusNotFound)
		return nil, false
	}
	return p, true
}

var errPlayerExists = errors.New("player exists")

func (f *FakeAPI) addPlayerLocked(username, password string) (*player, error) {
	if _, ok := f.players[username]; ok {
		return nil, errPlayerExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	p := &player{
		id:           f.nextID,
		username:     username,
		passwordHash: hash,
		buildings:    client.BuildingLevels{Sawmill: 1, Quarry: 1, Mine: 1},
	}
	f.nextID++
	f.players[username] = p
	f.byID[p.id] = p
	return p, nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, message string, code int) {
	writeJSON(w, code, client.ErrorResponse{Message: message})
}
