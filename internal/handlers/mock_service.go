package handlers

import (
	"context"
	"net/http"
	"strconv"
	"sync"

	"dronedata/internal/models"
	"dronedata/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	users map[string]*models.User // by username

	authErr     error
	registerErr error

	lastAuthUsername string
	lastAuthPassword string
	lastRegister     [3]string
	registerCalls    int
}

func newMockAuth(users ...models.User) *mockAuth {
	m := &mockAuth{users: map[string]*models.User{}}
	for i := range users {
		u := users[i]
		m.users[u.Username] = &u
	}
	return m
}

func (m *mockAuth) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	m.lastAuthUsername = username
	m.lastAuthPassword = password
	if m.authErr != nil {
		return nil, m.authErr
	}
	if username == "" || password == "" {
		return nil, service.ErrMissingCredentials
	}
	u, ok := m.users[username]
	if !ok || password != "pw-"+username {
		return nil, service.ErrInvalidCredentials
	}
	return u, nil
}

func (m *mockAuth) Register(ctx context.Context, username, password, location string) (*models.User, error) {
	m.registerCalls++
	m.lastRegister = [3]string{username, password, location}
	if m.registerErr != nil {
		return nil, m.registerErr
	}
	if _, ok := m.users[username]; ok {
		return nil, service.ErrDuplicateUsername
	}
	u := &models.User{ID: len(m.users) + 1, Username: username, Location: location}
	m.users[username] = u
	return u, nil
}

func (m *mockAuth) UserByID(ctx context.Context, id int) (*models.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, service.ErrSessionUserNotFound
}

// mockSessions hands out tokens of the form "tok-<n>" and resolves only those.
type mockSessions struct {
	mu       sync.Mutex
	byToken  map[string]models.Session
	issueErr error
	revoked  []string
	issued   int
}

func newMockSessions() *mockSessions {
	return &mockSessions{byToken: map[string]models.Session{}}
}

// add registers a live session for userID and returns its token.
func (m *mockSessions) add(userID int) string {
	tok, _, _ := m.Issue(context.Background(), userID)
	return tok
}

func (m *mockSessions) Issue(ctx context.Context, userID int) (string, models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.issueErr != nil {
		return "", models.Session{}, m.issueErr
	}
	m.issued++
	s := models.Session{ID: "sess-" + strconv.Itoa(m.issued), UserID: userID}
	tok := "tok-" + strconv.Itoa(m.issued)
	m.byToken[tok] = s
	return tok, s, nil
}

func (m *mockSessions) Resolve(ctx context.Context, token string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byToken[token]
	if !ok {
		return nil, service.ErrSessionNotFound
	}
	return &s, nil
}

func (m *mockSessions) Revoke(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked = append(m.revoked, token)
	delete(m.byToken, token)
	return nil
}

type mockListing struct {
	files []models.FileEntry
	err   error
	calls []string
}

func (m *mockListing) ListFiles(ctx context.Context, loc models.Location) ([]models.FileEntry, error) {
	m.calls = append(m.calls, loc.Name)
	return m.files, m.err
}

type mockMonitoring struct {
	status   models.LocationStatus
	err      error
	mu       sync.Mutex
	lastLocs []string
}

func (m *mockMonitoring) GetStatus(ctx context.Context, location string) (models.LocationStatus, error) {
	m.mu.Lock()
	m.lastLocs = append(m.lastLocs, location)
	m.mu.Unlock()
	st := m.status
	st.Location = location
	return st, m.err
}

type mockAccessLog struct {
	recorded []models.AccessEvent
	resp     []models.AccessEvent
	err      error
	listed   int
	lastList service.LogFilter
}

func (m *mockAccessLog) Record(ctx context.Context, e models.AccessEvent) error {
	m.recorded = append(m.recorded, e)
	return nil
}

func (m *mockAccessLog) List(ctx context.Context, f service.LogFilter) ([]models.AccessEvent, error) {
	m.listed++
	m.lastList = f
	return m.resp, m.err
}

func (m *mockAccessLog) types() []string {
	out := make([]string, 0, len(m.recorded))
	for _, e := range m.recorded {
		out = append(out, e.Type)
	}
	return out
}

// ---- Shared Test Helpers ----

type testDeps struct {
	auth     *mockAuth
	sessions *mockSessions
	listing  *mockListing
	monitor  *mockMonitoring
	events   *mockAccessLog
}

func newTestDeps(users ...models.User) *testDeps {
	return &testDeps{
		auth:     newMockAuth(users...),
		sessions: newMockSessions(),
		listing:  &mockListing{},
		monitor:  &mockMonitoring{},
		events:   &mockAccessLog{},
	}
}

func (d *testDeps) service() *service.Service {
	return &service.Service{
		Authentication: d.auth,
		Sessions:       d.sessions,
		Guard:          service.NewGuardService(nil),
		Listing:        d.listing,
		AccessLog:      d.events,
		Monitoring:     d.monitor,
	}
}

func newTestRouter(s *service.Service, opts ...Options) *gin.Engine {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	h := NewHandler(s, nil, o)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func sessionCookie(token string) *http.Cookie {
	return &http.Cookie{Name: defaultCookieName, Value: token}
}
