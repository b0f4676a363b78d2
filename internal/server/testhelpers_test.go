package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// memDB is an in-memory DBClient.
type memDB struct {
	mu      sync.Mutex
	users   map[uuid.UUID]*db.User
	resumes map[uuid.UUID]*db.Resume
	pingErr error
}

func newMemDB() *memDB {
	return &memDB{users: map[uuid.UUID]*db.User{}, resumes: map[uuid.UUID]*db.Resume{}}
}

func (m *memDB) Ping(context.Context) error { return m.pingErr }

func (m *memDB) CreateUser(_ context.Context, name, email, passwordHash string) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == strings.ToLower(email) {
			return uuid.Nil, fmt.Errorf("duplicate email")
		}
	}
	now := time.Now()
	u := &db.User{ID: uuid.New(), Name: name, Email: strings.ToLower(email), PasswordHash: passwordHash, CreatedAt: now, UpdatedAt: now}
	m.users[u.ID] = u
	return u.ID, nil
}

func (m *memDB) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *memDB) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == strings.ToLower(email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memDB) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	u, err := m.GetUserByEmail(ctx, email)
	return u != nil, err
}

func (m *memDB) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return fmt.Errorf("user %s: %w", id, db.ErrNotFound)
	}
	u.PasswordHash = passwordHash
	return nil
}

func (m *memDB) CreateResume(_ context.Context, userID uuid.UUID, title, template string, content json.RawMessage) (*db.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	r := &db.Resume{ID: uuid.New(), UserID: userID, Title: title, Template: template, Content: content, CreatedAt: now, UpdatedAt: now}
	m.resumes[r.ID] = r
	cp := *r
	return &cp, nil
}

func (m *memDB) GetResume(_ context.Context, userID, id uuid.UUID) (*db.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.resumes[id]
	if !ok || r.UserID != userID {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (m *memDB) ListResumes(_ context.Context, userID uuid.UUID) ([]db.ResumeSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []db.ResumeSummary{}
	for _, r := range m.resumes {
		if r.UserID == userID {
			out = append(out, db.ResumeSummary{ID: r.ID, Title: r.Title, Template: r.Template, UpdatedAt: r.UpdatedAt})
		}
	}
	return out, nil
}

func (m *memDB) UpdateResume(_ context.Context, userID, id uuid.UUID, title, template string, content json.RawMessage) (*db.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.resumes[id]
	if !ok || r.UserID != userID {
		return nil, fmt.Errorf("resume %s: %w", id, db.ErrNotFound)
	}
	r.Title, r.Template, r.Content, r.UpdatedAt = title, template, content, time.Now()
	cp := *r
	return &cp, nil
}

func (m *memDB) DeleteResume(_ context.Context, userID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.resumes[id]
	if !ok || r.UserID != userID {
		return fmt.Errorf("resume %s: %w", id, db.ErrNotFound)
	}
	delete(m.resumes, id)
	return nil
}

// fakeExporter returns a fixed payload tagged with the format and template.
type fakeExporter struct {
	err error
}

func (f *fakeExporter) Export(_ context.Context, doc *rendering.Document, format export.Format) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte(fmt.Sprintf("%s:%s", format, doc.Template)), nil
}

// memStore records uploads.
type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func newMemStore() *memStore {
	return &memStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (s *memStore) Put(_ context.Context, key, contentType string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	s.types[key] = contentType
	return nil
}

func (s *memStore) PresignGet(_ context.Context, key string, ttl time.Duration) (string, error) {
	return fmt.Sprintf("https://storage.test/%s?ttl=%d", key, int(ttl.Seconds())), nil
}

// fakeAssistant returns canned replies and records what it was asked.
type fakeAssistant struct {
	suggestions []types.Suggestion
	chunks      []string
	err         error

	mu      sync.Mutex
	content *types.Content
	message string
}

func (f *fakeAssistant) record(c *types.Content, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.content, f.message = c, message
}

func (f *fakeAssistant) Suggest(_ context.Context, c *types.Content, message string) ([]types.Suggestion, error) {
	f.record(c, message)
	return f.suggestions, f.err
}

func (f *fakeAssistant) Chat(_ context.Context, c *types.Content, message string, onChunk func(string) error) error {
	f.record(c, message)
	for _, chunk := range f.chunks {
		if err := onChunk(chunk); err != nil {
			return err
		}
	}
	return f.err
}

type testEnv struct {
	server    *Server
	db        *memDB
	store     *memStore
	assistant *fakeAssistant
	exporter  *fakeExporter
}

type envOption func(*Deps)

func withoutStore() envOption     { return func(d *Deps) { d.Store = nil } }
func withoutAssistant() envOption { return func(d *Deps) { d.Assistant = nil } }
func withRateLimit(cfg *ratelimit.Config) envOption {
	return func(d *Deps) { d.RateLimit = cfg }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	env := &testEnv{
		db:        newMemDB(),
		store:     newMemStore(),
		assistant: &fakeAssistant{},
		exporter:  &fakeExporter{},
	}
	deps := Deps{
		DB: env.db,
		JWT: &config.JWTConfig{
			Secret:          testJWTSecret,
			ExpirationHours: 1,
			Issuer:          config.DefaultJWTIssuer,
		},
		Password:  &config.PasswordConfig{BcryptCost: bcrypt.MinCost, MinLength: 8},
		Exporter:  env.exporter,
		Store:     env.store,
		Assistant: env.assistant,
		RateLimit: &ratelimit.Config{Enabled: false},
	}
	for _, opt := range opts {
		opt(&deps)
	}
	env.server = newServer(0, deps)
	t.Cleanup(env.server.Close)
	return env
}

// do sends a request through the full middleware chain. body may be a string, []byte or a
// value to encode as JSON.
func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	case []byte:
		reader = bytes.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(w, req)
	return w
}

// register creates an account and returns its token and id.
func (e *testEnv) register(t *testing.T, email string) (string, uuid.UUID) {
	t.Helper()
	w := e.do(t, http.MethodPost, "/auth/register", types.CreateUserRequest{
		Name:     "Test User",
		Email:    email,
		Password: "correct-horse",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.User)
	return resp.Token, resp.User.ID
}

// createResume saves content for the token's user and returns the stored résumé.
func (e *testEnv) createResume(t *testing.T, token, title, content string) types.Resume {
	t.Helper()
	w := e.do(t, http.MethodPost, "/resumes", fmt.Sprintf(`{"title":%q,"content":%s}`, title, content), token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resume types.Resume
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resume))
	return resume
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
