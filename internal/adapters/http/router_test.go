package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/lessonhub/auth-service/internal/adapters/security"
	"github.com/lessonhub/auth-service/internal/application"
	"github.com/lessonhub/auth-service/internal/domain"
)

func TestRegisterVerifyMeFlow(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	resp := env.postJSON(t, "/auth/v1/register", map[string]string{
		"email":    "flow@example.com",
		"password": "secret1",
	}, "")
	if resp.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	code := env.store.challengeCode(t, "flow@example.com")
	resp = env.postJSON(t, "/auth/v1/otp/verify", map[string]string{
		"email": "flow@example.com",
		"otp":   code,
	}, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("verify: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var verifyBody struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &verifyBody); err != nil {
		t.Fatalf("decode verify response: %v", err)
	}
	if verifyBody.Data.Token == "" {
		t.Fatalf("expected token in verify response: %s", resp.Body.String())
	}

	resp = env.getJSON(t, "/auth/v1/me", verifyBody.Data.Token)
	if resp.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var meBody struct {
		Data application.IdentityInfo `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &meBody); err != nil {
		t.Fatalf("decode me response: %v", err)
	}
	if meBody.Data.Email != "flow@example.com" || !meBody.Data.Verified {
		t.Fatalf("unexpected identity: %+v", meBody.Data)
	}
}

func TestRegisterConflictAndValidation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.registerAndVerify(t, "dup@example.com", "secret1")

	resp := env.postJSON(t, "/auth/v1/register", map[string]string{
		"email":    "dup@example.com",
		"password": "another1",
	}, "")
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 for verified duplicate, got %d", resp.Code)
	}
	if code := errorCode(t, resp); code != "EMAIL_TAKEN" {
		t.Fatalf("expected EMAIL_TAKEN, got %s", code)
	}

	resp = env.postJSON(t, "/auth/v1/register", map[string]string{
		"email":    "weak@example.com",
		"password": "abc",
	}, "")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for weak password, got %d", resp.Code)
	}

	// Unknown fields are rejected at the decoder.
	resp = env.postJSON(t, "/auth/v1/register", map[string]string{
		"email":    "extra@example.com",
		"password": "secret1",
		"role":     "admin",
	}, "")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d", resp.Code)
	}
}

func TestLoginErrorMapping(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.registerAndVerify(t, "map@example.com", "secret1")

	resp := env.postJSON(t, "/auth/v1/login", map[string]string{
		"email":    "map@example.com",
		"password": "wrong12",
	}, "")
	if resp.Code != http.StatusUnauthorized || errorCode(t, resp) != "INVALID_CREDENTIALS" {
		t.Fatalf("wrong password: got %d %s", resp.Code, resp.Body.String())
	}

	resp = env.postJSON(t, "/auth/v1/login", map[string]string{
		"email":    "ghost@example.com",
		"password": "secret1",
	}, "")
	if resp.Code != http.StatusUnauthorized || errorCode(t, resp) != "INVALID_CREDENTIALS" {
		t.Fatalf("unknown email must map identically: got %d %s", resp.Code, resp.Body.String())
	}

	resp = env.postJSON(t, "/auth/v1/otp/verify", map[string]string{
		"email": "map@example.com",
		"otp":   "000000",
	}, "")
	if resp.Code != http.StatusBadRequest || errorCode(t, resp) != "UNKNOWN_CHALLENGE" {
		t.Fatalf("verify without challenge: got %d %s", resp.Code, resp.Body.String())
	}
}

func TestLoginUnverifiedMapsToForbidden(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	resp := env.postJSON(t, "/auth/v1/register", map[string]string{
		"email":    "pending@example.com",
		"password": "secret1",
	}, "")
	if resp.Code != http.StatusCreated {
		t.Fatalf("register: got %d", resp.Code)
	}

	resp = env.postJSON(t, "/auth/v1/login", map[string]string{
		"email":    "pending@example.com",
		"password": "secret1",
	}, "")
	if resp.Code != http.StatusForbidden || errorCode(t, resp) != "EMAIL_UNVERIFIED" {
		t.Fatalf("unverified login: got %d %s", resp.Code, resp.Body.String())
	}
}

func TestBearerGate(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	resp := env.getJSON(t, "/auth/v1/me", "")
	if resp.Code != http.StatusUnauthorized || errorCode(t, resp) != "NO_TOKEN" {
		t.Fatalf("missing token: got %d %s", resp.Code, resp.Body.String())
	}

	resp = env.getJSON(t, "/auth/v1/me", "not-a-real-token")
	if resp.Code != http.StatusUnauthorized || errorCode(t, resp) != "UNAUTHORIZED" {
		t.Fatalf("garbage token: got %d %s", resp.Code, resp.Body.String())
	}
}

func TestChangePasswordOverHTTP(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token := env.registerAndVerify(t, "rotate@example.com", "secret1")

	resp := env.postJSON(t, "/auth/v1/password/change", map[string]string{
		"currentPassword": "secret1",
		"newPassword":     "secret1",
	}, token)
	if resp.Code != http.StatusBadRequest || errorCode(t, resp) != "PASSWORD_UNCHANGED" {
		t.Fatalf("unchanged password: got %d %s", resp.Code, resp.Body.String())
	}

	resp = env.postJSON(t, "/auth/v1/password/change", map[string]string{
		"currentPassword": "wrong12",
		"newPassword":     "secret2",
	}, token)
	if resp.Code != http.StatusUnauthorized || errorCode(t, resp) != "INCORRECT_CURRENT_PASSWORD" {
		t.Fatalf("wrong current password: got %d %s", resp.Code, resp.Body.String())
	}

	resp = env.postJSON(t, "/auth/v1/password/change", map[string]string{
		"currentPassword": "secret1",
		"newPassword":     "secret2",
	}, token)
	if resp.Code != http.StatusOK {
		t.Fatalf("change password: got %d %s", resp.Code, resp.Body.String())
	}

	// The token issued before the change still passes the gate.
	resp = env.getJSON(t, "/auth/v1/me", token)
	if resp.Code != http.StatusOK {
		t.Fatalf("token should survive a password change: got %d", resp.Code)
	}
}

func TestLessonRoutes(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token := env.registerAndVerify(t, "teach@example.com", "secret1")

	resp := env.getJSON(t, "/lessons/v1/", "")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("lessons must be gated: got %d", resp.Code)
	}

	resp = env.postJSON(t, "/lessons/v1/", map[string]any{
		"title": "Basics",
		"exercises": []map[string]string{
			{"prompt": "Say yes", "answer": "yes"},
		},
	}, token)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create lesson: got %d %s", resp.Code, resp.Body.String())
	}
	var createBody struct {
		Data struct {
			ID uuid.UUID `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &createBody); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	resp = env.do(t, http.MethodPost, fmt.Sprintf("/lessons/v1/%s/complete", createBody.Data.ID), nil, token)
	if resp.Code != http.StatusOK {
		t.Fatalf("complete lesson: got %d %s", resp.Code, resp.Body.String())
	}

	resp = env.getJSON(t, "/lessons/v1/", token)
	if resp.Code != http.StatusOK {
		t.Fatalf("list lessons: got %d", resp.Code)
	}
	var listBody struct {
		Data struct {
			Lessons []application.LessonItem `json:"lessons"`
			Count   int                      `json:"count"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &listBody); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if listBody.Data.Count != 1 || len(listBody.Data.Lessons) != 1 || !listBody.Data.Lessons[0].IsCompleted {
		t.Fatalf("expected one completed lesson, got %+v", listBody.Data)
	}

	resp = env.do(t, http.MethodDelete, fmt.Sprintf("/lessons/v1/%s", createBody.Data.ID), nil, token)
	if resp.Code != http.StatusOK {
		t.Fatalf("delete lesson: got %d %s", resp.Code, resp.Body.String())
	}
	resp = env.getJSON(t, fmt.Sprintf("/lessons/v1/%s", createBody.Data.ID), token)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("deleted lesson should 404: got %d", resp.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodOptions, "/auth/v1/login", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight: expected 204, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Fatalf("preflight should set CORS headers")
	}
}

// testEnv wires the router to the application service over in-memory stores
// and a real HS256 signer.
type testEnv struct {
	router http.Handler
	store  *memIdentities
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	signer, err := security.NewJWTSigner("router-test-secret")
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}

	store := &memIdentities{
		byEmail:   map[string]domain.Identity{},
		byID:      map[uuid.UUID]domain.Identity{},
		completed: map[uuid.UUID]map[uuid.UUID]bool{},
	}
	svc := application.NewService(application.Dependencies{
		Identities: store,
		Lessons:    &memLessons{items: map[uuid.UUID]domain.Lesson{}},
		Hasher:     security.NewBcryptHasher(4),
		Signer:     signer,
		Dispatcher: nopDispatcher{},
	})

	return &testEnv{
		router: NewRouter(NewHandler(svc), RouterConfig{}),
		store:  store,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, payload any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) postJSON(t *testing.T, path string, payload any, token string) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(t, http.MethodPost, path, payload, token)
}

func (e *testEnv) getJSON(t *testing.T, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(t, http.MethodGet, path, nil, token)
}

func (e *testEnv) registerAndVerify(t *testing.T, email, password string) string {
	t.Helper()
	resp := e.postJSON(t, "/auth/v1/register", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	if resp.Code != http.StatusCreated {
		t.Fatalf("register %s: got %d %s", email, resp.Code, resp.Body.String())
	}

	resp = e.postJSON(t, "/auth/v1/otp/verify", map[string]string{
		"email": email,
		"otp":   e.store.challengeCode(t, email),
	}, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("verify %s: got %d %s", email, resp.Code, resp.Body.String())
	}

	var body struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode verify response: %v", err)
	}
	return body.Data.Token
}

func errorCode(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return body.Code
}

type memIdentities struct {
	mu        sync.Mutex
	byEmail   map[string]domain.Identity
	byID      map[uuid.UUID]domain.Identity
	completed map[uuid.UUID]map[uuid.UUID]bool
}

func (m *memIdentities) Create(_ context.Context, identity domain.Identity) (domain.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[identity.Email]; ok {
		return domain.Identity{}, domain.ErrEmailTaken
	}
	m.byEmail[identity.Email] = identity
	m.byID[identity.ID] = identity
	return identity, nil
}

func (m *memIdentities) GetByEmail(_ context.Context, email string) (domain.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	identity, ok := m.byEmail[email]
	if !ok {
		return domain.Identity{}, domain.ErrNotFound
	}
	return identity, nil
}

func (m *memIdentities) GetByID(_ context.Context, id uuid.UUID) (domain.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	identity, ok := m.byID[id]
	if !ok {
		return domain.Identity{}, domain.ErrNotFound
	}
	return identity, nil
}

func (m *memIdentities) Save(_ context.Context, identity domain.Identity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[identity.ID]; !ok {
		return domain.ErrNotFound
	}
	m.byEmail[identity.Email] = identity
	m.byID[identity.ID] = identity
	return nil
}

func (m *memIdentities) MarkLessonCompleted(_ context.Context, identityID, lessonID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.completed[identityID] == nil {
		m.completed[identityID] = map[uuid.UUID]bool{}
	}
	m.completed[identityID][lessonID] = true
	return nil
}

func (m *memIdentities) ListCompletedLessonIDs(_ context.Context, identityID uuid.UUID) ([]uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []uuid.UUID
	for id := range m.completed[identityID] {
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *memIdentities) challengeCode(t *testing.T, email string) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	identity, ok := m.byEmail[email]
	if !ok || identity.Challenge == nil {
		t.Fatalf("no pending challenge for %s", email)
	}
	return identity.Challenge.Code
}

type memLessons struct {
	mu    sync.Mutex
	items map[uuid.UUID]domain.Lesson
}

func (m *memLessons) Create(_ context.Context, lesson domain.Lesson) (domain.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[lesson.ID] = lesson
	return lesson, nil
}

func (m *memLessons) GetByID(_ context.Context, id uuid.UUID) (domain.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	lesson, ok := m.items[id]
	if !ok {
		return domain.Lesson{}, domain.ErrNotFound
	}
	return lesson, nil
}

func (m *memLessons) List(_ context.Context) ([]domain.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Lesson
	for _, lesson := range m.items {
		out = append(out, lesson)
	}
	return out, nil
}

func (m *memLessons) Update(_ context.Context, lesson domain.Lesson) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[lesson.ID]; !ok {
		return domain.ErrNotFound
	}
	m.items[lesson.ID] = lesson
	return nil
}

func (m *memLessons) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

type nopDispatcher struct{}

func (nopDispatcher) Send(context.Context, string, string, string) error { return nil }
