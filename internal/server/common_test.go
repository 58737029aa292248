package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testPassword = "CorrectHorse9Battery"

// stubSender records delivery attempts instead of talking to SMTP.
type stubSender struct {
	mu   sync.Mutex
	fail bool
	sent []uint
}

func (s *stubSender) Send(_ context.Context, msg *models.ContactMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return context.DeadlineExceeded
	}
	s.sent = append(s.sent, msg.ID)
	return nil
}

func (s *stubSender) setFail(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = v
}

func (s *stubSender) sentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

type testServer struct {
	srv    *Server
	app    *fiber.App
	db     *gorm.DB
	sender *stubSender
}

// newTestServer builds the full route stack over an in-memory database
// with Redis absent and mail delivery stubbed out.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	cfg := &config.Config{
		Port:      "8214",
		JWTSecret: "test-secret-key-0123456789abcdef-xyz",
		SMTPPort:  587,
		Env:       "test",
	}

	db, err := database.ConnectTest()
	require.NoError(t, err)

	sender := &stubSender{}
	srv, err := NewServerWithDeps(cfg, db, nil, sender)
	require.NoError(t, err)

	app := fiber.New()
	srv.SetupMiddleware(app)
	srv.SetupRoutes(app)

	ctx, cancel := context.WithCancel(context.Background())
	srv.dispatcher.Start(ctx)
	t.Cleanup(func() {
		cancel()
		_ = srv.dispatcher.Shutdown(context.Background())
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return &testServer{srv: srv, app: app, db: db, sender: sender}
}

// request performs a JSON request against the test app. A non-empty
// token is sent as a Bearer header.
func (ts *testServer) request(t *testing.T, method, path string, body any, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// register creates an account and returns its session token. The first
// account registered on a fresh database holds the admin role.
func (ts *testServer) register(t *testing.T, username, email string) string {
	t.Helper()

	resp := ts.request(t, http.MethodPost, "/api/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": testPassword,
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// registerAdminAndReader creates the admin account followed by a
// regular reader account and returns both tokens.
func (ts *testServer) registerAdminAndReader(t *testing.T) (adminToken, readerToken string) {
	t.Helper()
	adminToken = ts.register(t, "owner", "owner@example.com")
	readerToken = ts.register(t, "reader", "reader@example.com")
	return adminToken, readerToken
}

// createPost inserts a post through the API as the given user.
func (ts *testServer) createPost(t *testing.T, token, title string) uint {
	t.Helper()

	resp := ts.request(t, http.MethodPost, "/api/posts", map[string]string{
		"title": title,
		"body":  "Body of " + title,
	}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	id, ok := body["id"].(float64)
	require.True(t, ok)
	return uint(id)
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
