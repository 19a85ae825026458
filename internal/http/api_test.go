package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"super-control/internal/auth"
	"super-control/internal/metrics"
	"super-control/internal/repository/sqlite"
	"super-control/internal/scraper"
	"super-control/internal/service"
	"super-control/internal/storage"
)

type memoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (m *memoryStorage) PutObject(_ context.Context, bucket, key string, body io.Reader, _ storage.PutOptions) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[bucket+"/"+key] = data
	return nil
}

func (m *memoryStorage) ListObjects(_ context.Context, bucket, prefix string) ([]storage.ObjectInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []storage.ObjectInfo
	for k, v := range m.objects {
		key := strings.TrimPrefix(k, bucket+"/")
		if strings.HasPrefix(key, prefix) {
			out = append(out, storage.ObjectInfo{Key: key, Size: int64(len(v))})
		}
	}
	return out, nil
}

func (m *memoryStorage) DeleteObject(_ context.Context, bucket, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, bucket+"/"+key)
	return nil
}

func (m *memoryStorage) GetObjectURL(_ context.Context, bucket, key string, _ time.Duration) (string, error) {
	return "https://storage.test/" + bucket + "/" + key, nil
}

type testServer struct {
	router *gin.Engine
	store  *memoryStorage
}

func newTestServer(t *testing.T, withStorage bool) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	userRepo := sqlite.NewUserRepository(db)
	listRepo := sqlite.NewSuperListRepository(db)
	require.NoError(t, userRepo.Init(ctx))
	require.NoError(t, listRepo.Init(ctx))

	authSvc, err := auth.NewService(userRepo, auth.Config{
		Secret:     "test-secret",
		LoginTTL:   15 * time.Minute,
		BcryptCost: bcrypt.MinCost,
		Logger:     logger,
	})
	require.NoError(t, err)

	m, err := metrics.New(prometheus.NewRegistry())
	require.NoError(t, err)

	srv := &testServer{store: &memoryStorage{objects: map[string][]byte{}}}
	var images service.ImageService
	if withStorage {
		images = service.NewImageService(srv.store, "receipts", "images")
	} else {
		images = service.NewImageService(nil, "", "")
	}

	handler := NewHandler(Dependencies{
		Users:   service.NewUserService(userRepo, authSvc),
		Lists:   service.NewSuperListService(listRepo, scraper.NewReceiptScraper(scraper.Config{Timeout: 5 * time.Second, Logger: logger})),
		Images:  images,
		Auth:    authSvc,
		Metrics: m,
		Logger:  logger,
	})
	srv.router = gin.New()
	handler.RegisterRoutes(srv.router)
	return srv
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		payload, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) signup(t *testing.T, username string) {
	t.Helper()
	w := s.do(t, http.MethodPost, "/users/signup", map[string]any{
		"username":   username,
		"name":       "Anthony",
		"lastname":   "Stark",
		"email":      username + "@starkindustries.com",
		"birth_date": "1970-05-29",
		"password":   "ILoveMark40",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func (s *testServer) login(t *testing.T, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/login/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) token(t *testing.T, username string) string {
	t.Helper()
	w := s.login(t, username, "ILoveMark40")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.AccessToken
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
