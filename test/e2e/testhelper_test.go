package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/imgpipe/internal/adapter/handler"
	"github.com/marcos-nsantos/imgpipe/internal/adapter/messaging"
	pgRepo "github.com/marcos-nsantos/imgpipe/internal/adapter/repository/postgres"
	"github.com/marcos-nsantos/imgpipe/internal/adapter/storage"
	"github.com/marcos-nsantos/imgpipe/internal/domain"
	"github.com/marcos-nsantos/imgpipe/internal/infrastructure/auth"
	"github.com/marcos-nsantos/imgpipe/internal/infrastructure/database"
	"github.com/marcos-nsantos/imgpipe/internal/infrastructure/imageproc"
	"github.com/marcos-nsantos/imgpipe/internal/infrastructure/middleware"
	"github.com/marcos-nsantos/imgpipe/internal/infrastructure/server"
	"github.com/marcos-nsantos/imgpipe/internal/usecase/upload"
)

const (
	testDBUser     = "testuser"
	testDBPassword = "testpass"
	testDBName     = "testdb"
	testJWTSecret  = "test-secret-key-for-e2e-tests"
	apiBasePath    = "/api/v1"
	storageBaseURL = "https://stub-storage.example.com/"
)

type TestApp struct {
	Server     *httptest.Server
	Pool       *pgxpool.Pool
	Container  testcontainers.Container
	BaseURL    string
	Storage    *memoryStorage
	Events     *recordingPublisher
	JWT        *auth.JWTService
	httpClient *http.Client
}

func setupTestApp(t *testing.T) *TestApp {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping e2e test in short mode")
	}

	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:17-alpine",
		postgres.WithDatabase(testDBName),
		postgres.WithUsername(testDBUser),
		postgres.WithPassword(testDBPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	_, err = database.RunMigrations(ctx, pool, getMigrationsPath())
	require.NoError(t, err)

	objectStorage := newMemoryStorage()
	publisher := &recordingPublisher{}
	jwtSvc := auth.NewJWTService(testJWTSecret, "imgpipe", 15*time.Minute)
	logger := zap.NewNop()
	tempDir := t.TempDir()

	uploadSvc := upload.NewService(pgRepo.NewImageRepo(pool), objectStorage, imageproc.NewTransformer(), publisher, upload.Options{
		TempDir:      tempDir,
		KeyPrefix:    "images",
		DefaultWidth: 1280,
		Quality:      90,
		SignedURLTTL: time.Hour,
	}, logger)

	router := server.NewRouter(server.RouterConfig{
		ImageHandler:   handler.NewImageHandler(uploadSvc, tempDir, 5<<20),
		AuthMiddleware: middleware.NewAuthMiddleware(jwtSvc),
		Logger:         logger,
		Environment:    "test",
	})

	ts := httptest.NewServer(router.Engine())

	return &TestApp{
		Server:    ts,
		Pool:      pool,
		Container: pgContainer,
		BaseURL:   ts.URL,
		Storage:   objectStorage,
		Events:    publisher,
		JWT:       jwtSvc,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (app *TestApp) cleanup(t *testing.T) {
	t.Helper()

	app.Server.Close()
	app.Pool.Close()

	ctx := context.Background()
	if err := app.Container.Terminate(ctx); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

func (app *TestApp) token(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, _, err := app.JWT.GenerateAccessToken(userID)
	require.NoError(t, err)
	return token
}

func (app *TestApp) do(req *http.Request, token string) (*http.Response, error) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return app.httpClient.Do(req)
}

func (app *TestApp) get(path, token string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, app.BaseURL+apiBasePath+path, nil)
	if err != nil {
		return nil, err
	}
	return app.do(req, token)
}

func (app *TestApp) delete(path, token string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodDelete, app.BaseURL+apiBasePath+path, nil)
	if err != nil {
		return nil, err
	}
	return app.do(req, token)
}

func (app *TestApp) uploadFile(path, token, contentType string, content []byte, fields map[string]string) (*http.Response, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, err
		}
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="upload"`)
	h.Set("Content-Type", contentType)
	part, err := writer.CreatePart(h)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(content); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, app.BaseURL+apiBasePath+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return app.do(req, token)
}

func parseResponse(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	if dest != nil {
		err = json.Unmarshal(body, dest)
		require.NoError(t, err, "response body: %s", string(body))
	}
}

// encodeImage renders a solid test image in the format implied by ext.
func encodeImage(t *testing.T, ext string, width, height int) []byte {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture"+ext)
	img := imaging.New(width, height, color.NRGBA{R: 200, G: 80, B: 40, A: 255})
	require.NoError(t, imaging.Save(img, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

// memoryStorage keeps uploaded objects in memory so tests can inspect them.
type memoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: make(map[string][]byte)}
}

func (s *memoryStorage) Upload(_ context.Context, key, localPath, _ string) (string, error) {
	data, err := os.ReadFile(localPath)
	if err != nil {
		return "", &domain.StorageError{Op: "put", Key: key, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return s.GetURL(key), nil
}

func (s *memoryStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *memoryStorage) List(_ context.Context, prefix string) ([]storage.ObjectInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var objects []storage.ObjectInfo
	for key, data := range s.objects {
		if strings.HasPrefix(key, prefix) {
			objects = append(objects, storage.ObjectInfo{Key: key, Size: int64(len(data)), URL: s.GetURL(key)})
		}
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].Key < objects[j].Key })
	return objects, nil
}

func (s *memoryStorage) GetURL(key string) string {
	return storageBaseURL + key
}

func (s *memoryStorage) GetSignedURL(key string, expiry time.Duration) (string, error) {
	return fmt.Sprintf("%s%s?expires=%d", storageBaseURL, key, int(expiry.Seconds())), nil
}

func (s *memoryStorage) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	return data, ok
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []messaging.ImageEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event messaging.ImageEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	types := make([]string, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.Type)
	}
	return types
}

func getMigrationsPath() string {
	_, filename, _, _ := runtime.Caller(0)
	testDir := filepath.Dir(filename)
	return filepath.Join(testDir, "..", "..", "migrations")
}
