package controller

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lukafrizz/content-api/database"
	"github.com/lukafrizz/content-api/database/model"
	"github.com/lukafrizz/content-api/logger"
	"github.com/lukafrizz/content-api/web/entity"
	"github.com/lukafrizz/content-api/web/service"

	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.InitLogger(logging.ERROR)
	os.Exit(m.Run())
}

// testServer wires the controllers onto a bare engine against a throwaway
// database, mirroring the route layout of the real server.
type testServer struct {
	engine *gin.Engine
	tokens *service.TokenService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.InitDB(dbPath))
	t.Cleanup(func() {
		_ = database.CloseDB()
	})

	tokens := service.NewTokenService("test-secret", time.Hour)
	uploads, err := service.NewUploadService(t.TempDir())
	require.NoError(t, err)

	engine := gin.New()
	api := engine.Group("/api")

	NewAuthController(api.Group("/auth"), tokens)
	NewCommentController(api.Group("/comments"), tokens)
	NewNewsController(api.Group("/news"), tokens)
	NewProductController(api.Group("/products"), tokens)
	NewUploadController(api.Group("/upload"), tokens, uploads)
	NewAdminController(api.Group("/admin"), tokens)

	return &testServer{engine: engine, tokens: tokens}
}

func (s *testServer) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

// decodeMsg parses the response envelope.
func decodeMsg(t *testing.T, rec *httptest.ResponseRecorder) entity.Msg {
	t.Helper()
	var msg entity.Msg
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	return msg
}

// adminToken provisions an admin account and returns a token for it.
func (s *testServer) adminToken(t *testing.T) string {
	t.Helper()

	users := service.UserService{}
	admin, err := users.Register("admin", "admin@example.com", "secret123")
	require.NoError(t, err)
	admin, err = users.SetRole(admin.Id, model.RoleAdmin)
	require.NoError(t, err)

	token, err := s.tokens.Issue(admin.Id, admin.Role)
	require.NoError(t, err)
	return token
}
