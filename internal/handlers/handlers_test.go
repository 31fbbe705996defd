package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"c2b-order-backend/internal/auth"
	"c2b-order-backend/internal/database"
	"c2b-order-backend/internal/handlers"
	"c2b-order-backend/internal/storage"
)

const (
	testSecret = "test-secret-key-for-jwt-signing-must-be-long-enough"
	testCode   = "123456"
)

type testEnv struct {
	router *gin.Engine
	client *database.Client
	store  *storage.LocalStorage
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	store, err := storage.NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	client := database.NewClient(db)
	router := handlers.NewRouter(handlers.RouterConfig{
		DB:        client,
		Codes:     auth.NewStaticCodeService(testCode),
		Store:     store,
		JWTSecret: testSecret,
		TokenTTL:  time.Hour,
		DevMode:   true,
	})

	return &testEnv{router: router, client: client, store: store}
}

func (e *testEnv) doJSON(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// loginUser runs the real login flow and returns the bearer token.
func (e *testEnv) loginUser(t *testing.T, phone string) string {
	t.Helper()
	w := e.doJSON(t, "POST", "/api/auth/login", "", gin.H{"phone": phone, "code": testCode})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// loginAdmin seeds an admin account and logs in through the API.
func (e *testEnv) loginAdmin(t *testing.T, username, password string) string {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	_, err = e.client.UpsertAdmin(username, hash)
	require.NoError(t, err)

	w := e.doJSON(t, "POST", "/api/auth/admin/login", "", gin.H{"username": username, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func (e *testEnv) doUpload(t *testing.T, token, filename, orderID, imageType string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("orderId", orderID))
	require.NoError(t, mw.WriteField("type", imageType))
	require.NoError(t, mw.Close())

	req, err := http.NewRequest("POST", "/api/upload/image", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}
