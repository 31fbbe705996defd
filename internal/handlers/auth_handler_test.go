package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendCode(t *testing.T) {
	env := newTestEnv(t)

	w := env.doJSON(t, "POST", "/api/auth/send-code", "", gin.H{"phone": "13800000000"})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Message)
	assert.Equal(t, testCode, resp.Code)
}

func TestSendCode_BadPhone(t *testing.T) {
	env := newTestEnv(t)

	for _, phone := range []string{"", "12345", "12800000000", "abc"} {
		w := env.doJSON(t, "POST", "/api/auth/send-code", "", gin.H{"phone": phone})
		assert.Equal(t, http.StatusBadRequest, w.Code, phone)
	}
}

func TestLogin_CreatesUserOnce(t *testing.T) {
	env := newTestEnv(t)

	first := env.loginUser(t, "13800000000")
	assert.NotEmpty(t, first)

	// Repeated logins reuse the same user record.
	var ids []uint
	for i := 0; i < 3; i++ {
		w := env.doJSON(t, "POST", "/api/auth/login", "", gin.H{"phone": "13800000000", "code": testCode})
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			User struct {
				ID uint `json:"id"`
			} `json:"user"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		ids = append(ids, resp.User.ID)
	}
	assert.Equal(t, ids[0], ids[1])
	assert.Equal(t, ids[1], ids[2])
}

func TestLogin_WrongCode(t *testing.T) {
	env := newTestEnv(t)

	w := env.doJSON(t, "POST", "/api/auth/login", "", gin.H{"phone": "13800000000", "code": "000000"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_MissingFields(t *testing.T) {
	env := newTestEnv(t)

	w := env.doJSON(t, "POST", "/api/auth/login", "", gin.H{"phone": "13800000000"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.doJSON(t, "POST", "/api/auth/login", "", gin.H{"code": testCode})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminLogin(t *testing.T) {
	env := newTestEnv(t)

	token := env.loginAdmin(t, "root", "changeme")
	assert.NotEmpty(t, token)

	// Wrong password and unknown username look the same.
	w := env.doJSON(t, "POST", "/api/auth/admin/login", "", gin.H{"username": "root", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.doJSON(t, "POST", "/api/auth/admin/login", "", gin.H{"username": "ghost", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealth_NoAuthRequired(t *testing.T) {
	env := newTestEnv(t)

	w := env.doJSON(t, "GET", "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}
