//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"stayhub/internal/handler/dto/request"
	"stayhub/tests/common/dbtest"
	"stayhub/tests/common/httptest"
)

// LoginUser authenticates through the real login endpoint and returns
// the access token issued in the session cookie.
func LoginUser(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/login",
		request.LoginRequest{Email: email, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())

	c := httptest.ExtractCookie(w, "access_token")
	require.NotNil(t, c, "login response set no access_token cookie")
	require.NotEmpty(t, c.Value)
	return c.Value
}

// CreateAndLogin seeds a user with the given role and logs them in.
func CreateAndLogin(t *testing.T, db dbtest.DBLike, router *gin.Engine, email, role string) string {
	t.Helper()
	dbtest.CreateTestUser(t, db, email, role)
	return LoginUser(t, router, email, dbtest.TestPassword)
}
