package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret-password")
	require.NoError(t, err)

	assert.NotEqual(t, "secret-password", hash)
	assert.True(t, CheckPasswordHash("secret-password", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", 2)

	token, err := issuer.GenerateToken("user-1", RoleAdmin)
	require.NoError(t, err)

	sub, role, err := issuer.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", sub)
	assert.Equal(t, RoleAdmin, role)
	assert.Equal(t, 2*time.Hour, issuer.Expiry())
}

func TestParseTokenRejects(t *testing.T) {
	issuer := NewTokenIssuer("secret", 1)

	other, err := NewTokenIssuer("other-secret", 1).GenerateToken("user-1", RoleCustomer)
	require.NoError(t, err)
	_, _, err = issuer.ParseToken(other)
	assert.Error(t, err, "wrong secret")

	expired := NewTokenIssuer("secret", 1)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.GenerateToken("user-1", RoleCustomer)
	require.NoError(t, err)
	_, _, err = issuer.ParseToken(old)
	assert.Error(t, err, "expired")

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "user-1"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, _, err = issuer.ParseToken(unsigned)
	assert.Error(t, err, "alg none")

	_, err = NewTokenIssuer("", 1).GenerateToken("user-1", RoleCustomer)
	assert.Error(t, err)
}

func newAuthRouter(issuer *TokenIssuer) *gin.Engine {
	r := gin.New()
	r.GET("/me", AuthMiddleware(issuer), func(c *gin.Context) {
		id, admin, _ := Identity(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "admin": admin})
	})
	r.GET("/admin", AuthMiddleware(issuer), RequireRole(RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	issuer := NewTokenIssuer("secret", 1)
	r := newAuthRouter(issuer)
	customer, err := issuer.GenerateToken("user-1", RoleCustomer)
	require.NoError(t, err)
	admin, err := issuer.GenerateToken("admin-1", RoleAdmin)
	require.NoError(t, err)

	tests := []struct {
		name   string
		path   string
		header string
		cookie string
		want   int
	}{
		{"missing token", "/me", "", "", http.StatusUnauthorized},
		{"bearer header", "/me", "Bearer " + customer, "", http.StatusOK},
		{"lowercase bearer", "/me", "bearer " + customer, "", http.StatusOK},
		{"cookie", "/me", "", customer, http.StatusOK},
		{"garbage", "/me", "Bearer abc.def.ghi", "", http.StatusUnauthorized},
		{"customer on admin route", "/admin", "Bearer " + customer, "", http.StatusForbidden},
		{"admin on admin route", "/admin", "Bearer " + admin, "", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "token", Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestGenerateRandomString(t *testing.T) {
	s := GenerateRandomString(6)
	assert.Len(t, s, 6)
	assert.Regexp(t, `^[A-HJ-NP-Z2-9]{6}$`, s)
}
