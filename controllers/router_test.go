package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/princinho/accountsapi/auth"
	"github.com/princinho/accountsapi/middleware"
	"github.com/princinho/accountsapi/models"
	"github.com/princinho/accountsapi/store"
	"github.com/stretchr/testify/require"
)

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (fakeHasher) Verify(password, hash string) bool    { return hash == "hashed:"+password }

type testEnv struct {
	router *gin.Engine
	users  *store.MemoryUserStore
	tokens *auth.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := store.NewMemoryUserStore()
	hasher := fakeHasher{}
	tokens := auth.NewTokenService([]byte("test-secret"), 72*time.Hour)
	gate := auth.NewGate(tokens)
	resets := auth.NewResetManager(users, hasher, time.Hour)

	r := gin.New()
	api := r.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.POST("/register", Register(users, hasher))
	authRoutes.POST("/login", Login(users, hasher, tokens))
	authRoutes.GET("/logout", Logout())
	authRoutes.POST("/forgot-password", ForgotPassword(users, resets))
	authRoutes.POST("/reset-password", ResetPassword(resets))

	userRoutes := api.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(gate, models.RoleAdmin))
	userRoutes.GET("/all", GetUsers(users))
	userRoutes.POST("/add", CreateUser(users, hasher))
	userRoutes.PUT("/update/:id", UpdateUser(users))
	userRoutes.DELETE("/delete/:id", DeleteUser(users))

	return &testEnv{router: r, users: users, tokens: tokens}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, mutate ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, m := range mutate {
		m(req)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) seedAdmin(t *testing.T) (id string, credential string) {
	t.Helper()

	admin, err := e.users.Create(context.Background(), &models.User{
		Email:        "admin@example.com",
		FirstName:    "Admin",
		Role:         models.RoleAdmin,
		PasswordHash: "hashed:adminpass",
	})
	require.NoError(t, err)

	tok, err := e.tokens.Issue(auth.SessionClaim{UserID: admin.ID.Hex(), Role: models.RoleAdmin})
	require.NoError(t, err)
	return admin.ID.Hex(), tok
}

func authClaim(id string, role models.Role) auth.SessionClaim {
	return auth.SessionClaim{UserID: id, Role: role}
}

func asAdmin(credential string) func(*http.Request) {
	return func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+credential)
	}
}
