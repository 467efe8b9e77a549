package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/princinho/accountsapi/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUsersRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	_, adminTok := env.seedAdmin(t)

	// No credential.
	w := env.do(t, http.MethodGet, "/api/users/all", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Standard-role credential.
	user, err := env.users.Create(context.Background(), &models.User{
		Email:        "standard@example.com",
		Role:         models.RoleStandard,
		PasswordHash: "hashed:pw",
	})
	require.NoError(t, err)
	standardTok, err := env.tokens.Issue(authClaim(user.ID.Hex(), models.RoleStandard))
	require.NoError(t, err)

	w = env.do(t, http.MethodGet, "/api/users/all", nil, asAdmin(standardTok))
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Admin credential.
	w = env.do(t, http.MethodGet, "/api/users/all", nil, asAdmin(adminTok))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Users []models.User `json:"users"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Users, 2)
	assert.NotContains(t, w.Body.String(), "passwordHash")
}

func TestCreateUserForcesStandardRole(t *testing.T) {
	env := newTestEnv(t)
	_, adminTok := env.seedAdmin(t)

	w := env.do(t, http.MethodPost, "/api/users/add", map[string]string{
		"firstName": "Sean",
		"lastName":  "Maxwell",
		"email":     "sean.maxwell@gmail.com",
		"password":  "reallyGoodPassword",
	}, asAdmin(adminTok))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"STANDARD"`)
}

func TestUpdateUser(t *testing.T) {
	env := newTestEnv(t)
	_, adminTok := env.seedAdmin(t)

	user, err := env.users.Create(context.Background(), &models.User{
		Email:     "john.smith@gmail.com",
		FirstName: "John",
		LastName:  "Smith",
		Role:      models.RoleStandard,
	})
	require.NoError(t, err)

	w := env.do(t, http.MethodPut, "/api/users/update/"+user.ID.Hex(), map[string]string{
		"firstName": "Johnny",
	}, asAdmin(adminTok))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"firstName":"Johnny"`)
	assert.Contains(t, w.Body.String(), `"lastName":"Smith"`)

	w = env.do(t, http.MethodPut, "/api/users/update/missing", map[string]string{
		"firstName": "Johnny",
	}, asAdmin(adminTok))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteUser(t *testing.T) {
	env := newTestEnv(t)
	_, adminTok := env.seedAdmin(t)

	user, err := env.users.Create(context.Background(), &models.User{
		Email: "john.smith@gmail.com",
		Role:  models.RoleStandard,
	})
	require.NoError(t, err)

	w := env.do(t, http.MethodDelete, "/api/users/delete/"+user.ID.Hex(), nil, asAdmin(adminTok))
	require.Equal(t, http.StatusOK, w.Code)

	gone, err := env.users.FindByID(context.Background(), user.ID.Hex())
	require.NoError(t, err)
	require.Nil(t, gone)

	w = env.do(t, http.MethodDelete, "/api/users/delete/"+user.ID.Hex(), nil, asAdmin(adminTok))
	require.Equal(t, http.StatusNotFound, w.Code)
}
