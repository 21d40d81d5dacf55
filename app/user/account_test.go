package user

import (
	"encoding/json"
	"net/http"
	"testing"

	"bilelaskri123/shop-api/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrent(t *testing.T) {
	e := newTestEnv(t)

	id := e.registerVerified(t, "alice", "alice@example.com", "secret1")
	token := e.login(t, "alice@example.com", "secret1")

	w := e.do(t, http.MethodGet, "/api/users/current", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	body := parseBody(t, w)
	assert.Equal(t, id, body["id"])
	assert.Equal(t, "alice@example.com", body["email"])

	// Sensitive columns never leave in JSON
	raw := w.Body.String()
	assert.NotContains(t, raw, "password")
	assert.NotContains(t, raw, "PasswordHash")

	w = e.do(t, http.MethodGet, "/api/users/current", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestList_AdminOnly(t *testing.T) {
	e := newTestEnv(t)

	e.registerVerified(t, "alice", "alice@example.com", "secret1")
	bobID := e.registerVerified(t, "bob", "bob@example.com", "secret2")
	e.promoteToAdmin(t, bobID)

	aliceToken := e.login(t, "alice@example.com", "secret1")
	bobToken := e.login(t, "bob@example.com", "secret2")

	w := e.do(t, http.MethodGet, "/api/users", nil, aliceToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(t, http.MethodGet, "/api/users", nil, bobToken)
	require.Equal(t, http.StatusOK, w.Code)

	var users []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	assert.Len(t, users, 2)
}

func TestUpdate_OwnAccount(t *testing.T) {
	e := newTestEnv(t)

	id := e.registerVerified(t, "alice", "alice@example.com", "secret1")
	token := e.login(t, "alice@example.com", "secret1")

	w := e.do(t, http.MethodPut, "/api/users", gin.H{
		"username": "alice2",
		"password": "new-password",
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var u model.User
	require.NoError(t, e.d.DB.Where("id = ?", id).First(&u).Error)
	assert.Equal(t, "alice2", u.Username)

	// Password change took effect
	e.login(t, "alice@example.com", "new-password")

	w = e.do(t, http.MethodPut, "/api/users", gin.H{"password": "abc"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDelete_OwnerOrAdmin(t *testing.T) {
	e := newTestEnv(t)

	aliceID := e.registerVerified(t, "alice", "alice@example.com", "secret1")
	bobID := e.registerVerified(t, "bob", "bob@example.com", "secret2")
	adminID := e.registerVerified(t, "root", "root@example.com", "secret3")
	e.promoteToAdmin(t, adminID)

	aliceToken := e.login(t, "alice@example.com", "secret1")
	adminToken := e.login(t, "root@example.com", "secret3")

	// A normal user can't delete someone else
	w := e.do(t, http.MethodDelete, "/api/users/"+bobID, nil, aliceToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// But may delete themselves
	w = e.do(t, http.MethodDelete, "/api/users/"+aliceID, nil, aliceToken)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, e.d.DB.Model(model.User{}).Where("id = ?", aliceID).Count(&count).Error)
	assert.Zero(t, count)

	// Admins can delete anyone
	w = e.do(t, http.MethodDelete, "/api/users/"+bobID, nil, adminToken)
	assert.Equal(t, http.StatusOK, w.Code)

	w = e.do(t, http.MethodDelete, "/api/users/"+bobID, nil, adminToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDelete_RemovesOwnReviews(t *testing.T) {
	e := newTestEnv(t)

	aliceID := e.registerVerified(t, "alice", "alice@example.com", "secret1")
	token := e.login(t, "alice@example.com", "secret1")

	p := model.Product{Title: "gadget", Description: "a test gadget", Price: 10, UserID: aliceID}
	require.NoError(t, e.d.DB.Create(&p).Error)
	require.NoError(t, e.d.DB.Create(&model.Review{
		Rating:    5,
		Comment:   "mine",
		UserID:    aliceID,
		ProductID: p.ID,
	}).Error)

	w := e.do(t, http.MethodDelete, "/api/users/"+aliceID, nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, e.d.DB.Model(model.Review{}).Where("user_id = ?", aliceID).Count(&count).Error)
	assert.Zero(t, count)
}

// The stale token of a deleted account must stop working on gated routes
// immediately, not when it expires
func TestDeletedUserLockedOut(t *testing.T) {
	e := newTestEnv(t)

	aliceID := e.registerVerified(t, "alice", "alice@example.com", "secret1")
	token := e.login(t, "alice@example.com", "secret1")

	w := e.do(t, http.MethodDelete, "/api/users/"+aliceID, nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = e.do(t, http.MethodPut, "/api/users", gin.H{"username": "ghost"}, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
