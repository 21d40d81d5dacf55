package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"bilelaskri123/shop-api/internal/model"
	"bilelaskri123/shop-api/pkg/security"
	"bilelaskri123/shop-api/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%v?mode=memory&cache=shared", util.RandStr(8))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}))

	return db
}

// probe wires a middleware in front of a handler that echoes the
// identity attached to the context
func probe(mw gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(NewRequestIDMiddleware())
	r.GET("/probe", mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userID":   c.GetString("userID"),
			"userRole": c.GetString("userRole"),
		})
	})

	return r
}

func doProbe(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func TestRequireAuth(t *testing.T) {
	viper.Set("jwt.secret", "test-secret")
	viper.Set("jwt.ttl", "1h")

	r := probe(RequireAuth())

	token, err := security.MakeSessionToken("u1", model.RoleNormalUser)
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		w := doProbe(r, "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"userID":"u1"`)
	})

	t.Run("missing header", func(t *testing.T) {
		w := doProbe(r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		w := doProbe(r, "Basic "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bare token without scheme", func(t *testing.T) {
		w := doProbe(r, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := doProbe(r, "Bearer garbage")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireRoles(t *testing.T) {
	viper.Set("jwt.secret", "test-secret")
	viper.Set("jwt.ttl", "1h")

	db := newTestDB(t)

	admin := model.User{ID: "admin1", Email: "admin@test.local", PasswordHash: "x", Role: model.RoleAdmin, Verified: true}
	normal := model.User{ID: "user1", Email: "user@test.local", PasswordHash: "x", Role: model.RoleNormalUser, Verified: true}
	require.NoError(t, db.Create(&admin).Error)
	require.NoError(t, db.Create(&normal).Error)

	adminToken, err := security.MakeSessionToken(admin.ID, admin.Role)
	require.NoError(t, err)

	userToken, err := security.MakeSessionToken(normal.ID, normal.Role)
	require.NoError(t, err)

	t.Run("admin passes admin gate", func(t *testing.T) {
		w := doProbe(probe(RequireRoles(db, model.RoleAdmin)), "Bearer "+adminToken)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"userRole":"ADMIN"`)
	})

	t.Run("normal user blocked by admin gate", func(t *testing.T) {
		w := doProbe(probe(RequireRoles(db, model.RoleAdmin)), "Bearer "+userToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("either role passes shared gate", func(t *testing.T) {
		r := probe(RequireRoles(db, model.RoleAdmin, model.RoleNormalUser))

		assert.Equal(t, http.StatusOK, doProbe(r, "Bearer "+adminToken).Code)
		assert.Equal(t, http.StatusOK, doProbe(r, "Bearer "+userToken).Code)
	})

	t.Run("no declared roles denies everyone", func(t *testing.T) {
		w := doProbe(probe(RequireRoles(db)), "Bearer "+adminToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing header", func(t *testing.T) {
		w := doProbe(probe(RequireRoles(db, model.RoleAdmin)), "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("stale token of deleted user", func(t *testing.T) {
		ghost := model.User{ID: "ghost1", Email: "ghost@test.local", PasswordHash: "x", Role: model.RoleAdmin}
		require.NoError(t, db.Create(&ghost).Error)

		ghostToken, err := security.MakeSessionToken(ghost.ID, ghost.Role)
		require.NoError(t, err)

		require.NoError(t, db.Delete(&ghost).Error)

		w := doProbe(probe(RequireRoles(db, model.RoleAdmin)), "Bearer "+ghostToken)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("live role wins over token role", func(t *testing.T) {
		demoted := model.User{ID: "demoted1", Email: "demoted@test.local", PasswordHash: "x", Role: model.RoleAdmin}
		require.NoError(t, db.Create(&demoted).Error)

		// Token minted while still an admin
		demotedToken, err := security.MakeSessionToken(demoted.ID, model.RoleAdmin)
		require.NoError(t, err)

		require.NoError(t, db.Model(&demoted).Update("role", model.RoleNormalUser).Error)

		w := doProbe(probe(RequireRoles(db, model.RoleAdmin)), "Bearer "+demotedToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
