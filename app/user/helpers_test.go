package user

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"bilelaskri123/shop-api/internal"
	"bilelaskri123/shop-api/internal/model"
	"bilelaskri123/shop-api/pkg/middleware"
	"bilelaskri123/shop-api/pkg/security"
	"bilelaskri123/shop-api/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeMailer records outgoing mails instead of talking to an SMTP server
type fakeMailer struct {
	verifCount     int
	resetCount     int
	lastVerifToken string
	lastResetToken string
	lastUserID     string
	lastSendTo     string
	fail           bool
}

func (f *fakeMailer) SendVerificationMail(sendTo, userID, token string) error {
	if f.fail {
		return fmt.Errorf("smtp down")
	}

	f.verifCount++
	f.lastSendTo = sendTo
	f.lastUserID = userID
	f.lastVerifToken = token
	return nil
}

func (f *fakeMailer) SendResetPasswordMail(sendTo, userID, token string) error {
	if f.fail {
		return fmt.Errorf("smtp down")
	}

	f.resetCount++
	f.lastSendTo = sendTo
	f.lastUserID = userID
	f.lastResetToken = token
	return nil
}

type testEnv struct {
	router *gin.Engine
	d      *internal.Deps
	mail   *fakeMailer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	viper.Set("jwt.secret", "test-secret")
	viper.Set("jwt.ttl", "1h")

	dsn := fmt.Sprintf("file:%v?mode=memory&cache=shared", util.RandStr(8))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Product{}, &model.Review{}))

	mail := &fakeMailer{}

	d := &internal.Deps{
		DB:    db,
		Argon: security.New(),
		Mail:  mail,
	}

	router := gin.New()
	router.Use(middleware.NewRequestIDMiddleware())

	u := router.Group("/api/users")
	{
		u.POST("", func(c *gin.Context) { Register(c, d) })
		u.POST("/login", func(c *gin.Context) { Login(c, d) })
		u.GET("/verify-email", func(c *gin.Context) { VerifyEmail(c, d) })
		u.POST("/forgot-password", func(c *gin.Context) { ForgotPassword(c, d) })
		u.GET("/reset-password", func(c *gin.Context) { CheckResetLink(c, d) })
		u.POST("/reset-password", func(c *gin.Context) { ResetPassword(c, d) })
		u.GET("/current", middleware.RequireAuth(), func(c *gin.Context) { Current(c, d) })
		u.GET("", middleware.RequireRoles(db, model.RoleAdmin), func(c *gin.Context) { List(c, d) })
		u.PUT("", middleware.RequireRoles(db, model.RoleAdmin, model.RoleNormalUser), func(c *gin.Context) { Update(c, d) })
		u.DELETE("/:id", middleware.RequireRoles(db, model.RoleAdmin, model.RoleNormalUser), func(c *gin.Context) { Delete(c, d) })
	}

	return &testEnv{router: router, d: d, mail: mail}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
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

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	return w
}

func parseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	out := map[string]any{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))

	return out
}

// register creates an account through the endpoint and returns its ID
func (e *testEnv) register(t *testing.T, username, email, password string) string {
	t.Helper()

	w := e.do(t, http.MethodPost, "/api/users", gin.H{
		"username": username,
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	return parseBody(t, w)["userID"].(string)
}

// registerVerified registers and consumes the verification link
func (e *testEnv) registerVerified(t *testing.T, username, email, password string) string {
	t.Helper()

	id := e.register(t, username, email, password)

	w := e.do(t, http.MethodGet,
		fmt.Sprintf("/api/users/verify-email?user_id=%v&token=%v", id, e.mail.lastVerifToken),
		nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	return id
}

// login performs a login and returns the session token
func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()

	w := e.do(t, http.MethodPost, "/api/users/login", gin.H{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	token, ok := parseBody(t, w)["token"].(string)
	require.True(t, ok, "login response has no token: %v", w.Body.String())

	return token
}

func (e *testEnv) promoteToAdmin(t *testing.T, userID string) {
	t.Helper()

	err := e.d.DB.Model(model.User{}).
		Where("id = ?", userID).
		Update("role", model.RoleAdmin).
		Error
	require.NoError(t, err)
}
