// Package app wires the HTTP endpoints together
package app

import (
	"fmt"
	"strings"
	"time"

	"bilelaskri123/shop-api/app/product"
	"bilelaskri123/shop-api/app/review"
	"bilelaskri123/shop-api/app/root"
	"bilelaskri123/shop-api/app/upload"
	"bilelaskri123/shop-api/app/user"
	"bilelaskri123/shop-api/aws"
	"bilelaskri123/shop-api/db"
	"bilelaskri123/shop-api/internal"
	"bilelaskri123/shop-api/internal/model"
	"bilelaskri123/shop-api/internal/service"
	"bilelaskri123/shop-api/pkg/middleware"
	"bilelaskri123/shop-api/pkg/security"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const gray = "\x1b[90m"
const reset = "\x1b[0m"

// TODO: use redis
var store = persist.NewMemoryStore(time.Minute)

func NewRouter() (*gin.Engine, *internal.Deps, error) {
	makeLogger()

	d := &internal.Deps{
		Argon: security.New(),
		Mail:  service.SMTPMailer{},
	}

	database, err := db.New()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	d.DB = database

	s3, err := aws.NewS3()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize S3 client, %w", err)
	}
	d.Uploader = service.NewUploader(s3)

	router := gin.New()

	origins := strings.Split(viper.GetString("host.cors"), ",")

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	router.MaxMultipartMemory = 5 << 20

	rateLimit := viper.GetInt("security.rate_limit")
	maxUploadSize := viper.GetInt64("upload.max_size")

	auth := middleware.RequireAuth()
	rateLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: rateLimit,
		Burst:             rateLimit * 2,
		CleanupInterval:   time.Second,
	})

	m := router.Group("/api", rateLimiter)
	{
		// HEAD /api/heartbeat			-> Used to check if the server is alive
		m.HEAD("/heartbeat", root.Heartbeat)

		// GET /api/validate			-> Validates a session token
		m.GET("/validate", auth, root.Validate)
	}

	u := m.Group("/users", middleware.BodySizeLimiter(1<<20))
	{
		// POST /api/users			-> Registers a new user
		u.POST("", func(c *gin.Context) { user.Register(c, d) })

		// POST /api/users/login		-> Logs in a user and returns a session token
		u.POST("/login", func(c *gin.Context) { user.Login(c, d) })

		// GET /api/users/verify-email		-> Consumes a verification link
		u.GET("/verify-email", func(c *gin.Context) { user.VerifyEmail(c, d) })

		// POST /api/users/forgot-password	-> Requests a password reset link
		u.POST("/forgot-password", func(c *gin.Context) { user.ForgotPassword(c, d) })

		// GET /api/users/reset-password	-> Checks a reset link without consuming it
		u.GET("/reset-password", func(c *gin.Context) { user.CheckResetLink(c, d) })

		// POST /api/users/reset-password	-> Consumes a reset link and sets the new password
		u.POST("/reset-password", func(c *gin.Context) { user.ResetPassword(c, d) })

		// GET /api/users/current		-> Returns the caller's own record
		u.GET("/current", auth, func(c *gin.Context) { user.Current(c, d) })

		// GET /api/users			-> Lists all users
		u.GET("", middleware.RequireRoles(database, model.RoleAdmin),
			func(c *gin.Context) { user.List(c, d) })

		// PUT /api/users			-> Updates the caller's own account
		u.PUT("", middleware.RequireRoles(database, model.RoleAdmin, model.RoleNormalUser),
			func(c *gin.Context) { user.Update(c, d) })

		// DELETE /api/users/:id		-> Deletes an account (owner or admin)
		u.DELETE("/:id", middleware.RequireRoles(database, model.RoleAdmin, model.RoleNormalUser),
			func(c *gin.Context) { user.Delete(c, d) })
	}

	pi := m.Group("/users/profile-image", auth, middleware.BodySizeLimiter(maxUploadSize))
	{
		// POST /api/users/profile-image	-> Uploads a new profile image
		pi.POST("", func(c *gin.Context) { user.UploadProfileImage(c, d) })

		// GET /api/users/profile-image		-> Streams the caller's profile image
		pi.GET("", func(c *gin.Context) { user.GetProfileImage(c, d) })

		// DELETE /api/users/profile-image	-> Removes the caller's profile image
		pi.DELETE("", func(c *gin.Context) { user.DeleteProfileImage(c, d) })
	}

	p := m.Group("/products")
	{
		// POST /api/products			-> Adds a product to the catalogue
		p.POST("", middleware.RequireRoles(database, model.RoleAdmin), middleware.BodySizeLimiter(1<<20),
			func(c *gin.Context) { product.Create(c, d) })

		// GET /api/products			-> Lists the catalogue with filters
		p.GET("", cacheFor(30), func(c *gin.Context) { product.List(c, d) })

		// GET /api/products/:id		-> Returns a single product
		p.GET("/:id", cacheFor(30), func(c *gin.Context) { product.Fetch(c, d) })

		// PUT /api/products/:id		-> Updates a product
		p.PUT("/:id", middleware.RequireRoles(database, model.RoleAdmin), middleware.BodySizeLimiter(1<<20),
			func(c *gin.Context) { product.Update(c, d) })

		// DELETE /api/products/:id		-> Deletes a product and its reviews
		p.DELETE("/:id", middleware.RequireRoles(database, model.RoleAdmin),
			func(c *gin.Context) { product.Delete(c, d) })
	}

	anyRole := middleware.RequireRoles(database, model.RoleAdmin, model.RoleNormalUser)

	r := m.Group("/reviews", middleware.BodySizeLimiter(1<<20))
	{
		// POST /api/reviews/:productId		-> Creates a review for a product
		r.POST("/:productId", anyRole, func(c *gin.Context) { review.Create(c, d) })

		// GET /api/reviews			-> Lists all reviews
		r.GET("", middleware.RequireRoles(database, model.RoleAdmin),
			func(c *gin.Context) { review.List(c, d) })

		// PUT /api/reviews/:id			-> Updates a review (author only)
		r.PUT("/:id", anyRole, func(c *gin.Context) { review.Update(c, d) })

		// DELETE /api/reviews/:id		-> Deletes a review (author or admin)
		r.DELETE("/:id", anyRole, func(c *gin.Context) { review.Delete(c, d) })
	}

	up := m.Group("/uploads")
	{
		// POST /api/uploads			-> Uploads an image
		up.POST("", auth, middleware.BodySizeLimiter(maxUploadSize),
			func(c *gin.Context) { upload.Upload(c, d) })

		// GET /api/uploads/:key		-> Serves an uploaded image
		up.GET("/:key", func(c *gin.Context) { upload.Serve(c, d) })
	}

	// Unverified accounts have a week to confirm their email, so
	// checking once a day is plenty
	service.AccountCleanup(time.Hour*24, database)

	return router, d, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()

	if lvl, err := zapcore.ParseLevel(viper.GetString("app.log_level")); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
