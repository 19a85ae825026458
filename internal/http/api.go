package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"super-control/internal/auth"
	"super-control/internal/metrics"
	"super-control/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users   service.UserService
	lists   service.SuperListService
	images  service.ImageService
	auth    *auth.Service
	metrics *metrics.Metrics
	logger  *logrus.Logger
}

// Dependencies groups what the handler needs. Metrics may be nil.
type Dependencies struct {
	Users   service.UserService
	Lists   service.SuperListService
	Images  service.ImageService
	Auth    *auth.Service
	Metrics *metrics.Metrics
	Logger  *logrus.Logger
}

func NewHandler(deps Dependencies) *Handler {
	logger := deps.Logger
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		users:   deps.Users,
		lists:   deps.Lists,
		images:  deps.Images,
		auth:    deps.Auth,
		metrics: deps.Metrics,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware(), requestLogger(h.logger), h.metrics.Middleware())

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})
	if h.metrics != nil {
		router.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}

	protected := h.requireSession()

	users := router.Group("/users")
	{
		users.POST("/signup", h.signup)
		users.GET("", h.listUsers)
		users.GET("/:username", h.getUser)
		users.PATCH("/:username", protected, h.updateUser)
		users.DELETE("/:username", protected, h.deleteUser)
	}

	login := router.Group("/login")
	{
		login.POST("/token", h.loginForToken)
		login.GET("/users/me", protected, h.me)
	}

	super := router.Group("/super", protected)
	{
		super.GET("", h.listSuperLists)
		super.POST("", h.createSuperList)
		super.POST("/url", h.createSuperListFromURL)
		super.GET("/:id", h.getSuperList)
		super.PATCH("/:id", h.updateSuperList)
		super.POST("/:id", h.updateSuperList)
		super.DELETE("/:id", h.deleteSuperList)
	}

	images := router.Group("/image", protected)
	{
		images.POST("", h.uploadImage)
		images.GET("", h.listImages)
		images.DELETE("/:name", h.deleteImage)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "WWW-Authenticate")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := logger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		})
		if user, ok := currentUser(c); ok {
			entry = entry.WithField("username", user.Username)
		}
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			entry.Warn("request failed")
		default:
			entry.Debug("request served")
		}
	}
}
