package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/forgiv/bloggy-server/internal/auth"
	"github.com/forgiv/bloggy-server/internal/config"
	apperr "github.com/forgiv/bloggy-server/internal/errors"
	"github.com/forgiv/bloggy-server/internal/handler"
	"github.com/forgiv/bloggy-server/internal/logger"
	"github.com/forgiv/bloggy-server/internal/metrics"
)

// Handlers groups the HTTP handlers mounted under /api.
type Handlers struct {
	Auth     *handler.AuthHandler
	Users    *handler.UserHandler
	Posts    *handler.PostHandler
	Comments *handler.CommentHandler
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log logrus.FieldLogger,
	m *metrics.Metrics,
	jwtService *auth.JWTService,
	h Handlers,
) {
	e.HTTPErrorHandler = ErrorHandler(cfg.IsProduction(), log)
	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(middleware.RequestID())
	e.Use(m.Middleware())
	e.Use(logger.RequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  []string{cfg.ClientOrigin},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders: []string{echo.HeaderLocation},
	}))

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	if m != nil {
		e.GET("/metrics", m.Handler())
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Bearer guard: rejects missing, malformed and expired tokens with 401.
	bearer := echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(_ echo.Context, token string) (interface{}, error) {
			return jwtService.ParseToken(token)
		},
		ContextKey: auth.TokenContextKey,
		ErrorHandler: func(_ echo.Context, err error) error {
			return apperr.Unauthenticated(err)
		},
	})
	secured := []echo.MiddlewareFunc{bearer, h.Auth.Identify}

	api := e.Group("/api")

	// Public routes
	api.POST("/users", h.Users.Register)
	api.GET("/users/:username", h.Users.Profile)
	api.GET("/users/:username/posts", h.Users.Posts)
	api.POST("/login", h.Auth.Login)
	api.GET("/comments/:username/:slug", h.Comments.ListForPost)

	// Refresh only needs a verified token, not a resolvable user.
	api.POST("/refresh", h.Auth.Refresh, bearer)

	// Secured routes
	api.GET("/users", h.Users.Me, secured...)

	api.GET("/posts", h.Posts.List, secured...)
	api.GET("/posts/:id", h.Posts.Get, secured...)
	api.POST("/posts", h.Posts.Create, secured...)
	api.PUT("/posts/:id", h.Posts.Update, secured...)
	api.DELETE("/posts/:id", h.Posts.Delete, secured...)

	api.GET("/comments", h.Comments.List, secured...)
	api.GET("/comments/:id", h.Comments.Get, secured...)
	api.POST("/comments", h.Comments.Create, secured...)
	api.PUT("/comments/:id", h.Comments.Update, secured...)
	api.DELETE("/comments/:id", h.Comments.Delete, secured...)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
