package routes

import (
	"net/http"
	"time"

	"pinboard/pinboard/controllers"
	"pinboard/pinboard/middlewares"
	"pinboard/pinboard/services/auth"
	"pinboard/pinboard/utils/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Deps is everything the HTTP surface needs, built once in main.
type Deps struct {
	Auth   *controllers.AuthController
	Users  *controllers.UserController
	Posts  *controllers.PostController
	Boards *controllers.BoardController
	Health *controllers.HealthController

	Issuer *auth.TokenIssuer
	Cookie auth.CookieOptions

	CORSOrigins    []string
	AuthRateLimit  int
	MaxUploadBytes int64
	RequestTimeout time.Duration
}

func NewRouter(d Deps) http.Handler {
	if d.RequestTimeout <= 0 {
		d.RequestTimeout = 60 * time.Second
	}
	authMW := middlewares.AuthMiddleware(d.Issuer, d.Cookie.Name)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(d.RequestTimeout))
	if len(d.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   d.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Group(AuthRoutes(d.Auth, d.Cookie, d.MaxUploadBytes, d.AuthRateLimit))
	r.Group(UserRoutes(d.Users, authMW, d.MaxUploadBytes))
	r.Mount("/posts", PostRoutes(d.Posts, authMW, d.MaxUploadBytes))
	r.Mount("/boards", BoardRoutes(d.Boards, authMW))
	r.Mount("/healthz", HealthRoutes(d.Health))
	return r
}
