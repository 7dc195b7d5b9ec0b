package http

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/geocoder89/bloghub/internal/config"
	"github.com/geocoder89/bloghub/internal/domain/article"
	"github.com/geocoder89/bloghub/internal/domain/user"
	"github.com/geocoder89/bloghub/internal/http/handlers"
	"github.com/geocoder89/bloghub/internal/http/middlewares"
	"github.com/geocoder89/bloghub/internal/http/views"
	"github.com/geocoder89/bloghub/internal/observability"
	"github.com/geocoder89/bloghub/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type ArticleService interface {
	Create(ctx context.Context, req article.CreateArticleRequest) (article.Article, error)
	List(ctx context.Context) ([]article.Article, error)
	GetByID(ctx context.Context, id int64) (article.Article, error)
	Update(ctx context.Context, id int64, req article.UpdateArticleRequest) (article.Article, error)
	DeleteByID(ctx context.Context, id int64) error
}

type UserService interface {
	Register(ctx context.Context, req user.RegisterUserRequest) (int64, error)
}

// Deps is everything the router needs that main builds from config.
type Deps struct {
	Articles ArticleService
	Users    UserService
	Gate     *session.Gate
	Policy   session.Policy

	// Prom and Gatherer may be nil; metrics are then not collected/served.
	Prom     *observability.Prom
	Gatherer prometheus.Gatherer

	// Ready holds the dependency pings behind /readyz, keyed by name.
	Ready map[string]handlers.Pinger
}

func NewRouter(log *slog.Logger, cfg config.Config, deps Deps) (*gin.Engine, error) {
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// nil trusts nobody, so ClientIP is the socket address and the login
	// limiter cannot be reset with a forged X-Forwarded-For
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	if err := views.Mount(r); err != nil {
		return nil, err
	}

	// middleware, outermost first

	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(observability.ServiceName))
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	if deps.Prom != nil {
		r.Use(deps.Prom.GinHandleMiddleware())
	}
	r.Use(middlewares.SecurityHeaders(cfg.Env == "prod"))
	r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(cfg.MaxBodyBytes))
	r.Use(middlewares.RequireSession(deps.Gate, deps.Policy, cfg.SessionCookie, log))

	// health + metrics
	health := handlers.NewHealthHandler(deps.Ready)
	r.GET("/healthz", health.Healthz)
	r.GET("/readyz", health.Readyz)
	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// sessions and signup
	loginLimiter := middlewares.NewRateLimiter(cfg.LoginRateLimit, time.Minute)
	limit := loginLimiter.RateLimiterMiddleware(middlewares.KeyByIP)

	sessions := handlers.NewSessionHandler(deps.Gate, deps.Policy, cfg.SessionCookie, cfg.Env == "prod", deps.Prom)
	users := handlers.NewUsersHandler(deps.Users, deps.Policy.LoginPath)

	r.GET("/login", sessions.LoginPage)
	r.POST("/login", limit, sessions.Login)
	r.POST("/logout", sessions.Logout)
	r.GET("/signup", sessions.SignupPage)
	r.POST("/user", limit, users.Register)

	// pages
	pages := handlers.NewPagesHandler(deps.Articles)
	r.GET("/articles", pages.Articles)
	r.GET("/new-article", pages.NewArticle)

	// article API
	articles := handlers.NewArticlesHandler(deps.Articles)
	api := r.Group("/api", middlewares.RequireJSON())
	{
		api.POST("/articles", articles.CreateArticle)
		api.GET("/articles", articles.ListArticles)
		api.GET("/articles/:id", articles.GetArticleByID)
		api.PUT("/articles/:id", articles.UpdateArticle)
		api.DELETE("/articles/:id", articles.DeleteArticle)
	}

	return r, nil
}
