package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"esselab.org/esse-web/internal/cache"
	"esselab.org/esse-web/internal/cms"
	"esselab.org/esse-web/internal/config"
	handlersPkg "esselab.org/esse-web/internal/handlers"
	"esselab.org/esse-web/internal/i18n"
	mw "esselab.org/esse-web/internal/middleware"
	"esselab.org/esse-web/internal/observability"
	"esselab.org/esse-web/internal/site"
)

var (
	templatesDir = "templates"
	publicDir    = "public"
	localesDir   = "locales"
	// devMode reparses templates on every request.
	devMode   bool
	tmplCache *templateSet

	i18nBundle   *i18n.Bundle
	cmsClient    *cms.Client
	siteSettings = site.Default()
	siteBaseURL  = "http://localhost:8080"
	analytics    handlersPkg.Analytics
)

func main() {
	var envFile string
	flag.StringVar(&envFile, "env-file", ".env", "dotenv file to load before the environment")
	flag.Parse()

	cfg, err := config.Load(config.WithEnvFile(envFile))
	if err != nil {
		// the logger is not configured yet
		_, _ = os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger, err := observability.NewLogger(cfg.Log.Level)
	if err != nil {
		_, _ = os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := setup(cfg, logger); err != nil {
		logger.Fatal("startup failed", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           newRouter(logger),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("web listening",
			zap.String("addr", cfg.Server.Addr),
			zap.Bool("dev", devMode),
			zap.String("cms", cfg.CMS.URL),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	logger.Info("web stopped")
}

// setup initialises the package globals from configuration.
func setup(cfg config.Config, logger *zap.Logger) error {
	templatesDir = cfg.Server.TemplatesDir
	publicDir = cfg.Server.PublicDir
	localesDir = cfg.Server.LocalesDir
	devMode = cfg.Server.Dev
	siteBaseURL = cfg.Site.BaseURL
	analytics = handlersPkg.NewAnalytics(cfg.Analytics)

	store, err := newCache(cfg.Cache, logger)
	if err != nil {
		return err
	}
	cmsClient = cms.NewClient(cfg.CMS.URL,
		cms.WithToken(cfg.CMS.Token),
		cms.WithTimeout(cfg.CMS.Timeout),
		cms.WithMediaBase(cfg.CMS.MediaURL),
		cms.WithCache(store, cfg.Cache.TTL),
		cms.WithLogger(logger),
	)

	if i18nBundle, err = i18n.Load(localesDir, i18n.French, i18n.Supported); err != nil {
		return err
	}
	if siteSettings, err = site.Load(cfg.Site.File); err != nil {
		return err
	}

	if !devMode {
		tc, err := parseTemplates()
		if err != nil {
			return err
		}
		tmplCache = tc
	}
	return nil
}

func newCache(cfg config.CacheConfig, logger *zap.Logger) (cache.Cache, error) {
	switch {
	case cfg.TTL <= 0:
		return cache.NewNoop(), nil
	case cfg.RedisURL != "":
		rc, err := cache.NewRedis(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := rc.Ping(ctx); err != nil {
			logger.Warn("redis unavailable, falling back to memory cache", zap.Error(err))
			_ = rc.Close()
			return cache.NewMemory(), nil
		}
		return rc, nil
	default:
		return cache.NewMemory(), nil
	}
}

// newRouter wires middleware and routes. Every page lives under a two letter
// locale prefix; the bare root redirects to the preferred locale.
func newRouter(logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	// RealIP trusts X-Forwarded-For; deploy behind a proxy that sets it.
	r.Use(middleware.RealIP)
	r.Use(observability.TraceMiddleware)
	r.Use(mw.Logger(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.HTMX)
	r.Use(mw.VaryLocale)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/assets/*", mw.AssetsWithCache(filepath.Join(publicDir, "assets"), "/assets"))
	r.Get("/robots.txt", RobotsHandler)
	r.Get("/sitemap.xml", SitemapHandler)
	r.Get("/", mw.RedirectToLocale(i18nBundle))

	// registered before the locale subrouter so it inherits the handler
	r.NotFound(NotFoundHandler)

	r.Route("/{locale:[a-z]{2}}", func(r chi.Router) {
		r.Use(mw.Locale)
		r.Get("/", HomeHandler)
		r.Get("/partners/carousel", PartnersCarouselFrag)

		r.Get("/news", NewsIndexHandler)
		r.Get("/news/{slug}", NewsDetailHandler)
		r.Get("/events", EventsIndexHandler)
		r.Get("/events/{slug}", EventDetailHandler)
		r.Get("/members", MembersIndexHandler)
		r.Get("/members/{slug}", MemberDetailHandler)
		r.Get("/teams", TeamsIndexHandler)
		r.Get("/teams/{slug}", TeamDetailHandler)
		r.Get("/projects", ProjectsIndexHandler)
		r.Get("/projects/{slug}", ProjectDetailHandler)
		r.Get("/publications", PublicationsHandler)
		r.Get("/recruitments", RecruitmentsIndexHandler)
		r.Get("/recruitments/{slug}", RecruitmentDetailHandler)
	})
	return r
}
