package app

import (
	"context"
	"crypto/sha256"
	"edu_portal/internal/config"
	"edu_portal/internal/controller"
	"edu_portal/internal/middleware"
	"edu_portal/internal/repository"
	"edu_portal/internal/service"
	"edu_portal/internal/util"
	"edu_portal/internal/view"
	"edu_portal/pkg/apiclient"
	"edu_portal/pkg/configwatcher"
	"edu_portal/pkg/database"
	"edu_portal/pkg/logger"
	"edu_portal/pkg/monitoring"
	"edu_portal/pkg/security"
	"edu_portal/pkg/session"
	"edu_portal/pkg/tracing"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/securecookie"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	Redis    *redis.Client
	Backend  *apiclient.Client
	Sessions session.Store

	limiter         *security.RateLimiter
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	mission *repository.MissionRepository
	course  *repository.CourseRepository
	user    *repository.UserRepository
	auth    *repository.AuthRepository
	admin   *repository.AdminRepository
	payment *repository.PaymentRepository
}

type services struct {
	mission *service.MissionService
	auth    *service.AuthService
	user    *service.UserService
	course  *service.CourseService
	admin   *service.AdminService
	payment *service.PaymentService
}

type controllers struct {
	pages   *controller.Pages
	mission *controller.MissionController
	auth    *controller.AuthController
	user    *controller.UserController
	course  *controller.CourseController
	admin   *controller.AdminController
	payment *controller.PaymentController
	health  *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) applyConfig(cfg *config.Config) {
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) initRepositories(backend *apiclient.Client) *repositories {
	return &repositories{
		mission: repository.NewMissionRepository(backend),
		course:  repository.NewCourseRepository(backend),
		user:    repository.NewUserRepository(backend),
		auth:    repository.NewAuthRepository(backend),
		admin:   repository.NewAdminRepository(backend),
		payment: repository.NewPaymentRepository(backend),
	}
}

func (a *App) initServices(repos *repositories, provider service.PaymentProvider) *services {
	return &services{
		mission: service.NewMissionService(repos.mission),
		auth:    service.NewAuthService(repos.auth, repos.user),
		user:    service.NewUserService(repos.user),
		course:  service.NewCourseService(repos.course),
		admin:   service.NewAdminService(repos.admin, repos.course, repos.mission),
		payment: service.NewPaymentService(repos.payment, repos.course, provider),
	}
}

func (a *App) initControllers(s *services, pages *controller.Pages, pinger controller.Pinger) *controllers {
	return &controllers{
		pages:   pages,
		mission: controller.NewMissionController(pages, s.mission),
		auth:    controller.NewAuthController(pages, s.auth),
		user:    controller.NewUserController(pages, s.user),
		course:  controller.NewCourseController(pages, s.course),
		admin:   controller.NewAdminController(pages, s.admin),
		payment: controller.NewPaymentController(pages, s.payment),
		health:  controller.NewHealthController(a.Backend, pinger),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config, csrfKey []byte) {
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}
	router.Use(monitoring.MetricsMiddleware())

	router.Use(security.CORS(cfg.Security.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(a.limiter.Middleware())

	if cfg.Security.CSRFEnabled {
		router.Use(security.CSRF(csrfKey, cfg.Session.Secure))
	}
}

// NewApp 初始化日志、会话存储和链路追踪，然后组装路由
func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	opts := session.Options{
		Name:   cfg.Session.Name,
		MaxAge: cfg.Session.MaxAge,
		Secure: cfg.Session.Secure,
	}
	keys := sessionKeys(cfg.Session.Secret)

	var (
		rdb    *redis.Client
		store  session.Store
		pinger controller.Pinger
	)
	switch cfg.Session.Store {
	case util.SessionStoreRedis:
		var err error
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("init redis: %w", err)
		}
		rs := session.NewRedisStore(rdb, opts, time.Duration(cfg.Session.RedisTTL)*time.Hour, keys...)
		store, pinger = rs, rs
	default:
		store = session.NewCookieStore(opts, keys...)
	}

	app, err := newApp(cfg, store, pinger)
	if err != nil {
		return nil, err
	}
	app.Redis = rdb

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(&cfg.Tracing)
		if err != nil {
			return nil, fmt.Errorf("init tracing: %w", err)
		}
		app.tracer = tp
	}

	return app, nil
}

func newApp(cfg *config.Config, store session.Store, pinger controller.Pinger) (*App, error) {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	// 监控初始化
	monitoring.Init()

	backend := apiclient.New(cfg.Backend.BaseURL, cfg.Backend.Timeout)
	providerClient := apiclient.New(cfg.Payment.ProviderURL, cfg.Backend.Timeout)

	app := &App{
		Config:   cfg,
		Backend:  backend,
		Sessions: store,
		limiter:  security.NewRateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute),
	}

	repos := app.initRepositories(backend)
	services := app.initServices(repos, service.NewHTTPPaymentProvider(providerClient, cfg.Payment.APISecret))
	controllers := app.initControllers(services, controller.NewPages(renderer, store), pinger)

	router := gin.New()
	app.Router = router
	app.setupMiddlewares(router, cfg, csrfKey(cfg.Security.CSRFKey))
	router.Use(middleware.Session(store, services.auth))
	app.registerRoutes(router, controllers)

	app.RegisterConfigCallback(logger.SetLevel)
	app.RegisterConfigCallback(func(c *config.Config) {
		backend.Reconfigure(c.Backend.BaseURL, c.Backend.Timeout)
		providerClient.Reconfigure(c.Payment.ProviderURL, c.Backend.Timeout)
	})

	return app, nil
}

// sessionKeys 未配置密钥时（仅 debug）使用随机密钥，重启后所有会话失效
func sessionKeys(secret string) [][]byte {
	if secret == "" {
		logger.Log.Warn("session secret not configured, using a random key")
		return [][]byte{securecookie.GenerateRandomKey(64), securecookie.GenerateRandomKey(32)}
	}
	block := sha256.Sum256([]byte(secret))
	return [][]byte{[]byte(secret), block[:]}
}

func csrfKey(key string) []byte {
	if len(key) == 32 {
		return []byte(key)
	}
	logger.Log.Warn("csrf key is not 32 bytes, using a random key")
	return securecookie.GenerateRandomKey(32)
}

func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go a.limiter.Run(ctx)

	if a.Config.ConfigPath != "" {
		go func() {
			if err := configwatcher.WatchConfig(ctx, a.Config.ConfigPath, a.applyConfig); err != nil {
				logger.Log.Warn("config watcher stopped", zap.Error(err))
			}
		}()
	}

	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}
	logger.Log.Info("Shutting down server...")

	// 等待进行中的请求结束（最长 5 秒）
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			logger.Log.Error("Failed to close redis", zap.Error(err))
		}
	}

	logger.Log.Info("Server exiting")
	return nil
}
