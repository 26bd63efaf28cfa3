package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"coach-library-backend/internal/background"
	"coach-library-backend/internal/config"
	"coach-library-backend/internal/handlers"
	"coach-library-backend/internal/middleware"
	"coach-library-backend/internal/models"
	"coach-library-backend/internal/repository"
	"coach-library-backend/internal/service"
	"coach-library-backend/pkg/cache"
	"coach-library-backend/pkg/logger"
	"coach-library-backend/pkg/validator"
)

type Application struct {
	cfg *config.Config

	db    *gorm.DB
	cache *cache.Cache
	queue *background.Queue

	rateLimits *middleware.RateLimitManager

	repositories repositoryContainer
	services     serviceContainer
	handlers     handlerContainer

	router *gin.Engine
	server *http.Server
}

type repositoryContainer struct {
	User       repository.UserRepository
	UserToken  repository.UserTokenRepository
	Category   repository.CategoryRepository
	Content    repository.ContentRepository
	Engagement repository.EngagementRepository
	Landing    repository.LandingRepository
	Customer   repository.CustomerRepository
}

type serviceContainer struct {
	Auth       *service.AuthService
	User       *service.UserService
	Category   *service.CategoryService
	Content    *service.ContentService
	Engagement *service.EngagementService
	Landing    *service.LandingService
	Customer   *service.CustomerService
	Upload     *service.UploadService
	Email      *service.EmailService
}

type handlerContainer struct {
	Auth     *handlers.AuthHandler
	User     *handlers.UserHandler
	Category *handlers.CategoryHandler
	Content  *handlers.ContentHandler
	Web      *handlers.WebHandler
	Landing  *handlers.LandingHandler
	Customer *handlers.CustomerHandler
}

func New(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	app := &Application{cfg: cfg}

	if err := validator.Init(); err != nil {
		return nil, err
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.runMigrations(); err != nil {
		return nil, err
	}
	if err := app.createIndexes(); err != nil {
		return nil, err
	}

	app.initCache()

	app.queue = background.NewQueue(background.QueueConfig{
		WorkerCount: 2,
		QueueSize:   64,
	})
	app.queue.Start(context.Background())

	app.rateLimits = middleware.NewRateLimitManager(context.Background())

	app.initRepositories()
	app.initServices()
	app.initHandlers()
	app.initRouter()

	app.server = &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        app.router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	return app, nil
}

func (a *Application) Run() error {
	logger.Info("Server starting", map[string]interface{}{
		"port":        a.cfg.Port,
		"environment": a.cfg.Environment,
	})

	return a.server.ListenAndServe()
}

func (a *Application) Shutdown(ctx context.Context) error {
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return err
		}
	}

	if a.queue != nil {
		if err := a.queue.Shutdown(ctx); err != nil {
			logger.Error(err, "Failed to drain background queue", nil)
		}
	}

	if a.rateLimits != nil {
		a.rateLimits.Shutdown()
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			logger.Error(err, "Failed to close cache connection", nil)
		}
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	return nil
}

func (a *Application) Router() *gin.Engine {
	return a.router
}

func (a *Application) initDatabase() error {
	logger.Info("Connecting to database", nil)

	db, err := gorm.Open(postgres.Open(a.cfg.DatabaseURL), &gorm.Config{
		Logger: logger.NewGormLogger(),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	a.db = db
	return nil
}

func (a *Application) runMigrations() error {
	if a.db == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	logger.Info("Running database migrations", nil)

	if err := a.db.AutoMigrate(
		&models.User{},
		&models.UserToken{},
		&models.Category{},
		&models.CategoryTranslation{},
		&models.Content{},
		&models.ContentTranslation{},
		&models.VideoView{},
		&models.PdfDownload{},
		&models.LandingPage{},
		&models.CustomerDetail{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("Database migration completed", nil)
	return nil
}

func (a *Application) createIndexes() error {
	if a.db == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	logger.Info("Creating database indexes", nil)

	statements := []string{
		"CREATE INDEX IF NOT EXISTS idx_contents_status_featured ON contents(status, is_featured DESC) WHERE deleted_at IS NULL",
		"CREATE INDEX IF NOT EXISTS idx_contents_subcategory_status ON contents(subcategory_id, status) WHERE deleted_at IS NULL",
		"CREATE INDEX IF NOT EXISTS idx_categories_parent_status ON categories(parent_id, status) WHERE deleted_at IS NULL",
		"CREATE INDEX IF NOT EXISTS idx_content_translations_title_search ON content_translations(lower(title))",
		"CREATE INDEX IF NOT EXISTS idx_category_translations_name_search ON category_translations(lower(name))",
	}

	for _, stmt := range statements {
		if err := a.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

func (a *Application) initCache() {
	c, err := cache.NewCache(a.cfg.RedisURL, a.cfg.EnableCache)
	if err != nil {
		logger.Error(err, "Redis unavailable, continuing without cache", nil)
		c, _ = cache.NewCache("", false)
	}
	a.cache = c
}

func (a *Application) initRepositories() {
	a.repositories = repositoryContainer{
		User:       repository.NewUserRepository(a.db),
		UserToken:  repository.NewUserTokenRepository(a.db),
		Category:   repository.NewCategoryRepository(a.db),
		Content:    repository.NewContentRepository(a.db),
		Engagement: repository.NewEngagementRepository(a.db),
		Landing:    repository.NewLandingRepository(a.db),
		Customer:   repository.NewCustomerRepository(a.db),
	}
}

func (a *Application) initServices() {
	email := service.NewEmailService(a.cfg, a.queue)

	a.services = serviceContainer{
		Email: email,
		Auth: service.NewAuthService(
			a.repositories.User,
			a.repositories.UserToken,
			email,
			a.cfg.JWTSecret,
			time.Duration(a.cfg.AccessTokenTTL)*time.Minute,
			time.Duration(a.cfg.ResetCodeTTL)*time.Minute,
			a.cfg.BcryptCost,
		),
		User:       service.NewUserService(a.repositories.User, a.cfg.BcryptCost),
		Category:   service.NewCategoryService(a.repositories.Category, a.cache),
		Content:    service.NewContentService(a.repositories.Content, a.repositories.Category, a.repositories.Engagement, a.cache),
		Engagement: service.NewEngagementService(a.repositories.Content, a.repositories.Engagement),
		Landing:    service.NewLandingService(a.repositories.Landing, a.cache),
		Customer:   service.NewCustomerService(a.repositories.Customer),
		Upload:     service.NewUploadService(a.cfg.UploadDir, a.cfg.FileBaseURL, a.cfg.MaxUploadSize),
	}
}

func (a *Application) initHandlers() {
	a.handlers = handlerContainer{
		Auth:     handlers.NewAuthHandler(a.services.Auth),
		User:     handlers.NewUserHandler(a.services.User),
		Category: handlers.NewCategoryHandler(a.services.Category),
		Content:  handlers.NewContentHandler(a.services.Content),
		Web:      handlers.NewWebHandler(a.services.Content, a.services.Category, a.services.Landing, a.services.Engagement),
		Landing:  handlers.NewLandingHandler(a.services.Landing, a.services.Upload),
		Customer: handlers.NewCustomerHandler(a.services.Customer),
	}
}

func (a *Application) initRouter() {
	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinLogger())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RateLimitMiddleware(a.rateLimits, a.cfg))
	router.Use(middleware.LanguageMiddleware())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept-Language"},
		ExposeHeaders:    []string{"Content-Length", "Content-Language"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.Static("/upload", a.cfg.UploadDir)

	authRequired := middleware.AuthMiddleware(a.repositories.UserToken, a.repositories.User)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", a.handlers.Auth.Register)
			auth.POST("/login", a.handlers.Auth.AdminLogin)
			auth.POST("/forget-password", a.handlers.Auth.ForgotPassword)
			auth.POST("/check-reset-token", a.handlers.Auth.CheckResetToken)
			auth.POST("/reset-password", a.handlers.Auth.ResetPassword)
			auth.PATCH("/change-password", authRequired, a.handlers.Auth.ChangePassword)
			auth.GET("/refresh-token", authRequired, a.handlers.Auth.RefreshToken)
			auth.DELETE("/logout", authRequired, a.handlers.Auth.Logout)
		}

		user := v1.Group("/user", authRequired, middleware.AdminMiddleware())
		{
			user.GET("/users", a.handlers.User.List)
			user.POST("/user-store", a.handlers.User.Store)
			user.PATCH("/change-status/:username", a.handlers.User.ChangeStatus)
			user.PATCH("/change-password/:username", a.handlers.User.ChangePassword)
			user.DELETE("/user-delete/:id", a.handlers.User.Delete)
		}

		category := v1.Group("/category", authRequired, middleware.AdminMiddleware())
		{
			category.GET("/categories", a.handlers.Category.List)
			category.POST("/category-store", a.handlers.Category.Store)
			category.PATCH("/category-update/:slug", a.handlers.Category.Update)
			category.DELETE("/category-delete/:slug", a.handlers.Category.Delete)
			category.PATCH("/change-category-status/:slug", a.handlers.Category.ChangeStatus)
		}

		content := v1.Group("/content", authRequired, middleware.AdminMiddleware())
		{
			content.GET("/contents", a.handlers.Content.List)
			content.GET("/content-show/:slug", a.handlers.Content.Show)
			content.POST("/content-store", a.handlers.Content.Store)
			content.PATCH("/content-update/:slug", a.handlers.Content.Update)
			content.DELETE("/content-delete/:slug", a.handlers.Content.Delete)
			content.PATCH("/change-content-status/:slug", a.handlers.Content.ChangeStatus)
		}

		landing := v1.Group("/landing", authRequired, middleware.AdminMiddleware())
		{
			landing.GET("/landing-details", a.handlers.Landing.List)
			landing.POST("/landing-store", a.handlers.Landing.Store)
			landing.PATCH("/landing-update/:id", a.handlers.Landing.Update)
			landing.DELETE("/landing-delete/:id", a.handlers.Landing.Delete)
			landing.POST("/upload-image", a.handlers.Landing.Upload)
		}

		web := v1.Group("/web/auth")
		{
			web.POST("/login", a.handlers.Auth.WebLogin)
			web.GET("/contents", a.handlers.Web.Contents)
			web.GET("/contents/:id", a.handlers.Web.Contents)
			web.GET("/category-list", a.handlers.Web.CategoryList)
			web.GET("/landing-banner", a.handlers.Web.LandingBanner)
			web.GET("/video-pdf-show/:id", a.handlers.Web.Show)
			web.POST("/video-views-count-add", authRequired, a.handlers.Web.AddVideoView)
			web.POST("/pdf-download-count-add", authRequired, a.handlers.Web.AddPdfDownload)
			web.POST("/store", a.handlers.Customer.Store)
			web.GET("/customer-details", authRequired, middleware.AdminMiddleware(), a.handlers.Customer.List)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"ack":     false,
			"message": "Route not found",
		})
	})

	a.router = router
}
