package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Saikrishivgar/zoho-directory/internal/config"
	"github.com/Saikrishivgar/zoho-directory/internal/handler"
	"github.com/Saikrishivgar/zoho-directory/internal/middleware"
	"github.com/Saikrishivgar/zoho-directory/internal/repository"
	"github.com/Saikrishivgar/zoho-directory/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting directory service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	// 初始化数据库
	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// 初始化Redis
	rdb := initRedis(cfg.Redis)

	// 初始化依赖
	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, rdb, cfg)
	handlers := handler.NewHandlers(services)

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建路由
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())

	// 注册路由
	registerRoutes(router, handlers, cfg)

	// 创建HTTP服务器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 启动服务器
	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, cfg *config.Config) {
	// 健康检查
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 版本信息
	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	// API v1
	v1 := r.Group("/api/v1")
	{
		// 通讯录
		v1.GET("/people", h.Directory.ListPeople)
		v1.GET("/people/:id", h.Directory.GetPerson)
		v1.GET("/departments/tree", h.Directory.DepartmentTree)

		// 客户记录
		v1.GET("/client-entries/form", h.ClientEntry.Form)
		v1.POST("/client-entries", h.ClientEntry.Create)

		// 应用目录
		v1.GET("/apps", h.Catalog.ListApps)

		// 通知
		v1.GET("/notify/cliq", h.Notify.SendCliq)
		v1.POST("/notify/cliq", h.Notify.SendCliq)

		// 管理端
		admin := v1.Group("/admin")
		admin.Use(middleware.JWTAuth(cfg.JWT.Secret))
		{
			locations := admin.Group("/locations")
			{
				locations.GET("", h.Admin.ListLocations)
				locations.POST("", h.Admin.CreateLocation)
				locations.GET("/:id", h.Admin.GetLocation)
				locations.PUT("/:id", h.Admin.UpdateLocation)
				locations.DELETE("/:id", h.Admin.DeleteLocation)
			}

			departments := admin.Group("/departments")
			{
				departments.GET("", h.Admin.ListDepartments)
				departments.POST("", h.Admin.CreateDepartment)
				departments.GET("/:id", h.Admin.GetDepartment)
				departments.PUT("/:id", h.Admin.UpdateDepartment)
				departments.DELETE("/:id", h.Admin.DeleteDepartment)
			}

			people := admin.Group("/people")
			{
				people.GET("", h.Admin.ListPeople)
				people.POST("", h.Admin.CreatePerson)
				people.GET("/:id", h.Admin.GetPerson)
				people.PUT("/:id", h.Admin.UpdatePerson)
				people.DELETE("/:id", h.Admin.DeletePerson)
			}

			entries := admin.Group("/client-entries")
			{
				entries.GET("", h.Admin.ListClientEntries)
				entries.DELETE("/:id", h.Admin.DeleteClientEntry)
			}

			apps := admin.Group("/apps")
			{
				apps.GET("", h.Admin.ListApps)
				apps.POST("", h.Admin.CreateApp)
				apps.GET("/:id", h.Admin.GetApp)
				apps.PUT("/:id", h.Admin.UpdateApp)
				apps.DELETE("/:id", h.Admin.DeleteApp)
				apps.POST("/:id/icon", h.Admin.UploadIcon)
				apps.POST("/:id/guide", h.Admin.UploadGuide)
			}
		}
	}
}
