package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"roomrec-backend/internal/artifacts"
	"roomrec-backend/internal/catalog"
	"roomrec-backend/internal/history"
	"roomrec-backend/internal/recommend"
	"roomrec-backend/internal/services/health"
	"roomrec-backend/internal/shared/config"
	"roomrec-backend/internal/shared/metrics"
	"roomrec-backend/internal/shared/server/middleware"
	"roomrec-backend/internal/shared/server/respond"
	"roomrec-backend/internal/shared/storage/db"
)

const recommendRateGroup = "RECOMMEND"

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				recommendRateGroup: {Rate: cfg.RecommendRate, Burst: cfg.RecommendBurst},
			},
			GroupFor: func(c *gin.Context) string {
				if c.FullPath() == "/api/v1/recommend" {
					return recommendRateGroup
				}
				return ""
			},
		}),
	)

	// Dependencies
	holder := artifacts.NewHolder()
	dirs := artifacts.Dirs{
		Models:    cfg.ModelsDir,
		Encoder:   cfg.EncoderDir,
		ModelInfo: cfg.ModelInfoDir,
	}
	reload := func() error {
		art, err := artifacts.Load(dirs)
		if err != nil {
			return err
		}
		holder.Set(art)
		return nil
	}
	if err := reload(); err != nil {
		log.Printf("failed to load model artifacts, serving degraded: %v", err)
	}

	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, opts)
		if err != nil {
			log.Printf("failed to connect database, falling back to memory: %v", err)
		} else {
			if err := db.RunMigrations(context.Background(), dbConn); err != nil {
				log.Printf("failed to run migrations, falling back to memory: %v", err)
				dbConn = nil
			}
		}
		sqlDB = dbConn
	}

	var historyRepo history.Repo
	if sqlDB != nil {
		historyRepo = &history.PGRepo{DB: sqlDB}
	} else {
		historyRepo = history.NewMemoryRepo()
	}
	recommendSvc := recommend.NewService(holder, historyRepo)
	recommendHandler := recommend.NewHandler(recommendSvc)
	catalogHandler := catalog.NewHandler(func() *catalog.Catalog {
		if art := holder.Current(); art != nil {
			return art.Catalog
		}
		return nil
	})
	historyHandler := history.NewHandler(historyRepo)
	healthSvc := health.NewService(holder)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, healthSvc.Status())
	})
	recommendHandler.RegisterRoutes(api)
	catalogHandler.RegisterRoutes(api)
	historyHandler.RegisterRoutes(api)
	r.GET("/metrics", metrics.Handler())
	if cfg.Env == "dev" {
		dev := api.Group("/dev")
		dev.POST("/reload", func(c *gin.Context) {
			if err := reload(); err != nil {
				respond.Error(c, http.StatusInternalServerError, "reload_failed", "failed to reload model artifacts", nil)
				return
			}
			respond.OK(c, healthSvc.Status())
		})
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
