package router

import (
	"time"

	"github.com/caaaae/E-Leave/internal/config"
	"github.com/caaaae/E-Leave/internal/handler"
	"github.com/caaaae/E-Leave/internal/infra"
	"github.com/caaaae/E-Leave/internal/middleware"
	"github.com/caaaae/E-Leave/internal/repository"
	"github.com/caaaae/E-Leave/internal/service"
	"github.com/caaaae/E-Leave/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, docs *infra.DocumentStore) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	leaveRepo := repository.NewLeaveRepository(db)
	balanceRepo := repository.NewBalanceRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	authSvc := service.NewAuthService(userRepo, cfg)
	leaveSvc := service.NewLeaveService(leaveRepo, userRepo, balanceRepo, dispatcher, docs)
	balanceSvc := service.NewBalanceService(balanceRepo, userRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	leavesH := handler.NewLeavesHandler(leaveSvc, docs)
	balancesH := handler.NewBalancesHandler(balanceSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	api := r.Group("/api")
	{
		api.POST("/user/register/", authH.Register)
		api.POST("/token/", middleware.LoginRateLimiter(), authH.Token)
		api.POST("/token/refresh/", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	auth := api.Group("", jwtMW)
	{
		auth.GET("/users/", authH.Profile)

		auth.POST("/createleaves/", leavesH.Create)
		auth.GET("/leaves/", leavesH.ListOwn)
		auth.PUT("/leaves/update/:id/", leavesH.Update)
		auth.PATCH("/leaves/update/:id/", leavesH.Update)
		auth.DELETE("/leaves/delete/:id/", leavesH.Delete)
		auth.POST("/leaves/:id/document/", leavesH.UploadDocument)

		// Staff-only surface
		staff := auth.Group("", middleware.RequireStaff())
		{
			staff.GET("/allgetleaves/", leavesH.ListAll)
			staff.POST("/leaves/:id/approve/", leavesH.Approve)
			staff.POST("/leaves/:id/reject/", leavesH.Reject)
			staff.PUT("/balances/", balancesH.Upsert)
			staff.GET("/balances/:user_id/", balancesH.ListByUser)
		}
	}

	return r
}
