package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"skillswap/backend/config"
	"skillswap/backend/internal/api/handler"
	"skillswap/backend/internal/api/middleware"
	"skillswap/backend/internal/model"
	"skillswap/backend/pkg/jwt"
	"skillswap/backend/pkg/redis"
)

// 认证接口限流：每 IP 每分钟 10 次，防止暴力破解
const (
	authRateLimit  = 10
	authRateWindow = time.Minute
)

// Setup 初始化并返回 Gin 路由引擎
// 路由沿用前端约定的尾斜杠风格，Gin 默认的尾斜杠重定向兼容两种写法
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(1 << 20)) // 1MB
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// 认证模块（无需认证，单独限流）
		authLimited := api.Group("", middleware.RateLimit(rdb, authRateLimit, authRateWindow))
		{
			authLimited.POST("/token/", h.Auth.Login)
			authLimited.POST("/token/refresh/", h.Auth.RefreshToken)
			authLimited.POST("/users/register/", h.Auth.Register)
		}

		// 需要认证的路由
		authorized := api.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/token/logout/", h.Auth.Logout)

			// 用户模块
			users := authorized.Group("/users")
			{
				users.GET("/profile/", h.User.GetProfile)
				users.PUT("/profile/", h.User.UpdateProfile)
				users.PUT("/password/", h.Auth.ChangePassword)
				users.GET("/list/", h.User.Browse)

				users.GET("/skills/offered/", h.User.ListOfferedSkills)
				users.POST("/skills/offered/", h.User.AddOfferedSkill)
				users.GET("/skills/wanted/", h.User.ListWantedSkills)
				users.POST("/skills/wanted/", h.User.AddWantedSkill)
				users.DELETE("/skills/:type/:id/", h.User.RemoveSkill)

				users.GET("/notifications/", h.Notification.List)
				users.POST("/notifications/mark-read/", h.Notification.MarkAllRead)
				users.PATCH("/notifications/mark-read/", h.Notification.MarkRead)
			}

			// 技能模块
			skills := authorized.Group("/skills")
			{
				skills.GET("/", h.Skill.List)
				skills.POST("/", h.Skill.Create)
				skills.GET("/offered/", h.Skill.ListOffered)
				skills.GET("/wanted/", h.Skill.ListWanted)
			}

			// 换技能申请模块
			swaps := authorized.Group("/swaps")
			{
				swaps.GET("/", h.Swap.List)
				swaps.POST("/", h.Swap.Create)
				swaps.GET("/stats/", h.Swap.Stats)
				swaps.GET("/recent/", h.Swap.Recent)
				swaps.PATCH("/:id/", h.Swap.UpdateStatus)
				swaps.POST("/:id/rate/", h.Swap.Rate)
			}

			// 管理模块
			admin := authorized.Group("", middleware.RoleAuth(model.RoleAdmin))
			{
				admin.GET("/users/admin/users/", h.Admin.ListUsers)
				admin.PATCH("/users/admin/users/:id/", h.Admin.SetBanned)
				admin.POST("/users/admin/messages/", h.Admin.Broadcast)
				admin.GET("/users/admin/reports/", h.Admin.ExportReport)
				admin.GET("/skills/admin/", h.Admin.ListSkills)
				admin.DELETE("/skills/admin/", h.Admin.DeleteSkill)
				admin.GET("/swaps/admin/", h.Admin.ListSwaps)
			}
		}
	}

	return r
}
