package api

import (
	"GoodNight/internal/api/middleware"
	"GoodNight/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api/v1")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/users")
		{
			// 无需登录即可访问的接口
			userGroup.POST("", group.UserHandler.Register)

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.GET("/me", group.UserHandler.GetUserInfo)
				authGroup.DELETE("/me", group.UserHandler.CancelUser)
			}
		}

		authTokenGroup := apiGroup.Group("/auth")
		{
			authTokenGroup.POST("/token", group.UserHandler.CreateToken)
		}

		sleepGroup := apiGroup.Group("/sleep-records")
		{
			sleepGroup.Use(middleware.AuthMiddleware())
			{
				sleepGroup.GET("", group.SleepHandler.GetSleepRecords)
				sleepGroup.POST("/clock-in", group.SleepHandler.ClockIn)
				sleepGroup.POST("/clock-out", group.SleepHandler.ClockOut)
				sleepGroup.POST("/:record_id/clock-out", group.SleepHandler.CloseRecord)
				sleepGroup.GET("/followings", group.SleepHandler.GetFollowingSleepRecords)
				sleepGroup.GET("/summary/7d", group.SleepHandler.GetSummary7Days)
				sleepGroup.GET("/summary/30d", group.SleepHandler.GetSummary30Days)
			}
		}

		followGroup := apiGroup.Group("/user-relation")
		{
			followGroup.Use(middleware.AuthMiddleware())
			{
				followGroup.GET("/followers", group.FollowHandler.GetFollowers)
				followGroup.GET("/followings", group.FollowHandler.GetFollowings)
				followGroup.POST("/follow/:target_user_id", group.FollowHandler.Follow)
				followGroup.DELETE("/follow/:target_user_id", group.FollowHandler.Unfollow)
			}
		}
	}

	return r
}
