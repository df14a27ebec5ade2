package wire

import (
	"GoodNight/internal/api"
	"GoodNight/internal/api/config"
	"GoodNight/internal/api/handler"
	"GoodNight/internal/job"
	"GoodNight/internal/pkg/cron"
	"GoodNight/internal/pkg/redis"
	"GoodNight/internal/repository"
	"GoodNight/internal/service"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	loc := time.UTC
	if cfg.Server.Timezone != "" {
		var err error
		loc, err = time.LoadLocation(cfg.Server.Timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid server timezone %q: %w", cfg.Server.Timezone, err)
		}
	}

	userRepo := repository.NewUserRepo(db)
	followRepo := repository.NewFollowRepo(db)
	sleepRecordRepo := repository.NewSleepRecordRepo(db)
	sleepSummaryRepo := repository.NewSleepSummaryRepo(db)

	cache := redis.NewCache()

	userService := service.NewUserService(userRepo, cache)
	followService := service.NewFollowService(followRepo, userRepo)
	sleepService := service.NewSleepService(sleepRecordRepo, followRepo, cache, loc)
	summaryService := service.NewSummaryService(sleepSummaryRepo, sleepRecordRepo, cache, loc)

	handlers := &api.HandlersGroup{
		UserHandler:   handler.NewUserHandler(userService),
		SleepHandler:  handler.NewSleepHandler(sleepService, summaryService),
		FollowHandler: handler.NewFollowHandler(followService),
	}

	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(job.NewSleepSummaryJob(summaryService))

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
