package repository

import (
	"GoodNight/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type SleepSummaryRepo interface {
	CreateSummary(ctx context.Context, summary *model.UserSleepSummary) error
	UpdateSummary(ctx context.Context, summary *model.UserSleepSummary) error
	GetSummaryByDate(ctx context.Context, userID uint64, date time.Time) (*model.UserSleepSummary, error)
	GetSummariesSince(ctx context.Context, userID uint64, since time.Time) ([]*model.UserSleepSummary, error)
}

type SleepSummaryRepoImpl struct {
	db *gorm.DB
}

func NewSleepSummaryRepo(db *gorm.DB) SleepSummaryRepo {
	return &SleepSummaryRepoImpl{db: db}
}

func (s *SleepSummaryRepoImpl) CreateSummary(ctx context.Context, summary *model.UserSleepSummary) error {
	return s.db.WithContext(ctx).Create(summary).Error
}

func (s *SleepSummaryRepoImpl) UpdateSummary(ctx context.Context, summary *model.UserSleepSummary) error {
	return s.db.WithContext(ctx).
		Model(&model.UserSleepSummary{}).
		Where("id = ?", summary.ID).
		Updates(map[string]interface{}{
			"total_duration_seconds": summary.TotalDurationSeconds,
			"session_count":          summary.SessionCount,
		}).Error
}

// GetSummaryByDate 获取某天的汇总，不存在时返回 (nil, nil)
func (s *SleepSummaryRepoImpl) GetSummaryByDate(ctx context.Context, userID uint64, date time.Time) (*model.UserSleepSummary, error) {
	var summary model.UserSleepSummary
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND summary_date = ?", userID, date).
		First(&summary)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &summary, nil
}

// GetSummariesSince 获取 since 之后的每日汇总，新的在前
func (s *SleepSummaryRepoImpl) GetSummariesSince(ctx context.Context, userID uint64, since time.Time) ([]*model.UserSleepSummary, error) {
	var summaries []*model.UserSleepSummary
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND summary_date >= ?", userID, since).
		Order("summary_date desc").
		Find(&summaries)

	if result.Error != nil {
		return nil, result.Error
	}
	return summaries, nil
}
