package repository

import (
	"GoodNight/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type UserRepo interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, userID uint64) (*model.User, error)
	DeleteUser(ctx context.Context, userID uint64) error
}

type UserRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &UserRepoImpl{db: db}
}

func (s *UserRepoImpl) CreateUser(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

// GetUserByID 按主键获取用户，不存在时返回 (nil, nil)
func (s *UserRepoImpl) GetUserByID(ctx context.Context, userID uint64) (*model.User, error) {
	var user model.User
	result := s.db.WithContext(ctx).First(&user, userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &user, nil
}

// DeleteUser 删除用户并级联清理其睡眠记录、汇总和关注边，单事务内完成
func (s *UserRepoImpl) DeleteUser(ctx context.Context, userID uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if result := tx.Where("user_id = ?", userID).Delete(&model.SleepRecord{}); result.Error != nil {
			return result.Error
		}

		if result := tx.Where("user_id = ?", userID).Delete(&model.UserSleepSummary{}); result.Error != nil {
			return result.Error
		}

		if result := tx.Where("follower_id = ?", userID).Delete(&model.Follow{}); result.Error != nil {
			return result.Error
		}

		if result := tx.Where("followed_id = ?", userID).Delete(&model.Follow{}); result.Error != nil {
			return result.Error
		}

		return tx.Delete(&model.User{}, userID).Error
	})
}
