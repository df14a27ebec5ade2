package repository

import (
	"GoodNight/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowRepo interface {
	GetFollowedIDs(ctx context.Context, userID uint64) ([]uint64, error)
	GetFollow(ctx context.Context, followerID, followedID uint64) (*model.Follow, error)
	GetFollowers(ctx context.Context, userID uint64, limit, offset int) ([]*model.Follow, error)
	GetFollowings(ctx context.Context, userID uint64, limit, offset int) ([]*model.Follow, error)
	CreateFollow(ctx context.Context, follow *model.Follow) error
	DeleteFollow(ctx context.Context, followerID, followedID uint64) (int64, error)
}

type FollowRepoImpl struct {
	db *gorm.DB
}

func NewFollowRepo(db *gorm.DB) FollowRepo {
	return &FollowRepoImpl{db: db}
}

// GetFollowedIDs 获取用户关注的全部用户 id
func (s *FollowRepoImpl) GetFollowedIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	var ids []uint64
	result := s.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ?", userID).
		Pluck("followed_id", &ids)

	if result.Error != nil {
		return nil, result.Error
	}
	return ids, nil
}

// GetFollow 获取一条关注关系，不存在时返回 (nil, nil)
func (s *FollowRepoImpl) GetFollow(ctx context.Context, followerID, followedID uint64) (*model.Follow, error) {
	var follow model.Follow
	result := s.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		First(&follow)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &follow, nil
}

// GetFollowers 获取用户的粉丝列表
func (s *FollowRepoImpl) GetFollowers(ctx context.Context, userID uint64, limit, offset int) ([]*model.Follow, error) {
	var follows []*model.Follow
	result := s.db.WithContext(ctx).
		Where("followed_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&follows)

	if result.Error != nil {
		return nil, result.Error
	}
	return follows, nil
}

// GetFollowings 获取用户的关注列表
func (s *FollowRepoImpl) GetFollowings(ctx context.Context, userID uint64, limit, offset int) ([]*model.Follow, error) {
	var follows []*model.Follow
	result := s.db.WithContext(ctx).
		Where("follower_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&follows)

	if result.Error != nil {
		return nil, result.Error
	}
	return follows, nil
}

// CreateFollow 创建关注关系，联合主键冲突时静默忽略
func (s *FollowRepoImpl) CreateFollow(ctx context.Context, follow *model.Follow) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			DoNothing: true,
		}).
		Create(follow).Error
}

// DeleteFollow 删除关注关系，返回删除的行数
func (s *FollowRepoImpl) DeleteFollow(ctx context.Context, followerID, followedID uint64) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&model.Follow{})

	return result.RowsAffected, result.Error
}
