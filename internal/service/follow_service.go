package service

import (
	"GoodNight/internal/model"
	"GoodNight/internal/repository"
	"context"
	"time"
)

type FollowService interface {
	Follow(ctx context.Context, followerID, followedID uint64) error
	Unfollow(ctx context.Context, followerID, followedID uint64) error
	IsFollowing(ctx context.Context, followerID, followedID uint64) (bool, error)
	FollowedIDs(ctx context.Context, userID uint64) ([]uint64, error)
	GetFollowers(ctx context.Context, userID uint64, limit, offset int) ([]*model.Follow, error)
	GetFollowings(ctx context.Context, userID uint64, limit, offset int) ([]*model.Follow, error)
}

type followServiceImpl struct {
	followRepo repository.FollowRepo
	userRepo   repository.UserRepo
}

func NewFollowService(followRepo repository.FollowRepo, userRepo repository.UserRepo) FollowService {
	return &followServiceImpl{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow 创建关注关系，不允许自关注和重复关注
func (s *followServiceImpl) Follow(ctx context.Context, followerID, followedID uint64) error {
	if followerID == followedID {
		return ErrUserFollowSelf
	}

	target, err := s.userRepo.GetUserByID(ctx, followedID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrUserNotFound
	}

	exist, err := s.followRepo.GetFollow(ctx, followerID, followedID)
	if err != nil {
		return err
	}
	if exist != nil {
		return ErrUserFollowExist
	}

	return s.followRepo.CreateFollow(ctx, &model.Follow{
		FollowerID: followerID,
		FollowedID: followedID,
		CreatedAt:  time.Now(),
	})
}

// Unfollow 取消关注，未关注时返回错误
func (s *followServiceImpl) Unfollow(ctx context.Context, followerID, followedID uint64) error {
	target, err := s.userRepo.GetUserByID(ctx, followedID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrUserNotFound
	}

	deleted, err := s.followRepo.DeleteFollow(ctx, followerID, followedID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrUserFollowNotFound
	}
	return nil
}

func (s *followServiceImpl) IsFollowing(ctx context.Context, followerID, followedID uint64) (bool, error) {
	follow, err := s.followRepo.GetFollow(ctx, followerID, followedID)
	if err != nil {
		return false, err
	}
	return follow != nil, nil
}

// FollowedIDs 获取用户关注的全部用户 id，排行榜的关注集合来源
func (s *followServiceImpl) FollowedIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	return s.followRepo.GetFollowedIDs(ctx, userID)
}

func (s *followServiceImpl) GetFollowers(ctx context.Context, userID uint64, limit, offset int) ([]*model.Follow, error) {
	return s.followRepo.GetFollowers(ctx, userID, limit, offset)
}

func (s *followServiceImpl) GetFollowings(ctx context.Context, userID uint64, limit, offset int) ([]*model.Follow, error) {
	return s.followRepo.GetFollowings(ctx, userID, limit, offset)
}
