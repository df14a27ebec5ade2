package service

import (
	"GoodNight/internal/api/dto"
	"GoodNight/internal/model"
	"GoodNight/internal/pkg/security"
	"GoodNight/internal/repository"
	"context"
	"strings"

	"github.com/jinzhu/copier"
)

type UserService interface {
	Register(ctx context.Context, name string) (*dto.UserDTO, error)
	GetUser(ctx context.Context, userID uint64) (*dto.UserDTO, error)
	DeleteUser(ctx context.Context, userID uint64) error
	IssueToken(ctx context.Context, userID uint64) (string, error)
}

type userServiceImpl struct {
	userRepo repository.UserRepo
	cache    Cache
}

func NewUserService(userRepo repository.UserRepo, cache Cache) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
		cache:    cache,
	}
}

func (s *userServiceImpl) Register(ctx context.Context, name string) (*dto.UserDTO, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrUserNameRequired
	}

	user := &model.User{Name: name}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return s.toDTO(user)
}

func (s *userServiceImpl) GetUser(ctx context.Context, userID uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return s.toDTO(user)
}

// DeleteUser 注销用户，级联删除睡眠记录、汇总与关注边，并清掉本人缓存
func (s *userServiceImpl) DeleteUser(ctx context.Context, userID uint64) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, historyCacheKey(userID))
	_ = s.cache.Delete(ctx, leaderboardCacheKey(userID))
	return nil
}

// IssueToken 为已存在的用户签发 JWT。产品没有口令体系，
// 身份校验只到"用户存在"这一层，与原始 API 的 user_id 鉴权等价。
func (s *userServiceImpl) IssueToken(ctx context.Context, userID uint64) (string, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}
	return security.GenerateToken(userID)
}

func (s *userServiceImpl) toDTO(user *model.User) (*dto.UserDTO, error) {
	userDTO := &dto.UserDTO{}
	if err := copier.Copy(userDTO, user); err != nil {
		return nil, err
	}
	return userDTO, nil
}
