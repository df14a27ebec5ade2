package handler

import (
	"GoodNight/internal/pkg/response"
	"GoodNight/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type FollowHandler struct {
	followSvc service.FollowService
}

func NewFollowHandler(followSvc service.FollowService) *FollowHandler {
	return &FollowHandler{followSvc: followSvc}
}

func (s *FollowHandler) Follow(c *gin.Context) {
	userID := c.GetUint64("user_id")
	targetID, ok := s.targetUserID(c)
	if !ok {
		return
	}

	if err := s.followSvc.Follow(c, userID, targetID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *FollowHandler) Unfollow(c *gin.Context) {
	userID := c.GetUint64("user_id")
	targetID, ok := s.targetUserID(c)
	if !ok {
		return
	}

	if err := s.followSvc.Unfollow(c, userID, targetID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *FollowHandler) GetFollowers(c *gin.Context) {
	userID := c.GetUint64("user_id")
	limit, offset := s.getPagination(c)

	followers, err := s.followSvc.GetFollowers(c, userID, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, followers)
}

func (s *FollowHandler) GetFollowings(c *gin.Context) {
	userID := c.GetUint64("user_id")
	limit, offset := s.getPagination(c)

	followings, err := s.followSvc.GetFollowings(c, userID, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, followings)
}

func (s *FollowHandler) targetUserID(c *gin.Context) (uint64, bool) {
	targetIDStr := c.Param("target_user_id")
	if targetIDStr == "" {
		response.Error(c, service.ErrParamInvalid)
		return 0, false
	}

	targetID, err := strconv.ParseUint(targetIDStr, 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return 0, false
	}
	return targetID, true
}

func (s *FollowHandler) getPagination(c *gin.Context) (int, int) {
	pageStr := c.DefaultQuery("page", "1")
	pageSizeStr := c.DefaultQuery("page_size", "10")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize < 1 {
		pageSize = 10
	}
	return pageSize, (page - 1) * pageSize
}
