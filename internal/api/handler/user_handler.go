package handler

import (
	"GoodNight/internal/api/dto"
	"GoodNight/internal/pkg/response"
	"GoodNight/internal/pkg/util"
	"GoodNight/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

func (s *UserHandler) Register(c *gin.Context) {
	var registerDTO dto.RegisterDTO
	if err := c.ShouldBindJSON(&registerDTO); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := util.ValidateDTO(&registerDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	user, err := s.userSvc.Register(c, registerDTO.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

// CreateToken 用 user_id 换取 JWT，产品没有口令体系
func (s *UserHandler) CreateToken(c *gin.Context) {
	var tokenDTO dto.TokenRequestDTO
	if err := c.ShouldBindJSON(&tokenDTO); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	token, err := s.userSvc.IssueToken(c, tokenDTO.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.TokenDTO{Token: token})
}

func (s *UserHandler) GetUserInfo(c *gin.Context) {
	userID := c.GetUint64("user_id")

	user, err := s.userSvc.GetUser(c, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

func (s *UserHandler) CancelUser(c *gin.Context) {
	userID := c.GetUint64("user_id")

	if err := s.userSvc.DeleteUser(c, userID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
