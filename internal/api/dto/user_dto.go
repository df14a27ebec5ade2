package dto

import "time"

// UserDTO 用户
type UserDTO struct {
	ID        uint64     `json:"id"`
	Name      string     `json:"name"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// RegisterDTO 注册，产品只需要一个展示名
type RegisterDTO struct {
	Name string `json:"name" binding:"required" validate:"required,min=1,max=50"`
}

// TokenRequestDTO 换取 Token
type TokenRequestDTO struct {
	UserID uint64 `json:"user_id" binding:"required" validate:"required,gt=0"`
}

// TokenDTO 签发结果
type TokenDTO struct {
	Token string `json:"token"`
}
