package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

var (
	ErrParamInvalid        = errors.New("参数错误")
	ErrUserNotFound        = errors.New("用户不存在")
	ErrUserNameRequired    = errors.New("用户名不能为空")
	ErrSleepRecordNotFound = errors.New("睡眠记录不存在")
	ErrSleepRecordClosed   = errors.New("睡眠记录已结束")
	ErrClockInRequired     = errors.New("缺少入睡时间")
	ErrClockOutBeforeIn    = errors.New("起床时间早于入睡时间")
	ErrUserFollowSelf      = errors.New("用户不能关注自己")
	ErrUserFollowExist     = errors.New("用户已关注")
	ErrUserFollowNotFound  = errors.New("未关注该用户")
	ErrConcurrencyConflict = errors.New("操作冲突，请稍后重试")
	UnauthorizedError      = errors.New("权限不足")
	UnExpectedError        = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:        BadRequest,
	ErrUserNotFound:        NotFound,
	ErrUserNameRequired:    BadRequest,
	ErrSleepRecordNotFound: NotFound,
	ErrSleepRecordClosed:   BadRequest,
	ErrClockInRequired:     BadRequest,
	ErrClockOutBeforeIn:    BadRequest,
	ErrUserFollowSelf:      BadRequest,
	ErrUserFollowExist:     Conflict,
	ErrUserFollowNotFound:  NotFound,
	ErrConcurrencyConflict: Conflict,
	UnauthorizedError:      Unauthorized,
	UnExpectedError:        InternalServerError,
}
