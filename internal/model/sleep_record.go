package model

import (
	"errors"
	"time"
)

var (
	// ErrClockOutBeforeClockIn 起床时间早于入睡时间（时钟回拨或非法输入）
	ErrClockOutBeforeClockIn = errors.New("clock_out_time 早于 clock_in_time")
	// ErrSleepRecordCompleted 记录已结束，不能再次打卡
	ErrSleepRecordCompleted = errors.New("睡眠记录已结束")
)

// SleepRecord 一次睡眠，clock_out_time 为空表示尚未起床
type SleepRecord struct {
	ID              uint64     `gorm:"primaryKey" json:"id"`
	UserID          uint64     `gorm:"not null;index:idx_user_clock_in,priority:1" json:"userId"`
	ClockInTime     time.Time  `gorm:"not null;index:idx_user_clock_in,priority:2" json:"clockInTime"`
	ClockOutTime    *time.Time `json:"clockOutTime"`
	DurationSeconds int64      `gorm:"not null;default:0" json:"durationSeconds"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func (SleepRecord) TableName() string {
	return "sleep_records"
}

func (s *SleepRecord) Completed() bool {
	return s.ClockOutTime != nil
}

// ComputeDuration 计算 [in, out] 的整秒时长，向下取整。
// out 早于 in 时视为非法输入，绝不返回负数。
func ComputeDuration(in, out time.Time) (int64, error) {
	if out.Before(in) {
		return 0, ErrClockOutBeforeClockIn
	}
	return int64(out.Sub(in) / time.Second), nil
}
