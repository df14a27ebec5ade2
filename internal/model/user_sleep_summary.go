package model

import "time"

// UserSleepSummary 每日睡眠汇总，由定时任务回填
type UserSleepSummary struct {
	ID                   uint64    `gorm:"primaryKey" json:"id"`
	UserID               uint64    `gorm:"not null;uniqueIndex:idx_user_summary_date,priority:1" json:"userId"`
	SummaryDate          time.Time `gorm:"not null;uniqueIndex:idx_user_summary_date,priority:2" json:"summaryDate"`
	TotalDurationSeconds int64     `gorm:"not null;default:0" json:"totalDurationSeconds"`
	SessionCount         int       `gorm:"not null;default:0" json:"sessionCount"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

func (UserSleepSummary) TableName() string {
	return "user_sleep_summaries"
}
