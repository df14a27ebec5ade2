package consts

const (
	UserSleepRecordsKey       = "user:sleep:records:"
	FollowingSleepRecordsKey  = "user:sleep:following:"
	UserSleepSummary7DaysKey  = "user:sleep:summary:7days:"
	UserSleepSummary30DaysKey = "user:sleep:summary:30days:"
	SleepSummaryDirtyKey      = "user:sleep:summary:dirty"
)

const (
	SleepSummaryDailyLock = "lock:sleep:summary:"
)
