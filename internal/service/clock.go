package service

import "time"

// 周界约定：周一 00:00:00 至周日 23:59:59.999999999，使用传入时间自身的时区。
// 与客户端 locale 无关，排行榜的周桶只由这两个函数决定。

func beginningOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -(weekday - 1))
}

func endOfWeek(t time.Time) time.Time {
	return beginningOfWeek(t).AddDate(0, 0, 7).Add(-time.Nanosecond)
}

func midnightOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
