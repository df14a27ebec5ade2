package handler

import (
	"GoodNight/internal/pkg/response"
	"GoodNight/internal/service"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type SleepHandler struct {
	sleepSvc   service.SleepService
	summarySvc service.SummaryService
}

func NewSleepHandler(sleepSvc service.SleepService, summarySvc service.SummaryService) *SleepHandler {
	return &SleepHandler{
		sleepSvc:   sleepSvc,
		summarySvc: summarySvc,
	}
}

// GetSleepRecords 本人全部睡眠记录，新的在前
func (s *SleepHandler) GetSleepRecords(c *gin.Context) {
	userID := c.GetUint64("user_id")

	records, err := s.sleepSvc.GetHistory(c, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, records)
}

// ClockIn 入睡打卡，总是新建一条未结束记录
func (s *SleepHandler) ClockIn(c *gin.Context) {
	userID := c.GetUint64("user_id")

	record, err := s.sleepSvc.ClockIn(c, userID, time.Now())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, record)
}

// ClockOut 起床打卡，结束全部未结束记录并返回最新列表
func (s *SleepHandler) ClockOut(c *gin.Context) {
	userID := c.GetUint64("user_id")

	records, err := s.sleepSvc.ClockOut(c, userID, time.Now())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, records)
}

// CloseRecord 结束指定的一条记录
func (s *SleepHandler) CloseRecord(c *gin.Context) {
	userID := c.GetUint64("user_id")

	recordIDStr := c.Param("record_id")
	recordID, err := strconv.ParseUint(recordIDStr, 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	record, err := s.sleepSvc.CloseRecord(c, userID, recordID, time.Now())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, record)
}

// GetFollowingSleepRecords 本周关注用户的睡眠排行榜
func (s *SleepHandler) GetFollowingSleepRecords(c *gin.Context) {
	userID := c.GetUint64("user_id")

	records, err := s.sleepSvc.GetFollowingLeaderboard(c, userID, time.Now())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, records)
}

func (s *SleepHandler) GetSummary7Days(c *gin.Context) {
	userID := c.GetUint64("user_id")

	summaries, err := s.summarySvc.GetSummariesBy7Days(c, userID, time.Now())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, summaries)
}

func (s *SleepHandler) GetSummary30Days(c *gin.Context) {
	userID := c.GetUint64("user_id")

	summaries, err := s.summarySvc.GetSummariesBy30Days(c, userID, time.Now())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, summaries)
}
