package model

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/contributory/ai-gateway/common/helper"
	"github.com/contributory/ai-gateway/common/logger"
	"github.com/contributory/ai-gateway/relay/channel/horde"
)

const (
	JobStatusSubmitted  = "submitted"
	JobStatusSucceeded  = "succeeded"
	JobStatusImpossible = "impossible"
	JobStatusTimedOut   = "timed_out"
	JobStatusFailed     = "failed"
)

// HordeJob is one row of the AI Horde job log.
type HordeJob struct {
	Id         int     `json:"id"`
	JobId      string  `json:"job_id" gorm:"type:varchar(64);index"`
	RequestId  string  `json:"request_id" gorm:"type:varchar(64);index"`
	Prompt     string  `json:"prompt" gorm:"type:text"`
	Models     string  `json:"models"`
	N          int     `json:"n" gorm:"default:1"`
	Status     string  `json:"status" gorm:"type:varchar(20);index"`
	FailReason string  `json:"fail_reason"`
	CreatedAt  int64   `json:"created_at" gorm:"bigint;index"`
	UpdatedAt  int64   `json:"updated_at" gorm:"bigint"`
	Duration   float64 `json:"duration" gorm:"default:0"`
}

func (job *HordeJob) Insert() error {
	return DB.Create(job).Error
}

func GetJobByJobId(jobId string) (*HordeJob, error) {
	var job HordeJob
	err := DB.Where("job_id = ?", jobId).First(&job).Error
	return &job, err
}

func GetRecentJobs(status string, limit int) ([]*HordeJob, error) {
	var jobs []*HordeJob
	tx := DB.Order("id desc").Limit(limit)
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	err := tx.Find(&jobs).Error
	return jobs, err
}

func FinishJob(jobId string, status string, failReason string, duration float64) error {
	return DB.Model(&HordeJob{}).Where("job_id = ?", jobId).Updates(map[string]any{
		"status":      status,
		"fail_reason": failReason,
		"duration":    duration,
		"updated_at":  helper.GetTimestamp(),
	}).Error
}

func jobStatus(err error) string {
	if err == nil {
		return JobStatusSucceeded
	}
	switch kind, _ := horde.KindOf(err); kind {
	case horde.ProcessingImpossible:
		return JobStatusImpossible
	case horde.ProcessingTimedOut:
		return JobStatusTimedOut
	}
	return JobStatusFailed
}

func requestId(ctx context.Context) string {
	if v := ctx.Value(logger.RequestIdKey); v != nil {
		return fmt.Sprintf("%v", v)
	}
	return ""
}

// JobLog records AI Horde jobs. Database errors are logged and never reach
// the request.
type JobLog struct {
	horde.NopObserver
}

func (JobLog) JobSubmitted(ctx context.Context, handle horde.JobHandle, cfg horde.JobConfiguration) {
	now := helper.GetTimestamp()
	job := &HordeJob{
		JobId:     string(handle),
		RequestId: requestId(ctx),
		Prompt:    cfg.Prompt,
		Models:    strings.Join(cfg.Models, ","),
		N:         cfg.Params.N,
		Status:    JobStatusSubmitted,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := job.Insert(); err != nil {
		logger.Errorf(ctx, "failed to record horde job %s: %s", handle, err.Error())
	}
}

func (JobLog) JobFinished(ctx context.Context, handle horde.JobHandle, err error, elapsed time.Duration) {
	failReason := ""
	if err != nil {
		failReason = err.Error()
	}
	status := jobStatus(err)
	if handle == "" {
		now := helper.GetTimestamp()
		job := &HordeJob{
			RequestId:  requestId(ctx),
			Status:     status,
			FailReason: failReason,
			CreatedAt:  now,
			UpdatedAt:  now,
			Duration:   elapsed.Seconds(),
		}
		if dbErr := job.Insert(); dbErr != nil {
			logger.Errorf(ctx, "failed to record rejected horde submission: %s", dbErr.Error())
		}
		return
	}
	if dbErr := FinishJob(string(handle), status, failReason, elapsed.Seconds()); dbErr != nil {
		logger.Errorf(ctx, "failed to update horde job %s: %s", handle, dbErr.Error())
	}
}
