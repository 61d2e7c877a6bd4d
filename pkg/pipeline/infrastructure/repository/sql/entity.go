package sql

import (
	"time"

	"github.com/tripwind/tripwind/pkg/pipeline/core/model"
)

// taskExecutionEntity is the persistence shape of model.TaskExecution.
type taskExecutionEntity struct {
	ID          string            `gorm:"column:id;primaryKey"`
	TaskName    string            `gorm:"column:task_name"`
	Trigger     string            `gorm:"column:trigger_type"`
	StartTime   time.Time         `gorm:"column:start_time"`
	EndTime     *time.Time        `gorm:"column:end_time"`
	Status      string            `gorm:"column:status"`
	ExitStatus  string            `gorm:"column:exit_status"`
	Failures    model.FailureList `gorm:"column:failures"`
	Counters    model.Counters    `gorm:"column:counters"`
	CreateTime  time.Time         `gorm:"column:create_time"`
	LastUpdated time.Time         `gorm:"column:last_updated"`
	Version     int               `gorm:"column:version"`
}

// TableName implements the gorm table name convention.
func (taskExecutionEntity) TableName() string {
	return "task_executions"
}

func fromDomainTaskExecution(te *model.TaskExecution) *taskExecutionEntity {
	return &taskExecutionEntity{
		ID:          te.ID,
		TaskName:    te.TaskName,
		Trigger:     string(te.Trigger),
		StartTime:   te.StartTime,
		EndTime:     te.EndTime,
		Status:      string(te.Status),
		ExitStatus:  string(te.ExitStatus),
		Failures:    te.Failures,
		Counters:    te.Counters,
		CreateTime:  te.CreateTime,
		LastUpdated: te.LastUpdated,
		Version:     te.Version,
	}
}

func toDomainTaskExecution(e *taskExecutionEntity) *model.TaskExecution {
	return &model.TaskExecution{
		ID:          e.ID,
		TaskName:    e.TaskName,
		Trigger:     model.Trigger(e.Trigger),
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Status:      model.TaskStatus(e.Status),
		ExitStatus:  model.ExitStatus(e.ExitStatus),
		Failures:    e.Failures,
		Counters:    e.Counters,
		CreateTime:  e.CreateTime,
		LastUpdated: e.LastUpdated,
		Version:     e.Version,
	}
}
