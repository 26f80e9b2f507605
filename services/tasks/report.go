package tasks

import (
	"encoding/json"

	"viacampo/models"

	"github.com/hibiken/asynq"
)

const TypeReportDeliver = "report:deliver"

// NewReportDeliveryTask builds the task queued after a trip closes, handled
// by the notification worker.
func NewReportDeliveryTask(payload models.ReportDeliveryPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeReportDeliver, b)
	opts := []asynq.Option{asynq.MaxRetry(3)}

	return task, opts, nil
}
