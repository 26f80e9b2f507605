package cron

import (
	"context"
	"encoding/json"
	"log"

	"viacampo/config"
	"viacampo/models"
	"viacampo/services/notification"
	"viacampo/services/tasks"

	"github.com/hibiken/asynq"
)

// InitReportWorker runs the async report delivery worker in background.
func InitReportWorker(notifSvc notification.NotificationService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeReportDeliver, handleReportDelivery(notifSvc))

	go func() {
		log.Println("[ReportWorker] Starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Printf("[ReportWorker] Worker stopped: %v", err)
		}
	}()
}

func handleReportDelivery(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReportDeliveryPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReportWorker] Invalid payload: %v", err)
			return err
		}

		if err := notifSvc.SendReportReady(ctx, p.TripID, p.Date); err != nil {
			log.Printf("[ReportWorker] Failed to notify report %s for trip %s: %v", p.ReportID, p.TripID, err)
			return err
		}
		return nil
	}
}
