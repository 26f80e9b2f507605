package notification

import (
	"context"
	"fmt"

	"viacampo/config"
	"viacampo/utils"

	"firebase.google.com/go/v4/messaging"
)

// FCMNotificationService pushes to the configured FCM topic.
type FCMNotificationService struct{}

func (s *FCMNotificationService) SendReportReady(ctx context.Context, tripID, date string) error {
	client := utils.FCMClient
	if client == nil {
		return fmt.Errorf("fcm client not initialized")
	}

	msg := &messaging.Message{
		Topic: config.AppConfig.ReportTopic,
		Notification: &messaging.Notification{
			Title: "Relatório de viagem disponível",
			Body:  fmt.Sprintf("O relatório da viagem de %s foi gerado.", date),
		},
		Data: map[string]string{
			"tripId": tripID,
		},
	}

	if _, err := client.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send report notification: %w", err)
	}
	return nil
}
