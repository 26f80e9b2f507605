package utils

import (
	"context"
	"log"

	"viacampo/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var FCMClient *messaging.Client

// FirebaseInit initializes the Firebase Messaging client used for closure
// report notifications.
func FirebaseInit() {
	ctx := context.Background()

	var opts []option.ClientOption
	if config.AppConfig.FirebaseCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(config.AppConfig.FirebaseCredentialsFile))
	}

	fbConfig := &firebase.Config{ProjectID: config.AppConfig.FirebaseProjectID}
	app, err := firebase.NewApp(ctx, fbConfig, opts...)
	if err != nil {
		log.Fatalf("firebase: error initializing app: %v", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		log.Fatalf("firebase: error getting Messaging client: %v", err)
	}

	FCMClient = client
}
