package database

import (
	"context"
	"log"

	"viacampo/config"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// FirestoreClient is the global Firestore client. The tray queue, trips and
// the user directory all live here.
var FirestoreClient *firestore.Client

// AuthClient verifies Firebase ID tokens presented at login.
var AuthClient *auth.Client

// InitFirestore initializes the Firebase app and the Firestore and Auth
// clients. With no credentials file configured, application default
// credentials are used.
func InitFirestore() {
	ctx := context.Background()

	var opts []option.ClientOption
	if config.AppConfig.FirebaseCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(config.AppConfig.FirebaseCredentialsFile))
	}

	fbConfig := &firebase.Config{ProjectID: config.AppConfig.FirebaseProjectID}
	app, err := firebase.NewApp(ctx, fbConfig, opts...)
	if err != nil {
		log.Fatalf("firestore: error initializing Firebase app: %v", err)
	}

	fsClient, err := app.Firestore(ctx)
	if err != nil {
		log.Fatalf("firestore: error initializing Firestore client: %v", err)
	}
	FirestoreClient = fsClient

	authClient, err := app.Auth(ctx)
	if err != nil {
		log.Fatalf("firestore: error initializing Auth client: %v", err)
	}
	AuthClient = authClient

	log.Printf("Connected to Firestore project: %s", config.AppConfig.FirebaseProjectID)
}
