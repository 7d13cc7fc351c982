// config/firebase.go
package config

import (
	"context"
	"log"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

var FirestoreClient *firestore.Client

// FirebaseInit initializes the Firebase App and the Firestore client used by
// the notification and chat channels.
func FirebaseInit() {
	ctx := context.Background()
	opt := option.WithCredentialsFile(AppConfig.FirebaseCredentialsFile)

	var conf *firebase.Config
	if AppConfig.FirebaseProjectID != "" {
		conf = &firebase.Config{ProjectID: AppConfig.FirebaseProjectID}
	}

	app, err := firebase.NewApp(ctx, conf, opt)
	if err != nil {
		log.Fatalf("firebase: error initializing app: %v", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		log.Fatalf("firebase: error getting Firestore client: %v", err)
	}

	FirestoreClient = client
}

// GetFirestoreClient returns the shared Firestore client.
func GetFirestoreClient() *firestore.Client {
	if FirestoreClient == nil {
		FirebaseInit()
	}
	return FirestoreClient
}
