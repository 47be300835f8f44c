// internal/infra/config/config.go
package config

import "os"

// Config holds the environment-driven settings for the whole service.
type Config struct {
	Port string

	FirestoreProjectID       string
	FirestoreCredentialsFile string
	FirebaseProjectID        string

	// DatabaseURL is the optional PostgreSQL DSN for the sales ledger.
	// Empty disables the relational reporting sink.
	DatabaseURL string

	// ArtworkImageBucket is the GCS bucket receiving artwork uploads.
	ArtworkImageBucket string

	SendGridAPIKey string
	MailFrom       string

	CORSAllowedOrigin string
}

// Load reads the environment and returns the Config.
func Load() *Config {
	defaultProject := getenvDefault("GCP_PROJECT_ID", "atelier-marketplace")

	return &Config{
		Port: getenvDefault("PORT", "8080"),

		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		FirebaseProjectID:        getenvDefault("FIREBASE_PROJECT_ID", defaultProject),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		ArtworkImageBucket: os.Getenv("ARTWORK_IMAGE_BUCKET"),

		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		MailFrom:       getenvDefault("MAIL_FROM", "no-reply@atelier.example.com"),

		CORSAllowedOrigin: getenvDefault("CORS_ALLOWED_ORIGIN", "*"),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
