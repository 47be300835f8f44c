// internal/platform/di/shared/infra.go
package shared

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	appcfg "atelier/internal/infra/config"
	"atelier/internal/infra/database"
	firestoreinfra "atelier/internal/infra/firestore"
)

// Infra is shared runtime infrastructure for DI.
// - owns external clients (Firestore/FirebaseAuth/GCS/Postgres)
// - owns env/config-resolved runtime settings (bucket, mail sender)
//
// Infra must NOT depend on routers, handlers, or usecases.
type Infra struct {
	Config    *appcfg.Config
	ProjectID string

	// Clients (owned; Close-managed)
	Firestore    *firestore.Client
	GCS          *storage.Client
	FirebaseApp  *firebase.App
	FirebaseAuth *firebaseauth.Client
	Postgres     *database.DB
}

// NewInfra initializes shared infra.
// Firestore is strict (returns error). Firebase Auth, GCS and Postgres
// are best-effort (warn + continue with the feature disabled).
func NewInfra(ctx context.Context) (*Infra, error) {
	cfg := appcfg.Load()
	if cfg == nil {
		return nil, errors.New("shared.infra: config is nil")
	}

	projectID := strings.TrimSpace(cfg.FirestoreProjectID)
	if projectID == "" {
		return nil, errors.New("shared.infra: projectID is empty (set FIRESTORE_PROJECT_ID or GCP_PROJECT_ID)")
	}

	inf := &Infra{
		Config:    cfg,
		ProjectID: projectID,
	}

	var clientOpts []option.ClientOption
	if credFile := strings.TrimSpace(cfg.FirestoreCredentialsFile); credFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(credFile))
		log.Printf("[shared.infra] using credentials file for GCP clients")
	} else {
		log.Printf("[shared.infra] using Application Default Credentials")
	}

	// 1) Firestore (strict)
	{
		fs, err := firestoreinfra.NewClient(ctx, inf.ProjectID, cfg.FirestoreCredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("shared.infra: %w", err)
		}
		if err := fs.Ping(ctx); err != nil {
			log.Printf("[shared.infra] WARN: firestore ping failed: %v", err)
		}
		inf.Firestore = fs.Client
	}

	// 2) GCS (best-effort; image uploads disabled when unavailable)
	{
		gcsClient, err := storage.NewClient(ctx, clientOpts...)
		if err != nil {
			log.Printf("[shared.infra] WARN: storage.NewClient failed: %v (artwork image uploads disabled)", err)
		} else {
			inf.GCS = gcsClient
			log.Printf("[shared.infra] GCS storage client initialized")
		}
	}

	// 3) Firebase App/Auth (best-effort; bearer verification requires it)
	{
		fbCfg := &firebase.Config{ProjectID: strings.TrimSpace(cfg.FirebaseProjectID)}
		fbApp, err := firebase.NewApp(ctx, fbCfg, clientOpts...)
		if err != nil {
			log.Printf("[shared.infra] WARN: firebase app init failed: %v", err)
		} else {
			inf.FirebaseApp = fbApp
			authClient, err := fbApp.Auth(ctx)
			if err != nil {
				log.Printf("[shared.infra] WARN: firebase auth init failed: %v", err)
			} else {
				inf.FirebaseAuth = authClient
				log.Printf("[shared.infra] Firebase Auth initialized")
			}
		}
	}

	// 4) Postgres sales ledger (best-effort, only when DATABASE_URL set)
	if dsn := strings.TrimSpace(cfg.DatabaseURL); dsn != "" {
		pg, err := database.NewConnection(dsn)
		if err != nil {
			log.Printf("[shared.infra] WARN: postgres connect failed: %v (sales ledger disabled)", err)
		} else {
			inf.Postgres = pg
		}
	} else {
		log.Printf("[shared.infra] postgres not configured (DATABASE_URL empty); sales ledger disabled")
	}

	return inf, nil
}

// PostgresDB returns the raw pool or nil when the ledger is disabled.
func (inf *Infra) PostgresDB() *sql.DB {
	if inf == nil || inf.Postgres == nil {
		return nil
	}
	return inf.Postgres.Client
}

// Close releases every owned client. Safe on partially-built Infra.
func (inf *Infra) Close() {
	if inf == nil {
		return
	}
	if inf.Postgres != nil {
		if err := inf.Postgres.Close(); err != nil {
			log.Printf("[shared.infra] WARN: postgres close failed: %v", err)
		}
	}
	if inf.GCS != nil {
		if err := inf.GCS.Close(); err != nil {
			log.Printf("[shared.infra] WARN: gcs close failed: %v", err)
		}
	}
	if inf.Firestore != nil {
		if err := inf.Firestore.Close(); err != nil {
			log.Printf("[shared.infra] WARN: firestore close failed: %v", err)
		}
	}
}
