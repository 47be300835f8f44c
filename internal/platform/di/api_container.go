// internal/platform/di/api_container.go
package di

import (
	"context"
	"log"
	"net/http"
	"strings"

	api "atelier/internal/adapters/in/http/api"
	apiHandler "atelier/internal/adapters/in/http/api/handler"
	"atelier/internal/adapters/in/http/middleware"
	outdb "atelier/internal/adapters/out/db"
	outfs "atelier/internal/adapters/out/firestore"
	outgcs "atelier/internal/adapters/out/gcs"
	outmail "atelier/internal/adapters/out/mail"
	usecase "atelier/internal/application/usecase"
	"atelier/internal/platform/di/shared"
)

// Container wires repositories, usecases and handlers for the api
// surface. Built once at startup.
type Container struct {
	Infra *shared.Infra

	Users     *usecase.UserUsecase
	Artworks  *usecase.ArtworkUsecase
	Carts     *usecase.CartUsecase
	Addresses *usecase.ShippingAddressUsecase
	Orders    *usecase.OrderUsecase
	Stats     *usecase.StatsUsecase

	Deps api.Deps
}

// NewAPIContainer builds the full dependency graph on top of Infra.
func NewAPIContainer(ctx context.Context, inf *shared.Infra) *Container {
	c := &Container{Infra: inf}

	// Outbound: Firestore repositories.
	userRepo := outfs.NewUserRepositoryFS(inf.Firestore)
	artRepo := outfs.NewArtworkRepositoryFS(inf.Firestore)
	cartRepo := outfs.NewCartRepositoryFS(inf.Firestore)
	addrRepo := outfs.NewShippingAddressRepositoryFS(inf.Firestore)
	orderRepo := outfs.NewOrderRepositoryFS(inf.Firestore)
	payRepo := outfs.NewPaymentRepositoryFS(inf.Firestore)

	// Outbound: artwork image store (optional).
	var images usecase.ImageStore
	if inf.GCS != nil && strings.TrimSpace(inf.Config.ArtworkImageBucket) != "" {
		images = outgcs.NewArtworkImageRepositoryGCS(inf.GCS, inf.Config.ArtworkImageBucket)
	} else {
		log.Printf("[di] artwork image store not configured")
	}

	// Outbound: password-reset mail (optional).
	var links usecase.ResetLinkProvider
	if inf.FirebaseAuth != nil {
		links = inf.FirebaseAuth
	}
	var mailer usecase.ResetMailer
	if key := strings.TrimSpace(inf.Config.SendGridAPIKey); key != "" {
		mailer = outmail.NewPasswordResetMailer(outmail.NewSendGridClient(key), inf.Config.MailFrom)
	} else {
		log.Printf("[di] sendgrid not configured (SENDGRID_API_KEY empty); reset mail disabled")
	}

	// Usecases.
	c.Users = usecase.NewUserUsecase(userRepo, links, mailer)
	c.Artworks = usecase.NewArtworkUsecase(artRepo, userRepo, images)
	c.Carts = usecase.NewCartUsecase(cartRepo, artRepo)
	c.Addresses = usecase.NewShippingAddressUsecase(addrRepo)
	c.Orders = usecase.NewOrderUsecase(orderRepo, payRepo, artRepo, addrRepo)
	c.Stats = usecase.NewStatsUsecase(userRepo, artRepo, c.Orders)

	// Optional relational sales ledger.
	if pg := inf.PostgresDB(); pg != nil {
		ledger := outdb.NewSalesLedgerRepositoryPG(pg)
		if err := ledger.EnsureSchema(ctx); err != nil {
			log.Printf("[di] WARN: sales ledger schema setup failed: %v (ledger disabled)", err)
		} else {
			c.Orders.WithSalesLedger(ledger)
			log.Printf("[di] sales ledger enabled")
		}
	}

	// Inbound: handlers + middleware.
	c.Deps = api.Deps{
		User:            apiHandler.NewUserHandler(c.Users),
		Artwork:         apiHandler.NewArtworkHandler(c.Artworks),
		Cart:            apiHandler.NewCartHandler(c.Carts),
		ShippingAddress: apiHandler.NewShippingAddressHandler(c.Addresses),
		Order:           apiHandler.NewOrderHandler(c.Orders, c.Carts, c.Users),
		Admin:           apiHandler.NewAdminHandler(c.Stats),

		Auth:      &middleware.UserAuthMiddleware{FirebaseAuth: inf.FirebaseAuth},
		AdminAuth: &middleware.AdminAuthMiddleware{Users: userRepo},
	}

	return c
}

// RegisterAPI registers the api routes onto mux.
func RegisterAPI(mux *http.ServeMux, c *Container) {
	if mux == nil || c == nil {
		return
	}
	api.Register(mux, c.Deps)
}
