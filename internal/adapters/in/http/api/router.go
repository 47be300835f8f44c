// internal/adapters/in/http/api/router.go
package api

import (
	"log"
	"net/http"

	"atelier/internal/adapters/in/http/middleware"
)

// Deps is the marketplace handler set plus the auth middlewares the
// routes run behind.
type Deps struct {
	User            http.Handler
	Artwork         http.Handler
	Cart            http.Handler
	ShippingAddress http.Handler
	Order           http.Handler
	Admin           http.Handler

	Auth      *middleware.UserAuthMiddleware
	AdminAuth *middleware.AdminAuthMiddleware
}

// handleSafe registers pattern with h. A nil handler logs and registers
// NotFoundHandler instead so startup never panics on partial wiring.
func handleSafe(mux *http.ServeMux, pattern string, h http.Handler, name string) {
	if h == nil {
		log.Printf("[api.router] WARN: nil handler: %s pattern=%s (registering NotFoundHandler)", name, pattern)
		h = http.NotFoundHandler()
	}
	mux.Handle(pattern, h)
}

// Register registers the /api routes onto mux.
//
// Auth model:
//   - /api/users/forgot-password is public
//   - /api/artworks reads are public, writes need a bearer token
//     (optional-auth wrapper; the handler checks per method)
//   - everything else requires a verified token
//   - /api/admin additionally requires the admin role
func Register(mux *http.ServeMux, deps Deps) {
	if mux == nil {
		return
	}

	authed := func(h http.Handler) http.Handler {
		if deps.Auth == nil || h == nil {
			return h
		}
		return deps.Auth.Handler(h)
	}
	optional := func(h http.Handler) http.Handler {
		if deps.Auth == nil || h == nil {
			return h
		}
		return deps.Auth.OptionalHandler(h)
	}
	adminOnly := func(h http.Handler) http.Handler {
		if deps.AdminAuth == nil || h == nil {
			return authed(h)
		}
		return authed(deps.AdminAuth.Handler(h))
	}

	// users (forgot-password stays outside the auth wrapper)
	handleSafe(mux, "/api/users/forgot-password", deps.User, "User(forgot-password)")
	handleSafe(mux, "/api/users", authed(deps.User), "User")
	handleSafe(mux, "/api/users/", authed(deps.User), "User")

	// catalog
	handleSafe(mux, "/api/artworks", optional(deps.Artwork), "Artwork")
	handleSafe(mux, "/api/artworks/", optional(deps.Artwork), "Artwork")

	// cart
	handleSafe(mux, "/api/cart", authed(deps.Cart), "Cart")
	handleSafe(mux, "/api/cart/", authed(deps.Cart), "Cart")

	// address book (longer prefix wins over /api/orders/)
	handleSafe(mux, "/api/orders/addresses", authed(deps.ShippingAddress), "ShippingAddress")
	handleSafe(mux, "/api/orders/addresses/", authed(deps.ShippingAddress), "ShippingAddress")

	// orders
	handleSafe(mux, "/api/orders", authed(deps.Order), "Order")
	handleSafe(mux, "/api/orders/", authed(deps.Order), "Order")

	// admin dashboard
	handleSafe(mux, "/api/admin/", adminOnly(deps.Admin), "Admin")
}
