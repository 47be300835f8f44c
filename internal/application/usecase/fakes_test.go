// internal/application/usecase/fakes_test.go
package usecase

import (
	"context"
	"sort"
	"time"

	artdom "atelier/internal/domain/artwork"
	cartdom "atelier/internal/domain/cart"
	orderdom "atelier/internal/domain/order"
	paydom "atelier/internal/domain/payment"
	shadom "atelier/internal/domain/shippingAddress"
	userdom "atelier/internal/domain/user"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// ----------------------------------------
// artwork

type fakeArtworkRepo struct {
	byID map[string]artdom.Artwork
}

func newFakeArtworkRepo() *fakeArtworkRepo {
	return &fakeArtworkRepo{byID: map[string]artdom.Artwork{}}
}

func (r *fakeArtworkRepo) put(a artdom.Artwork) { r.byID[a.ID] = a }

func (r *fakeArtworkRepo) GetByID(_ context.Context, id string) (artdom.Artwork, error) {
	a, ok := r.byID[id]
	if !ok {
		return artdom.Artwork{}, artdom.ErrNotFound
	}
	return a, nil
}

func (r *fakeArtworkRepo) List(_ context.Context, f artdom.Filter) ([]artdom.Artwork, error) {
	out := []artdom.Artwork{}
	for _, a := range r.byID {
		if f.ForSale != nil && a.ForSale != *f.ForSale {
			continue
		}
		if f.ArtistID != "" && a.ArtistID != f.ArtistID {
			continue
		}
		if f.OwnerID != "" && a.OwnerID != f.OwnerID {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeArtworkRepo) Create(_ context.Context, a artdom.Artwork) (artdom.Artwork, error) {
	if _, ok := r.byID[a.ID]; ok {
		return artdom.Artwork{}, artdom.ErrConflict
	}
	r.byID[a.ID] = a
	return a, nil
}

func (r *fakeArtworkRepo) Save(_ context.Context, a artdom.Artwork) (artdom.Artwork, error) {
	r.byID[a.ID] = a
	return a, nil
}

func (r *fakeArtworkRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return artdom.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeArtworkRepo) Like(ctx context.Context, id, userID string, now time.Time) (artdom.Artwork, error) {
	a, err := r.GetByID(ctx, id)
	if err != nil {
		return artdom.Artwork{}, err
	}
	if err := a.Like(userID, now); err != nil {
		return artdom.Artwork{}, err
	}
	return r.Save(ctx, a)
}

func (r *fakeArtworkRepo) Unlike(ctx context.Context, id, userID string, now time.Time) (artdom.Artwork, error) {
	a, err := r.GetByID(ctx, id)
	if err != nil {
		return artdom.Artwork{}, err
	}
	if err := a.Unlike(userID, now); err != nil {
		return artdom.Artwork{}, err
	}
	return r.Save(ctx, a)
}

func (r *fakeArtworkRepo) MarkSold(ctx context.Context, id, buyerID string, now time.Time) (artdom.Artwork, error) {
	a, err := r.GetByID(ctx, id)
	if err != nil {
		return artdom.Artwork{}, err
	}
	if err := a.MarkSold(buyerID, now); err != nil {
		return artdom.Artwork{}, err
	}
	return r.Save(ctx, a)
}

func (r *fakeArtworkRepo) Count(ctx context.Context, f artdom.Filter) (int, error) {
	list, err := r.List(ctx, f)
	if err != nil {
		return 0, err
	}
	return len(list), nil
}

// ----------------------------------------
// order

type fakeOrderRepo struct {
	byID  map[string]orderdom.Order
	order []string // insertion order, oldest first
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{byID: map[string]orderdom.Order{}}
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (orderdom.Order, error) {
	o, ok := r.byID[id]
	if !ok {
		return orderdom.Order{}, orderdom.ErrNotFound
	}
	return o, nil
}

func (r *fakeOrderRepo) all() []orderdom.Order {
	out := make([]orderdom.Order, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- { // newest first
		out = append(out, r.byID[r.order[i]])
	}
	return out
}

func (r *fakeOrderRepo) ListByUserID(_ context.Context, userID string) ([]orderdom.Order, error) {
	out := []orderdom.Order{}
	for _, o := range r.all() {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ListAll(_ context.Context) ([]orderdom.Order, error) {
	return r.all(), nil
}

func (r *fakeOrderRepo) ListByCreatedRange(_ context.Context, from, to time.Time) ([]orderdom.Order, error) {
	out := []orderdom.Order{}
	for _, o := range r.all() {
		if !from.IsZero() && o.CreatedAt.Before(from) {
			continue
		}
		if !to.IsZero() && !o.CreatedAt.Before(to) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (r *fakeOrderRepo) Create(_ context.Context, o orderdom.Order) (orderdom.Order, error) {
	if _, ok := r.byID[o.ID]; ok {
		return orderdom.Order{}, orderdom.ErrConflict
	}
	r.byID[o.ID] = o
	r.order = append(r.order, o.ID)
	return o, nil
}

func (r *fakeOrderRepo) Save(_ context.Context, o orderdom.Order) (orderdom.Order, error) {
	if _, ok := r.byID[o.ID]; !ok {
		return orderdom.Order{}, orderdom.ErrNotFound
	}
	r.byID[o.ID] = o
	return o, nil
}

func (r *fakeOrderRepo) Count(_ context.Context) (int, error) { return len(r.byID), nil }

// ----------------------------------------
// payment

type fakePaymentRepo struct {
	byOrderID map[string]paydom.Payment
	createErr error
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{byOrderID: map[string]paydom.Payment{}}
}

func (r *fakePaymentRepo) GetByOrderID(_ context.Context, orderID string) (paydom.Payment, error) {
	p, ok := r.byOrderID[orderID]
	if !ok {
		return paydom.Payment{}, paydom.ErrNotFound
	}
	return p, nil
}

func (r *fakePaymentRepo) Create(_ context.Context, p paydom.Payment) (paydom.Payment, error) {
	if r.createErr != nil {
		return paydom.Payment{}, r.createErr
	}
	if _, ok := r.byOrderID[p.OrderID]; ok {
		return paydom.Payment{}, paydom.ErrConflict
	}
	r.byOrderID[p.OrderID] = p
	return p, nil
}

func (r *fakePaymentRepo) Save(_ context.Context, p paydom.Payment) (paydom.Payment, error) {
	r.byOrderID[p.OrderID] = p
	return p, nil
}

// ----------------------------------------
// shipping address

type fakeAddressRepo struct {
	byID map[string]shadom.ShippingAddress
}

func newFakeAddressRepo() *fakeAddressRepo {
	return &fakeAddressRepo{byID: map[string]shadom.ShippingAddress{}}
}

func (r *fakeAddressRepo) GetByID(_ context.Context, id string) (shadom.ShippingAddress, error) {
	a, ok := r.byID[id]
	if !ok {
		return shadom.ShippingAddress{}, shadom.ErrNotFound
	}
	return a, nil
}

func (r *fakeAddressRepo) ListByUserID(_ context.Context, userID string) ([]shadom.ShippingAddress, error) {
	out := []shadom.ShippingAddress{}
	for _, a := range r.byID {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeAddressRepo) Create(_ context.Context, a shadom.ShippingAddress) (shadom.ShippingAddress, error) {
	if _, ok := r.byID[a.ID]; ok {
		return shadom.ShippingAddress{}, shadom.ErrConflict
	}
	r.byID[a.ID] = a
	return a, nil
}

func (r *fakeAddressRepo) Save(_ context.Context, a shadom.ShippingAddress) (shadom.ShippingAddress, error) {
	if _, ok := r.byID[a.ID]; !ok {
		return shadom.ShippingAddress{}, shadom.ErrNotFound
	}
	r.byID[a.ID] = a
	return a, nil
}

func (r *fakeAddressRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return shadom.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeAddressRepo) UnsetDefaults(_ context.Context, userID, excludeID string) error {
	for id, a := range r.byID {
		if a.UserID != userID || id == excludeID || !a.IsDefault {
			continue
		}
		a.IsDefault = false
		r.byID[id] = a
	}
	return nil
}

// ----------------------------------------
// cart

type fakeCartRepo struct {
	byUserID map[string]cartdom.Cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{byUserID: map[string]cartdom.Cart{}}
}

func (r *fakeCartRepo) GetByUserID(_ context.Context, userID string) (*cartdom.Cart, error) {
	c, ok := r.byUserID[userID]
	if !ok {
		return nil, nil
	}
	cp := c
	cp.Items = append([]cartdom.Item{}, c.Items...)
	return &cp, nil
}

func (r *fakeCartRepo) Upsert(_ context.Context, c *cartdom.Cart) error {
	cp := *c
	cp.Items = append([]cartdom.Item{}, c.Items...)
	r.byUserID[c.ID] = cp
	return nil
}

func (r *fakeCartRepo) DeleteByUserID(_ context.Context, userID string) error {
	delete(r.byUserID, userID)
	return nil
}

// ----------------------------------------
// user

type fakeUserRepo struct {
	byID map[string]userdom.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]userdom.User{}}
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (userdom.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return userdom.User{}, userdom.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (userdom.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return userdom.User{}, userdom.ErrNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, u userdom.User) (userdom.User, error) {
	if _, ok := r.byID[u.ID]; ok {
		return userdom.User{}, userdom.ErrConflict
	}
	r.byID[u.ID] = u
	return u, nil
}

func (r *fakeUserRepo) Save(_ context.Context, u userdom.User) (userdom.User, error) {
	r.byID[u.ID] = u
	return u, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return userdom.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]userdom.User, error) {
	out := []userdom.User{}
	for _, u := range r.byID {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int, error) { return len(r.byID), nil }

// ----------------------------------------
// ledger and mail

type fakeLedger struct {
	entries    []SaleEntry
	summary    LedgerSummary
	summaryErr error
}

func (l *fakeLedger) Record(_ context.Context, e SaleEntry) error {
	l.entries = append(l.entries, e)
	return nil
}

func (l *fakeLedger) Summary(_ context.Context, _, _ time.Time) (LedgerSummary, error) {
	return l.summary, l.summaryErr
}

type fakeResetLinks struct {
	link string
	err  error
}

func (f fakeResetLinks) PasswordResetLink(_ context.Context, _ string) (string, error) {
	return f.link, f.err
}

type fakeResetMailer struct {
	sentTo    []string
	sentLinks []string
	err       error
}

func (m *fakeResetMailer) SendPasswordReset(_ context.Context, toEmail, resetLink string) error {
	if m.err != nil {
		return m.err
	}
	m.sentTo = append(m.sentTo, toEmail)
	m.sentLinks = append(m.sentLinks, resetLink)
	return nil
}
