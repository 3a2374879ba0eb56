// Package session holds the per-session application state: the cached
// product catalog, the authenticated user, the seller flag and the cart.
// It is the single source of truth for the UI and is passed explicitly
// to whatever needs it; there is no ambient global.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/kadoshsoftwares/quickcart-api/pkg/models"
)

// Event identifies which part of the state changed.
type Event int

const (
	EventCatalog Event = iota
	EventUser
	EventCart
)

// Notifier receives user-visible messages for failed background loads.
type Notifier interface {
	Notify(message string)
}

type noopNotifier struct{}

func (noopNotifier) Notify(string) {}

// ErrNoIdentity is returned when a load requiring authentication is
// attempted before the identity is resolved.
var ErrNoIdentity = errors.New("identity not resolved")

// State is the session state container. It is single-owner by design but
// guarded by a mutex so an asynchronously completing fetch re-enters
// through the same lock as local mutations.
type State struct {
	mu       sync.Mutex
	api      StorefrontAPI
	notifier Notifier

	products  []models.Product
	user      *models.User
	isSeller  bool
	cartItems models.CartItems

	// cartVersion stamps every local cart mutation so a slow fetch
	// completing afterwards can be recognized as stale and discarded.
	cartVersion uint64

	subscribers []chan Event
}

func NewState(api StorefrontAPI, notifier Notifier) *State {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &State{
		api:       api,
		notifier:  notifier,
		cartItems: make(models.CartItems),
	}
}

// Subscribe returns a channel receiving an Event after every state change.
// Slow subscribers miss events rather than blocking mutations.
func (s *State) Subscribe() <-chan Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan Event, 16)
	s.subscribers = append(s.subscribers, ch)
	return ch
}

func (s *State) publish(event Event) {
	for _, ch := range s.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

// LoadCatalog replaces the cached product list with a fresh snapshot.
// Safe to call repeatedly.
func (s *State) LoadCatalog(ctx context.Context) error {
	products, err := s.api.FetchProducts(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
	s.publish(EventCatalog)
	return nil
}

// LoadUserContext fetches seller status and the persisted cart for the
// resolved identity, replacing local cart state wholesale. If a local
// cart mutation lands while the fetch is in flight, the fetched cart is
// stale and is discarded; the user and seller flag still apply. The
// seller flag is one-directional: once set it stays set for the session.
func (s *State) LoadUserContext(ctx context.Context, token string) error {
	if token == "" {
		return ErrNoIdentity
	}

	s.mu.Lock()
	fetchedAt := s.cartVersion
	s.mu.Unlock()

	user, err := s.api.FetchUserData(ctx, token)
	if err != nil {
		s.notifier.Notify(err.Error())
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = user
	if user.IsSeller() {
		s.isSeller = true
	}
	if s.cartVersion == fetchedAt {
		s.cartItems = user.CartItems.Sanitized()
		s.publish(EventCart)
	}
	s.publish(EventUser)
	return nil
}

// AddItem increments the quantity for a product by one, creating the
// entry when absent. No upper bound is enforced.
func (s *State) AddItem(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cartItems[productID]++
	s.cartVersion++
	s.publish(EventCart)
}

// SetQuantity sets the quantity for a product directly. A quantity of
// zero or less removes the entry entirely.
func (s *State) SetQuantity(productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		delete(s.cartItems, productID)
	} else {
		s.cartItems[productID] = quantity
	}
	s.cartVersion++
	s.publish(EventCart)
}

// ItemCount returns the sum of all quantities across the cart.
func (s *State) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, qty := range s.cartItems {
		count += qty
	}
	return count
}

// CartTotal returns the sum of offer price times quantity over the cart.
// Entries not found in the current catalog snapshot contribute zero.
func (s *State) CartTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0.0
	for id, qty := range s.cartItems {
		for i := range s.products {
			if s.products[i].ID.Hex() == id {
				total += s.products[i].OfferPrice * float64(qty)
				break
			}
		}
	}
	return total
}

// SyncCart pushes the local cart to the remote store.
func (s *State) SyncCart(ctx context.Context, token string) error {
	if token == "" {
		return ErrNoIdentity
	}

	s.mu.Lock()
	cart := make(models.CartItems, len(s.cartItems))
	for id, qty := range s.cartItems {
		cart[id] = qty
	}
	s.mu.Unlock()

	if err := s.api.UpdateCart(ctx, token, cart); err != nil {
		s.notifier.Notify(err.Error())
		return err
	}
	return nil
}

// Products returns the current catalog snapshot.
func (s *State) Products() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]models.Product, len(s.products))
	copy(snapshot, s.products)
	return snapshot
}

// CartItems returns a copy of the current cart.
func (s *State) CartItems() models.CartItems {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := make(models.CartItems, len(s.cartItems))
	for id, qty := range s.cartItems {
		cart[id] = qty
	}
	return cart
}

func (s *State) IsSeller() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isSeller
}

func (s *State) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}
