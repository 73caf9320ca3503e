package cart

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"

	"storefront/internal/domain"
	staterepo "storefront/internal/repository/state"
)

// Service owns the cart line items for every visitor. The in-memory cart is
// the single source of truth; every mutation writes it back to the state
// repository as a best-effort side effect, so a failed save degrades to
// in-memory-only behavior for the rest of the session.
type Service struct {
	repo   staterepo.Repository
	logger *log.Logger

	mu    sync.Mutex
	carts map[string]*visitorCart
}

type visitorCart struct {
	mu   sync.Mutex
	cart domain.Cart
}

// Candidate is an add request. Quantity <= 0 is treated as 1.
type Candidate struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Image     string `json:"image"`
	Quantity  int    `json:"quantity"`
}

// Snapshot is the cart state handed to the HTTP layer after an operation.
type Snapshot struct {
	Items  []domain.CartItem `json:"items"`
	IsOpen bool              `json:"isOpen"`
	Total  int64             `json:"total"`
}

func New(repo staterepo.Repository, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		repo:   repo,
		logger: logger,
		carts:  make(map[string]*visitorCart),
	}
}

// AddItem merges the candidate into the visitor's cart: an existing id
// accumulates quantity and keeps its first-seen name, price, and image; a new
// id is appended, so display order is first-add order.
func (s *Service) AddItem(ctx context.Context, visitorID string, c Candidate) Snapshot {
	qty := c.Quantity
	if qty <= 0 {
		qty = 1
	}
	return s.mutate(ctx, visitorID, func(cart *domain.Cart) {
		for i := range cart.Items {
			if cart.Items[i].ID == c.ID {
				cart.Items[i].Quantity += qty
				return
			}
		}
		cart.Items = append(cart.Items, domain.CartItem{
			ID:        c.ID,
			Name:      c.Name,
			UnitPrice: c.UnitPrice,
			Image:     c.Image,
			Quantity:  qty,
		})
	})
}

// RemoveItem deletes the line with the given id; no-op when absent.
func (s *Service) RemoveItem(ctx context.Context, visitorID, id string) Snapshot {
	return s.mutate(ctx, visitorID, func(cart *domain.Cart) {
		kept := cart.Items[:0]
		for _, item := range cart.Items {
			if item.ID != id {
				kept = append(kept, item)
			}
		}
		cart.Items = kept
	})
}

// UpdateQuantity replaces the line's quantity, clamped at zero. A resulting
// quantity of zero removes the line instead of keeping a zero-quantity row.
func (s *Service) UpdateQuantity(ctx context.Context, visitorID, id string, quantity int) Snapshot {
	if quantity < 0 {
		quantity = 0
	}
	return s.mutate(ctx, visitorID, func(cart *domain.Cart) {
		kept := cart.Items[:0]
		for _, item := range cart.Items {
			if item.ID == id {
				item.Quantity = quantity
			}
			if item.Quantity > 0 {
				kept = append(kept, item)
			}
		}
		cart.Items = kept
	})
}

// Toggle flips the sidebar visibility flag. Line items are untouched.
func (s *Service) Toggle(ctx context.Context, visitorID string) Snapshot {
	return s.mutate(ctx, visitorID, func(cart *domain.Cart) {
		cart.IsOpen = !cart.IsOpen
	})
}

// Clear empties the cart. Called after a successful order placement.
func (s *Service) Clear(ctx context.Context, visitorID string) Snapshot {
	return s.mutate(ctx, visitorID, func(cart *domain.Cart) {
		cart.Items = nil
	})
}

// Snapshot returns the current cart without mutating it.
func (s *Service) Snapshot(ctx context.Context, visitorID string) Snapshot {
	vc := s.open(ctx, visitorID)
	vc.mu.Lock()
	defer vc.mu.Unlock()
	return snapshotOf(vc.cart)
}

func (s *Service) mutate(ctx context.Context, visitorID string, fn func(*domain.Cart)) Snapshot {
	vc := s.open(ctx, visitorID)
	vc.mu.Lock()
	defer vc.mu.Unlock()

	fn(&vc.cart)

	if err := s.repo.Save(ctx, visitorID, staterepo.SlotCart, vc.cart); err != nil {
		s.logger.Printf("cart: persist visitor=%s error=%v", visitorID, err)
	}
	return snapshotOf(vc.cart)
}

// open returns the in-memory cart for the visitor, loading the persisted
// slot on first access. Missing or corrupt state resolves to an empty cart.
func (s *Service) open(ctx context.Context, visitorID string) *visitorCart {
	s.mu.Lock()
	defer s.mu.Unlock()

	if vc, ok := s.carts[visitorID]; ok {
		return vc
	}

	vc := &visitorCart{}
	if err := s.repo.Load(ctx, visitorID, staterepo.SlotCart, &vc.cart); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Printf("cart: load visitor=%s error=%v", visitorID, err)
		}
		vc.cart = domain.Cart{}
	}
	s.carts[visitorID] = vc
	return vc
}

func snapshotOf(cart domain.Cart) Snapshot {
	items := make([]domain.CartItem, len(cart.Items))
	copy(items, cart.Items)
	return Snapshot{
		Items:  items,
		IsOpen: cart.IsOpen,
		Total:  cart.Total(),
	}
}
