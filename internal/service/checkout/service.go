package checkout

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"log"
	"strconv"
	"strings"

	"storefront/internal/contentapi"
	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
)

var (
	// ErrEmptyCart is surfaced inline; the cart is untouched.
	ErrEmptyCart = errors.New("cart is empty")
)

type orderAPI interface {
	CreateOrder(ctx context.Context, token string, in contentapi.OrderInput) (domain.Order, error)
}

type cartService interface {
	Snapshot(ctx context.Context, visitorID string) cartsvc.Snapshot
	Clear(ctx context.Context, visitorID string) cartsvc.Snapshot
}

// Service turns the visitor's cart into a pay-on-delivery order on the
// remote backend. The cart is cleared only after the backend confirms.
type Service struct {
	api    orderAPI
	carts  cartService
	logger *log.Logger
}

// Input is the checkout form. Phone and postcode may arrive with localized
// digits.
type Input struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Postcode  string `json:"postcode"`
}

// Confirmation is returned to the order-received page.
type Confirmation struct {
	Order domain.Order `json:"order"`
	Total int64        `json:"total"`
}

func New(api orderAPI, carts cartService, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{api: api, carts: carts, logger: logger}
}

// PlaceOrder validates the cart, places a cod order, and clears the cart on
// success. Any backend failure leaves the cart as it was so the visitor can
// retry.
func (s *Service) PlaceOrder(ctx context.Context, visitorID, token string, in Input) (Confirmation, error) {
	snap := s.carts.Snapshot(ctx, visitorID)
	if len(snap.Items) == 0 {
		return Confirmation{}, ErrEmptyCart
	}

	phone := contentapi.NormalizeDigits(strings.TrimSpace(in.Phone))
	postcode := contentapi.NormalizeDigits(strings.TrimSpace(in.Postcode))
	if postcode == "" {
		postcode = "1111111111"
	}

	address := contentapi.OrderAddress{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Address1:  in.Address,
		City:      in.City,
		Postcode:  postcode,
		Country:   "IR",
		State:     "TEH",
	}
	billing := address
	billing.Email = in.Email
	billing.Phone = phone

	lines := make([]contentapi.OrderLineItem, 0, len(snap.Items))
	for _, item := range snap.Items {
		id := databaseID(item.ID)
		if id == 0 {
			s.logger.Printf("checkout: undecodable product id %q", item.ID)
		}
		lines = append(lines, contentapi.OrderLineItem{ProductID: id, Quantity: item.Quantity})
	}

	order, err := s.api.CreateOrder(ctx, token, contentapi.OrderInput{
		PaymentMethod: "cod",
		Billing:       billing,
		Shipping:      address,
		LineItems:     lines,
	})
	if err != nil {
		return Confirmation{}, err
	}

	total := snap.Total
	s.carts.Clear(ctx, visitorID)
	return Confirmation{Order: order, Total: total}, nil
}

// databaseID resolves a cart line id to the backend's numeric product id.
// Ids are either plain numbers or relay-style base64 of "post:169".
func databaseID(id string) int {
	if n, err := strconv.Atoi(id); err == nil {
		return n
	}
	decoded, err := base64.StdEncoding.DecodeString(id)
	if err != nil {
		return 0
	}
	parts := strings.SplitN(string(decoded), ":", 2)
	if len(parts) != 2 {
		return 0
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}
	return n
}
