// Package checkout turns a session cart plus a submitted form into a backend
// order. The cart is only cleared once the backend accepts the order, so a
// failed submission can be retried without rebuilding the cart.
package checkout

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/secondbowl/storefront-gateway/internal/cart"
	"github.com/secondbowl/storefront-gateway/internal/ordering"
	"github.com/secondbowl/storefront-gateway/pkg/auth"
	"github.com/secondbowl/storefront-gateway/pkg/backend"
	pkgerrors "github.com/secondbowl/storefront-gateway/pkg/errors"
	"github.com/secondbowl/storefront-gateway/pkg/logger"
)

const (
	FulfillmentPickup   = "pickup"
	FulfillmentDelivery = "delivery"
)

// Form is the checkout submission. Address fields are only required for
// delivery; on pickup they are ignored entirely.
type Form struct {
	Name        string `json:"name" validate:"required"`
	Phone       string `json:"phone" validate:"required"`
	Fulfillment string `json:"fulfillment" validate:"required,oneof=pickup delivery"`

	Street  string `json:"street" validate:"required_if=Fulfillment delivery"`
	City    string `json:"city" validate:"required_if=Fulfillment delivery"`
	State   string `json:"state" validate:"required_if=Fulfillment delivery"`
	Zip     string `json:"zip" validate:"required_if=Fulfillment delivery"`
	Country string `json:"country"`

	Note string `json:"note" validate:"max=500"`
}

// trimmed strips surrounding whitespace from every field so that required
// checks reject blank-but-nonempty input.
func (f Form) trimmed() Form {
	f.Name = strings.TrimSpace(f.Name)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Fulfillment = strings.TrimSpace(f.Fulfillment)
	f.Street = strings.TrimSpace(f.Street)
	f.City = strings.TrimSpace(f.City)
	f.State = strings.TrimSpace(f.State)
	f.Zip = strings.TrimSpace(f.Zip)
	f.Country = strings.TrimSpace(f.Country)
	f.Note = strings.TrimSpace(f.Note)
	return f
}

// OrderCreator is the slice of the order service checkout needs.
type OrderCreator interface {
	Create(ctx context.Context, draft backend.OrderDraft) (*backend.Order, error)
}

type Service struct {
	carts    *cart.Store
	orders   OrderCreator
	logg     *logger.Logger
	validate *validator.Validate
}

func NewService(carts *cart.Store, orders OrderCreator, logg *logger.Logger) *Service {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return &Service{carts: carts, orders: orders, logg: logg, validate: v}
}

// Submit places an order from the session's cart. The cart is cleared only on
// success.
func (s *Service) Submit(ctx context.Context, sessionID string, form Form) (*backend.Order, error) {
	id, ok := auth.FromContext(ctx)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to place an order")
	}

	form = form.trimmed()
	if err := s.validateForm(form); err != nil {
		return nil, err
	}

	snapshot := s.carts.Get(sessionID)
	if snapshot.ItemCount == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty").
			WithDetails(map[string]string{"cart": "add at least one item before checking out"})
	}

	billing, shipping := s.addresses(form)
	draft := backend.OrderDraft{
		Items:           ordering.MapCartLines(snapshot.Lines),
		BillingAddress:  billing,
		ShippingAddress: shipping,
		Note:            form.Note,
	}

	order, err := s.orders.Create(ctx, draft)
	if err != nil {
		return nil, err
	}

	s.carts.Clear(sessionID)
	ctx = s.logg.WithIdentity(ctx, id.Principal)
	s.logg.Info(s.logg.WithField(ctx, "order_id", order.ID), "order placed")
	return order, nil
}

// addresses resolves billing and shipping from the fulfillment choice. Pickup
// always points both at the restaurant; delivery bills to the delivery
// address.
func (s *Service) addresses(form Form) (billing, shipping backend.Address) {
	if form.Fulfillment == FulfillmentPickup {
		addr := ordering.PickupAddress(form.Name, form.Phone)
		return addr, addr
	}
	addr := ordering.NewAddress(form.Name, form.Phone, form.Street, form.City, form.State, form.Zip, form.Country)
	return addr, addr
}

func (s *Service) validateForm(form Form) error {
	err := s.validate.Struct(form)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "checkout validation failed")
	}
	details := map[string]string{}
	for _, fieldErr := range errs {
		details[fieldErr.Field()] = checkoutMessage(fieldErr)
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "checkout validation failed").WithDetails(details)
}

func checkoutMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_if":
		return "is required for delivery"
	case "oneof":
		return fmt.Sprintf("must be one of %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	}
	return "is invalid"
}
