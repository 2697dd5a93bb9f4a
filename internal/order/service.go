package order

import (
	"errors"
	"log"
)

// EventPublisher is the slice of the event bus checkout needs. Publishing is
// best effort: the order is already committed when it runs.
type EventPublisher interface {
	Publish(eventType string, payload interface{}) error
}

// Service provides business logic for orders.
type Service struct {
	repo   Repository
	events EventPublisher
}

func NewService(repo Repository, events EventPublisher) *Service {
	return &Service{repo: repo, events: events}
}

// Checkout turns the caller's cart into an order. The repository does the
// atomic part; this layer validates the payment method and announces the
// result.
func (s *Service) Checkout(userID int, ship ShippingInfo, paymentMethod string) (Order, error) {
	if userID <= 0 {
		return Order{}, errors.New("invalid user")
	}
	if paymentMethod == "" {
		paymentMethod = PaymentCreditCard
	}
	if !ValidPaymentMethod(paymentMethod) {
		return Order{}, ErrInvalidPayment
	}

	ord, err := s.repo.CreateFromCart(userID, ship, paymentMethod)
	if err != nil {
		return Order{}, err
	}

	if s.events != nil {
		if err := s.events.Publish("order.created", ord); err != nil {
			log.Printf("warning: could not publish order.created for %s: %v", ord.OrderNumber, err)
		}
	}
	return ord, nil
}

func (s *Service) ListForUser(userID int) ([]Order, error) {
	return s.repo.ListByUser(userID)
}

func (s *Service) GetForUser(userID, orderID int) (Order, error) {
	return s.repo.GetForUser(userID, orderID)
}

func (s *Service) List(status string, page, pageSize int) ([]Order, int, error) {
	if status != "" && !ValidStatus(status) {
		return nil, 0, ErrInvalidStatus
	}
	return s.repo.List(status, page, pageSize)
}

// UpdateStatus moves an order through its lifecycle. Financial fields are
// untouchable; status is the only mutable column after checkout.
func (s *Service) UpdateStatus(orderID int, status string) (Order, error) {
	if !ValidStatus(status) {
		return Order{}, ErrInvalidStatus
	}
	return s.repo.UpdateStatus(orderID, status)
}
