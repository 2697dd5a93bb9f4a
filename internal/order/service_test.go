package order

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) CreateFromCart(userID int, ship ShippingInfo, paymentMethod string) (Order, error) {
	args := m.Called(userID, ship, paymentMethod)
	return args.Get(0).(Order), args.Error(1)
}

func (m *mockRepository) ListByUser(userID int) ([]Order, error) {
	args := m.Called(userID)
	return args.Get(0).([]Order), args.Error(1)
}

func (m *mockRepository) GetForUser(userID, orderID int) (Order, error) {
	args := m.Called(userID, orderID)
	return args.Get(0).(Order), args.Error(1)
}

func (m *mockRepository) List(status string, page, pageSize int) ([]Order, int, error) {
	args := m.Called(status, page, pageSize)
	return args.Get(0).([]Order), args.Int(1), args.Error(2)
}

func (m *mockRepository) UpdateStatus(orderID int, status string) (Order, error) {
	args := m.Called(orderID, status)
	return args.Get(0).(Order), args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(eventType string, payload interface{}) error {
	args := m.Called(eventType, payload)
	return args.Error(0)
}

func TestCheckoutDefaultsPaymentMethod(t *testing.T) {
	repo := new(mockRepository)
	events := new(mockPublisher)
	svc := NewService(repo, events)

	created := Order{ID: 1, OrderNumber: "ORD-20250307-0042", PaymentMethod: PaymentCreditCard}
	repo.On("CreateFromCart", 7, mock.Anything, PaymentCreditCard).Return(created, nil)
	events.On("Publish", "order.created", created).Return(nil)

	ord, err := svc.Checkout(7, ShippingInfo{}, "")
	assert.NoError(t, err)
	assert.Equal(t, created, ord)
	repo.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestCheckoutRejectsUnknownPaymentMethod(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, nil)

	_, err := svc.Checkout(7, ShippingInfo{}, "cash_on_delivery")
	assert.ErrorIs(t, err, ErrInvalidPayment)
	repo.AssertNotCalled(t, "CreateFromCart")
}

func TestCheckoutPropagatesEmptyCart(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, nil)

	repo.On("CreateFromCart", 7, mock.Anything, PaymentPaypal).Return(Order{}, ErrEmptyCart)

	_, err := svc.Checkout(7, ShippingInfo{}, PaymentPaypal)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutSucceedsWhenPublishFails(t *testing.T) {
	repo := new(mockRepository)
	events := new(mockPublisher)
	svc := NewService(repo, events)

	created := Order{ID: 2, OrderNumber: "ORD-20250307-1234"}
	repo.On("CreateFromCart", 7, mock.Anything, PaymentCreditCard).Return(created, nil)
	events.On("Publish", "order.created", created).Return(errors.New("broker unreachable"))

	ord, err := svc.Checkout(7, ShippingInfo{}, PaymentCreditCard)
	assert.NoError(t, err)
	assert.Equal(t, created, ord)
}

func TestListRejectsUnknownStatus(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, nil)

	_, _, err := svc.List("refunded", 1, 20)
	assert.ErrorIs(t, err, ErrInvalidStatus)
	repo.AssertNotCalled(t, "List")
}

func TestUpdateStatusValidatesFirst(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, nil)

	_, err := svc.UpdateStatus(1, "lost")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	repo.On("UpdateStatus", 1, StatusShipped).Return(Order{ID: 1, Status: StatusShipped}, nil)
	ord, err := svc.UpdateStatus(1, StatusShipped)
	assert.NoError(t, err)
	assert.Equal(t, StatusShipped, ord.Status)
}
