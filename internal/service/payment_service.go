package service

import (
	"context"
	"fmt"
	"log"

	"parkspot/internal/db"
	"parkspot/internal/entities"
	"parkspot/internal/repository"
)

// PaymentService records the one payment a completed reservation may carry.
// Cash payments settle immediately; online payments open a Stripe Checkout
// session and settle when the webhook confirms it.
type PaymentService struct {
	payments      *repository.PaymentRepository
	reservations  ReservationStore
	stripeService *StripeService
}

func NewPaymentService(payments *repository.PaymentRepository, reservations ReservationStore, stripeService *StripeService) *PaymentService {
	return &PaymentService{
		payments:      payments,
		reservations:  reservations,
		stripeService: stripeService,
	}
}

// RecordPayment creates the payment record for a completed reservation. The
// amount always comes from the reservation's billed total, never from the
// request.
func (s *PaymentService) RecordPayment(ctx context.Context, reservationID int, req entities.PaymentRequest) (*entities.PaymentResponse, error) {
	res, err := s.reservations.FindReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if res.Status != db.ReservationStatusCompleted || res.TotalAmount == nil {
		return nil, db.ErrPaymentNotCompleted
	}

	existing, err := s.payments.FindPaymentByReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, db.ErrDuplicatePayment
	}

	payment := &db.Payment{
		ReservationID: reservationID,
		Amount:        *res.TotalAmount,
		Method:        req.Method,
	}

	var checkoutURL string
	switch req.Method {
	case db.PaymentMethodCash:
		payment.Status = db.PaymentStatusPaid
	case db.PaymentMethodOnline:
		amountCents := int64(*res.TotalAmount * 100)
		description := fmt.Sprintf("ParkSpot reservation #%d", res.ID)
		url, sessionID, err := s.stripeService.CreateCheckoutSession(amountCents, "eur", description, req.CustomerEmail)
		if err != nil {
			log.Printf("Error creating checkout session for reservation %d: %v", res.ID, err)
			return nil, err
		}
		payment.Status = db.PaymentStatusPending
		payment.StripeSessionID = sessionID
		checkoutURL = url
	default:
		return nil, fmt.Errorf("unsupported payment method %q", req.Method)
	}

	if err := s.payments.InsertPayment(ctx, payment); err != nil {
		return nil, err
	}

	return &entities.PaymentResponse{
		ID:            payment.ID,
		ReservationID: payment.ReservationID,
		Amount:        payment.Amount,
		Method:        payment.Method,
		Status:        payment.Status,
		CheckoutURL:   checkoutURL,
	}, nil
}

// GetPayment returns the payment for a reservation, or (nil, nil) when the
// reservation has none yet.
func (s *PaymentService) GetPayment(ctx context.Context, reservationID int) (*db.Payment, error) {
	return s.payments.FindPaymentByReservation(ctx, reservationID)
}

// ConfirmCheckout marks the payment behind a completed checkout session paid.
func (s *PaymentService) ConfirmCheckout(ctx context.Context, sessionID string) error {
	return s.payments.UpdatePaymentStatusBySessionID(ctx, sessionID, db.PaymentStatusPaid)
}

// RefundPayment issues a Stripe refund for a reservation's online payment.
// The refunded status is written by the charge.refunded webhook; cash
// payments are refunded at the counter and marked directly.
func (s *PaymentService) RefundPayment(ctx context.Context, reservationID int) error {
	payment, err := s.payments.FindPaymentByReservation(ctx, reservationID)
	if err != nil {
		return err
	}
	if payment == nil {
		return db.ErrPaymentNotFound
	}
	if payment.Status != db.PaymentStatusPaid {
		return db.ErrRefundNotPaid
	}
	if payment.Method == db.PaymentMethodCash {
		return s.payments.UpdatePaymentStatus(ctx, payment.ID, db.PaymentStatusRefunded)
	}
	return s.stripeService.RefundPaymentBySessionID(payment.StripeSessionID)
}

// MarkRefunded records a refund confirmed by Stripe.
func (s *PaymentService) MarkRefunded(ctx context.Context, sessionID string) error {
	return s.payments.UpdatePaymentStatusBySessionID(ctx, sessionID, db.PaymentStatusRefunded)
}

// MarkRefundedByPaymentIntent resolves the checkout session behind a payment
// intent and records the refund. Refund webhooks carry only the intent id.
func (s *PaymentService) MarkRefundedByPaymentIntent(ctx context.Context, paymentIntentID string) error {
	sessionID, err := s.stripeService.GetSessionIDByPaymentIntentID(paymentIntentID)
	if err != nil {
		return err
	}
	return s.MarkRefunded(ctx, sessionID)
}
