package api

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"

	"parkspot/internal/service"
)

// maxWebhookBody caps the webhook payload; Stripe events are small.
const maxWebhookBody = 64 << 10

// StripeWebhookHandler settles online payments from Stripe events:
// checkout.session.completed marks the payment paid, charge.refunded marks it
// refunded. Always acknowledge with 200 once the event is understood, or
// Stripe keeps retrying.
type StripeWebhookHandler struct {
	signingSecret string
	payments      *service.PaymentService
}

func NewStripeWebhookHandler(signingSecret string, payments *service.PaymentService) *StripeWebhookHandler {
	return &StripeWebhookHandler{signingSecret: signingSecret, payments: payments}
}

func (h *StripeWebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		log.Printf("Stripe webhook: could not read body: %v", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	event, err := webhook.ConstructEvent(body, r.Header.Get("Stripe-Signature"), h.signingSecret)
	if err != nil {
		log.Printf("Stripe webhook: signature verification failed: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil || sess.ID == "" {
			log.Printf("Stripe webhook: malformed checkout.session.completed: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if err := h.payments.ConfirmCheckout(r.Context(), sess.ID); err != nil {
			log.Printf("Stripe webhook: confirming session %s failed: %v", sess.ID, err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

	case "charge.refunded":
		var charge stripe.Charge
		if err := json.Unmarshal(event.Data.Raw, &charge); err != nil {
			log.Printf("Stripe webhook: malformed charge.refunded: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if charge.PaymentIntent == nil || charge.PaymentIntent.ID == "" {
			log.Printf("Stripe webhook: charge.refunded without payment intent")
			break
		}
		if err := h.payments.MarkRefundedByPaymentIntent(r.Context(), charge.PaymentIntent.ID); err != nil {
			log.Printf("Stripe webhook: recording refund for intent %s failed: %v", charge.PaymentIntent.ID, err)
		}

	default:
		log.Printf("Stripe webhook: ignoring event type %s", event.Type)
	}

	w.WriteHeader(http.StatusOK)
}
