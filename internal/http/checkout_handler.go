package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Priest-tz/oja/internal/checkout"
	"github.com/Priest-tz/oja/internal/paystack"
)

type CheckoutHandler struct {
	orchestrator *checkout.Orchestrator
	timeout      time.Duration
}

func NewCheckoutHandler(orchestrator *checkout.Orchestrator, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		orchestrator: orchestrator,
		timeout:      timeout,
	}
}

type SubmitResponseDTO struct {
	AccessCode string `json:"access_code"`
	Reference  string `json:"reference"`
	Amount     int64  `json:"amount"`
}

type CallbackRequestDTO struct {
	Event     string `json:"event"` // "success" or "cancel"
	Reference string `json:"reference,omitempty"`
}

type ConfirmationResponseDTO struct {
	Reference string  `json:"ref"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Total     float64 `json:"total"`
	Redirect  string  `json:"redirect"`
}

// GET /api/v1/checkout
func (h *CheckoutHandler) Enter(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionIDFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	c, err := h.orchestrator.Enter(ctx, sessionID)
	if errors.Is(err, checkout.ErrEmptyCart) {
		respondJSON(w, http.StatusConflict, ErrorResponse{
			Error: "cart is empty",
			Code:  "empty_cart",
		})
		return
	}
	if err != nil {
		log.Printf("checkout entry failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, cartResponse(c))
}

// POST /api/v1/checkout
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionIDFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	var form checkout.Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	submission, err := h.orchestrator.Submit(ctx, sessionID, form)
	if err != nil {
		h.respondSubmitError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SubmitResponseDTO{
		AccessCode: submission.AccessCode,
		Reference:  submission.Reference,
		Amount:     submission.Amount,
	})
}

func (h *CheckoutHandler) respondSubmitError(w http.ResponseWriter, err error) {
	var fieldErrs checkout.FieldErrors
	if errors.As(err, &fieldErrs) {
		respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:  "validation failed",
			Code:   "validation_failed",
			Fields: fieldErrs,
		})
		return
	}

	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusConflict, "empty_cart", "cart is empty")
	case errors.Is(err, checkout.ErrAttemptInFlight):
		respondError(w, http.StatusConflict, "attempt_in_flight", "a checkout attempt is already in progress")
	case errors.Is(err, checkout.ErrGatewayUnavailable):
		respondError(w, http.StatusServiceUnavailable, "gateway_unavailable",
			"Payment gateway not ready. Please refresh the page.")
	default:
		var gatewayErr *paystack.GatewayError
		if errors.As(err, &gatewayErr) {
			respondError(w, http.StatusBadRequest, "init_rejected", gatewayErr.Message)
			return
		}
		log.Printf("checkout submit failed: %v", err)
		respondError(w, http.StatusBadGateway, "gateway_error",
			"Something went wrong. Please try again.")
	}
}

// POST /api/v1/checkout/callback
func (h *CheckoutHandler) Callback(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionIDFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	var req CallbackRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	switch req.Event {
	case "success":
		conf, err := h.orchestrator.Complete(ctx, sessionID, req.Reference)
		if errors.Is(err, checkout.ErrNoAttempt) {
			respondError(w, http.StatusConflict, "no_attempt", "no pending checkout attempt")
			return
		}
		if err != nil {
			log.Printf("checkout complete failed: %v", err)
			respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
			return
		}
		respondJSON(w, http.StatusOK, ConfirmationResponseDTO{
			Reference: conf.Reference,
			Name:      conf.Name,
			Email:     conf.Email,
			Total:     conf.Total,
			Redirect:  confirmationURL(conf),
		})

	case "cancel":
		err := h.orchestrator.Cancel(sessionID)
		if errors.Is(err, checkout.ErrNoAttempt) {
			respondError(w, http.StatusConflict, "no_attempt", "no pending checkout attempt")
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})

	default:
		respondError(w, http.StatusBadRequest, "invalid_event", "event must be success or cancel")
	}
}

// confirmationURL carries the receipt as plain query parameters; the
// confirmation page is cosmetic, not a trust boundary.
func confirmationURL(conf *checkout.Confirmation) string {
	params := url.Values{}
	params.Set("ref", conf.Reference)
	params.Set("name", conf.Name)
	params.Set("email", conf.Email)
	params.Set("total", strconv.FormatFloat(conf.Total, 'f', -1, 64))
	return "/confirmation?" + params.Encode()
}
