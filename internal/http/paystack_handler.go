package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/Priest-tz/oja/internal/paystack"
)

// TransactionInitializer is the slice of the gateway client the proxy
// endpoint needs.
type TransactionInitializer interface {
	Initialize(ctx context.Context, req paystack.InitRequest) (*paystack.InitResult, error)
}

// PaystackHandler is the thin initialization proxy: it guards the
// request, forwards to Paystack and exposes only the access code.
type PaystackHandler struct {
	gateway TransactionInitializer
	timeout time.Duration
}

func NewPaystackHandler(gateway TransactionInitializer, timeout time.Duration) *PaystackHandler {
	return &PaystackHandler{
		gateway: gateway,
		timeout: timeout,
	}
}

type InitializeRequestDTO struct {
	Email     string `json:"email"`
	Amount    int64  `json:"amount"` // kobo
	Ref       string `json:"ref"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Phone     string `json:"phone"`
	Metadata  any    `json:"metadata"`
}

type InitializeResponseDTO struct {
	AccessCode string `json:"access_code"`
}

// POST /api/paystack
func (h *PaystackHandler) Initialize(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req InitializeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusUnprocessableEntity,
			map[string]string{"error": "email and a positive amount are required"})
		return
	}

	// The amount guard runs before any upstream call.
	if req.Email == "" || req.Amount <= 0 {
		respondJSON(w, http.StatusUnprocessableEntity,
			map[string]string{"error": "email and a positive amount are required"})
		return
	}

	result, err := h.gateway.Initialize(ctx, paystack.InitRequest{
		Email:     req.Email,
		Amount:    req.Amount,
		Reference: req.Ref,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Metadata:  req.Metadata,
	})
	if err != nil {
		var gatewayErr *paystack.GatewayError
		if errors.As(err, &gatewayErr) {
			respondJSON(w, http.StatusBadRequest,
				map[string]string{"error": gatewayErr.Message})
			return
		}
		log.Printf("paystack initialize proxy failed (request %s): %v", getRequestID(r.Context()), err)
		respondJSON(w, http.StatusInternalServerError,
			map[string]string{"error": "Internal server error"})
		return
	}

	// Never forward the upstream body, only the access code.
	respondJSON(w, http.StatusOK, InitializeResponseDTO{AccessCode: result.AccessCode})
}
