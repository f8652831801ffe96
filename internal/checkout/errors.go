package checkout

import "errors"

var (
	// ErrEmptyCart fires the checkout entry guard: nothing to pay for.
	ErrEmptyCart = errors.New("cart is empty, nothing to checkout")

	// ErrGatewayUnavailable means the payment gateway is not configured
	// or unreachable; submission stays blocked until that changes.
	ErrGatewayUnavailable = errors.New("payment gateway not ready")

	// ErrAttemptInFlight rejects a second submit while one attempt is
	// still awaiting the gateway or the shopper.
	ErrAttemptInFlight = errors.New("a checkout attempt is already in flight")

	// ErrNoAttempt means a payment callback arrived for a session with
	// no pending attempt.
	ErrNoAttempt = errors.New("no pending checkout attempt")
)
