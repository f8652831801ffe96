package checkout

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Priest-tz/oja/internal/cart"
	"github.com/Priest-tz/oja/internal/events"
	"github.com/Priest-tz/oja/internal/paystack"
)

type State string

const (
	StateEditing         State = "EDITING"
	StateSubmitting      State = "SUBMITTING"
	StateAwaitingPayment State = "AWAITING_PAYMENT"
	StateSucceeded       State = "SUCCEEDED"
)

// TransactionInitializer registers a pending transaction with the
// payment gateway and hands back its access code.
type TransactionInitializer interface {
	Ready() bool
	Initialize(ctx context.Context, req paystack.InitRequest) (*paystack.InitResult, error)
}

// Submission is what the shopper needs to open the hosted payment UI.
type Submission struct {
	AccessCode string
	Reference  string
	Amount     int64 // kobo
}

// Confirmation carries the receipt hand-off after a confirmed payment.
type Confirmation struct {
	Reference string
	Name      string
	Email     string
	Total     float64
}

// attempt is one session's checkout progress. succeeded stays set after
// a payment so the empty-cart entry guard does not fire during the
// success redirect, even though the cart has just been cleared.
type attempt struct {
	state     State
	form      Form
	reference string
	total     float64
	units     int
	succeeded bool
}

// Orchestrator drives the checkout sequence: entry guard, validation,
// gateway initialization, then exactly one success or cancel callback
// per attempt. The cart is mutated on the success path only.
type Orchestrator struct {
	carts     *cart.Store
	gateway   TransactionInitializer
	publisher events.Publisher

	mu       sync.Mutex
	sessions map[string]*attempt
}

func NewOrchestrator(carts *cart.Store, gateway TransactionInitializer, publisher events.Publisher) *Orchestrator {
	return &Orchestrator{
		carts:     carts,
		gateway:   gateway,
		publisher: publisher,
		sessions:  make(map[string]*attempt),
	}
}

// Enter is the checkout entry guard. An empty cart bounces the session
// back to the cart view unless a payment just succeeded.
func (o *Orchestrator) Enter(ctx context.Context, sessionID string) (*cart.Cart, error) {
	c, err := o.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart failed: %w", err)
	}

	if c.IsEmpty() {
		o.mu.Lock()
		succeeded := o.sessions[sessionID] != nil && o.sessions[sessionID].succeeded
		o.mu.Unlock()
		if !succeeded {
			return nil, ErrEmptyCart
		}
	}
	return c, nil
}

// Submit validates the form and initializes a gateway transaction.
// Validation always completes before any network call; no gateway call
// is retried. A FieldErrors return means the form went back to editing.
func (o *Orchestrator) Submit(ctx context.Context, sessionID string, form Form) (*Submission, error) {
	if !o.gateway.Ready() {
		return nil, ErrGatewayUnavailable
	}

	c, err := o.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart failed: %w", err)
	}
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	if fieldErrs := form.Validate(); fieldErrs != nil {
		return nil, fieldErrs
	}

	// Reserve the in-flight slot before touching the network so a
	// second submit cannot initialize a duplicate transaction.
	o.mu.Lock()
	if a := o.sessions[sessionID]; a != nil &&
		(a.state == StateSubmitting || a.state == StateAwaitingPayment) {
		o.mu.Unlock()
		return nil, ErrAttemptInFlight
	}
	a := &attempt{state: StateSubmitting, form: form, total: c.Total(), units: c.Units()}
	o.sessions[sessionID] = a
	o.mu.Unlock()

	reference := NewReference()
	result, err := o.gateway.Initialize(ctx, paystack.InitRequest{
		Email:     form.Email,
		Amount:    cart.Kobo(c.Total()),
		Reference: reference,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Phone:     form.Phone,
		Metadata: paystack.Metadata{
			CustomFields: []paystack.CustomField{
				{DisplayName: "Customer Name", VariableName: "customer_name",
					Value: form.FirstName + " " + form.LastName},
				{DisplayName: "Delivery Address", VariableName: "delivery_address",
					Value: fmt.Sprintf("%s, %s, %s", form.Address, form.City, form.State)},
				{DisplayName: "Phone Number", VariableName: "phone_number",
					Value: form.Phone},
				{DisplayName: "Items Count", VariableName: "items_count",
					Value: fmt.Sprint(c.Units())},
			},
		},
	})

	o.mu.Lock()
	defer o.mu.Unlock()
	if err != nil {
		a.state = StateEditing
		return nil, err
	}

	a.state = StateAwaitingPayment
	a.reference = reference
	return &Submission{
		AccessCode: result.AccessCode,
		Reference:  reference,
		Amount:     cart.Kobo(a.total),
	}, nil
}

// Complete is the hosted payment UI's success callback. The gateway's
// reference wins over the client-generated one for display. This is the
// only place the cart gets cleared.
func (o *Orchestrator) Complete(ctx context.Context, sessionID, gatewayReference string) (*Confirmation, error) {
	o.mu.Lock()
	a := o.sessions[sessionID]
	if a == nil || a.state != StateAwaitingPayment {
		o.mu.Unlock()
		return nil, ErrNoAttempt
	}
	a.state = StateSucceeded
	a.succeeded = true
	reference := gatewayReference
	if reference == "" {
		reference = a.reference
	}
	form, total, units := a.form, a.total, a.units
	o.mu.Unlock()

	if _, err := o.carts.Clear(ctx, sessionID); err != nil {
		// The payment already happened; a failed clear must not void it.
		log.Printf("clear cart after payment failed: %v", err)
	}

	if err := o.publisher.PublishCheckoutCompleted(ctx, events.CheckoutCompleted{
		Reference:  reference,
		Email:      form.Email,
		Total:      total,
		Units:      units,
		OccurredAt: time.Now(),
	}); err != nil {
		log.Printf("publish checkout-completed failed: %v", err)
	}

	return &Confirmation{
		Reference: reference,
		Name:      form.FirstName,
		Email:     form.Email,
		Total:     total,
	}, nil
}

// Cancel is the hosted payment UI's cancel callback: back to editing
// with the form and cart intact. Not an error state.
func (o *Orchestrator) Cancel(sessionID string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	a := o.sessions[sessionID]
	if a == nil || a.state != StateAwaitingPayment {
		return ErrNoAttempt
	}
	a.state = StateEditing
	return nil
}

// SessionState reports where a session is in the checkout sequence.
func (o *Orchestrator) SessionState(sessionID string) State {
	o.mu.Lock()
	defer o.mu.Unlock()

	if a := o.sessions[sessionID]; a != nil {
		return a.state
	}
	return StateEditing
}
