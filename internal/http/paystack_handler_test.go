package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Priest-tz/oja/internal/paystack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type initializerMock struct {
	result   *paystack.InitResult
	err      error
	requests int
}

func (m *initializerMock) Initialize(context.Context, paystack.InitRequest) (*paystack.InitResult, error) {
	m.requests++
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func TestInitializeProxy_Success(t *testing.T) {
	mock := &initializerMock{result: &paystack.InitResult{AccessCode: "AC_xyz"}}
	handler := NewPaystackHandler(mock, 5*time.Second)

	body := `{"email":"amara@example.com","amount":215000,"ref":"QS-1","firstname":"Amara","lastname":"Okafor","phone":"08012345678","metadata":{}}`
	req := httptest.NewRequest(http.MethodPost, "/api/paystack", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	handler.Initialize(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, map[string]any{"access_code": "AC_xyz"}, resp)
}

func TestInitializeProxy_MissingEmail(t *testing.T) {
	mock := &initializerMock{result: &paystack.InitResult{AccessCode: "AC_xyz"}}
	handler := NewPaystackHandler(mock, 5*time.Second)

	req := httptest.NewRequest(http.MethodPost, "/api/paystack", bytes.NewBufferString(`{"amount":1000}`))
	rec := httptest.NewRecorder()
	handler.Initialize(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Zero(t, mock.requests)
}

func TestInitializeProxy_NonPositiveAmountNeverReachesUpstream(t *testing.T) {
	for _, amount := range []int64{0, -500} {
		mock := &initializerMock{result: &paystack.InitResult{AccessCode: "AC_xyz"}}
		handler := NewPaystackHandler(mock, 5*time.Second)

		body, _ := json.Marshal(map[string]any{"email": "a@b.c", "amount": amount})
		req := httptest.NewRequest(http.MethodPost, "/api/paystack", bytes.NewBuffer(body))
		rec := httptest.NewRecorder()
		handler.Initialize(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Zero(t, mock.requests)
	}
}

func TestInitializeProxy_UpstreamRejection(t *testing.T) {
	mock := &initializerMock{err: &paystack.GatewayError{Message: "Invalid key"}}
	handler := NewPaystackHandler(mock, 5*time.Second)

	req := httptest.NewRequest(http.MethodPost, "/api/paystack",
		bytes.NewBufferString(`{"email":"a@b.c","amount":1000}`))
	rec := httptest.NewRecorder()
	handler.Initialize(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid key", resp["error"])
}

func TestInitializeProxy_TransportFailure(t *testing.T) {
	mock := &initializerMock{err: errors.New("connection reset")}
	handler := NewPaystackHandler(mock, 5*time.Second)

	req := httptest.NewRequest(http.MethodPost, "/api/paystack",
		bytes.NewBufferString(`{"email":"a@b.c","amount":1000}`))
	rec := httptest.NewRecorder()
	handler.Initialize(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Internal server error", resp["error"])
}

func TestInitializeProxy_InvalidJSON(t *testing.T) {
	mock := &initializerMock{}
	handler := NewPaystackHandler(mock, 5*time.Second)

	req := httptest.NewRequest(http.MethodPost, "/api/paystack", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	handler.Initialize(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Zero(t, mock.requests)
}
