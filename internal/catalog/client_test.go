package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProducts_QueryParameters(t *testing.T) {
	var gotQuery map[string][]string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"data":[],"meta":{"hasNextPage":false}}`))
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL)
	_, err := client.Products(context.Background(), Query{Page: 2, Limit: 12, Category: "Bags", Name: "tote"})
	require.NoError(t, err)

	assert.Equal(t, []string{"2"}, gotQuery["page"])
	assert.Equal(t, []string{"12"}, gotQuery["limit"])
	assert.Equal(t, []string{"Bags"}, gotQuery["category"])
	assert.Equal(t, []string{"tote"}, gotQuery["name"])
}

func TestProducts_AllCategoryAndEmptySearchAreOmitted(t *testing.T) {
	var gotQuery map[string][]string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"data":[],"meta":{"hasNextPage":false}}`))
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL)
	_, err := client.Products(context.Background(), Query{Category: CategoryAll})
	require.NoError(t, err)

	assert.NotContains(t, gotQuery, "category")
	assert.NotContains(t, gotQuery, "name")
	assert.Equal(t, []string{"1"}, gotQuery["page"])
}

func TestProducts_NormalizesLooseShapes(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"data": [
				{"id": 42, "name": "Ankara Tote", "price": "1999.5", "image": "tote.jpg", "quantity": 3},
				{"id": "p-7", "name": "Aso Oke Cap", "price": 450, "images": ["cap1.jpg", "cap2.jpg"]},
				{"name": "No Price"}
			],
			"meta": {"hasNextPage": true}
		}`))
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL)
	page, err := client.Products(context.Background(), Query{})
	require.NoError(t, err)

	assert.True(t, page.HasNextPage)
	require.Len(t, page.Products, 3)

	first := page.Products[0]
	assert.Equal(t, "42", first.ID)
	assert.Equal(t, 1999.5, first.Price)
	assert.Equal(t, []string{"tote.jpg"}, first.Images)
	assert.Equal(t, 3, first.Quantity)

	second := page.Products[1]
	assert.Equal(t, "p-7", second.ID)
	assert.Equal(t, 450.0, second.Price)
	assert.Equal(t, []string{"cap1.jpg", "cap2.jpg"}, second.Images)
	assert.Equal(t, 0, second.Quantity)

	third := page.Products[2]
	assert.Equal(t, 0.0, third.Price)
	assert.Equal(t, []string{}, third.Images)
}

func TestProducts_UpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL)
	_, err := client.Products(context.Background(), Query{})
	assert.Error(t, err)
}
