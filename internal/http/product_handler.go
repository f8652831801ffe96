package http

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/Priest-tz/oja/internal/catalog"
)

type ProductHandler struct {
	catalog *catalog.Client
	timeout time.Duration
}

func NewProductHandler(client *catalog.Client, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		catalog: client,
		timeout: timeout,
	}
}

type ProductsResponseDTO struct {
	Data []catalog.Product `json:"data"`
	Meta struct {
		HasNextPage bool `json:"hasNextPage"`
	} `json:"meta"`
}

// GET /api/v1/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	query := catalog.Query{
		Page:     parseIntParam(r.URL.Query().Get("page"), 1),
		Limit:    parseIntParam(r.URL.Query().Get("limit"), 12),
		Category: r.URL.Query().Get("category"),
		Name:     r.URL.Query().Get("name"),
	}

	page, err := h.catalog.Products(ctx, query)
	if err != nil {
		log.Printf("catalog query failed: %v", err)
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "failed to fetch products")
		return
	}

	resp := ProductsResponseDTO{Data: page.Products}
	resp.Meta.HasNextPage = page.HasNextPage
	respondJSON(w, http.StatusOK, resp)
}
