// Package catalog queries the remote product catalog API. The upstream
// shape is loose, so products are parsed into a typed record with
// defaults applied at the boundary.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// CategoryAll is the sentinel meaning "no category filter".
const CategoryAll = "All"

type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
	}
}

type Query struct {
	Page     int // 1-based
	Limit    int
	Category string
	Name     string
}

type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Images      []string `json:"images"`
	Quantity    int      `json:"quantity"`
}

type Page struct {
	Products    []Product `json:"data"`
	HasNextPage bool      `json:"hasNextPage"`
}

// rawProduct tolerates the upstream's loose field types before
// normalization.
type rawProduct struct {
	ID          any             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       json.RawMessage `json:"price"`
	Images      []string        `json:"images"`
	Image       string          `json:"image"`
	Quantity    *int            `json:"quantity"`
}

type listResponse struct {
	Data []rawProduct `json:"data"`
	Meta struct {
		HasNextPage bool `json:"hasNextPage"`
	} `json:"meta"`
}

// Products fetches one catalog page. Category "All" and an empty search
// term are omitted from the query string.
func (c *Client) Products(ctx context.Context, q Query) (*Page, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 12
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("limit", strconv.Itoa(q.Limit))
	if q.Category != "" && q.Category != CategoryAll {
		params.Set("category", q.Category)
	}
	if q.Name != "" {
		params.Set("name", q.Name)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/products?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request failed: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var decoded listResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode catalog response failed: %w", err)
	}

	page := &Page{
		Products:    make([]Product, 0, len(decoded.Data)),
		HasNextPage: decoded.Meta.HasNextPage,
	}
	for _, raw := range decoded.Data {
		page.Products = append(page.Products, normalize(raw))
	}
	return page, nil
}

func normalize(raw rawProduct) Product {
	p := Product{
		Name:        raw.Name,
		Description: raw.Description,
		Images:      raw.Images,
	}

	switch id := raw.ID.(type) {
	case string:
		p.ID = id
	case float64:
		p.ID = strconv.FormatInt(int64(id), 10)
	}

	if len(p.Images) == 0 && raw.Image != "" {
		p.Images = []string{raw.Image}
	}
	if p.Images == nil {
		p.Images = []string{}
	}

	// Price arrives as a number or a numeric string depending on the
	// product; anything else defaults to zero.
	if len(raw.Price) > 0 {
		var asNumber float64
		if err := json.Unmarshal(raw.Price, &asNumber); err == nil {
			p.Price = asNumber
		} else {
			var asString string
			if err := json.Unmarshal(raw.Price, &asString); err == nil {
				if parsed, err := strconv.ParseFloat(asString, 64); err == nil {
					p.Price = parsed
				}
			}
		}
	}

	if raw.Quantity != nil && *raw.Quantity > 0 {
		p.Quantity = *raw.Quantity
	}

	return p
}
