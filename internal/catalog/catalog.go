// Package catalog looks product nutrition up by barcode against an
// OpenFoodFacts-compatible HTTP API.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"nutrilog/internal/macro"
)

const DefaultBaseURL = "https://world.openfoodfacts.org/api/v0/product"

type Client struct {
	baseURL string
	client  *http.Client
}

var _ macro.Catalog = (*Client)(nil)

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

// productResponse mirrors the wire format. Nutriment fields are pointers:
// the catalog omitting a value and the catalog reporting zero are different
// facts, and the resolution pipeline needs to see the difference.
type productResponse struct {
	Status  int `json:"status"`
	Product struct {
		ProductName string `json:"product_name"`
		Nutriments  struct {
			Kcal     *float64 `json:"energy-kcal_100g"`
			ProteinG *float64 `json:"proteins_100g"`
			FatG     *float64 `json:"fat_100g"`
			CarbsG   *float64 `json:"carbohydrates_100g"`
		} `json:"nutriments"`
	} `json:"product"`
}

func (c *Client) Lookup(ctx context.Context, code string) (macro.Product, error) {
	reqURL := fmt.Sprintf("%s/%s.json", c.baseURL, url.PathEscape(code))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return macro.Product{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return macro.Product{}, fmt.Errorf("catalog request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return macro.Product{}, fmt.Errorf("code %q: %w", code, macro.ErrProductNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return macro.Product{}, fmt.Errorf("catalog request failed with status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return macro.Product{}, fmt.Errorf("read response body: %w", err)
	}

	var pr productResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return macro.Product{}, fmt.Errorf("unmarshal response: %w", err)
	}
	if pr.Status == 0 {
		return macro.Product{}, fmt.Errorf("code %q: %w", code, macro.ErrProductNotFound)
	}

	return macro.Product{
		Name:     pr.Product.ProductName,
		Kcal:     pr.Product.Nutriments.Kcal,
		ProteinG: pr.Product.Nutriments.ProteinG,
		FatG:     pr.Product.Nutriments.FatG,
		CarbsG:   pr.Product.Nutriments.CarbsG,
	}, nil
}
