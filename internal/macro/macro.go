package macro

import (
	"context"
	"errors"
	"fmt"
)

// Product is what the catalog knows about a product code. Macro fields stay
// nil when the catalog did not provide them; this layer never coerces
// absent to zero.
type Product struct {
	Name     string
	Kcal     *float64
	ProteinG *float64
	FatG     *float64
	CarbsG   *float64
}

// ErrProductNotFound marks a code the catalog has never seen.
var ErrProductNotFound = errors.New("product not found")

// Catalog looks up authoritative nutrition data by product code.
type Catalog interface {
	Lookup(ctx context.Context, code string) (Product, error)
}

// ResponseShape tells the oracle what a single completion should contain.
type ResponseShape string

const (
	ShapeJSON       ResponseShape = "json"
	ShapeBareNumber ResponseShape = "bare-number"
)

// Oracle is a natural-language completion service. One call per request; no
// streaming, and no retry policy owned by this package.
type Oracle interface {
	Complete(ctx context.Context, prompt string, shape ResponseShape) (string, error)
}

// UnparsableEstimateError means the oracle's response could not be parsed
// into the required shape. It is terminal for the request and carries the
// raw response for diagnosis; it is never substituted with a default value,
// because a fabricated zero would silently corrupt a calorie budget.
type UnparsableEstimateError struct {
	Raw    string
	Reason string
}

func (e *UnparsableEstimateError) Error() string {
	return fmt.Sprintf("unparsable estimate (%s): %q", e.Reason, e.Raw)
}

// macrosComplete is the single place that decides whether catalog data is
// usable. Zero counts as missing: the source data cannot distinguish a real
// zero-kcal product from an empty cell, and this repo preserves that
// reading.
func macrosComplete(p Product) bool {
	for _, v := range []*float64{p.Kcal, p.ProteinG, p.FatG, p.CarbsG} {
		if v == nil || *v == 0 {
			return false
		}
	}
	return true
}
