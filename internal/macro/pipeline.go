package macro

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"nutrilog/internal/core"
)

// pipeline states; every terminal state is explicit rather than buried in
// nested conditionals.
type state int

const (
	stateLookup state = iota
	stateCatalogHit
	stateNeedsEstimate
	stateResolved
	stateUnresolved
)

// Resolver runs the ordered fallback chain: catalog lookup, completeness
// check, then a single oracle call. It never blocks on the oracle when
// authoritative data exists, and never tags an estimated value as catalog
// data.
type Resolver struct {
	catalog Catalog
	oracle  Oracle
}

func NewResolver(catalog Catalog, oracle Oracle) *Resolver {
	return &Resolver{catalog: catalog, oracle: oracle}
}

// ResolveProduct resolves macros for a product code, falling back to an
// oracle estimate of the description when the catalog has no complete
// answer.
func (r *Resolver) ResolveProduct(ctx context.Context, code, description string) (core.MacroEstimate, error) {
	var (
		st      = stateLookup
		product Product
	)
	for {
		switch st {
		case stateLookup:
			p, err := r.catalog.Lookup(ctx, code)
			switch {
			case errors.Is(err, ErrProductNotFound):
				st = stateNeedsEstimate
			case err != nil:
				return core.MacroEstimate{}, fmt.Errorf("catalog lookup %q: %w", code, err)
			case macrosComplete(p):
				product = p
				st = stateCatalogHit
			default:
				slog.DebugContext(ctx, "Catalog data incomplete, estimating", "code", code)
				product = p
				st = stateNeedsEstimate
			}

		case stateCatalogHit:
			return core.MacroEstimate{
				Name:     product.Name,
				Kcal:     *product.Kcal,
				ProteinG: *product.ProteinG,
				FatG:     *product.FatG,
				CarbsG:   *product.CarbsG,
				Source:   core.SourceCatalog,
			}, nil

		case stateNeedsEstimate:
			name := description
			if name == "" {
				name = product.Name
			}
			if strings.TrimSpace(name) == "" {
				name = code
			}
			est, err := r.estimateMacros(ctx, name)
			if err != nil {
				return core.MacroEstimate{}, err // stateUnresolved
			}
			est.Source = core.SourceEstimated
			return est, nil // stateResolved
		}
	}
}

// ResolveActivityKcal estimates calories burned by a free-text activity
// description. The prompt embeds the user's body weight; the oracle answers
// with a single bare number.
func (r *Resolver) ResolveActivityKcal(ctx context.Context, description string, weightKg float64) (float64, error) {
	prompt := fmt.Sprintf(
		"Estimate the calories burned by a person weighing %.1f kg doing the following activity: %s.\n"+
			"Answer with a single number (kcal), no units, no explanation.",
		weightKg, description)

	raw, err := r.oracle.Complete(ctx, prompt, ShapeBareNumber)
	if err != nil {
		return 0, fmt.Errorf("oracle: %w", err)
	}
	cleaned := stripWrappers(raw)
	fields := strings.Fields(cleaned)
	if len(fields) == 0 {
		return 0, &UnparsableEstimateError{Raw: raw, Reason: "empty response"}
	}
	kcal, err := strconv.ParseFloat(strings.ReplaceAll(fields[0], ",", "."), 64)
	if err != nil {
		return 0, &UnparsableEstimateError{Raw: raw, Reason: "not a number"}
	}
	return kcal, nil
}

// estimateItem is the structured object the oracle is asked to produce.
// Fields are pointers so an absent field is distinguishable from a literal
// zero.
type estimateItem struct {
	Name     string   `json:"name"`
	Kcal     *float64 `json:"kcal"`
	ProteinG *float64 `json:"protein_g"`
	FatG     *float64 `json:"fat_g"`
	CarbsG   *float64 `json:"carbs_g"`
}

func (r *Resolver) estimateMacros(ctx context.Context, description string) (core.MacroEstimate, error) {
	prompt := fmt.Sprintf(
		"You are a nutrition database. Give your best estimate of the macro nutrients "+
			"per 100g for the following product: %s.\n"+
			"Respond with a single JSON object, nothing else: "+
			`{"name": string, "kcal": number, "protein_g": number, "fat_g": number, "carbs_g": number}`,
		description)

	raw, err := r.oracle.Complete(ctx, prompt, ShapeJSON)
	if err != nil {
		return core.MacroEstimate{}, fmt.Errorf("oracle: %w", err)
	}
	return parseEstimate(raw)
}

func parseEstimate(raw string) (core.MacroEstimate, error) {
	cleaned := stripWrappers(raw)
	var item estimateItem
	if err := json.Unmarshal([]byte(cleaned), &item); err != nil {
		return core.MacroEstimate{}, &UnparsableEstimateError{Raw: raw, Reason: "invalid JSON"}
	}
	required := []struct {
		name string
		val  *float64
	}{
		{"kcal", item.Kcal},
		{"protein_g", item.ProteinG},
		{"fat_g", item.FatG},
		{"carbs_g", item.CarbsG},
	}
	for _, f := range required {
		if f.val == nil {
			return core.MacroEstimate{}, &UnparsableEstimateError{Raw: raw, Reason: "missing field " + f.name}
		}
	}
	return core.MacroEstimate{
		Name:     item.Name,
		Kcal:     *item.Kcal,
		ProteinG: *item.ProteinG,
		FatG:     *item.FatG,
		CarbsG:   *item.CarbsG,
	}, nil
}

// stripWrappers removes the markdown code fences models like to wrap
// structured output in and slices the response down to the outermost JSON
// object when one is present.
func stripWrappers(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	s = strings.TrimSpace(s)
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start != -1 && end != -1 && end > start {
		s = s[start : end+1]
	}
	return s
}
