package macro

import (
	"context"
	"errors"
	"strings"
	"testing"

	"nutrilog/internal/core"
)

type fakeCatalog struct {
	product Product
	err     error
	calls   int
}

func (f *fakeCatalog) Lookup(_ context.Context, _ string) (Product, error) {
	f.calls++
	return f.product, f.err
}

type fakeOracle struct {
	response string
	err      error
	calls    int
	prompts  []string
}

func (f *fakeOracle) Complete(_ context.Context, prompt string, _ ResponseShape) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func fp(v float64) *float64 { return &v }

func TestResolveProductCatalogHit(t *testing.T) {
	cat := &fakeCatalog{product: Product{
		Name: "Skyr", Kcal: fp(63), ProteinG: fp(11), FatG: fp(0.2), CarbsG: fp(4),
	}}
	orc := &fakeOracle{}
	r := NewResolver(cat, orc)

	got, err := r.ResolveProduct(context.Background(), "4012345", "")
	if err != nil {
		t.Fatal(err)
	}
	if got.Source != core.SourceCatalog {
		t.Fatalf("source = %q, want catalog", got.Source)
	}
	if got.Kcal != 63 || got.ProteinG != 11 {
		t.Fatalf("estimate = %+v", got)
	}
	if orc.calls != 0 {
		t.Fatalf("oracle must not be called on a catalog hit")
	}
}

func TestResolveProductZeroMacrosFallBack(t *testing.T) {
	// All-zero catalog data means missing, not valid.
	cat := &fakeCatalog{product: Product{
		Name: "Mystery bar", Kcal: fp(0), ProteinG: fp(0), FatG: fp(0), CarbsG: fp(0),
	}}
	orc := &fakeOracle{response: `{"name":"Mystery bar","kcal":210,"protein_g":8,"fat_g":9,"carbs_g":24}`}
	r := NewResolver(cat, orc)

	got, err := r.ResolveProduct(context.Background(), "111", "mystery bar")
	if err != nil {
		t.Fatal(err)
	}
	if got.Source != core.SourceEstimated {
		t.Fatalf("source = %q, want estimated", got.Source)
	}
	if got.Kcal != 210 {
		t.Fatalf("estimate = %+v", got)
	}
	if orc.calls != 1 {
		t.Fatalf("oracle calls = %d, want exactly 1", orc.calls)
	}
}

func TestResolveProductNotFoundUsesOracle(t *testing.T) {
	cat := &fakeCatalog{err: ErrProductNotFound}
	orc := &fakeOracle{response: "```json\n{\"name\":\"bread\",\"kcal\":250,\"protein_g\":9,\"fat_g\":3,\"carbs_g\":48}\n```"}
	r := NewResolver(cat, orc)

	got, err := r.ResolveProduct(context.Background(), "999", "rye bread")
	if err != nil {
		t.Fatal(err)
	}
	if got.Source != core.SourceEstimated || got.CarbsG != 48 {
		t.Fatalf("fence-wrapped response must parse: %+v", got)
	}
}

func TestResolveProductUnparsableEstimate(t *testing.T) {
	cat := &fakeCatalog{err: ErrProductNotFound}
	orc := &fakeOracle{response: "I'm sorry, I cannot estimate that."}
	r := NewResolver(cat, orc)

	_, err := r.ResolveProduct(context.Background(), "999", "rye bread")
	var uerr *UnparsableEstimateError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected UnparsableEstimateError, got %v", err)
	}
	if uerr.Raw == "" {
		t.Fatalf("raw response must be attached for diagnosis")
	}
}

func TestResolveProductMissingFieldIsUnparsable(t *testing.T) {
	cat := &fakeCatalog{err: ErrProductNotFound}
	orc := &fakeOracle{response: `{"name":"bread","kcal":250,"protein_g":9}`}
	r := NewResolver(cat, orc)

	_, err := r.ResolveProduct(context.Background(), "999", "bread")
	var uerr *UnparsableEstimateError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected UnparsableEstimateError for missing fields, got %v", err)
	}
}

func TestResolveProductCatalogErrorPropagates(t *testing.T) {
	boom := errors.New("upstream down")
	cat := &fakeCatalog{err: boom}
	r := NewResolver(cat, &fakeOracle{})

	_, err := r.ResolveProduct(context.Background(), "1", "x")
	if !errors.Is(err, boom) {
		t.Fatalf("transient catalog failure must propagate, got %v", err)
	}
}

func TestResolveActivityKcal(t *testing.T) {
	orc := &fakeOracle{response: "412"}
	r := NewResolver(&fakeCatalog{}, orc)

	kcal, err := r.ResolveActivityKcal(context.Background(), "45 min jogging", 81.5)
	if err != nil {
		t.Fatal(err)
	}
	if kcal != 412 {
		t.Fatalf("kcal = %v, want 412", kcal)
	}
	if len(orc.prompts) != 1 || !containsAll(orc.prompts[0], "81.5", "jogging") {
		t.Fatalf("prompt must embed weight and description: %q", orc.prompts)
	}
}

func TestResolveActivityKcalProse(t *testing.T) {
	orc := &fakeOracle{response: "It depends on the intensity."}
	r := NewResolver(&fakeCatalog{}, orc)

	_, err := r.ResolveActivityKcal(context.Background(), "jogging", 80)
	var uerr *UnparsableEstimateError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected UnparsableEstimateError, got %v", err)
	}
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
