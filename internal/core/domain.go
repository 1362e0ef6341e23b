package core

import (
	"errors"
	"strings"
)

// UnknownTime is the sentinel rendered for food entries logged without a
// time of day.
const UnknownTime = "??:??"

// Provenance values for macro data.
const (
	SourceCatalog   = "catalog"
	SourceEstimated = "estimated"
)

type (
	// FoodEntry is one logged meal or snack. Multiple entries per day are
	// expected and are always summed, never overwritten.
	FoodEntry struct {
		Date        DateKey
		Time        string // "HH:MM" or UnknownTime
		Description string
		Kcal        float64
		ProteinG    float64
		FatG        float64
		CarbsG      float64
	}

	// WeightEntry is one body-composition sample. Optional fields stay nil
	// when the sample did not include them; a nil WeightKg makes the whole
	// sample meaningless for aggregation.
	WeightEntry struct {
		Date       DateKey
		WeightKg   *float64
		BodyFatPct *float64
		MusclePct  *float64
		WaterPct   *float64
	}

	// DailyTotal is derived, never stored: the sum of all food entries
	// sharing a date.
	DailyTotal struct {
		Date     DateKey
		Kcal     float64
		ProteinG float64
		FatG     float64
		CarbsG   float64
	}

	// MacroEstimate carries macro values together with their provenance.
	// Source must survive all the way to the caller: estimated values carry
	// materially higher uncertainty than catalog ones.
	MacroEstimate struct {
		Name     string
		Kcal     float64
		ProteinG float64
		FatG     float64
		CarbsG   float64
		Source   string
	}

	// Favorite is a frequently-logged food with known macros per portion.
	Favorite struct {
		Name     string
		Kcal     float64
		ProteinG float64
		FatG     float64
		CarbsG   float64
	}
)

var (
	ErrEmptyDescription = errors.New("empty description")
	ErrNegativeKcal     = errors.New("negative kcal")
	ErrInvalidWeight    = errors.New("invalid weight")
)

func (e FoodEntry) Validate() error {
	if e.Date.IsZero() {
		return ErrMalformedDate
	}
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}
	if e.Kcal < 0 || e.ProteinG < 0 || e.FatG < 0 || e.CarbsG < 0 {
		return ErrNegativeKcal
	}
	return nil
}

func (w WeightEntry) Validate() error {
	if w.Date.IsZero() {
		return ErrMalformedDate
	}
	if w.WeightKg == nil || *w.WeightKg <= 0 {
		return ErrInvalidWeight
	}
	return nil
}

// HasWeight reports whether the sample carries a usable weight value.
func (w WeightEntry) HasWeight() bool {
	return w.WeightKg != nil && *w.WeightKg > 0
}
