package core

// ActivityDays summarizes how many distinct calendar days carry any logged
// data, per log and combined.
type ActivityDays struct {
	Total  int
	Food   int
	Weight int
}

// CountUniqueDays merges distinct day keys from the food and weight logs
// into one deduplicated count. Membership is keyed on the normalized DateKey
// form, so differently-padded spellings of the same day collapse to one.
// Strings that do not parse as dates (empty cells, column labels) never
// count.
func CountUniqueDays(foodDates, weightDates []string) ActivityDays {
	food := normalizeDays(foodDates)
	weight := normalizeDays(weightDates)

	union := make(map[DateKey]struct{}, len(food)+len(weight))
	for d := range food {
		union[d] = struct{}{}
	}
	for d := range weight {
		union[d] = struct{}{}
	}

	return ActivityDays{
		Total:  len(union),
		Food:   len(food),
		Weight: len(weight),
	}
}

func normalizeDays(raw []string) map[DateKey]struct{} {
	out := make(map[DateKey]struct{}, len(raw))
	for _, s := range raw {
		d, err := ParseDate(s)
		if err != nil {
			continue
		}
		out[d] = struct{}{}
	}
	return out
}
