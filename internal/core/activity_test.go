package core

import "testing"

func TestCountUniqueDays(t *testing.T) {
	got := CountUniqueDays(
		[]string{"01.01.2024", "02.01.2024"},
		[]string{"02.01.2024"},
	)
	want := ActivityDays{Total: 2, Food: 2, Weight: 1}
	if got != want {
		t.Fatalf("CountUniqueDays = %+v, want %+v", got, want)
	}
}

func TestCountUniqueDaysSkipsSentinels(t *testing.T) {
	got := CountUniqueDays(
		[]string{"Datum", "", "01.01.2024", "01.01.2024"},
		[]string{"", "Datum"},
	)
	want := ActivityDays{Total: 1, Food: 1, Weight: 0}
	if got != want {
		t.Fatalf("CountUniqueDays = %+v, want %+v", got, want)
	}
}

func TestCountUniqueDaysNormalizesPadding(t *testing.T) {
	got := CountUniqueDays(
		[]string{"1.1.2024"},
		[]string{"01.01.2024"},
	)
	want := ActivityDays{Total: 1, Food: 1, Weight: 1}
	if got != want {
		t.Fatalf("padded and unpadded spellings must collapse: %+v", got)
	}
}

func TestCountUniqueDaysEmpty(t *testing.T) {
	got := CountUniqueDays(nil, nil)
	if got != (ActivityDays{}) {
		t.Fatalf("CountUniqueDays(nil, nil) = %+v", got)
	}
}
