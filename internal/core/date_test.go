package core

import "testing"

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want DateKey
		ok   bool
	}{
		{"05.05.2024", NewDateKey(2024, 5, 5), true},
		{"5.5.2024", NewDateKey(2024, 5, 5), true},
		{"31.12.24", NewDateKey(2024, 12, 31), true},
		{" 01.01.2024 ", NewDateKey(2024, 1, 1), true},
		{"", DateKey{}, false},
		{"Datum", DateKey{}, false},
		{"05-05-2024", DateKey{}, false},
		{"05.05", DateKey{}, false},
		{"aa.05.2024", DateKey{}, false},
		{"32.01.2024", DateKey{}, false},
		{"01.13.2024", DateKey{}, false},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("ParseDate(%q) unexpected error: %v", tc.in, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParseDate(%q) expected error, got %v", tc.in, got)
		}
		if tc.ok && got != tc.want {
			t.Fatalf("ParseDate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestDateKeyNormalizedString(t *testing.T) {
	d, err := ParseDate("5.5.2024")
	if err != nil {
		t.Fatal(err)
	}
	if got := d.String(); got != "05.05.2024" {
		t.Fatalf("String() = %q, want zero-padded form", got)
	}
}

func TestDateKeyCompareIsChronological(t *testing.T) {
	// Lexicographic order on DD.MM.YYYY text would invert several of these.
	ordered := []string{"31.12.2023", "01.01.2024", "02.01.2024", "01.02.2024", "30.11.2024"}
	for i := 0; i < len(ordered)-1; i++ {
		a, _ := ParseDate(ordered[i])
		b, _ := ParseDate(ordered[i+1])
		if a.Compare(b) >= 0 {
			t.Fatalf("%s should sort before %s", ordered[i], ordered[i+1])
		}
		if b.Compare(a) <= 0 {
			t.Fatalf("%s should sort after %s", ordered[i+1], ordered[i])
		}
	}
	a, _ := ParseDate("05.05.2024")
	b, _ := ParseDate("5.5.2024")
	if a.Compare(b) != 0 {
		t.Fatalf("padding must not affect comparison")
	}
}

func TestDaysBetween(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"01.01.2024", "01.01.2024", 0},
		{"01.01.2024", "31.01.2024", 30},
		{"28.02.2024", "01.03.2024", 2}, // leap year
		{"31.12.2023", "01.01.2024", 1},
		{"02.01.2024", "01.01.2024", -1},
	}
	for _, tc := range cases {
		a, _ := ParseDate(tc.a)
		b, _ := ParseDate(tc.b)
		if got := DaysBetween(a, b); got != tc.want {
			t.Fatalf("DaysBetween(%s, %s) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}
