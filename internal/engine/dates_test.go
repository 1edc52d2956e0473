package engine

import (
	"testing"
	"time"
)

func TestAddMonths_PreservesDay(t *testing.T) {
	got := AddMonths(date(2024, time.March, 15), 12)
	if want := date(2025, time.March, 15); !got.Equal(want) {
		t.Fatalf("got=%s want=%s", got, want)
	}
}

func TestAddMonths_ClampsToEndOfMonth(t *testing.T) {
	cases := []struct {
		from   time.Time
		months int
		want   time.Time
	}{
		{date(2024, time.January, 31), 1, date(2024, time.February, 29)}, // leap year
		{date(2023, time.January, 31), 1, date(2023, time.February, 28)},
		{date(2024, time.May, 31), 1, date(2024, time.June, 30)},
		{date(2024, time.August, 31), 6, date(2025, time.February, 28)},
		{date(2024, time.December, 31), 2, date(2025, time.February, 28)},
	}
	for _, tc := range cases {
		got := AddMonths(tc.from, tc.months)
		if !got.Equal(tc.want) {
			t.Fatalf("AddMonths(%s, %d)=%s want=%s", tc.from, tc.months, got, tc.want)
		}
	}
}

func TestWholeMonthsBetween(t *testing.T) {
	cases := []struct {
		from, to time.Time
		want     int
	}{
		{date(2024, time.January, 15), date(2024, time.January, 20), 0},
		{date(2024, time.January, 15), date(2024, time.February, 14), 0},
		{date(2024, time.January, 15), date(2024, time.February, 15), 1},
		{date(2024, time.January, 15), date(2025, time.January, 15), 12},
		{date(2024, time.January, 15), date(2025, time.January, 14), 11},
		{date(2024, time.January, 31), date(2024, time.February, 29), 1}, // clamped anchor
		{date(2024, time.January, 31), date(2024, time.March, 30), 1},
		{date(2024, time.January, 31), date(2024, time.March, 31), 2},
		{date(2024, time.June, 1), date(2024, time.May, 1), -1},
	}
	for _, tc := range cases {
		got := WholeMonthsBetween(tc.from, tc.to)
		if got != tc.want {
			t.Fatalf("WholeMonthsBetween(%s, %s)=%d want=%d", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestEffectiveDate_UsesLastAdjustmentWhenPresent(t *testing.T) {
	contract := date(2022, time.April, 10)
	last := date(2024, time.July, 10)

	got := EffectiveDate(12, contract, nil)
	if want := date(2023, time.April, 10); !got.Equal(want) {
		t.Fatalf("no prior adjustment: got=%s want=%s", got, want)
	}

	got = EffectiveDate(12, contract, &last)
	if want := date(2025, time.July, 10); !got.Equal(want) {
		t.Fatalf("with prior adjustment: got=%s want=%s", got, want)
	}
}
