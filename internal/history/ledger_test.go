package history

import (
	"fmt"
	"math"
	"testing"
)

func TestLedgerRecordPrependsNewestFirst(t *testing.T) {
	l := NewLedger(DefaultCapacity)

	l.Record("12.0 ÷ 3.0", 4)
	l.Record("5.0 + 5.0", 10)

	got := l.List()
	want := []string{"5.0 + 5.0 = 10.0", "12.0 ÷ 3.0 = 4.0"}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].String() != want[i] {
			t.Fatalf("entry %d: expected %q, got %q", i, want[i], got[i].String())
		}
	}
}

func TestLedgerKeepsAtMostCapacity(t *testing.T) {
	for _, n := range []int{0, 1, 9, 10, 11, 25} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			l := NewLedger(DefaultCapacity)
			for i := 0; i < n; i++ {
				l.Record(fmt.Sprintf("expr-%d", i), float64(i))
			}

			got := l.List()
			wantLen := min(n, DefaultCapacity)
			if len(got) != wantLen {
				t.Fatalf("expected %d entries, got %d", wantLen, len(got))
			}

			for i, rec := range got {
				want := fmt.Sprintf("expr-%d", n-1-i)
				if rec.Expression != want {
					t.Fatalf("entry %d: expected %q, got %q", i, want, rec.Expression)
				}
			}
		})
	}
}

func TestLedgerDoesNotDeduplicate(t *testing.T) {
	l := NewLedger(DefaultCapacity)
	l.Record("1.0 + 1.0", 2)
	l.Record("1.0 + 1.0", 2)

	if l.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", l.Len())
	}
}

func TestLedgerClear(t *testing.T) {
	l := NewLedger(DefaultCapacity)
	if got := len(l.List()); got != 0 {
		t.Fatalf("expected empty ledger, got %d entries", got)
	}

	for i := 0; i < 15; i++ {
		l.Record("x", 1)
	}
	l.Clear()

	if got := len(l.List()); got != 0 {
		t.Fatalf("expected empty ledger after clear, got %d entries", got)
	}

	l.Record("after", 1)
	if got := l.List(); len(got) != 1 || got[0].Expression != "after" {
		t.Fatalf("expected single entry after clear, got %#v", got)
	}
}

func TestLedgerListReturnsCopy(t *testing.T) {
	l := NewLedger(DefaultCapacity)
	l.Record("first", 1)

	list := l.List()
	list[0].Expression = "mutated"

	if got := l.List()[0].Expression; got != "first" {
		t.Fatalf("expected ledger to be unaffected, got %q", got)
	}
}

func TestNewLedgerDefaultsCapacity(t *testing.T) {
	if got := NewLedger(0).Cap(); got != DefaultCapacity {
		t.Fatalf("expected capacity %d, got %d", DefaultCapacity, got)
	}
	if got := NewLedger(3).Cap(); got != 3 {
		t.Fatalf("expected capacity 3, got %d", got)
	}
}

func TestNewLedgerClampsCapacity(t *testing.T) {
	l := NewLedger(25)
	if got := l.Cap(); got != DefaultCapacity {
		t.Fatalf("expected capacity clamped to %d, got %d", DefaultCapacity, got)
	}

	for i := 0; i < 25; i++ {
		l.Record("1.0 + 1.0", 2)
	}
	if got := l.Len(); got != DefaultCapacity {
		t.Fatalf("expected %d entries, got %d", DefaultCapacity, got)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{4, "4.0"},
		{-3, "-3.0"},
		{0, "0.0"},
		{math.Copysign(0, -1), "-0.0"},
		{100, "100.0"},
		{math.Nextafter(0.3, 1), "0.30000000000000004"},
		{2.5, "2.5"},
		{0.0001, "0.0001"},
		{0.00001, "1e-05"},
		{1e15, "1000000000000000.0"},
		{1e16, "1e+16"},
		{1.5e300, "1.5e+300"},
		{math.NaN(), "nan"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			if got := FormatNumber(tc.in); got != tc.want {
				t.Fatalf("FormatNumber(%v): expected %q, got %q", tc.in, tc.want, got)
			}
		})
	}
}
