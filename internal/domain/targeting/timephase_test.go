package targeting

import (
	"testing"

	"salesdash/internal/domain/period"
)

func assertConsistent(t *testing.T, annual AnnualTarget, price float64) {
	t.Helper()

	seasonSum := 0.0
	for season, seasonal := range annual.Seasons {
		monthSum := 0.0
		for month, monthly := range seasonal.Months {
			if monthly.Value != monthly.Quantity*price {
				t.Fatalf("%s/%s value %v != quantity %v * price %v", season, month, monthly.Value, monthly.Quantity, price)
			}
			monthSum += monthly.Quantity
		}
		if seasonal.Quantity != monthSum {
			t.Fatalf("season %s quantity %v != month sum %v", season, seasonal.Quantity, monthSum)
		}
		if seasonal.Value != seasonal.Quantity*price {
			t.Fatalf("season %s value %v != quantity * price", season, seasonal.Value)
		}
		seasonSum += seasonal.Quantity
	}
	if annual.Quantity != seasonSum {
		t.Fatalf("annual quantity %v != season sum %v", annual.Quantity, seasonSum)
	}
	if annual.Value != annual.Quantity*price {
		t.Fatalf("annual value %v != quantity * price", annual.Value)
	}
}

func TestTimephaseDistribution(t *testing.T) {
	annual := Timephase(20, 1_000_000)

	if len(annual.Seasons) != 4 {
		t.Fatalf("expected 4 seasons, got %d", len(annual.Seasons))
	}
	for _, season := range period.Seasons {
		if len(annual.Seasons[season].Months) != 3 {
			t.Fatalf("expected 3 months in %s", season)
		}
	}

	// 20 units across weights 1/1.05/1.10/1.25 of 4.40, months ceiled.
	if q := annual.Seasons[period.SeasonSpring].Quantity; q != 5 {
		t.Fatalf("expected spring quantity 5, got %v", q)
	}
	if q := annual.Seasons[period.SeasonWinter].Quantity; q != 6 {
		t.Fatalf("expected winter quantity 6, got %v", q)
	}
	if annual.Quantity != 21 {
		t.Fatalf("expected ceiled annual quantity 21, got %v", annual.Quantity)
	}
	if annual.Value != 21_000_000 {
		t.Fatalf("expected annual value 21000000, got %v", annual.Value)
	}

	assertConsistent(t, annual, 1_000_000)
}

func TestTimephaseWinterCarriesTheHighestLoad(t *testing.T) {
	annual := Timephase(880, 10)

	spring := annual.Seasons[period.SeasonSpring].Quantity
	winter := annual.Seasons[period.SeasonWinter].Quantity
	if winter <= spring {
		t.Fatalf("expected winter (%v) above spring (%v)", winter, spring)
	}
}

func TestTimephaseConsistencyAcrossInputs(t *testing.T) {
	for _, qty := range []float64{1, 7, 20, 99.5, 1234} {
		for _, price := range []float64{1, 250, 1_000_000} {
			assertConsistent(t, Timephase(qty, price), price)
		}
	}
}

func TestTimephaseZeroAndNegative(t *testing.T) {
	for _, qty := range []float64{0, -5} {
		annual := Timephase(qty, 500)
		if annual.Quantity != 0 || annual.Value != 0 {
			t.Fatalf("expected all-zero annual for qty %v, got %+v", qty, annual)
		}
		for season, seasonal := range annual.Seasons {
			if seasonal.Quantity != 0 || seasonal.Value != 0 {
				t.Fatalf("expected zero season %s, got %+v", season, seasonal)
			}
			for month, monthly := range seasonal.Months {
				if monthly.Quantity != 0 || monthly.Value != 0 {
					t.Fatalf("expected zero month %s, got %+v", month, monthly)
				}
			}
		}
	}
}

func TestTimephaseMonthThreeClampAbsorbsOverrun(t *testing.T) {
	// A tiny seasonal quantity ceils months one and two to 1 each, pushing
	// the back-computed month three negative; it clamps to zero and the
	// seasonal total absorbs the overrun.
	annual := Timephase(0.2, 100)

	seasonal := annual.Seasons[period.SeasonSpring]
	months := period.MonthsOf(period.SeasonSpring)
	if seasonal.Months[months[0]].Quantity != 1 || seasonal.Months[months[1]].Quantity != 1 {
		t.Fatalf("expected first two months ceiled to 1, got %+v", seasonal)
	}
	if seasonal.Months[months[2]].Quantity != 0 {
		t.Fatalf("expected clamped month three, got %v", seasonal.Months[months[2]].Quantity)
	}
	if seasonal.Quantity != 2 {
		t.Fatalf("expected seasonal total 2 after clamp, got %v", seasonal.Quantity)
	}

	assertConsistent(t, annual, 100)
}
