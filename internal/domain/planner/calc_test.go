package planner

import (
	"math"
	"testing"
)

var testConfig = RateConfig{
	LeadToOppRate:      0.2,
	OppToCustomerRate:  0.25,
	LeadToOppTime:      1,
	OppToCustomerTime:  2.5,
	TotalTimePerPerson: 160,
	ExistingClientTime: 40,
	Salary:             500,
	CommissionRate:     0.1,
}

func TestProjectSolvesForSalespeople(t *testing.T) {
	in := Inputs{TargetCustomers: 48, DealSize: 1000, MarketSize: 480}
	m := Project(in, UnknownSalespeople, testConfig)

	if m.LeadsPerCustomer != 20 {
		t.Fatalf("expected 20 leads per customer, got %v", m.LeadsPerCustomer)
	}
	if m.OppsPerCustomer != 4 {
		t.Fatalf("expected 4 opps per customer, got %v", m.OppsPerCustomer)
	}
	if m.TimePerNewCustomer != 30 {
		t.Fatalf("expected 30h per new customer, got %v", m.TimePerNewCustomer)
	}
	if m.AvailableTimePerPersonPerYear != 1440 {
		t.Fatalf("expected 1440h available per year, got %v", m.AvailableTimePerPersonPerYear)
	}
	if m.Salespeople != 1 {
		t.Fatalf("expected exactly 1 salesperson, got %v", m.Salespeople)
	}

	if m.Revenue != 48000 {
		t.Fatalf("expected revenue 48000, got %v", m.Revenue)
	}
	if m.Cost != 10800 {
		t.Fatalf("expected cost 10800, got %v", m.Cost)
	}
	if m.CAC != 225 {
		t.Fatalf("expected CAC 225, got %v", m.CAC)
	}
	if math.Abs(m.BreakEvenDeals-6000.0/900.0) > 1e-9 {
		t.Fatalf("unexpected break-even: %v", m.BreakEvenDeals)
	}
	if m.MarketSharePct != 10 {
		t.Fatalf("expected 10%% market share, got %v", m.MarketSharePct)
	}
}

func TestProjectRoundTrip(t *testing.T) {
	in := Inputs{TargetCustomers: 48, DealSize: 1000, MarketSize: 480}
	forward := Project(in, UnknownSalespeople, testConfig)

	back := Project(Inputs{NumSalespeople: forward.Salespeople, DealSize: 1000, MarketSize: 480}, UnknownCustomers, testConfig)
	if math.Abs(back.Customers-in.TargetCustomers) > 1e-9 {
		t.Fatalf("round trip diverged: started with %v customers, got back %v", in.TargetCustomers, back.Customers)
	}
}

func TestProjectZeroRatesGoInfinite(t *testing.T) {
	cfg := testConfig
	cfg.LeadToOppRate = 0
	m := Project(Inputs{TargetCustomers: 10}, UnknownSalespeople, cfg)

	if !math.IsInf(m.LeadsPerCustomer, 1) {
		t.Fatalf("expected infinite leads per customer, got %v", m.LeadsPerCustomer)
	}

	cfg = testConfig
	cfg.OppToCustomerRate = 0
	m = Project(Inputs{TargetCustomers: 10}, UnknownSalespeople, cfg)
	if !math.IsInf(m.OppsPerCustomer, 1) {
		t.Fatalf("expected infinite opps per customer, got %v", m.OppsPerCustomer)
	}
}

func TestProjectNoAvailableTime(t *testing.T) {
	cfg := testConfig
	cfg.ExistingClientTime = cfg.TotalTimePerPerson

	m := Project(Inputs{TargetCustomers: 10}, UnknownSalespeople, cfg)
	if !math.IsInf(m.Salespeople, 1) {
		t.Fatalf("expected infinite headcount need, got %v", m.Salespeople)
	}

	m = Project(Inputs{NumSalespeople: 3}, UnknownCustomers, cfg)
	if m.Customers != 0 {
		t.Fatalf("expected zero capacity, got %v", m.Customers)
	}
}

func TestProjectFinancialSentinels(t *testing.T) {
	m := Project(Inputs{NumSalespeople: 0, DealSize: 0, MarketSize: 0}, UnknownCustomers, RateConfig{})

	if m.CAC != 0 {
		t.Fatalf("expected CAC 0 with zero customers, got %v", m.CAC)
	}
	if m.ROI != 0 {
		t.Fatalf("expected ROI 0 with zero cost, got %v", m.ROI)
	}
	if !math.IsInf(m.BreakEvenDeals, 1) {
		t.Fatalf("expected infinite break-even with zero margin, got %v", m.BreakEvenDeals)
	}
	if m.MarketSharePct != 0 {
		t.Fatalf("expected 0 market share with zero market, got %v", m.MarketSharePct)
	}
}
