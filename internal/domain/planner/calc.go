package planner

import "math"

// Project runs the funnel-based capacity and financial model. It is a total
// function: every division by a zero or negative denominator resolves to the
// documented sentinel (0 or +Inf) instead of failing, because every input
// arrives from free-form user entry.
func Project(in Inputs, unknown Unknown, cfg RateConfig) Metrics {
	var m Metrics

	m.LeadsPerCustomer = invOrInf(cfg.LeadToOppRate * cfg.OppToCustomerRate)
	m.OppsPerCustomer = invOrInf(cfg.OppToCustomerRate)
	m.TimePerNewCustomer = m.LeadsPerCustomer*cfg.LeadToOppTime + m.OppsPerCustomer*cfg.OppToCustomerTime
	m.AvailableTimePerPersonPerYear = (cfg.TotalTimePerPerson - cfg.ExistingClientTime) * 12

	switch unknown {
	case UnknownSalespeople:
		m.Customers = in.TargetCustomers
		if m.AvailableTimePerPersonPerYear <= 0 {
			m.Salespeople = math.Inf(1)
		} else {
			m.Salespeople = m.Customers * m.TimePerNewCustomer / m.AvailableTimePerPersonPerYear
		}
	default: // UnknownCustomers
		m.Salespeople = in.NumSalespeople
		capacityPerPerson := 0.0
		if m.AvailableTimePerPersonPerYear > 0 && m.TimePerNewCustomer > 0 {
			capacityPerPerson = m.AvailableTimePerPersonPerYear / m.TimePerNewCustomer
		}
		m.Customers = capacityPerPerson * m.Salespeople
	}

	m.Revenue = m.Customers * in.DealSize
	fixedCost := m.Salespeople * cfg.Salary * 12
	m.Cost = fixedCost + m.Revenue*cfg.CommissionRate

	if m.Customers != 0 {
		m.CAC = m.Cost / m.Customers
	}
	if m.Cost != 0 {
		m.ROI = (m.Revenue - m.Cost) / m.Cost * 100
	}

	marginPerDeal := in.DealSize * (1 - cfg.CommissionRate)
	if marginPerDeal <= 0 {
		m.BreakEvenDeals = math.Inf(1)
	} else {
		m.BreakEvenDeals = fixedCost / marginPerDeal
	}

	if in.MarketSize > 0 {
		m.MarketSharePct = m.Customers / in.MarketSize * 100
	}

	return m
}

func invOrInf(v float64) float64 {
	if v == 0 {
		return math.Inf(1)
	}
	return 1 / v
}
