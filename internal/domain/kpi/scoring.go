package kpi

import "salesdash/internal/domain/period"

// Score computes one KPI's contribution for a period. Unconfigured types,
// missing targets and missing lead volumes all resolve to zero rather than
// an error: historical score data routinely outlives config and employee
// edits, and a dashboard render must never fail on it.
func Score(k KPI, p period.Period, siblings []KPI, configs map[string]Config) float64 {
	cfg, ok := configs[k.Type]
	if !ok {
		return 0
	}

	actual := k.Scores[p.Key()]

	switch cfg.Formula {
	case FormulaGoalAchievement:
		if k.Target == nil || *k.Target == 0 {
			return 0
		}
		ratio := actual / *k.Target
		if ratio > 1 {
			ratio = 1
		}
		return ratio * cfg.MaxPoints

	case FormulaDirectPenalty:
		// Linear and uncapped; MaxPoints is negative for these configs.
		return actual * cfg.MaxPoints

	case FormulaConversionFromLeads:
		leads := leadsActual(siblings, p)
		if leads == 0 {
			return 0
		}
		ratio := actual / (conversionTargetOfLeads * leads)
		if ratio > 1 {
			ratio = 1
		}
		return ratio * cfg.MaxPoints
	}

	return 0
}

// FinalScore sums an employee's KPI scores for a period and clamps the
// result to [0, 100], whatever the configured MaxPoints add up to.
func FinalScore(kpis []KPI, p period.Period, configs map[string]Config) float64 {
	total := 0.0
	for _, k := range kpis {
		total += Score(k, p, kpis, configs)
	}
	if total < FinalScoreFloor {
		return FinalScoreFloor
	}
	if total > FinalScoreCeiling {
		return FinalScoreCeiling
	}
	return total
}

func leadsActual(siblings []KPI, p period.Period) float64 {
	for _, s := range siblings {
		if s.Type == TypeLeads {
			return s.Scores[p.Key()]
		}
	}
	return 0
}
