package targeting

import (
	"math"

	"salesdash/internal/domain/period"
)

// Seasonal demand curve: flat spring, rising through winter. Normalized by
// the weight sum (4.40) when splitting an annual quantity.
var seasonWeights = map[string]float64{
	period.SeasonSpring: 1.00,
	period.SeasonSummer: 1.05,
	period.SeasonAutumn: 1.10,
	period.SeasonWinter: 1.25,
}

// Mild ramp across the three months of a season, normalized by its sum (3).
var monthWeights = [3]float64{0.95, 1.00, 1.05}

const seasonWeightSum = 4.40

// Timephase splits an annual unit quantity into the seasonal and monthly
// curve. Months one and two of each season are ceiled independently; month
// three is back-computed against the ceiling of the seasonal total and
// clamped at zero, so the three months always sum to that ceiling. Totals
// are then rebuilt bottom-up, which is why a timephased annual quantity can
// exceed the raw input.
func Timephase(annualQty, price float64) AnnualTarget {
	annual := AnnualTarget{Seasons: make(map[string]SeasonalTarget, 4)}

	for _, season := range period.Seasons {
		seasonQty := annualQty * seasonWeights[season] / seasonWeightSum
		seasonal := SeasonalTarget{Months: make(map[string]MonthlyTarget, 3)}
		months := period.MonthsOf(season)

		if seasonQty <= 0 {
			for _, month := range months {
				seasonal.Months[month] = MonthlyTarget{}
			}
			annual.Seasons[season] = seasonal
			continue
		}

		monthWeightSum := monthWeights[0] + monthWeights[1] + monthWeights[2]
		first := math.Ceil(seasonQty * monthWeights[0] / monthWeightSum)
		second := math.Ceil(seasonQty * monthWeights[1] / monthWeightSum)
		third := math.Ceil(seasonQty) - first - second
		if third < 0 {
			third = 0
		}

		quantities := [3]float64{first, second, third}
		for i, month := range months {
			seasonal.Months[month] = MonthlyTarget{Quantity: quantities[i], Value: quantities[i] * price}
			seasonal.Quantity += quantities[i]
		}
		seasonal.Value = seasonal.Quantity * price

		annual.Seasons[season] = seasonal
		annual.Quantity += seasonal.Quantity
	}

	annual.Value = annual.Quantity * price
	return annual
}
