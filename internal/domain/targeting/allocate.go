package targeting

import "salesdash/internal/domain/catalog"

// Allocate distributes a total market size across employees through their
// assigned territories: each territory contributes its product share of the
// market, scaled by the owner's target acquisition rate, and the result is
// timephased into the seasonal curve.
//
// Degenerate inputs short-circuit to an empty result. Territories assigned
// to an employee missing from the snapshot are skipped; unassigned
// territories and employees without territories contribute nothing.
func Allocate(employees []catalog.Employee, territories []catalog.Territory, product *catalog.Product, totalMarketUnits float64) []EmployeeAutoTarget {
	if product == nil || totalMarketUnits <= 0 {
		return []EmployeeAutoTarget{}
	}

	accumulators := make(map[string]*EmployeeAutoTarget, len(employees))
	order := make([]string, 0, len(employees))
	for _, emp := range employees {
		accumulators[emp.ID] = &EmployeeAutoTarget{
			EmployeeID:            emp.ID,
			EmployeeName:          emp.Name,
			TargetAcquisitionRate: emp.TargetAcquisitionRate,
		}
		order = append(order, emp.ID)
	}

	for _, territory := range territories {
		if territory.AssignedTo == nil {
			continue
		}
		acc, ok := accumulators[*territory.AssignedTo]
		if !ok {
			continue
		}

		share := territory.MarketShare[product.ID]
		potentialUnits := share / 100 * totalMarketUnits
		territoryQty := potentialUnits * acc.TargetAcquisitionRate / 100

		acc.TotalShare += share
		acc.Territories = append(acc.Territories, TerritoryDetail{
			TerritoryID:   territory.ID,
			TerritoryName: territory.Name,
			Kind:          territory.Kind,
			Share:         share,
			BaseQuantity:  territoryQty,
			Annual:        Timephase(territoryQty, product.Price),
		})
	}

	results := make([]EmployeeAutoTarget, 0, len(order))
	for _, employeeID := range order {
		acc := accumulators[employeeID]
		if len(acc.Territories) == 0 {
			continue
		}

		// The employee annual is re-timephased from the summed raw
		// quantities, not summed from the per-territory trees, so a single
		// rounding pass applies instead of one per territory.
		for _, detail := range acc.Territories {
			acc.BaseQuantity += detail.BaseQuantity
		}
		acc.BaseValue = acc.BaseQuantity * product.Price
		acc.Annual = Timephase(acc.BaseQuantity, product.Price)
		results = append(results, *acc)
	}
	return results
}
