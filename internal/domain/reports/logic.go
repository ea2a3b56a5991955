package reports

import (
	"sort"

	"salesdash/internal/domain/catalog"
	"salesdash/internal/domain/kpi"
	"salesdash/internal/domain/period"
)

// Summary is the dashboard header block.
type Summary struct {
	EmployeeCount       int     `json:"employeeCount"`
	ProductCount        int     `json:"productCount"`
	TerritoryCount      int     `json:"territoryCount"`
	AssignedTerritories int     `json:"assignedTerritories"`
	AverageFinalScore   float64 `json:"averageFinalScore"`
	TopPerformers       []Rank  `json:"topPerformers"`
}

type Rank struct {
	EmployeeID   string  `json:"employeeId"`
	EmployeeName string  `json:"employeeName"`
	FinalScore   float64 `json:"finalScore"`
}

// BuildScoreMatrix computes every employee's per-KPI and final scores for
// one period.
func BuildScoreMatrix(employees []catalog.Employee, kpisByEmployee map[string][]kpi.KPI, configs map[string]kpi.Config, p period.Period) []kpi.ScoreRow {
	rows := make([]kpi.ScoreRow, 0, len(employees))
	for _, emp := range employees {
		kpis := kpisByEmployee[emp.ID]
		row := kpi.ScoreRow{
			EmployeeID:   emp.ID,
			EmployeeName: emp.Name,
			Scores:       make(map[string]float64, len(kpis)),
			FinalScore:   kpi.FinalScore(kpis, p, configs),
		}
		for _, k := range kpis {
			row.Scores[k.Type] = kpi.Score(k, p, kpis, configs)
		}
		rows = append(rows, row)
	}
	return rows
}

// BuildSummary folds counts and a score matrix into the dashboard summary.
// topN bounds the leaderboard.
func BuildSummary(employeeCount, productCount, territoryCount, assignedTerritories int, matrix []kpi.ScoreRow, topN int) Summary {
	summary := Summary{
		EmployeeCount:       employeeCount,
		ProductCount:        productCount,
		TerritoryCount:      territoryCount,
		AssignedTerritories: assignedTerritories,
	}

	if len(matrix) > 0 {
		total := 0.0
		ranks := make([]Rank, 0, len(matrix))
		for _, row := range matrix {
			total += row.FinalScore
			ranks = append(ranks, Rank{EmployeeID: row.EmployeeID, EmployeeName: row.EmployeeName, FinalScore: row.FinalScore})
		}
		summary.AverageFinalScore = total / float64(len(matrix))

		sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].FinalScore > ranks[j].FinalScore })
		if topN > 0 && len(ranks) > topN {
			ranks = ranks[:topN]
		}
		summary.TopPerformers = ranks
	}
	return summary
}
