package kpi

import (
	"testing"

	"salesdash/internal/domain/period"
)

var testConfigs = map[string]Config{
	"sales":      {Type: "sales", Name: "Sales", MaxPoints: 60, Formula: FormulaGoalAchievement},
	"leads":      {Type: "leads", Name: "Leads", MaxPoints: 20, Formula: FormulaGoalAchievement},
	"conversion": {Type: "conversion", Name: "Conversion", MaxPoints: 40, Formula: FormulaConversionFromLeads},
	"complaints": {Type: "complaints", Name: "Complaints", MaxPoints: -5, Formula: FormulaDirectPenalty},
}

func target(v float64) *float64 { return &v }

func TestGoalAchievementCapsAtTarget(t *testing.T) {
	p := period.New("Mehr", 1403)
	k := KPI{Type: "sales", Target: target(100), Scores: map[string]float64{p.Key(): 250}}

	score := Score(k, p, nil, testConfigs)
	if score != 60 {
		t.Fatalf("expected overachievement to cap at maxPoints 60, got %v", score)
	}
}

func TestGoalAchievementPartial(t *testing.T) {
	p := period.New("Mehr", 1403)
	k := KPI{Type: "sales", Target: target(100), Scores: map[string]float64{p.Key(): 50}}

	if score := Score(k, p, nil, testConfigs); score != 30 {
		t.Fatalf("expected 30 at half target, got %v", score)
	}
}

func TestGoalAchievementWithoutTargetIsUngraded(t *testing.T) {
	p := period.New("Mehr", 1403)

	k := KPI{Type: "sales", Scores: map[string]float64{p.Key(): 50}}
	if score := Score(k, p, nil, testConfigs); score != 0 {
		t.Fatalf("expected 0 for missing target, got %v", score)
	}

	k.Target = target(0)
	if score := Score(k, p, nil, testConfigs); score != 0 {
		t.Fatalf("expected 0 for zero target, got %v", score)
	}
}

func TestUnconfiguredTypeScoresZero(t *testing.T) {
	p := period.New("Mehr", 1403)
	k := KPI{Type: "retired_metric", Target: target(10), Scores: map[string]float64{p.Key(): 10}}

	if score := Score(k, p, nil, testConfigs); score != 0 {
		t.Fatalf("expected 0 for unconfigured type, got %v", score)
	}
}

func TestDirectPenaltyIsLinearAndUncapped(t *testing.T) {
	p := period.New("Mehr", 1403)
	k := KPI{Type: "complaints", Scores: map[string]float64{p.Key(): 7}}

	if score := Score(k, p, nil, testConfigs); score != -35 {
		t.Fatalf("expected -35, got %v", score)
	}
}

func TestConversionFromLeads(t *testing.T) {
	p := period.New("Mehr", 1403)
	leads := KPI{Type: "leads", Scores: map[string]float64{p.Key(): 100}}
	conv := KPI{Type: "conversion", Scores: map[string]float64{p.Key(): 10}}
	siblings := []KPI{leads, conv}

	// 10 conversions against a 20-conversion reference (20% of 100 leads).
	if score := Score(conv, p, siblings, testConfigs); score != 20 {
		t.Fatalf("expected 20, got %v", score)
	}

	conv.Scores[p.Key()] = 50
	if score := Score(conv, p, siblings, testConfigs); score != 40 {
		t.Fatalf("expected conversion above reference to cap at 40, got %v", score)
	}
}

func TestConversionWithoutLeadsScoresZero(t *testing.T) {
	p := period.New("Mehr", 1403)
	conv := KPI{Type: "conversion", Scores: map[string]float64{p.Key(): 10}}

	if score := Score(conv, p, []KPI{conv}, testConfigs); score != 0 {
		t.Fatalf("expected 0 with no leads sibling, got %v", score)
	}

	leads := KPI{Type: "leads", Scores: map[string]float64{}}
	if score := Score(conv, p, []KPI{leads, conv}, testConfigs); score != 0 {
		t.Fatalf("expected 0 with zero recorded leads, got %v", score)
	}
}

func TestFinalScoreClampsToFloor(t *testing.T) {
	p := period.New("Mehr", 1403)
	kpis := []KPI{
		{Type: "sales", Target: target(100), Scores: map[string]float64{p.Key(): 20}},
		{Type: "complaints", Scores: map[string]float64{p.Key(): 50}},
	}

	// 12 points of sales against -250 of penalties.
	if score := FinalScore(kpis, p, testConfigs); score != 0 {
		t.Fatalf("expected floor of 0, got %v", score)
	}
}

func TestFinalScoreClampsToCeiling(t *testing.T) {
	p := period.New("Mehr", 1403)
	configs := map[string]Config{
		"sales": {Type: "sales", MaxPoints: 90, Formula: FormulaGoalAchievement},
		"leads": {Type: "leads", MaxPoints: 90, Formula: FormulaGoalAchievement},
	}
	kpis := []KPI{
		{Type: "sales", Target: target(10), Scores: map[string]float64{p.Key(): 10}},
		{Type: "leads", Target: target(10), Scores: map[string]float64{p.Key(): 10}},
	}

	if score := FinalScore(kpis, p, configs); score != 100 {
		t.Fatalf("expected ceiling of 100, got %v", score)
	}
}

func TestFinalScoreUnrecordedPeriodIsZero(t *testing.T) {
	p := period.New("Dey", 1403)
	kpis := []KPI{{Type: "sales", Target: target(100), Scores: map[string]float64{}}}

	if score := FinalScore(kpis, p, testConfigs); score != 0 {
		t.Fatalf("expected 0 for unrecorded period, got %v", score)
	}
}
