package kpi

const (
	FormulaGoalAchievement     = "goal_achievement"
	FormulaDirectPenalty       = "direct_penalty"
	FormulaConversionFromLeads = "conversion_from_leads"

	// TypeLeads is the KPI type the conversion formula reads its reference
	// volume from.
	TypeLeads = "leads"

	FinalScoreFloor   = 0.0
	FinalScoreCeiling = 100.0
)

// conversionTargetOfLeads is the fixed business rule for the lead-conversion
// formula: full marks at a 20% conversion rate of the recorded leads.
const conversionTargetOfLeads = 0.2
