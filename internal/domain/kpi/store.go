package kpi

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrUnknownFormula = errors.New("unknown formula")
	ErrDuplicateKPI   = errors.New("employee already tracks this kpi type")
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func ValidFormula(formula string) bool {
	switch formula {
	case FormulaGoalAchievement, FormulaDirectPenalty, FormulaConversionFromLeads:
		return true
	}
	return false
}
