package db

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"salesdash/internal/domain/auth"
	"salesdash/internal/domain/kpi"
	"salesdash/internal/platform/config"
)

// Seed bootstraps the first admin user and the default KPI registry.
// Everything here is idempotent.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if err := ensureAdminUser(ctx, pool, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
		return err
	}
	return ensureDefaultKPIConfigs(ctx, pool)
}

func ensureAdminUser(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil
	}

	store := auth.NewStore(pool)
	if _, err := store.FindUserByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, auth.ErrUserNotFound) {
		return err
	}

	if password == "" {
		password = "admin-change-me"
		slog.Warn("seeding admin with default password; set SEED_ADMIN_PASSWORD", "email", email)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = store.CreateUser(ctx, email, hash, auth.RoleAdmin)
	return err
}

// ensureDefaultKPIConfigs installs the stock KPI registry. Existing rows
// are left untouched so admin edits survive restarts.
func ensureDefaultKPIConfigs(ctx context.Context, pool *pgxpool.Pool) error {
	defaults := []kpi.Config{
		{Type: "sales", Name: "Sales Achievement", MaxPoints: 40, Formula: kpi.FormulaGoalAchievement},
		{Type: kpi.TypeLeads, Name: "New Leads", MaxPoints: 20, Formula: kpi.FormulaGoalAchievement},
		{Type: "conversion", Name: "Lead Conversion", MaxPoints: 25, Formula: kpi.FormulaConversionFromLeads},
		{Type: "complaints", Name: "Customer Complaints", MaxPoints: -5, Formula: kpi.FormulaDirectPenalty},
	}

	for _, cfg := range defaults {
		_, err := pool.Exec(ctx, `
      INSERT INTO kpi_configs (type, name, max_points, formula)
      VALUES ($1,$2,$3,$4)
      ON CONFLICT (type) DO NOTHING
    `, cfg.Type, cfg.Name, cfg.MaxPoints, cfg.Formula)
		if err != nil {
			return err
		}
	}
	return nil
}
