package repository

import (
	"context"
	"fmt"

	"grantrates-backend/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// JudgeTable is the table holding the imported dataset
const JudgeTable = "judge_grant_rates"

// JudgeRepository reads and replaces judge grant-rate rows
type JudgeRepository struct {
	db *pgxpool.Pool
}

// NewJudgeRepository creates a new judge repository
func NewJudgeRepository(db *pgxpool.Pool) *JudgeRepository {
	return &JudgeRepository{db: db}
}

// ListAll returns every row in import order. Values are returned untyped so
// they pass through the same parsing as the bundled dataset.
func (r *JudgeRepository) ListAll(ctx context.Context) ([]models.RawJudgeRecord, error) {
	query := `
		SELECT city, judge_name, denied_percentage, granted_asylum_percentage,
			granted_other_relief_percentage, total_decisions
		FROM judge_grant_rates
		ORDER BY position`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query judges: %w", err)
	}
	defer rows.Close()

	var records []models.RawJudgeRecord
	for rows.Next() {
		var (
			rec                   models.RawJudgeRecord
			denied, asylum, other *float64
			total                 *int32
		)
		if err := rows.Scan(&rec.City, &rec.JudgeName, &denied, &asylum, &other, &total); err != nil {
			return nil, fmt.Errorf("failed to scan judge: %w", err)
		}
		rec.DeniedPercentage = derefFloat(denied)
		rec.GrantedAsylumPercentage = derefFloat(asylum)
		rec.GrantedOtherReliefPercentage = derefFloat(other)
		if total != nil {
			rec.TotalDecisions = int(*total)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read judges: %w", err)
	}
	return records, nil
}

// ReplaceAll swaps the table contents for records in one transaction
func (r *JudgeRepository) ReplaceAll(ctx context.Context, records []models.JudgeRecord) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM judge_grant_rates"); err != nil {
		return 0, fmt.Errorf("failed to clear judges: %w", err)
	}

	columns := []string{
		"position", "city", "judge_name", "denied_percentage",
		"granted_asylum_percentage", "granted_other_relief_percentage", "total_decisions",
	}
	n, err := tx.CopyFrom(ctx, pgx.Identifier{JudgeTable}, columns,
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			j := records[i]
			return []any{
				int32(i),
				j.City,
				j.JudgeName,
				j.DeniedPercentage,
				j.GrantedAsylumPercentage,
				j.GrantedOtherReliefPercentage,
				int32(j.TotalDecisions),
			}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to copy judges: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit judges: %w", err)
	}
	return n, nil
}

func derefFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
