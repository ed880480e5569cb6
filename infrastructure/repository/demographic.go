package repository

import (
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/linkedin-ads-api/infrastructure/database/postgres"
	"github.com/vfg2006/linkedin-ads-api/internal/domain"
)

const demographicsTable = "audience_demographics"

type DemographicRepository interface {
	SaveOrUpdate(demographic *domain.AudienceDemographic) error
	Count() (int64, error)
}

type demographicRepository struct {
	conn *postgres.Connection
}

func NewDemographicRepository(conn *postgres.Connection) DemographicRepository {
	return &demographicRepository{
		conn: conn,
	}
}

// SaveOrUpdate insere ou atualiza um segmento demográfico pela chave
// composta (account_id, pivot_type, segment, date_start)
func (r *demographicRepository) SaveOrUpdate(demographic *domain.AudienceDemographic) error {
	query := squirrel.StatementBuilder.
		Insert(demographicsTable).
		Columns(
			"account_id", "pivot_type", "segment", "date_start", "date_end",
			"impressions", "clicks", "ctr", "share_pct",
		).
		Values(
			demographic.AccountID,
			demographic.PivotType,
			demographic.Segment,
			demographic.DateStart,
			demographic.DateEnd,
			demographic.Impressions,
			demographic.Clicks,
			demographic.CTR,
			demographic.SharePct,
		).
		Suffix(`
			ON CONFLICT (account_id, pivot_type, segment, date_start) DO UPDATE SET
				date_end = EXCLUDED.date_end,
				impressions = EXCLUDED.impressions,
				clicks = EXCLUDED.clicks,
				ctr = EXCLUDED.ctr,
				share_pct = EXCLUDED.share_pct,
				fetched_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *demographicRepository) Count() (int64, error) {
	return countTable(r.conn, demographicsTable)
}
