package repository

import (
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/linkedin-ads-api/infrastructure/database/postgres"
	"github.com/vfg2006/linkedin-ads-api/internal/domain"
)

const creativesTable = "creatives"

type CreativeRepository interface {
	SaveOrUpdate(creative *domain.Creative) error
	Count() (int64, error)
}

type creativeRepository struct {
	conn *postgres.Connection
}

func NewCreativeRepository(conn *postgres.Connection) CreativeRepository {
	return &creativeRepository{
		conn: conn,
	}
}

// SaveOrUpdate insere ou atualiza o criativo pela URN. created_at nunca é
// sobrescrito; fetched_at é renovado sempre.
func (r *creativeRepository) SaveOrUpdate(creative *domain.Creative) error {
	query := squirrel.StatementBuilder.
		Insert(creativesTable).
		Columns(
			"id", "campaign_id", "account_id", "intended_status", "is_serving",
			"serving_hold_reasons", "content_reference", "content_label",
			"external_created_at_ms", "external_modified_at_ms",
		).
		Values(
			creative.ID,
			creative.CampaignID,
			creative.AccountID,
			creative.IntendedStatus,
			creative.IsServing,
			pq.Array(creative.ServingHoldReasons),
			creative.ContentReference,
			creative.ContentLabel,
			creative.CreatedAtMillis,
			creative.LastModifiedAtMillis,
		).
		Suffix(`
			ON CONFLICT (id) DO UPDATE SET
				campaign_id = EXCLUDED.campaign_id,
				account_id = EXCLUDED.account_id,
				intended_status = EXCLUDED.intended_status,
				is_serving = EXCLUDED.is_serving,
				serving_hold_reasons = EXCLUDED.serving_hold_reasons,
				content_reference = EXCLUDED.content_reference,
				content_label = EXCLUDED.content_label,
				external_created_at_ms = EXCLUDED.external_created_at_ms,
				external_modified_at_ms = EXCLUDED.external_modified_at_ms,
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

func (r *creativeRepository) Count() (int64, error) {
	return countTable(r.conn, creativesTable)
}
