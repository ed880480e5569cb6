package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/linkedin-ads-api/infrastructure/database/postgres"
	"github.com/vfg2006/linkedin-ads-api/internal/domain"
)

const campaignsTable = "campaigns"

type CampaignRepository interface {
	SaveOrUpdate(campaign *domain.Campaign) error
	ListByAccountID(accountID int64) ([]*domain.Campaign, error)
	ActiveCampaignAudit() ([]*domain.CampaignAuditEntry, error)
	Count() (int64, error)
}

type campaignRepository struct {
	conn *postgres.Connection
}

func NewCampaignRepository(conn *postgres.Connection) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

// SaveOrUpdate insere ou atualiza a campanha pelo ID externo. O account_id
// gravado é o marcado no fetch; created_at nunca é sobrescrito.
func (r *campaignRepository) SaveOrUpdate(campaign *domain.Campaign) error {
	query := squirrel.StatementBuilder.
		Insert(campaignsTable).
		Columns(
			"id", "account_id", "name", "status", "type",
			"daily_budget", "daily_budget_currency", "total_budget",
			"cost_type", "unit_cost", "bid_strategy", "creative_selection",
			"offsite_delivery_enabled", "audience_expansion_enabled", "campaign_group",
		).
		Values(
			campaign.ID,
			campaign.AccountID,
			campaign.Name,
			campaign.Status,
			campaign.Type,
			campaign.DailyBudget,
			campaign.DailyBudgetCurrency,
			campaign.TotalBudget,
			campaign.CostType,
			campaign.UnitCost,
			campaign.BidStrategy,
			campaign.CreativeSelection,
			campaign.OffsiteDeliveryEnabled,
			campaign.AudienceExpansionEnabled,
			campaign.CampaignGroup,
		).
		Suffix(`
			ON CONFLICT (id) DO UPDATE SET
				account_id = EXCLUDED.account_id,
				name = EXCLUDED.name,
				status = EXCLUDED.status,
				type = EXCLUDED.type,
				daily_budget = EXCLUDED.daily_budget,
				daily_budget_currency = EXCLUDED.daily_budget_currency,
				total_budget = EXCLUDED.total_budget,
				cost_type = EXCLUDED.cost_type,
				unit_cost = EXCLUDED.unit_cost,
				bid_strategy = EXCLUDED.bid_strategy,
				creative_selection = EXCLUDED.creative_selection,
				offsite_delivery_enabled = EXCLUDED.offsite_delivery_enabled,
				audience_expansion_enabled = EXCLUDED.audience_expansion_enabled,
				campaign_group = EXCLUDED.campaign_group,
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

func (r *campaignRepository) ListByAccountID(accountID int64) ([]*domain.Campaign, error) {
	query, args, err := squirrel.
		Select(
			"id, account_id, name, status, type, daily_budget, daily_budget_currency,",
			"total_budget, cost_type, unit_cost, bid_strategy, creative_selection,",
			"offsite_delivery_enabled, audience_expansion_enabled, campaign_group,",
			"created_at, fetched_at",
		).
		From(campaignsTable).
		Where(squirrel.Eq{"account_id": accountID}).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	campaigns := make([]*domain.Campaign, 0)
	for rows.Next() {
		campaign := &domain.Campaign{}
		err := rows.Scan(
			&campaign.ID,
			&campaign.AccountID,
			&campaign.Name,
			&campaign.Status,
			&campaign.Type,
			&campaign.DailyBudget,
			&campaign.DailyBudgetCurrency,
			&campaign.TotalBudget,
			&campaign.CostType,
			&campaign.UnitCost,
			&campaign.BidStrategy,
			&campaign.CreativeSelection,
			&campaign.OffsiteDeliveryEnabled,
			&campaign.AudienceExpansionEnabled,
			&campaign.CampaignGroup,
			&campaign.CreatedAt,
			&campaign.FetchedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear campanha: %w", err)
		}
		campaigns = append(campaigns, campaign)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return campaigns, nil
}

// ActiveCampaignAudit lista as campanhas ativas com possíveis problemas de
// configuração: rede de audiência do LinkedIn habilitada, expansão de
// audiência habilitada ou estratégia de entrega máxima
func (r *campaignRepository) ActiveCampaignAudit() ([]*domain.CampaignAuditEntry, error) {
	query, args, err := squirrel.
		Select("name, offsite_delivery_enabled, audience_expansion_enabled, bid_strategy").
		From(campaignsTable).
		Where(squirrel.Eq{"status": "ACTIVE"}).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	entries := make([]*domain.CampaignAuditEntry, 0)
	for rows.Next() {
		var (
			name                     string
			offsiteDeliveryEnabled   bool
			audienceExpansionEnabled bool
			bidStrategy              string
		)

		if err := rows.Scan(&name, &offsiteDeliveryEnabled, &audienceExpansionEnabled, &bidStrategy); err != nil {
			return nil, fmt.Errorf("erro ao escanear auditoria: %w", err)
		}

		issues := make([]string, 0)
		if offsiteDeliveryEnabled {
			issues = append(issues, "linkedin_audience_network_enabled")
		}
		if audienceExpansionEnabled {
			issues = append(issues, "audience_expansion_enabled")
		}
		if bidStrategy == "MAX_DELIVERY" {
			issues = append(issues, "max_delivery_bid_strategy")
		}

		if len(issues) > 0 {
			entries = append(entries, &domain.CampaignAuditEntry{Name: name, Issues: issues})
		}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return entries, nil
}

func (r *campaignRepository) Count() (int64, error) {
	return countTable(r.conn, campaignsTable)
}
