package repository

import (
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/linkedin-ads-api/infrastructure/database/postgres"
	"github.com/vfg2006/linkedin-ads-api/internal/domain"
)

const (
	campaignMetricsTable = "campaign_daily_metrics"
	creativeMetricsTable = "creative_daily_metrics"
)

type MetricRepository interface {
	SaveOrUpdateCampaignDaily(metric *domain.CampaignDailyMetric) error
	SaveOrUpdateCreativeDaily(metric *domain.CreativeDailyMetric) error
	CountCampaignDaily() (int64, error)
	CountCreativeDaily() (int64, error)
}

type metricRepository struct {
	conn *postgres.Connection
}

func NewMetricRepository(conn *postgres.Connection) MetricRepository {
	return &metricRepository{
		conn: conn,
	}
}

// SaveOrUpdateCampaignDaily insere ou atualiza uma linha da série diária de
// campanha pela chave composta (campaign_id, date). Reexecutar um sync sobre
// as mesmas datas reescreve as linhas no lugar, nunca duplica.
func (r *metricRepository) SaveOrUpdateCampaignDaily(metric *domain.CampaignDailyMetric) error {
	return r.exec(campaignDailyUpsert(metric))
}

func campaignDailyUpsert(metric *domain.CampaignDailyMetric) squirrel.InsertBuilder {
	return squirrel.StatementBuilder.
		Insert(campaignMetricsTable).
		Columns(
			"campaign_id", "date", "impressions", "clicks", "spend",
			"landing_page_clicks", "conversions", "likes", "comments",
			"shares", "follows", "leads", "opens", "sends", "ctr", "cpc",
		).
		Values(
			metric.CampaignID,
			metric.Date,
			metric.Impressions,
			metric.Clicks,
			metric.Spend,
			metric.LandingPageClicks,
			metric.Conversions,
			metric.Likes,
			metric.Comments,
			metric.Shares,
			metric.Follows,
			metric.Leads,
			metric.Opens,
			metric.Sends,
			metric.CTR,
			metric.CPC,
		).
		Suffix(`
			ON CONFLICT (campaign_id, date) DO UPDATE SET
				impressions = EXCLUDED.impressions,
				clicks = EXCLUDED.clicks,
				spend = EXCLUDED.spend,
				landing_page_clicks = EXCLUDED.landing_page_clicks,
				conversions = EXCLUDED.conversions,
				likes = EXCLUDED.likes,
				comments = EXCLUDED.comments,
				shares = EXCLUDED.shares,
				follows = EXCLUDED.follows,
				leads = EXCLUDED.leads,
				opens = EXCLUDED.opens,
				sends = EXCLUDED.sends,
				ctr = EXCLUDED.ctr,
				cpc = EXCLUDED.cpc,
				fetched_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)
}

// SaveOrUpdateCreativeDaily insere ou atualiza uma linha da série diária de
// criativo pela chave composta (creative_id, date)
func (r *metricRepository) SaveOrUpdateCreativeDaily(metric *domain.CreativeDailyMetric) error {
	return r.exec(creativeDailyUpsert(metric))
}

func creativeDailyUpsert(metric *domain.CreativeDailyMetric) squirrel.InsertBuilder {
	return squirrel.StatementBuilder.
		Insert(creativeMetricsTable).
		Columns(
			"creative_id", "date", "impressions", "clicks", "spend",
			"landing_page_clicks", "conversions", "likes", "comments",
			"shares", "follows", "leads", "opens", "sends", "ctr", "cpc",
		).
		Values(
			metric.CreativeID,
			metric.Date,
			metric.Impressions,
			metric.Clicks,
			metric.Spend,
			metric.LandingPageClicks,
			metric.Conversions,
			metric.Likes,
			metric.Comments,
			metric.Shares,
			metric.Follows,
			metric.Leads,
			metric.Opens,
			metric.Sends,
			metric.CTR,
			metric.CPC,
		).
		Suffix(`
			ON CONFLICT (creative_id, date) DO UPDATE SET
				impressions = EXCLUDED.impressions,
				clicks = EXCLUDED.clicks,
				spend = EXCLUDED.spend,
				landing_page_clicks = EXCLUDED.landing_page_clicks,
				conversions = EXCLUDED.conversions,
				likes = EXCLUDED.likes,
				comments = EXCLUDED.comments,
				shares = EXCLUDED.shares,
				follows = EXCLUDED.follows,
				leads = EXCLUDED.leads,
				opens = EXCLUDED.opens,
				sends = EXCLUDED.sends,
				ctr = EXCLUDED.ctr,
				cpc = EXCLUDED.cpc,
				fetched_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *metricRepository) exec(query squirrel.InsertBuilder) error {
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

func (r *metricRepository) CountCampaignDaily() (int64, error) {
	return countTable(r.conn, campaignMetricsTable)
}

func (r *metricRepository) CountCreativeDaily() (int64, error) {
	return countTable(r.conn, creativeMetricsTable)
}
