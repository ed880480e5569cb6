package domain

import "time"

// MetricCounters agrupa os contadores brutos retornados pelo /adAnalytics.
// Os campos derivados (CTR, CPC, CPM, CPL) nunca são armazenados de forma
// independente destes contadores: são sempre recalculados a partir deles.
type MetricCounters struct {
	Impressions       int64   `json:"impressions"`
	Clicks            int64   `json:"clicks"`
	Spend             float64 `json:"spend"`
	LandingPageClicks int64   `json:"landing_page_clicks"`
	Conversions       int64   `json:"conversions"`
	Likes             int64   `json:"likes"`
	Comments          int64   `json:"comments"`
	Shares            int64   `json:"shares"`
	Follows           int64   `json:"follows"`
	Leads             int64   `json:"leads"`
	Opens             int64   `json:"opens"`
	Sends             int64   `json:"sends"`
}

// Add soma os contadores de other neste acumulador
func (m *MetricCounters) Add(other MetricCounters) {
	m.Impressions += other.Impressions
	m.Clicks += other.Clicks
	m.Spend += other.Spend
	m.LandingPageClicks += other.LandingPageClicks
	m.Conversions += other.Conversions
	m.Likes += other.Likes
	m.Comments += other.Comments
	m.Shares += other.Shares
	m.Follows += other.Follows
	m.Leads += other.Leads
	m.Opens += other.Opens
	m.Sends += other.Sends
}

// MetricsSummary é o agregado de um período com os indicadores derivados
type MetricsSummary struct {
	MetricCounters
	CTR float64 `json:"ctr"`
	CPC float64 `json:"cpc"`
	CPM float64 `json:"cpm"`
	CPL float64 `json:"cpl"`
}

// DailyMetricPoint é um ponto da série temporal diária de uma entidade
type DailyMetricPoint struct {
	Date string `json:"date"`
	MetricCounters
	CTR float64 `json:"ctr"`
	CPC float64 `json:"cpc"`
}

// CampaignDailyMetric é a linha persistida da série diária de uma campanha,
// identificada pela chave composta (campaign_id, date)
type CampaignDailyMetric struct {
	CampaignID int64  `json:"campaign_id"`
	Date       string `json:"date"`
	MetricCounters
	CTR       float64   `json:"ctr"`
	CPC       float64   `json:"cpc"`
	FetchedAt time.Time `json:"fetched_at,omitempty"`
}

// CreativeDailyMetric é a linha persistida da série diária de um criativo,
// identificada pela chave composta (creative_id, date)
type CreativeDailyMetric struct {
	CreativeID string `json:"creative_id"`
	Date       string `json:"date"`
	MetricCounters
	CTR       float64   `json:"ctr"`
	CPC       float64   `json:"cpc"`
	FetchedAt time.Time `json:"fetched_at,omitempty"`
}
