package domain

import "time"

// DateRange é o intervalo de datas (inclusivo) coberto por um snapshot
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Days  int    `json:"days"`
}

// Snapshot é a árvore canônica de performance montada a partir dos dados
// brutos da API, enraizada por conta
type Snapshot struct {
	GeneratedAt time.Time         `json:"generated_at"`
	DateRange   DateRange         `json:"date_range"`
	Accounts    []AccountSnapshot `json:"accounts"`
}

// AccountSnapshot agrupa uma conta, suas campanhas e sua demografia de audiência
type AccountSnapshot struct {
	AdAccount
	Campaigns            []CampaignSnapshot              `json:"campaigns"`
	AudienceDemographics map[string][]DemographicSegment `json:"audience_demographics"`
}

// CampaignSnapshot agrupa uma campanha, seu resumo de métricas, sua série
// diária e seus criativos
type CampaignSnapshot struct {
	Campaign
	MetricsSummary *MetricsSummary    `json:"metrics_summary,omitempty"`
	DailyMetrics   []DailyMetricPoint `json:"daily_metrics,omitempty"`
	Creatives      []CreativeSnapshot `json:"creatives"`
}

// CreativeSnapshot agrupa um criativo com seu resumo e série diária
type CreativeSnapshot struct {
	Creative
	MetricsSummary *MetricsSummary    `json:"metrics_summary,omitempty"`
	DailyMetrics   []DailyMetricPoint `json:"daily_metrics,omitempty"`
}

// TokenStatus é o resumo de saúde do token exposto em /v1/status
type TokenStatus struct {
	Authenticated bool       `json:"authenticated"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	DaysRemaining *int       `json:"days_remaining,omitempty"`
	Reason        string     `json:"reason,omitempty"`
}
