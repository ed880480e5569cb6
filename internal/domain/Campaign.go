package domain

import "time"

// Campaign representa uma campanha de anúncios vinculada a exatamente uma conta.
// O AccountID é marcado no momento do fetch, nunca inferido depois: uma campanha
// atribuída à conta errada foi uma classe de defeito real e a marcação na origem
// é a proteção contra isso.
type Campaign struct {
	ID                       int64     `json:"id"`
	AccountID                int64     `json:"account_id"`
	Name                     string    `json:"name"`
	Status                   string    `json:"status"`
	Type                     string    `json:"type,omitempty"`
	DailyBudget              float64   `json:"daily_budget,omitempty"`
	DailyBudgetCurrency      string    `json:"daily_budget_currency,omitempty"`
	TotalBudget              float64   `json:"total_budget,omitempty"`
	CostType                 string    `json:"cost_type,omitempty"`
	UnitCost                 float64   `json:"unit_cost,omitempty"`
	BidStrategy              string    `json:"bid_strategy,omitempty"`
	CreativeSelection        string    `json:"creative_selection,omitempty"`
	OffsiteDeliveryEnabled   bool      `json:"offsite_delivery_enabled"`
	AudienceExpansionEnabled bool      `json:"audience_expansion_enabled"`
	CampaignGroup            string    `json:"campaign_group,omitempty"`
	CreatedAt                time.Time `json:"created_at,omitempty"`
	FetchedAt                time.Time `json:"fetched_at,omitempty"`
}

// CampaignAuditEntry representa uma campanha ativa com possíveis problemas
// de configuração (LAN habilitada, expansão de audiência, entrega máxima)
type CampaignAuditEntry struct {
	Name   string   `json:"name"`
	Issues []string `json:"issues"`
}
