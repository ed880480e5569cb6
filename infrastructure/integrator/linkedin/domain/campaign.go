package lidomain

// Money representa um valor monetário da API (amount vem como string)
type Money struct {
	Amount       string `mapstructure:"amount"`
	CurrencyCode string `mapstructure:"currencyCode"`
}

// Campaign é o registro bruto de campanha retornado por
// /adAccounts/{id}/adCampaigns?q=search.
//
// AccountID não vem da API: é marcado pelo fetcher com a conta de origem
// da requisição, no momento do fetch.
type Campaign struct {
	ID                       int64  `mapstructure:"id"`
	Name                     string `mapstructure:"name"`
	Status                   string `mapstructure:"status"`
	Type                     string `mapstructure:"type"`
	DailyBudget              *Money `mapstructure:"dailyBudget"`
	TotalBudget              *Money `mapstructure:"totalBudget"`
	UnitCost                 *Money `mapstructure:"unitCost"`
	CostType                 string `mapstructure:"costType"`
	OptimizationTargetType   string `mapstructure:"optimizationTargetType"`
	CreativeSelection        string `mapstructure:"creativeSelection"`
	OffsiteDeliveryEnabled   bool   `mapstructure:"offsiteDeliveryEnabled"`
	AudienceExpansionEnabled bool   `mapstructure:"audienceExpansionEnabled"`
	CampaignGroup            string `mapstructure:"campaignGroup"`
	AccountID                int64  `mapstructure:"-"`
}
