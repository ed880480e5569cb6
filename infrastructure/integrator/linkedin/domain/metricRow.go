package lidomain

import (
	"fmt"
	"strconv"
)

// DatePart é um componente de data do dateRange do /adAnalytics
type DatePart struct {
	Year  int `mapstructure:"year"`
	Month int `mapstructure:"month"`
	Day   int `mapstructure:"day"`
}

// MetricDateRange é o intervalo de datas de uma linha de analytics
type MetricDateRange struct {
	Start DatePart `mapstructure:"start"`
	End   DatePart `mapstructure:"end"`
}

// MetricRow é uma linha bruta do /adAnalytics, em qualquer pivot.
// costInLocalCurrency chega como string na API.
type MetricRow struct {
	PivotValues                []string         `mapstructure:"pivotValues"`
	DateRange                  *MetricDateRange `mapstructure:"dateRange"`
	Impressions                int64            `mapstructure:"impressions"`
	Clicks                     int64            `mapstructure:"clicks"`
	CostInLocalCurrency        string           `mapstructure:"costInLocalCurrency"`
	LandingPageClicks          int64            `mapstructure:"landingPageClicks"`
	ExternalWebsiteConversions int64            `mapstructure:"externalWebsiteConversions"`
	Likes                      int64            `mapstructure:"likes"`
	Comments                   int64            `mapstructure:"comments"`
	Shares                     int64            `mapstructure:"shares"`
	Follows                    int64            `mapstructure:"follows"`
	OneClickLeads              int64            `mapstructure:"oneClickLeads"`
	Opens                      int64            `mapstructure:"opens"`
	Sends                      int64            `mapstructure:"sends"`
}

// Spend converte costInLocalCurrency para float64; string vazia vale zero
func (r *MetricRow) Spend() float64 {
	if r.CostInLocalCurrency == "" {
		return 0
	}

	spend, err := strconv.ParseFloat(r.CostInLocalCurrency, 64)
	if err != nil {
		return 0
	}

	return spend
}

// DateKey retorna a data de início da linha no formato 2006-01-02,
// que é a parte de data da chave composta das métricas diárias
func (r *MetricRow) DateKey() string {
	if r.DateRange == nil {
		return ""
	}

	s := r.DateRange.Start
	return fmt.Sprintf("%04d-%02d-%02d", s.Year, s.Month, s.Day)
}
