package snapshotting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lidomain "github.com/vfg2006/linkedin-ads-api/infrastructure/integrator/linkedin/domain"
)

func metricRow(pivotValue, date string, impressions, clicks int64, spend string) lidomain.MetricRow {
	parsed, _ := time.Parse(time.DateOnly, date)

	return lidomain.MetricRow{
		PivotValues:         []string{pivotValue},
		CostInLocalCurrency: spend,
		Impressions:         impressions,
		Clicks:              clicks,
		DateRange: &lidomain.MetricDateRange{
			Start: lidomain.DatePart{Year: parsed.Year(), Month: int(parsed.Month()), Day: parsed.Day()},
		},
	}
}

func TestAssemble_MetricasDerivadas(t *testing.T) {
	// Duas linhas diárias: 1000/50/25.50 e 2000/100/50.00.
	// Agregado esperado: 3000 impressões, 150 cliques, 75.50 de gasto,
	// CTR 5.0, CPC 0.50, CPM 25.17.
	input := AssembleInput{
		Accounts: []lidomain.AdAccount{
			{ID: 1, Name: "Conta A", Status: "ACTIVE", Currency: "USD"},
		},
		Campaigns: []lidomain.Campaign{
			{ID: 100, Name: "Campanha A", Status: "ACTIVE", AccountID: 1},
		},
		CampaignMetrics: []lidomain.MetricRow{
			metricRow("urn:li:sponsoredCampaign:100", "2024-01-01", 1000, 50, "25.50"),
			metricRow("urn:li:sponsoredCampaign:100", "2024-01-02", 2000, 100, "50.00"),
		},
		RangeStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		RangeEnd:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}

	snapshot := Assemble(input)

	require.Len(t, snapshot.Accounts, 1)
	require.Len(t, snapshot.Accounts[0].Campaigns, 1)

	campaign := snapshot.Accounts[0].Campaigns[0]
	require.NotNil(t, campaign.MetricsSummary)

	summary := campaign.MetricsSummary
	assert.Equal(t, int64(3000), summary.Impressions)
	assert.Equal(t, int64(150), summary.Clicks)
	assert.Equal(t, 75.50, summary.Spend)
	assert.Equal(t, 5.0, summary.CTR)
	assert.Equal(t, 0.50, summary.CPC)
	assert.Equal(t, 25.17, summary.CPM)
	assert.Equal(t, 0.0, summary.CPL)

	// Série diária ordenada por data, um ponto por dia
	require.Len(t, campaign.DailyMetrics, 2)
	assert.Equal(t, "2024-01-01", campaign.DailyMetrics[0].Date)
	assert.Equal(t, "2024-01-02", campaign.DailyMetrics[1].Date)
	assert.Equal(t, int64(1000), campaign.DailyMetrics[0].Impressions)
	assert.Equal(t, 5.0, campaign.DailyMetrics[0].CTR)
	assert.Equal(t, 0.51, campaign.DailyMetrics[0].CPC)
}

func TestAssemble_MetricasZeradas(t *testing.T) {
	// Divisão por zero nunca acontece: sem impressões e sem cliques,
	// os indicadores derivados ficam em zero
	input := AssembleInput{
		Accounts:  []lidomain.AdAccount{{ID: 1, Name: "Conta A"}},
		Campaigns: []lidomain.Campaign{{ID: 100, AccountID: 1}},
		CampaignMetrics: []lidomain.MetricRow{
			metricRow("urn:li:sponsoredCampaign:100", "2024-01-01", 0, 0, "0"),
		},
		RangeStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		RangeEnd:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	snapshot := Assemble(input)

	summary := snapshot.Accounts[0].Campaigns[0].MetricsSummary
	require.NotNil(t, summary)
	assert.Equal(t, 0.0, summary.CTR)
	assert.Equal(t, 0.0, summary.CPC)
	assert.Equal(t, 0.0, summary.CPM)
	assert.Equal(t, 0.0, summary.CPL)
}

func TestAssemble_IsolamentoEntreContas(t *testing.T) {
	// Campanhas com o mesmo nome em contas diferentes nunca se misturam:
	// a atribuição usa somente o AccountID marcado no fetch
	input := AssembleInput{
		Accounts: []lidomain.AdAccount{
			{ID: 1, Name: "Conta A"},
			{ID: 2, Name: "Conta B"},
		},
		Campaigns: []lidomain.Campaign{
			{ID: 100, Name: "Promoção Q1", AccountID: 1},
			{ID: 200, Name: "Promoção Q1", AccountID: 2},
		},
		CampaignMetrics: []lidomain.MetricRow{
			metricRow("urn:li:sponsoredCampaign:100", "2024-01-01", 1000, 10, "5.00"),
			metricRow("urn:li:sponsoredCampaign:200", "2024-01-01", 9000, 90, "45.00"),
		},
		RangeStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		RangeEnd:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	snapshot := Assemble(input)

	require.Len(t, snapshot.Accounts, 2)
	require.Len(t, snapshot.Accounts[0].Campaigns, 1)
	require.Len(t, snapshot.Accounts[1].Campaigns, 1)

	assert.Equal(t, int64(100), snapshot.Accounts[0].Campaigns[0].ID)
	assert.Equal(t, int64(1000), snapshot.Accounts[0].Campaigns[0].MetricsSummary.Impressions)
	assert.Equal(t, int64(200), snapshot.Accounts[1].Campaigns[0].ID)
	assert.Equal(t, int64(9000), snapshot.Accounts[1].Campaigns[0].MetricsSummary.Impressions)
}

func TestAssemble_CampanhaSemContaMarcada(t *testing.T) {
	// Campanha sem AccountID marcado não entra no snapshot de nenhuma conta
	input := AssembleInput{
		Accounts:  []lidomain.AdAccount{{ID: 1, Name: "Conta A"}},
		Campaigns: []lidomain.Campaign{{ID: 100, Name: "Órfã"}},
	}

	snapshot := Assemble(input)

	require.Len(t, snapshot.Accounts, 1)
	assert.Empty(t, snapshot.Accounts[0].Campaigns)
}

func TestAssemble_CriativosAnexadosPorCampanha(t *testing.T) {
	input := AssembleInput{
		Accounts: []lidomain.AdAccount{{ID: 1, Name: "Conta A"}},
		Campaigns: []lidomain.Campaign{
			{ID: 100, Name: "Campanha A", AccountID: 1},
		},
		Creatives: []lidomain.Creative{
			{
				ID:             "urn:li:sponsoredCreative:900",
				Campaign:       "urn:li:sponsoredCampaign:100",
				IntendedStatus: "ACTIVE",
				IsServing:      true,
				Content:        lidomain.CreativeContent{Reference: "urn:li:share:7777"},
			},
		},
		CreativeMetrics: []lidomain.MetricRow{
			metricRow("urn:li:sponsoredCreative:900", "2024-01-01", 500, 25, "10.00"),
		},
		RangeStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		RangeEnd:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	snapshot := Assemble(input)

	require.Len(t, snapshot.Accounts[0].Campaigns, 1)
	require.Len(t, snapshot.Accounts[0].Campaigns[0].Creatives, 1)

	creative := snapshot.Accounts[0].Campaigns[0].Creatives[0]
	assert.Equal(t, "urn:li:sponsoredCreative:900", creative.ID)
	assert.Equal(t, int64(100), creative.CampaignID)
	assert.Equal(t, int64(1), creative.AccountID)
	assert.Equal(t, "post", creative.ContentLabel)
	require.NotNil(t, creative.MetricsSummary)
	assert.Equal(t, int64(500), creative.MetricsSummary.Impressions)
	assert.Equal(t, 5.0, creative.MetricsSummary.CTR)
}

func TestAssemble_SegmentosDemograficos(t *testing.T) {
	// 12 segmentos: só os 10 maiores por impressões entram, com rótulo
	// resolvido por URN e participação de impressões sobre o total do pivot
	rows := make([]lidomain.MetricRow, 0, 12)
	rows = append(rows, metricRow("urn:li:seniority:4", "2024-01-01", 5000, 100, "0"))
	rows = append(rows, metricRow("urn:li:seniority:5", "2024-01-01", 3000, 60, "0"))
	rows = append(rows, metricRow("urn:li:desconhecido:99", "2024-01-01", 2000, 20, "0"))
	for i := int64(0); i < 9; i++ {
		rows = append(rows, metricRow("urn:li:seniority:6", "2024-01-01", 100+i, 1, "0"))
	}

	input := AssembleInput{
		Accounts:     []lidomain.AdAccount{{ID: 1, Name: "Conta A"}},
		Demographics: map[string][]lidomain.MetricRow{"MEMBER_SENIORITY": rows},
	}

	snapshot := Assemble(input)

	segments := snapshot.Accounts[0].AudienceDemographics["seniority"]
	require.Len(t, segments, 10)

	assert.Equal(t, "Senior", segments[0].Segment)
	assert.Equal(t, int64(5000), segments[0].Impressions)
	assert.Equal(t, 2.0, segments[0].CTR)
	assert.Equal(t, "Manager", segments[1].Segment)

	// URN não resolvida mantém o valor bruto
	assert.Equal(t, "urn:li:desconhecido:99", segments[2].Segment)

	var totalShare float64
	for _, segment := range segments {
		totalShare += segment.ShareOfImpressions
	}
	assert.LessOrEqual(t, totalShare, 100.0)
}

func TestAssemble_MetadadosDoSnapshot(t *testing.T) {
	input := AssembleInput{
		RangeStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		RangeEnd:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	snapshot := Assemble(input)

	assert.Equal(t, "2024-01-01", snapshot.DateRange.Start)
	assert.Equal(t, "2024-03-31", snapshot.DateRange.End)
	assert.Equal(t, 90, snapshot.DateRange.Days)
	assert.False(t, snapshot.GeneratedAt.IsZero())
	assert.NotNil(t, snapshot.Accounts)
}
