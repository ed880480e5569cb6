package snapshotting

import (
	"sort"
	"strings"
	"time"

	lidomain "github.com/vfg2006/linkedin-ads-api/infrastructure/integrator/linkedin/domain"
	"github.com/vfg2006/linkedin-ads-api/internal/domain"
	"github.com/vfg2006/linkedin-ads-api/pkg/utils"
)

const topSegmentsPerPivot = 10

// AssembleInput agrupa os dados brutos de um sync para a montagem do snapshot
type AssembleInput struct {
	Accounts        []lidomain.AdAccount
	Campaigns       []lidomain.Campaign
	Creatives       []lidomain.Creative
	CampaignMetrics []lidomain.MetricRow
	CreativeMetrics []lidomain.MetricRow
	Demographics    map[string][]lidomain.MetricRow
	RangeStart      time.Time
	RangeEnd        time.Time
}

// Assemble combina os dados brutos da API em um snapshot canônico enraizado
// por conta. É uma transformação pura e síncrona, sem I/O.
//
// Cada campanha é anexada à sua conta usando o AccountID marcado no fetch;
// uma campanha sem marcação não entra no snapshot, pois a atribuição nunca
// é inferida por casamento ou posição.
func Assemble(input AssembleInput) *domain.Snapshot {
	campaignMetricsByID := indexCampaignMetrics(input.CampaignMetrics)
	creativeMetricsByURN := indexCreativeMetrics(input.CreativeMetrics)
	creativesByCampaignURN := indexCreatives(input.Creatives)
	campaignsByAccountID := indexCampaigns(input.Campaigns)

	snapshot := &domain.Snapshot{
		GeneratedAt: time.Now().UTC(),
		DateRange: domain.DateRange{
			Start: input.RangeStart.Format(time.DateOnly),
			End:   input.RangeEnd.Format(time.DateOnly),
			Days:  int(input.RangeEnd.Sub(input.RangeStart).Hours() / 24),
		},
		Accounts: make([]domain.AccountSnapshot, 0, len(input.Accounts)),
	}

	for _, account := range input.Accounts {
		accountSnapshot := domain.AccountSnapshot{
			AdAccount: domain.AdAccount{
				ID:       account.ID,
				Name:     account.Name,
				Status:   domain.AdAccountStatus(account.Status),
				Currency: account.Currency,
				Type:     account.Type,
				Test:     account.Test,
			},
			Campaigns:            make([]domain.CampaignSnapshot, 0),
			AudienceDemographics: make(map[string][]domain.DemographicSegment),
		}

		for _, campaign := range campaignsByAccountID[account.ID] {
			accountSnapshot.Campaigns = append(accountSnapshot.Campaigns, assembleCampaign(
				campaign,
				campaignMetricsByID,
				creativesByCampaignURN,
				creativeMetricsByURN,
			))
		}

		for pivot, rows := range input.Demographics {
			key := strings.ToLower(strings.TrimPrefix(pivot, "MEMBER_"))
			accountSnapshot.AudienceDemographics[key] = topSegments(rows)
		}

		snapshot.Accounts = append(snapshot.Accounts, accountSnapshot)
	}

	return snapshot
}

func assembleCampaign(
	campaign lidomain.Campaign,
	campaignMetricsByID map[string][]lidomain.MetricRow,
	creativesByCampaignURN map[string][]lidomain.Creative,
	creativeMetricsByURN map[string][]lidomain.MetricRow,
) domain.CampaignSnapshot {
	campaignSnapshot := domain.CampaignSnapshot{
		Campaign:  convertCampaign(campaign),
		Creatives: make([]domain.CreativeSnapshot, 0),
	}

	campaignURN := lidomain.CampaignURN(campaign.ID)

	rows := campaignMetricsByID[lidomain.IDFromURN(campaignURN)]
	if len(rows) > 0 {
		summary := aggregateMetrics(rows)
		campaignSnapshot.MetricsSummary = &summary
		campaignSnapshot.DailyMetrics = dailySeries(rows)
	}

	for _, creative := range creativesByCampaignURN[campaignURN] {
		creativeSnapshot := domain.CreativeSnapshot{
			Creative: domain.Creative{
				ID:                   creative.ID,
				CampaignID:           campaign.ID,
				AccountID:            campaign.AccountID,
				IntendedStatus:       creative.IntendedStatus,
				IsServing:            creative.IsServing,
				ServingHoldReasons:   creative.ServingHoldReasons,
				ContentReference:     creative.Content.Reference,
				ContentLabel:         ContentLabel(creative.Content.Reference),
				CreatedAtMillis:      creative.CreatedAt,
				LastModifiedAtMillis: creative.LastModifiedAt,
			},
		}

		creativeRows := creativeMetricsByURN[creative.ID]
		if len(creativeRows) > 0 {
			summary := aggregateMetrics(creativeRows)
			creativeSnapshot.MetricsSummary = &summary
			creativeSnapshot.DailyMetrics = dailySeries(creativeRows)
		}

		campaignSnapshot.Creatives = append(campaignSnapshot.Creatives, creativeSnapshot)
	}

	return campaignSnapshot
}

func convertCampaign(campaign lidomain.Campaign) domain.Campaign {
	converted := domain.Campaign{
		ID:                       campaign.ID,
		AccountID:                campaign.AccountID,
		Name:                     campaign.Name,
		Status:                   campaign.Status,
		Type:                     campaign.Type,
		CostType:                 campaign.CostType,
		BidStrategy:              campaign.OptimizationTargetType,
		CreativeSelection:        campaign.CreativeSelection,
		OffsiteDeliveryEnabled:   campaign.OffsiteDeliveryEnabled,
		AudienceExpansionEnabled: campaign.AudienceExpansionEnabled,
		CampaignGroup:            campaign.CampaignGroup,
	}

	if campaign.DailyBudget != nil {
		converted.DailyBudget = utils.ParseAmount(campaign.DailyBudget.Amount)
		converted.DailyBudgetCurrency = campaign.DailyBudget.CurrencyCode
	}

	if campaign.TotalBudget != nil {
		converted.TotalBudget = utils.ParseAmount(campaign.TotalBudget.Amount)
	}

	if campaign.UnitCost != nil {
		converted.UnitCost = utils.ParseAmount(campaign.UnitCost.Amount)
	}

	return converted
}

// counters converte uma linha bruta de métricas para os contadores do domínio
func counters(row lidomain.MetricRow) domain.MetricCounters {
	return domain.MetricCounters{
		Impressions:       row.Impressions,
		Clicks:            row.Clicks,
		Spend:             row.Spend(),
		LandingPageClicks: row.LandingPageClicks,
		Conversions:       row.ExternalWebsiteConversions,
		Likes:             row.Likes,
		Comments:          row.Comments,
		Shares:            row.Shares,
		Follows:           row.Follows,
		Leads:             row.OneClickLeads,
		Opens:             row.Opens,
		Sends:             row.Sends,
	}
}

// aggregateMetrics soma os contadores das linhas e calcula os indicadores
// derivados. CTR/CPC/CPM/CPL nunca são persistidos de forma independente:
// sempre recalculados aqui a partir dos contadores brutos.
func aggregateMetrics(rows []lidomain.MetricRow) domain.MetricsSummary {
	summary := domain.MetricsSummary{}
	for _, row := range rows {
		summary.MetricCounters.Add(counters(row))
	}

	if summary.Impressions > 0 {
		summary.CTR = utils.RoundWithFourDecimalPlace(float64(summary.Clicks) / float64(summary.Impressions) * 100)
		summary.CPM = utils.RoundWithTwoDecimalPlace(summary.Spend / float64(summary.Impressions) * 1000)
	}

	if summary.Clicks > 0 {
		summary.CPC = utils.RoundWithTwoDecimalPlace(summary.Spend / float64(summary.Clicks))
	}

	if summary.Conversions > 0 {
		summary.CPL = utils.RoundWithTwoDecimalPlace(summary.Spend / float64(summary.Conversions))
	}

	summary.Spend = utils.RoundWithTwoDecimalPlace(summary.Spend)

	return summary
}

// dailySeries colapsa as linhas de métricas em uma série diária ordenada
// por data. Múltiplas linhas brutas na mesma data são somadas em um único
// ponto: uma linha por (entidade, data).
func dailySeries(rows []lidomain.MetricRow) []domain.DailyMetricPoint {
	byDate := make(map[string]*domain.DailyMetricPoint)
	for _, row := range rows {
		dateKey := row.DateKey()
		if dateKey == "" {
			continue
		}

		point, ok := byDate[dateKey]
		if !ok {
			point = &domain.DailyMetricPoint{Date: dateKey}
			byDate[dateKey] = point
		}

		point.MetricCounters.Add(counters(row))
	}

	series := make([]domain.DailyMetricPoint, 0, len(byDate))
	for _, point := range byDate {
		point.Spend = utils.RoundWithTwoDecimalPlace(point.Spend)

		if point.Impressions > 0 {
			point.CTR = utils.RoundWithFourDecimalPlace(float64(point.Clicks) / float64(point.Impressions) * 100)
		}
		if point.Clicks > 0 {
			point.CPC = utils.RoundWithTwoDecimalPlace(point.Spend / float64(point.Clicks))
		}

		series = append(series, *point)
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].Date < series[j].Date
	})

	return series
}

// topSegments ranqueia os segmentos demográficos por impressões e devolve
// os maiores, com resolução melhor-esforço de URN para rótulo legível
func topSegments(rows []lidomain.MetricRow) []domain.DemographicSegment {
	sorted := make([]lidomain.MetricRow, len(rows))
	copy(sorted, rows)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Impressions > sorted[j].Impressions
	})

	var totalImpressions int64
	for _, row := range sorted {
		totalImpressions += row.Impressions
	}

	limit := topSegmentsPerPivot
	if len(sorted) < limit {
		limit = len(sorted)
	}

	segments := make([]domain.DemographicSegment, 0, limit)
	for _, row := range sorted[:limit] {
		rawSegment := "?"
		if len(row.PivotValues) > 0 {
			rawSegment = row.PivotValues[0]
		}

		segment := ResolveURN(rawSegment)
		if segment == "" {
			segment = rawSegment
		}

		entry := domain.DemographicSegment{
			Segment:     segment,
			Impressions: row.Impressions,
			Clicks:      row.Clicks,
		}

		if row.Impressions > 0 {
			entry.CTR = utils.RoundWithTwoDecimalPlace(float64(row.Clicks) / float64(row.Impressions) * 100)
		}
		if totalImpressions > 0 {
			entry.ShareOfImpressions = utils.RoundWithTwoDecimalPlace(float64(row.Impressions) / float64(totalImpressions) * 100)
		}

		segments = append(segments, entry)
	}

	return segments
}

// indexCampaignMetrics indexa as linhas de métricas pelo ID de campanha
// extraído dos pivotValues
func indexCampaignMetrics(rows []lidomain.MetricRow) map[string][]lidomain.MetricRow {
	byID := make(map[string][]lidomain.MetricRow)
	for _, row := range rows {
		for _, pivotValue := range row.PivotValues {
			id := lidomain.IDFromURN(pivotValue)
			byID[id] = append(byID[id], row)
		}
	}

	return byID
}

// indexCreativeMetrics indexa as linhas de métricas pela URN completa do criativo
func indexCreativeMetrics(rows []lidomain.MetricRow) map[string][]lidomain.MetricRow {
	byURN := make(map[string][]lidomain.MetricRow)
	for _, row := range rows {
		for _, pivotValue := range row.PivotValues {
			if strings.Contains(pivotValue, "sponsoredCreative") {
				byURN[pivotValue] = append(byURN[pivotValue], row)
			}
		}
	}

	return byURN
}

func indexCreatives(creatives []lidomain.Creative) map[string][]lidomain.Creative {
	byCampaignURN := make(map[string][]lidomain.Creative)
	for _, creative := range creatives {
		byCampaignURN[creative.Campaign] = append(byCampaignURN[creative.Campaign], creative)
	}

	return byCampaignURN
}

func indexCampaigns(campaigns []lidomain.Campaign) map[int64][]lidomain.Campaign {
	byAccountID := make(map[int64][]lidomain.Campaign)
	for _, campaign := range campaigns {
		if campaign.AccountID == 0 {
			// Campanha sem conta de origem marcada não entra no snapshot
			continue
		}

		byAccountID[campaign.AccountID] = append(byAccountID[campaign.AccountID], campaign)
	}

	return byAccountID
}
