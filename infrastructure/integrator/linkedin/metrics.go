package linkedin

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	lidomain "github.com/vfg2006/linkedin-ads-api/infrastructure/integrator/linkedin/domain"
)

// Métricas solicitadas em toda chamada ao /adAnalytics
var coreMetrics = []string{
	"impressions",
	"clicks",
	"costInLocalCurrency",
	"landingPageClicks",
	"externalWebsiteConversions",
	"likes",
	"comments",
	"shares",
	"follows",
	"oneClickLeads",
	"opens",
	"sends",
}

var metricFields = strings.Join(append(append([]string{}, coreMetrics...), "dateRange", "pivotValues"), ",")

// DemographicPivots são os pivots demográficos ingeridos em cada sync
var DemographicPivots = []string{
	"MEMBER_JOB_TITLE",
	"MEMBER_JOB_FUNCTION",
	"MEMBER_INDUSTRY",
	"MEMBER_SENIORITY",
	"MEMBER_COMPANY_SIZE",
	"MEMBER_COUNTRY_V2",
}

const demographicFields = "impressions,clicks,costInLocalCurrency,pivotValues"

// dateRangeParam monta o valor Restli de dateRange do /adAnalytics
func dateRangeParam(start, end time.Time) string {
	return fmt.Sprintf(
		"(start:(year:%d,month:%d,day:%d),end:(year:%d,month:%d,day:%d))",
		start.Year(), int(start.Month()), start.Day(),
		end.Year(), int(end.Month()), end.Day(),
	)
}

// fetchMetricsBatch executa uma chamada ao /adAnalytics para um lote de
// campanhas, adquirindo o semáforo compartilhado do sync
func (s *LinkedInIntegrator) fetchMetricsBatch(
	batch []int64,
	start, end time.Time,
	pivot string,
	granularity string,
) ([]lidomain.MetricRow, error) {
	fields := metricFields
	if pivot != "CAMPAIGN" && pivot != "CREATIVE" {
		fields = demographicFields
	}

	params := fmt.Sprintf(
		"q=analytics&pivot=%s&timeGranularity=%s&dateRange=%s&campaigns=List(%s)&fields=%s",
		pivot,
		granularity,
		dateRangeParam(start, end),
		lidomain.EncodedCampaignURNs(batch),
		fields,
	)

	s.acquire()
	defer s.release()

	data, err := s.Client.Get("/adAnalytics", params)
	if err != nil {
		return nil, err
	}

	raw, _ := data["elements"].([]interface{})
	rows := make([]lidomain.MetricRow, 0, len(raw))
	for _, entry := range raw {
		record, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}

		row := lidomain.MetricRow{}
		if err := decodeRecord(record, &row); err != nil {
			logrus.WithFields(logrus.Fields{
				"entity": "metricRow",
				"pivot":  pivot,
				"value":  record["pivotValues"],
				"error":  err.Error(),
			}).Warn("Linha de métricas inválida, ignorando")
			continue
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// fetchPivotMetrics busca as métricas de um pivot em lotes concorrentes.
// Os lotes podem completar em qualquer ordem; o resultado é achatado
// depois que todos terminam.
func (s *LinkedInIntegrator) fetchPivotMetrics(
	campaignIDs []int64,
	start, end time.Time,
	pivot string,
	granularity string,
) ([]lidomain.MetricRow, error) {
	if len(campaignIDs) == 0 {
		return nil, nil
	}

	batches := chunkIDs(campaignIDs, s.cfg.Sync.MetricsBatchSize)
	results := make([][]lidomain.MetricRow, len(batches))
	errs := make([]error, len(batches))

	var wg sync.WaitGroup
	for i, batch := range batches {
		wg.Add(1)

		go func(i int, batch []int64) {
			defer wg.Done()
			results[i], errs[i] = s.fetchMetricsBatch(batch, start, end, pivot, granularity)
		}(i, batch)
	}
	wg.Wait()

	allRows := make([]lidomain.MetricRow, 0)
	for i := range batches {
		if errs[i] != nil {
			return nil, fmt.Errorf("erro ao buscar métricas do pivot %s: %w", pivot, errs[i])
		}
		allRows = append(allRows, results[i]...)
	}

	logrus.WithFields(logrus.Fields{
		"pivot":   pivot,
		"batches": len(batches),
		"rows":    len(allRows),
	}).Info("Métricas do pivot obtidas")

	return allRows, nil
}

// FetchCampaignMetrics busca a série diária de métricas pivotada por CAMPAIGN
func (s *LinkedInIntegrator) FetchCampaignMetrics(campaignIDs []int64, start, end time.Time) ([]lidomain.MetricRow, error) {
	return s.fetchPivotMetrics(campaignIDs, start, end, "CAMPAIGN", "DAILY")
}

// FetchCreativeMetrics busca a série diária de métricas pivotada por CREATIVE
func (s *LinkedInIntegrator) FetchCreativeMetrics(campaignIDs []int64, start, end time.Time) ([]lidomain.MetricRow, error) {
	return s.fetchPivotMetrics(campaignIDs, start, end, "CREATIVE", "DAILY")
}

// FetchDemographics busca os recortes demográficos agregados (não diários)
// de todos os pivots, em paralelo sob o mesmo semáforo.
//
// Falha em um pivot não aborta os demais: o pivot degradado vira uma lista
// vazia e entra na lista de pivots com falha retornada, para o status da
// execução. Nunca propaga erro.
func (s *LinkedInIntegrator) FetchDemographics(campaignIDs []int64, start, end time.Time) (map[string][]lidomain.MetricRow, []string) {
	demographics := make(map[string][]lidomain.MetricRow, len(DemographicPivots))
	failedPivots := make([]string, 0)

	if len(campaignIDs) == 0 {
		return demographics, failedPivots
	}

	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, pivot := range DemographicPivots {
		wg.Add(1)

		go func(pivot string) {
			defer wg.Done()

			rows, err := s.fetchPivotMetrics(campaignIDs, start, end, pivot, "ALL")

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				logrus.WithFields(logrus.Fields{
					"pivot": pivot,
					"error": err.Error(),
				}).Warn("Falha ao buscar demografia do pivot, degradando para vazio")

				demographics[pivot] = nil
				failedPivots = append(failedPivots, pivot)
				return
			}

			demographics[pivot] = rows
		}(pivot)
	}
	wg.Wait()

	logrus.WithFields(logrus.Fields{
		"pivots":        len(demographics),
		"failed_pivots": len(failedPivots),
	}).Info("Demografia de audiência obtida")

	return demographics, failedPivots
}
