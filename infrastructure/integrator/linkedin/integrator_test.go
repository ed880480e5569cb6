package linkedin

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lidomain "github.com/vfg2006/linkedin-ads-api/infrastructure/integrator/linkedin/domain"
	"github.com/vfg2006/linkedin-ads-api/internal/config"
)

// fakeClient roteia as chamadas por função injetada e mede a concorrência
// observada, para validar o semáforo compartilhado do integrador
type fakeClient struct {
	mu          sync.Mutex
	getCalls    []string
	inFlight    int
	maxInFlight int

	getFn      func(path, rawQuery string) (map[string]interface{}, error)
	allPagesFn func(path, rawQuery string) ([]map[string]interface{}, error)
}

func (f *fakeClient) Get(path string, rawQuery string) (map[string]interface{}, error) {
	f.mu.Lock()
	f.getCalls = append(f.getCalls, path+"?"+rawQuery)
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	f.mu.Unlock()

	// Segura a chamada para que lotes paralelos de fato se sobreponham
	time.Sleep(5 * time.Millisecond)

	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()

	return f.getFn(path, rawQuery)
}

func (f *fakeClient) GetAllPages(path string, rawQuery string, collectionKey string, pageSize int) ([]map[string]interface{}, error) {
	return f.allPagesFn(path, rawQuery)
}

func newTestIntegrator(client *fakeClient, maxConcurrent int) *LinkedInIntegrator {
	cfg := &config.Config{
		Sync: config.Sync{
			PageSize:              100,
			MetricsBatchSize:      20,
			MaxConcurrentRequests: maxConcurrent,
		},
	}

	return New(cfg, client)
}

func metricElement(campaignID int64, day int, impressions, clicks int, spend string) map[string]interface{} {
	return map[string]interface{}{
		"pivotValues":         []interface{}{lidomain.CampaignURN(campaignID)},
		"dateRange":           map[string]interface{}{"start": map[string]interface{}{"year": 2024, "month": 1, "day": day}},
		"impressions":         impressions,
		"clicks":              clicks,
		"costInLocalCurrency": spend,
	}
}

func TestFetchAdAccounts_IgnoraRegistrosSemID(t *testing.T) {
	client := &fakeClient{
		allPagesFn: func(path, rawQuery string) ([]map[string]interface{}, error) {
			assert.Equal(t, "/adAccounts", path)
			assert.Equal(t, "q=search", rawQuery)

			return []map[string]interface{}{
				{"id": 504000001, "name": "Conta A", "status": "ACTIVE", "currency": "BRL"},
				{"name": "Conta sem ID"},
				{"id": 504000002, "name": "Conta B", "status": "ACTIVE", "currency": "USD"},
			}, nil
		},
	}
	integrator := newTestIntegrator(client, 3)

	accounts, err := integrator.FetchAdAccounts()
	require.NoError(t, err)

	require.Len(t, accounts, 2)
	assert.Equal(t, int64(504000001), accounts[0].ID)
	assert.Equal(t, "Conta B", accounts[1].Name)
}

func TestFetchCampaigns_MarcaContaDeOrigem(t *testing.T) {
	client := &fakeClient{
		allPagesFn: func(path, rawQuery string) ([]map[string]interface{}, error) {
			assert.Equal(t, "/adAccounts/504000001/adCampaigns", path)
			assert.Contains(t, rawQuery, "q=search")
			assert.Contains(t, rawQuery, "status:(values:List(ACTIVE,PAUSED,DRAFT))")

			return []map[string]interface{}{
				{"id": 1001, "name": "Campanha A", "status": "ACTIVE"},
				{"id": 1002, "name": "Campanha B", "status": "PAUSED"},
			}, nil
		},
	}
	integrator := newTestIntegrator(client, 3)

	campaigns, err := integrator.FetchCampaigns(504000001)
	require.NoError(t, err)

	require.Len(t, campaigns, 2)
	for _, campaign := range campaigns {
		assert.Equal(t, int64(504000001), campaign.AccountID)
	}
}

func TestFetchCreatives_FiltraPorCampanhas(t *testing.T) {
	client := &fakeClient{
		allPagesFn: func(path, rawQuery string) ([]map[string]interface{}, error) {
			assert.Equal(t, "/adAccounts/504000001/creatives", path)
			assert.Contains(t, rawQuery, "q=criteria")
			assert.Contains(t, rawQuery, "campaigns=List(urn%3Ali%3AsponsoredCampaign%3A1001,urn%3Ali%3AsponsoredCampaign%3A1002)")

			return []map[string]interface{}{
				{"id": "urn:li:sponsoredCreative:9001", "intendedStatus": "ACTIVE"},
			}, nil
		},
	}
	integrator := newTestIntegrator(client, 3)

	creatives, err := integrator.FetchCreatives(504000001, []int64{1001, 1002})
	require.NoError(t, err)

	require.Len(t, creatives, 1)
	assert.Equal(t, "urn:li:sponsoredCreative:9001", creatives[0].ID)
}

func TestFetchCampaignMetrics_DivideEmLotes(t *testing.T) {
	client := &fakeClient{
		getFn: func(path, rawQuery string) (map[string]interface{}, error) {
			return map[string]interface{}{
				"elements": []interface{}{metricElement(1001, 1, 100, 5, "10.50")},
			}, nil
		},
	}
	integrator := newTestIntegrator(client, 3)

	// 47 campanhas com lotes de 20 rendem 3 chamadas (20, 20 e 7 URNs)
	campaignIDs := make([]int64, 47)
	for i := range campaignIDs {
		campaignIDs[i] = int64(1000 + i)
	}

	rows, err := integrator.FetchCampaignMetrics(campaignIDs, time.Now().AddDate(0, 0, -7), time.Now())
	require.NoError(t, err)

	require.Len(t, client.getCalls, 3)
	assert.Len(t, rows, 3)

	urnsPerCall := make([]int, 0, len(client.getCalls))
	for _, call := range client.getCalls {
		assert.Contains(t, call, "pivot=CAMPAIGN")
		assert.Contains(t, call, "timeGranularity=DAILY")
		urnsPerCall = append(urnsPerCall, strings.Count(call, "sponsoredCampaign"))
	}
	assert.ElementsMatch(t, []int{20, 20, 7}, urnsPerCall)
}

func TestFetchCampaignMetrics_RespeitaLimiteDeConcorrencia(t *testing.T) {
	client := &fakeClient{
		getFn: func(path, rawQuery string) (map[string]interface{}, error) {
			return map[string]interface{}{"elements": []interface{}{}}, nil
		},
	}
	integrator := newTestIntegrator(client, 2)
	integrator.cfg.Sync.MetricsBatchSize = 1

	campaignIDs := make([]int64, 8)
	for i := range campaignIDs {
		campaignIDs[i] = int64(2000 + i)
	}

	_, err := integrator.FetchCampaignMetrics(campaignIDs, time.Now().AddDate(0, 0, -7), time.Now())
	require.NoError(t, err)

	require.Len(t, client.getCalls, 8)
	assert.LessOrEqual(t, client.maxInFlight, 2)
}

func TestFetchCampaignMetrics_DecodificaLinhas(t *testing.T) {
	client := &fakeClient{
		getFn: func(path, rawQuery string) (map[string]interface{}, error) {
			return map[string]interface{}{
				"elements": []interface{}{metricElement(1001, 15, 3000, 150, "75.50")},
			}, nil
		},
	}
	integrator := newTestIntegrator(client, 3)

	rows, err := integrator.FetchCampaignMetrics([]int64{1001}, time.Now().AddDate(0, 0, -7), time.Now())
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, int64(3000), rows[0].Impressions)
	assert.Equal(t, int64(150), rows[0].Clicks)
	assert.Equal(t, 75.50, rows[0].Spend())
	assert.Equal(t, "2024-01-15", rows[0].DateKey())
}

func TestFetchDemographics_PivotComFalhaDegradaParaVazio(t *testing.T) {
	client := &fakeClient{
		getFn: func(path, rawQuery string) (map[string]interface{}, error) {
			if strings.Contains(rawQuery, "pivot=MEMBER_INDUSTRY") {
				return nil, errors.New("erro transitório")
			}
			return map[string]interface{}{
				"elements": []interface{}{
					map[string]interface{}{
						"pivotValues":         []interface{}{"urn:li:seniority:4"},
						"impressions":         500,
						"clicks":              25,
						"costInLocalCurrency": "12.30",
					},
				},
			}, nil
		},
	}
	integrator := newTestIntegrator(client, 3)

	demographics, failedPivots := integrator.FetchDemographics([]int64{1001}, time.Now().AddDate(0, 0, -7), time.Now())

	require.Len(t, demographics, len(DemographicPivots))
	assert.Equal(t, []string{"MEMBER_INDUSTRY"}, failedPivots)
	assert.Empty(t, demographics["MEMBER_INDUSTRY"])
	require.Len(t, demographics["MEMBER_SENIORITY"], 1)
	assert.Equal(t, int64(500), demographics["MEMBER_SENIORITY"][0].Impressions)
}

func TestFetchDemographics_SemCampanhasNaoChamaAPI(t *testing.T) {
	client := &fakeClient{
		getFn: func(path, rawQuery string) (map[string]interface{}, error) {
			t.Fatal("nenhuma chamada esperada")
			return nil, nil
		},
	}
	integrator := newTestIntegrator(client, 3)

	demographics, failedPivots := integrator.FetchDemographics(nil, time.Now().AddDate(0, 0, -7), time.Now())

	assert.Empty(t, demographics)
	assert.Empty(t, failedPivots)
}
