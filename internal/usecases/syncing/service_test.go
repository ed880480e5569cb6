package syncing

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lidomain "github.com/vfg2006/linkedin-ads-api/infrastructure/integrator/linkedin/domain"
	limocks "github.com/vfg2006/linkedin-ads-api/infrastructure/integrator/linkedin/mocks"
	"github.com/vfg2006/linkedin-ads-api/infrastructure/repository/mocks"
	"github.com/vfg2006/linkedin-ads-api/internal/config"
	"github.com/vfg2006/linkedin-ads-api/internal/domain"
	"go.uber.org/mock/gomock"
)

type serviceMocks struct {
	integrator      *limocks.MockIntegrator
	accountRepo     *mocks.MockAdAccountRepository
	campaignRepo    *mocks.MockCampaignRepository
	creativeRepo    *mocks.MockCreativeRepository
	metricRepo      *mocks.MockMetricRepository
	demographicRepo *mocks.MockDemographicRepository
	syncRunRepo     *mocks.MockSyncRunRepository
}

func newServiceForTest(ctrl *gomock.Controller) (Syncer, *JobRegistry, *serviceMocks) {
	m := &serviceMocks{
		integrator:      limocks.NewMockIntegrator(ctrl),
		accountRepo:     mocks.NewMockAdAccountRepository(ctrl),
		campaignRepo:    mocks.NewMockCampaignRepository(ctrl),
		creativeRepo:    mocks.NewMockCreativeRepository(ctrl),
		metricRepo:      mocks.NewMockMetricRepository(ctrl),
		demographicRepo: mocks.NewMockDemographicRepository(ctrl),
		syncRunRepo:     mocks.NewMockSyncRunRepository(ctrl),
	}

	cfg := &config.Config{
		Sync: config.Sync{
			FreshnessTTLMinutes: 240,
			LookbackDays:        90,
		},
	}

	registry := NewJobRegistry()
	gate := NewFreshnessGate(m.syncRunRepo, cfg.Sync.FreshnessTTLMinutes)
	service := NewService(
		cfg,
		m.integrator,
		gate,
		registry,
		m.accountRepo,
		m.campaignRepo,
		m.creativeRepo,
		m.metricRepo,
		m.demographicRepo,
		m.syncRunRepo,
	)

	return service, registry, m
}

func TestService_SincronizacaoCompleta(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, _, m := newServiceForTest(ctrl)

	m.syncRunRepo.EXPECT().Create(gomock.Any()).Return(nil)

	m.integrator.EXPECT().FetchAdAccounts().Return([]lidomain.AdAccount{
		{ID: 1, Name: "Conta A", Status: "ACTIVE"},
	}, nil)
	m.integrator.EXPECT().FetchCampaigns(int64(1)).Return([]lidomain.Campaign{
		{ID: 100, Name: "Campanha A", Status: "ACTIVE", AccountID: 1},
	}, nil)
	m.integrator.EXPECT().FetchCreatives(int64(1), []int64{100}).Return([]lidomain.Creative{
		{ID: "urn:li:sponsoredCreative:900", Campaign: "urn:li:sponsoredCampaign:100"},
	}, nil)
	m.integrator.EXPECT().FetchCampaignMetrics([]int64{100}, gomock.Any(), gomock.Any()).Return([]lidomain.MetricRow{
		{
			PivotValues: []string{"urn:li:sponsoredCampaign:100"},
			Impressions: 1000, Clicks: 50, CostInLocalCurrency: "25.50",
			DateRange: &lidomain.MetricDateRange{Start: lidomain.DatePart{Year: 2024, Month: 1, Day: 1}},
		},
	}, nil)
	m.integrator.EXPECT().FetchCreativeMetrics([]int64{100}, gomock.Any(), gomock.Any()).Return(nil, nil)
	m.integrator.EXPECT().FetchDemographics([]int64{100}, gomock.Any(), gomock.Any()).Return(nil, nil)

	m.accountRepo.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil)
	m.campaignRepo.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil)
	m.creativeRepo.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil)
	m.metricRepo.EXPECT().SaveOrUpdateCampaignDaily(gomock.Any()).Return(nil)

	var finished *domain.SyncRun
	m.syncRunRepo.EXPECT().Finish(gomock.Any()).DoAndReturn(func(run *domain.SyncRun) error {
		finished = run
		return nil
	})

	service.RunSync(domain.SyncTriggerOnDemand, true)

	require.NotNil(t, finished)
	assert.Equal(t, domain.SyncRunStatusSuccess, finished.Status)
	assert.Equal(t, 1, finished.Stats.AccountsFetched)
	assert.Equal(t, 1, finished.Stats.CampaignsFetched)
	assert.Equal(t, 1, finished.Stats.CreativesFetched)
	assert.Equal(t, 4, finished.Stats.RowsWritten)
	require.NotNil(t, finished.FinishedAt)
}

func TestService_ZeroContasEncerraComSucesso(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, _, m := newServiceForTest(ctrl)

	m.syncRunRepo.EXPECT().Create(gomock.Any()).Return(nil)
	m.integrator.EXPECT().FetchAdAccounts().Return([]lidomain.AdAccount{}, nil)

	var finished *domain.SyncRun
	m.syncRunRepo.EXPECT().Finish(gomock.Any()).DoAndReturn(func(run *domain.SyncRun) error {
		finished = run
		return nil
	})

	service.RunSync(domain.SyncTriggerOnDemand, true)

	// Zero contas é um desfecho válido, não um erro
	require.NotNil(t, finished)
	assert.Equal(t, domain.SyncRunStatusSuccess, finished.Status)
	assert.Equal(t, 0, finished.Stats.AccountsFetched)
}

func TestService_ErroAoBuscarContasFalhaARun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, _, m := newServiceForTest(ctrl)

	m.syncRunRepo.EXPECT().Create(gomock.Any()).Return(nil)
	m.integrator.EXPECT().FetchAdAccounts().Return(nil, errors.New("limite de requisições excedido"))

	var finished *domain.SyncRun
	m.syncRunRepo.EXPECT().Finish(gomock.Any()).DoAndReturn(func(run *domain.SyncRun) error {
		finished = run
		return nil
	})

	service.RunSync(domain.SyncTriggerOnDemand, true)

	require.NotNil(t, finished)
	assert.Equal(t, domain.SyncRunStatusFailed, finished.Status)
	require.NotEmpty(t, finished.Errors)
	assert.Contains(t, finished.Errors[0], "erro ao buscar contas")
}

func TestService_PivotDemograficoFalhoResultaEmParcial(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, _, m := newServiceForTest(ctrl)

	m.syncRunRepo.EXPECT().Create(gomock.Any()).Return(nil)

	m.integrator.EXPECT().FetchAdAccounts().Return([]lidomain.AdAccount{
		{ID: 1, Name: "Conta A"},
	}, nil)
	m.integrator.EXPECT().FetchCampaigns(int64(1)).Return([]lidomain.Campaign{
		{ID: 100, AccountID: 1},
	}, nil)
	m.integrator.EXPECT().FetchCreatives(int64(1), []int64{100}).Return(nil, nil)
	m.integrator.EXPECT().FetchCampaignMetrics(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	m.integrator.EXPECT().FetchCreativeMetrics(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	// Um pivot indisponível degrada a run para parcial, não para falha
	m.integrator.EXPECT().FetchDemographics(gomock.Any(), gomock.Any(), gomock.Any()).Return(
		map[string][]lidomain.MetricRow{"MEMBER_SENIORITY": {}},
		[]string{"MEMBER_INDUSTRY"},
	)

	m.accountRepo.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil)
	m.campaignRepo.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil)

	var finished *domain.SyncRun
	m.syncRunRepo.EXPECT().Finish(gomock.Any()).DoAndReturn(func(run *domain.SyncRun) error {
		finished = run
		return nil
	})

	service.RunSync(domain.SyncTriggerScheduled, true)

	require.NotNil(t, finished)
	assert.Equal(t, domain.SyncRunStatusPartial, finished.Status)
	require.NotEmpty(t, finished.Errors)
	assert.Contains(t, finished.Errors[0], "MEMBER_INDUSTRY")
}

func TestService_GateDispensaSincronizacaoRecente(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, _, m := newServiceForTest(ctrl)

	recent := time.Now().Add(-10 * time.Minute)
	m.syncRunRepo.EXPECT().LastSuccessfulAt("all").Return(&recent, nil)

	// O registro de auditoria do sync dispensado ainda é gravado
	m.syncRunRepo.EXPECT().Create(gomock.Any()).Return(nil)
	m.syncRunRepo.EXPECT().Finish(gomock.Any()).Return(nil)

	service.RunSync(domain.SyncTriggerOnDemand, false)
}

func TestService_StartSyncRegistraJobConsultavel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, registry, m := newServiceForTest(ctrl)

	// Sync dispensado pelo gate para a goroutine terminar rápido
	recent := time.Now().Add(-10 * time.Minute)
	m.syncRunRepo.EXPECT().LastSuccessfulAt("all").Return(&recent, nil)
	m.syncRunRepo.EXPECT().Create(gomock.Any()).Return(nil).AnyTimes()
	m.syncRunRepo.EXPECT().Finish(gomock.Any()).Return(nil).AnyTimes()

	job, err := service.StartSync(domain.SyncTriggerOnDemand, false)
	require.NoError(t, err)
	require.NotEmpty(t, job.ID)

	found, ok := registry.Get(job.ID)
	require.True(t, ok)
	assert.Equal(t, job, found)

	// O estado terminal permanece consultável depois do fim
	events, unsubscribe := job.Subscribe()
	defer unsubscribe()

	drained := make(chan struct{})
	go func() {
		for range events {
		}
		close(drained)
	}()

	select {
	case <-drained:
	case <-time.After(2 * time.Second):
		t.Fatal("stream do job não terminou a tempo")
	}

	status, _, _ := found.Snapshot()
	assert.Equal(t, domain.SyncRunStatusSkipped, status)
}
