package syncing

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/linkedin-ads-api/infrastructure/integrator/linkedin"
	lidomain "github.com/vfg2006/linkedin-ads-api/infrastructure/integrator/linkedin/domain"
	"github.com/vfg2006/linkedin-ads-api/infrastructure/repository"
	"github.com/vfg2006/linkedin-ads-api/internal/config"
	"github.com/vfg2006/linkedin-ads-api/internal/domain"
	"github.com/vfg2006/linkedin-ads-api/internal/usecases/snapshotting"
	"github.com/vfg2006/linkedin-ads-api/pkg/utils"
)

// scopeAll é o escopo padrão de sincronização: todas as contas visíveis
// pelo token
const scopeAll = "all"

// Syncer dispara e acompanha execuções de sincronização
type Syncer interface {
	// StartSync dispara um sync assíncrono e retorna o job registrado
	StartSync(trigger domain.SyncTrigger, force bool) (*Job, error)

	// Job consulta um job pelo identificador
	Job(jobID string) (*Job, bool)

	// RunSync executa um sync de forma síncrona (usado pelo agendador)
	RunSync(trigger domain.SyncTrigger, force bool)
}

// Service orquestra a pipeline completa: gate de frescor, fetch paginado,
// montagem do snapshot e persistência idempotente, emitindo um evento de
// progresso por passo.
type Service struct {
	cfg             *config.Config
	integrator      linkedin.Integrator
	gate            FreshnessGate
	registry        *JobRegistry
	accountRepo     repository.AdAccountRepository
	campaignRepo    repository.CampaignRepository
	creativeRepo    repository.CreativeRepository
	metricRepo      repository.MetricRepository
	demographicRepo repository.DemographicRepository
	syncRunRepo     repository.SyncRunRepository

	// Serializa execuções: um sync por vez, os demais aguardam
	runMutex sync.Mutex
}

func NewService(
	cfg *config.Config,
	integrator linkedin.Integrator,
	gate FreshnessGate,
	registry *JobRegistry,
	accountRepo repository.AdAccountRepository,
	campaignRepo repository.CampaignRepository,
	creativeRepo repository.CreativeRepository,
	metricRepo repository.MetricRepository,
	demographicRepo repository.DemographicRepository,
	syncRunRepo repository.SyncRunRepository,
) Syncer {
	return &Service{
		cfg:             cfg,
		integrator:      integrator,
		gate:            gate,
		registry:        registry,
		accountRepo:     accountRepo,
		campaignRepo:    campaignRepo,
		creativeRepo:    creativeRepo,
		metricRepo:      metricRepo,
		demographicRepo: demographicRepo,
		syncRunRepo:     syncRunRepo,
	}
}

// StartSync registra o job e dispara a execução em uma goroutine. A
// desconexão de quem acompanha o progresso não cancela a execução: ela
// segue até o fim e o estado terminal permanece consultável pelo job_id.
func (s *Service) StartSync(trigger domain.SyncTrigger, force bool) (*Job, error) {
	jobID, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar identificador do job: %w", err)
	}

	job := NewJob(jobID)
	s.registry.Register(job)

	logrus.WithFields(logrus.Fields{
		"job_id":  jobID,
		"trigger": trigger,
		"force":   force,
	}).Info("Sincronização do LinkedIn disparada")

	go s.execute(job, trigger, force)

	return job, nil
}

func (s *Service) Job(jobID string) (*Job, bool) {
	return s.registry.Get(jobID)
}

// RunSync executa um sync completo de forma síncrona, com um job interno
// para manter o mesmo log de progresso das execuções via API
func (s *Service) RunSync(trigger domain.SyncTrigger, force bool) {
	jobID, err := utils.GenerateID()
	if err != nil {
		logrus.WithError(err).Error("Erro ao gerar identificador do job agendado")
		return
	}

	job := NewJob(jobID)
	s.registry.Register(job)
	s.execute(job, trigger, force)
}

// execute percorre a pipeline inteira para um job já registrado
func (s *Service) execute(job *Job, trigger domain.SyncTrigger, force bool) {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	startTime := time.Now()

	shouldSync, reason := s.gate.ShouldSync(scopeAll, force)
	if !shouldSync {
		logrus.WithFields(logrus.Fields{
			"job_id": job.ID,
			"reason": reason,
		}).Info("Sincronização dispensada pelo gate de frescor")

		s.recordSkippedRun(trigger, startTime)
		job.Publish(StepSyncStarted, reason)
		job.Finish(domain.SyncRunStatusSkipped, nil, "")
		return
	}

	syncRun := &domain.SyncRun{
		AccountScope: scopeAll,
		StartedAt:    startTime.UTC(),
		Status:       domain.SyncRunStatusRunning,
		Trigger:      trigger,
	}
	if err := s.syncRunRepo.Create(syncRun); err != nil {
		// A auditoria não bloqueia a pipeline, mas o erro fica registrado
		logrus.WithError(err).Error("Erro ao registrar início da sincronização")
		syncRun.Errors = append(syncRun.Errors, err.Error())
	}

	job.Publish(StepSyncStarted, reason)

	stats, runErrors, partial := s.runPipeline(job, syncRun)

	status := domain.SyncRunStatusSuccess
	var errDetail string
	switch {
	case len(runErrors) > 0:
		status = domain.SyncRunStatusFailed
		errDetail = strings.Join(runErrors, "; ")
	case partial:
		status = domain.SyncRunStatusPartial
	}

	s.finishRun(syncRun, status, stats, runErrors)
	job.Finish(status, stats, errDetail)

	logrus.WithFields(logrus.Fields{
		"job_id":   job.ID,
		"status":   status,
		"duration": time.Since(startTime).String(),
		"accounts": stats.AccountsFetched,
		"rows":     stats.RowsWritten,
	}).Info("Sincronização do LinkedIn concluída")
}

// runPipeline executa fetch, montagem e persistência. Retorna os contadores
// acumulados, os erros fatais e se houve degradação parcial (pivots
// demográficos que falharam).
func (s *Service) runPipeline(job *Job, syncRun *domain.SyncRun) (*domain.SyncRunStats, []string, bool) {
	stats := &domain.SyncRunStats{}

	rangeEnd := time.Now().UTC().AddDate(0, 0, -1)
	rangeStart := rangeEnd.AddDate(0, 0, -(s.cfg.Sync.LookbackDays - 1))

	accounts, err := s.integrator.FetchAdAccounts()
	if err != nil {
		return stats, []string{fetchFailure("erro ao buscar contas", err)}, false
	}

	stats.AccountsFetched = len(accounts)
	job.Publish(StepAccountsFetched, fmt.Sprintf("%d contas", len(accounts)))

	// Zero contas é um desfecho válido, não um erro
	if len(accounts) == 0 {
		return stats, nil, false
	}

	allCampaigns := make([]lidomain.Campaign, 0)
	allCreatives := make([]lidomain.Creative, 0)
	campaignIDs := make([]int64, 0)

	for _, account := range accounts {
		campaigns, err := s.integrator.FetchCampaigns(account.ID)
		if err != nil {
			return stats, []string{fetchFailure(fmt.Sprintf("erro ao buscar campanhas da conta %d", account.ID), err)}, false
		}

		accountCampaignIDs := make([]int64, 0, len(campaigns))
		for _, campaign := range campaigns {
			accountCampaignIDs = append(accountCampaignIDs, campaign.ID)
		}

		creatives, err := s.integrator.FetchCreatives(account.ID, accountCampaignIDs)
		if err != nil {
			return stats, []string{fetchFailure(fmt.Sprintf("erro ao buscar criativos da conta %d", account.ID), err)}, false
		}

		allCampaigns = append(allCampaigns, campaigns...)
		allCreatives = append(allCreatives, creatives...)
		campaignIDs = append(campaignIDs, accountCampaignIDs...)
	}

	stats.CampaignsFetched = len(allCampaigns)
	stats.CreativesFetched = len(allCreatives)
	job.Publish(StepCampaignsFetched, fmt.Sprintf("%d campanhas", len(allCampaigns)))
	job.Publish(StepCreativesFetched, fmt.Sprintf("%d criativos", len(allCreatives)))

	// As três famílias de métricas são buscadas em paralelo; o semáforo do
	// integrador limita as requisições HTTP simultâneas do conjunto
	var (
		wg              sync.WaitGroup
		campaignRows    []lidomain.MetricRow
		creativeRows    []lidomain.MetricRow
		demographicRows map[string][]lidomain.MetricRow
		failedPivots    []string
		campaignErr     error
		creativeErr     error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		campaignRows, campaignErr = s.integrator.FetchCampaignMetrics(campaignIDs, rangeStart, rangeEnd)
	}()
	go func() {
		defer wg.Done()
		creativeRows, creativeErr = s.integrator.FetchCreativeMetrics(campaignIDs, rangeStart, rangeEnd)
	}()
	go func() {
		defer wg.Done()
		demographicRows, failedPivots = s.integrator.FetchDemographics(campaignIDs, rangeStart, rangeEnd)
	}()
	wg.Wait()

	if campaignErr != nil {
		return stats, []string{fetchFailure("erro ao buscar métricas de campanha", campaignErr)}, false
	}
	if creativeErr != nil {
		return stats, []string{fetchFailure("erro ao buscar métricas de criativo", creativeErr)}, false
	}

	demographicCount := 0
	for _, rows := range demographicRows {
		demographicCount += len(rows)
	}
	stats.MetricRowsFetched = len(campaignRows) + len(creativeRows) + demographicCount
	job.Publish(StepMetricsFetched, fmt.Sprintf("%d linhas de métricas", stats.MetricRowsFetched))

	for _, pivot := range failedPivots {
		detail := fmt.Sprintf("pivot demográfico %s indisponível", pivot)
		syncRun.Errors = append(syncRun.Errors, detail)
	}

	snapshot := snapshotting.Assemble(snapshotting.AssembleInput{
		Accounts:        accounts,
		Campaigns:       allCampaigns,
		Creatives:       allCreatives,
		CampaignMetrics: campaignRows,
		CreativeMetrics: creativeRows,
		Demographics:    demographicRows,
		RangeStart:      rangeStart,
		RangeEnd:        rangeEnd,
	})
	job.Publish(StepSnapshotAssembled, fmt.Sprintf("%d contas no snapshot", len(snapshot.Accounts)))

	if err := s.persistSnapshot(snapshot, stats); err != nil {
		return stats, []string{err.Error()}, false
	}
	job.Publish(StepPersisted, fmt.Sprintf("%d linhas gravadas", stats.RowsWritten))

	return stats, nil, len(failedPivots) > 0
}

// persistSnapshot percorre a árvore do snapshot gravando cada entidade com
// upsert idempotente. Um erro de escrita interrompe a caminhada; o que já
// foi gravado permanece, não há rollback.
func (s *Service) persistSnapshot(snapshot *domain.Snapshot, stats *domain.SyncRunStats) error {
	for i := range snapshot.Accounts {
		account := &snapshot.Accounts[i]

		if err := s.accountRepo.SaveOrUpdate(&account.AdAccount); err != nil {
			return fmt.Errorf("erro ao gravar conta %d: %w", account.ID, err)
		}
		stats.RowsWritten++

		for j := range account.Campaigns {
			campaign := &account.Campaigns[j]

			if err := s.campaignRepo.SaveOrUpdate(&campaign.Campaign); err != nil {
				return fmt.Errorf("erro ao gravar campanha %d: %w", campaign.ID, err)
			}
			stats.RowsWritten++

			for _, point := range campaign.DailyMetrics {
				metric := &domain.CampaignDailyMetric{
					CampaignID:     campaign.ID,
					Date:           point.Date,
					MetricCounters: point.MetricCounters,
					CTR:            point.CTR,
					CPC:            point.CPC,
				}
				if err := s.metricRepo.SaveOrUpdateCampaignDaily(metric); err != nil {
					return fmt.Errorf("erro ao gravar métrica diária da campanha %d: %w", campaign.ID, err)
				}
				stats.RowsWritten++
			}

			for k := range campaign.Creatives {
				creative := &campaign.Creatives[k]

				if err := s.creativeRepo.SaveOrUpdate(&creative.Creative); err != nil {
					return fmt.Errorf("erro ao gravar criativo %s: %w", creative.ID, err)
				}
				stats.RowsWritten++

				for _, point := range creative.DailyMetrics {
					metric := &domain.CreativeDailyMetric{
						CreativeID:     creative.ID,
						Date:           point.Date,
						MetricCounters: point.MetricCounters,
						CTR:            point.CTR,
						CPC:            point.CPC,
					}
					if err := s.metricRepo.SaveOrUpdateCreativeDaily(metric); err != nil {
						return fmt.Errorf("erro ao gravar métrica diária do criativo %s: %w", creative.ID, err)
					}
					stats.RowsWritten++
				}
			}
		}

		for pivot, segments := range account.AudienceDemographics {
			for _, segment := range segments {
				row := &domain.AudienceDemographic{
					AccountID:   account.ID,
					PivotType:   pivot,
					Segment:     segment.Segment,
					DateStart:   snapshot.DateRange.Start,
					DateEnd:     snapshot.DateRange.End,
					Impressions: segment.Impressions,
					Clicks:      segment.Clicks,
					CTR:         segment.CTR,
					SharePct:    segment.ShareOfImpressions,
				}
				if err := s.demographicRepo.SaveOrUpdate(row); err != nil {
					return fmt.Errorf("erro ao gravar demografia da conta %d: %w", account.ID, err)
				}
				stats.RowsWritten++
			}
		}
	}

	return nil
}

// fetchFailure descreve uma falha de ingestão. Rate limit da API ganha um
// log próprio com o endpoint e o Retry-After, para orientar o operador.
func fetchFailure(prefix string, err error) string {
	var rateErr *lidomain.RateLimitError
	if errors.As(err, &rateErr) {
		fields := logrus.Fields{"endpoint": rateErr.Endpoint}
		if rateErr.RetryAfterSeconds != nil {
			fields["retry_after_seconds"] = *rateErr.RetryAfterSeconds
		}
		logrus.WithFields(fields).Warn("Limite de requisições da API do LinkedIn atingido")
	}

	return fmt.Sprintf("%s: %v", prefix, err)
}

func (s *Service) recordSkippedRun(trigger domain.SyncTrigger, startTime time.Time) {
	now := startTime.UTC()
	syncRun := &domain.SyncRun{
		AccountScope: scopeAll,
		StartedAt:    now,
		Status:       domain.SyncRunStatusSkipped,
		Trigger:      trigger,
	}

	if err := s.syncRunRepo.Create(syncRun); err != nil {
		logrus.WithError(err).Error("Erro ao registrar sync dispensado")
		return
	}

	syncRun.FinishedAt = &now
	if err := s.syncRunRepo.Finish(syncRun); err != nil {
		logrus.WithError(err).Error("Erro ao finalizar registro de sync dispensado")
	}
}

func (s *Service) finishRun(syncRun *domain.SyncRun, status domain.SyncRunStatus, stats *domain.SyncRunStats, runErrors []string) {
	finishedAt := time.Now().UTC()
	syncRun.FinishedAt = &finishedAt
	syncRun.Status = status
	syncRun.Stats = *stats
	syncRun.Errors = append(syncRun.Errors, runErrors...)

	if err := s.syncRunRepo.Finish(syncRun); err != nil {
		logrus.WithError(err).Error("Erro ao gravar desfecho da sincronização")
	}
}
