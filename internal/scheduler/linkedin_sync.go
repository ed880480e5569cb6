package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/linkedin-ads-api/internal/config"
	"github.com/vfg2006/linkedin-ads-api/internal/domain"
	"github.com/vfg2006/linkedin-ads-api/internal/usecases/syncing"
)

// LinkedInSyncService agenda a sincronização periódica do LinkedIn. A
// serialização das execuções fica no orquestrador; aqui só mora o cron.
type LinkedInSyncService struct {
	scheduler   *gocron.Scheduler
	cfg         *config.Config
	syncService syncing.Syncer
}

func NewLinkedInSyncService(cfg *config.Config, syncService syncing.Syncer) *LinkedInSyncService {
	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":    cfg.Sync.CronSchedule,
		"schedule_enabled": cfg.Sync.ScheduleEnabled,
		"lookback_days":    cfg.Sync.LookbackDays,
		"ttl_minutes":      cfg.Sync.FreshnessTTLMinutes,
	}).Info("Configuração do agendador de sincronização do LinkedIn carregada")

	return &LinkedInSyncService{
		scheduler:   scheduler,
		cfg:         cfg,
		syncService: syncService,
	}
}

// Start inicia o agendador
func (s *LinkedInSyncService) Start(ctx context.Context) error {
	if !s.cfg.Sync.ScheduleEnabled {
		logrus.Info("Sincronização agendada do LinkedIn desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.cfg.Sync.CronSchedule).Info("Iniciando agendador de sincronização do LinkedIn")

	_, err := s.scheduler.Cron(s.cfg.Sync.CronSchedule).Do(func() {
		// O gate de frescor decide se a execução agendada vale a pena
		s.syncService.RunSync(domain.SyncTriggerScheduled, false)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização do LinkedIn: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização do LinkedIn")
		s.scheduler.Stop()
	}()

	return nil
}
