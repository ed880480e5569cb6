package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/linkedin-ads-api/infrastructure/database/postgres"
	"github.com/vfg2006/linkedin-ads-api/infrastructure/integrator/linkedin"
	"github.com/vfg2006/linkedin-ads-api/infrastructure/integrator/linkedin/linkedinclient"
	"github.com/vfg2006/linkedin-ads-api/infrastructure/repository"
	"github.com/vfg2006/linkedin-ads-api/internal/api"
	"github.com/vfg2006/linkedin-ads-api/internal/api/handler"
	"github.com/vfg2006/linkedin-ads-api/internal/config"
	"github.com/vfg2006/linkedin-ads-api/internal/scheduler"
	"github.com/vfg2006/linkedin-ads-api/internal/usecases/syncing"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	accountRepo := repository.NewAdAccountRepository(pgConn)
	campaignRepo := repository.NewCampaignRepository(pgConn)
	creativeRepo := repository.NewCreativeRepository(pgConn)
	metricRepo := repository.NewMetricRepository(pgConn)
	demographicRepo := repository.NewDemographicRepository(pgConn)
	syncRunRepo := repository.NewSyncRunRepository(pgConn)

	tokenManager := linkedinclient.NewTokenManager(cfg)
	linkedInClient := linkedinclient.NewClient(cfg, tokenManager)
	linkedInIntegrator := linkedin.New(cfg, linkedInClient)

	freshnessGate := syncing.NewFreshnessGate(syncRunRepo, cfg.Sync.FreshnessTTLMinutes)
	jobRegistry := syncing.NewJobRegistry()

	syncService := syncing.NewService(
		cfg,
		linkedInIntegrator,
		freshnessGate,
		jobRegistry,
		accountRepo,
		campaignRepo,
		creativeRepo,
		metricRepo,
		demographicRepo,
		syncRunRepo,
	)

	// Inicializa o agendador de sincronização do LinkedIn
	linkedInSyncService := scheduler.NewLinkedInSyncService(cfg, syncService)
	if err := linkedInSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização do LinkedIn")
	} else {
		logrus.Info("Agendador de sincronização do LinkedIn iniciado com sucesso")
	}

	statusServices := handler.StatusServices{
		TokenManager:    tokenManager,
		AccountRepo:     accountRepo,
		CampaignRepo:    campaignRepo,
		CreativeRepo:    creativeRepo,
		MetricRepo:      metricRepo,
		DemographicRepo: demographicRepo,
		SyncRunRepo:     syncRunRepo,
	}

	server, err := api.New(cfg, syncService, statusServices)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
