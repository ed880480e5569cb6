package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App      App      `mapstructure:",squash"`
	Server   Server   `mapstructure:",squash"`
	Database Database `mapstructure:",squash"`
	LinkedIn LinkedIn `mapstructure:",squash"`
	Sync     Sync     `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type LinkedIn struct {
	BaseURL     string `mapstructure:"linkedin_base_url"`
	Version     string `mapstructure:"linkedin_version"`
	AccessToken string `mapstructure:"linkedin_access_token"`
	// Expiração do token em RFC3339, informada pelo provedor externo de tokens.
	// Opcional: vazio significa desconhecida.
	TokenExpiresAt string `mapstructure:"linkedin_token_expires_at"`
}

type Sync struct {
	CronSchedule          string `mapstructure:"sync_cron"`
	ScheduleEnabled       bool   `mapstructure:"sync_schedule_enabled"`
	FreshnessTTLMinutes   int    `mapstructure:"sync_freshness_ttl_minutes"`
	LookbackDays          int    `mapstructure:"sync_lookback_days"`
	PageSize              int    `mapstructure:"sync_page_size"`
	MetricsBatchSize      int    `mapstructure:"sync_metrics_batch_size"`
	MaxConcurrentRequests int    `mapstructure:"sync_max_concurrent_requests"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/linkedin_ads")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("LINKEDIN_BASE_URL", "https://api.linkedin.com/rest")
	viper.SetDefault("LINKEDIN_VERSION", "202501")
	viper.SetDefault("LINKEDIN_ACCESS_TOKEN", "") // fornecido pelo provedor de tokens
	viper.SetDefault("LINKEDIN_TOKEN_EXPIRES_AT", "")

	// Defaults da sincronização
	viper.SetDefault("SYNC_CRON", "0 3 * * *")            // Todos os dias às 3h da manhã
	viper.SetDefault("SYNC_SCHEDULE_ENABLED", false)      // Sincronização agendada desabilitada
	viper.SetDefault("SYNC_FRESHNESS_TTL_MINUTES", 240)   // Pular sync se o último sucesso for mais novo que isso
	viper.SetDefault("SYNC_LOOKBACK_DAYS", 90)            // Janela de métricas
	viper.SetDefault("SYNC_PAGE_SIZE", 100)               // Tamanho de página da API
	viper.SetDefault("SYNC_METRICS_BATCH_SIZE", 20)       // URNs de campanha por chamada de analytics
	viper.SetDefault("SYNC_MAX_CONCURRENT_REQUESTS", 3)   // Limite de requisições simultâneas por sync

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
