package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/linkedin-ads-api/infrastructure/integrator/linkedin/linkedinclient"
	"github.com/vfg2006/linkedin-ads-api/infrastructure/repository"
	"github.com/vfg2006/linkedin-ads-api/internal/domain"
	"github.com/vfg2006/linkedin-ads-api/pkg/apiErrors"
)

// StatusServices agrupa as dependências do diagnóstico exposto em /v1/status
type StatusServices struct {
	TokenManager    linkedinclient.TokenManager
	AccountRepo     repository.AdAccountRepository
	CampaignRepo    repository.CampaignRepository
	CreativeRepo    repository.CreativeRepository
	MetricRepo      repository.MetricRepository
	DemographicRepo repository.DemographicRepository
	SyncRunRepo     repository.SyncRunRepository
}

type TableCounts struct {
	AdAccounts           int64 `json:"ad_accounts"`
	Campaigns            int64 `json:"campaigns"`
	Creatives            int64 `json:"creatives"`
	CampaignDailyMetrics int64 `json:"campaign_daily_metrics"`
	CreativeDailyMetrics int64 `json:"creative_daily_metrics"`
	AudienceDemographics int64 `json:"audience_demographics"`
}

type StatusResponse struct {
	Token         domain.TokenStatus           `json:"token"`
	Tables        TableCounts                  `json:"tables"`
	LastSync      *domain.SyncRun              `json:"last_sync,omitempty"`
	CampaignAudit []*domain.CampaignAuditEntry `json:"campaign_audit"`
}

// GetStatus retorna o diagnóstico do serviço: saúde do token, contagem das
// tabelas sincronizadas, última execução e auditoria das campanhas ativas
func GetStatus(services StatusServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetStatus")

		response := StatusResponse{
			Token:         services.TokenManager.Status(),
			CampaignAudit: make([]*domain.CampaignAuditEntry, 0),
		}

		counts, err := collectTableCounts(services)
		if err != nil {
			logrus.WithError(err).Error("Erro ao contar tabelas para o status")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar o banco de dados", nil)
			return
		}
		response.Tables = counts

		lastRun, err := services.SyncRunRepo.LastRun()
		if err != nil {
			logrus.WithError(err).Warn("Erro ao buscar última execução para o status")
		} else {
			response.LastSync = lastRun
		}

		audit, err := services.CampaignRepo.ActiveCampaignAudit()
		if err != nil {
			logrus.WithError(err).Warn("Erro ao auditar campanhas ativas para o status")
		} else if audit != nil {
			response.CampaignAudit = audit
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}

func collectTableCounts(services StatusServices) (TableCounts, error) {
	counts := TableCounts{}
	var err error

	if counts.AdAccounts, err = services.AccountRepo.Count(); err != nil {
		return counts, err
	}
	if counts.Campaigns, err = services.CampaignRepo.Count(); err != nil {
		return counts, err
	}
	if counts.Creatives, err = services.CreativeRepo.Count(); err != nil {
		return counts, err
	}
	if counts.CampaignDailyMetrics, err = services.MetricRepo.CountCampaignDaily(); err != nil {
		return counts, err
	}
	if counts.CreativeDailyMetrics, err = services.MetricRepo.CountCreativeDaily(); err != nil {
		return counts, err
	}
	if counts.AudienceDemographics, err = services.DemographicRepo.Count(); err != nil {
		return counts, err
	}

	return counts, nil
}
