package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/linkedin-ads-api/infrastructure/repository"
	"github.com/vfg2006/linkedin-ads-api/internal/api/handler/router"
	"github.com/vfg2006/linkedin-ads-api/internal/usecases/syncing"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Sync(service syncing.Syncer) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/sync",
			Method:  http.MethodPost,
			Handler: StartSync(service),
		},
		{
			Path:    "/v1/sync/:job_id",
			Method:  http.MethodGet,
			Handler: GetSyncJob(service),
		},
		{
			Path:    "/v1/sync/:job_id/stream",
			Method:  http.MethodGet,
			Handler: StreamSyncJob(service),
		},
	}
}

func Accounts(accountRepo repository.AdAccountRepository, campaignRepo repository.CampaignRepository) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/accounts",
			Method:  http.MethodGet,
			Handler: ListAccounts(accountRepo),
		},
		{
			Path:    "/v1/accounts/:account_id/campaigns",
			Method:  http.MethodGet,
			Handler: ListAccountCampaigns(campaignRepo),
		},
	}
}

func Status(services StatusServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/status",
			Method:  http.MethodGet,
			Handler: GetStatus(services),
		},
	}
}
