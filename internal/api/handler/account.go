package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/linkedin-ads-api/infrastructure/repository"
	"github.com/vfg2006/linkedin-ads-api/internal/domain"
	"github.com/vfg2006/linkedin-ads-api/pkg/apiErrors"
)

type ListAccountsResponse struct {
	Accounts []*domain.AdAccount `json:"accounts"`
}

type ListAccountCampaignsResponse struct {
	AccountID int64              `json:"account_id"`
	Campaigns []*domain.Campaign `json:"campaigns"`
}

// ListAccounts retorna as contas de anúncios já sincronizadas, ordenadas
// por nome
func ListAccounts(accountRepo repository.AdAccountRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ListAccounts")

		accounts, err := accountRepo.List()
		if err != nil {
			logrus.WithError(err).Error("Erro ao listar contas")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar o banco de dados", nil)
			return
		}

		if accounts == nil {
			accounts = make([]*domain.AdAccount, 0)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ListAccountsResponse{Accounts: accounts})
	}
}

// ListAccountCampaigns retorna as campanhas sincronizadas de uma conta
func ListAccountCampaigns(campaignRepo repository.CampaignRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawID := httprouter.ParamsFromContext(r.Context()).ByName("account_id")

		accountID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Identificador de conta inválido", nil)
			return
		}

		campaigns, err := campaignRepo.ListByAccountID(accountID)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"account_id": accountID,
				"error":      err.Error(),
			}).Error("Erro ao listar campanhas da conta")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar o banco de dados", nil)
			return
		}

		if campaigns == nil {
			campaigns = make([]*domain.Campaign, 0)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ListAccountCampaignsResponse{
			AccountID: accountID,
			Campaigns: campaigns,
		})
	}
}
