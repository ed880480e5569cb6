package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/linkedin-ads-api/infrastructure/repository/mocks"
	"github.com/vfg2006/linkedin-ads-api/internal/api/handler/router"
	"github.com/vfg2006/linkedin-ads-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func accountsRouter(accountRepo *mocks.MockAdAccountRepository, campaignRepo *mocks.MockCampaignRepository) http.Handler {
	return router.New(router.WithRoutes(Accounts(accountRepo, campaignRepo)...))
}

func TestListAccounts_RetornaContasOrdenadas(t *testing.T) {
	ctrl := gomock.NewController(t)
	accountRepo := mocks.NewMockAdAccountRepository(ctrl)
	campaignRepo := mocks.NewMockCampaignRepository(ctrl)

	accountRepo.EXPECT().List().Return([]*domain.AdAccount{
		{ID: 504000001, Name: "Conta A", Status: domain.AdAccountStatusActive},
		{ID: 504000002, Name: "Conta B", Status: domain.AdAccountStatusPaused},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/accounts", nil)
	rec := httptest.NewRecorder()
	accountsRouter(accountRepo, campaignRepo).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response ListAccountsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response.Accounts, 2)
	assert.Equal(t, int64(504000001), response.Accounts[0].ID)
	assert.Equal(t, "Conta B", response.Accounts[1].Name)
}

func TestListAccounts_ErroDeBancoRetorna500(t *testing.T) {
	ctrl := gomock.NewController(t)
	accountRepo := mocks.NewMockAdAccountRepository(ctrl)
	campaignRepo := mocks.NewMockCampaignRepository(ctrl)

	accountRepo.EXPECT().List().Return(nil, errors.New("conexão recusada"))

	req := httptest.NewRequest(http.MethodGet, "/v1/accounts", nil)
	rec := httptest.NewRecorder()
	accountsRouter(accountRepo, campaignRepo).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestListAccountCampaigns_FiltraPelaConta(t *testing.T) {
	ctrl := gomock.NewController(t)
	accountRepo := mocks.NewMockAdAccountRepository(ctrl)
	campaignRepo := mocks.NewMockCampaignRepository(ctrl)

	campaignRepo.EXPECT().ListByAccountID(int64(504000001)).Return([]*domain.Campaign{
		{ID: 2001, AccountID: 504000001, Name: "Campanha A", Status: "ACTIVE"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/accounts/504000001/campaigns", nil)
	rec := httptest.NewRecorder()
	accountsRouter(accountRepo, campaignRepo).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response ListAccountCampaignsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, int64(504000001), response.AccountID)
	require.Len(t, response.Campaigns, 1)
	assert.Equal(t, int64(2001), response.Campaigns[0].ID)
}

func TestListAccountCampaigns_ContaSemCampanhasRetornaListaVazia(t *testing.T) {
	ctrl := gomock.NewController(t)
	accountRepo := mocks.NewMockAdAccountRepository(ctrl)
	campaignRepo := mocks.NewMockCampaignRepository(ctrl)

	campaignRepo.EXPECT().ListByAccountID(int64(504000009)).Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/accounts/504000009/campaigns", nil)
	rec := httptest.NewRecorder()
	accountsRouter(accountRepo, campaignRepo).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"campaigns":[]`)
}

func TestListAccountCampaigns_IdentificadorInvalidoRetorna400(t *testing.T) {
	ctrl := gomock.NewController(t)
	accountRepo := mocks.NewMockAdAccountRepository(ctrl)
	campaignRepo := mocks.NewMockCampaignRepository(ctrl)

	req := httptest.NewRequest(http.MethodGet, "/v1/accounts/abc/campaigns", nil)
	rec := httptest.NewRecorder()
	accountsRouter(accountRepo, campaignRepo).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
