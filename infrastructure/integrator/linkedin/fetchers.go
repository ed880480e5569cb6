package linkedin

import (
	"fmt"

	"github.com/sirupsen/logrus"
	lidomain "github.com/vfg2006/linkedin-ads-api/infrastructure/integrator/linkedin/domain"
)

// Status de campanha buscados por padrão. ARCHIVED e CANCELED ficam de
// fora para manter o conjunto de dados relevante.
const campaignStatusFilter = "search=(status:(values:List(ACTIVE,PAUSED,DRAFT)))"

// FetchAdAccounts retorna todas as contas de anúncios acessíveis pelo
// token autenticado. Endpoint: GET /adAccounts?q=search
func (s *LinkedInIntegrator) FetchAdAccounts() ([]lidomain.AdAccount, error) {
	records, err := s.Client.GetAllPages("/adAccounts", "q=search", "elements", s.cfg.Sync.PageSize)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar contas de anúncios: %w", err)
	}

	accounts := make([]lidomain.AdAccount, 0, len(records))
	for _, record := range records {
		account := lidomain.AdAccount{}
		if err := decodeRecord(record, &account); err != nil {
			logrus.WithFields(logrus.Fields{
				"entity": "adAccount",
				"id":     record["id"],
				"error":  err.Error(),
			}).Warn("Registro de conta inválido, ignorando")
			continue
		}

		if account.ID == 0 {
			logrus.WithFields(logrus.Fields{
				"entity": "adAccount",
				"field":  "id",
				"value":  record["id"],
			}).Warn("Conta sem identificador válido, ignorando")
			continue
		}

		accounts = append(accounts, account)
	}

	return accounts, nil
}

// FetchCampaigns retorna todas as campanhas da conta informada. Cada
// campanha retornada é marcada com o AccountID de origem aqui, no fetch:
// a atribuição nunca é re-derivada depois por casamento ou posição.
// Endpoint: GET /adAccounts/{id}/adCampaigns?q=search
func (s *LinkedInIntegrator) FetchCampaigns(accountID int64) ([]lidomain.Campaign, error) {
	path := fmt.Sprintf("/adAccounts/%d/adCampaigns", accountID)
	params := "q=search&" + campaignStatusFilter

	records, err := s.Client.GetAllPages(path, params, "elements", s.cfg.Sync.PageSize)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar campanhas da conta %d: %w", accountID, err)
	}

	campaigns := make([]lidomain.Campaign, 0, len(records))
	for _, record := range records {
		campaign := lidomain.Campaign{}
		if err := decodeRecord(record, &campaign); err != nil {
			logrus.WithFields(logrus.Fields{
				"entity":     "campaign",
				"account_id": accountID,
				"id":         record["id"],
				"error":      err.Error(),
			}).Warn("Registro de campanha inválido, ignorando")
			continue
		}

		if campaign.ID == 0 {
			logrus.WithFields(logrus.Fields{
				"entity":     "campaign",
				"account_id": accountID,
				"field":      "id",
				"value":      record["id"],
			}).Warn("Campanha sem identificador válido, ignorando")
			continue
		}

		campaign.AccountID = accountID
		campaigns = append(campaigns, campaign)
	}

	return campaigns, nil
}

// FetchCreatives retorna os criativos da conta, opcionalmente filtrados
// pelas campanhas informadas. Endpoint: GET /adAccounts/{id}/creatives?q=criteria
func (s *LinkedInIntegrator) FetchCreatives(accountID int64, campaignIDs []int64) ([]lidomain.Creative, error) {
	path := fmt.Sprintf("/adAccounts/%d/creatives", accountID)

	params := "q=criteria&sortOrder=ASCENDING"
	if len(campaignIDs) > 0 {
		params += fmt.Sprintf("&campaigns=List(%s)", lidomain.EncodedCampaignURNs(campaignIDs))
	}

	records, err := s.Client.GetAllPages(path, params, "elements", s.cfg.Sync.PageSize)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar criativos da conta %d: %w", accountID, err)
	}

	creatives := make([]lidomain.Creative, 0, len(records))
	for _, record := range records {
		creative := lidomain.Creative{}
		if err := decodeRecord(record, &creative); err != nil {
			logrus.WithFields(logrus.Fields{
				"entity":     "creative",
				"account_id": accountID,
				"id":         record["id"],
				"error":      err.Error(),
			}).Warn("Registro de criativo inválido, ignorando")
			continue
		}

		if creative.ID == "" {
			logrus.WithFields(logrus.Fields{
				"entity":     "creative",
				"account_id": accountID,
				"field":      "id",
				"value":      record["id"],
			}).Warn("Criativo sem identificador válido, ignorando")
			continue
		}

		creatives = append(creatives, creative)
	}

	return creatives, nil
}
