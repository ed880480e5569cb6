package linkedin

import (
	"time"

	"github.com/mitchellh/mapstructure"
	lidomain "github.com/vfg2006/linkedin-ads-api/infrastructure/integrator/linkedin/domain"
	"github.com/vfg2006/linkedin-ads-api/infrastructure/integrator/linkedin/linkedinclient"
	"github.com/vfg2006/linkedin-ads-api/internal/config"
)

// Integrator é a fachada de ingestão da API de anúncios do LinkedIn
type Integrator interface {
	FetchAdAccounts() ([]lidomain.AdAccount, error)
	FetchCampaigns(accountID int64) ([]lidomain.Campaign, error)
	FetchCreatives(accountID int64, campaignIDs []int64) ([]lidomain.Creative, error)
	FetchCampaignMetrics(campaignIDs []int64, start, end time.Time) ([]lidomain.MetricRow, error)
	FetchCreativeMetrics(campaignIDs []int64, start, end time.Time) ([]lidomain.MetricRow, error)
	FetchDemographics(campaignIDs []int64, start, end time.Time) (map[string][]lidomain.MetricRow, []string)
}

// LinkedInIntegrator implementa Integrator sobre o Client de baixo nível.
//
// O semáforo limita o número de requisições simultâneas em um sync; o
// limite é compartilhado por todos os fetchers (chunks de métricas e
// pivots demográficos competem pelo mesmo limite), evitando fan-out
// ilimitado quando a lista de contas é grande.
type LinkedInIntegrator struct {
	cfg       *config.Config
	Client    linkedinclient.Client
	semaphore chan struct{}
}

func New(cfg *config.Config, client linkedinclient.Client) *LinkedInIntegrator {
	maxConcurrent := cfg.Sync.MaxConcurrentRequests
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	return &LinkedInIntegrator{
		cfg:       cfg,
		Client:    client,
		semaphore: make(chan struct{}, maxConcurrent),
	}
}

func (s *LinkedInIntegrator) acquire() {
	s.semaphore <- struct{}{}
}

func (s *LinkedInIntegrator) release() {
	<-s.semaphore
}

// decodeRecord converte um registro bruto da API em um modelo tipado.
// Campos desconhecidos são ignorados; tipos fracos (número como string,
// int como float) são tolerados para compatibilidade com mudanças da API.
func decodeRecord(input map[string]interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(input)
}

// chunkIDs divide a lista de identificadores em lotes de tamanho fixo
// para que as URNs caibam na URL sem estourar limites de tamanho
func chunkIDs(ids []int64, size int) [][]int64 {
	if size <= 0 {
		size = 1
	}

	chunks := make([][]int64, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}

	return chunks
}
