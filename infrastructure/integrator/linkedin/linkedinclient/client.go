package linkedinclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	lidomain "github.com/vfg2006/linkedin-ads-api/infrastructure/integrator/linkedin/domain"
	"github.com/vfg2006/linkedin-ads-api/internal/config"
)

const restliProtocolVersion = "2.0.0"

// Client é o cliente HTTP de baixo nível da API REST do LinkedIn.
// As queries são strings cruas já no formato Restli (List(), URNs
// codificadas) e não podem ser re-codificadas.
type Client interface {
	Get(path string, rawQuery string) (map[string]interface{}, error)
	GetAllPages(path string, rawQuery string, collectionKey string, pageSize int) ([]map[string]interface{}, error)
}

type LinkedInClient struct {
	Cfg          *config.Config
	TokenManager TokenManager
	httpClient   *http.Client
}

func NewClient(cfg *config.Config, tokenManager TokenManager) Client {
	return &LinkedInClient{
		Cfg:          cfg,
		TokenManager: tokenManager,
		httpClient:   &http.Client{Timeout: 60 * time.Second},
	}
}

// Get executa uma chamada GET autenticada e devolve o corpo decodificado.
// 429 vira RateLimitError; qualquer outro não-2xx vira APIError com o
// corpo para diagnóstico. Nenhum retry acontece nesta camada.
func (c *LinkedInClient) Get(path string, rawQuery string) (map[string]interface{}, error) {
	token, err := c.TokenManager.GetValidToken()
	if err != nil {
		return nil, fmt.Errorf("erro ao obter token de acesso: %w", err)
	}

	url := c.Cfg.LinkedIn.BaseURL + path
	if rawQuery != "" {
		url = url + "?" + rawQuery
	}

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição para %s: %w", path, err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("LinkedIn-Version", c.Cfg.LinkedIn.Version)
	req.Header.Set("X-Restli-Protocol-Version", restliProtocolVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao fazer a requisição para %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta de %s: %w", path, err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, rateLimitError(resp, path)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logrus.WithFields(logrus.Fields{
			"status":   resp.StatusCode,
			"endpoint": path,
			"response": truncate(string(body), 500),
		}).Error("Requisição à API do LinkedIn falhou")

		return nil, &lidomain.APIError{
			Message:    fmt.Sprintf("requisição falhou: %s", resp.Status),
			StatusCode: resp.StatusCode,
			Endpoint:   path,
			Response:   errorBody(resp, body),
		}
	}

	var data map[string]interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("erro ao decodificar JSON de %s: %w", path, err)
	}

	return data, nil
}

// GetAllPages drena um conjunto de resultados paginado completo.
//
// Suporta os dois protocolos de paginação da API de forma transparente:
// por offset (start/count, última página quando vierem menos itens que o
// count) e por token de continuação (metadata.nextPageToken, última
// página quando o token estiver ausente). A condição de parada é avaliada
// por página, no sinal que a resposta de fato contém.
func (c *LinkedInClient) GetAllPages(path string, rawQuery string, collectionKey string, pageSize int) ([]map[string]interface{}, error) {
	allItems := make([]map[string]interface{}, 0)
	pageToken := ""
	start := 0

	for {
		sep := ""
		if rawQuery != "" {
			sep = "&"
		}

		var paged string
		if pageToken != "" {
			paged = fmt.Sprintf("%s%spageToken=%s&count=%d", rawQuery, sep, pageToken, pageSize)
		} else {
			paged = fmt.Sprintf("%s%sstart=%d&count=%d", rawQuery, sep, start, pageSize)
		}

		data, err := c.Get(path, paged)
		if err != nil {
			return nil, err
		}

		items := collectionItems(data, collectionKey)
		allItems = append(allItems, items...)

		nextToken := nextPageToken(data)

		switch {
		case nextToken != "":
			pageToken = nextToken
		case len(items) == pageSize:
			start += pageSize
		default:
			return allItems, nil
		}
	}
}

// collectionItems extrai os elementos da coleção da resposta
func collectionItems(data map[string]interface{}, key string) []map[string]interface{} {
	raw, ok := data[key].([]interface{})
	if !ok {
		return nil
	}

	items := make([]map[string]interface{}, 0, len(raw))
	for _, entry := range raw {
		if item, ok := entry.(map[string]interface{}); ok {
			items = append(items, item)
		}
	}

	return items
}

// nextPageToken lê o token de continuação de metadata, quando presente
func nextPageToken(data map[string]interface{}) string {
	metadata, ok := data["metadata"].(map[string]interface{})
	if !ok {
		return ""
	}

	token, _ := metadata["nextPageToken"].(string)
	return token
}

func rateLimitError(resp *http.Response, path string) *lidomain.RateLimitError {
	rateErr := &lidomain.RateLimitError{Endpoint: path}

	if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
		if seconds, err := strconv.Atoi(strings.TrimSpace(retryAfter)); err == nil {
			rateErr.RetryAfterSeconds = &seconds
		}
	}

	return rateErr
}

func errorBody(resp *http.Response, body []byte) map[string]interface{} {
	contentType := resp.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		var parsed map[string]interface{}
		if err := json.Unmarshal(body, &parsed); err == nil {
			return parsed
		}
	}

	return map[string]interface{}{"text": truncate(string(body), 500)}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
