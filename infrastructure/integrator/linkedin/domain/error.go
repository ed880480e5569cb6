package lidomain

import "fmt"

// APIError representa uma resposta não-2xx da API REST do LinkedIn.
// Carrega o status, o endpoint e o corpo decodificado (ou o texto bruto
// truncado) para diagnóstico. Esta camada não faz retry.
type APIError struct {
	Message    string
	StatusCode int
	Endpoint   string
	Response   map[string]interface{}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("linkedin api: %s (status %d, endpoint %s)", e.Message, e.StatusCode, e.Endpoint)
}

// RateLimitError representa uma resposta HTTP 429. RetryAfterSeconds é
// preenchido a partir do header Retry-After quando presente; nil caso
// contrário. A política de retry/backoff é responsabilidade de quem chama.
type RateLimitError struct {
	Endpoint          string
	RetryAfterSeconds *int
}

func (e *RateLimitError) Error() string {
	if e.RetryAfterSeconds != nil {
		return fmt.Sprintf("linkedin api: rate limit excedido no endpoint %s (retry em %ds)", e.Endpoint, *e.RetryAfterSeconds)
	}
	return fmt.Sprintf("linkedin api: rate limit excedido no endpoint %s", e.Endpoint)
}
