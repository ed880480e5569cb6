package domain

import "time"

// AdAccountStatus representa o status de uma conta de anúncios no LinkedIn
type AdAccountStatus string

const (
	AdAccountStatusActive   AdAccountStatus = "ACTIVE"
	AdAccountStatusPaused   AdAccountStatus = "PAUSED"
	AdAccountStatusDraft    AdAccountStatus = "DRAFT"
	AdAccountStatusArchived AdAccountStatus = "ARCHIVED"
	AdAccountStatusCanceled AdAccountStatus = "CANCELED"
)

// AdAccount representa uma conta de anúncios sincronizada do LinkedIn.
// O ID é o identificador externo estável da conta; a pipeline nunca
// remove contas, apenas insere e atualiza.
type AdAccount struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Status    AdAccountStatus `json:"status"`
	Currency  string          `json:"currency,omitempty"`
	Type      string          `json:"type,omitempty"`
	Test      bool            `json:"test"`
	CreatedAt time.Time       `json:"created_at,omitempty"`
	FetchedAt time.Time       `json:"fetched_at,omitempty"`
}
