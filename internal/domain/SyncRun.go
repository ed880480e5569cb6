package domain

import "time"

// SyncRunStatus representa o estado de uma execução de sincronização
type SyncRunStatus string

const (
	SyncRunStatusRunning SyncRunStatus = "running"
	SyncRunStatusSuccess SyncRunStatus = "success"
	SyncRunStatusPartial SyncRunStatus = "partial"
	SyncRunStatusFailed  SyncRunStatus = "failed"
	SyncRunStatusSkipped SyncRunStatus = "skipped"
)

// SyncTrigger indica como a sincronização foi disparada
type SyncTrigger string

const (
	SyncTriggerOnDemand  SyncTrigger = "on-demand"
	SyncTriggerScheduled SyncTrigger = "scheduled"
)

// SyncRunStats acumula os contadores de uma execução
type SyncRunStats struct {
	AccountsFetched   int `json:"accounts_fetched"`
	CampaignsFetched  int `json:"campaigns_fetched"`
	CreativesFetched  int `json:"creatives_fetched"`
	MetricRowsFetched int `json:"metric_rows_fetched"`
	RowsWritten       int `json:"rows_written"`
}

// SyncRun é o registro de auditoria de uma tentativa de sincronização.
// Uma linha por execução, somente inserção: é a trilha que responde
// "o que aconteceu e quando".
type SyncRun struct {
	ID           int64         `json:"id"`
	AccountScope string        `json:"account_scope"`
	StartedAt    time.Time     `json:"started_at"`
	FinishedAt   *time.Time    `json:"finished_at,omitempty"`
	Status       SyncRunStatus `json:"status"`
	Trigger      SyncTrigger   `json:"trigger"`
	Stats        SyncRunStats  `json:"stats"`
	Errors       []string      `json:"errors,omitempty"`
}
