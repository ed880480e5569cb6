package domain

import "time"

// Creative representa um criativo vinculado a exatamente uma campanha.
// O ID é a URN completa do criativo (urn:li:sponsoredCreative:123).
type Creative struct {
	ID                   string    `json:"id"`
	CampaignID           int64     `json:"campaign_id"`
	AccountID            int64     `json:"account_id"`
	IntendedStatus       string    `json:"intended_status,omitempty"`
	IsServing            bool      `json:"is_serving"`
	ServingHoldReasons   []string  `json:"serving_hold_reasons,omitempty"`
	ContentReference     string    `json:"content_reference,omitempty"`
	ContentLabel         string    `json:"content_label,omitempty"`
	CreatedAtMillis      int64     `json:"created_at,omitempty"`
	LastModifiedAtMillis int64     `json:"last_modified_at,omitempty"`
	FetchedAt            time.Time `json:"fetched_at,omitempty"`
}
