package domain

import "time"

// DemographicSegment é um segmento demográfico agregado dentro do snapshot,
// ordenado por impressões dentro do seu pivot
type DemographicSegment struct {
	Segment            string  `json:"segment"`
	Impressions        int64   `json:"impressions"`
	Clicks             int64   `json:"clicks"`
	CTR                float64 `json:"ctr"`
	ShareOfImpressions float64 `json:"share_of_impressions"`
}

// AudienceDemographic é a linha persistida de um segmento demográfico,
// identificada pela chave composta (account_id, pivot_type, segment, date_start)
type AudienceDemographic struct {
	AccountID   int64     `json:"account_id"`
	PivotType   string    `json:"pivot_type"`
	Segment     string    `json:"segment"`
	DateStart   string    `json:"date_start"`
	DateEnd     string    `json:"date_end,omitempty"`
	Impressions int64     `json:"impressions"`
	Clicks      int64     `json:"clicks"`
	CTR         float64   `json:"ctr"`
	SharePct    float64   `json:"share_pct"`
	FetchedAt   time.Time `json:"fetched_at,omitempty"`
}
