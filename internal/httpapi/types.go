package httpapi

import "postcheck-engine/internal/store"

type RunDetail struct {
	Run      store.Run       `json:"run"`
	Postings []store.Posting `json:"postings"`
}

type HealthStatus struct {
	OK      bool   `json:"ok"`
	Store   bool   `json:"store"`
	Variant string `json:"variant"`
}
