package models

// ListQuery is the normalized query the BFF sends to the platform listing
// endpoints. Empty From/To means no date bound.
type ListQuery struct {
	Search string `json:"search,omitempty"`
	Status string `json:"status,omitempty"`
	From   string `json:"from,omitempty"`
	To     string `json:"to,omitempty"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}
