package dto

// PageResponse wraps a paginated collection.
type PageResponse struct {
	Count   int64 `json:"count"`
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Results any   `json:"results"`
}
