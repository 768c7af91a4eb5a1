package dto

// Page is the envelope every paginated listing is returned in.
type Page[T any] struct {
	Data  []T   `json:"data"`
	Total int64 `json:"total"`
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

// RecomputeResponse reports how many hoagies had their count recomputed.
type RecomputeResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}
