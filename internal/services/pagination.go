package services

import (
	"math"

	"hoagiehub/config"
	"hoagiehub/internal/apperror"
	"hoagiehub/internal/models"
)

// NewPageQuery validates a 1-based page request and clamps limit to
// config.MaxLimit.
func NewPageQuery(page, limit int64) (models.PageQuery, error) {
	if page < 1 {
		return models.PageQuery{}, apperror.Validation("page must be a positive integer")
	}
	if limit < 1 {
		return models.PageQuery{}, apperror.Validation("limit must be a positive integer")
	}
	if limit > config.MaxLimit {
		limit = config.MaxLimit
	}
	if page-1 > math.MaxInt64/limit {
		return models.PageQuery{}, apperror.Validation("page is too large")
	}
	return models.PageQuery{Page: page, Limit: limit}, nil
}
