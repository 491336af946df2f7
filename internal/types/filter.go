package types

import (
	"time"

	ierr "github.com/chestno/chestno/internal/errors"
	"github.com/samber/lo"
)

const (
	FILTER_DEFAULT_LIMIT  = 50
	FILTER_DEFAULT_STATUS = string(StatusPublished)
	FILTER_DEFAULT_SORT   = "created_at"
	FILTER_DEFAULT_ORDER  = "desc"

	OrderDesc = "desc"
	OrderAsc  = "asc"
)

// BaseFilter defines common filtering capabilities
type BaseFilter interface {
	GetLimit() int
	GetOffset() int
	GetStatus() string
	GetSort() string
	GetOrder() string
	Validate() error
	IsUnlimited() bool
}

// QueryFilter represents a generic query filter with optional fields
type QueryFilter struct {
	Limit  *int    `json:"limit,omitempty" form:"limit"`
	Offset *int    `json:"offset,omitempty" form:"offset"`
	Status *Status `json:"status,omitempty" form:"status"`
	Sort   *string `json:"sort,omitempty" form:"sort"`
	Order  *string `json:"order,omitempty" form:"order"`
}

// NewDefaultQueryFilter creates a new QueryFilter with default values
func NewDefaultQueryFilter() *QueryFilter {
	return &QueryFilter{
		Limit:  lo.ToPtr(FILTER_DEFAULT_LIMIT),
		Offset: lo.ToPtr(0),
		Status: lo.ToPtr(StatusPublished),
		Sort:   lo.ToPtr(FILTER_DEFAULT_SORT),
		Order:  lo.ToPtr(FILTER_DEFAULT_ORDER),
	}
}

// NewNoLimitQueryFilter creates a new QueryFilter with no pagination limits
func NewNoLimitQueryFilter() *QueryFilter {
	return &QueryFilter{
		Status: lo.ToPtr(StatusPublished),
		Sort:   lo.ToPtr(FILTER_DEFAULT_SORT),
		Order:  lo.ToPtr(FILTER_DEFAULT_ORDER),
	}
}

// GetLimit returns the limit value or default if not set
func (f QueryFilter) GetLimit() int {
	if f.Limit == nil {
		return FILTER_DEFAULT_LIMIT
	}
	return *f.Limit
}

// GetOffset returns the offset value or default if not set
func (f QueryFilter) GetOffset() int {
	if f.Offset == nil {
		return 0
	}
	return *f.Offset
}

// GetStatus returns the status value or default if not set
func (f QueryFilter) GetStatus() string {
	if f.Status == nil {
		return FILTER_DEFAULT_STATUS
	}
	return string(*f.Status)
}

// GetSort returns the sort value or default if not set
func (f QueryFilter) GetSort() string {
	if f.Sort == nil {
		return FILTER_DEFAULT_SORT
	}
	return *f.Sort
}

// GetOrder returns the order value or default if not set
func (f QueryFilter) GetOrder() string {
	if f.Order == nil {
		return FILTER_DEFAULT_ORDER
	}
	return *f.Order
}

// IsUnlimited returns true when no pagination limit is set
func (f QueryFilter) IsUnlimited() bool {
	return f.Limit == nil
}

// Validate validates the query filter
func (f QueryFilter) Validate() error {
	if f.Limit != nil && *f.Limit < 0 {
		return ierr.NewError("limit must be non-negative").
			WithHint("Limit must be non-negative").
			Mark(ierr.ErrValidation)
	}
	if f.Offset != nil && *f.Offset < 0 {
		return ierr.NewError("offset must be non-negative").
			WithHint("Offset must be non-negative").
			Mark(ierr.ErrValidation)
	}
	if f.Order != nil && *f.Order != OrderAsc && *f.Order != OrderDesc {
		return ierr.NewError("invalid sort order").
			WithHint("Order must be asc or desc").
			WithReportableDetails(map[string]any{
				"order": *f.Order,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// TimeRangeFilter filters results by a created_at window
type TimeRangeFilter struct {
	StartTime *time.Time `json:"start_time,omitempty" form:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty" form:"end_time"`
}

// Validate validates the time range filter
func (f TimeRangeFilter) Validate() error {
	if f.StartTime != nil && f.EndTime != nil && f.EndTime.Before(*f.StartTime) {
		return ierr.NewError("end_time must not be before start_time").
			WithHint("End time must not be before start time").
			Mark(ierr.ErrValidation)
	}
	return nil
}
