package types

import (
	ierr "github.com/chestno/chestno/internal/errors"
	"github.com/samber/lo"
)

// StatusLevel is the tier of an organization's public trust badge.
// Level A is subscription-driven; levels B and C are content-freshness
// driven and managed by a separate lifecycle.
type StatusLevel string

const (
	StatusLevelA StatusLevel = "A"
	StatusLevelB StatusLevel = "B"
	StatusLevelC StatusLevel = "C"

	// StatusLevelNone is the derived level of an organization with no
	// active grant. It is never persisted in the ledger.
	StatusLevelNone StatusLevel = "none"
)

var StatusLevelValues = []StatusLevel{
	StatusLevelA,
	StatusLevelB,
	StatusLevelC,
}

func (l StatusLevel) String() string {
	return string(l)
}

// Rank orders levels for summary computation: C > B > A > none.
func (l StatusLevel) Rank() int {
	switch l {
	case StatusLevelC:
		return 3
	case StatusLevelB:
		return 2
	case StatusLevelA:
		return 1
	default:
		return 0
	}
}

func (l StatusLevel) Validate() error {
	if !lo.Contains(StatusLevelValues, l) {
		return ierr.NewError("invalid status level").
			WithHint("Status level must be A, B or C").
			WithReportableDetails(map[string]any{
				"level":          l,
				"allowed_levels": StatusLevelValues,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// HighestStatusLevel returns the highest-ranked level, or StatusLevelNone
// when the slice is empty.
func HighestStatusLevel(levels []StatusLevel) StatusLevel {
	highest := StatusLevelNone
	for _, l := range levels {
		if l.Rank() > highest.Rank() {
			highest = l
		}
	}
	return highest
}

// StatusHistoryAction is the kind of transition recorded in the audit trail.
type StatusHistoryAction string

const (
	StatusHistoryActionGranted     StatusHistoryAction = "granted"
	StatusHistoryActionAutoGranted StatusHistoryAction = "auto_granted"
	StatusHistoryActionRenewed     StatusHistoryAction = "renewed"
	StatusHistoryActionSuspended   StatusHistoryAction = "suspended"
	StatusHistoryActionRevoked     StatusHistoryAction = "revoked"
)

var StatusHistoryActionValues = []StatusHistoryAction{
	StatusHistoryActionGranted,
	StatusHistoryActionAutoGranted,
	StatusHistoryActionRenewed,
	StatusHistoryActionSuspended,
	StatusHistoryActionRevoked,
}

func (a StatusHistoryAction) String() string {
	return string(a)
}

func (a StatusHistoryAction) Validate() error {
	if !lo.Contains(StatusHistoryActionValues, a) {
		return ierr.NewError("invalid status history action").
			WithHint("Invalid status history action").
			WithReportableDetails(map[string]any{
				"action":          a,
				"allowed_actions": StatusHistoryActionValues,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// StatusLevelGrantFilter represents filters for grant ledger queries
type StatusLevelGrantFilter struct {
	*QueryFilter

	// OrganizationID filters by organization ID
	OrganizationID string `json:"organization_id,omitempty" form:"organization_id"`
	// Level filters by status level
	Level *StatusLevel `json:"level,omitempty" form:"level"`
	// IsActive filters by the grant's active flag
	IsActive *bool `json:"is_active,omitempty" form:"is_active"`
	// SubscriptionID filters by the grant's subscription binding
	SubscriptionID *string `json:"subscription_id,omitempty" form:"subscription_id"`
}

// NewNoLimitStatusLevelGrantFilter creates a grant filter with no pagination limits
func NewNoLimitStatusLevelGrantFilter() *StatusLevelGrantFilter {
	return &StatusLevelGrantFilter{
		QueryFilter: NewNoLimitQueryFilter(),
	}
}

func (f StatusLevelGrantFilter) Validate() error {
	if f.QueryFilter != nil {
		if err := f.QueryFilter.Validate(); err != nil {
			return err
		}
	}
	if f.Level != nil {
		if err := f.Level.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// GetLimit implements BaseFilter interface
func (f *StatusLevelGrantFilter) GetLimit() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

// GetOffset implements BaseFilter interface
func (f *StatusLevelGrantFilter) GetOffset() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOffset()
	}
	return f.QueryFilter.GetOffset()
}

// GetSort implements BaseFilter interface
func (f *StatusLevelGrantFilter) GetSort() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetSort()
	}
	return f.QueryFilter.GetSort()
}

// GetOrder implements BaseFilter interface
func (f *StatusLevelGrantFilter) GetOrder() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOrder()
	}
	return f.QueryFilter.GetOrder()
}

// GetStatus implements BaseFilter interface
func (f *StatusLevelGrantFilter) GetStatus() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetStatus()
	}
	return f.QueryFilter.GetStatus()
}

func (f *StatusLevelGrantFilter) IsUnlimited() bool {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().IsUnlimited()
	}
	return f.QueryFilter.IsUnlimited()
}

// StatusHistoryFilter represents filters for audit trail queries
type StatusHistoryFilter struct {
	*QueryFilter
	*TimeRangeFilter

	// OrganizationID filters by organization ID
	OrganizationID string `json:"organization_id,omitempty" form:"organization_id"`
	// Level filters by status level
	Level *StatusLevel `json:"level,omitempty" form:"level"`
	// Actions filters by transition kind
	Actions []StatusHistoryAction `json:"actions,omitempty" form:"actions"`
}

// NewStatusHistoryFilter creates a new StatusHistoryFilter with default values
func NewStatusHistoryFilter() *StatusHistoryFilter {
	return &StatusHistoryFilter{
		QueryFilter: NewDefaultQueryFilter(),
	}
}

func (f StatusHistoryFilter) Validate() error {
	if f.QueryFilter != nil {
		if err := f.QueryFilter.Validate(); err != nil {
			return err
		}
	}
	if f.TimeRangeFilter != nil {
		if err := f.TimeRangeFilter.Validate(); err != nil {
			return err
		}
	}
	for _, action := range f.Actions {
		if err := action.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// GetLimit implements BaseFilter interface
func (f *StatusHistoryFilter) GetLimit() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

// GetOffset implements BaseFilter interface
func (f *StatusHistoryFilter) GetOffset() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOffset()
	}
	return f.QueryFilter.GetOffset()
}

// GetSort implements BaseFilter interface
func (f *StatusHistoryFilter) GetSort() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetSort()
	}
	return f.QueryFilter.GetSort()
}

// GetOrder implements BaseFilter interface
func (f *StatusHistoryFilter) GetOrder() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOrder()
	}
	return f.QueryFilter.GetOrder()
}

// GetStatus implements BaseFilter interface
func (f *StatusHistoryFilter) GetStatus() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetStatus()
	}
	return f.QueryFilter.GetStatus()
}

func (f *StatusHistoryFilter) IsUnlimited() bool {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().IsUnlimited()
	}
	return f.QueryFilter.IsUnlimited()
}
