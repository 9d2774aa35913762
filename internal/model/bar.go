package model

import (
	"time"

	"bar-status-backend/internal/status"
)

// Bar is the per-venue aggregate the engine consumes and produces. The
// weekly schedule is stored as a JSON document column; everything else is
// flat so the reconciler can query and update it cheaply.
type Bar struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:256;not null" json:"name"`

	Schedule status.WeeklySchedule `gorm:"serializer:json" json:"weeklySchedule"`

	IsFollowingSchedule bool              `gorm:"not null;default:true" json:"isFollowingSchedule"`
	ManualStatus        *status.BarStatus `gorm:"size:32" json:"manualStatus"`

	TransitionFireAt *time.Time        `json:"-"`
	TransitionTarget *status.BarStatus `gorm:"size:32" json:"-"`
	TransitionActive bool              `gorm:"not null;default:false" json:"-"`

	// LastStatus is the effective status recorded on the previous
	// reconciliation pass; the changed set is computed against it.
	LastStatus status.BarStatus `gorm:"size:32" json:"lastStatus"`

	// Invalid flags a malformed schedule. The bar still resolves to
	// closed; the flag is advisory for the owner surface.
	Invalid bool `gorm:"not null;default:false" json:"invalid"`

	LastUpdated time.Time `json:"lastUpdated"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Associations
	Subscriptions []*PushSubscription `gorm:"many2many:subscription_bar_mapping;" json:"-"`
}

// AutoTransition is the wire form of a pending delayed status change.
type AutoTransition struct {
	FireAt       time.Time        `json:"fireAt"`
	TargetStatus status.BarStatus `json:"targetStatus"`
	IsActive     bool             `json:"isActive"`
}

// AutoTransition returns the pending transition, or nil when none is set.
func (b *Bar) AutoTransition() *AutoTransition {
	if !b.TransitionActive || b.TransitionFireAt == nil || b.TransitionTarget == nil {
		return nil
	}
	return &AutoTransition{
		FireAt:       *b.TransitionFireAt,
		TargetStatus: *b.TransitionTarget,
		IsActive:     true,
	}
}
