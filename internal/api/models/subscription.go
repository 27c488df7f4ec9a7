package models

import "time"

// Subscription links a follower to the author they follow. follower != following
// is checked in the service layer, not by a constraint.
type Subscription struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FollowerID  int64     `gorm:"uniqueIndex:idx_subscription_pair;not null" json:"follower_id"`
	FollowingID int64     `gorm:"uniqueIndex:idx_subscription_pair;not null" json:"following_id"`
	AddedAt     time.Time `gorm:"autoCreateTime" json:"added_at"`

	Follower  *User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Following *User `gorm:"foreignKey:FollowingID" json:"following,omitempty"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
