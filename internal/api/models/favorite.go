package models

import "time"

type Favorite struct {
	ID       int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   int64     `gorm:"uniqueIndex:idx_favorite_user_recipe;not null" json:"user_id"`
	RecipeID int64     `gorm:"uniqueIndex:idx_favorite_user_recipe;not null" json:"recipe_id"`
	AddedAt  time.Time `gorm:"autoCreateTime" json:"added_at"`

	User   *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"recipe,omitempty"`
}

func (Favorite) TableName() string {
	return "favorites"
}
