package models

// Ingredient is seeded reference data; the application never writes it.
// Identity is the (name, measurement_unit) pair, matching the shopping list
// grouping key.
type Ingredient struct {
	ID              int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name            string `json:"name" gorm:"uniqueIndex:idx_ingredient_name_unit;size:256;not null"`
	MeasurementUnit string `json:"measurement_unit" gorm:"uniqueIndex:idx_ingredient_name_unit;size:20;not null"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}
