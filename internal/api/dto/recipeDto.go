package dto

import (
	"foodgram/internal/api/models"
	"foodgram/internal/api/service"
	"foodgram/internal/api/validation"
)

// IngredientSpecDTO is an ingredient reference with its amount as it appears
// in recipe payloads. Both fields stay untyped; the validator coerces them
// and reports every malformed value.
type IngredientSpecDTO struct {
	ID     any `json:"id"`
	Amount any `json:"amount"`
}

// CreateRecipeDTO used for POST /api/recipes
type CreateRecipeDTO struct {
	Name        string              `json:"name" binding:"required,max=256"`
	Image       string              `json:"image" binding:"required"`
	Text        string              `json:"text" binding:"required"`
	CookingTime int                 `json:"cooking_time" binding:"required,min=1,max=720"`
	Tags        []any               `json:"tags"`
	Ingredients []IngredientSpecDTO `json:"ingredients"`
}

// UpdateRecipeDTO used for PATCH /api/recipes/:id. Scalar fields are
// optional; tags and ingredients are always replaced wholesale.
type UpdateRecipeDTO struct {
	Name        *string             `json:"name,omitempty" binding:"omitempty,max=256"`
	Image       *string             `json:"image,omitempty"`
	Text        *string             `json:"text,omitempty"`
	CookingTime *int                `json:"cooking_time,omitempty" binding:"omitempty,min=1,max=720"`
	Tags        []any               `json:"tags"`
	Ingredients []IngredientSpecDTO `json:"ingredients"`
}

type RecipeIngredientResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

type RecipeResponse struct {
	ID               int64                      `json:"id"`
	Tags             []models.Tag               `json:"tags"`
	Author           UserResponse               `json:"author"`
	Ingredients      []RecipeIngredientResponse `json:"ingredients"`
	IsFavorited      bool                       `json:"is_favorited"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
	Name             string                     `json:"name"`
	Image            string                     `json:"image"`
	Text             string                     `json:"text"`
	CookingTime      int                        `json:"cooking_time"`
}

// ShortRecipeResponse is the compact recipe shape used by toggle responses
// and subscription listings.
type ShortRecipeResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// RecipeViewFlags carries what the acting viewer knows about one recipe.
type RecipeViewFlags struct {
	IsFavorited        bool
	IsInShoppingCart   bool
	AuthorIsSubscribed bool
}

// Converters
func (d CreateRecipeDTO) ToInput() service.RecipeInput {
	return service.RecipeInput{
		Name:        d.Name,
		Image:       d.Image,
		Text:        d.Text,
		CookingTime: d.CookingTime,
		Tags:        d.Tags,
		Ingredients: toRawIngredients(d.Ingredients),
	}
}

func (d UpdateRecipeDTO) ToInput() service.RecipeUpdateInput {
	return service.RecipeUpdateInput{
		Name:        d.Name,
		Image:       d.Image,
		Text:        d.Text,
		CookingTime: d.CookingTime,
		Tags:        d.Tags,
		Ingredients: toRawIngredients(d.Ingredients),
	}
}

func toRawIngredients(specs []IngredientSpecDTO) []validation.RawIngredient {
	raw := make([]validation.RawIngredient, 0, len(specs))
	for _, spec := range specs {
		raw = append(raw, validation.RawIngredient{ID: spec.ID, Amount: spec.Amount})
	}
	return raw
}

func FromRecipeToResponse(r models.Recipe, flags RecipeViewFlags) RecipeResponse {
	ingredients := make([]RecipeIngredientResponse, 0, len(r.Ingredients))
	for _, item := range r.Ingredients {
		resp := RecipeIngredientResponse{
			ID:     item.IngredientID,
			Amount: item.Amount,
		}
		if item.Ingredient != nil {
			resp.Name = item.Ingredient.Name
			resp.MeasurementUnit = item.Ingredient.MeasurementUnit
		}
		ingredients = append(ingredients, resp)
	}

	var author UserResponse
	if r.Author != nil {
		author = FromUserToResponse(*r.Author, flags.AuthorIsSubscribed)
	}

	tags := r.Tags
	if tags == nil {
		tags = []models.Tag{}
	}

	return RecipeResponse{
		ID:               r.ID,
		Tags:             tags,
		Author:           author,
		Ingredients:      ingredients,
		IsFavorited:      flags.IsFavorited,
		IsInShoppingCart: flags.IsInShoppingCart,
		Name:             r.Name,
		Image:            r.Image,
		Text:             r.Text,
		CookingTime:      r.CookingTime,
	}
}

func FromRecipeToShortResponse(r models.Recipe) ShortRecipeResponse {
	return ShortRecipeResponse{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.Image,
		CookingTime: r.CookingTime,
	}
}
