package dto

import "foodgram/internal/api/models"

type UserResponse struct {
	Email        string  `json:"email"`
	ID           int64   `json:"id"`
	Username     string  `json:"username"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Avatar       *string `json:"avatar,omitempty"`
	IsSubscribed bool    `json:"is_subscribed"`
}

// SubscriptionResponse is a followed user plus a slice of their recipes.
type SubscriptionResponse struct {
	UserResponse
	Recipes      []ShortRecipeResponse `json:"recipes"`
	RecipesCount int                   `json:"recipes_count"`
}

type AvatarRequest struct {
	Avatar string `json:"avatar" binding:"required"`
}

func FromUserToResponse(u models.User, isSubscribed bool) UserResponse {
	return UserResponse{
		Email:        u.Email,
		ID:           u.ID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Avatar:       u.Avatar,
		IsSubscribed: isSubscribed,
	}
}

// FromUserToSubscriptionResponse renders a followed user. recipesLimit < 0
// means "all recipes"; the count always reflects the full set.
func FromUserToSubscriptionResponse(u models.User, recipesLimit int) SubscriptionResponse {
	recipes := u.Recipes
	if recipesLimit >= 0 && recipesLimit < len(recipes) {
		recipes = recipes[:recipesLimit]
	}

	short := make([]ShortRecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		short = append(short, FromRecipeToShortResponse(r))
	}

	return SubscriptionResponse{
		UserResponse: FromUserToResponse(u, true),
		Recipes:      short,
		RecipesCount: len(u.Recipes),
	}
}
