package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"foodgram/internal/api/dto"
	"foodgram/internal/api/middleware"
	"foodgram/internal/api/repository"
	"foodgram/internal/api/service"
	"foodgram/internal/pdf"
	"foodgram/internal/shortlink"

	"github.com/gin-gonic/gin"
)

type RecipeHandler struct {
	recipeService service.RecipeService
	favorites     service.RecipeToggleService
	cart          service.RecipeToggleService
	subscriptions service.SubscriptionService
	shoppingList  service.ShoppingListService
	codec         *shortlink.Codec
	shortLinkPath string

	defaultPageSize int
}

func NewRecipeHandler(
	recipeService service.RecipeService,
	favorites, cart service.RecipeToggleService,
	subscriptions service.SubscriptionService,
	shoppingList service.ShoppingListService,
	codec *shortlink.Codec,
	shortLinkPath string,
	defaultPageSize int,
) *RecipeHandler {
	return &RecipeHandler{
		recipeService:   recipeService,
		favorites:       favorites,
		cart:            cart,
		subscriptions:   subscriptions,
		shoppingList:    shoppingList,
		codec:           codec,
		shortLinkPath:   shortLinkPath,
		defaultPageSize: defaultPageSize,
	}
}

// RegisterRoutes wires the recipe endpoints. PUT is deliberately not
// registered: recipe updates are PATCH-only with full tag/ingredient
// replacement.
func (h *RecipeHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth, optionalAuth gin.HandlerFunc) {
	rg.GET("/", optionalAuth, h.List)
	rg.GET("/download_shopping_cart", requireAuth, h.DownloadShoppingCart)
	rg.GET("/:id", optionalAuth, h.GetByID)
	rg.POST("/", requireAuth, h.Create)
	rg.PATCH("/:id", requireAuth, h.Update)
	rg.DELETE("/:id", requireAuth, h.Delete)
	rg.GET("/:id/get-link", h.GetLink)
	rg.POST("/:id/favorite", requireAuth, h.AddFavorite)
	rg.DELETE("/:id/favorite", requireAuth, h.RemoveFavorite)
	rg.POST("/:id/shopping_cart", requireAuth, h.AddToCart)
	rg.DELETE("/:id/shopping_cart", requireAuth, h.RemoveFromCart)
}

// viewerFlags resolves the per-viewer sets needed to render is_favorited,
// is_in_shopping_cart and the author's is_subscribed. Anonymous viewers get
// empty sets.
func (h *RecipeHandler) viewerFlags(c *gin.Context) (favorited, inCart, following map[int64]bool, err error) {
	favorited, inCart, following = map[int64]bool{}, map[int64]bool{}, map[int64]bool{}

	viewerID, ok := middleware.UserID(c)
	if !ok {
		return favorited, inCart, following, nil
	}

	ctx := c.Request.Context()
	favIDs, err := h.favorites.RecipeIDs(ctx, viewerID)
	if err != nil {
		return nil, nil, nil, err
	}
	cartIDs, err := h.cart.RecipeIDs(ctx, viewerID)
	if err != nil {
		return nil, nil, nil, err
	}
	followingIDs, err := h.subscriptions.FollowingIDs(ctx, viewerID)
	if err != nil {
		return nil, nil, nil, err
	}
	return idSet(favIDs), idSet(cartIDs), idSet(followingIDs), nil
}

// listFilter builds the repository filter from the query string. is_favorited
// and is_in_shopping_cart only narrow the list for authenticated viewers, as
// anonymous users have neither set.
func listFilter(c *gin.Context) repository.RecipeFilter {
	var filter repository.RecipeFilter

	if v, err := strconv.ParseInt(c.Query("author"), 10, 64); err == nil {
		filter.AuthorID = &v
	}
	if slugs := c.QueryArray("tags"); len(slugs) > 0 {
		filter.TagSlugs = slugs
	}

	viewerID, ok := middleware.UserID(c)
	if !ok {
		return filter
	}
	if c.Query("is_favorited") == "1" {
		filter.FavoritedBy = &viewerID
	}
	if c.Query("is_in_shopping_cart") == "1" {
		filter.InCartOf = &viewerID
	}
	return filter
}

func (h *RecipeHandler) List(c *gin.Context) {
	page, limit := pageParams(c, h.defaultPageSize)

	recipes, total, err := h.recipeService.List(c.Request.Context(), listFilter(c), page, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	favorited, inCart, following, err := h.viewerFlags(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	results := make([]dto.RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		results = append(results, dto.FromRecipeToResponse(r, dto.RecipeViewFlags{
			IsFavorited:        favorited[r.ID],
			IsInShoppingCart:   inCart[r.ID],
			AuthorIsSubscribed: following[r.AuthorID],
		}))
	}

	c.JSON(http.StatusOK, dto.PageResponse{
		Count:   total,
		Page:    page,
		Limit:   limit,
		Results: results,
	})
}

func (h *RecipeHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipeService.GetByID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	favorited, inCart, following, err := h.viewerFlags(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromRecipeToResponse(*recipe, dto.RecipeViewFlags{
		IsFavorited:        favorited[recipe.ID],
		IsInShoppingCart:   inCart[recipe.ID],
		AuthorIsSubscribed: following[recipe.AuthorID],
	}))
}

func (h *RecipeHandler) Create(c *gin.Context) {
	authorID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.CreateRecipeDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipeService.Create(c.Request.Context(), authorID, req.ToInput())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromRecipeToResponse(*recipe, dto.RecipeViewFlags{}))
}

func (h *RecipeHandler) Update(c *gin.Context) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var req dto.UpdateRecipeDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipeService.Update(c.Request.Context(), actorID, id, req.ToInput())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	favorited, inCart, following, err := h.viewerFlags(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromRecipeToResponse(*recipe, dto.RecipeViewFlags{
		IsFavorited:        favorited[recipe.ID],
		IsInShoppingCart:   inCart[recipe.ID],
		AuthorIsSubscribed: following[recipe.AuthorID],
	}))
}

func (h *RecipeHandler) Delete(c *gin.Context) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if err := h.recipeService.Delete(c.Request.Context(), actorID, id); err != nil {
		writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetLink returns the stable short URL for a recipe. The recipe must exist;
// the token itself is derived from the id, not stored.
func (h *RecipeHandler) GetLink(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if _, err := h.recipeService.GetByID(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}

	token, err := h.codec.Encode(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	c.JSON(http.StatusOK, gin.H{
		"short-link": fmt.Sprintf("%s://%s/%s/%s/", scheme, c.Request.Host, h.shortLinkPath, token),
	})
}

func (h *RecipeHandler) toggleAdd(c *gin.Context, svc service.RecipeToggleService) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := svc.Add(c.Request.Context(), userID, id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromRecipeToShortResponse(*recipe))
}

func (h *RecipeHandler) toggleRemove(c *gin.Context, svc service.RecipeToggleService) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if err := svc.Remove(c.Request.Context(), userID, id); err != nil {
		writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) AddFavorite(c *gin.Context)    { h.toggleAdd(c, h.favorites) }
func (h *RecipeHandler) RemoveFavorite(c *gin.Context) { h.toggleRemove(c, h.favorites) }
func (h *RecipeHandler) AddToCart(c *gin.Context)      { h.toggleAdd(c, h.cart) }
func (h *RecipeHandler) RemoveFromCart(c *gin.Context) { h.toggleRemove(c, h.cart) }

func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	items, err := h.shoppingList.ShoppingList(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	lines := make([]pdf.Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, pdf.Line{
			Name:            item.Name,
			MeasurementUnit: item.MeasurementUnit,
			Amount:          item.Amount,
		})
	}

	doc, err := pdf.Render(lines)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", pdf.Filename))
	c.Data(http.StatusOK, "application/pdf", doc)
}
