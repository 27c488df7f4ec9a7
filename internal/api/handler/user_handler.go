package handler

import (
	"net/http"
	"strconv"

	"foodgram/internal/api/dto"
	"foodgram/internal/api/middleware"
	"foodgram/internal/api/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService     service.UserService
	subscriptions   service.SubscriptionService
	defaultPageSize int
}

func NewUserHandler(userService service.UserService, subscriptions service.SubscriptionService, defaultPageSize int) *UserHandler {
	return &UserHandler{
		userService:     userService,
		subscriptions:   subscriptions,
		defaultPageSize: defaultPageSize,
	}
}

// RegisterRoutes wires the user endpoints. requireAuth guards the endpoints
// that act on behalf of a user; optionalAuth only resolves the viewer so
// is_subscribed can be computed on public reads.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth, optionalAuth gin.HandlerFunc) {
	rg.GET("/", optionalAuth, h.List)
	rg.GET("/me", requireAuth, h.Me)
	rg.GET("/subscriptions", requireAuth, h.Subscriptions)
	rg.GET("/:id", optionalAuth, h.GetByID)
	rg.PUT("/me/avatar", requireAuth, h.SetAvatar)
	rg.DELETE("/me/avatar", requireAuth, h.DeleteAvatar)
	rg.POST("/:id/subscribe", requireAuth, h.Subscribe)
	rg.DELETE("/:id/subscribe", requireAuth, h.Unsubscribe)
}

func (h *UserHandler) List(c *gin.Context) {
	page, limit := pageParams(c, h.defaultPageSize)

	users, total, err := h.userService.List(c.Request.Context(), page, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	following := map[int64]bool{}
	if viewerID, ok := middleware.UserID(c); ok {
		ids, err := h.subscriptions.FollowingIDs(c.Request.Context(), viewerID)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		following = idSet(ids)
	}

	results := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		results = append(results, dto.FromUserToResponse(u, following[u.ID]))
	}

	c.JSON(http.StatusOK, dto.PageResponse{
		Count:   total,
		Page:    page,
		Limit:   limit,
		Results: results,
	})
}

func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	isSubscribed := false
	if viewerID, ok := middleware.UserID(c); ok {
		ids, err := h.subscriptions.FollowingIDs(c.Request.Context(), viewerID)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		isSubscribed = idSet(ids)[id]
	}

	c.JSON(http.StatusOK, dto.FromUserToResponse(*user, isSubscribed))
}

func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromUserToResponse(*user, false))
}

func (h *UserHandler) SetAvatar(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.AvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.userService.SetAvatar(c.Request.Context(), userID, req.Avatar); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar": req.Avatar})
}

func (h *UserHandler) DeleteAvatar(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.userService.DeleteAvatar(c.Request.Context(), userID); err != nil {
		writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// recipesLimit reads the recipes_limit query parameter used by the
// subscription representation; negative means "no limit".
func recipesLimit(c *gin.Context) int {
	v, err := strconv.Atoi(c.Query("recipes_limit"))
	if err != nil || v < 0 {
		return -1
	}
	return v
}

func (h *UserHandler) Subscribe(c *gin.Context) {
	followerID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	followingID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	target, err := h.subscriptions.Subscribe(c.Request.Context(), followerID, followingID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromUserToSubscriptionResponse(*target, recipesLimit(c)))
}

func (h *UserHandler) Unsubscribe(c *gin.Context) {
	followerID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	followingID, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.subscriptions.Unsubscribe(c.Request.Context(), followerID, followingID); err != nil {
		writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) Subscriptions(c *gin.Context) {
	followerID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	page, limit := pageParams(c, h.defaultPageSize)
	users, total, err := h.subscriptions.Subscriptions(c.Request.Context(), followerID, page, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	perUser := recipesLimit(c)
	results := make([]dto.SubscriptionResponse, 0, len(users))
	for _, u := range users {
		results = append(results, dto.FromUserToSubscriptionResponse(u, perUser))
	}

	c.JSON(http.StatusOK, dto.PageResponse{
		Count:   total,
		Page:    page,
		Limit:   limit,
		Results: results,
	})
}
