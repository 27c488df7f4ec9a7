package handler

import (
	"errors"
	"fmt"
	"net/http"

	"foodgram/internal/api/service"
	"foodgram/internal/shortlink"

	"github.com/gin-gonic/gin"
)

// ShortLinkHandler resolves short recipe URLs back to the API detail route.
type ShortLinkHandler struct {
	recipeService service.RecipeService
	codec         *shortlink.Codec
}

func NewShortLinkHandler(recipeService service.RecipeService, codec *shortlink.Codec) *ShortLinkHandler {
	return &ShortLinkHandler{recipeService: recipeService, codec: codec}
}

func (h *ShortLinkHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:token", h.Redirect)
}

// Redirect turns a short token into a 302 to the recipe detail endpoint.
// Malformed tokens, tokens minted with a different salt, and tokens for
// deleted recipes all answer 404.
func (h *ShortLinkHandler) Redirect(c *gin.Context) {
	id, ok := h.codec.Decode(c.Param("token"))
	if !ok {
		c.String(http.StatusNotFound, "unknown short link")
		return
	}

	if _, err := h.recipeService.GetByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			c.String(http.StatusNotFound, "unknown short link")
			return
		}
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/api/recipes/%d/", id))
}
