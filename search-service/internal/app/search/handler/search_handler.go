package handler

import (
	"net/http"

	"miniecom/pkg/search"
	"miniecom/search-service/internal/app/search/service"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	searchService service.SearchServiceInterface
}

func NewSearchHandler(searchService service.SearchServiceInterface) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Search - GET /api/search?q=&trend=&price=&sort=&page=
// Некорректные параметры не приводят к ошибке: используются значения по умолчанию
func (h *SearchHandler) Search(c *gin.Context) {
	req := search.ParseRequest(c.Request.URL.Query())
	result := h.searchService.Search(c.Request.Context(), req)
	c.JSON(http.StatusOK, result)
}
