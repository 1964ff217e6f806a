package handlers

import (
	"context"
	"net/http"

	"testbank-service/internal/service"

	"github.com/gin-gonic/gin"
)

type RecordHandler struct {
	Service *service.RecordService
}

func NewRecordHandler(s *service.RecordService) *RecordHandler {
	return &RecordHandler{Service: s}
}

// GetRecordsByUser returns every attempt history for a user. No attempts is
// an empty list with success=true, never a 404.
func (h *RecordHandler) GetRecordsByUser(c *gin.Context) {
	records, err := h.Service.GetRecordsByUser(context.Background(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "records": records})
}
