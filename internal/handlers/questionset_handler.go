package handlers

import (
	"context"
	"net/http"

	"testbank-service/internal/models"
	"testbank-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

type QuestionSetHandler struct {
	Service *service.QuestionSetService
}

func NewQuestionSetHandler(s *service.QuestionSetService) *QuestionSetHandler {
	return &QuestionSetHandler{Service: s}
}

func (h *QuestionSetHandler) ListSets(c *gin.Context) {
	sets, err := h.Service.ListSets(context.Background())
	if err != nil {
		respondError(c, err)
		return
	}
	if sets == nil {
		sets = []models.QuestionSet{}
	}
	c.JSON(http.StatusOK, sets)
}

func (h *QuestionSetHandler) GetSet(c *gin.Context) {
	set, err := h.Service.GetSet(context.Background(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, set)
}

func (h *QuestionSetHandler) CreateSet(c *gin.Context) {
	var set models.QuestionSet
	if err := c.ShouldBindJSON(&set); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Service.CreateSet(context.Background(), &set); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, set)
}

func (h *QuestionSetHandler) UpdateSet(c *gin.Context) {
	var update map[string]interface{}
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Service.UpdateSet(context.Background(), c.Param("id"), bson.M(update)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

func (h *QuestionSetHandler) DeleteSet(c *gin.Context) {
	if err := h.Service.DeleteSet(context.Background(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
