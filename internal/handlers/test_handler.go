package handlers

import (
	"context"
	"net/http"

	"testbank-service/internal/models"
	"testbank-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

type TestHandler struct {
	Service *service.TestService
}

func NewTestHandler(s *service.TestService) *TestHandler {
	return &TestHandler{Service: s}
}

type startTestRequest struct {
	TestID   string `json:"testId" binding:"required"`
	Passcode string `json:"passcode"`
}

func (h *TestHandler) StartTest(c *gin.Context) {
	var req startTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	started, err := h.Service.StartTest(context.Background(), req.TestID, req.Passcode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, started)
}

type submitTestRequest struct {
	TestID  string            `json:"testId" binding:"required"`
	UserID  string            `json:"userId" binding:"required"`
	Answers map[string]string `json:"answers"`
}

func (h *TestHandler) SubmitTest(c *gin.Context) {
	var req submitTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	result, record, err := h.Service.SubmitTest(context.Background(), req.TestID, req.UserID, req.Answers)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":        "Test submitted successfully",
		"score":          result.Score,
		"totalQuestions": result.TotalQuestions,
		"correctAnswers": result.CorrectAnswers,
		"percentage":     result.Percentage,
		"passed":         result.Passed,
		"testId":         result.TestID,
		"userTestRecord": record,
	})
}

func (h *TestHandler) ListTests(c *gin.Context) {
	tests, err := h.Service.ListTests(context.Background())
	if err != nil {
		respondError(c, err)
		return
	}
	if tests == nil {
		tests = []models.TestDefinition{}
	}
	c.JSON(http.StatusOK, tests)
}

func (h *TestHandler) GetTest(c *gin.Context) {
	started, err := h.Service.StartTest(context.Background(), c.Param("id"), c.Query("passcode"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, started)
}

// GetTestDefinition returns the raw definition, pick pairs included. Admin
// surface; the taker-facing view is GetTest.
func (h *TestHandler) GetTestDefinition(c *gin.Context) {
	def, err := h.Service.GetTest(context.Background(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, def)
}

func (h *TestHandler) CreateTest(c *gin.Context) {
	var def models.TestDefinition
	if err := c.ShouldBindJSON(&def); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Service.CreateTest(context.Background(), &def); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, def)
}

func (h *TestHandler) UpdateTest(c *gin.Context) {
	var update map[string]interface{}
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Service.UpdateTest(context.Background(), c.Param("id"), bson.M(update)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

func (h *TestHandler) DeleteTest(c *gin.Context) {
	if err := h.Service.DeleteTest(context.Background(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
