package handlers

import (
	"net/http"
	"strconv"

	"psytest/services"

	"github.com/gin-gonic/gin"
)

type TestHandler struct {
	testService *services.TestService
}

func NewTestHandler(testService *services.TestService) *TestHandler {
	return &TestHandler{
		testService: testService,
	}
}

func (h *TestHandler) CreateTest(c *gin.Context) {
	var req services.CreateTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	test, err := h.testService.CreateTest(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, test)
}

// GetTestByType hides option scores unless include_scores=true.
func (h *TestHandler) GetTestByType(c *gin.Context) {
	testType := c.Param("test_type")

	includeScores := false
	if v := c.Query("include_scores"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid include_scores"})
			return
		}
		includeScores = b
	}

	if includeScores {
		test, err := h.testService.GetTestByType(testType)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, test)
		return
	}

	test, err := h.testService.GetTestForTaking(testType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, test)
}

func (h *TestHandler) GetPopularTests(c *gin.Context) {
	limit := services.DefaultPopularLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 50 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 50"})
			return
		}
		limit = n
	}

	tests, err := h.testService.GetPopularTests(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tests)
}
