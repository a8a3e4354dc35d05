package controller

import (
	"net/http/httptest"
	"testing"

	"jobsdoor_backend/internal/model"

	"github.com/gin-gonic/gin"
)

func filtersForQuery(t *testing.T, query string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest("GET", "/api/admin/assessments"+query, nil)
	return ctx
}

func TestAssessmentFiltersFromQuery(t *testing.T) {
	ctx := filtersForQuery(t, "?category=programming&difficulty=medium&isActive=false&createdBy=admin-1&page=2&limit=25")

	filters := assessmentFiltersFromQuery(ctx)
	if filters.Category != "programming" {
		t.Errorf("category = %q, want programming", filters.Category)
	}
	if filters.Difficulty != model.DifficultyMedium {
		t.Errorf("difficulty = %q, want medium", filters.Difficulty)
	}
	if filters.CreatedBy != "admin-1" {
		t.Errorf("createdBy = %q, want admin-1", filters.CreatedBy)
	}
	if filters.IsActive == nil || *filters.IsActive {
		t.Errorf("isActive = %v, want false", filters.IsActive)
	}
	if filters.Page != 2 || filters.Limit != 25 {
		t.Errorf("page/limit = %d/%d, want 2/25", filters.Page, filters.Limit)
	}
}

func TestAssessmentFiltersFromQueryDefaults(t *testing.T) {
	filters := assessmentFiltersFromQuery(filtersForQuery(t, ""))

	if filters.IsActive != nil {
		t.Errorf("isActive = %v, want unset", *filters.IsActive)
	}
	if filters.CreatedBy != "" {
		t.Errorf("createdBy = %q, want empty", filters.CreatedBy)
	}
	if filters.Page != 1 || filters.Limit != 10 {
		t.Errorf("page/limit = %d/%d, want defaults 1/10", filters.Page, filters.Limit)
	}
}
