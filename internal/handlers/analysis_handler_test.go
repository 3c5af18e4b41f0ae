package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"essaylab_backend/internal/auth"
	"essaylab_backend/internal/config"
	"essaylab_backend/internal/middleware"
	"essaylab_backend/internal/models"
	"essaylab_backend/internal/services/dto"
	"essaylab_backend/internal/validator"
	"essaylab_backend/pkg/apperrors"
)

type stubAnalysisService struct {
	session *dto.SessionResponse
	status  *dto.AnalysisResponse
	err     error
}

func (s *stubAnalysisService) Trigger(context.Context, *gorm.DB, string, string, *dto.TriggerAnalysisRequest) (*dto.SessionResponse, error) {
	return s.session, s.err
}

func (s *stubAnalysisService) GetStatus(context.Context, *gorm.DB, string, string) (*dto.AnalysisResponse, error) {
	return s.status, s.err
}

func (s *stubAnalysisService) GetSession(context.Context, *gorm.DB, string, string) (*dto.SessionResponse, error) {
	return s.session, s.err
}

type stubSuggestionService struct {
	response *dto.ApplySuggestionResponse
	err      error
}

func (s *stubSuggestionService) Apply(context.Context, *gorm.DB, string, string, *dto.ApplySuggestionRequest) (*dto.ApplySuggestionResponse, error) {
	return s.response, s.err
}

func (s *stubSuggestionService) Dismiss(context.Context, *gorm.DB, string, string, *dto.DismissSuggestionRequest) error {
	return s.err
}

func setupAnalysisRouter(t *testing.T, analysis *stubAnalysisService, suggestions *stubSuggestionService) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	config.AppConfig = &config.Config{}
	config.AppConfig.JWT.Secret = "test-secret"
	config.AppConfig.JWT.TTL = 60

	token, err := auth.GenerateToken("user-1", string(models.UserRoleFree))
	require.NoError(t, err)

	router := gin.New()
	router.Use(middleware.DBMiddleware(nil))

	handler := NewAnalysisHandler(NewBaseHandler(validator.New()), analysis, suggestions)
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return router, token
}

func TestTriggerReturnsAccepted(t *testing.T) {
	analysis := &stubAnalysisService{
		session: &dto.SessionResponse{EssayID: "e1", State: models.SessionStateTriggered},
	}
	router, token := setupAnalysisRouter(t, analysis, &stubSuggestionService{})

	body := `{"content":"A long enough essay body for the trigger call."}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/essays/e1/analysis", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), `"state":"triggered"`)
}

func TestTriggerRequiresAuth(t *testing.T) {
	router, _ := setupAnalysisRouter(t, &stubAnalysisService{}, &stubSuggestionService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/essays/e1/analysis", strings.NewReader(`{"content":"x"}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTriggerRejectsEmptyBody(t *testing.T) {
	router, token := setupAnalysisRouter(t, &stubAnalysisService{}, &stubSuggestionService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/essays/e1/analysis", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTriggerThrottledMapsTo429(t *testing.T) {
	analysis := &stubAnalysisService{err: apperrors.ErrAnalysisThrottled}
	router, token := setupAnalysisRouter(t, analysis, &stubSuggestionService{})

	body := `{"content":"A long enough essay body for the trigger call."}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/essays/e1/analysis", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestApplySuggestionStaleMapsTo409(t *testing.T) {
	suggestions := &stubSuggestionService{err: apperrors.ErrStaleSuggestion}
	router, token := setupAnalysisRouter(t, &stubAnalysisService{}, suggestions)

	body := `{"suggestion_id":"s1","content":"current content"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/essays/e1/suggestions/apply", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestApplySuggestionReturnsPatchedContent(t *testing.T) {
	suggestions := &stubSuggestionService{
		response: &dto.ApplySuggestionResponse{Content: "Hi world", SuggestionID: "s1"},
	}
	router, token := setupAnalysisRouter(t, &stubAnalysisService{}, suggestions)

	body := `{"suggestion_id":"s1","content":"Hello world"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/essays/e1/suggestions/apply", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"content":"Hi world"`)
}
