package handlers

import (
	"essaylab_backend/internal/services"
	"essaylab_backend/internal/validator"
)

// AppHandlers holds every HTTP handler in the application.
type AppHandlers struct {
	AuthHandler      *AuthHandler
	UserHandler      *UserHandler
	CollegeHandler   *CollegeHandler
	EssayHandler     *EssayHandler
	AnalysisHandler  *AnalysisHandler
	PortfolioHandler *PortfolioHandler
	TrainingHandler  *TrainingHandler
	AnalyticsHandler *AnalyticsHandler
}

// NewAppHandlers builds the handler set on top of the service container.
func NewAppHandlers(sc *services.ServiceContainer) *AppHandlers {
	base := NewBaseHandler(validator.New())

	return &AppHandlers{
		AuthHandler:      NewAuthHandler(base, sc.AuthService),
		UserHandler:      NewUserHandler(base, sc.UserService),
		CollegeHandler:   NewCollegeHandler(base, sc.CollegeService),
		EssayHandler:     NewEssayHandler(base, sc.EssayService, sc.ExportService),
		AnalysisHandler:  NewAnalysisHandler(base, sc.AnalysisService, sc.SuggestionService),
		PortfolioHandler: NewPortfolioHandler(base, sc.PortfolioService),
		TrainingHandler:  NewTrainingHandler(base, sc.TrainingService),
		AnalyticsHandler: NewAnalyticsHandler(base, sc.AnalyticsService),
	}
}
