package services

import (
	"essaylab_backend/internal/cache"
	"essaylab_backend/internal/config"
	"essaylab_backend/internal/email"
	"essaylab_backend/internal/llm"
	"essaylab_backend/internal/repositories"
)

// EventPublisher pushes realtime events to clients subscribed to an essay.
// The websocket hub implements it; services stay transport-agnostic.
type EventPublisher interface {
	Publish(essayID string, eventType string, payload interface{})
}

// NoopPublisher is used in tests and tools that run without the hub.
type NoopPublisher struct{}

func (NoopPublisher) Publish(string, string, interface{}) {}

// ServiceContainer holds every application service.
type ServiceContainer struct {
	AuthService       AuthService
	UserService       UserService
	CollegeService    CollegeService
	EssayService      EssayService
	AnalysisService   AnalysisService
	SuggestionService SuggestionService
	PortfolioService  PortfolioService
	TrainingService   TrainingService
	AnalyticsService  AnalyticsService
	ExportService     ExportService
	EmailService      EmailService
}

// NewServiceContainer wires repositories, the AI gateway, cache, email and
// the realtime publisher into the service graph.
func NewServiceContainer(
	cfg *config.Config,
	aiClient llm.Client,
	resultCache cache.Cache,
	emailProvider email.Provider,
	publisher EventPublisher,
) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	collegeRepo := repositories.NewCollegeRepository()
	essayRepo := repositories.NewEssayRepository()
	analysisRepo := repositories.NewAnalysisRepository()
	analyticsRepo := repositories.NewAnalyticsRepository()
	portfolioRepo := repositories.NewPortfolioRepository()
	trainingRepo := repositories.NewTrainingRepository()

	if publisher == nil {
		publisher = NoopPublisher{}
	}

	emailService := NewEmailService(cfg, emailProvider)
	trainingService := NewTrainingService(trainingRepo, essayRepo, analysisRepo, analyticsRepo, portfolioRepo)
	essayService := NewEssayService(essayRepo, collegeRepo, trainingService, publisher)

	return &ServiceContainer{
		AuthService:       NewAuthService(cfg, userRepo, emailService),
		UserService:       NewUserService(userRepo, emailService),
		CollegeService:    NewCollegeService(collegeRepo),
		EssayService:      essayService,
		AnalysisService:   NewAnalysisService(cfg, essayRepo, analysisRepo, collegeRepo, portfolioRepo, aiClient, resultCache, publisher),
		SuggestionService: NewSuggestionService(essayRepo, analysisRepo, analyticsRepo, publisher),
		PortfolioService:  NewPortfolioService(portfolioRepo, collegeRepo, aiClient),
		TrainingService:   trainingService,
		AnalyticsService:  NewAnalyticsService(userRepo, essayRepo, analyticsRepo, portfolioRepo, trainingRepo),
		ExportService:     NewExportService(essayRepo, analysisRepo),
		EmailService:      emailService,
	}
}
