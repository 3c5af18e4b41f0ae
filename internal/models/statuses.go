package models

type AccountStatus string
type UserRole string
type EssayStatus string
type EnglishVariant string
type ScoreType string
type SuggestionAction string
type AnalysisStatus string
type SessionState string
type TrainingStatus string

const (
	AccountStatusPending   AccountStatus = "pending"
	AccountStatusApproved  AccountStatus = "approved"
	AccountStatusRejected  AccountStatus = "rejected"
	AccountStatusSuspended AccountStatus = "suspended"

	UserRoleFree    UserRole = "free"
	UserRolePremium UserRole = "premium"
	UserRoleAdmin   UserRole = "admin"

	EssayStatusDraft     EssayStatus = "draft"
	EssayStatusInReview  EssayStatus = "in_review"
	EssayStatusCompleted EssayStatus = "completed"
	EssayStatusArchived  EssayStatus = "archived"

	EnglishAmerican EnglishVariant = "american"
	EnglishBritish  EnglishVariant = "british"

	ScoreTypeInitial    ScoreType = "initial"
	ScoreTypeAfterEdits ScoreType = "after-edits"

	SuggestionApplied   SuggestionAction = "applied"
	SuggestionDismissed SuggestionAction = "dismissed"

	AnalysisStatusPending    AnalysisStatus = "pending"
	AnalysisStatusProcessing AnalysisStatus = "processing"
	AnalysisStatusComplete   AnalysisStatus = "complete"
	AnalysisStatusFailed     AnalysisStatus = "failed"

	// Analysis session state machine: idle -> triggered -> polling -> complete
	SessionStateIdle      SessionState = "idle"
	SessionStateTriggered SessionState = "triggered"
	SessionStatePolling   SessionState = "polling"
	SessionStateComplete  SessionState = "complete"

	TrainingStatusPendingReview TrainingStatus = "pending_review"
	TrainingStatusApproved      TrainingStatus = "approved"
	TrainingStatusRejected      TrainingStatus = "rejected"
)
