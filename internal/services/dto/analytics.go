package dto

// PlatformStats - admin dashboard aggregates. AcceptanceRate is a
// percentage with one decimal place; "0" when no events exist yet.
type PlatformStats struct {
	TotalUsers        int64  `json:"total_users"`
	PendingUsers      int64  `json:"pending_users"`
	TotalEssays       int64  `json:"total_essays"`
	CompletedEssays   int64  `json:"completed_essays"`
	TotalSuggestions  int64  `json:"total_suggestions"`
	AppliedCount      int64  `json:"applied_count"`
	DismissedCount    int64  `json:"dismissed_count"`
	AcceptanceRate    string `json:"acceptance_rate"`
	AvgInitialScore   int    `json:"avg_initial_score"`
	AvgImprovedScore  int    `json:"avg_improved_score"`
	ReferenceEssays   int64  `json:"reference_essays"`
	PendingTraining   int64  `json:"pending_training"`
}

// EssayStats - per-essay suggestion activity
type EssayStats struct {
	EssayID        string         `json:"essay_id"`
	AppliedCount   int64          `json:"applied_count"`
	DismissedCount int64          `json:"dismissed_count"`
	AcceptanceRate string         `json:"acceptance_rate"`
	ByType         map[string]int `json:"by_type"`
}
