package algorithms

import (
	"sort"
	"strings"

	"essaylab_backend/internal/models"
)

// RelevanceScore rates how well a curated reference essay fits an essay's
// target (0-100) and lists the reasons, for prompt-context debugging.
func RelevanceScore(essay *models.Essay, ref *models.SuccessfulEssay) (float64, []string) {
	score := 0.0
	reasons := []string{}

	// Programme match (40 points)
	if essay.ProgrammeID != nil && ref.ProgrammeID != nil && *essay.ProgrammeID == *ref.ProgrammeID {
		score += 40
		reasons = append(reasons, "Same programme")
	}

	// College match (25 points)
	if essay.CollegeID != nil && ref.CollegeID != nil && *essay.CollegeID == *ref.CollegeID {
		score += 25
		reasons = append(reasons, "Same college")
	} else if essay.CustomCollege != "" && strings.EqualFold(essay.CustomCollege, ref.CustomCollege) {
		score += 15
		reasons = append(reasons, "Same free-text college")
	}

	// English variant match (10 points)
	if essay.Programme != nil && ref.Programme != nil &&
		essay.Programme.EnglishVariant == ref.Programme.EnglishVariant {
		score += 10
		reasons = append(reasons, "Same English variant")
	}

	// Performance score contributes up to 25 points.
	perf := ref.PerformanceScore
	if perf > 100 {
		perf = 100
	}
	if perf > 0 {
		score += float64(perf) * 0.25
		reasons = append(reasons, "High performance score")
	}

	return score, reasons
}

// RankReferences orders candidate reference essays by relevance to the
// essay's target and returns the top limit rows. Ties fall back to the
// curated performance score.
func RankReferences(essay *models.Essay, candidates []models.SuccessfulEssay, limit int) []models.SuccessfulEssay {
	if limit < 1 || len(candidates) == 0 {
		return nil
	}

	type ranked struct {
		ref   models.SuccessfulEssay
		score float64
	}

	rankedRefs := make([]ranked, 0, len(candidates))
	for i := range candidates {
		score, _ := RelevanceScore(essay, &candidates[i])
		rankedRefs = append(rankedRefs, ranked{ref: candidates[i], score: score})
	}

	sort.SliceStable(rankedRefs, func(i, j int) bool {
		if rankedRefs[i].score != rankedRefs[j].score {
			return rankedRefs[i].score > rankedRefs[j].score
		}
		return rankedRefs[i].ref.PerformanceScore > rankedRefs[j].ref.PerformanceScore
	})

	if limit > len(rankedRefs) {
		limit = len(rankedRefs)
	}

	result := make([]models.SuccessfulEssay, 0, limit)
	for _, r := range rankedRefs[:limit] {
		result = append(result, r.ref)
	}
	return result
}
