// Package quality computes the composite reviewer quality score. The
// coefficients and caps are an output contract: downstream rankings
// depend on exact values.
package quality

import (
	"math"

	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/aggregate"
	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/stats"
)

// MinReviewCount is the qualification threshold for quality scoring
// and every ranking view.
const MinReviewCount = 3

// Score holds the four bounded [0,100] sub-scores and their unweighted
// average for one qualifying reviewer.
type Score struct {
	ReviewerID       string  `json:"reviewer_id"`
	ReviewCount      int     `json:"review_count"`
	ConsistencyScore float64 `json:"consistency_score"`
	EngagementScore  float64 `json:"engagement_score"`
	ExperienceScore  float64 `json:"experience_score"`
	ConfidenceScore  float64 `json:"confidence_score"`
	OverallScore     float64 `json:"overall_quality_score"`
}

// Compute derives a Score from one reviewer's aggregate statistics.
func Compute(rs aggregate.ReviewerStats) Score {
	consistency := 100.0
	if rs.AvgRating != nil {
		consistency = 100 - math.Min(30, rs.RatingStd*15)
	}
	engagement := math.Min(100, float64(rs.AvgTextLength)/30+float64(rs.ReviewCount)*3)
	experience := math.Min(100, float64(rs.ReviewCount)*5)
	confidence := 0.0
	if rs.AvgConfidence != nil {
		confidence = math.Min(100, *rs.AvgConfidence*20)
	}

	return Score{
		ReviewerID:       rs.ReviewerID,
		ReviewCount:      rs.ReviewCount,
		ConsistencyScore: consistency,
		EngagementScore:  engagement,
		ExperienceScore:  experience,
		ConfidenceScore:  confidence,
		OverallScore:     stats.Round((consistency+engagement+experience+confidence)/4, 1),
	}
}

// Scores computes quality scores for every reviewer meeting the
// qualification threshold.
func Scores(reviewers map[string]aggregate.ReviewerStats) map[string]Score {
	out := make(map[string]Score)
	for id, rs := range reviewers {
		if rs.ReviewCount < MinReviewCount {
			continue
		}
		out[id] = Compute(rs)
	}
	return out
}
