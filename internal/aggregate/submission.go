package aggregate

import (
	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/loader"
	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/stats"
)

// Dispute classifications. Fixed thresholds on the population standard
// deviation of a submission's ratings.
const (
	ClassDisputed  = "disputed"
	ClassConsensus = "consensus"
	ClassRegular   = "regular"
)

// SubmissionStats is the derived per-submission record. Submissions
// with zero reviews never appear here; they are tracked by Coverage.
type SubmissionStats struct {
	Submission     string   `json:"submission"`
	ReviewCount    int      `json:"review_count"`
	AvgRating      *float64 `json:"avg_rating"`
	RatingStd      float64  `json:"rating_std"`
	RatingRange    float64  `json:"rating_range"`
	AvgConfidence  *float64 `json:"avg_confidence"`
	Classification string   `json:"classification"`
}

// Coverage buckets every submission by how thoroughly it was reviewed.
type Coverage struct {
	WellReviewed  int `json:"well_reviewed"`  // >= 3 reviews
	UnderReviewed int `json:"under_reviewed"` // 1-2 reviews
	NoReviews     int `json:"no_reviews"`     // 0 reviews
}

// Classify maps a rating standard deviation to its dispute label.
func Classify(ratingStd float64) string {
	switch {
	case ratingStd > 2:
		return ClassDisputed
	case ratingStd < 1:
		return ClassConsensus
	default:
		return ClassRegular
	}
}

// Submissions folds reviews into per-submission summaries and the
// overall coverage totals.
func Submissions(c *loader.Corpus) (map[string]SubmissionStats, Coverage) {
	out := make(map[string]SubmissionStats)
	var cov Coverage

	for number, sub := range c.Submissions {
		switch {
		case len(sub.Reviews) >= 3:
			cov.WellReviewed++
		case len(sub.Reviews) >= 1:
			cov.UnderReviewed++
		default:
			cov.NoReviews++
			continue
		}

		var ratings, confidences []float64
		for _, rev := range sub.Reviews {
			if rev.Rating.Valid {
				ratings = append(ratings, rev.Rating.Value)
			}
			if rev.Confidence.Valid {
				confidences = append(confidences, rev.Confidence.Value)
			}
		}

		std := stats.PopulationStd(ratings)
		ss := SubmissionStats{
			Submission:     number,
			ReviewCount:    len(sub.Reviews),
			RatingStd:      stats.Round(std, 3),
			Classification: Classify(std),
		}
		if m, ok := stats.Mean(ratings); ok {
			avg := stats.Round(m, 2)
			ss.AvgRating = &avg
		}
		if min, max, ok := stats.MinMax(ratings); ok {
			ss.RatingRange = max - min
		}
		if m, ok := stats.Mean(confidences); ok {
			avg := stats.Round(m, 2)
			ss.AvgConfidence = &avg
		}
		out[number] = ss
	}
	return out, cov
}
