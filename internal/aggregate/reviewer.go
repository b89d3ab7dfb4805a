// Package aggregate folds the immutable corpus into per-reviewer,
// per-submission and per-institution statistics. Each aggregator owns
// its accumulator map and returns an immutable result; they share no
// state and can run in parallel.
package aggregate

import (
	"strings"

	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/loader"
	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/stats"
)

// ReviewerStats is the derived per-reviewer record. AvgRating and
// friends are nil when the reviewer has no numeric samples: null means
// "no data", 0 means "scored zero".
type ReviewerStats struct {
	ReviewerID    string   `json:"reviewer_id"`
	ReviewCount   int      `json:"review_count"`
	AvgRating     *float64 `json:"avg_rating"`
	RatingStd     float64  `json:"rating_std"`
	MinRating     *float64 `json:"min_rating"`
	MaxRating     *float64 `json:"max_rating"`
	RatingRange   float64  `json:"rating_range"`
	AvgConfidence *float64 `json:"avg_confidence"`
	AvgTextLength int      `json:"avg_text_length"`
	QuestionRatio float64  `json:"question_ratio"`
	EthicsFlags   int      `json:"ethics_flags"`
}

type reviewerAccum struct {
	ratings       []float64
	confidences   []float64
	textLengths   []float64
	withQuestions int
	ethicsFlags   int
	reviews       int
}

// Reviewers folds every review into its owning reviewer's accumulator
// and finalizes the statistics with the documented rounding policy.
func Reviewers(c *loader.Corpus) map[string]ReviewerStats {
	accums := make(map[string]*reviewerAccum)

	for _, sub := range c.Submissions {
		for _, rev := range sub.Reviews {
			acc := accums[rev.ReviewerID]
			if acc == nil {
				acc = &reviewerAccum{}
				accums[rev.ReviewerID] = acc
			}
			acc.reviews++
			if rev.Rating.Valid {
				acc.ratings = append(acc.ratings, rev.Rating.Value)
			}
			if rev.Confidence.Valid {
				acc.confidences = append(acc.confidences, rev.Confidence.Value)
			}
			words := stats.WordCount(rev.Content.Summary) +
				stats.WordCount(rev.Content.Strengths) +
				stats.WordCount(rev.Content.Weaknesses) +
				stats.WordCount(rev.Content.Questions)
			acc.textLengths = append(acc.textLengths, float64(words))
			if strings.TrimSpace(rev.Content.Questions) != "" {
				acc.withQuestions++
			}
			if rev.EthicsFlag {
				acc.ethicsFlags++
			}
		}
	}

	out := make(map[string]ReviewerStats, len(accums))
	for id, acc := range accums {
		rs := ReviewerStats{
			ReviewerID:  id,
			ReviewCount: acc.reviews,
			RatingStd:   stats.Round(stats.PopulationStd(acc.ratings), 3),
			EthicsFlags: acc.ethicsFlags,
		}
		if m, ok := stats.Mean(acc.ratings); ok {
			avg := stats.Round(m, 2)
			rs.AvgRating = &avg
		}
		if min, max, ok := stats.MinMax(acc.ratings); ok {
			rs.MinRating, rs.MaxRating = &min, &max
			rs.RatingRange = max - min
		}
		if m, ok := stats.Mean(acc.confidences); ok {
			avg := stats.Round(m, 2)
			rs.AvgConfidence = &avg
		}
		if m, ok := stats.Mean(acc.textLengths); ok {
			rs.AvgTextLength = int(stats.Round(m, 0))
		}
		if acc.reviews > 0 {
			rs.QuestionRatio = stats.Round(float64(acc.withQuestions)/float64(acc.reviews), 3)
		}
		out[id] = rs
	}
	return out
}
