// Package ranking sorts, truncates and buckets aggregator outputs into
// the named lists and histograms of the derived documents. Every sort
// breaks ties by ascending id so runs over identical input produce
// identical output.
package ranking

import (
	"sort"

	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/aggregate"
	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/conflict"
	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/quality"
)

// Entry is one row of a reviewer top list.
type Entry struct {
	ReviewerID  string   `json:"reviewer_id"`
	ReviewCount int      `json:"review_count"`
	AvgRating   *float64 `json:"avg_rating"`
	RatingStd   float64  `json:"rating_std"`
}

// Categories holds the four named reviewer top lists.
type Categories struct {
	MostLenient  []Entry `json:"most_lenient"`
	MostStrict   []Entry `json:"most_strict"`
	MostVolatile []Entry `json:"most_volatile"`
	MostStable   []Entry `json:"most_stable"`
}

// Distributions holds the two fixed-boundary histograms over
// qualifying reviewers.
type Distributions struct {
	RatingTendency map[string]int `json:"rating_tendency"`
	Volatility     map[string]int `json:"volatility"`
}

// RatingBucket names the rating-tendency bucket for an average rating.
// Boundaries are inclusive on the lower bound of each named range.
func RatingBucket(avg float64) string {
	switch {
	case avg >= 8:
		return "very_lenient"
	case avg >= 6.5:
		return "lenient"
	case avg >= 4.5:
		return "moderate"
	case avg >= 3:
		return "strict"
	default:
		return "very_strict"
	}
}

// VolatilityBucket names the volatility bucket for a rating standard
// deviation.
func VolatilityBucket(std float64) string {
	switch {
	case std <= 0.5:
		return "very_stable"
	case std <= 1:
		return "stable"
	case std <= 1.5:
		return "moderate"
	case std <= 2.5:
		return "volatile"
	default:
		return "very_volatile"
	}
}

// Categorize builds the named top lists and both histograms from the
// reviewer aggregates. Only reviewers with review_count >= 3 qualify;
// reviewers without any rating are excluded from the rating-keyed
// views.
func Categorize(reviewers map[string]aggregate.ReviewerStats, limit int) (Categories, Distributions) {
	var rated, qualified []Entry
	dist := Distributions{
		RatingTendency: map[string]int{
			"very_lenient": 0, "lenient": 0, "moderate": 0, "strict": 0, "very_strict": 0,
		},
		Volatility: map[string]int{
			"very_stable": 0, "stable": 0, "moderate": 0, "volatile": 0, "very_volatile": 0,
		},
	}

	for _, rs := range reviewers {
		if rs.ReviewCount < quality.MinReviewCount {
			continue
		}
		e := Entry{
			ReviewerID:  rs.ReviewerID,
			ReviewCount: rs.ReviewCount,
			AvgRating:   rs.AvgRating,
			RatingStd:   rs.RatingStd,
		}
		qualified = append(qualified, e)
		dist.Volatility[VolatilityBucket(rs.RatingStd)]++
		if rs.AvgRating != nil {
			rated = append(rated, e)
			dist.RatingTendency[RatingBucket(*rs.AvgRating)]++
		}
	}

	cats := Categories{
		MostLenient:  topBy(rated, limit, func(a, b Entry) bool { return *a.AvgRating > *b.AvgRating }),
		MostStrict:   topBy(rated, limit, func(a, b Entry) bool { return *a.AvgRating < *b.AvgRating }),
		MostVolatile: topBy(qualified, limit, func(a, b Entry) bool { return a.RatingStd > b.RatingStd }),
		MostStable:   topBy(qualified, limit, func(a, b Entry) bool { return a.RatingStd < b.RatingStd }),
	}
	return cats, dist
}

func topBy(entries []Entry, limit int, less func(a, b Entry) bool) []Entry {
	sorted := append([]Entry(nil), entries...)
	sort.Slice(sorted, func(i, j int) bool {
		if less(sorted[i], sorted[j]) {
			return true
		}
		if less(sorted[j], sorted[i]) {
			return false
		}
		return sorted[i].ReviewerID < sorted[j].ReviewerID
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// TopQuality sorts quality scores by overall score descending.
func TopQuality(scores map[string]quality.Score, limit int) []quality.Score {
	sorted := make([]quality.Score, 0, len(scores))
	for _, s := range scores {
		sorted = append(sorted, s)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].OverallScore != sorted[j].OverallScore {
			return sorted[i].OverallScore > sorted[j].OverallScore
		}
		return sorted[i].ReviewerID < sorted[j].ReviewerID
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// TopCountries sorts country rollups by academic power score
// descending.
func TopCountries(countries map[string]aggregate.CountryStats, limit int) []aggregate.CountryStats {
	sorted := make([]aggregate.CountryStats, 0, len(countries))
	for _, cs := range countries {
		sorted = append(sorted, cs)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].AcademicPowerScore != sorted[j].AcademicPowerScore {
			return sorted[i].AcademicPowerScore > sorted[j].AcademicPowerScore
		}
		return sorted[i].Country < sorted[j].Country
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// InfluenceRanking sorts institutions by member count descending.
func InfluenceRanking(insts map[string]aggregate.InstitutionStats, limit int) []aggregate.InstitutionStats {
	sorted := make([]aggregate.InstitutionStats, 0, len(insts))
	for _, is := range insts {
		sorted = append(sorted, is)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].TotalMembers != sorted[j].TotalMembers {
			return sorted[i].TotalMembers > sorted[j].TotalMembers
		}
		return sorted[i].Name < sorted[j].Name
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// AllInstitutions sorts the institution rollups by name ascending for
// the flat institutions document.
func AllInstitutions(insts map[string]aggregate.InstitutionStats) []aggregate.InstitutionStats {
	sorted := make([]aggregate.InstitutionStats, 0, len(insts))
	for _, is := range insts {
		sorted = append(sorted, is)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	return sorted
}

// AllReviewers sorts the raw reviewer statistics by reviewer id
// ascending for the unfiltered reviewers document.
func AllReviewers(reviewers map[string]aggregate.ReviewerStats) []aggregate.ReviewerStats {
	sorted := make([]aggregate.ReviewerStats, 0, len(reviewers))
	for _, rs := range reviewers {
		sorted = append(sorted, rs)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ReviewerID < sorted[j].ReviewerID })
	return sorted
}

// ConflictRanking sorts institution conflict accumulators by total
// conflicts descending. Every entry has at least one conflict by
// construction.
func ConflictRanking(rep *conflict.Report) []conflict.InstitutionConflicts {
	sorted := make([]conflict.InstitutionConflicts, 0, len(rep.ByInstitution))
	for _, ic := range rep.ByInstitution {
		sorted = append(sorted, *ic)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].TotalConflicts != sorted[j].TotalConflicts {
			return sorted[i].TotalConflicts > sorted[j].TotalConflicts
		}
		return sorted[i].Institution < sorted[j].Institution
	})
	return sorted
}

// AffectedSubmissions sorts per-submission conflict records by
// submission ascending.
func AffectedSubmissions(rep *conflict.Report) []conflict.SubmissionConflicts {
	sorted := make([]conflict.SubmissionConflicts, 0, len(rep.BySubmission))
	for _, sc := range rep.BySubmission {
		sorted = append(sorted, *sc)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Submission < sorted[j].Submission })
	return sorted
}
