package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/aggregate"
	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/quality"
)

func ptr(v float64) *float64 { return &v }

func reviewer(id string, count int, avg *float64, std float64) aggregate.ReviewerStats {
	return aggregate.ReviewerStats{ReviewerID: id, ReviewCount: count, AvgRating: avg, RatingStd: std}
}

func TestRatingBucket(t *testing.T) {
	tests := []struct {
		avg      float64
		expected string
	}{
		{avg: 9.5, expected: "very_lenient"},
		{avg: 8, expected: "very_lenient"},
		{avg: 7.9, expected: "lenient"},
		{avg: 6.5, expected: "lenient"},
		{avg: 6.4, expected: "moderate"},
		{avg: 4.5, expected: "moderate"},
		{avg: 4.4, expected: "strict"},
		{avg: 3, expected: "strict"},
		{avg: 2.9, expected: "very_strict"},
		{avg: 0, expected: "very_strict"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, RatingBucket(tt.avg), "avg %v", tt.avg)
	}
}

func TestVolatilityBucket(t *testing.T) {
	tests := []struct {
		std      float64
		expected string
	}{
		{std: 0, expected: "very_stable"},
		{std: 0.5, expected: "very_stable"},
		{std: 0.51, expected: "stable"},
		{std: 1, expected: "stable"},
		{std: 1.5, expected: "moderate"},
		{std: 2.5, expected: "volatile"},
		{std: 2.51, expected: "very_volatile"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, VolatilityBucket(tt.std), "std %v", tt.std)
	}
}

func TestCategorizeQualificationAndHistograms(t *testing.T) {
	reviewers := map[string]aggregate.ReviewerStats{
		"lenient":  reviewer("lenient", 4, ptr(8.5), 0.3),
		"strict":   reviewer("strict", 5, ptr(2.0), 1.2),
		"unrated":  reviewer("unrated", 6, nil, 0),
		"casual":   reviewer("casual", 2, ptr(9.9), 0), // below threshold
		"moderate": reviewer("moderate", 3, ptr(5.0), 2.0),
	}

	cats, dist := Categorize(reviewers, 10)

	// casual never appears anywhere.
	for _, list := range [][]Entry{cats.MostLenient, cats.MostStrict, cats.MostVolatile, cats.MostStable} {
		for _, e := range list {
			assert.NotEqual(t, "casual", e.ReviewerID)
		}
	}

	require.Len(t, cats.MostLenient, 3, "unrated reviewers are excluded from rating lists")
	assert.Equal(t, "lenient", cats.MostLenient[0].ReviewerID)
	assert.Equal(t, "strict", cats.MostStrict[0].ReviewerID)

	require.Len(t, cats.MostVolatile, 4, "unrated reviewers still rank by volatility")
	assert.Equal(t, "moderate", cats.MostVolatile[0].ReviewerID)
	assert.Equal(t, "unrated", cats.MostStable[0].ReviewerID)

	assert.Equal(t, 1, dist.RatingTendency["very_lenient"])
	assert.Equal(t, 1, dist.RatingTendency["very_strict"])
	assert.Equal(t, 1, dist.RatingTendency["moderate"])
	assert.Equal(t, 0, dist.RatingTendency["lenient"], "empty buckets are present at zero")
	assert.Equal(t, 2, dist.Volatility["very_stable"])
	assert.Equal(t, 1, dist.Volatility["volatile"])
}

func TestCategorizeTruncatesAndBreaksTies(t *testing.T) {
	reviewers := map[string]aggregate.ReviewerStats{
		"b": reviewer("b", 3, ptr(7.0), 1),
		"a": reviewer("a", 3, ptr(7.0), 1),
		"c": reviewer("c", 3, ptr(6.0), 1),
	}

	cats, _ := Categorize(reviewers, 2)

	require.Len(t, cats.MostLenient, 2)
	assert.Equal(t, "a", cats.MostLenient[0].ReviewerID, "equal ratings break ties by id ascending")
	assert.Equal(t, "b", cats.MostLenient[1].ReviewerID)
}

func TestTopQuality(t *testing.T) {
	scores := map[string]quality.Score{
		"low":  {ReviewerID: "low", OverallScore: 40},
		"tieB": {ReviewerID: "tieB", OverallScore: 90},
		"tieA": {ReviewerID: "tieA", OverallScore: 90},
	}

	top := TopQuality(scores, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "tieA", top[0].ReviewerID)
	assert.Equal(t, "tieB", top[1].ReviewerID)
}

func TestTopCountries(t *testing.T) {
	countries := map[string]aggregate.CountryStats{
		"US": {Country: "US", AcademicPowerScore: 80},
		"UK": {Country: "UK", AcademicPowerScore: 80},
		"FR": {Country: "FR", AcademicPowerScore: 10},
	}

	top := TopCountries(countries, 0)
	require.Len(t, top, 3)
	assert.Equal(t, "UK", top[0].Country, "equal power breaks ties by country ascending")
	assert.Equal(t, "US", top[1].Country)
	assert.Equal(t, "FR", top[2].Country)
}

func TestInfluenceRanking(t *testing.T) {
	insts := map[string]aggregate.InstitutionStats{
		"Big U":   {Name: "Big U", TotalMembers: 50},
		"Small U": {Name: "Small U", TotalMembers: 2},
		"Mid U":   {Name: "Mid U", TotalMembers: 10},
	}

	top := InfluenceRanking(insts, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "Big U", top[0].Name)
	assert.Equal(t, "Mid U", top[1].Name)
}

func TestAllReviewersSortedByID(t *testing.T) {
	reviewers := map[string]aggregate.ReviewerStats{
		"z": reviewer("z", 1, nil, 0),
		"a": reviewer("a", 1, nil, 0),
		"m": reviewer("m", 1, nil, 0),
	}

	all := AllReviewers(reviewers)
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].ReviewerID)
	assert.Equal(t, "m", all[1].ReviewerID)
	assert.Equal(t, "z", all[2].ReviewerID)
}
