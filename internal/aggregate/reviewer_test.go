package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/loader"
	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/model"
)

func review(reviewer string, rating, confidence model.Number, content model.ReviewContent, ethics bool) model.Review {
	return model.Review{
		ReviewerID: reviewer,
		Rating:     rating,
		Confidence: confidence,
		Content:    content,
		EthicsFlag: ethics,
	}
}

func corpusWithReviews(subs map[string]model.Submission) *loader.Corpus {
	for number, sub := range subs {
		sub.Number = number
		subs[number] = sub
	}
	return &loader.Corpus{
		People:       map[string]model.Person{},
		Institutions: map[string]model.Institution{},
		Submissions:  subs,
	}
}

func TestReviewersComputesMeansAndStd(t *testing.T) {
	c := corpusWithReviews(map[string]model.Submission{
		"42": {Reviews: []model.Review{
			review("r1", model.Num(8), model.Num(4), model.ReviewContent{Summary: "good clear paper"}, false),
			review("r1", model.Num(6), model.Num(3), model.ReviewContent{Weaknesses: "weak baselines here"}, false),
			review("r1", model.Num(7), model.Num(5), model.ReviewContent{Questions: "why only cifar?"}, true),
		}},
	})

	out := Reviewers(c)
	require.Contains(t, out, "r1")
	rs := out["r1"]

	assert.Equal(t, 3, rs.ReviewCount)
	require.NotNil(t, rs.AvgRating)
	assert.Equal(t, 7.00, *rs.AvgRating)
	assert.Equal(t, 0.816, rs.RatingStd)
	require.NotNil(t, rs.MinRating)
	require.NotNil(t, rs.MaxRating)
	assert.Equal(t, 6.0, *rs.MinRating)
	assert.Equal(t, 8.0, *rs.MaxRating)
	assert.Equal(t, 2.0, rs.RatingRange)
	require.NotNil(t, rs.AvgConfidence)
	assert.Equal(t, 4.00, *rs.AvgConfidence)
	assert.Equal(t, 3, rs.AvgTextLength)
	assert.Equal(t, 0.333, rs.QuestionRatio)
	assert.Equal(t, 1, rs.EthicsFlags)
}

func TestReviewersNullMeansNoData(t *testing.T) {
	c := corpusWithReviews(map[string]model.Submission{
		"1": {Reviews: []model.Review{
			review("silent", model.Number{}, model.Number{}, model.ReviewContent{Summary: "no score given"}, false),
		}},
	})

	out := Reviewers(c)
	rs := out["silent"]

	assert.Equal(t, 1, rs.ReviewCount)
	assert.Nil(t, rs.AvgRating, "zero ratings must report null, never 0")
	assert.Nil(t, rs.MinRating)
	assert.Nil(t, rs.MaxRating)
	assert.Nil(t, rs.AvgConfidence)
	assert.Equal(t, 0.0, rs.RatingStd)
}

func TestReviewersStdZeroBelowTwoSamples(t *testing.T) {
	c := corpusWithReviews(map[string]model.Submission{
		"1": {Reviews: []model.Review{
			review("once", model.Num(9), model.Number{}, model.ReviewContent{}, false),
		}},
	})

	rs := Reviewers(c)["once"]
	require.NotNil(t, rs.AvgRating)
	assert.Equal(t, 9.0, *rs.AvgRating)
	assert.Equal(t, 0.0, rs.RatingStd)
}

func TestReviewersQuestionRatio(t *testing.T) {
	c := corpusWithReviews(map[string]model.Submission{
		"1": {Reviews: []model.Review{
			review("q", model.Num(5), model.Number{}, model.ReviewContent{Questions: "what about scale?"}, false),
			review("q", model.Num(5), model.Number{}, model.ReviewContent{Questions: "   "}, false),
			review("q", model.Num(5), model.Number{}, model.ReviewContent{}, false),
		}},
	})

	rs := Reviewers(c)["q"]
	assert.Equal(t, 0.333, rs.QuestionRatio, "whitespace-only questions do not count")
}

func TestReviewersAggregateAcrossSubmissions(t *testing.T) {
	c := corpusWithReviews(map[string]model.Submission{
		"1": {Reviews: []model.Review{review("r", model.Num(4), model.Number{}, model.ReviewContent{}, false)}},
		"2": {Reviews: []model.Review{review("r", model.Num(8), model.Number{}, model.ReviewContent{}, false)}},
	})

	rs := Reviewers(c)["r"]
	assert.Equal(t, 2, rs.ReviewCount)
	require.NotNil(t, rs.AvgRating)
	assert.Equal(t, 6.0, *rs.AvgRating)
	assert.Equal(t, 2.0, rs.RatingStd)
	assert.Equal(t, 4.0, rs.RatingRange)
}
