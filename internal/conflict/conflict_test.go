package conflict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/loader"
	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/model"
)

func conflictCorpus() *loader.Corpus {
	return &loader.Corpus{
		People: map[string]model.Person{
			"authorA":   {ID: "authorA", Institution: "MIT"},
			"authorB":   {ID: "authorB", Institution: "Stanford"},
			"reviewerR": {ID: "reviewerR", Institution: "MIT"},
			"reviewerS": {ID: "reviewerS", Institution: "Oxford"},
		},
		Institutions: map[string]model.Institution{
			"MIT":      {Name: "MIT", Country: "US", Type: model.TypeUniversity},
			"Stanford": {Name: "Stanford", Country: "US", Type: model.TypeUniversity},
			"Oxford":   {Name: "Oxford", Country: "UK", Type: model.TypeUniversity},
		},
		Submissions: map[string]model.Submission{
			"10": {Number: "10", Authors: []string{"authorA", "authorB"}, Reviews: []model.Review{
				{ReviewerID: "reviewerR", Rating: model.Num(7)},
				{ReviewerID: "reviewerS", Rating: model.Num(6)},
			}},
			"11": {Number: "11", Authors: []string{"authorB"}, Reviews: []model.Review{
				{ReviewerID: "reviewerS", Rating: model.Num(8)},
			}},
		},
	}
}

func TestDetectSameInstitution(t *testing.T) {
	rep := Detect(conflictCorpus())

	require.Len(t, rep.Instances, 1)
	inst := rep.Instances[0]
	assert.Equal(t, SameInstitution, inst.Type)
	assert.Equal(t, "10", inst.Submission)
	assert.Equal(t, "MIT", inst.Institution)
	assert.Equal(t, "reviewerR", inst.ReviewerID)
	assert.Equal(t, []string{"authorA", "authorB"}, inst.AuthorIDs)

	mit := rep.ByInstitution["MIT"]
	require.NotNil(t, mit)
	assert.Equal(t, 1, mit.TotalConflicts)
	assert.Contains(t, mit.AffectedSubmissions, "10")
	assert.Contains(t, mit.InvolvedReviewers, "reviewerR")
}

func TestDetectAuthorIsReviewer(t *testing.T) {
	c := conflictCorpus()
	c.Submissions["12"] = model.Submission{
		Number:  "12",
		Authors: []string{"authorA"},
		Reviews: []model.Review{{ReviewerID: "authorA", Rating: model.Num(9)}},
	}

	rep := Detect(c)

	assert.Equal(t, 1, rep.ByType[AuthorIsReviewer], "identity anomalies are reported, never dropped")
	var found bool
	for _, inst := range rep.Instances {
		if inst.Type == AuthorIsReviewer {
			found = true
			assert.Equal(t, "12", inst.Submission)
			assert.Equal(t, "authorA", inst.ReviewerID)
		}
	}
	assert.True(t, found)
}

func TestDetectIgnoresUnknownInstitutions(t *testing.T) {
	c := &loader.Corpus{
		People: map[string]model.Person{
			"a": {ID: "a"}, // no affiliation -> Unknown
			"r": {ID: "r"},
		},
		Institutions: map[string]model.Institution{},
		Submissions: map[string]model.Submission{
			"1": {Number: "1", Authors: []string{"a"}, Reviews: []model.Review{
				{ReviewerID: "r"},
			}},
		},
	}

	rep := Detect(c)
	assert.Empty(t, rep.Instances, "a shared Unknown placeholder is not a conflict")
	assert.Equal(t, 0.0, rep.ConflictRate)
}

func TestConflictRateBounds(t *testing.T) {
	rep := Detect(conflictCorpus())
	assert.GreaterOrEqual(t, rep.ConflictRate, 0.0)
	assert.LessOrEqual(t, rep.ConflictRate, 1.0)
	assert.Equal(t, 0.5, rep.ConflictRate, "one of two submissions has a conflict")

	empty := Detect(&loader.Corpus{
		People:       map[string]model.Person{},
		Institutions: map[string]model.Institution{},
		Submissions:  map[string]model.Submission{},
	})
	assert.Equal(t, 0.0, empty.ConflictRate)
}

func TestSeverityTiers(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		expected string
	}{
		{name: "three conflicts is high", total: 3, expected: SeverityHigh},
		{name: "two conflicts is medium", total: 2, expected: SeverityMedium},
		{name: "one conflict is low", total: 1, expected: SeverityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Severity(tt.total))
		})
	}
}

func TestDetectAccumulatesPerSubmission(t *testing.T) {
	c := conflictCorpus()
	// A second MIT reviewer on submission 10.
	c.People["reviewerT"] = model.Person{ID: "reviewerT", Institution: "MIT"}
	sub := c.Submissions["10"]
	sub.Reviews = append(sub.Reviews, model.Review{ReviewerID: "reviewerT", Rating: model.Num(5)})
	c.Submissions["10"] = sub

	rep := Detect(c)

	sc := rep.BySubmission["10"]
	require.NotNil(t, sc)
	assert.Equal(t, 2, sc.ConflictCount)
	assert.Equal(t, []string{"MIT"}, sc.Institutions)

	mit := rep.ByInstitution["MIT"]
	assert.Equal(t, 2, mit.TotalConflicts)
	assert.Equal(t, SeverityMedium, mit.Severity)
	assert.Equal(t, []string{"reviewerR", "reviewerT"}, mit.InvolvedReviewers)
}
