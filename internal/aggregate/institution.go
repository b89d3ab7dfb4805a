package aggregate

import (
	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/loader"
	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/model"
	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/stats"
)

// InstitutionStats is the derived per-institution record.
// TotalMembers counts unique persons with the institution as primary
// affiliation; AuthorCount and ReviewerCount count participation
// events, one per (person, submission) pair, so a person reviewing
// three papers contributes three reviewer events.
type InstitutionStats struct {
	Name              string   `json:"name"`
	Country           string   `json:"country"`
	Type              string   `json:"type"`
	TotalMembers      int      `json:"total_members"`
	AuthorCount       int      `json:"author_count"`
	ReviewerCount     int      `json:"reviewer_count"`
	UniqueSubmissions int      `json:"unique_submissions"`
	AvgRatingGiven    *float64 `json:"avg_rating_given"`
	AvgConfidence     *float64 `json:"avg_confidence"`
}

// CountryStats rolls institution-level fields up by country.
type CountryStats struct {
	Country            string `json:"country"`
	InstitutionCount   int    `json:"institution_count"`
	TotalMembers       int    `json:"total_members"`
	TotalReviewers     int    `json:"total_reviewers"`
	AcademicPowerScore int    `json:"academic_power_score"`
}

// TypeStats rolls institutions up by type (University/Company/Unknown).
type TypeStats struct {
	Count                    int     `json:"count"`
	TotalMembers             int     `json:"total_members"`
	AvgMembersPerInstitution float64 `json:"avg_members_per_institution"`
}

type institutionAccum struct {
	members     map[string]struct{}
	authorPairs map[[2]string]struct{}
	reviewPairs map[[2]string]struct{}
	submissions map[string]struct{}
	ratings     []float64
	confidences []float64
}

func newInstitutionAccum() *institutionAccum {
	return &institutionAccum{
		members:     make(map[string]struct{}),
		authorPairs: make(map[[2]string]struct{}),
		reviewPairs: make(map[[2]string]struct{}),
		submissions: make(map[string]struct{}),
	}
}

// Institutions rolls person membership and review participation up into
// per-institution statistics. Every institution in the corpus gets an
// entry, including synthesized placeholders.
func Institutions(c *loader.Corpus) map[string]InstitutionStats {
	accums := make(map[string]*institutionAccum, len(c.Institutions))
	accum := func(name string) *institutionAccum {
		acc := accums[name]
		if acc == nil {
			acc = newInstitutionAccum()
			accums[name] = acc
		}
		return acc
	}

	primary := func(personID string) string {
		p, ok := c.People[personID]
		if !ok {
			return model.UnknownInstitution
		}
		return p.PrimaryInstitution()
	}

	for _, p := range c.People {
		accum(p.PrimaryInstitution()).members[p.ID] = struct{}{}
	}

	for number, sub := range c.Submissions {
		for _, authorID := range sub.Authors {
			acc := accum(primary(authorID))
			acc.authorPairs[[2]string{authorID, number}] = struct{}{}
			acc.submissions[number] = struct{}{}
		}
		for _, rev := range sub.Reviews {
			acc := accum(primary(rev.ReviewerID))
			acc.reviewPairs[[2]string{rev.ReviewerID, number}] = struct{}{}
			acc.submissions[number] = struct{}{}
			if rev.Rating.Valid {
				acc.ratings = append(acc.ratings, rev.Rating.Value)
			}
			if rev.Confidence.Valid {
				acc.confidences = append(acc.confidences, rev.Confidence.Value)
			}
		}
	}

	out := make(map[string]InstitutionStats, len(c.Institutions))
	finalize := func(name string, acc *institutionAccum) {
		inst, ok := c.Institutions[name]
		if !ok {
			inst = model.Institution{Name: name, Country: model.UnknownInstitution, Type: model.TypeUnknown}
		}
		is := InstitutionStats{
			Name:              name,
			Country:           inst.Country,
			Type:              inst.Type,
			TotalMembers:      len(acc.members),
			AuthorCount:       len(acc.authorPairs),
			ReviewerCount:     len(acc.reviewPairs),
			UniqueSubmissions: len(acc.submissions),
		}
		if m, ok := stats.Mean(acc.ratings); ok {
			avg := stats.Round(m, 2)
			is.AvgRatingGiven = &avg
		}
		if m, ok := stats.Mean(acc.confidences); ok {
			avg := stats.Round(m, 2)
			is.AvgConfidence = &avg
		}
		out[name] = is
	}

	for name := range c.Institutions {
		acc := accums[name]
		if acc == nil {
			acc = newInstitutionAccum()
		}
		finalize(name, acc)
	}
	// Participation attributed to institutions outside the corpus
	// (synthetic "Unknown" primaries) still gets an entry.
	for name, acc := range accums {
		if _, ok := out[name]; !ok {
			finalize(name, acc)
		}
	}
	return out
}

// AcademicPowerScore is the fixed linear country scoring formula. The
// coefficients are part of the output contract.
func AcademicPowerScore(totalMembers, totalReviewers, institutionCount int) int {
	score := float64(totalMembers)*0.4 + float64(totalReviewers)*0.35 + float64(institutionCount)*0.25
	return int(stats.Round(score, 0))
}

// Countries sums institution rollups per country and applies the
// academic power formula.
func Countries(insts map[string]InstitutionStats) map[string]CountryStats {
	out := make(map[string]CountryStats)
	for _, is := range insts {
		country := is.Country
		if country == "" {
			country = model.UnknownInstitution
		}
		cs := out[country]
		cs.Country = country
		cs.InstitutionCount++
		cs.TotalMembers += is.TotalMembers
		cs.TotalReviewers += is.ReviewerCount
		out[country] = cs
	}
	for country, cs := range out {
		cs.AcademicPowerScore = AcademicPowerScore(cs.TotalMembers, cs.TotalReviewers, cs.InstitutionCount)
		out[country] = cs
	}
	return out
}

// Types rolls institutions up by type.
func Types(insts map[string]InstitutionStats) map[string]TypeStats {
	out := make(map[string]TypeStats)
	for _, is := range insts {
		t := is.Type
		if t == "" {
			t = model.TypeUnknown
		}
		ts := out[t]
		ts.Count++
		ts.TotalMembers += is.TotalMembers
		out[t] = ts
	}
	for t, ts := range out {
		if ts.Count > 0 {
			ts.AvgMembersPerInstitution = stats.Round(float64(ts.TotalMembers)/float64(ts.Count), 2)
		}
		out[t] = ts
	}
	return out
}
