// Package conflict cross-references submission authorship, reviewer
// identity and institutional membership to flag conflicts of interest.
package conflict

import (
	"sort"

	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/loader"
	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/model"
	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/stats"
)

// Type discriminates the two kinds of detected conflicts.
type Type string

const (
	// SameInstitution: the reviewer shares a primary institution with
	// an author of the submission under review.
	SameInstitution Type = "same_institution"
	// AuthorIsReviewer: the reviewer id equals an author id. A
	// data-integrity anomaly, still reported as a conflict.
	AuthorIsReviewer Type = "author_is_reviewer"
)

// Severity tiers for institution conflict totals.
const (
	SeverityHigh   = "High"   // total_conflicts > 2
	SeverityMedium = "Medium" // total_conflicts > 1
	SeverityLow    = "Low"
)

// Instance is one detected conflict. Institution is empty for
// author_is_reviewer conflicts with no resolvable affiliation.
type Instance struct {
	Submission  string   `json:"submission"`
	Type        Type     `json:"type"`
	Institution string   `json:"institution,omitempty"`
	ReviewerID  string   `json:"reviewer_id"`
	AuthorIDs   []string `json:"author_ids"`
}

// SubmissionConflicts accumulates the conflicts of one submission.
type SubmissionConflicts struct {
	Submission    string   `json:"submission"`
	ConflictCount int      `json:"conflict_count"`
	Institutions  []string `json:"institutions"`
}

// InstitutionConflicts accumulates the conflicts implicating one
// institution.
type InstitutionConflicts struct {
	Institution         string   `json:"institution"`
	TotalConflicts      int      `json:"total_conflicts"`
	Severity            string   `json:"severity"`
	AffectedSubmissions []string `json:"affected_submissions"`
	InvolvedReviewers   []string `json:"involved_reviewers"`
}

// Report is the full conflict-detection result for one run.
type Report struct {
	Instances                []Instance
	TotalSubmissions         int
	SubmissionsWithConflicts int
	ConflictRate             float64
	ByType                   map[Type]int
	BySubmission             map[string]*SubmissionConflicts
	ByInstitution            map[string]*InstitutionConflicts
}

// Severity maps an institution conflict total to its tier.
func Severity(totalConflicts int) string {
	switch {
	case totalConflicts > 2:
		return SeverityHigh
	case totalConflicts > 1:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// Detect scans every submission's reviews against its author set. Each
// submission's detection touches only that submission, so the loop
// order carries no state across iterations.
func Detect(c *loader.Corpus) *Report {
	rep := &Report{
		TotalSubmissions: len(c.Submissions),
		ByType:           make(map[Type]int),
		BySubmission:     make(map[string]*SubmissionConflicts),
		ByInstitution:    make(map[string]*InstitutionConflicts),
	}

	primary := func(personID string) string {
		p, ok := c.People[personID]
		if !ok {
			return model.UnknownInstitution
		}
		return p.PrimaryInstitution()
	}

	for number, sub := range c.Submissions {
		authorInsts := make(map[string]struct{})
		authorSet := make(map[string]struct{}, len(sub.Authors))
		for _, authorID := range sub.Authors {
			authorSet[authorID] = struct{}{}
			if inst := primary(authorID); inst != model.UnknownInstitution {
				authorInsts[inst] = struct{}{}
			}
		}

		for _, rev := range sub.Reviews {
			if _, ok := authorSet[rev.ReviewerID]; ok {
				inst := primary(rev.ReviewerID)
				if inst == model.UnknownInstitution {
					inst = ""
				}
				rep.record(Instance{
					Submission:  number,
					Type:        AuthorIsReviewer,
					Institution: inst,
					ReviewerID:  rev.ReviewerID,
					AuthorIDs:   append([]string(nil), sub.Authors...),
				})
				continue
			}
			if inst := primary(rev.ReviewerID); inst != model.UnknownInstitution {
				if _, ok := authorInsts[inst]; ok {
					rep.record(Instance{
						Submission:  number,
						Type:        SameInstitution,
						Institution: inst,
						ReviewerID:  rev.ReviewerID,
						AuthorIDs:   append([]string(nil), sub.Authors...),
					})
				}
			}
		}
	}

	rep.SubmissionsWithConflicts = len(rep.BySubmission)
	if rep.TotalSubmissions > 0 {
		rep.ConflictRate = stats.Round(
			float64(rep.SubmissionsWithConflicts)/float64(rep.TotalSubmissions), 3)
	}
	rep.finalize()
	return rep
}

func (r *Report) record(inst Instance) {
	r.Instances = append(r.Instances, inst)
	r.ByType[inst.Type]++

	sc := r.BySubmission[inst.Submission]
	if sc == nil {
		sc = &SubmissionConflicts{Submission: inst.Submission}
		r.BySubmission[inst.Submission] = sc
	}
	sc.ConflictCount++
	if inst.Institution != "" {
		sc.Institutions = appendUnique(sc.Institutions, inst.Institution)
	}

	if inst.Institution == "" {
		return
	}
	ic := r.ByInstitution[inst.Institution]
	if ic == nil {
		ic = &InstitutionConflicts{Institution: inst.Institution}
		r.ByInstitution[inst.Institution] = ic
	}
	ic.TotalConflicts++
	ic.AffectedSubmissions = appendUnique(ic.AffectedSubmissions, inst.Submission)
	ic.InvolvedReviewers = appendUnique(ic.InvolvedReviewers, inst.ReviewerID)
}

func (r *Report) finalize() {
	for _, ic := range r.ByInstitution {
		ic.Severity = Severity(ic.TotalConflicts)
		sort.Strings(ic.AffectedSubmissions)
		sort.Strings(ic.InvolvedReviewers)
	}
	for _, sc := range r.BySubmission {
		sort.Strings(sc.Institutions)
	}
	sort.Slice(r.Instances, func(i, j int) bool {
		a, b := r.Instances[i], r.Instances[j]
		if a.Submission != b.Submission {
			return a.Submission < b.Submission
		}
		return a.ReviewerID < b.ReviewerID
	})
}

func appendUnique(xs []string, s string) []string {
	for _, x := range xs {
		if x == s {
			return xs
		}
	}
	return append(xs, s)
}
