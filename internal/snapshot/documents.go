package snapshot

import (
	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/aggregate"
	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/conflict"
	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/quality"
	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/ranking"
)

// File names of the seven derived documents. These are the external
// contract consumed by the serving layer.
const (
	FileStats               = "stats.json"
	FileInstitutions        = "institutions.json"
	FileReviewers           = "reviewers.json"
	FileConflictAnalysis    = "conflict-analysis.json"
	FileQualityAnalysis     = "quality-analysis.json"
	FileInstitutionAnalysis = "institution-analysis.json"
	FileReviewerAnalysis    = "reviewer-analysis.json"
)

// Files lists every document a complete snapshot contains.
var Files = []string{
	FileStats,
	FileInstitutions,
	FileReviewers,
	FileConflictAnalysis,
	FileQualityAnalysis,
	FileInstitutionAnalysis,
	FileReviewerAnalysis,
}

// Totals are the corpus-wide entity counts.
type Totals struct {
	People       int `json:"people"`
	Institutions int `json:"institutions"`
	Submissions  int `json:"submissions"`
	Reviews      int `json:"reviews"`
}

// GlobalStats is stats.json: global figures plus the top countries by
// academic power.
type GlobalStats struct {
	GeneratedAt    string                   `json:"generated_at"`
	Totals         Totals                   `json:"totals"`
	ReviewCoverage aggregate.Coverage       `json:"review_coverage"`
	AvgRating      *float64                 `json:"avg_rating"`
	AvgConfidence  *float64                 `json:"avg_confidence"`
	TopCountries   []aggregate.CountryStats `json:"top_countries"`
}

// InstitutionsDoc is institutions.json: the flat institution rollups.
type InstitutionsDoc struct {
	GeneratedAt  string                       `json:"generated_at"`
	Institutions []aggregate.InstitutionStats `json:"institutions"`
}

// ReviewersDoc is reviewers.json: every reviewer, unfiltered by the
// qualification threshold.
type ReviewersDoc struct {
	GeneratedAt string                    `json:"generated_at"`
	Reviewers   []aggregate.ReviewerStats `json:"reviewers"`
}

// ConflictOverview summarizes the detection run.
type ConflictOverview struct {
	TotalSubmissions         int     `json:"total_submissions"`
	SubmissionsWithConflicts int     `json:"submissions_with_conflicts"`
	ConflictRate             float64 `json:"conflict_rate"`
	TotalConflicts           int     `json:"total_conflicts"`
}

// ConflictTypeBreakdown counts conflicts per type.
type ConflictTypeBreakdown struct {
	SameInstitution  int `json:"same_institution"`
	AuthorIsReviewer int `json:"author_is_reviewer"`
}

// ConflictAnalysis is conflict-analysis.json.
type ConflictAnalysis struct {
	GeneratedAt         string                          `json:"generated_at"`
	Overview            ConflictOverview                `json:"overview"`
	TypeBreakdown       ConflictTypeBreakdown           `json:"conflict_type_breakdown"`
	InstitutionRanking  []conflict.InstitutionConflicts `json:"institution_conflict_ranking"`
	AffectedSubmissions []conflict.SubmissionConflicts  `json:"affected_submissions"`
}

// PaperClassification counts submissions per dispute label.
type PaperClassification struct {
	Disputed  int `json:"disputed"`
	Consensus int `json:"consensus"`
	Regular   int `json:"regular"`
}

// SystemHealth summarizes the qualifying reviewer pool.
type SystemHealth struct {
	QualifiedReviewers int      `json:"qualified_reviewers"`
	AvgQualityScore    *float64 `json:"avg_quality_score"`
}

// QualityAnalysis is quality-analysis.json.
type QualityAnalysis struct {
	GeneratedAt         string              `json:"generated_at"`
	ReviewCoverage      aggregate.Coverage  `json:"review_coverage"`
	TopReviewers        []quality.Score     `json:"top_reviewers"`
	PaperClassification PaperClassification `json:"paper_classification"`
	SystemHealth        SystemHealth        `json:"system_health"`
}

// InstitutionAnalysis is institution-analysis.json.
type InstitutionAnalysis struct {
	GeneratedAt      string                         `json:"generated_at"`
	InfluenceRanking []aggregate.InstitutionStats   `json:"influence_ranking"`
	CountryPower     []aggregate.CountryStats       `json:"country_power"`
	TypeComparison   map[string]aggregate.TypeStats `json:"type_comparison"`
}

// ReviewerAnalysis is reviewer-analysis.json.
type ReviewerAnalysis struct {
	GeneratedAt   string                `json:"generated_at"`
	Categories    ranking.Categories    `json:"reviewer_categories"`
	Distributions ranking.Distributions `json:"distributions"`
}

// Snapshot bundles the seven documents of one completed run.
type Snapshot struct {
	Stats               GlobalStats
	Institutions        InstitutionsDoc
	Reviewers           ReviewersDoc
	ConflictAnalysis    ConflictAnalysis
	QualityAnalysis     QualityAnalysis
	InstitutionAnalysis InstitutionAnalysis
	ReviewerAnalysis    ReviewerAnalysis
}

func (s *Snapshot) documents() map[string]any {
	return map[string]any{
		FileStats:               &s.Stats,
		FileInstitutions:        &s.Institutions,
		FileReviewers:           &s.Reviewers,
		FileConflictAnalysis:    &s.ConflictAnalysis,
		FileQualityAnalysis:     &s.QualityAnalysis,
		FileInstitutionAnalysis: &s.InstitutionAnalysis,
		FileReviewerAnalysis:    &s.ReviewerAnalysis,
	}
}
