package model

// UnknownInstitution is the placeholder name assigned when a person's
// affiliation cannot be resolved against the institution corpus.
const UnknownInstitution = "Unknown"

// Institution types as they appear in the source corpus.
const (
	TypeUniversity = "University"
	TypeCompany    = "Company"
	TypeUnknown    = "Unknown"
)

// Person is an immutable input record from people.json. The ID is the
// map key in the source document and is filled in by the loader.
type Person struct {
	ID           string   `json:"-"`
	Name         string   `json:"name"`
	Nationality  string   `json:"nationality"`
	Gender       string   `json:"gender"`
	Role         string   `json:"role"`
	Institution  string   `json:"institution"`
	Institutions []string `json:"institutions"`
}

// PrimaryInstitution returns the person's primary affiliation: the
// single "institution" field when present, otherwise the first entry of
// the ordered affiliation list, otherwise UnknownInstitution.
func (p Person) PrimaryInstitution() string {
	if p.Institution != "" {
		return p.Institution
	}
	if len(p.Institutions) > 0 && p.Institutions[0] != "" {
		return p.Institutions[0]
	}
	return UnknownInstitution
}

// Institution is an immutable input record from institutions.json.
type Institution struct {
	Name    string `json:"institution_name"`
	Country string `json:"country"`
	Type    string `json:"institution_type"`
}

// ReviewContent holds the free-text fields of a review.
type ReviewContent struct {
	Summary    string `json:"summary"`
	Strengths  string `json:"strengths"`
	Weaknesses string `json:"weaknesses"`
	Questions  string `json:"questions"`
}

// Review is a single review of a submission. Rating and Confidence are
// optional: the source corpus is loosely shaped and either may be
// absent or non-numeric.
type Review struct {
	ID         string        `json:"review_id"`
	ReviewerID string        `json:"reviewer_id"`
	Rating     Number        `json:"rating"`
	Confidence Number        `json:"confidence"`
	Content    ReviewContent `json:"content"`
	EthicsFlag bool          `json:"flag_for_ethics_review"`
}

// Submission is an immutable input record from reviews.json. Number is
// the map key in the source document and is filled in by the loader.
type Submission struct {
	Number  string   `json:"-"`
	ID      string   `json:"submission_id"`
	Authors []string `json:"authors"`
	Reviews []Review `json:"reviews"`
}
