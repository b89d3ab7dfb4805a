// Package loader parses the three source corpora and builds the
// id-keyed lookup tables the aggregators fold over. It performs no
// statistics of its own.
package loader

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/apperrors"
	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/model"
)

// Corpus is the immutable input snapshot for one engine run. Nothing in
// it is mutated after Load returns.
type Corpus struct {
	People       map[string]model.Person      // person_id -> Person
	Institutions map[string]model.Institution // institution_name -> Institution
	Submissions  map[string]model.Submission  // submission_number -> Submission

	// PlaceholderInstitutions counts institutions synthesized for
	// affiliations absent from the institution corpus.
	PlaceholderInstitutions int
}

// TotalReviews counts every review across all submissions.
func (c *Corpus) TotalReviews() int {
	n := 0
	for _, sub := range c.Submissions {
		n += len(sub.Reviews)
	}
	return n
}

type peopleDoc struct {
	People map[string]model.Person `json:"people"`
}

type institutionsDoc struct {
	Institutions []model.Institution `json:"institutions"`
}

type reviewsDoc struct {
	Reviews map[string]model.Submission `json:"reviews"`
}

// Load reads and validates the three corpora. Any unreadable or
// unparseable document is a fatal input error; cross-references to
// missing institutions are resolved to placeholders instead.
func Load(peoplePath, institutionsPath, reviewsPath string) (*Corpus, error) {
	var people peopleDoc
	if err := readJSON(peoplePath, &people); err != nil {
		return nil, err
	}

	var institutions institutionsDoc
	if err := readJSON(institutionsPath, &institutions); err != nil {
		return nil, err
	}

	var reviews reviewsDoc
	if err := readJSON(reviewsPath, &reviews); err != nil {
		return nil, err
	}

	c := &Corpus{
		People:       make(map[string]model.Person, len(people.People)),
		Institutions: make(map[string]model.Institution, len(institutions.Institutions)),
		Submissions:  make(map[string]model.Submission, len(reviews.Reviews)),
	}

	for id, p := range people.People {
		p.ID = id
		c.People[id] = p
	}

	for _, inst := range institutions.Institutions {
		if inst.Name == "" {
			continue
		}
		if inst.Country == "" {
			inst.Country = model.UnknownInstitution
		}
		if inst.Type == "" {
			inst.Type = model.TypeUnknown
		}
		c.Institutions[inst.Name] = inst
	}

	for number, sub := range reviews.Reviews {
		sub.Number = number
		c.Submissions[number] = sub
	}

	c.resolveAffiliations()

	slog.Info("corpus loaded",
		"people", len(c.People),
		"institutions", len(c.Institutions),
		"submissions", len(c.Submissions),
		"reviews", c.TotalReviews(),
		"placeholder_institutions", c.PlaceholderInstitutions)

	return c, nil
}

// resolveAffiliations synthesizes a placeholder institution for every
// affiliation referenced by a person but absent from the institution
// corpus. The run never fails on a dangling reference.
func (c *Corpus) resolveAffiliations() {
	ensure := func(name string) {
		if name == "" {
			return
		}
		if _, ok := c.Institutions[name]; ok {
			return
		}
		c.Institutions[name] = model.Institution{
			Name:    name,
			Country: model.UnknownInstitution,
			Type:    model.TypeUnknown,
		}
		c.PlaceholderInstitutions++
		slog.Warn("unknown institution reference, synthesizing placeholder", "institution", name)
	}

	for _, p := range c.People {
		ensure(p.Institution)
		for _, name := range p.Institutions {
			ensure(name)
		}
	}
}

func readJSON(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return apperrors.NewFatalInputError(path, err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(v); err != nil {
		return apperrors.NewFatalInputError(path, err)
	}
	return nil
}
