// Package engine orchestrates one batch run: load the corpus, fold the
// three aggregators in parallel, detect conflicts, score, rank, and
// write the snapshot. A run is a single pass; any fatal error aborts it
// in place with no output written.
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/aggregate"
	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/conflict"
	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/loader"
	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/quality"
	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/ranking"
	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/snapshot"
	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/stats"
)

// Config is the full engine configuration: the three corpus paths, the
// output directory, and the two list limits.
type Config struct {
	PeoplePath       string
	InstitutionsPath string
	ReviewsPath      string
	OutDir           string
	TopReviewers     int
	TopInstitutions  int
}

// DefaultTopReviewers and DefaultTopInstitutions are the documented
// list sizes when no limit is configured.
const (
	DefaultTopReviewers    = 25
	DefaultTopInstitutions = 50
	topCountries           = 20
)

// Result summarizes a completed run for logging and archiving.
type Result struct {
	RunID        string
	RunAt        time.Time
	People       int
	Institutions int
	Submissions  int
	Reviews      int
	ConflictRate float64
}

// Run executes the whole pipeline over one immutable input snapshot.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.TopReviewers <= 0 {
		cfg.TopReviewers = DefaultTopReviewers
	}
	if cfg.TopInstitutions <= 0 {
		cfg.TopInstitutions = DefaultTopInstitutions
	}

	runID := uuid.New().String()
	runAt := time.Now().UTC()
	slog.Info("run starting", "run_id", runID)

	corpus, err := loader.Load(cfg.PeoplePath, cfg.InstitutionsPath, cfg.ReviewsPath)
	if err != nil {
		return nil, err
	}
	slog.Info("state", "run_id", runID, "state", "loaded")

	// The aggregators read the same immutable lookup tables and write
	// to disjoint key spaces, so they fan out without locking.
	var (
		reviewers    map[string]aggregate.ReviewerStats
		submissions  map[string]aggregate.SubmissionStats
		coverage     aggregate.Coverage
		institutions map[string]aggregate.InstitutionStats
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		reviewers = aggregate.Reviewers(corpus)
		return nil
	})
	g.Go(func() error {
		submissions, coverage = aggregate.Submissions(corpus)
		return nil
	})
	g.Go(func() error {
		institutions = aggregate.Institutions(corpus)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	slog.Info("state", "run_id", runID, "state", "aggregated",
		"reviewers", len(reviewers), "institutions", len(institutions))

	report := conflict.Detect(corpus)
	slog.Info("state", "run_id", runID, "state", "conflicts_detected",
		"conflicts", len(report.Instances), "conflict_rate", report.ConflictRate)

	scores := quality.Scores(reviewers)
	slog.Info("state", "run_id", runID, "state", "scored", "qualified_reviewers", len(scores))

	snap := assemble(corpus, reviewers, submissions, coverage, institutions, report, scores, cfg, runAt)
	slog.Info("state", "run_id", runID, "state", "ranked")

	if err := snapshot.NewWriter(cfg.OutDir).Write(snap); err != nil {
		return nil, err
	}
	slog.Info("state", "run_id", runID, "state", "written")

	res := &Result{
		RunID:        runID,
		RunAt:        runAt,
		People:       len(corpus.People),
		Institutions: len(corpus.Institutions),
		Submissions:  len(corpus.Submissions),
		Reviews:      corpus.TotalReviews(),
		ConflictRate: report.ConflictRate,
	}
	slog.Info("run done", "run_id", runID)
	return res, nil
}

func assemble(
	corpus *loader.Corpus,
	reviewers map[string]aggregate.ReviewerStats,
	submissions map[string]aggregate.SubmissionStats,
	coverage aggregate.Coverage,
	institutions map[string]aggregate.InstitutionStats,
	report *conflict.Report,
	scores map[string]quality.Score,
	cfg Config,
	runAt time.Time,
) *snapshot.Snapshot {
	generatedAt := runAt.Format(time.RFC3339)
	countries := aggregate.Countries(institutions)

	var allRatings, allConfidences []float64
	for _, sub := range corpus.Submissions {
		for _, rev := range sub.Reviews {
			if rev.Rating.Valid {
				allRatings = append(allRatings, rev.Rating.Value)
			}
			if rev.Confidence.Valid {
				allConfidences = append(allConfidences, rev.Confidence.Value)
			}
		}
	}

	var classification snapshot.PaperClassification
	for _, ss := range submissions {
		switch ss.Classification {
		case aggregate.ClassDisputed:
			classification.Disputed++
		case aggregate.ClassConsensus:
			classification.Consensus++
		default:
			classification.Regular++
		}
	}

	health := snapshot.SystemHealth{QualifiedReviewers: len(scores)}
	if len(scores) > 0 {
		sum := 0.0
		for _, s := range scores {
			sum += s.OverallScore
		}
		avg := stats.Round(sum/float64(len(scores)), 1)
		health.AvgQualityScore = &avg
	}

	categories, distributions := ranking.Categorize(reviewers, cfg.TopReviewers)

	snap := &snapshot.Snapshot{
		Stats: snapshot.GlobalStats{
			GeneratedAt: generatedAt,
			Totals: snapshot.Totals{
				People:       len(corpus.People),
				Institutions: len(corpus.Institutions),
				Submissions:  len(corpus.Submissions),
				Reviews:      corpus.TotalReviews(),
			},
			ReviewCoverage: coverage,
			TopCountries:   ranking.TopCountries(countries, topCountries),
		},
		Institutions: snapshot.InstitutionsDoc{
			GeneratedAt:  generatedAt,
			Institutions: ranking.AllInstitutions(institutions),
		},
		Reviewers: snapshot.ReviewersDoc{
			GeneratedAt: generatedAt,
			Reviewers:   ranking.AllReviewers(reviewers),
		},
		ConflictAnalysis: snapshot.ConflictAnalysis{
			GeneratedAt: generatedAt,
			Overview: snapshot.ConflictOverview{
				TotalSubmissions:         report.TotalSubmissions,
				SubmissionsWithConflicts: report.SubmissionsWithConflicts,
				ConflictRate:             report.ConflictRate,
				TotalConflicts:           len(report.Instances),
			},
			TypeBreakdown: snapshot.ConflictTypeBreakdown{
				SameInstitution:  report.ByType[conflict.SameInstitution],
				AuthorIsReviewer: report.ByType[conflict.AuthorIsReviewer],
			},
			InstitutionRanking:  ranking.ConflictRanking(report),
			AffectedSubmissions: ranking.AffectedSubmissions(report),
		},
		QualityAnalysis: snapshot.QualityAnalysis{
			GeneratedAt:         generatedAt,
			ReviewCoverage:      coverage,
			TopReviewers:        ranking.TopQuality(scores, cfg.TopReviewers),
			PaperClassification: classification,
			SystemHealth:        health,
		},
		InstitutionAnalysis: snapshot.InstitutionAnalysis{
			GeneratedAt:      generatedAt,
			InfluenceRanking: ranking.InfluenceRanking(institutions, cfg.TopInstitutions),
			CountryPower:     ranking.TopCountries(countries, 0),
			TypeComparison:   aggregate.Types(institutions),
		},
		ReviewerAnalysis: snapshot.ReviewerAnalysis{
			GeneratedAt:   generatedAt,
			Categories:    categories,
			Distributions: distributions,
		},
	}

	if m, ok := stats.Mean(allRatings); ok {
		avg := stats.Round(m, 2)
		snap.Stats.AvgRating = &avg
	}
	if m, ok := stats.Mean(allConfidences); ok {
		avg := stats.Round(m, 2)
		snap.Stats.AvgConfidence = &avg
	}

	return snap
}
