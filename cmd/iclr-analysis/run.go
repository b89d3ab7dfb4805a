package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/archive"
	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/engine"
)

var runFlags struct {
	people          string
	institutions    string
	reviews         string
	out             string
	topReviewers    int
	topInstitutions int
	noArchive       bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one batch run over the three input corpora",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := engine.Config{
			PeoplePath:       runFlags.people,
			InstitutionsPath: runFlags.institutions,
			ReviewsPath:      runFlags.reviews,
			OutDir:           runFlags.out,
			TopReviewers:     runFlags.topReviewers,
			TopInstitutions:  runFlags.topInstitutions,
		}

		res, err := engine.Run(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		if !runFlags.noArchive {
			store, err := archive.Open(runFlags.out)
			if err != nil {
				// The snapshot is already on disk; a broken archive is
				// not worth failing the run over.
				slog.Warn("run archive unavailable", "error", err)
				return nil
			}
			defer store.Close()
			if err := store.RecordRun(res, runFlags.out); err != nil {
				slog.Warn("failed to archive run", "error", err)
			}
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runFlags.people, "people", "people.json", "people corpus path")
	runCmd.Flags().StringVar(&runFlags.institutions, "institutions", "institutions.json", "institutions corpus path")
	runCmd.Flags().StringVar(&runFlags.reviews, "reviews", "reviews.json", "reviews corpus path")
	runCmd.Flags().StringVar(&runFlags.out, "out", "analysis", "output directory for the derived documents")
	runCmd.Flags().IntVar(&runFlags.topReviewers, "top-reviewers", engine.DefaultTopReviewers, "reviewer top-list size")
	runCmd.Flags().IntVar(&runFlags.topInstitutions, "top-institutions", engine.DefaultTopInstitutions, "institution top-list size")
	runCmd.Flags().BoolVar(&runFlags.noArchive, "no-archive", false, "skip recording the run in the local archive")
}
