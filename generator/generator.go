package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/viant/afs"
	"github.com/viant/icongen/change"
	"github.com/viant/icongen/config"
	"github.com/viant/icongen/extractor"
	"github.com/viant/icongen/reconciler"
	"github.com/viant/icongen/state"
	"golang.org/x/sync/errgroup"
)

// Service turns source change events into icon artifacts
type Service struct {
	config     *config.Config
	logger     *slog.Logger
	fs         afs.Service
	settings   string
	extractor  *extractor.Extractor
	reconciler *reconciler.Reconciler
	detector   *change.Detector
}

// Report is the outcome of processing one source change
type Report struct {
	Source   change.Source
	Icons    int
	Written  []string
	Deleted  []string
	Warnings []*extractor.Warning
	Err      error
}

// Summary aggregates the reports of one pass
type Summary struct {
	Reports  []*Report
	Written  int
	Deleted  int
	Warnings int
	Failed   int
}

func (s *Summary) add(report *Report) {
	s.Reports = append(s.Reports, report)
	s.Written += len(report.Written)
	s.Deleted += len(report.Deleted)
	s.Warnings += len(report.Warnings)
	if report.Err != nil {
		s.Failed++
	}
}

// New validates the configuration and creates a service; cfg must be initialised
func New(cfg *config.Config, logger *slog.Logger) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	fs := afs.New()
	store := state.NewStore(fs, cfg.StateDir, cfg.ProjectRoot, cfg.OutputDir)
	settings, err := cfg.Fingerprint()
	if err != nil {
		return nil, err
	}
	ret := &Service{
		config:     cfg,
		logger:     logger,
		fs:         fs,
		settings:   settings,
		reconciler: reconciler.New(fs, store),
	}
	ret.detector = ret.newDetector()
	ret.extractor = extractor.New(
		extractor.WithExtension(cfg.Extension),
		extractor.WithWarn(ret.emitWarning),
	)
	return ret, nil
}

func (s *Service) emitWarning(warning *extractor.Warning) {
	s.logger.Log(context.Background(), warning.Level(), warning.String(), "kind", string(warning.Kind))
}

// Process runs one reconciliation task: extract icons (unless the source was removed),
// then reconcile the source's outputs with them
func (s *Service) Process(ctx context.Context, source change.Source) (*Report, error) {
	s.logger.Debug("processing source", "path", source.Path, "change", source.Kind.String())
	report := &Report{Source: source}
	var icons []*extractor.Icon
	if source.Kind != change.Removed {
		result, err := s.extractor.Extract(ctx, source.Path, s.config.FieldType)
		if err != nil {
			return report, fmt.Errorf("failed to extract icons from %s: %w", source.Path, err)
		}
		icons = result.Icons
		report.Warnings = result.Warnings
		report.Icons = len(icons)
	}
	result, err := s.reconciler.Reconcile(ctx, source, icons)
	if result != nil {
		report.Written = result.Written
		report.Deleted = result.Deleted
	}
	if err != nil {
		return report, fmt.Errorf("failed to reconcile %s: %w", source.Path, err)
	}
	return report, nil
}

// Run processes every change on a bounded worker pool and waits for all of them.
// A failing source does not stop its siblings; failures are joined into the returned error.
func (s *Service) Run(ctx context.Context, changes []change.Source) (*Summary, error) {
	reports := make([]*Report, len(changes))
	group := &errgroup.Group{}
	group.SetLimit(s.config.Concurrency)
	for i, source := range changes {
		i, source := i, source
		group.Go(func() error {
			report, err := s.Process(ctx, source)
			report.Err = err
			reports[i] = report
			return nil // failures stay on the report so that siblings keep running
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	summary := &Summary{}
	var errs []error
	for _, report := range reports {
		summary.add(report)
		if report.Err != nil {
			s.logger.Error("failed to process source", "path", report.Source.Path, "error", report.Err)
			errs = append(errs, report.Err)
		}
	}
	return summary, errors.Join(errs...)
}

// Generate detects source changes since the previous pass and processes them
func (s *Service) Generate(ctx context.Context) (*Summary, error) {
	changes, err := s.detector.Detect(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("detected source changes", "count", len(changes))
	return s.Apply(ctx, changes)
}

// Apply processes explicit change events and commits the successful ones
func (s *Service) Apply(ctx context.Context, changes []change.Source) (*Summary, error) {
	summary, runErr := s.Run(ctx, changes)
	if summary == nil {
		return nil, runErr
	}
	var processed []change.Source
	for _, report := range summary.Reports {
		if report.Err == nil {
			processed = append(processed, report.Source)
		}
	}
	if len(processed) > 0 {
		if err := s.detector.Commit(ctx, processed); err != nil {
			return summary, errors.Join(runErr, err)
		}
	}
	s.logger.Info("icons generated",
		"sources", len(summary.Reports),
		"written", summary.Written,
		"deleted", summary.Deleted,
		"warnings", summary.Warnings,
		"failed", summary.Failed)
	return summary, runErr
}

// Clean removes the output and state directories
func (s *Service) Clean(ctx context.Context) error {
	for _, location := range []string{s.config.OutputDir, s.config.StateDir} {
		exists, err := s.fs.Exists(ctx, location)
		if err != nil {
			return err
		}
		if !exists {
			continue
		}
		if err = s.fs.Delete(ctx, location); err != nil {
			return fmt.Errorf("failed to delete %s: %w", location, err)
		}
		s.logger.Info("deleted", "path", location)
	}
	s.detector = s.newDetector()
	return nil
}

func (s *Service) newDetector() *change.Detector {
	return change.NewDetector(s.fs, s.config.ProjectRoot, s.config.Sources, s.config.Pattern, s.config.ManifestLocation(),
		change.WithSettings(s.settings))
}
