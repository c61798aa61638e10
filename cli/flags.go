package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/icongen/change"
	"github.com/viant/icongen/config"
	"github.com/viant/icongen/inspector/repository"
)

// OptionalStringFlag returns the trimmed flag value, empty when the command does not define it
func OptionalStringFlag(cmd *cobra.Command, name string) (string, error) {
	if cmd == nil || cmd.Flags().Lookup(name) == nil {
		return "", nil
	}
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return "", fmt.Errorf("failed to read --%s flag: %w", name, err)
	}
	return strings.TrimSpace(value), nil
}

// OptionalStringSliceFlag returns the non blank values of a slice flag, nil when the command does not define it
func OptionalStringSliceFlag(cmd *cobra.Command, name string) ([]string, error) {
	if cmd == nil || cmd.Flags().Lookup(name) == nil {
		return nil, nil
	}
	values, err := cmd.Flags().GetStringSlice(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read --%s flag: %w", name, err)
	}
	var result []string
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			result = append(result, value)
		}
	}
	return result, nil
}

// NewLogger writes text logs to the command's error stream
func NewLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if cmd.Flags().Lookup("verbose") != nil {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = slog.LevelDebug
		}
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// LoadConfig builds the effective configuration: the configuration file (explicit or found
// at the project root) overridden by command flags, with defaults applied
func LoadConfig(ctx context.Context, cmd *cobra.Command) (*config.Config, error) {
	flags, err := configFromFlags(cmd)
	if err != nil {
		return nil, err
	}
	location, err := OptionalStringFlag(cmd, "config")
	if err != nil {
		return nil, err
	}
	if location == "" {
		if flags.ProjectRoot == "" {
			wd, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			project, err := repository.New().DetectProject(wd)
			if err != nil {
				return nil, fmt.Errorf("failed to detect project root: %w", err)
			}
			flags.ProjectRoot = project.RootPath
		}
		candidate := filepath.Join(flags.ProjectRoot, config.DefaultFile)
		if ok, _ := afs.New().Exists(ctx, candidate); ok {
			location = candidate
		}
	}

	cfg := &config.Config{}
	if location != "" {
		if cfg, err = config.Load(ctx, location); err != nil {
			return nil, err
		}
	}
	cfg.Merge(flags)
	if err = cfg.Init(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func configFromFlags(cmd *cobra.Command) (*config.Config, error) {
	ret := &config.Config{}
	var err error
	for name, target := range map[string]*string{
		"project":    &ret.ProjectRoot,
		"pattern":    &ret.Pattern,
		"output":     &ret.OutputDir,
		"state":      &ret.StateDir,
		"field-type": &ret.FieldType,
		"extension":  &ret.Extension,
	} {
		if *target, err = OptionalStringFlag(cmd, name); err != nil {
			return nil, err
		}
	}
	if ret.ProjectRoot != "" {
		if ret.ProjectRoot, err = filepath.Abs(ret.ProjectRoot); err != nil {
			return nil, err
		}
	}
	if ret.Sources, err = OptionalStringSliceFlag(cmd, "source"); err != nil {
		return nil, err
	}
	if cmd.Flags().Lookup("concurrency") != nil {
		if ret.Concurrency, err = cmd.Flags().GetInt("concurrency"); err != nil {
			return nil, fmt.Errorf("failed to read --concurrency flag: %w", err)
		}
	}
	return ret, nil
}

// ParseEvents returns the explicit change events given on the command line, resolved
// against the working directory; nil means changes should be detected
func ParseEvents(cmd *cobra.Command) ([]change.Source, error) {
	var result []change.Source
	for _, kind := range []change.Kind{change.Added, change.Modified, change.Removed} {
		paths, err := OptionalStringSliceFlag(cmd, kind.String())
		if err != nil {
			return nil, err
		}
		for _, path := range paths {
			location, err := filepath.Abs(path)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve path %q: %w", path, err)
			}
			result = append(result, change.Source{Kind: kind, Path: location})
		}
	}
	return result, nil
}
