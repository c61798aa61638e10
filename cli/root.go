package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/viant/icongen/change"
	"github.com/viant/icongen/config"
	"github.com/viant/icongen/extractor"
)

// NewRootCommand builds the icongen command tree
func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "icongen",
		Short: "Generate icon files from base64 constants in Java sources",
		Long: `Icongen scans Java sources for public final string constants holding
base64 encoded images and writes each one to its own file under the
output directory, keeping the outputs in step with the sources across
incremental builds.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("config", "", "Configuration file (default: <project>/"+config.DefaultFile+")")
	rootCmd.PersistentFlags().String("project", "", "Project root (default: detected from the working directory)")
	rootCmd.PersistentFlags().String("output", "", "Output directory (default: "+config.DefaultOutputDir+")")
	rootCmd.PersistentFlags().String("state", "", "State directory (default: "+config.DefaultStateDir+")")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate icons for added, modified and removed sources",
		Args:  cobra.NoArgs,
		RunE:  RunGenerate,
	}
	generateCmd.Flags().StringSlice("source", []string{}, "Source directories (default: "+config.DefaultSourceDir+")")
	generateCmd.Flags().String("pattern", "", "Source include pattern (default: "+change.DefaultPattern+")")
	generateCmd.Flags().String("field-type", "", "Declared field type to extract (default: "+extractor.DefaultFieldType+")")
	generateCmd.Flags().String("extension", "", "Icon file extension (default: "+extractor.DefaultExtension+")")
	generateCmd.Flags().Int("concurrency", 0, "Number of sources processed in parallel (default: number of CPUs)")
	generateCmd.Flags().StringSlice("added", []string{}, "Process the given added sources instead of detecting changes")
	generateCmd.Flags().StringSlice("modified", []string{}, "Process the given modified sources instead of detecting changes")
	generateCmd.Flags().StringSlice("removed", []string{}, "Process the given removed sources instead of detecting changes")

	cleanCmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove generated icons and build state",
		Args:  cobra.NoArgs,
		RunE:  RunClean,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "icongen %s\n", version)
		},
	}

	rootCmd.AddCommand(
		generateCmd,
		cleanCmd,
		versionCmd,
	)
	return rootCmd
}
