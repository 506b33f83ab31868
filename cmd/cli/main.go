package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/justinjohnso/soundmesh/internal/buildenv"
	simple "github.com/justinjohnso/soundmesh/internal/configurations"
	"github.com/justinjohnso/soundmesh/internal/logging"
	"github.com/justinjohnso/soundmesh/internal/manifest"
)

const defaultLogLevel = "info"

func main() {
	var levelVar slog.LevelVar
	levelVar.Set(slog.LevelInfo)

	logger := logging.NewCLI(os.Stderr, &levelVar)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCommand(logger, &levelVar)
	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("command interrupted", "error", err)
			os.Exit(130)
		}
		logger.Error("command execution failed", "error", err)
		os.Exit(1)
	}
}

func newRootCommand(logger *slog.Logger, levelVar *slog.LevelVar) *cobra.Command {
	logLevel := defaultLogLevel

	root := &cobra.Command{
		Use:           "soundmesh",
		Short:         "Build-configuration helper for the soundmesh firmware variants",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", defaultLogLevel, "Set log verbosity (debug, info, warning, error)")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level, err := parseLogLevel(logLevel)
		if err != nil {
			return err
		}
		if levelVar != nil {
			levelVar.Set(level)
		}
		return nil
	}

	root.AddCommand(
		newResolveCommand(logger),
		newVariantsCommand(logger),
		newCheckCommand(logger),
		newRunsCommand(logger),
	)
	return root
}

func newResolveCommand(logger *slog.Logger) *cobra.Command {
	var (
		projectDir   string
		environment  string
		profile      string
		tablePath    string
		manifestPath string
		strict       bool
		dryRun       bool
	)

	cmd := &cobra.Command{
		Use:   "resolve [environment]",
		Args:  cobra.MaximumNArgs(1),
		Short: "Resolve the build variant for an environment and regenerate the component manifest",
		Long: "Resolve maps the active build-environment name (argument, --env, or $" +
			buildenv.EnvironmentVariable + ") to a firmware variant and rewrites the " +
			"generated CMake manifest so exactly one variant main is compiled. " +
			"Intended to run as a pre-build hook.",
		RunE: func(cmd *cobra.Command, args []string) error {
			explicit := environment
			if len(args) == 1 {
				explicit = args[0]
			}
			environmentID := buildenv.Identifier(explicit, os.LookupEnv)

			cmdLogger := logger.With("command", "resolve", "environment", environmentID)

			selection, err := simple.Resolve(simple.ResolveOptions{
				ProjectDir:    projectDir,
				EnvironmentID: environmentID,
				Profile:       profile,
				TablePath:     tablePath,
				ManifestPath:  manifestPath,
				Strict:        strict,
				DryRun:        dryRun,
			}, cmdLogger)
			if err != nil {
				cmdLogger.Error("resolve failed", "error", err)
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), selection.Variant.Message)

			if dryRun {
				content, err := manifest.Render(selection.Variant)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), content)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&projectDir, "project-dir", ".", "Firmware project root containing the src/ component")
	cmd.Flags().StringVar(&environment, "env", "", "Build environment name; overrides $"+buildenv.EnvironmentVariable)
	cmd.Flags().StringVar(&profile, "profile", simple.DefaultProfile, "Embedded variant profile to resolve against")
	cmd.Flags().StringVar(&tablePath, "table", "", "Path to a YAML variant table; overrides --profile")
	cmd.Flags().StringVar(&manifestPath, "output", "", "Manifest location; defaults to "+manifest.DefaultRelativePath)
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on unrecognized environment names instead of defaulting")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the manifest to stdout without writing anything")

	return cmd
}

func newVariantsCommand(logger *slog.Logger) *cobra.Command {
	var (
		profile   string
		tablePath string
	)

	cmd := &cobra.Command{
		Use:   "variants",
		Short: "List the variants in the active table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdLogger := logger.With("command", "variants")

			table, err := simple.ActiveTable(profile, tablePath)
			if err != nil {
				cmdLogger.Error("loading variant table failed", "error", err)
				return err
			}

			out := cmd.OutOrStdout()
			for _, v := range table.Variants {
				fmt.Fprintf(out, "%s\t%s\n", v.Key, v.SourcePath)
			}
			fmt.Fprintf(out, "%s\t%s\t(default)\n", table.Default.Key, table.Default.SourcePath)
			return nil
		},
	}

	cmd.Flags().StringVar(&profile, "profile", simple.DefaultProfile, "Embedded variant profile to list")
	cmd.Flags().StringVar(&tablePath, "table", "", "Path to a YAML variant table; overrides --profile")

	return cmd
}

func newCheckCommand(logger *slog.Logger) *cobra.Command {
	var (
		projectDir string
		profile    string
		tablePath  string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify that every variant's source file exists in the project",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdLogger := logger.With("command", "check")

			if err := simple.Check(projectDir, profile, tablePath, cmdLogger); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "all variant sources present")
			return nil
		},
	}

	cmd.Flags().StringVar(&projectDir, "project-dir", ".", "Firmware project root containing the src/ component")
	cmd.Flags().StringVar(&profile, "profile", simple.DefaultProfile, "Embedded variant profile to check")
	cmd.Flags().StringVar(&tablePath, "table", "", "Path to a YAML variant table; overrides --profile")

	return cmd
}

func newRunsCommand(logger *slog.Logger) *cobra.Command {
	var projectDir string

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded resolve invocations for the project",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdLogger := logger.With("command", "runs")

			records, err := simple.ListRuns(projectDir)
			if err != nil {
				cmdLogger.Error("listing runs failed", "error", err)
				return err
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "no recorded runs")
				return nil
			}
			for _, record := range records {
				env := record.EnvironmentID
				if env == "" {
					env = "(none)"
				}
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\tdefaulted=%t\n",
					record.CreatedAt.Format("2006-01-02 15:04:05"),
					record.ID, env, record.SourcePath, record.Defaulted)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&projectDir, "project-dir", ".", "Firmware project root containing the src/ component")

	return cmd
}

func parseLogLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error", "err":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", value)
	}
}
