package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/phrazzld/bpcalc/internal/domain/bloodpressure"
	"github.com/phrazzld/bpcalc/internal/events"
	"github.com/phrazzld/bpcalc/internal/service"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// Output formats accepted by --output.
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

// readingOutput is the CLI rendering of a classified reading.
type readingOutput struct {
	Systolic    int    `json:"systolic"    yaml:"systolic"`
	Diastolic   int    `json:"diastolic"   yaml:"diastolic"`
	Category    string `json:"category"    yaml:"category"`
	Label       string `json:"label"       yaml:"label"`
	Explanation string `json:"explanation" yaml:"explanation"`
}

// categoryOutput is the CLI rendering of one chart row.
type categoryOutput struct {
	Category    string `json:"category"    yaml:"category"`
	Label       string `json:"label"       yaml:"label"`
	Explanation string `json:"explanation" yaml:"explanation"`
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "bpcalc",
		Short:         "Blood pressure category calculator",
		Long:          "bpcalc classifies blood pressure readings into Low, Ideal, Pre-High and High categories.\nRun without a subcommand to start the web server.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	serveCmd := newServeCommand()
	root.RunE = serveCmd.RunE
	root.Flags().AddFlagSet(serveCmd.Flags())

	root.AddCommand(
		serveCmd,
		newClassifyCommand(),
		newCategoriesCommand(),
		newVersionCommand(),
	)
	return root
}

func newServeCommand() *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadAppConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			logger, err := setupAppLogger(cfg.Server.LogLevel, nil)
			if err != nil {
				return err
			}
			logAppConfig(logger, cfg)

			app, err := newApplication(cmd.Context(), cfg, logger)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			return app.Run(cmd.Context())
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (overrides BPCALC_SERVER_PORT)")
	return cmd
}

func newClassifyCommand() *cobra.Command {
	var systolic, diastolic int
	var output, logLevel string
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a single reading",
		Example: "  bpcalc classify --systolic 120 --diastolic 80\n" +
			"  bpcalc classify --systolic 150 --diastolic 95 --output json",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutput(output); err != nil {
				return err
			}
			svc, err := newCLIReadingService(cmd.ErrOrStderr(), logLevel)
			if err != nil {
				return err
			}

			result, err := svc.Classify(cmd.Context(), service.ClassifyRequest{
				Reading: bloodpressure.Reading{Systolic: systolic, Diastolic: diastolic},
				Source:  events.SourceCLI,
			})
			if err != nil {
				return err
			}

			return renderReading(cmd.OutOrStdout(), output, readingOutput{
				Systolic:    result.Reading.Systolic,
				Diastolic:   result.Reading.Diastolic,
				Category:    result.Category.String(),
				Label:       result.Label,
				Explanation: result.Explanation,
			})
		},
	}
	cmd.Flags().IntVar(&systolic, "systolic", 0, "Systolic pressure in mmHg")
	cmd.Flags().IntVar(&diastolic, "diastolic", 0, "Diastolic pressure in mmHg")
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format (text|json|yaml)")
	cmd.Flags().StringVar(&logLevel, "log-level", "warn", "Log level for diagnostics written to stderr")
	_ = cmd.MarkFlagRequired("systolic")
	_ = cmd.MarkFlagRequired("diastolic")
	return cmd
}

func newCategoriesCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Print the blood pressure category chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutput(output); err != nil {
				return err
			}
			svc, err := newCLIReadingService(cmd.ErrOrStderr(), "warn")
			if err != nil {
				return err
			}

			chart := svc.Categories()
			rows := make([]categoryOutput, 0, len(chart))
			for _, info := range chart {
				rows = append(rows, categoryOutput{
					Category:    info.Category.String(),
					Label:       info.Label,
					Explanation: info.Explanation,
				})
			}
			return renderCategories(cmd.OutOrStdout(), output, rows)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format (text|json|yaml)")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "bpcalc %s (%s %s/%s)\n",
				version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
			return err
		},
	}
}

// newCLIReadingService builds a reading service whose telemetry goes to the
// structured log on w. The CLI never publishes to the broker.
func newCLIReadingService(w io.Writer, level string) (service.ReadingService, error) {
	if w == nil {
		w = os.Stderr
	}
	logger, err := setupAppLogger(level, w)
	if err != nil {
		return nil, err
	}

	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(events.NewLogEventHandler(logger))
	return service.NewReadingService(bloodpressure.NewDefaultService(), emitter, logger)
}

func validateOutput(format string) error {
	switch format {
	case outputText, outputJSON, outputYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (want text, json or yaml)", format)
	}
}

func renderReading(w io.Writer, format string, out readingOutput) error {
	switch format {
	case outputJSON:
		return writeJSON(w, out)
	case outputYAML:
		return writeYAML(w, out)
	default:
		_, err := fmt.Fprintf(w, "%d/%d mmHg: %s\n%s\n", out.Systolic, out.Diastolic, out.Label, out.Explanation)
		return err
	}
}

func renderCategories(w io.Writer, format string, rows []categoryOutput) error {
	switch format {
	case outputJSON:
		return writeJSON(w, rows)
	case outputYAML:
		return writeYAML(w, rows)
	default:
		var b strings.Builder
		for _, row := range rows {
			fmt.Fprintf(&b, "%-24s %s\n", row.Label, row.Explanation)
		}
		_, err := io.WriteString(w, b.String())
		return err
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
