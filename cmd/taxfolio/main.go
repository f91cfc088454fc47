package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"taxfolio/internal/brokerage"
	"taxfolio/internal/calculation"
	"taxfolio/internal/compare"
	"taxfolio/internal/config"
	"taxfolio/internal/output"
	"taxfolio/internal/server"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "taxfolio %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

var rootCmd = &cobra.Command{
	Use:   "taxfolio",
	Short: "Federal tax and retirement readiness calculator",
	Long:  "Computes federal tax liability from a filer profile and projects retirement funding adequacy by Monte Carlo simulation",
}

func newEngineFromFlags(cmd *cobra.Command) *calculation.Engine {
	engine := calculation.NewEngine()
	if recompute, _ := cmd.Flags().GetBool("recompute"); recompute {
		engine.Aggregation = calculation.RecomputeFromParts
	}
	if withholding, _ := cmd.Flags().GetBool("assume-withholding"); withholding {
		engine.Withholding = calculation.AssumeWithholding
	}
	return engine
}

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [profile-file]",
		Short: "Calculate federal tax liability from a profile file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			profile, err := parser.LoadProfile(args[0])
			if err != nil {
				return err
			}

			engine := newEngineFromFlags(cmd)
			results := engine.Calculate(*profile)

			format, _ := cmd.Flags().GetString("format")
			report, err := output.NewReportGenerator().FormatTaxReport(&results, format)
			if err != nil {
				return err
			}
			fmt.Fprint(os.Stdout, report)
			return nil
		},
	}
	cmd.Flags().String("format", "console", "Output format: console, json, csv")
	cmd.Flags().Bool("recompute", false, "Recompute totals from components instead of trusting precomputed values")
	cmd.Flags().Bool("assume-withholding", false, "Assume withholding of 15% of total income in addition to estimated payments")
	return cmd
}

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [profile-file]",
		Short: "Calculate a profile under every policy variant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			profile, err := parser.LoadProfile(args[0])
			if err != nil {
				return err
			}

			set := compare.Run(*profile, compare.DefaultVariants())

			format, _ := cmd.Flags().GetString("format")
			out, err := compare.Format(set, format)
			if err != nil {
				return err
			}
			fmt.Fprint(os.Stdout, out)
			return nil
		},
	}
	cmd.Flags().String("format", "table", "Output format: table, json, csv")
	return cmd
}

func projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project [inputs-file]",
		Short: "Project retirement funding adequacy by Monte Carlo simulation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			req, err := parser.LoadRetirementRequest(args[0])
			if err != nil {
				return err
			}

			trials, _ := cmd.Flags().GetInt("trials")
			seed, _ := cmd.Flags().GetInt64("seed")
			projector := calculation.NewRetirementProjectorWithConfig(calculation.MonteCarloConfig{
				NumTrials: trials,
				Seed:      seed,
			})

			analysis := projector.Project(req.Inputs, req.Filer)

			format, _ := cmd.Flags().GetString("format")
			report, err := output.NewReportGenerator().FormatRetirementReport(&analysis, format)
			if err != nil {
				return err
			}
			fmt.Fprint(os.Stdout, report)
			return nil
		},
	}
	cmd.Flags().String("format", "console", "Output format: console, json, csv")
	cmd.Flags().Int("trials", 10000, "Number of Monte Carlo trials")
	cmd.Flags().Int64("seed", 0, "Random seed (0 uses a time-based seed)")
	return cmd
}

func import1099bCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import-1099b [statement-text-file]",
		Short: "Parse extracted 1099-B statement text into a capital gains summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read file %s: %w", args[0], err)
			}

			stmt, err := brokerage.ParseStatement(string(data))
			if err != nil {
				return err
			}

			out, err := output.FormatJSON(stmt, true)
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, out)
			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the stateless compute API",
		RunE: func(cmd *cobra.Command, args []string) error {
			port, _ := cmd.Flags().GetString("port")
			if envPort := os.Getenv("PORT"); envPort != "" {
				port = envPort
			}
			return server.New().ListenAndServe(port)
		},
	}
	cmd.Flags().String("port", "8080", "Port to listen on")
	return cmd
}

func main() {
	rootCmd.AddCommand(calculateCmd())
	rootCmd.AddCommand(compareCmd())
	rootCmd.AddCommand(projectCmd())
	rootCmd.AddCommand(import1099bCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
