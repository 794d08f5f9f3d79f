package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"fairdetect/adapters/excel"
	"fairdetect/adapters/model"
	"fairdetect/adapters/postgres"
	"fairdetect/adapters/presenter"
	"fairdetect/adapters/rng"
	"fairdetect/adapters/stats"
	"fairdetect/app"
	"fairdetect/domain/dataset"
	"fairdetect/domain/fairness"
	"fairdetect/internal/api"
	"fairdetect/internal/config"
	"fairdetect/internal/report"
	"fairdetect/internal/testkit"
	"fairdetect/ports"
	"fairdetect/ui"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fairdetect",
		Short: "Fairness auditing for binary classifiers",
	}

	rootCmd.AddCommand(
		newAuditCmd(),
		newAttributionCmd(),
		newDemoCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAuditCmd() *cobra.Command {
	var sensitive, target, predictions, labelSpec string
	var save bool
	var markdown bool

	cmd := &cobra.Command{
		Use:   "audit [data-file]",
		Short: "Run the full disparity audit over a scored dataset",
		Long: `Run the representation, predictive disparity, and ability analyses
over a scored dataset read from an xlsx or csv file.

Group labels come from --labels ("0=Female,1=Male"); values missing from
the flag are prompted for interactively.

Example: fairdetect audit loans.csv --sensitive gender --target approved --predictions predicted --labels "0=Female,1=Male"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if predictions == "" {
				return fmt.Errorf("--predictions is required for audit")
			}
			ds, preds, err := loadDataset(args[0], sensitive, target, predictions)
			if err != nil {
				return err
			}
			labels, err := resolveLabels(ds, labelSpec)
			if err != nil {
				return err
			}
			return runAudit(cmd.Context(), ds, preds, labels, save, markdown)
		},
	}

	cmd.Flags().StringVar(&sensitive, "sensitive", "", "Sensitive attribute column (required)")
	cmd.Flags().StringVar(&target, "target", "", "True outcome column (required)")
	cmd.Flags().StringVar(&predictions, "predictions", "", "Predicted label column")
	cmd.Flags().StringVar(&labelSpec, "labels", "", "Group labels, e.g. \"0=Female,1=Male\"")
	cmd.Flags().BoolVar(&save, "save", false, "Store the report in the configured database")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "Print the report as markdown")
	cmd.MarkFlagRequired("sensitive")
	cmd.MarkFlagRequired("target")

	return cmd
}

func newAttributionCmd() *cobra.Command {
	var sensitive, target, predictions, labelSpec string
	var groupValue, predictedLabel int
	var seed int64

	cmd := &cobra.Command{
		Use:   "attribution [data-file]",
		Short: "Explain a misclassified cohort of one sensitive group",
		Long: `Isolate the records of one sensitive group that were misclassified into
the given predicted label, compare their feature means against the true
class and the full population, and explain one randomly sampled record.

Example: fairdetect attribution loans.csv --sensitive gender --target approved --predictions predicted --group 0 --predicted-label 0 --seed 42`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if predictions == "" {
				return fmt.Errorf("--predictions is required for attribution")
			}
			ds, preds, err := loadDataset(args[0], sensitive, target, predictions)
			if err != nil {
				return err
			}
			labels, err := resolveLabels(ds, labelSpec)
			if err != nil {
				return err
			}
			return runAttribution(cmd.Context(), ds, preds, labels, groupValue, predictedLabel, seed)
		},
	}

	cmd.Flags().StringVar(&sensitive, "sensitive", "", "Sensitive attribute column (required)")
	cmd.Flags().StringVar(&target, "target", "", "True outcome column (required)")
	cmd.Flags().StringVar(&predictions, "predictions", "", "Predicted label column")
	cmd.Flags().StringVar(&labelSpec, "labels", "", "Group labels, e.g. \"0=Female,1=Male\"")
	cmd.Flags().IntVar(&groupValue, "group", 0, "Sensitive value of the cohort")
	cmd.Flags().IntVar(&predictedLabel, "predicted-label", 0, "Predicted label of the cohort")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for record sampling")
	cmd.MarkFlagRequired("sensitive")
	cmd.MarkFlagRequired("target")

	return cmd
}

func newDemoCmd() *cobra.Command {
	var rows int
	var seed int64
	var markdown bool
	var score bool

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Audit a synthetic biased loan dataset",
		Long: `Generate a synthetic loan dataset with a built-in disparity and audit it.

With --score the generator's predictions are discarded and the dataset is
scored by a fixed logistic model instead, which removes the disparity.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := testkit.DefaultLoanOptions()
			opts.Rows = rows
			opts.Seed = seed
			ds, preds := testkit.LoanDataset(opts)

			if score {
				// Mirrors the generator's approval rule: income/100 - debt/2 > 0.25
				scorer := model.NewLinearModel([]float64{0.01, -0.5, 0}, -0.25)
				service := app.NewAuditService(stats.NewChiSquareTester(), presenter.NewTextPresenter(os.Stdout))
				rep, err := service.ScoreAndAudit(cmd.Context(), scorer, ds, testkit.LoanLabels())
				if err != nil {
					return err
				}
				if markdown {
					fmt.Println(report.Markdown(rep))
				}
				return nil
			}
			return runAudit(cmd.Context(), ds, preds, testkit.LoanLabels(), false, markdown)
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 1000, "Number of synthetic records")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Generator seed")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "Print the report as markdown")
	cmd.Flags().BoolVar(&score, "score", false, "Score with the built-in logistic model instead of the biased predictions")

	return cmd
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTML report UI and the JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	return cmd
}

func loadDataset(path, sensitive, target, predictions string) (*dataset.Dataset, []int, error) {
	reader := excel.NewDatasetReader(path)
	return reader.ReadDataset(excel.ReadOptions{
		Sensitive:   sensitive,
		Target:      target,
		Predictions: predictions,
	})
}

// resolveLabels builds the group label map from the --labels flag, prompting
// on stdin for any sensitive value the flag does not cover.
func resolveLabels(ds *dataset.Dataset, labelSpec string) (fairness.LabelMap, error) {
	fromFlag, err := parseLabelSpec(labelSpec)
	if err != nil {
		return nil, err
	}
	prompt := promptLabelSource(os.Stdin, os.Stdout)
	return fairness.BuildLabels(ds.DistinctSensitiveValues(), func(value int) (string, error) {
		if name, ok := fromFlag[value]; ok {
			return name, nil
		}
		return prompt.NameFor(value)
	})
}

func parseLabelSpec(spec string) (map[int]string, error) {
	labels := make(map[int]string)
	if spec == "" {
		return labels, nil
	}
	for _, pair := range strings.Split(spec, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid label pair %q (want value=name)", pair)
		}
		value, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid label value %q: %w", parts[0], err)
		}
		labels[value] = strings.TrimSpace(parts[1])
	}
	return labels, nil
}

// promptLabelSource asks for a group name on the terminal
func promptLabelSource(in *os.File, out *os.File) ports.LabelSource {
	scanner := bufio.NewScanner(in)
	return ports.LabelSourceFunc(func(value int) (string, error) {
		fmt.Fprintf(out, "Name for sensitive value %d: ", value)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", fmt.Errorf("no label entered for value %d", value)
		}
		return strings.TrimSpace(scanner.Text()), nil
	})
}

func runAudit(ctx context.Context, ds *dataset.Dataset, preds []int, labels fairness.LabelMap, save, markdown bool) error {
	service := app.NewAuditService(stats.NewChiSquareTester(), presenter.NewTextPresenter(os.Stdout))
	rep, err := service.RunAudit(ctx, app.AuditRequest{Dataset: ds, Predictions: preds, Labels: labels})
	if err != nil {
		return err
	}

	if markdown {
		fmt.Println(report.Markdown(rep))
	}
	if save {
		ledger, err := openLedger(ctx)
		if err != nil {
			return err
		}
		if err := ledger.SaveReport(ctx, rep); err != nil {
			return fmt.Errorf("failed to store report: %w", err)
		}
		fmt.Printf("Stored report %s\n", rep.ID)
	}
	return nil
}

func runAttribution(ctx context.Context, ds *dataset.Dataset, preds []int, labels fairness.LabelMap, groupValue, predictedLabel int, seed int64) error {
	// Without an external model a linear surrogate fitted to nothing is
	// useless, so the explainer attributes raw feature values.
	service := app.NewAttributionService(&testkit.StubExplainer{}, rng.New(), presenter.NewTextPresenter(os.Stdout))
	result, err := service.Analyze(ctx, app.AttributionRequest{
		Dataset:        ds,
		Predictions:    preds,
		Labels:         labels,
		GroupValue:     groupValue,
		PredictedLabel: predictedLabel,
		Seed:           seed,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Cohort %s predicted=%d: %d records, sampled record %d\n",
		result.Cohort.Group, result.Cohort.PredictedLabel, result.Cohort.Size(), result.SampledRow)
	return nil
}

func openLedger(ctx context.Context) (ports.AuditLedger, error) {
	godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.Database.URL == "" {
		log.Printf("[CLI] No database configured, reports kept in memory only")
		return testkit.NewInMemoryLedger(), nil
	}
	db, err := postgres.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	return postgres.NewReportRepository(db), nil
}

func runServe(ctx context.Context) error {
	godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	ledger, err := openLedger(ctx)
	if err != nil {
		return err
	}

	quiet := presenter.NewTextPresenter(io.Discard)
	audits := app.NewAuditService(stats.NewChiSquareTester(), quiet)
	attribution := app.NewAttributionService(&testkit.StubExplainer{}, rng.New(), quiet)

	uiApp := ui.NewApp(ledger, ui.Config{ReportLimit: cfg.Audit.ReportLimit})
	apiServer := api.NewServer(audits, attribution, ledger, api.Config{
		GinMode:     cfg.Server.GinMode,
		ReportLimit: cfg.Audit.ReportLimit,
	})

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error { return uiApp.Start(cfg.Server.UIPort) })
	g.Go(func() error { return apiServer.Start(cfg.Server.APIPort) })
	return g.Wait()
}
