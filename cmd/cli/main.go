package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"prepkit/adapters/reader"
	"prepkit/app"
	"prepkit/domain/prep"
	"prepkit/internal"
	"prepkit/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type runtime struct {
	config *config.Config
	logger *internal.Logger
	reader *reader.DataReader
}

func loadRuntime(envFile string) (*runtime, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger()
	rdr := reader.NewDataReader(reader.ReaderConfig{NAValues: cfg.NAValues, Sheet: cfg.Sheet}, logger)
	return &runtime{config: cfg, logger: logger, reader: rdr}, nil
}

func newRootCmd() *cobra.Command {
	var envFile string

	rootCmd := &cobra.Command{
		Use:   "prepkit",
		Short: "Load, summarize and prepare tabular data",
		Long: `prepkit loads a CSV, Excel or JSON file, prints a summary, imputes missing
values, encodes categorical columns and drops unwanted rows and columns.

Without a subcommand it asks its questions interactively.

Configuration is read from a .env file and the environment:
- PREP_LOG_LEVEL (ERROR|WARN|INFO|DEBUG|TRACE, default: WARN)
- PREP_NA_VALUES (comma-separated missing markers)
- PREP_SHEET (Excel sheet, default: the first one)
- PREP_HEAD_ROWS (rows shown in summaries, default: 5)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, envFile, "")
		},
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Path to a .env file (default: ./.env when present)")

	rootCmd.AddCommand(
		newRunCmd(&envFile),
		newSummarizeCmd(&envFile),
		newPrepCmd(&envFile),
	)
	return rootCmd
}

func newRunCmd(envFile *string) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Prepare a file interactively",
		Long: `Ask for the file, the imputation methods, the columns to encode and drop,
and whether to drop empty columns, then apply the answers in order.

Example: prepkit run --file data.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, *envFile, file)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Data file; answers the first question")
	return cmd
}

func newSummarizeCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "summarize [file]",
		Short: "Print the summary of a data file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(*envFile)
			if err != nil {
				return err
			}
			workflow := app.NewWorkflow(rt.reader, rt.config.HeadRows, rt.logger)
			return workflow.Summarize(cmd.Context(), args[0], cmd.OutOrStdout())
		},
	}
}

func newPrepCmd(envFile *string) *cobra.Command {
	var numeric, categorical, method, dropRows string
	var encode, dropCols []string
	var dropEmpty, dedupe, summary bool

	cmd := &cobra.Command{
		Use:   "prep [file]",
		Short: "Prepare a data file non-interactively",
		Long: `Apply the preparation steps selected by flags, in this order: summary,
duplicate removal, row and column drops, numeric imputation, categorical
imputation, encoding, empty column removal. The result is printed.

Example: prepkit prep data.csv --dedupe --numeric avg --categorical mode --encode color --method one-hot --drop-empty`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := app.PrepOptions{
				Summarize:   summary,
				Dedupe:      dedupe,
				Encode:      encode,
				DropColumns: dropCols,
				DropEmpty:   dropEmpty,
			}

			var err error
			if opts.DropRows, err = app.ParseLabels(dropRows); err != nil {
				return err
			}
			if strings.TrimSpace(numeric) != "" {
				if opts.Numeric, err = prep.ParseNumericImputation(numeric); err != nil {
					return err
				}
			}
			if strings.TrimSpace(categorical) != "" {
				if opts.Categorical, err = prep.ParseCategoricalImputation(categorical); err != nil {
					return err
				}
			}
			if opts.Method, err = prep.ParseEncodingMethod(method); err != nil {
				return err
			}

			rt, err := loadRuntime(*envFile)
			if err != nil {
				return err
			}
			workflow := app.NewWorkflow(rt.reader, rt.config.HeadRows, rt.logger)
			_, err = workflow.Prepare(cmd.Context(), args[0], opts, cmd.OutOrStdout())
			return err
		},
	}

	cmd.Flags().StringVar(&numeric, "numeric", "", "Numeric imputation: "+prep.Choices(prep.NumericImputations())+" (default: skip)")
	cmd.Flags().StringVar(&categorical, "categorical", "", "Categorical imputation: "+prep.Choices(prep.CategoricalImputations())+" (default: skip)")
	cmd.Flags().StringSliceVar(&encode, "encode", nil, "Columns to encode")
	cmd.Flags().StringVar(&method, "method", string(prep.DefaultEncodingMethod), "Encoding method: "+prep.Choices(prep.EncodingMethods()))
	cmd.Flags().StringSliceVar(&dropCols, "drop-cols", nil, "Columns to drop")
	cmd.Flags().StringVar(&dropRows, "drop-rows", "", "Comma-separated row labels to drop")
	cmd.Flags().BoolVar(&dropEmpty, "drop-empty", false, "Drop columns without values")
	cmd.Flags().BoolVar(&dedupe, "dedupe", false, "Drop duplicate rows")
	cmd.Flags().BoolVar(&summary, "summary", false, "Print the summary first")
	return cmd
}

func runInteractive(cmd *cobra.Command, envFile, file string) error {
	rt, err := loadRuntime(envFile)
	if err != nil {
		return err
	}

	var in io.Reader = cmd.InOrStdin()
	if file != "" {
		in = io.MultiReader(strings.NewReader(file+"\n"), in)
	}
	workflow := app.NewWorkflow(rt.reader, rt.config.HeadRows, rt.logger)
	rt.logger.Debug("session %s", workflow.Session())
	_, err = workflow.Run(cmd.Context(), in, cmd.OutOrStdout())
	return err
}
