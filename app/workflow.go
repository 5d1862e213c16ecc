package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"prepkit/domain/core"
	"prepkit/domain/prep"
	"prepkit/domain/table"
	"prepkit/internal"
	apperrors "prepkit/internal/errors"
	"prepkit/ports"
)

// Workflow runs the preparation pipeline over one working table: load,
// summarize, dedupe, impute, encode, drop.
type Workflow struct {
	session    core.SessionID
	loader     *LoaderService
	summary    *SummaryService
	cleaning   *CleaningService
	imputation *ImputationService
	encoding   *EncodingService
	logger     *internal.Logger
}

// NewWorkflow wires the services around reader. Every log line of the
// workflow carries a fresh session ID.
func NewWorkflow(reader ports.TableReader, headRows int, logger *internal.Logger) *Workflow {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	session := core.NewSessionID()
	logger = logger.With("session " + session.Short())
	return &Workflow{
		session:    session,
		loader:     NewLoaderService(reader, logger),
		summary:    NewSummaryService(headRows, logger),
		cleaning:   NewCleaningService(logger),
		imputation: NewImputationService(logger),
		encoding:   NewEncodingService(logger),
		logger:     logger,
	}
}

// Session returns the ID tagging this workflow's log lines.
func (w *Workflow) Session() core.SessionID { return w.session }

// PrepOptions drives a non-interactive run
type PrepOptions struct {
	Summarize   bool
	Dedupe      bool
	Numeric     prep.NumericImputation
	Categorical prep.CategoricalImputation
	Encode      []string
	Method      prep.EncodingMethod
	DropRows    []int
	DropColumns []string
	DropEmpty   bool
}

// Run asks its questions on out, reads the answers from in and applies them.
// Missing data, unsupported files and unreadable files are reported on out and
// the run continues without a table; unknown columns or an unknown encoding
// method end the run with an error.
func (w *Workflow) Run(ctx context.Context, in io.Reader, out io.Writer) (*table.Table, error) {
	p := &prompter{in: bufio.NewReader(in), out: out}
	w.logger.Info("interactive run started")

	path, err := p.ask(ctx, "Enter the path to your data file: ")
	if err != nil {
		return nil, err
	}
	t, err := w.loader.Load(ctx, path)
	if err := w.report(out, err); err != nil {
		return nil, err
	}

	fmt.Fprint(out, "\nExploratory Data Analysis:\n\n")
	if err := w.report(out, w.summary.Summarize(t, out)); err != nil {
		return t, err
	}
	if err := w.dedupe(t, out); err != nil {
		return t, err
	}

	fmt.Fprint(out, "\nHandling missing values:\n\n")
	if t != nil {
		fmt.Fprintf(out, "Numeric columns: %s\n", nameList(t.NumericColumns()))
		fmt.Fprintf(out, "Categorical columns: %s\n", nameList(t.CategoricalColumns()))
	}

	answer, err := p.ask(ctx, "Enter imputation method for numeric columns (avg/zero) [default: avg]: ")
	if err != nil {
		return t, err
	}
	numeric, fellBack := prep.ResolveNumericImputation(answer)
	if fellBack {
		fmt.Fprintf(out, "Invalid choice, using default (%s)\n", numeric)
	}
	if _, err := w.imputation.ImputeNumeric(t, numeric); err != nil {
		if err := w.report(out, err); err != nil {
			return t, err
		}
	}

	answer, err = p.ask(ctx, "Enter imputation method for categorical columns (mode/drop) [default: mode]: ")
	if err != nil {
		return t, err
	}
	categorical, fellBack := prep.ResolveCategoricalImputation(answer)
	if fellBack {
		fmt.Fprintf(out, "Invalid choice, using default (%s)\n", categorical)
	}
	if _, err := w.imputation.ImputeCategorical(t, categorical); err != nil {
		if err := w.report(out, err); err != nil {
			return t, err
		}
	}

	fmt.Fprint(out, "\nCategorical Data Encoding:\n\n")
	answer, err = p.ask(ctx, "Enter the categorical columns to encode (comma-separated): ")
	if err != nil {
		return t, err
	}
	encode := splitList(answer)
	answer, err = p.ask(ctx, "Enter encoding method (label/ordinal/one-hot) [default: one-hot]: ")
	if err != nil {
		return t, err
	}
	method, err := prep.ParseEncodingMethod(answer)
	if err != nil {
		return t, apperrors.Classify(err)
	}
	if len(encode) > 0 {
		if err := w.encode(t, encode, method, out); err != nil {
			return t, err
		}
	}

	answer, err = p.ask(ctx, "Enter the columns to drop (comma-separated) [default: none]: ")
	if err != nil {
		return t, err
	}
	if drop := splitList(answer); len(drop) > 0 {
		if err := w.report(out, w.cleaning.DropRowsCols(t, nil, drop)); err != nil {
			return t, err
		}
	}

	answer, err = p.ask(ctx, "Drop empty columns? (y/n) [default: y]: ")
	if err != nil {
		return t, err
	}
	if yes(answer, true) {
		if err := w.dropEmpty(t, out); err != nil {
			return t, err
		}
	}

	w.finish(t, out)
	return t, nil
}

// Summarize loads path and prints its summary. An unsupported or unreadable
// file is reported on out the way Run reports it and does not fail the call.
func (w *Workflow) Summarize(ctx context.Context, path string, out io.Writer) error {
	t, err := w.loader.Load(ctx, path)
	if err != nil {
		return w.report(out, err)
	}
	return w.report(out, w.summary.Summarize(t, out))
}

// Prepare is the scripted form of Run: the answers come from opts.
func (w *Workflow) Prepare(ctx context.Context, path string, opts PrepOptions, out io.Writer) (*table.Table, error) {
	w.logger.Info("scripted run started for %s", path)

	t, err := w.loader.Load(ctx, path)
	if err := w.report(out, err); err != nil {
		return nil, err
	}
	if opts.Summarize {
		if err := w.report(out, w.summary.Summarize(t, out)); err != nil {
			return t, err
		}
	}
	if opts.Dedupe {
		if err := w.dedupe(t, out); err != nil {
			return t, err
		}
	}
	if len(opts.DropRows) > 0 || len(opts.DropColumns) > 0 {
		if err := w.report(out, w.cleaning.DropRowsCols(t, opts.DropRows, opts.DropColumns)); err != nil {
			return t, err
		}
	}

	if opts.Numeric != "" {
		if _, err := w.imputation.ImputeNumeric(t, opts.Numeric); err != nil {
			if err := w.report(out, err); err != nil {
				return t, err
			}
		}
	}
	if opts.Categorical != "" {
		if _, err := w.imputation.ImputeCategorical(t, opts.Categorical); err != nil {
			if err := w.report(out, err); err != nil {
				return t, err
			}
		}
	}

	if len(opts.Encode) > 0 {
		method := opts.Method
		if method == "" {
			method = prep.DefaultEncodingMethod
		}
		if err := w.encode(t, opts.Encode, method, out); err != nil {
			return t, err
		}
	}
	if opts.DropEmpty {
		if err := w.dropEmpty(t, out); err != nil {
			return t, err
		}
	}

	if t != nil {
		fmt.Fprintln(out)
		writeBlock(out, t.String())
	}
	w.finish(t, out)
	return t, nil
}

func (w *Workflow) dedupe(t *table.Table, out io.Writer) error {
	removed, err := w.cleaning.DropDuplicates(t)
	if err != nil {
		return w.report(out, err)
	}
	if removed > 0 {
		fmt.Fprintf(out, "Removed %d duplicate rows\n", removed)
	}
	return nil
}

func (w *Workflow) encode(t *table.Table, columns []string, method prep.EncodingMethod, out io.Writer) error {
	produced, err := w.encoding.EncodeCategorical(t, columns, method)
	if err != nil {
		return w.report(out, err)
	}
	fmt.Fprintf(out, "Encoded %s with %s into %s\n", nameList(columns), method, nameList(produced))
	return nil
}

func (w *Workflow) dropEmpty(t *table.Table, out io.Writer) error {
	dropped, err := w.cleaning.DropEmptyColumns(t)
	if err != nil {
		return w.report(out, err)
	}
	if len(dropped) > 0 {
		fmt.Fprintf(out, "Dropped empty columns: %s\n", nameList(dropped))
	}
	return nil
}

func (w *Workflow) finish(t *table.Table, out io.Writer) {
	if t != nil {
		rows, cols := t.Dims()
		fmt.Fprintf(out, "\nFinal shape: %d rows x %d columns\n", rows, cols)
	}
	fmt.Fprintln(out, "\nData preprocessing complete!")
	w.logger.Info("run complete")
}

// report prints recoverable errors and swallows them; any other error comes
// back classified.
func (w *Workflow) report(out io.Writer, err error) error {
	if err == nil {
		return nil
	}
	if core.IsRecoverable(err) {
		w.logger.Warn("%v", err)
		fmt.Fprintln(out, capitalize(err.Error()))
		return nil
	}
	w.logger.Error("%v", err)
	return apperrors.Classify(err)
}

type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// ask prints question and returns the next trimmed input line. Exhausted
// input reads as blank answers.
func (p *prompter) ask(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(p.out, question)
	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// splitList splits a comma-separated answer, dropping blank items.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// ParseLabels parses comma-separated row labels.
func ParseLabels(s string) ([]int, error) {
	var out []int
	for _, item := range splitList(s) {
		l, err := strconv.Atoi(item)
		if err != nil {
			return nil, fmt.Errorf("%w: row label %q is not an integer", core.ErrInvalidInput, item)
		}
		out = append(out, l)
	}
	return out, nil
}

func yes(answer string, def bool) bool {
	switch strings.ToLower(answer) {
	case "":
		return def
	case "y", "yes":
		return true
	}
	return false
}

func nameList(names []string) string {
	return "[" + strings.Join(names, ", ") + "]"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
