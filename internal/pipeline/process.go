package pipeline

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"metastd/internal"
	"metastd/internal/config"
	"metastd/internal/fields"
	applog "metastd/internal/log"
	"metastd/internal/reference"
	"metastd/internal/storage"
	"metastd/internal/util"
)

var (
	// ErrNoRelevantColumns means the header row has no accession column or
	// no field column. The file is skipped.
	ErrNoRelevantColumns = errors.New("no relevant columns found")
	// ErrNoRows means every row was filtered out. No output is written.
	ErrNoRows = errors.New("no rows left after filtering")
)

// Result is a normalized table plus what the correlator saw.
type Result struct {
	Table    internal.Table
	Groups   int
	Observed []string
}

type ownedColumn struct {
	name    string
	variant fields.Variant
}

// Process turns one input table into its normalized form. Each data row
// yields one candidate output row per column group.
func Process(t internal.Table, variants []fields.Variant, ref *reference.Data, accession string) (Result, error) {
	// the first variant claiming a column owns it
	var columns []ownedColumn
	var markers []string
	for _, v := range variants {
		for _, c := range v.ColumnStrs() {
			if slices.Contains(markers, c) {
				continue
			}
			columns = append(columns, ownedColumn{name: c, variant: v})
			markers = append(markers, c)
		}
	}

	corr, ok := FindPositions(accession, markers, t.Headers)
	if !ok {
		return Result{}, ErrNoRelevantColumns
	}

	var kept []ownedColumn
	for _, c := range columns {
		if slices.Contains(corr.Observed, c.name) {
			kept = append(kept, c)
		}
	}

	headers := []string{accession}
	for _, c := range kept {
		for _, k := range c.variant.Keys() {
			headers = append(headers, c.name+"_"+k)
		}
	}

	out := internal.Table{Headers: headers, Rows: [][]string{}}
	for _, row := range t.Rows {
		for _, g := range corr.Groups {
			line := make([]Cell, len(kept)+1)
			line[0] = Scalar("")
			for i, c := range kept {
				line[i+1] = SeqOf(make([]string, len(c.variant.Keys())))
			}

			for _, m := range g.Mappings {
				if m.Field == accession {
					line[0] = Scalar(cellAt(row, m.Column))
					continue
				}
				i := slices.IndexFunc(kept, func(c ownedColumn) bool { return c.name == m.Field })
				if i < 0 {
					continue
				}
				line[i+1] = SeqOf(kept[i].variant.Parse(cellAt(row, m.Column), ref))
			}

			flat := Flatten(line...)
			if util.Blank(flat[0]) || util.Blank(flat[1:]...) {
				continue
			}
			out.Rows = append(out.Rows, flat)
		}
	}

	res := Result{Table: out, Groups: len(corr.Groups), Observed: corr.Observed}
	if len(out.Rows) == 0 {
		return res, ErrNoRows
	}
	return res, nil
}

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

type Service struct {
	cfg      config.Config
	ref      *reference.Data
	variants []fields.Variant
	ledger   *storage.DB
	out      io.Writer
	logger   zerolog.Logger
}

// NewService wires the driver. ledger may be nil; out receives the
// per-file progress lines.
func NewService(cfg config.Config, ref *reference.Data, variants []fields.Variant, ledger *storage.DB, out io.Writer) *Service {
	return &Service{
		cfg:      cfg,
		ref:      ref,
		variants: variants,
		ledger:   ledger,
		out:      out,
		logger:   applog.WithComponent("pipeline"),
	}
}

// ProcessFile reads one input, normalizes it and writes the sibling output.
// The returned error is nil for skipped files; the outcome says why.
func (s *Service) ProcessFile(path string) (internal.FileOutcome, error) {
	output := OutputPath(path, s.cfg.OutputSuffix, s.cfg.OutputFormat)
	outcome := internal.FileOutcome{Input: path, Output: output}
	fmt.Fprintf(s.out, "Working on %s\n", output)

	table, err := ReadTable(path, s.cfg.InputEncoding)
	if err != nil {
		return s.failed(outcome, fmt.Errorf("read %s: %w", path, err))
	}
	outcome.RowsIn = len(table.Rows)

	res, err := Process(table, s.variants, s.ref, s.cfg.AccessionMarker)
	outcome.Groups, outcome.Observed = res.Groups, res.Observed
	switch {
	case errors.Is(err, ErrNoRelevantColumns):
		fmt.Fprintln(s.out, "No relevant information found")
		outcome.Output = ""
		outcome.Status = internal.FileNoColumns
		return outcome, nil
	case errors.Is(err, ErrNoRows):
		outcome.Output = ""
		outcome.Status = internal.FileNoRows
		return outcome, nil
	case err != nil:
		return s.failed(outcome, err)
	}

	if err := WriteTable(res.Table, output, s.cfg.OutputFormat, s.cfg.OutputEncoding); err != nil {
		return s.failed(outcome, fmt.Errorf("write %s: %w", output, err))
	}
	outcome.RowsOut = len(res.Table.Rows)
	outcome.Status = internal.FileWritten
	return outcome, nil
}

func (s *Service) failed(outcome internal.FileOutcome, err error) (internal.FileOutcome, error) {
	outcome.Output = ""
	outcome.Status = internal.FileFailed
	outcome.Error = err.Error()
	return outcome, err
}

// ProcessAll handles paths one after another. A failing file is logged and
// recorded; it never stops the run.
func (s *Service) ProcessAll(paths []string) internal.RunSummary {
	start := time.Now()
	summary := internal.RunSummary{RunID: uuid.NewString()}
	logger := s.logger.With().Str(applog.FieldRunID, summary.RunID).Logger()

	if s.ledger != nil {
		names := make([]string, 0, len(s.variants))
		for _, v := range s.variants {
			names = append(names, v.Kind().String())
		}
		if err := s.ledger.InsertRun(summary.RunID, names, len(paths)); err != nil {
			logger.Warn().Err(err).Msg("ledger: insert run")
		}
	}

	for _, path := range paths {
		outcome, err := s.ProcessFile(path)
		ev := logger.Info()
		if err != nil {
			ev = logger.Error().Err(err)
		}
		ev.Str(applog.FieldInput, path).
			Str(applog.FieldOutput, outcome.Output).
			Str(applog.FieldStatus, string(outcome.Status)).
			Int("rows_in", outcome.RowsIn).
			Int("rows_out", outcome.RowsOut).
			Msg("file processed")

		if s.ledger != nil {
			if err := s.ledger.RecordFile(summary.RunID, outcome); err != nil {
				logger.Warn().Err(err).Str(applog.FieldInput, path).Msg("ledger: record file")
			}
		}
		summary.Outcomes = append(summary.Outcomes, outcome)
	}

	if s.ledger != nil {
		counts := map[string]int{}
		for _, st := range []internal.FileStatus{internal.FileWritten, internal.FileNoColumns, internal.FileNoRows, internal.FileFailed} {
			counts[string(st)] = summary.Count(st)
		}
		timings := map[string]float64{"totalMs": float64(time.Since(start).Milliseconds())}
		if err := s.ledger.FinishRun(summary.RunID, timings, counts); err != nil {
			logger.Warn().Err(err).Msg("ledger: finish run")
		}
		if err := s.ledger.SetMetadata("last_run_id", summary.RunID); err != nil {
			logger.Warn().Err(err).Msg("ledger: metadata")
		}
	}
	return summary
}
