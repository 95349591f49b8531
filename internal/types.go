package internal

// Table is a header row plus data rows. Rows may be ragged.
type Table struct {
	Headers []string
	Rows    [][]string
}

type FileStatus string

const (
	FileWritten   FileStatus = "written"
	FileNoColumns FileStatus = "no_columns"
	FileNoRows    FileStatus = "no_rows"
	FileFailed    FileStatus = "failed"
)

// FileOutcome is what happened to one input file during a run.
type FileOutcome struct {
	Input    string
	Output   string
	Status   FileStatus
	RowsIn   int
	RowsOut  int
	Groups   int
	Observed []string
	Error    string
}

// RunSummary counts file outcomes by status.
type RunSummary struct {
	RunID    string
	Outcomes []FileOutcome
}

func (s RunSummary) Count(status FileStatus) int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}
