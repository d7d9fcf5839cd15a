package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gofrs/uuid"
	"github.com/sirupsen/logrus"
)

// csvHeader matches AEC.cpp's case 4 column order exactly, plus the
// supplemental "Run Id" column (see SPEC_FULL.md's "Supplemental CSV
// column").
var csvHeader = []string{
	"File name", "Last Accessed", "Last Modified",
	"Halstead's Total Operators", "Total Operands",
	"Unique Operators", "Unique Operands",
	"Length", "Vocabulary", "Volume", "Difficulty", "Effort",
	"Run Id",
}

// AppendCSV appends one row for in to path, writing the header row first
// if the file doesn't exist yet -- mirroring the original's
// std::filesystem::exists(output_file) check rather than truncating on
// every run, since -v drives this once per file in a directory scan and
// every file's row belongs in the same dataset.
func AppendCSV(path string, in Input, log logrus.FieldLogger) error {
	if log == nil {
		log = logrus.StandardLogger()
	}
	_, statErr := os.Stat(path)
	needsHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("report: open csv %s: %w", path, err)
	}
	defer f.Close()

	if needsHeader {
		log.WithField("path", path).Info("creating csv header")
		if err := writeCSVRow(f, csvHeader); err != nil {
			return err
		}
	}
	return writeCSVRow(f, csvRow(in))
}

func csvRow(in Input) []string {
	m := in.Metrics
	res := in.Result
	return []string{
		in.FileName,
		in.LastAccessed.Format(time.ANSIC),
		in.LastModified.Format(time.ANSIC),
		fmt.Sprintf("%d", res.TotalOperators),
		fmt.Sprintf("%d", res.TotalOperands),
		fmt.Sprintf("%d", len(res.UniqueOperators)),
		fmt.Sprintf("%d", len(res.UniqueOperands)),
		fmt.Sprintf("%d", m.Length),
		fmt.Sprintf("%d", m.Vocabulary),
		fmt.Sprintf("%g", m.Volume),
		fmt.Sprintf("%g", m.Difficulty),
		fmt.Sprintf("%g", m.Effort),
		uuid.Must(uuid.NewV4()).String(),
	}
}

func writeCSVRow(w io.Writer, row []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(row); err != nil {
		return fmt.Errorf("report: write csv row: %w", err)
	}
	cw.Flush()
	return cw.Error()
}
