// Package fsdir implements the directory-level plumbing the -t/-v/-r
// command modes need: finding the *.s files in a single directory and
// creating the Reports/ output directory, neither of which touches the
// analysis itself.
package fsdir

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// ReportsDirName is the directory -r/-t write report files into,
// relative to the current working directory, matching the original
// tool's hardcoded "Reports" path. A course instructor can override it
// via aec.yaml (internal/config).
const ReportsDirName = "Reports"

// EnsureReportsDir creates name (default ReportsDirName) if it doesn't
// already exist, mirroring std::filesystem::create_directory's
// succeed-if-exists semantics.
func EnsureReportsDir(name string, log logrus.FieldLogger) (string, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if name == "" {
		name = ReportsDirName
	}
	if err := os.MkdirAll(name, 0o755); err != nil {
		return "", fmt.Errorf("fsdir: create reports dir %s: %w", name, err)
	}
	log.WithField("dir", name).Debug("reports directory ready")
	return name, nil
}

// FindAssemblyFiles lists every regular *.s file directly inside dir, not
// descending into subdirectories -- the original tool's
// std::filesystem::directory_iterator, not a recursive walk, for the -t
// and -v directory modes (spec §6).
func FindAssemblyFiles(dir string, log logrus.FieldLogger) ([]string, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("fsdir: read dir %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), ".s") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	log.WithFields(logrus.Fields{"dir": dir, "count": len(files)}).Debug("discovered assembly files")
	return files, nil
}

// SingleFileReportPath returns the report path for a single -r invocation:
// only the base stem of inputFile is kept, so "sub/prog.s" becomes
// "Reports/prog_report.txt", the same name a -t scan gives that file.
func SingleFileReportPath(reportsDir, inputFile string) string {
	base := filepath.Base(inputFile)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(reportsDir, stem+"_report.txt")
}

// DirEntryReportPath returns the report path for one file found during a
// -t directory scan: the original discards the directory component and
// keys only off the file's base stem, so every report in Reports/ sits
// flat regardless of how deep the source file was nested.
func DirEntryReportPath(reportsDir, inputFile string) string {
	base := filepath.Base(inputFile)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(reportsDir, stem+"_report.txt")
}
