// Package cli implements AEC's command surface: a single positional
// <path> and a single flag argument whose *second* character selects
// behavior, exactly as the original tool's argv[2][1] switch did.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/classroom-tools/aec/internal/analysis"
	"github.com/classroom-tools/aec/internal/config"
	"github.com/classroom-tools/aec/internal/fsdir"
	"github.com/classroom-tools/aec/internal/report"
	"github.com/classroom-tools/aec/internal/scanner"
)

// rootCmd disables cobra's own flag parsing: AEC's single "flag" token is
// dispatched by its second character (-m, -e, -r, -t, -c, -v), not by
// cobra's flag machinery, so cobra must be kept out of the way entirely.
var rootCmd = &cobra.Command{
	Use:                "aec <path> <command>",
	Short:              "AEC - Assembly Error Checker for ARM assembly source",
	SilenceUsage:       true,
	DisableFlagParsing: true,
	RunE:               run,
}

// Execute runs the root command, the entrypoint cmd/aec/main.go calls.
func Execute() error {
	return rootCmd.Execute()
}

func run(cmd *cobra.Command, args []string) error {
	log := logrus.StandardLogger()
	out := cmd.OutOrStdout()

	if len(args) != 2 {
		fmt.Fprintln(cmd.ErrOrStderr(), "Correct formats: aec <filename> <command> || aec <directory> -t")
		return fmt.Errorf("cli: expected exactly 2 arguments, got %d", len(args))
	}
	inputPath, command := args[0], args[1]
	if len(command) < 2 {
		return fmt.Errorf("cli: command %q is too short to dispatch on", command)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := config.Load(cwd, log)
	if err != nil {
		return err
	}
	opts := cfg.Options()
	reportsDirName := cfg.ReportsDir
	if reportsDirName == "" {
		reportsDirName = fsdir.ReportsDirName
	}

	switch command[1] {
	case 'h':
		printHelp(out)
		return nil
	case 'm':
		return runSingleMode(inputPath, opts, report.ModeMetrics, out, log)
	case 'e':
		return runSingleMode(inputPath, opts, report.ModeErrors, out, log)
	case 'r':
		return runSingleReportFile(inputPath, opts, reportsDirName, log)
	case 't':
		return runDirectoryReports(inputPath, opts, reportsDirName, log)
	case 'c':
		return runSingleCSV(inputPath, opts, log)
	case 'v':
		return runDirectoryCSV(inputPath, opts, log)
	default:
		return fmt.Errorf("cli: unrecognized command %q", command)
	}
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "commands:")
	fmt.Fprintln(w, "  -h\t\tDisplay help message")
	fmt.Fprintln(w, "  -m\t\tPrint metrics to terminal")
	fmt.Fprintln(w, "  -e\t\tPrint errors to terminal")
	fmt.Fprintln(w, "  -r\t\tCreate report file")
	fmt.Fprintln(w, "  -c\t\tCreate csv file")
	fmt.Fprintln(w, "  <folder path> -t\t\tCreate report files from folder")
	fmt.Fprintln(w, "  <folder path> -v\t\tCreate csv files from folder")
}

func scanFile(path string, opts analysis.Options, log logrus.FieldLogger) (report.Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return report.Input{}, fmt.Errorf("cli: open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return report.Input{}, fmt.Errorf("cli: stat %s: %w", path, err)
	}

	res, err := analysis.Scan(f, scanner.FileRef(path), opts, log)
	if err != nil {
		return report.Input{}, fmt.Errorf("cli: scan %s: %w", path, err)
	}

	// Go's os.FileInfo has no portable access-time accessor (unlike
	// POSIX stat()'s st_atime the original tool reads); ModTime stands
	// in for both fields rather than reaching for a platform-specific
	// syscall for one cosmetic report line.
	return report.Input{
		FileName:     fileNameOf(path),
		LastAccessed: info.ModTime(),
		LastModified: info.ModTime(),
		Result:       res,
		Metrics:      analysis.Halstead(res),
	}, nil
}

func fileNameOf(path string) string {
	i := strings.LastIndexAny(path, "/\\")
	if i < 0 {
		return path
	}
	return path[i+1:]
}

func runSingleMode(path string, opts analysis.Options, mode report.Mode, out io.Writer, log logrus.FieldLogger) error {
	in, err := scanFile(path, opts, log)
	if err != nil {
		return err
	}
	return report.Write(out, in, mode, log)
}

func runSingleReportFile(path string, opts analysis.Options, reportsDirName string, log logrus.FieldLogger) error {
	reportsDir, err := fsdir.EnsureReportsDir(reportsDirName, log)
	if err != nil {
		return err
	}
	in, err := scanFile(path, opts, log)
	if err != nil {
		return err
	}
	outPath := fsdir.SingleFileReportPath(reportsDir, path)
	return writeReportFile(outPath, in, log)
}

func runDirectoryReports(dir string, opts analysis.Options, reportsDirName string, log logrus.FieldLogger) error {
	reportsDir, err := fsdir.EnsureReportsDir(reportsDirName, log)
	if err != nil {
		return err
	}
	files, err := fsdir.FindAssemblyFiles(dir, log)
	if err != nil {
		return err
	}
	for _, f := range files {
		in, err := scanFile(f, opts, log)
		if err != nil {
			log.WithError(err).WithField("file", f).Warn("skipping file")
			continue
		}
		outPath := fsdir.DirEntryReportPath(reportsDir, f)
		if err := writeReportFile(outPath, in, log); err != nil {
			return err
		}
	}
	return nil
}

func writeReportFile(path string, in report.Input, log logrus.FieldLogger) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cli: create report %s: %w", path, err)
	}
	defer f.Close()

	if err := report.Write(f, in, report.ModeFull, log); err != nil {
		return err
	}
	log.WithField("path", path).Info("created report file")
	return nil
}

// csvDatasetName is the original tool's fixed dataset filename for both
// -c (single file) and -v (directory scan).
const csvDatasetName = "AEC_Dataset.csv"

func runSingleCSV(path string, opts analysis.Options, log logrus.FieldLogger) error {
	in, err := scanFile(path, opts, log)
	if err != nil {
		return err
	}
	return report.AppendCSV(csvDatasetName, in, log)
}

func runDirectoryCSV(dir string, opts analysis.Options, log logrus.FieldLogger) error {
	files, err := fsdir.FindAssemblyFiles(dir, log)
	if err != nil {
		return err
	}
	for _, f := range files {
		in, err := scanFile(f, opts, log)
		if err != nil {
			log.WithError(err).WithField("file", f).Warn("skipping file")
			continue
		}
		if err := report.AppendCSV(csvDatasetName, in, log); err != nil {
			return err
		}
	}
	return nil
}
