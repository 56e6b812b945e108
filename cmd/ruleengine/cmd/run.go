package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/omirandette/rule-engine/internal/batch"
	"github.com/omirandette/rule-engine/internal/logging"
	"github.com/omirandette/rule-engine/pkg/engine"
	"github.com/omirandette/rule-engine/pkg/rule"
)

var (
	workers    int
	ruleFormat string
)

var runCmd = &cobra.Command{
	Use:   "run <rules-file> <urls-file>",
	Short: "Classify every URL in urls-file against the rules in rules-file",
	Args:  cobra.ExactArgs(2),
	RunE:  runE,
}

func init() {
	runCmd.Flags().IntVar(&workers, "workers", runtime.GOMAXPROCS(0), "number of worker goroutines")
	runCmd.Flags().StringVar(&ruleFormat, "format", "auto", "rule file format (json, yaml, auto)")
	rootCmd.AddCommand(runCmd)
}

func runE(cmd *cobra.Command, args []string) error {
	logger, err := logging.New(logLevel, logFormat)
	if err != nil {
		return err
	}
	defer logger.Sync()

	rulesPath, urlsPath := args[0], args[1]

	sugar := logger.Sugar()

	rules, err := loadRules(rulesPath)
	if err != nil {
		sugar.Errorw("failed to load rules", "error", err)
		return err
	}
	sugar.Infow("loaded rules", "path", rulesPath, "count", len(rules))

	urls, err := readLines(urlsPath)
	if err != nil {
		sugar.Errorw("failed to read urls", "error", err)
		return err
	}
	sugar.Infow("loaded urls", "path", urlsPath, "count", len(urls))

	eng := engine.New(rules)

	results := batch.Process(context.Background(), eng, urls, workers)

	writer := bufio.NewWriter(cmd.OutOrStdout())
	defer writer.Flush()

	invalid, matched := 0, 0
	for _, r := range results {
		fmt.Fprintf(writer, "%s -> %s\n", r.URL, r.Result)
		switch r.Result {
		case batch.InvalidURL:
			invalid++
		case batch.NoMatch:
		default:
			matched++
		}
	}

	sugar.Infow("batch complete",
		"total", len(results), "matched", matched, "invalid", invalid)
	return nil
}

func loadRules(path string) ([]rule.Rule, error) {
	switch ruleFormat {
	case "auto":
		return rule.LoadRulesFile(path)
	case "json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return rule.LoadRules(data, rule.FormatJSON)
	case "yaml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return rule.LoadRules(data, rule.FormatYAML)
	default:
		return nil, fmt.Errorf("cmd: unknown rule format %q", ruleFormat)
	}
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}
