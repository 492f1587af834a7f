package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/orglens/orglens/internal/collect"
	"github.com/orglens/orglens/internal/core"
	"github.com/orglens/orglens/internal/output"
)

// saver is the slice of the store the batch command persists through.
type saver interface {
	SaveResult(ctx context.Context, result *core.ValidatedResult) (string, error)
}

var batchCmd = &cobra.Command{
	Use:   "batch [company...]",
	Short: "Map multiple companies",
	Long:  "Map several companies in sequence, pausing between profile lookups. Failed lookups are reported and skipped.",
	RunE:  runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().String("file", "", "File with one company name per line")
	batchCmd.Flags().String("output", "table", "Output format: table, json, markdown")
	batchCmd.Flags().Bool("save", false, "Persist results to the local store")
}

func runBatch(cmd *cobra.Command, args []string) error {
	filePath, err := cmd.Flags().GetString("file")
	if err != nil {
		return err
	}
	formatValue, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(formatValue)
	if err != nil {
		return err
	}
	save, err := cmd.Flags().GetBool("save")
	if err != nil {
		return err
	}

	names, err := collectNames(args, filePath)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return errors.New("at least one company name is required")
	}

	ctx := cmd.Context()
	m := buildMapper(cfg, logger)
	collector, ok := m.Collector.(*collect.Collector)
	if !ok {
		return errors.New("batch requires the default collector")
	}

	var saveStore saver
	if save {
		opened, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer opened.Close() // nolint:errcheck // best-effort cleanup
		saveStore = opened
	}

	formatter := output.NewFormatter(format)
	startedAt := time.Now()
	mapped := 0

	pages := collector.CollectAll(ctx, names)
	for _, page := range pages {
		name := page.Record.Name
		switch page.Outcome {
		case collect.OutcomeNotFound:
			logger.Warn("no profile found, skipping", zap.String("company", name))
			continue
		case collect.OutcomeDisambiguation:
			logger.Warn("ambiguous name, skipping",
				zap.String("company", name),
				zap.Int("candidates", len(page.Candidates)),
			)
			continue
		}

		enriched, err := m.Preparer.Prepare(ctx, page.Record)
		if err != nil {
			logger.Error("preparation failed", zap.String("company", name), zap.Error(err))
			continue
		}
		result, err := m.Validator.Validate(ctx, enriched)
		if err != nil {
			logger.Error("validation failed", zap.String("company", name), zap.Error(err))
			continue
		}
		mapped++

		if saveStore != nil {
			if _, err := saveStore.SaveResult(ctx, result); err != nil {
				logger.Error("save failed", zap.String("company", name), zap.Error(err))
			}
		}

		rendered, err := formatter.FormatResult(result)
		if err != nil {
			return err
		}
		if rendered != "" {
			fmt.Println(rendered)
		}
	}

	logger.Info("batch complete",
		zap.Int("requested", len(names)),
		zap.Int("mapped", mapped),
		zap.Duration("elapsed", time.Since(startedAt)),
	)
	return nil
}

func collectNames(args []string, filePath string) ([]string, error) {
	seen := make(map[string]struct{})
	names := make([]string, 0, len(args))

	add := func(raw string) {
		name := strings.TrimSpace(raw)
		if name == "" {
			return
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		names = append(names, name)
	}

	for _, arg := range args {
		add(arg)
	}

	if filePath != "" {
		file, err := os.Open(filePath)
		if err != nil {
			return nil, fmt.Errorf("open names file: %w", err)
		}
		defer file.Close() // nolint:errcheck // best-effort cleanup

		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := scanner.Text()
			if strings.HasPrefix(strings.TrimSpace(line), "#") {
				continue
			}
			add(line)
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read names file: %w", err)
		}
	}

	return names, nil
}
