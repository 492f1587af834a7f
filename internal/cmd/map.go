package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/orglens/orglens/internal/mapper"
	"github.com/orglens/orglens/internal/output"
)

var mapCmd = &cobra.Command{
	Use:   "map <company>",
	Short: "Map a company's digital asset hierarchy",
	Long:  "Collect a company profile, enrich it and produce a validated digital asset hierarchy",
	Args:  cobra.ExactArgs(1),
	RunE:  runMap,
}

func init() {
	rootCmd.AddCommand(mapCmd)

	mapCmd.Flags().String("output", "table", "Output format: table, json, markdown")
	mapCmd.Flags().Bool("save", false, "Persist the result to the local store")
}

func runMap(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(args[0])
	if name == "" {
		return errors.New("company name is required")
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

	ctx := cmd.Context()
	startedAt := time.Now()

	result, err := buildMapper(cfg, logger).Map(ctx, name)
	if err != nil {
		var ambiguous *mapper.AmbiguousError
		if errors.As(err, &ambiguous) {
			fmt.Printf("%q matched multiple organizations:\n", name)
			for _, candidate := range ambiguous.Candidates {
				fmt.Printf("  - %s\n", candidate)
			}
			return errors.New("company name is ambiguous, rerun with a more specific name")
		}
		return err
	}

	if save {
		db, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer db.Close() // nolint:errcheck // best-effort cleanup

		id, err := db.SaveResult(ctx, result)
		if err != nil {
			return fmt.Errorf("save result: %w", err)
		}
		logger.Info("result saved", zap.String("company_id", id))
	}

	rendered, err := output.NewFormatter(format).FormatResult(result)
	if err != nil {
		return err
	}
	if rendered != "" {
		fmt.Println(rendered)
	}

	if format != output.FormatJSON {
		logger.Info("mapping complete",
			zap.String("company", name),
			zap.Duration("elapsed", time.Since(startedAt)),
		)
	}
	return nil
}
