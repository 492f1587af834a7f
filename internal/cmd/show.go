package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/orglens/orglens/internal/core/store"
)

var showCmd = &cobra.Command{
	Use:   "show <company>",
	Short: "Show a previously saved hierarchy",
	Long:  "Print the most recently saved hierarchy for a company from the local store",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved companies",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(listCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(args[0])
	if name == "" {
		return errors.New("company name is required")
	}

	ctx := cmd.Context()
	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close() // nolint:errcheck // best-effort cleanup

	hierarchy, err := db.GetHierarchy(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no saved hierarchy for %q, run map --save first", name)
		}
		return err
	}

	rendered, err := json.MarshalIndent(hierarchy, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(rendered))
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close() // nolint:errcheck // best-effort cleanup

	companies, err := db.ListCompanies(ctx)
	if err != nil {
		return err
	}
	if len(companies) == 0 {
		fmt.Println("No saved companies.")
		return nil
	}

	writer := table.NewWriter()
	writer.SetStyle(table.StyleRounded)
	writer.AppendHeader(table.Row{"Company", "Score", "Valid", "Saved"})
	for _, company := range companies {
		verdict := "no"
		if company.IsValid {
			verdict = "yes"
		}
		writer.AppendRow(table.Row{
			company.Name,
			fmt.Sprintf("%.1f", company.OverallScore),
			verdict,
			company.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	fmt.Println(writer.Render())
	return nil
}
