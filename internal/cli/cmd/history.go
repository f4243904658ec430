package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/retouch/internal/cli/model"
	"github.com/bnema/retouch/internal/cli/styles"
	"github.com/bnema/retouch/internal/domain/entity"
)

var (
	historyJSON bool
	historyMax  int
	historyYes  bool
)

const defaultHistoryMax = 50

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List and manage saved prompts",
	Long:  `List saved prompts, newest first. Use the History tab of 'retouch chat' to browse them interactively.`,
	RunE:  runHistory,
}

var historyRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete one saved prompt",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryRm,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every saved prompt",
	Long: `Delete every saved prompt.

This also recovers a history document that can no longer be read.`,
	RunE: runHistoryClear,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyRmCmd)
	historyCmd.AddCommand(historyClearCmd)

	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON")
	historyCmd.Flags().IntVar(&historyMax, "max", defaultHistoryMax, "maximum entries to show, 0 for all")
	historyClearCmd.Flags().BoolVarP(&historyYes, "yes", "y", false, "skip confirmation prompt")
}

type historyEntry struct {
	ID        string `json:"id"`
	ImagePath string `json:"image_path"`
	Prompt    string `json:"prompt"`
	Timestamp int64  `json:"timestamp"`
}

func runHistory(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	collection, err := a.Prompts.LoadAll(a.Ctx())
	if err != nil {
		if entity.IsFormatError(err) {
			return fmt.Errorf("%w\nrun 'retouch history clear' to start over", err)
		}
		return err
	}

	records := newestFirst(collection.Items, historyMax)

	if historyJSON {
		entries := make([]historyEntry, 0, len(records))
		for _, r := range records {
			entries = append(entries, historyEntry{
				ID:        r.ID,
				ImagePath: r.ImagePath,
				Prompt:    r.Prompt,
				Timestamp: r.Timestamp.Unix(),
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(records) == 0 {
		fmt.Println(a.Theme.Subtle.Render("No prompts yet."))
		return nil
	}
	for _, r := range records {
		row := styles.HistoryRow(r)
		fmt.Printf("%s  %s  %s  %s\n",
			a.Theme.Subtle.Render(r.ID),
			a.Theme.Subtle.Render(fmt.Sprintf("%-10s", row[0])),
			a.Theme.Highlight.Render(row[1]),
			a.Theme.Normal.Render(r.Prompt),
		)
	}
	return nil
}

func runHistoryRm(_ *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	if err := a.Prompts.Delete(a.Ctx(), args[0]); err != nil {
		return err
	}
	fmt.Println(a.Theme.SuccessStyle.Render(styles.IconTrash+" Deleted ") + args[0])
	return nil
}

func runHistoryClear(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	if !historyYes {
		presenter := model.NewConsolePresenter(a.Theme, nil, os.Stderr)
		if !presenter.Confirm(a.Ctx(), "Delete every saved prompt?") {
			fmt.Println(a.Theme.Subtle.Render("Canceled."))
			return nil
		}
	}

	if err := a.Prompts.Clear(a.Ctx()); err != nil {
		return err
	}
	fmt.Println(a.Theme.SuccessStyle.Render(styles.IconTrash + " History cleared"))
	return nil
}

// newestFirst returns up to limit records in reverse insertion order. A
// limit of 0 or less returns all of them.
func newestFirst(items []entity.PromptRecord, limit int) []entity.PromptRecord {
	n := len(items)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]entity.PromptRecord, 0, n)
	for i := len(items) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, items[i])
	}
	return out
}
