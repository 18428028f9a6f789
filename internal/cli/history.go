package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ananyev/kithwatch/internal/config"
	"github.com/ananyev/kithwatch/internal/store"
)

var historyUser string

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringVar(&historyUser, "user", "", "User identifier (required)")
	historyCmd.MarkFlagRequired("user")
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored assessments for a user",
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Store.Path == "" {
		return fmt.Errorf("no store path configured")
	}

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	results, err := st.Assessments(historyUser)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
