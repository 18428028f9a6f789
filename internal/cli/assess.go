package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ananyev/kithwatch/internal/config"
	"github.com/ananyev/kithwatch/internal/detect"
	"github.com/ananyev/kithwatch/internal/model"
)

var (
	assessUser           string
	assessCalendarToken  string
	assessListeningToken string
	assessBaselineRisk   float64
	assessFormat         string
)

func init() {
	rootCmd.AddCommand(assessCmd)
	assessCmd.Flags().StringVar(&assessUser, "user", "", "User identifier (required)")
	assessCmd.Flags().StringVar(&assessCalendarToken, "calendar-token", "", "Calendar OAuth token (omit if not granted)")
	assessCmd.Flags().StringVar(&assessListeningToken, "listening-token", "", "Listening OAuth token (omit if not granted)")
	assessCmd.Flags().Float64Var(&assessBaselineRisk, "baseline-risk", -1, "Historical baseline risk 0-100 (omit if no history)")
	assessCmd.Flags().StringVarP(&assessFormat, "format", "f", "json", "Output format (json|text)")
	assessCmd.MarkFlagRequired("user")
}

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Run one risk detection for a user",
	Long: "Fetches metrics from the configured analyzers (substituting neutral\n" +
		"defaults for missing or failing sources), fuses them into a composite\n" +
		"risk score, and prints the assessment.",
	RunE: runAssess,
}

func runAssess(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	var baseline *model.Baseline
	if assessBaselineRisk >= 0 {
		baseline = &model.Baseline{HistoricalRisk: assessBaselineRisk}
	}

	detector := buildDetector(cfg)
	result := detector.Run(cmd.Context(), detect.Request{
		UserID:         assessUser,
		CalendarToken:  assessCalendarToken,
		ListeningToken: assessListeningToken,
		Baseline:       baseline,
	})

	if st := openStore(cfg); st != nil {
		defer st.Close()
		if _, err := st.SaveAssessment(result); err != nil {
			fmt.Fprintf(os.Stderr, "kithwatch: store assessment: %v\n", err)
		}
	}

	switch assessFormat {
	case "text":
		a := result.Assessment
		fmt.Printf("score: %d\nlevel: %s\ntier: %s\n", a.Score, a.Level, model.TierFor(a.Level, a.Score))
		for _, line := range a.Explanation {
			fmt.Printf("  - %s\n", line)
		}
	default:
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	}
	return nil
}
