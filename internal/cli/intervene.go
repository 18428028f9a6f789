package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ananyev/kithwatch/internal/config"
	"github.com/ananyev/kithwatch/internal/intervene"
	"github.com/ananyev/kithwatch/internal/model"
)

var (
	interveneInput     string
	interveneInterests string
	interveneLocation  string
	interveneMessage   string
)

func init() {
	rootCmd.AddCommand(interveneCmd)
	interveneCmd.Flags().StringVar(&interveneInput, "input", "", "Path to an assessment or detection result JSON (required)")
	interveneCmd.Flags().StringVar(&interveneInterests, "interests", "", "Comma-separated user interests")
	interveneCmd.Flags().StringVar(&interveneLocation, "location", "", "User location")
	interveneCmd.Flags().StringVar(&interveneMessage, "message", "", "Free-text message from the user")
	interveneCmd.MarkFlagRequired("input")
}

var interveneCmd = &cobra.Command{
	Use:   "intervene",
	Short: "Build the intervention payload for an assessment",
	Long: "Reads an assessment JSON, applies the escalation policy, optionally\n" +
		"fetches activity recommendations, and prints the intervention payload.",
	RunE: runIntervene,
}

func runIntervene(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	assessment, err := loadAssessment(interveneInput)
	if err != nil {
		return err
	}

	var interests []string
	for _, s := range strings.Split(interveneInterests, ",") {
		if s = strings.TrimSpace(s); s != "" {
			interests = append(interests, s)
		}
	}

	st := openStore(cfg)
	if st != nil {
		defer st.Close()
	}

	orchestrator := buildOrchestrator(cfg, st)
	iv := orchestrator.Run(cmd.Context(), intervene.Request{
		Assessment:  *assessment,
		Interests:   interests,
		Location:    interveneLocation,
		UserMessage: interveneMessage,
	})

	out, err := json.MarshalIndent(iv, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// loadAssessment accepts either a bare Assessment or a full DetectionResult.
func loadAssessment(path string) (*model.Assessment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	var wrapped model.DetectionResult
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Assessment.Level != "" {
		return &wrapped.Assessment, nil
	}

	var a model.Assessment
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parse input: %w", err)
	}
	return &a, nil
}
