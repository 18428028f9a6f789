package cli

import (
	"fmt"
	"os"

	"github.com/ananyev/kithwatch/internal/config"
	"github.com/ananyev/kithwatch/internal/detect"
	"github.com/ananyev/kithwatch/internal/intervene"
	"github.com/ananyev/kithwatch/internal/msggen"
	"github.com/ananyev/kithwatch/internal/source"
	"github.com/ananyev/kithwatch/internal/store"
)

// buildDetector wires the detection orchestrator from config. Analyzers
// without a configured URL are left nil; the detector substitutes neutral
// defaults for them.
func buildDetector(cfg *config.Config) *detect.Detector {
	var calendar source.CalendarAnalyzer
	var listening source.ListeningAnalyzer
	if cfg.Sources.CalendarURL != "" {
		calendar = source.NewHTTPCalendarAnalyzer(cfg.Sources.CalendarURL, cfg.Sources.Timeout)
	}
	if cfg.Sources.ListeningURL != "" {
		listening = source.NewHTTPListeningAnalyzer(cfg.Sources.ListeningURL, cfg.Sources.Timeout)
	}
	return detect.New(calendar, listening,
		detect.WithDaysBack(cfg.Sources.DaysBack),
		detect.WithSourceTimeout(cfg.Sources.Timeout),
	)
}

// buildOrchestrator wires the intervention orchestrator from config. Every
// collaborator is optional: no recommender URL means no activities, no API
// key means template messages, st may be nil.
func buildOrchestrator(cfg *config.Config, st *store.Store) *intervene.Orchestrator {
	var recommender source.Recommender
	if cfg.Recommender.URL != "" {
		recommender = source.NewHTTPRecommender(cfg.Recommender.URL, cfg.Recommender.Timeout)
	}

	var generator msggen.Generator
	if cfg.LLM.APIKey != "" {
		g, err := msggen.NewOpenAIGenerator(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.Model)
		if err != nil {
			fmt.Fprintf(os.Stderr, "kithwatch: LLM generator disabled: %v\n", err)
		} else {
			generator = g
		}
	}

	var ivStore intervene.Store
	if st != nil {
		ivStore = st
	}
	return intervene.New(recommender, generator, ivStore)
}

// openStore opens the configured store, or returns nil when persistence is
// unavailable. Storage failures never block an assessment.
func openStore(cfg *config.Config) *store.Store {
	if cfg.Store.Path == "" {
		return nil
	}
	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "kithwatch: store unavailable: %v\n", err)
		return nil
	}
	return st
}
