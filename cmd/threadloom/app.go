package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/foliosim/threadloom/catalog"
	"github.com/foliosim/threadloom/config"
	"github.com/foliosim/threadloom/narrative"
	"github.com/foliosim/threadloom/relevance"
	"github.com/foliosim/threadloom/threadgen"
	"github.com/foliosim/threadloom/threadplan"
)

// corpusPlan is the YAML document `generate --out` writes for the
// content-generation stage.
type corpusPlan struct {
	StorylineID string                 `yaml:"storyline_id"`
	Slug        string                 `yaml:"slug"`
	Seed        int64                  `yaml:"seed"`
	Beats       []*narrative.StoryBeat `yaml:"beats"`
	Plans       []*threadplan.Plan     `yaml:"plans"`
}

func generateCmd(configPath, logLevel *string) *cobra.Command {
	var (
		catalogPath   string
		storylinePath string
		outPath       string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Plan thread structure for a storyline",
		Long: `Generate loads an organizational catalog and a storyline beat sheet,
plans every beat's threads (volume, topology, timing, classification,
participants, attachments), and either prints a summary or writes the
full structure plan as YAML for the content stage.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(*logLevel)
			cfg, err := loadConfig(*configPath, logger)
			if err != nil {
				return err
			}
			if catalogPath != "" {
				cfg.Generation.CatalogPath = catalogPath
			}
			if storylinePath != "" {
				cfg.Generation.StorylinePath = storylinePath
			}
			return runGenerate(cfg, outPath, logger)
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Organizational catalog file (overrides config)")
	cmd.Flags().StringVar(&storylinePath, "storyline", "", "Storyline beat sheet file (overrides config)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the full structure plan as YAML to this file")

	return cmd
}

// loadConfig resolves configuration: an explicit file when given,
// otherwise the layered loader.
func loadConfig(path string, logger *slog.Logger) (*config.Config, error) {
	if path != "" {
		cfg, err := config.LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		return cfg, nil
	}
	return config.NewLoader(logger).Load()
}

func runGenerate(cfg *config.Config, outPath string, logger *slog.Logger) error {
	cat, err := catalog.LoadFromFile(cfg.Generation.CatalogPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	story, err := narrative.LoadStoryline(cfg.Generation.StorylinePath)
	if err != nil {
		return fmt.Errorf("load storyline: %w", err)
	}

	keyRoles := cat.KeyRoleCount()
	if keyRoles == 0 {
		return fmt.Errorf("catalog has no key characters; mark at least one character is_key")
	}

	logger.Info("Planning storyline",
		slog.String("storyline", story.Slug),
		slog.Int("beats", len(story.Beats)),
		slog.Int("organizations", len(cat.Organizations)),
		slog.Int("key_roles", keyRoles),
		slog.Int64("seed", cfg.Generation.Seed))

	gen := threadgen.New(cfg, logger)
	rng := threadgen.StorylineStream(cfg.Generation.Seed, story.Slug)

	if err := gen.PlanThreadsForBeats(story.Beats, keyRoles, rng); err != nil {
		return fmt.Errorf("plan threads: %w", err)
	}

	doc := &corpusPlan{
		StorylineID: story.ID.String(),
		Slug:        story.Slug,
		Seed:        cfg.Generation.Seed,
		Beats:       story.Beats,
	}

	var threads, responsive, hot, emails int
	for _, beat := range story.Beats {
		for _, thread := range beat.Threads {
			if err := gen.AssignThreadParticipants(thread, cat.Organizations, rng); err != nil {
				return fmt.Errorf("assign participants for thread %s: %w", thread.ID, err)
			}

			plan, err := threadplan.BuildPlan(thread, len(thread.Messages), beat.Start, beat.End, cfg, cfg.Generation.Seed)
			if err != nil {
				return fmt.Errorf("plan structure for thread %s: %w", thread.ID, err)
			}
			doc.Plans = append(doc.Plans, plan)

			threads++
			emails += len(thread.Messages)
			if thread.Relevance == narrative.RelevanceResponsive {
				responsive++
			}
			if thread.IsHot {
				hot++
			}
		}
	}

	logger.Info("Storyline planned",
		slog.Int("threads", threads),
		slog.Int("emails", emails),
		slog.Int("responsive", responsive),
		slog.Int("hot", hot))

	if outPath != "" {
		data, err := yaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("marshal plan: %w", err)
		}
		if err := os.WriteFile(outPath, data, 0644); err != nil {
			return fmt.Errorf("write plan: %w", err)
		}
		logger.Info("Wrote structure plan", slog.String("path", outPath))
		return nil
	}

	fmt.Printf("storyline %s: %d beats, %d threads, %d emails (%d responsive, %d hot)\n",
		story.Slug, len(story.Beats), threads, emails, responsive, hot)
	return nil
}

func oddsCmd() *cobra.Command {
	var from, to int

	cmd := &cobra.Command{
		Use:   "odds",
		Short: "Print the relevance probability curve",
		Long: `Odds prints the responsive and hot classification probabilities for a
range of thread lengths, straight from the mixture model.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if from > to {
				return fmt.Errorf("--from must not exceed --to")
			}
			fmt.Printf("%6s  %12s  %12s\n", "n", "responsive", "hot")
			for n := from; n <= to; n++ {
				odds, err := relevance.ThreadOdds(n)
				if err != nil {
					return err
				}
				fmt.Printf("%6s  %12.6f  %12.6f\n", strconv.Itoa(n), odds.Responsive, odds.Hot)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&from, "from", 1, "First thread length")
	cmd.Flags().IntVar(&to, "to", 20, "Last thread length")

	return cmd
}
