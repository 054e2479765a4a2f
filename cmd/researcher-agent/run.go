// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/researcher-agent/internal/agent"
	"github.com/pdiddy/researcher-agent/internal/critique"
	"github.com/pdiddy/researcher-agent/internal/export"
	"github.com/pdiddy/researcher-agent/internal/findings"
	"github.com/pdiddy/researcher-agent/internal/gemini"
	"github.com/pdiddy/researcher-agent/internal/pipeline"
	"github.com/pdiddy/researcher-agent/internal/plan"
	"github.com/pdiddy/researcher-agent/internal/report"
	"github.com/pdiddy/researcher-agent/internal/secrets"
	"github.com/pdiddy/researcher-agent/internal/session"
	"github.com/pdiddy/researcher-agent/internal/textutil"
	"github.com/pdiddy/researcher-agent/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run [topic...]",
	Short: "Run the full research pipeline for a topic",
	Long: `Run sequences the four agents for a topic: the coordinator produces a
research plan, the research assistant gathers concise findings, the editor
drafts a long-form Markdown report, and the critic reviews it.

Artifacts from completed stages are exported to --output-dir even when a
later stage fails; re-run the command to retry a failed run.`,
	RunE: runPipeline,
}

func runPipeline(cmd *cobra.Command, args []string) error {
	topic := strings.TrimSpace(strings.Join(args, " "))
	if topic == "" {
		return fmt.Errorf("topic required: researcher-agent run <topic>")
	}

	cfg := pipelineConfig(cmd)
	if cfg.AI.APIKey == "" {
		return fmt.Errorf("no Gemini API key: put one in .secrets/%s or set RESEARCHER_AGENT_API_KEY", secrets.GeminiAPIKey)
	}

	store, err := session.Open()
	if err != nil {
		return err
	}
	defer store.Close()

	backend := gemini.NewClient(cfg.AI, nil)
	driver := pipeline.NewDriver(
		plan.NewGenerator(backend),
		findings.NewGenerator(backend),
		report.NewGenerator(backend),
		critique.NewGenerator(backend),
		store,
		uuid.NewString(),
	)

	state, runErr := driver.Run(context.Background(), topic, os.Stdout)

	// Export whatever completed, success or not.
	if paths, exportErr := export.WriteAll(cfg.OutputDir, state); exportErr != nil {
		fmt.Fprintf(os.Stderr, "warning: export failed: %v\n", exportErr)
	} else {
		for _, p := range paths {
			fmt.Fprintf(os.Stdout, "wrote %s\n", p)
		}
	}

	if runErr != nil {
		return describeFailure(runErr)
	}

	printSummary(state)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(state)
	}
	return nil
}

// describeFailure renders a stage failure for the user, distinguishing
// upstream API failures from malformed model output.
func describeFailure(err error) error {
	stage := pipeline.FailedStage(err)

	var me *agent.MalformedResponseError
	if errors.As(err, &me) {
		return fmt.Errorf("the model returned an unusable %s response (%s); re-running usually fixes this", stage, me.Reason)
	}
	return fmt.Errorf("run failed at the %s stage: %w", stage, err)
}

// printSummary reports the soft length contracts as advisory stats; they are
// requested in the prompts, never enforced.
func printSummary(state types.SessionState) {
	if state.Findings != nil {
		fmt.Printf("findings: %d words\n", textutil.CountWords(state.Findings.Summary))
	}
	if state.Report != nil {
		fmt.Printf("report:   %d words, %d sections, %d sources\n",
			textutil.CountWords(state.Report.Markdown), len(state.Report.Outline), len(state.Report.Sources))
	}
	if state.Critique != nil {
		fmt.Printf("critique: %d issues, %d suggestions\n",
			len(state.Critique.Issues), len(state.Critique.Suggestions))
	}
}

// pipelineConfig assembles the run configuration from flags, config file, and
// loaded secrets.
func pipelineConfig(cmd *cobra.Command) types.PipelineConfig {
	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		model = viper.GetString("model")
	}

	outputDir, _ := cmd.Flags().GetString("output-dir")
	if outputDir == "" {
		outputDir = "output/reports"
	}

	return types.PipelineConfig{
		AI: types.AIConfig{
			Model:  model,
			APIKey: secretDefault(secrets.GeminiAPIKey, viper.GetString("api_key")),
		},
		OutputDir: outputDir,
	}
}

func init() {
	runCmd.Flags().String("model", "", "model identifier (default gemini-2.5-flash)")
	runCmd.Flags().String("output-dir", "output/reports", "directory for exported artifacts")
	runCmd.Flags().Bool("json", false, "also print the session state as JSON")

	rootCmd.AddCommand(runCmd)
}
