package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jmertens/veracity/internal/model"
	"github.com/jmertens/veracity/internal/pipeline"
)

var (
	checkScriptID   string
	checkTimeout    time.Duration
	checkSource     string
	checkSearchURL  string
	checkLLM        string
	checkLLMModel   string
	checkLLMBaseURL string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <script-file>",
	Short: "Run the full fact-checking pipeline over a script file",
	Long: `Check reads a video script from a text file and runs it through the
pipeline: claim extraction, automatic scoring, evidence collection and
ranking, and an evidence-grounded verdict pass.

Claims that cannot be auto-approved end up in human review; see
'veracity review list'.

Example:
  veracity check episode-042.txt
  veracity check episode-042.txt --script-id ep42 --source http --search-url 'https://search.example/?q=%s'
  veracity check episode-042.txt --llm openai`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkScriptID, "script-id", "", "script identifier (default: file name without extension)")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 5*time.Minute, "overall pipeline timeout")
	checkCmd.Flags().StringVar(&checkSource, "source", "", "evidence source (stub, http)")
	checkCmd.Flags().StringVar(&checkSearchURL, "search-url", "", "search endpoint template for the http source (%s = query)")
	checkCmd.Flags().StringVar(&checkLLM, "llm", "", "LLM classifier provider (openai, ollama)")
	checkCmd.Flags().StringVar(&checkLLMModel, "llm-model", "", "LLM model name")
	checkCmd.Flags().StringVar(&checkLLMBaseURL, "llm-base-url", "", "LLM endpoint base URL (for ollama)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	scriptPath := args[0]

	raw, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	scriptID := checkScriptID
	if scriptID == "" {
		base := filepath.Base(scriptPath)
		scriptID = strings.TrimSuffix(base, filepath.Ext(base))
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if checkSource != "" {
		cfg.Evidence.Source = checkSource
	}
	if checkSearchURL != "" {
		cfg.Evidence.SearchURL = checkSearchURL
	}
	if checkLLM != "" {
		cfg.LLM.Provider = checkLLM
		cfg.LLM.Model = checkLLMModel
		cfg.LLM.BaseURL = checkLLMBaseURL
		if checkLLM == "openai" && cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		}
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	p, err := pipeline.New(st, cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	result, err := p.Run(ctx, string(raw), scriptID)
	if err != nil {
		return err
	}

	printCheckSummary(scriptID, result)
	return nil
}

func printCheckSummary(scriptID string, result *pipeline.Result) {
	bold := color.New(color.Bold)

	_, _ = bold.Printf("Script %s: %d claims, %d evidence rows\n\n", scriptID, len(result.Claims), len(result.Evidence))

	if len(result.Claims) == 0 {
		fmt.Println("No fact-checkable claims found.")
		return
	}

	counts := make(map[model.ClaimStatus]int)
	for _, c := range result.Claims {
		counts[c.Status]++
		fmt.Printf("  %s  [%s] %s\n", statusLabel(c.Status), c.Type, truncate(c.Text, 80))
	}

	fmt.Println()
	if n := counts[model.StatusAutoApproved]; n > 0 {
		color.Green("  auto-approved: %d", n)
	}
	if n := counts[model.StatusHumanReview]; n > 0 {
		color.Yellow("  human-review:  %d  (run 'veracity review list')", n)
	}
}

func statusLabel(s model.ClaimStatus) string {
	switch s {
	case model.StatusAutoApproved, model.StatusApproved:
		return color.GreenString("%-13s", string(s))
	case model.StatusRejected:
		return color.RedString("%-13s", string(s))
	case model.StatusHumanReview:
		return color.YellowString("%-13s", string(s))
	default:
		return fmt.Sprintf("%-13s", string(s))
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
