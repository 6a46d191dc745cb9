package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jmertens/veracity/internal/model"
	"github.com/jmertens/veracity/internal/review"
)

var (
	reviewerID     string
	reviewAction   string
	reviewNotes    string
	correctionText string
	correctionVid  string
)

// reviewCmd groups the human review subcommands
var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "List and decide claims waiting for human review",
}

var reviewListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all claims currently in human review",
	RunE:  runReviewList,
}

var reviewSubmitCmd = &cobra.Command{
	Use:   "submit <claim-id>",
	Short: "Record a reviewer decision for a claim",
	Long: `Submit records an approve, edit or reject decision. The decision is
appended to the claim's audit trail and locks its status; automatic passes
will not touch the claim again.

With --correction, an edit or reject decision additionally issues a public
correction record (requires --video-id).`,
	Args: cobra.ExactArgs(1),
	RunE: runReviewSubmit,
}

var reviewFixesCmd = &cobra.Command{
	Use:   "fixes <claim-id>",
	Short: "Show advisory quick-fix suggestions for a claim",
	Long: `Fixes prints rewording, attribution and softening suggestions for a
claim. Suggestions are purely advisory and never applied automatically.`,
	Args: cobra.ExactArgs(1),
	RunE: runReviewFixes,
}

var reviewTrailCmd = &cobra.Command{
	Use:   "trail <claim-id>",
	Short: "Show the full review audit trail for a claim",
	Args:  cobra.ExactArgs(1),
	RunE:  runReviewTrail,
}

func init() {
	rootCmd.AddCommand(reviewCmd)
	reviewCmd.AddCommand(reviewListCmd)
	reviewCmd.AddCommand(reviewSubmitCmd)
	reviewCmd.AddCommand(reviewFixesCmd)
	reviewCmd.AddCommand(reviewTrailCmd)

	reviewSubmitCmd.Flags().StringVar(&reviewerID, "reviewer", "", "reviewer identifier")
	reviewSubmitCmd.Flags().StringVar(&reviewAction, "action", "", "decision: approve, edit or reject")
	reviewSubmitCmd.Flags().StringVar(&reviewNotes, "notes", "", "free-text notes for the audit trail")
	reviewSubmitCmd.Flags().StringVar(&correctionText, "correction", "", "public correction text to issue alongside the decision")
	reviewSubmitCmd.Flags().StringVar(&correctionVid, "video-id", "", "video the correction applies to")
	_ = reviewSubmitCmd.MarkFlagRequired("action")
}

func newGateway() (*review.Gateway, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	st, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	logger := newLogger()
	cleanup := func() {
		_ = logger.Sync()
		_ = st.Close()
	}
	return review.New(st, logger), cleanup, nil
}

func runReviewList(cmd *cobra.Command, args []string) error {
	gw, cleanup, err := newGateway()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pending, err := gw.PendingReviews(ctx)
	if err != nil {
		return err
	}

	if len(pending) == 0 {
		fmt.Println("No claims waiting for review.")
		return nil
	}

	color.New(color.Bold).Printf("%d claims waiting for review:\n\n", len(pending))
	for _, c := range pending {
		fmt.Printf("  %s  [%-9s] %s\n", c.ID, c.Type, truncate(c.Text, 72))
	}
	fmt.Println("\nDecide with: veracity review submit <claim-id> --action approve|edit|reject")
	return nil
}

func runReviewSubmit(cmd *cobra.Command, args []string) error {
	claimID := args[0]

	action := model.ReviewAction(reviewAction)
	if !action.Valid() {
		return fmt.Errorf("invalid action %q (want approve, edit or reject)", reviewAction)
	}
	if correctionText != "" {
		if action == model.ActionApprove {
			return fmt.Errorf("corrections only apply to edit or reject decisions")
		}
		if correctionVid == "" {
			return fmt.Errorf("--correction requires --video-id")
		}
	}

	gw, cleanup, err := newGateway()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	claim, err := gw.SubmitReview(ctx, claimID, reviewerID, action, reviewNotes)
	if err != nil {
		return err
	}
	fmt.Printf("Claim %s → %s\n", claim.ID, statusLabel(claim.Status))

	if correctionText != "" {
		correction, err := gw.SubmitCorrection(ctx, correctionVid, claimID, correctionText)
		if err != nil {
			return err
		}
		fmt.Printf("Correction %s issued for video %s\n", correction.ID, correction.VideoID)
	}
	return nil
}

func runReviewFixes(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	claim, err := st.ClaimByID(ctx, args[0])
	if err != nil {
		return err
	}

	fixes := review.GenerateQuickFixes(*claim)
	if fixes.Empty() {
		fmt.Println("No suggestions for this claim.")
		return nil
	}

	fmt.Printf("Claim: %s\n\n", claim.Text)
	if fixes.Rewording != "" {
		fmt.Printf("  Rewording:   %s\n", fixes.Rewording)
	}
	if fixes.Attribution != "" {
		fmt.Printf("  Attribution: %s\n", fixes.Attribution)
	}
	if fixes.Conditional != "" {
		fmt.Printf("  Conditional: %s\n", fixes.Conditional)
	}
	fmt.Println("\nSuggestions are advisory; nothing has been changed.")
	return nil
}

func runReviewTrail(cmd *cobra.Command, args []string) error {
	gw, cleanup, err := newGateway()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	trail, err := gw.AuditTrail(ctx, args[0])
	if err != nil {
		return err
	}
	if len(trail) == 0 {
		fmt.Println("No reviews recorded for this claim.")
		return nil
	}

	for _, r := range trail {
		line := fmt.Sprintf("  %s  %-7s  reviewer=%s", r.CreatedAt.Format(time.RFC3339), r.Action, r.ReviewerID)
		if r.Notes != "" {
			line += "  " + r.Notes
		}
		fmt.Println(line)
	}
	return nil
}
