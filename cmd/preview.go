package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptiq/internal/content"
	"github.com/abhisek/adaptiq/internal/llm"
	"github.com/abhisek/adaptiq/internal/logging"
	"github.com/abhisek/adaptiq/internal/skills"
	"github.com/abhisek/adaptiq/internal/ui/components"
	"github.com/abhisek/adaptiq/internal/ui/theme"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview generated questions for a section (no database)",
	Long: `Generate and interactively answer questions for one section.

No database is opened and no mastery is recorded. Useful for checking
question quality, with or without a language model.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("section", "", "Section to preview (required)")
	previewCmd.Flags().String("difficulty", "medium", "easy, medium, hard or adaptive")
	previewCmd.Flags().Int("count", 5, "Number of questions to generate")
	previewCmd.Flags().Bool("llm", false, "Generate with the configured language model")
	_ = previewCmd.MarkFlagRequired("section")
}

func runPreview(cmd *cobra.Command, args []string) error {
	sectionVal, _ := cmd.Flags().GetString("section")
	difficultyVal, _ := cmd.Flags().GetString("difficulty")
	count, _ := cmd.Flags().GetInt("count")
	useLLM, _ := cmd.Flags().GetBool("llm")

	section, err := skills.ParseSection(sectionVal)
	if err != nil {
		return err
	}
	difficulty, err := skills.ParseDifficulty(difficultyVal)
	if err != nil {
		return err
	}
	if count <= 0 {
		return fmt.Errorf("invalid count %d: must be positive", count)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := logging.New(logging.Config{Mode: cfg.Log.Mode, Level: cfg.Log.Level, Path: cfg.Log.Path})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	var src content.Source
	var pool *content.Pool
	if useLLM {
		llmCfg := cfg.LLM.ProviderConfig()
		if !llmCfg.Enabled() {
			if discovered, ok := llm.DiscoverConfig(); ok {
				llmCfg = discovered
			}
		}
		if !llmCfg.Enabled() {
			return fmt.Errorf("no LLM provider configured: set llm.provider or an ADAPTIQ_*_API_KEY variable")
		}
		provider, err := llm.NewProvider(ctx, llmCfg, logger)
		if err != nil {
			return fmt.Errorf("LLM provider: %w", err)
		}
		src = content.NewLLMGenerator(provider, content.DefaultLLMConfig(), logger)
	} else {
		pool = content.NewPool(content.Options{Logger: logger})
		if err := pool.Open(); err != nil {
			return fmt.Errorf("open question pool: %w", err)
		}
		src = pool
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Section: %s (%s)\n", section.DisplayName(), difficulty)
	fmt.Fprintf(out, "Generating %d questions...\n\n", count)

	qs, err := src.Generate(ctx, section, difficulty, count)
	if err != nil {
		return fmt.Errorf("generate questions: %w", err)
	}
	if len(qs) == 0 {
		fmt.Fprintln(out, "No questions generated.")
		return nil
	}

	correct := previewQuestions(out, cmd.InOrStdin(), qs)
	fmt.Fprintf(out, "── Summary: %d/%d correct ──\n", correct, len(qs))
	if pool != nil {
		writePoolSummary(out, pool, section)
	}
	return nil
}

// writePoolSummary prints how the generated questions spread over skills.
func writePoolSummary(out io.Writer, pool *content.Pool, section skills.SectionType) {
	counts := map[skills.SkillTag]int{}
	for _, q := range pool.ForSection(section) {
		counts[q.Skill]++
	}
	fmt.Fprintf(out, "Pool: %d questions\n", pool.Size())
	for _, tag := range skills.Tags(section) {
		if n := counts[tag]; n > 0 {
			fmt.Fprintf(out, "  %-28s %d\n", skills.Name(tag), n)
		}
	}
}

// previewQuestions asks each question on in and returns the number answered
// correctly. An empty line skips a question.
func previewQuestions(out io.Writer, in io.Reader, qs []content.Question) int {
	scanner := bufio.NewScanner(in)
	correct := 0
	for i, q := range qs {
		fmt.Fprintf(out, "── Question %d/%d · %s · %s · %ds ──\n",
			i+1, len(qs), skills.Name(q.Skill), q.Difficulty, q.RecommendedTimeSec)
		fmt.Fprintln(out, q.Stem)
		for j, opt := range q.Options {
			fmt.Fprintf(out, "  %s) %s\n", components.OptionLabels[j], opt)
		}

		fmt.Fprint(out, "\nYour answer: ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			break
		}
		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			fmt.Fprint(out, "(skipped)\n\n")
			continue
		}

		if choice, ok := parseChoice(answer, len(q.Options)); ok && q.IsCorrect(choice) {
			correct++
			fmt.Fprintln(out, theme.Correct.Render("✓ Correct!"))
		} else {
			fmt.Fprintf(out, "%s Answer: %s) %s\n", theme.Incorrect.Render("✗ Wrong."),
				components.OptionLabels[q.CorrectOption], q.Options[q.CorrectOption])
		}
		if q.Explanation != "" {
			fmt.Fprintf(out, "Explanation: %s\n", q.Explanation)
		}
		fmt.Fprintln(out)
	}
	return correct
}

// parseChoice accepts a letter (A-D) or a 1-based number.
func parseChoice(s string, n int) (int, bool) {
	s = strings.ToUpper(s)
	for i, l := range components.OptionLabels[:min(n, len(components.OptionLabels))] {
		if s == l {
			return i, true
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 || v > n {
		return 0, false
	}
	return v - 1, true
}
