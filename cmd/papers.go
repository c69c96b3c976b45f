package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/talenthub/internal/api"
	"github.com/abhisek/talenthub/internal/blocks"
	"github.com/abhisek/talenthub/internal/logger"
	"github.com/abhisek/talenthub/internal/paper"
	"github.com/abhisek/talenthub/internal/render"
	"github.com/abhisek/talenthub/internal/screens/preview"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List every question type and its constraint fields",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		vedic, _ := cmd.Flags().GetBool("vedic")
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TYPE\tNAME\tFIELDS")
		for _, t := range blocks.AllTypes() {
			if vedic && !t.IsVedic() {
				continue
			}
			spec, _ := blocks.Lookup(t)
			var fields []string
			for _, fs := range spec.Editable() {
				fields = append(fields, fieldSummary(fs))
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", t, spec.Name, strings.Join(fields, ", "))
		}
		return w.Flush()
	},
}

var titleCmd = &cobra.Command{
	Use:   "title <type>",
	Short: "Print the section title derived for a block",
	Example: `  talenthub title add_sub --set digits=3 --set rows=5
  talenthub title percentage --set percentageMin=10 --set percentageMax=25`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t := blocks.OpType(args[0])
		spec, ok := blocks.Lookup(t)
		if !ok {
			return fmt.Errorf("unknown type %q (see talenthub types)", args[0])
		}
		set, _ := cmd.Flags().GetStringToInt("set")

		b := blocks.New(t)
		keys := make([]string, 0, len(set))
		for k := range set {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			f := blocks.Field(k)
			fs, ok := spec.Field(f)
			if !ok {
				return fmt.Errorf("%s has no field %q", spec.Name, k)
			}
			if v := set[k]; !fs.InRange(v) {
				return fmt.Errorf("%s must be between %d and %d", fs.Label, fs.Min, fs.Max)
			}
			b = b.With(f, set[k])
		}
		fmt.Fprintln(cmd.OutOrStdout(), blocks.DeriveTitle(b))
		return nil
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview <paper.yaml>",
	Short: "Generate a paper through the service and print its questions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadPaper(args[0])
		if err != nil {
			return err
		}
		log, err := logger.New(cfg)
		if err != nil {
			return err
		}
		defer log.Sync()

		resp, err := newClient(log).Preview(cmd.Context(), paper.ResolveForSubmit(c))
		if err != nil {
			return serviceError("preview", err)
		}

		opts := renderOptions()
		opts.ShowAnswer, _ = cmd.Flags().GetBool("answers")
		printPaper(cmd, c, resp, opts)
		return nil
	},
}

var pdfCmd = &cobra.Command{
	Use:   "pdf <paper.yaml>",
	Short: "Export a paper as a PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadPaper(args[0])
		if err != nil {
			return err
		}
		log, err := logger.New(cfg)
		if err != nil {
			return err
		}
		defer log.Sync()

		out, _ := cmd.Flags().GetString("output")
		answers, _ := cmd.Flags().GetBool("answers")
		answersOnly, _ := cmd.Flags().GetBool("answers-only")
		req := paper.PDFRequest{
			Config:      paper.ResolveForSubmit(c),
			WithAnswers: answers || answersOnly,
			AnswersOnly: answersOnly,
		}
		if cmd.Flags().Changed("seed") {
			seed, _ := cmd.Flags().GetInt64("seed")
			req.Seed = &seed
		}
		if out == "" {
			out = preview.PDFName(req.Config.Title, answersOnly)
		}

		data, err := newClient(log).GeneratePDF(cmd.Context(), req)
		if err != nil {
			return serviceError("export", err)
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		log.Info("pdf exported", zap.String("path", out), zap.Int("bytes", len(data)))
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", out, len(data))
		return nil
	},
}

var presetsCmd = &cobra.Command{
	Use:   "presets <level>",
	Short: "Show the curated blocks of a level",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level := paper.Level(args[0])
		if !level.Valid() {
			return fmt.Errorf("unknown level %q", args[0])
		}
		if !level.HasPresets() {
			return fmt.Errorf("level %s has no presets", level)
		}
		log, err := logger.New(cfg)
		if err != nil {
			return err
		}
		defer log.Sync()

		bs, err := newClient(log).Presets(cmd.Context(), level)
		if err != nil {
			return serviceError("presets", err)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "#\tTYPE\tCOUNT\tTITLE")
		for i, b := range bs {
			fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", i+1, b.Type, b.Count, b.Title)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("output")
		if out == "" {
			return nil
		}
		c := paper.New(level)
		c.Blocks = bs
		if err := paper.SaveFile(out, c); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", out)
		return nil
	},
}

func init() {
	typesCmd.Flags().Bool("vedic", false, "Only list the Vedic maths types")
	titleCmd.Flags().StringToInt("set", nil, "Constraint values as field=value")
	previewCmd.Flags().Bool("answers", false, "Show the answer under each question")
	pdfCmd.Flags().StringP("output", "o", "", "Output file (default: derived from the paper title)")
	pdfCmd.Flags().Bool("answers", false, "Include answers")
	pdfCmd.Flags().Bool("answers-only", false, "Export only the answer key")
	pdfCmd.Flags().Int64("seed", 0, "Generation seed, to reproduce an earlier preview")
	presetsCmd.Flags().StringP("output", "o", "", "Also save the presets as a paper file")
}

// loadPaper reads a paper file and runs the submission checks on it.
func loadPaper(path string) (paper.Config, error) {
	c, err := paper.LoadFile(path)
	if err != nil {
		return paper.Config{}, err
	}
	st, err := paper.Validate(c)
	if errors.Is(err, paper.ErrInvalidBlocks) {
		var msgs []string
		for i, b := range st.Blocks() {
			for f, msg := range st.FieldErrors(b.ID) {
				msgs = append(msgs, fmt.Sprintf("  block %d %s: %s", i+1, f, msg))
			}
		}
		sort.Strings(msgs)
		return paper.Config{}, fmt.Errorf("%s: %w\n%s", filepath.Base(path), err, strings.Join(msgs, "\n"))
	}
	if err != nil {
		return paper.Config{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return c, nil
}

func printPaper(cmd *cobra.Command, c paper.Config, resp paper.PreviewResponse, opts render.Options) {
	out := cmd.OutOrStdout()
	c = paper.ResolveForSubmit(c)
	fmt.Fprintf(out, "%s  (%s, seed %d)\n\n", c.Title, c.Level, resp.Seed)

	n := 0
	for i, gb := range resp.Blocks {
		title := gb.Config.Title
		if title == "" {
			title = blocks.DeriveTitle(gb.Config)
		}
		fmt.Fprintf(out, "Section %d · %s\n", i+1, title)
		for _, q := range gb.Questions {
			n++
			l := render.Render(q, opts)
			line := fmt.Sprintf("%3d.  %s", n, l.Inline())
			if opts.ShowAnswer {
				line += "   = " + l.Answer
			}
			fmt.Fprintln(out, line)
		}
		fmt.Fprintln(out)
	}
}

func fieldSummary(fs blocks.FieldSpec) string {
	s := fmt.Sprintf("%s %d-%d", fs.Field, fs.Min, fs.Max)
	if fs.Optional {
		s += " (optional)"
	}
	return s
}

// serviceError adds context to a failed service call.
func serviceError(op string, err error) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s failed (%d): %s", op, apiErr.Status, apiErr.Message)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, api.ErrTimeout) {
		return fmt.Errorf("%s timed out; is the service running at %s?", op, cfg.API.BaseURL)
	}
	return fmt.Errorf("%s: %w", op, err)
}
