package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/mikiera/Life/internal/config"
	"github.com/mikiera/Life/internal/interactive"
	"github.com/mikiera/Life/pkg/generator"
	"github.com/mikiera/Life/pkg/squares"
	"github.com/mikiera/Life/pkg/themes"
)

type cliOptions struct {
	kind        string
	begin       int
	end         int
	output      string
	configPath  string
	templates   string
	theme       string
	variant     string
	interactive bool
}

func main() {
	var opts cliOptions
	flag.StringVar(&opts.kind, "kind", string(squares.KindMap), "entry kind: map or square")
	flag.IntVar(&opts.begin, "begin", 1, "first square id")
	flag.IntVar(&opts.end, "end", 1, "last square id (inclusive)")
	flag.StringVar(&opts.output, "output", "", "output file (stdout if empty)")
	flag.StringVar(&opts.configPath, "config", "", "JSON or YAML job file")
	flag.StringVar(&opts.templates, "templates", "", "directory with .tpl overrides")
	flag.StringVar(&opts.theme, "theme", "", "theme name from the job file")
	flag.StringVar(&opts.variant, "variant", "", "theme variant")
	flag.BoolVar(&opts.interactive, "interactive", false, "prompt for kind and range")
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "Usage: %s [flags]\n\nPrint JSON fragments for game board squares.\n\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, explicit, os.Stdout, interactive.NewSurveyDriver()); err != nil {
		log.Fatalf("squaregen: %v", err)
	}
}

// run generates the planned jobs straight into stdout or the -output file.
// The driver is only consulted with -interactive.
func run(ctx context.Context, opts cliOptions, explicit map[string]bool, stdout io.Writer, driver interactive.PromptDriver) error {
	p, err := buildPlan(opts, explicit)
	if err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	if opts.interactive {
		jobs, err := interactive.AskJobs(ctx, driver)
		if err != nil {
			return fmt.Errorf("collect jobs: %w", err)
		}
		p.request.Jobs = jobs
	}

	gen := generator.New(p.options...)
	if p.output == "" {
		w := bufio.NewWriter(stdout)
		if err := gen.Generate(ctx, w, p.request); err != nil {
			return fmt.Errorf("generate squares: %w", err)
		}
		if err := w.Flush(); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(p.output), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.Create(p.output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	w := bufio.NewWriter(f)
	if err := gen.Generate(ctx, w, p.request); err != nil {
		f.Close()
		return fmt.Errorf("generate squares: %w", err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write output: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	_, err = fmt.Fprintf(stdout, "Squares written to %s\n", p.output)
	return err
}

type plan struct {
	request generator.Request
	options []generator.Option
	output  string
}

// buildPlan merges the job file with flags. Flags the user set explicitly win
// over file values; jobs come from the file unless -kind/-begin/-end were set.
func buildPlan(opts cliOptions, explicit map[string]bool) (plan, error) {
	var cfg config.Config
	if opts.configPath != "" {
		loaded, err := config.LoadFile(opts.configPath)
		if err != nil {
			return plan{}, err
		}
		cfg = loaded
	}

	pick := func(name, flagValue, fileValue string) string {
		if explicit[name] || fileValue == "" {
			return flagValue
		}
		return fileValue
	}

	p := plan{
		output: pick("output", opts.output, cfg.Output),
		request: generator.Request{
			ThemeName:    pick("theme", opts.theme, cfg.Theme),
			ThemeVariant: pick("variant", opts.variant, cfg.Variant),
		},
	}

	if dir := pick("templates", opts.templates, cfg.Templates); dir != "" {
		p.options = append(p.options, generator.WithTemplateDir(dir))
	}
	if len(cfg.Themes) > 0 {
		selector, err := themes.NewSelector(cfg.Themes...)
		if err != nil {
			return plan{}, err
		}
		p.options = append(p.options, generator.WithThemeSelector(selector))
	}

	rangeFlags := explicit["kind"] || explicit["begin"] || explicit["end"]
	if len(cfg.Jobs) > 0 && !rangeFlags {
		p.request.Jobs = cfg.Jobs
		return p, nil
	}

	kind, err := squares.ParseKind(opts.kind)
	if err != nil {
		return plan{}, err
	}
	p.request.Jobs = []squares.Job{{Kind: kind, Range: squares.Range{Begin: opts.begin, End: opts.end}}}
	return p, nil
}
