package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/myrjola/fitplan/internal/errors"
	"github.com/myrjola/fitplan/internal/i18n"
	"github.com/myrjola/fitplan/internal/importer"
	"github.com/myrjola/fitplan/internal/training"
	"github.com/myrjola/fitplan/internal/xlsx"
)

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(errUsage, err.Error(), slog.String("command", fs.Name()))
	}
	if fs.NArg() > 0 {
		return errors.Wrap(errUsage, "unexpected arguments", slog.Any("args", fs.Args()))
	}
	return nil
}

// language resolves a -lang flag against the configured language.
func (a *app) language(flagValue string) (i18n.Language, error) {
	lang := i18n.Language(a.cfg.Language)
	if flagValue != "" {
		lang = i18n.Language(flagValue)
	}
	if !i18n.IsSupported(lang) {
		return "", errors.Wrap(errUsage, "unsupported language", slog.String("language", string(lang)))
	}
	return lang, nil
}

// catalog returns the saved catalog, or an empty one so that a plan can still be shown without it.
func (a *app) catalog(ctx context.Context) ([]training.Exercise, error) {
	catalog, err := a.service.LoadCatalog(ctx)
	if errors.Is(err, training.ErrCatalogNotFound) {
		a.logger.LogAttrs(ctx, slog.LevelWarn, "no exercise catalog, exercise names are unknown")
		return []training.Exercise{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return catalog, nil
}

func runProfile(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("profile")
	file := fs.String("file", "", "JSON profile to save")
	if err := parse(fs, args); err != nil {
		return err
	}

	if *file != "" {
		data, err := os.ReadFile(*file)
		if err != nil {
			return errors.Wrap(err, "read profile file", slog.String("path", *file))
		}
		p, err := training.DecodeProfile(data)
		if err != nil {
			return fmt.Errorf("decode profile file: %w", err)
		}
		if err = a.service.SaveProfile(ctx, p); err != nil {
			return fmt.Errorf("save profile: %w", err)
		}
		a.logger.LogAttrs(ctx, slog.LevelInfo, "profile saved",
			slog.String("goal", string(p.Goal)), slog.Int("schema_version", training.CurrentProfileSchemaVersion))
		return nil
	}

	p, err := a.service.LoadProfile(ctx)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	data, err := training.EncodeProfile(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	_, err = fmt.Fprintf(a.stdout, "%s\n", data)
	return err
}

func runConditions(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("conditions")
	file := fs.String("file", "", "JSON list of conditions to save")
	if err := parse(fs, args); err != nil {
		return err
	}

	if *file != "" {
		data, err := os.ReadFile(*file)
		if err != nil {
			return errors.Wrap(err, "read conditions file", slog.String("path", *file))
		}
		registry, err := training.DecodeRegistry(ctx, a.logger, data)
		if err != nil {
			return fmt.Errorf("decode conditions file: %w", err)
		}
		if err = a.service.SaveRegistry(ctx, registry); err != nil {
			return fmt.Errorf("save conditions: %w", err)
		}
		a.logger.LogAttrs(ctx, slog.LevelInfo, "conditions saved", slog.Int("count", registry.Len()))
		return nil
	}

	registry, err := a.service.LoadRegistry(ctx)
	if err != nil {
		return fmt.Errorf("load conditions: %w", err)
	}
	w := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0) //nolint:mnd // column padding
	_, _ = fmt.Fprintln(w, "ID\tGROUP\tMAX/WEEK\tNAME")
	for _, c := range registry.Conditions() {
		limit := "-"
		if c.SessionsPerWeekMax != nil {
			limit = fmt.Sprint(*c.SessionsPerWeekMax)
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.ID, c.Group, limit, c.Name)
	}
	return w.Flush()
}

func runImport(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("import")
	dataset := fs.String("dataset", "", "exercise dataset JSON file")
	describe := fs.Bool("describe", false, "generate missing descriptions with OpenAI")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *dataset == "" {
		return errors.Wrap(errUsage, "import requires -dataset")
	}

	data, err := os.ReadFile(*dataset)
	if err != nil {
		return errors.Wrap(err, "read dataset", slog.String("path", *dataset))
	}

	var describer importer.Describer
	if *describe {
		if a.cfg.OpenAIAPIKey == "" {
			return errors.Wrap(errUsage, "-describe requires FITPLAN_OPENAI_API_KEY")
		}
		describer = importer.NewOpenAIDescriber(a.cfg.OpenAIAPIKey, a.cfg.OpenAIModel)
	}

	res, err := importer.Import(ctx, a.logger, a.service, data, describer)
	if err != nil {
		return fmt.Errorf("import dataset: %w", err)
	}
	_, err = fmt.Fprintf(a.stdout, "added %d exercises, catalog has %d\n", res.Added, res.Total)
	return err
}

func runGenerate(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("generate")
	if err := parse(fs, args); err != nil {
		return err
	}
	plan, err := a.service.GenerateAndSave(ctx)
	if err != nil {
		return fmt.Errorf("generate plan: %w", err)
	}
	_, err = fmt.Fprintf(a.stdout, "generated %d weeks with %d sessions per week\n",
		plan.TotalWeeks, plan.SessionsPerWeek)
	return err
}

func runShow(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("show")
	week := fs.Int("week", 0, "only show this week")
	format := fs.String("format", "md", "output format, md or html")
	langFlag := fs.String("lang", "", "language of labels")
	if err := parse(fs, args); err != nil {
		return err
	}
	lang, err := a.language(*langFlag)
	if err != nil {
		return err
	}
	if *format != "md" && *format != "html" {
		return errors.Wrap(errUsage, "unknown format", slog.String("format", *format))
	}

	plan, err := a.service.LoadPlan(ctx)
	if err != nil {
		return fmt.Errorf("load plan: %w", err)
	}
	catalog, err := a.catalog(ctx)
	if err != nil {
		return err
	}

	var out string
	if *format == "html" {
		if out, err = training.RenderHTML(plan, catalog, lang, *week); err != nil {
			return fmt.Errorf("render html: %w", err)
		}
	} else {
		out = training.RenderMarkdown(plan, catalog, lang, *week)
	}
	_, err = io.WriteString(a.stdout, out)
	return err
}

func runExport(ctx context.Context, a *app, args []string) (err error) {
	fs := newFlagSet("export")
	out := fs.String("out", "training_plan.xlsx", "workbook path, - for stdout")
	langFlag := fs.String("lang", "", "language of labels")
	if err = parse(fs, args); err != nil {
		return err
	}
	lang, err := a.language(*langFlag)
	if err != nil {
		return err
	}
	if *out == "" {
		return errors.Wrap(errUsage, "export requires -out")
	}

	plan, err := a.service.LoadPlan(ctx)
	if err != nil {
		return fmt.Errorf("load plan: %w", err)
	}
	catalog, err := a.catalog(ctx)
	if err != nil {
		return err
	}

	if *out == "-" {
		return xlsx.Write(a.stdout, plan, catalog, lang)
	}
	f, err := os.Create(*out)
	if err != nil {
		return errors.Wrap(err, "create workbook", slog.String("path", *out))
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close workbook: %w", closeErr)
		}
	}()
	if err = xlsx.Write(f, plan, catalog, lang); err != nil {
		return fmt.Errorf("export plan: %w", err)
	}
	a.logger.LogAttrs(ctx, slog.LevelInfo, "plan exported", slog.String("path", *out))
	return nil
}
