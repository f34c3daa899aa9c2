package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ramonehamilton/TCG-Deck-Companion/internal/analysis"
	"github.com/ramonehamilton/TCG-Deck-Companion/internal/annotate"
	"github.com/ramonehamilton/TCG-Deck-Companion/internal/charts"
	"github.com/ramonehamilton/TCG-Deck-Companion/internal/fsutil"
	"github.com/ramonehamilton/TCG-Deck-Companion/internal/games"
	"github.com/ramonehamilton/TCG-Deck-Companion/internal/imagecache"
	"github.com/ramonehamilton/TCG-Deck-Companion/internal/proxy"
	"github.com/ramonehamilton/TCG-Deck-Companion/internal/resolve"
	"github.com/ramonehamilton/TCG-Deck-Companion/internal/watch"
)

// runCommand loads the game's cards and runs one subcommand.
func runCommand[C deckCard](ctx context.Context, command string, g games.Game[C], e *env) error {
	s, err := newSession(ctx, g, e)
	if err != nil {
		return err
	}

	switch command {
	case "resolve":
		return s.runResolve()
	case "annotate":
		return s.runAnnotate()
	case "analyze":
		return s.runAnalyze()
	case "proxy":
		return s.runProxy(ctx)
	case "packs":
		return s.runPacks(ctx)
	case "watch":
		return s.runWatch(ctx)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func (s *session[C]) runResolve() error {
	path, err := s.deckPath()
	if err != nil {
		return err
	}
	result, _, err := s.resolveDeck(path)
	if err != nil {
		return err
	}
	s.printResolved(result)
	return nil
}

func (s *session[C]) printResolved(result *resolve.Result[C]) {
	entries, copies := 0, 0
	for _, item := range result.Items {
		if item.PageBreak {
			fmt.Fprintln(s.stdout, "--- page break ---")
			continue
		}
		entries++
		for _, card := range item.Cards {
			copies += item.Entry.Count
			line := fmt.Sprintf("%-9s %dx %s [%s]", item.Entry.Section, item.Entry.Count, card.DisplayName(), card.Code())
			if flags := entryFlags(item); flags != "" {
				line += " " + flags
			}
			fmt.Fprintln(s.stdout, line)
		}
	}
	fmt.Fprintf(s.stdout, "\nResolved %d entries (%d cards)\n", entries, copies)
}

func entryFlags[C deckCard](item resolve.Item[C]) string {
	a := item.Entry.Annotations
	var flags []string
	if a.SkipProxy {
		flags = append(flags, "skipproxy")
	}
	if a.SkipBack {
		flags = append(flags, "skipback")
	}
	if a.IgnoreDeckLimit {
		flags = append(flags, "ignoreForDeckLimit")
	}
	if a.Permanent {
		flags = append(flags, "permanent")
	}
	if len(flags) == 0 {
		return ""
	}
	return "(" + strings.Join(flags, ", ") + ")"
}

func (s *session[C]) runAnnotate() error {
	path, err := s.deckPath()
	if err != nil {
		return err
	}

	result, err := annotate.File(path, s.parser, s.resolver, annotate.Options{Check: s.opts.check})
	if result != nil {
		s.printDiagnostics(result.Diagnostics)
	}
	if err != nil {
		return err
	}

	switch {
	case !result.Changed:
		fmt.Fprintf(s.stdout, "%s is up to date\n", result.Path)
	case s.opts.check:
		return fmt.Errorf("%s has stale annotations; run decktool annotate to update", result.Path)
	default:
		fmt.Fprintf(s.stdout, "Annotated %d card lines in %s\n", result.Annotated, result.Path)
	}
	return nil
}

func (s *session[C]) runAnalyze() error {
	path, err := s.deckPath()
	if err != nil {
		return err
	}
	result, _, err := s.resolveDeck(path)
	if err != nil {
		return err
	}

	report := analysis.Analyze(result)
	if err := report.Format(s.stdout); err != nil {
		return err
	}

	if s.opts.chart == "" {
		return nil
	}
	chartConfig := charts.DefaultChartConfig()
	chartConfig.Subtitle = path
	if err := charts.RenderReport(report, chartConfig, s.opts.chart); err != nil {
		return err
	}
	fmt.Fprintf(s.stdout, "\nChart written to %s\n", s.opts.chart)
	if s.opts.open {
		return charts.OpenInBrowser(s.opts.chart)
	}
	return nil
}

func (s *session[C]) runProxy(ctx context.Context) error {
	path, err := s.deckPath()
	if err != nil {
		return err
	}
	result, _, err := s.resolveDeck(path)
	if err != nil {
		return err
	}

	plan := proxy.Build(result, s.cfg.Proxy.CardsPerPage)
	if s.opts.fetch {
		cache, err := imagecache.NewCache(imagecache.CacheOptions{
			CacheDir: s.cfg.Proxy.ImageDir,
			MaxSize:  s.cfg.ImageCacheBytes(),
		}, s.httpClient())
		if err != nil {
			return err
		}
		if err := plan.Localize(ctx, cache); err != nil {
			return err
		}
		stats := cache.Stats()
		s.logger.Info("Images cached", "files", stats.TotalFiles, "bytes", stats.TotalSize, "dir", stats.CacheDir)
	}

	if s.opts.out == "" {
		return plan.WriteJSON(s.stdout)
	}
	var buf bytes.Buffer
	if err := plan.WriteJSON(&buf); err != nil {
		return err
	}
	if err := fsutil.WriteFileAtomic(s.opts.out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write proxy plan: %w", err)
	}
	fmt.Fprintf(s.stdout, "Proxy plan written to %s (%d pages, %d cards)\n", s.opts.out, len(plan.Pages), plan.Slots())
	return nil
}

func (s *session[C]) runWatch(ctx context.Context) error {
	path, err := s.deckPath()
	if err != nil {
		return err
	}

	check := func(context.Context) ([]string, error) {
		fmt.Fprintf(s.stdout, "[%s] Resolving %s\n", time.Now().Format("15:04:05"), path)
		result, deck, err := s.resolveDeck(path)
		var files []string
		if deck != nil {
			files = deck.Files
		}
		if err != nil {
			fmt.Fprintln(s.stderr, err)
			return files, nil
		}
		s.printResolved(result)
		return files, nil
	}

	files, _ := check(ctx)
	if len(files) == 0 {
		files = []string{path}
	}

	debounce, err := s.cfg.GetWatchDebounce()
	if err != nil {
		return err
	}
	poll, err := s.cfg.GetWatchPollInterval()
	if err != nil {
		return err
	}

	fmt.Fprintf(s.stdout, "Watching %d file(s); press Ctrl+C to stop\n", len(files))
	return watch.Run(ctx, files, check, watch.Options{
		Debounce:     debounce,
		PollInterval: poll,
		Logger:       s.logger,
	})
}
