package cli

import (
	"context"
	"errors"
	"flag"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/promptmaster/internal/client/export"
	"github.com/dmitrijs2005/promptmaster/internal/client/models"
	"github.com/dmitrijs2005/promptmaster/internal/client/services"
	"github.com/dmitrijs2005/promptmaster/internal/common"
)

const historyPreviewLen = 80

// History lists or exports past optimizations.
//
//	history [-m model] [-oldest] [-refresh] [query]
//	history export [-m model] [-oldest] [dir|s3] [query]
func (a *App) History(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "export" {
		return a.exportHistory(ctx, args[1:])
	}

	filter, refresh, rest, err := parseHistoryFlags(args)
	if err != nil {
		return err
	}
	filter.Query = strings.Join(rest, " ")

	if _, err := a.historyService.List(ctx, refresh); err != nil {
		return err
	}

	entries := a.historyService.Filter(filter)
	if len(entries) == 0 {
		a.printf("No history entries\n")
		return nil
	}
	for _, h := range entries {
		a.printHistoryEntry(h)
	}
	return nil
}

func (a *App) exportHistory(ctx context.Context, args []string) error {
	filter, refresh, rest, err := parseHistoryFlags(args)
	if err != nil {
		return err
	}

	target := "."
	if len(rest) > 0 {
		target, rest = rest[0], rest[1:]
	}
	filter.Query = strings.Join(rest, " ")

	var exp services.Exporter
	if target == "s3" {
		if !a.config.S3Enabled() {
			return errors.New("s3 export is not configured, set s3.bucket in the config file or PROMPTMASTER_S3_BUCKET")
		}
		exp, err = a.newS3Exporter(ctx, export.S3Config{
			Bucket:       a.config.S3Bucket,
			Region:       a.config.S3Region,
			BaseEndpoint: a.config.S3BaseEndpoint,
			AccessKey:    a.config.S3AccessKey,
			SecretKey:    a.config.S3SecretKey,
		})
		if err != nil {
			return err
		}
	} else {
		exp = export.NewFileExporter(target)
	}

	if refresh {
		a.historyService.Invalidate()
	}

	location, err := a.historyService.Export(ctx, exp, filter)
	if err != nil {
		return err
	}
	a.printf("History exported to %s\n", location)
	return nil
}

func (a *App) printHistoryEntry(h models.HistoryEntry) {
	a.printf("#%d  %s  %s  t=%.2f\n", h.ID, h.CreatedAt.Local().Format(time.DateTime), h.ModelUsed, h.Temperature)
	a.printf("  original:  %s\n", common.Truncate(oneLine(h.OriginalPrompt), historyPreviewLen))
	if opt := h.OptimizedText(); opt != "" {
		a.printf("  optimized: %s\n", common.Truncate(oneLine(opt), historyPreviewLen))
	}
}

func parseHistoryFlags(args []string) (services.HistoryFilter, bool, []string, error) {
	var (
		f       services.HistoryFilter
		refresh bool
	)

	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&f.Model, "m", "", "only entries produced by this model")
	fs.BoolVar(&f.Oldest, "oldest", false, "oldest first")
	fs.BoolVar(&refresh, "refresh", false, "fetch from the server")

	if err := fs.Parse(args); err != nil {
		return f, false, nil, err
	}
	return f, refresh, fs.Args(), nil
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
