package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/example/go-hls/hls"
	"github.com/example/go-hls/hls/archive"
	"github.com/example/go-hls/hls/search"
	"github.com/example/go-hls/hls/store"
)

const version = "0.1.0"

func main() {
	root := &cli.Command{
		Name:    "hlsarchive",
		Usage:   "Cache HLS STAC links from CMR and consolidate them into monthly parquet archives",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "cmr-url",
				Usage:   "Override the CMR base URL",
				Sources: cli.EnvVars("CMR_URL"),
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			newCacheLinksCommand(),
			newWriteMonthlyCommand(),
		},
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCacheLinksCommand() *cli.Command {
	return &cli.Command{
		Name:      "cache-links",
		Usage:     "Cache one day's STAC JSON links to object storage",
		ArgsUsage: "COLLECTION DATE DEST",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "bbox",
				Usage: "Spatial bounding box as west,south,east,north",
			},
			&cli.StringFlag{
				Name:  "protocol",
				Usage: "URL scheme for STAC JSON links (https or s3)",
				Value: "https",
			},
			&cli.BoolFlag{
				Name:  "skip-existing",
				Usage: "Skip processing if the link cache already exists",
			},
			&cli.IntFlag{
				Name:  "page-size",
				Usage: "Catalog page size hint",
				Value: 2000,
			},
		},
		Action: executeCacheLinks,
	}
}

func executeCacheLinks(ctx context.Context, cmd *cli.Command) error {
	collection, date, dest, err := cacheLinksArgs(cmd)
	if err != nil {
		return err
	}

	bbox, err := parseBBox(cmd.String("bbox"))
	if err != nil {
		return err
	}

	archiver, err := buildArchiver(ctx, cmd, dest)
	if err != nil {
		return err
	}

	return archiver.CacheDailyLinks(ctx, archive.DailyInput{
		Collection:   collection,
		Date:         date,
		BoundingBox:  bbox,
		Protocol:     cmd.String("protocol"),
		SkipExisting: cmd.Bool("skip-existing"),
		PageSize:     cmd.Int("page-size"),
	})
}

func cacheLinksArgs(cmd *cli.Command) (hls.Collection, time.Time, string, error) {
	args := cmd.Args()
	if args.Len() != 3 {
		return "", time.Time{}, "", fmt.Errorf("expected COLLECTION DATE DEST arguments")
	}
	collection, err := hls.ParseCollection(args.Get(0))
	if err != nil {
		return "", time.Time{}, "", err
	}
	date, err := archive.ParseDate(args.Get(1))
	if err != nil {
		return "", time.Time{}, "", err
	}
	return collection, date, args.Get(2), nil
}

func newWriteMonthlyCommand() *cli.Command {
	return &cli.Command{
		Name:      "write-monthly",
		Usage:     "Consolidate one month's cached links into a parquet archive",
		ArgsUsage: "COLLECTION YEARMONTH DEST",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "archive-version",
				Usage: "Version tag for the output file path",
				Value: "v" + version,
			},
			&cli.BoolFlag{
				Name:  "require-complete-links",
				Usage: "Require every daily link cache for the month to exist before processing",
			},
			&cli.BoolFlag{
				Name:  "skip-existing",
				Usage: "Skip processing if the output archive already exists",
			},
		},
		Action: executeWriteMonthly,
	}
}

func executeWriteMonthly(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args()
	if args.Len() != 3 {
		return fmt.Errorf("expected COLLECTION YEARMONTH DEST arguments")
	}
	collection, err := hls.ParseCollection(args.Get(0))
	if err != nil {
		return err
	}
	year, month, err := archive.ParseMonth(args.Get(1))
	if err != nil {
		return err
	}

	archiver, err := buildArchiver(ctx, cmd, args.Get(2))
	if err != nil {
		return err
	}

	return archiver.WriteMonthlyArchive(ctx, archive.MonthlyInput{
		Collection:           collection,
		Year:                 year,
		Month:                month,
		Version:              cmd.String("archive-version"),
		RequireCompleteLinks: cmd.Bool("require-complete-links"),
		SkipExisting:         cmd.Bool("skip-existing"),
	})
}

func buildArchiver(ctx context.Context, cmd *cli.Command, dest string) (*archive.Archiver, error) {
	log := newLogger(cmd.Root().Bool("verbose"))

	var opts []hls.Option
	if baseURL := strings.TrimSpace(cmd.Root().String("cmr-url")); baseURL != "" {
		opts = append(opts, hls.WithBaseURL(baseURL))
	}
	catalog, err := hls.NewClient(opts...)
	if err != nil {
		return nil, err
	}

	st, err := store.FromURL(ctx, dest)
	if err != nil {
		return nil, err
	}

	return archive.New(archive.Config{
		Catalog:  catalog,
		Store:    st,
		Logger:   log,
		Progress: logProgress(log),
	}), nil
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Str("service", "hlsarchive").Logger()
}

// logProgress reports fetch progress every thousand items and at the end.
func logProgress(log zerolog.Logger) func(done, total int) {
	return func(done, total int) {
		if done%1000 == 0 || done == total {
			log.Info().Int("done", done).Int("total", total).Msg("fetching STAC items")
		}
	}
}

func parseBBox(raw string) (*search.BoundingBox, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("bbox must have four comma-separated values, got %q", raw)
	}
	coords := make([]float64, 4)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("parse bbox component %q: %w", part, err)
		}
		coords[i] = v
	}
	bbox := &search.BoundingBox{West: coords[0], South: coords[1], East: coords[2], North: coords[3]}
	if err := bbox.Validate(); err != nil {
		return nil, err
	}
	return bbox, nil
}
