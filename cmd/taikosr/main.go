// Command taikosr rates taiko charts described by YAML fixtures.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/givikap120/danser-taiko/app/beatmap/chart"
	"github.com/givikap120/danser-taiko/app/beatmap/difficulty"
	"github.com/givikap120/danser-taiko/app/database"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/api"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/tuning"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	app = kingpin.New("taikosr", "Star rating and performance calculator for taiko charts.")

	mods       = app.Flag("mods", "Mods as concatenated acronyms, e.g. HDDT").Short('m').Default("").String()
	speed      = app.Flag("speed", "Custom clock rate, overrides DT/HT").Default("0").Float64()
	tuningPath = app.Flag("tuning", "YAML file overriding calculator constants").ExistingFile()
	cachePath  = app.Flag("cache", "SQLite rating cache").String()
	format     = app.Flag("format", "Output format").Short('f').Default("table").Enum("table", "yaml", "prom")
	logLevel   = app.Flag("log-level", "Log level").Default("info").Enum("debug", "info", "warn", "error")

	calcCmd   = app.Command("calc", "Calculate the star rating of a chart.")
	calcChart = calcCmd.Arg("chart", "Chart fixture").Required().ExistingFile()

	ppCmd   = app.Command("pp", "Calculate performance points of a score on a chart.")
	ppChart = ppCmd.Arg("chart", "Chart fixture").Required().ExistingFile()
	ppGreat = ppCmd.Flag("great", "Great count, derived from the other counts when negative").Default("-1").Int()
	ppOk    = ppCmd.Flag("ok", "Ok count").Default("0").Int()
	ppMiss  = ppCmd.Flag("miss", "Miss count").Default("0").Int()

	peaksCmd   = app.Command("peaks", "Print per-section strain peaks of a chart.")
	peaksChart = peaksCmd.Arg("chart", "Chart fixture").Required().ExistingFile()

	watchCmd   = app.Command("watch", "Recalculate a chart every time it is saved.")
	watchChart = watchCmd.Arg("chart", "Chart fixture").Required().ExistingFile()
)

func main() {
	app.Version(fmt.Sprintf("calculator version %d", performance.CurrentVersion))

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	var level slog.Level
	_ = level.UnmarshalText([]byte(*logLevel))

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, command, os.Stdout); err != nil {
		slog.Error("taikosr failed", "command", command, "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, w io.Writer) error {
	r, err := newRater()
	if err != nil {
		return err
	}
	defer r.close()

	switch command {
	case calcCmd.FullCommand():
		res, err := r.rateFile(ctx, *calcChart)
		if err != nil {
			return err
		}

		return writeAttributes(w, *format, res, nil)

	case ppCmd.FullCommand():
		res, err := r.rateFile(ctx, *ppChart)
		if err != nil {
			return err
		}

		pp := performance.NewPPCalculator().Calculate(res.attr, *ppGreat, *ppOk, *ppMiss, res.diff)

		return writeAttributes(w, *format, res, &pp)

	case peaksCmd.FullCommand():
		c, _, err := loadChart(*peaksChart)
		if err != nil {
			return err
		}

		diff := c.Difficulty(r.mods, *speed)
		peaks := r.calc.CalculateStrainPeaks(c.HitObjects(), diff, c.Timings())

		return writePeaks(w, *format, peaks, r.calc.Tuning().SectionLength)

	case watchCmd.FullCommand():
		return r.watch(ctx, *watchChart, w)
	}

	return fmt.Errorf("unknown command %q", command)
}

type rater struct {
	calc  *performance.DifficultyCalculator
	mods  difficulty.Modifier
	cache *database.Cache
}

// rated is a chart together with the settings it was rated with
type rated struct {
	title string
	diff  *difficulty.Difficulty
	attr  api.Attributes
}

func newRater() (*rater, error) {
	cfg := tuning.Default()

	if *tuningPath != "" {
		var err error

		if cfg, err = tuning.Load(*tuningPath); err != nil {
			return nil, err
		}

		slog.Info("tuning loaded", "path", *tuningPath)
	}

	r := &rater{
		calc: performance.NewDifficultyCalculatorWithTuning(cfg),
		mods: difficulty.ParseMods(*mods),
	}

	if *cachePath != "" {
		cache, err := database.Open(*cachePath)
		if err != nil {
			return nil, err
		}

		if _, err = cache.Prune(context.Background(), performance.CurrentVersion); err != nil {
			cache.Close()
			return nil, err
		}

		r.cache = cache
	}

	return r, nil
}

func (r *rater) close() {
	if r.cache != nil {
		if err := r.cache.Close(); err != nil {
			slog.Warn("closing cache", "err", err)
		}
	}
}

func loadChart(path string) (*chart.Chart, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read chart: %w", err)
	}

	c, err := chart.Parse(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	return c, data, nil
}

func (r *rater) rateFile(ctx context.Context, path string) (rated, error) {
	c, data, err := loadChart(path)
	if err != nil {
		return rated{}, err
	}

	return r.rate(ctx, c, data)
}

func (r *rater) rate(ctx context.Context, c *chart.Chart, data []byte) (rated, error) {
	res := rated{title: c.Title, diff: c.Difficulty(r.mods, *speed)}

	var key string

	if r.cache != nil {
		var err error

		if key, err = database.Key(data, res.diff, r.calc.Tuning(), performance.CurrentVersion); err != nil {
			return res, err
		}

		attr, ok, err := r.cache.Get(ctx, key)
		if err != nil {
			return res, err
		}

		if ok {
			res.attr = attr
			return res, nil
		}
	}

	res.attr = r.calc.CalculateSingle(c.HitObjects(), res.diff, c.Timings())

	slog.Debug("chart rated", "title", c.Title, "stars", res.attr.StarRating, "mods", res.diff.Mods.String())

	if r.cache != nil {
		if err := r.cache.Put(ctx, key, performance.CurrentVersion, res.attr); err != nil {
			return res, err
		}
	}

	return res, nil
}

func (r *rater) watch(ctx context.Context, path string, w io.Writer) error {
	show := func(c *chart.Chart) {
		data, err := os.ReadFile(path)
		if err != nil {
			slog.Error("read chart", "path", path, "err", err)
			return
		}

		res, err := r.rate(ctx, c, data)
		if err != nil {
			slog.Error("rate chart", "path", path, "err", err)
			return
		}

		if err = writeAttributes(w, *format, res, nil); err != nil {
			slog.Error("write attributes", "err", err)
		}
	}

	c, _, err := loadChart(path)
	if err != nil {
		return err
	}

	show(c)

	return chart.Watch(ctx, path, show)
}
