package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"

	"github.com/esimov/artfx"
	"github.com/esimov/artfx/utils"
)

var (
	// Flags
	source      = flag.StringP("in", "i", "", "Source image, directory or URL")
	destination = flag.StringP("out", "O", "", "Destination image or directory")
	style       = flag.StringP("style", "s", string(artfx.StyleStainedGlass), "Effect style")
	intensity   = flag.Float64P("intensity", "n", 100, "Effect intensity in percent")
	options     = flag.StringArrayP("option", "o", nil, "Effect option as key=value (repeatable)")
	vignette    = flag.Float64("vignette", 0, "Vignette intensity in percent, 0 disables it")
	seed        = flag.Int64("seed", 0, "Random seed, 0 picks one from the clock")
	compare     = flag.Bool("compare", false, "Write a before/after sheet")
	maxSize     = flag.Int("max-size", 0, "Downscale the source to fit this size")
	workers     = flag.Int("workers", runtime.NumCPU(), "Number of images processed in parallel")
	list        = flag.Bool("list", false, "List the supported styles")
	verbose     = flag.BoolP("verbose", "v", false, "Verbose logging")
)

// config is the parsed command line.
type config struct {
	Source      string
	Destination string
	Workers     int
	Verbose     bool
	Progress    bool
}

func main() {
	flag.Parse()

	if *list {
		for _, s := range artfx.Styles() {
			fmt.Println(s)
		}
		return
	}

	if len(*source) == 0 || len(*destination) == 0 {
		log.Fatal("Usage: artfx -i input.jpg -O output.png [-s style]")
	}

	opts, err := parseOptions(*options)
	if err != nil {
		log.Fatal(err)
	}
	if *seed != 0 {
		opts["seed"] = *seed
	}

	st := artfx.Style(*style)
	if !st.Valid() {
		log.Fatalf("Unknown style %q, supported: %v", *style, artfx.Styles())
	}

	cfg := config{
		Source:      *source,
		Destination: *destination,
		Workers:     *workers,
		Verbose:     *verbose,
		Progress:    utils.IsTerminal(os.Stderr),
	}
	proc := &artfx.Processor{
		Style:     st,
		Intensity: *intensity,
		Options:   opts,
		Vignette:  *vignette,
		Compare:   *compare,
		MaxSize:   *maxSize,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := fx.New(
		fx.Supply(cfg, proc),
		fx.Provide(
			newLogger,
			func() afero.Fs { return afero.NewOsFs() },
			func() *resty.Client { return resty.New() },
			newRunner,
		),
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			if cfg.Verbose {
				return &fxevent.ZapLogger{Logger: logger}
			}
			return fxevent.NopLogger
		}),
		fx.Invoke(func(r *runner) error {
			return r.Run(ctx)
		}),
	)
	if err := app.Err(); err != nil {
		log.Fatal(err)
	}
}

// newLogger builds the process logger and installs it as the library logger too.
func newLogger(cfg config) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.Verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	artfx.SetLogger(logger)
	return logger, nil
}

// parseOptions converts repeated key=value flags into effect options. Values stay
// strings; the option getters parse numbers and colors themselves.
func parseOptions(pairs []string) (artfx.Options, error) {
	opts := artfx.Options{}
	for _, kv := range pairs {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, errors.Errorf("invalid option %q, expected key=value", kv)
		}
		opts[key] = strings.TrimSpace(value)
	}
	return opts, nil
}
