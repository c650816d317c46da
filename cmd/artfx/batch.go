package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/disintegration/imaging"
	"github.com/go-resty/resty/v2"
	"github.com/inhies/go-bytesize"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/esimov/artfx"
	"github.com/esimov/artfx/utils"
)

// Supported image files.
var extensions = []string{".jpg", ".jpeg", ".png", ".webp", ".gif", ".bmp", ".tif", ".tiff"}

// runner processes a single file or every image of a directory.
type runner struct {
	fs     afero.Fs
	client *resty.Client
	proc   *artfx.Processor
	log    *zap.Logger
	cfg    config
	out    io.Writer
}

func newRunner(fs afero.Fs, client *resty.Client, proc *artfx.Processor, logger *zap.Logger, cfg config) *runner {
	return &runner{
		fs:     fs,
		client: client,
		proc:   proc,
		log:    logger,
		cfg:    cfg,
		out:    os.Stderr,
	}
}

// Run resolves the source and dispatches to the file or directory mode.
func (r *runner) Run(ctx context.Context) error {
	src := r.cfg.Source
	if utils.IsURL(src) {
		path, err := utils.DownloadImage(r.fs, r.client, os.TempDir(), src)
		if err != nil {
			return err
		}
		defer func() {
			_ = r.fs.Remove(path)
		}()
		r.log.With(zap.String("url", src)).Debug("source downloaded", zap.String("path", path))
		src = path
	}

	info, err := r.fs.Stat(src)
	if err != nil {
		return errors.Wrap(err, "unable to open source")
	}
	if info.IsDir() {
		return r.runDir(ctx, src, r.cfg.Destination)
	}
	return r.runFile(ctx, src, r.cfg.Destination)
}

func (r *runner) runFile(ctx context.Context, in, out string) error {
	var s *utils.Spinner
	if r.cfg.Progress {
		s = utils.NewSpinner(r.out)
		s.Start(fmt.Sprintf("Applying %s...", r.proc.Style))
	}
	start := time.Now()
	size, err := r.processFile(ctx, in, out)
	if s != nil {
		s.Stop()
	}
	if err != nil {
		return errors.Wrapf(err, "error converting image %s", in)
	}

	r.log.With(zap.String("file", out)).Info("image saved",
		zap.String("size", bytesize.New(float64(size)).String()),
		zap.String("elapsed", utils.FormatTime(time.Since(start))),
	)
	if r.cfg.Progress {
		fmt.Fprintf(r.out, "Saved as: %s %s✓%s\n", filepath.Base(out), utils.SuccessColor, utils.DefaultColor)
	}
	return nil
}

func (r *runner) runDir(ctx context.Context, dir, dst string) error {
	// Check if the image destination is a directory or a file.
	if info, err := r.fs.Stat(dst); err == nil && !info.IsDir() {
		return errors.New("please specify a directory as destination")
	}
	if err := r.fs.MkdirAll(dst, 0755); err != nil {
		return errors.Wrap(err, "unable to create destination")
	}

	entries, err := afero.ReadDir(r.fs, dir)
	if err != nil {
		return errors.Wrap(err, "unable to read dir")
	}
	// Range over all the image files and save them into a slice.
	var images []string
	for _, f := range entries {
		if !f.IsDir() && lo.Contains(extensions, strings.ToLower(filepath.Ext(f.Name()))) {
			images = append(images, f.Name())
		}
	}
	if len(images) == 0 {
		r.log.With(zap.String("dir", dir)).Warn("no supported images found")
		return nil
	}

	var bar *progressbar.ProgressBar
	if r.cfg.Progress {
		bar = progressbar.NewOptions(len(images),
			progressbar.OptionSetWriter(r.out),
			progressbar.OptionSetDescription(fmt.Sprintf("Applying %s", r.proc.Style)),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	workers := artfx.Clamp(r.cfg.Workers, 1, len(images))
	jobs := make(chan string)
	var (
		wg       sync.WaitGroup
		failures int32
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range jobs {
				in := filepath.Join(dir, name)
				out := filepath.Join(dst, strings.TrimSuffix(name, filepath.Ext(name))+".png")
				size, err := r.processFile(ctx, in, out)
				if err != nil {
					atomic.AddInt32(&failures, 1)
					r.log.With(zap.String("file", in)).Error("image failed", zap.Error(err))
				} else {
					r.log.With(zap.String("file", out)).Debug("image saved",
						zap.String("size", bytesize.New(float64(size)).String()))
				}
				if bar != nil {
					_ = bar.Add(1)
				}
			}
		}()
	}

	start := time.Now()
feed:
	for _, name := range images {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- name:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}

	failed := int(atomic.LoadInt32(&failures))
	r.log.With(zap.String("dir", dir)).Info("batch done",
		zap.Int("images", len(images)),
		zap.Int("failed", failed),
		zap.String("elapsed", utils.FormatTime(time.Since(start))),
	)
	if failed > 0 {
		return errors.Errorf("%d of %d images failed", failed, len(images))
	}
	return nil
}

// processFile runs the processor over one file and returns the encoded size.
func (r *runner) processFile(ctx context.Context, in, out string) (int64, error) {
	format, err := imaging.FormatFromFilename(out)
	if err != nil {
		return 0, err
	}

	src, err := r.fs.Open(in)
	if err != nil {
		return 0, errors.Wrap(err, "unable to open source file")
	}
	defer src.Close()

	if dir := filepath.Dir(out); dir != "." {
		if err := r.fs.MkdirAll(dir, 0755); err != nil {
			return 0, err
		}
	}
	dst, err := r.fs.Create(out)
	if err != nil {
		return 0, errors.Wrap(err, "unable to create destination file")
	}

	if err := r.proc.Process(ctx, src, dst, format); err != nil {
		_ = dst.Close()
		_ = r.fs.Remove(out)
		return 0, err
	}
	if err := dst.Close(); err != nil {
		return 0, err
	}

	info, err := r.fs.Stat(out)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
