package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/hashicorp/go-multierror"
	"github.com/xaionaro-go/qimpedance/pkg/chargeio"
	"github.com/xaionaro-go/qimpedance/pkg/chargeio/parquet"
	"github.com/xaionaro-go/qimpedance/pkg/config"
)

// WriteOutputs writes every table of the result into cfg.OutputDir in
// cfg.Format and returns the paths written. The first failing table stops
// the run and the files already written by it are removed.
func WriteOutputs(
	ctx context.Context,
	cfg config.Config,
	result *Result,
) ([]string, error) {
	if err := cfg.Format.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create the output directory '%s': %w", cfg.OutputDir, err)
	}

	var (
		paths []string
		total uint64
	)
	for _, table := range result.Tables() {
		var (
			path string
			n    uint64
			err  error
		)
		switch cfg.Format {
		case config.FormatText:
			path = filepath.Join(cfg.OutputDir, table.Name)
			n, err = chargeio.WriteTableFile(ctx, path, table)
		case config.FormatParquet:
			path = filepath.Join(cfg.OutputDir, parquet.FileName(table))
			n, err = parquet.WriteTableFile(ctx, path, table)
		}
		total += n
		if err != nil {
			var mErr *multierror.Error
			mErr = multierror.Append(mErr, fmt.Errorf("unable to write '%s': %w", path, err))
			if info, statErr := os.Lstat(path); statErr == nil && info.Mode().IsRegular() {
				paths = append(paths, path)
			}
			mErr = multierror.Append(mErr, removeOutputs(ctx, paths))
			return nil, mErr.ErrorOrNil()
		}
		paths = append(paths, path)
	}

	logger.Debugf(ctx, "wrote %d files, %d bytes total", len(paths), total)
	return paths, nil
}

func removeOutputs(ctx context.Context, paths []string) error {
	var mErr *multierror.Error
	for _, path := range paths {
		logger.Debugf(ctx, "removing '%s'", path)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			mErr = multierror.Append(mErr, fmt.Errorf("unable to remove '%s': %w", path, err))
		}
	}
	return mErr.ErrorOrNil()
}
