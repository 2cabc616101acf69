package out

import (
	"context"
	"errors"
	"fmt"
	"os"

	reportout "studyroutine/internal/modules/report/port/out"
	apperrors "studyroutine/internal/platform/errors"
	"studyroutine/internal/platform/fsutil"
)

type LocalFileSink struct{}

func NewLocalFileSink() reportout.FileSink {
	return LocalFileSink{}
}

func (LocalFileSink) Read(_ context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func (LocalFileSink) Write(_ context.Context, path string, data []byte) error {
	return fsutil.WriteFileAtomic(path, data, 0o644)
}
