// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package codec

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/specialistvlad/forgego/internal/ctxlog"
	"github.com/specialistvlad/forgego/internal/person"
)

// WriteSnapshot encodes r and publishes it at path. The bytes are written to
// a temporary file next to path, synced, and renamed into place, so a reader
// sees either the previous snapshot or the complete new one.
func WriteSnapshot(ctx context.Context, path string, r *person.Record) error {
	logger := ctxlog.FromContext(ctx).With("location", path)

	data, err := Encode(r)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(path, data, 0o644); err != nil {
		logger.Debug("Snapshot write failed.", "error", err)
		return fmt.Errorf("write snapshot %s: %w", path, err)
	}
	logger.Debug("Snapshot published.", "bytes", len(data))
	return nil
}

// ReadSnapshot decodes the snapshot stored at path.
func ReadSnapshot(ctx context.Context, path string) (*person.Record, error) {
	logger := ctxlog.FromContext(ctx).With("location", path)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot %s: %w", path, err)
	}
	defer f.Close()

	r, err := DecodeFrom(f)
	if err != nil {
		logger.Debug("Snapshot decode failed.", "error", err)
		return nil, err
	}
	logger.Debug("Snapshot decoded.", "record", r.String())
	return r, nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return syncDir(dir)
}

func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}
