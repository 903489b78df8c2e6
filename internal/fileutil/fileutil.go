// Package fileutil copies album skeletons: directories and non-audio files.
package fileutil

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CopyVerified copies src to dst keeping the source permission bits, then
// checks size and SHA256. dst is removed on mismatch.
func CopyVerified(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	srcHasher := sha256.New()
	dstHasher := sha256.New()
	written, err := io.Copy(io.MultiWriter(out, dstHasher), io.TeeReader(in, srcHasher))
	if err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if written != srcInfo.Size() {
		_ = os.Remove(dst)
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcInfo.Size(), written)
	}
	if !bytes.Equal(srcHasher.Sum(nil), dstHasher.Sum(nil)) {
		_ = os.Remove(dst)
		return fmt.Errorf("copy hash mismatch: file corrupted during copy")
	}
	// umask may have narrowed the mode at creation.
	return os.Chmod(dst, srcInfo.Mode().Perm())
}

// MirrorTree recreates dirs under dstRoot and copies files from srcRoot into
// it. Both lists hold slash-separated paths relative to their roots and dirs
// must list parents before children.
func MirrorTree(srcRoot, dstRoot string, dirs, files []string) error {
	for _, dir := range dirs {
		target := filepath.Join(dstRoot, filepath.FromSlash(dir))
		if err := os.Mkdir(target, 0o755); err != nil && !os.IsExist(err) {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	for _, file := range files {
		rel := filepath.FromSlash(file)
		if err := CopyVerified(filepath.Join(srcRoot, rel), filepath.Join(dstRoot, rel)); err != nil {
			return fmt.Errorf("copy %s: %w", file, err)
		}
	}
	return nil
}
