package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCopyVerifiedPreservesMode(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "folder.jpg")
	dst := filepath.Join(dir, "copy.jpg")
	if err := os.WriteFile(src, []byte("jpeg"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(src, 0o640); err != nil {
		t.Fatal(err)
	}

	if err := CopyVerified(src, dst); err != nil {
		t.Fatalf("CopyVerified: %v", err)
	}
	if err := CopyVerified(src, dst); err == nil {
		t.Fatal("expected error copying over an existing file")
	}
	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o640 {
		t.Fatalf("mode = %v, want 0640", info.Mode().Perm())
	}
}

func TestCopyVerifiedMissingSource(t *testing.T) {
	dir := t.TempDir()
	if err := CopyVerified(filepath.Join(dir, "nope"), filepath.Join(dir, "dst")); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestMirrorTree(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "out")
	if err := os.Mkdir(dst, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(src, "CD1", "Scans"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "album.log"), []byte("log"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "CD1", "Scans", "front.png"), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := MirrorTree(src, dst, []string{"CD1", "CD1/Scans"}, []string{"album.log", "CD1/Scans/front.png"})
	if err != nil {
		t.Fatalf("MirrorTree: %v", err)
	}
	for _, rel := range []string{"album.log", filepath.Join("CD1", "Scans", "front.png")} {
		if _, err := os.Stat(filepath.Join(dst, rel)); err != nil {
			t.Fatalf("expected %s: %v", rel, err)
		}
	}
}
