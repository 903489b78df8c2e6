package album_test

import (
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"

	"better/internal/album"
	"better/internal/testsupport"
)

func buildAlbum(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, name := range files {
		testsupport.WriteFile(t, filepath.Join(root, filepath.FromSlash(name)), 16)
	}
	return root
}

func TestClassifyPartitionsByExtension(t *testing.T) {
	root := buildAlbum(t,
		"01 - Intro.flac",
		"02 - Song.wav",
		"CD2/01 - Other.m4a",
		"CD2/bonus.mp3",
		"cover.jpg",
		"Scans/back.png",
		"README",
		"upper.FLAC",
	)
	if err := os.MkdirAll(filepath.Join(root, "Empty"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	contents, err := album.Classify(root)
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}

	wantLossless := []string{"01 - Intro.flac", "02 - Song.wav", "CD2/01 - Other.m4a"}
	if !reflect.DeepEqual(sorted(contents.LosslessFiles), wantLossless) {
		t.Fatalf("lossless = %v, want %v", contents.LosslessFiles, wantLossless)
	}
	wantData := []string{"CD2/bonus.mp3", "README", "Scans/back.png", "cover.jpg", "upper.FLAC"}
	if !reflect.DeepEqual(sorted(contents.DataFiles), wantData) {
		t.Fatalf("data = %v, want %v", contents.DataFiles, wantData)
	}
	wantDirs := []string{"CD2", "Empty", "Scans"}
	if !reflect.DeepEqual(sorted(contents.Directories), wantDirs) {
		t.Fatalf("dirs = %v, want %v", contents.Directories, wantDirs)
	}
	if !contents.HasLossy {
		t.Fatal("expected HasLossy for an album containing mp3")
	}
	if contents.FileCount() != 8 {
		t.Fatalf("expected 8 files, got %d", contents.FileCount())
	}
}

func TestClassifyIsIdempotentAndExhaustive(t *testing.T) {
	root := buildAlbum(t, "a.flac", "b.ogg", "c.txt", "d/e.opus", "d/f/g.wav")

	first, err := album.Classify(root)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	second, err := album.Classify(root)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("classification not idempotent: %#v vs %#v", first, second)
	}

	seen := map[string]int{}
	for _, f := range first.LosslessFiles {
		seen[f]++
	}
	for _, f := range first.DataFiles {
		seen[f]++
	}
	for name, count := range seen {
		if count != 1 {
			t.Fatalf("%s classified %d times", name, count)
		}
	}
	if len(seen) != 5 {
		t.Fatalf("expected 5 classified files, got %d", len(seen))
	}
}

func TestClassifyLosslessOnlyHasNoLossyFlag(t *testing.T) {
	root := buildAlbum(t, "1.flac", "2.flac", "folder.jpg")
	contents, err := album.Classify(root)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if contents.HasLossy {
		t.Fatal("did not expect HasLossy")
	}
	if len(contents.LosslessFiles) != 2 {
		t.Fatalf("expected 2 lossless files, got %v", contents.LosslessFiles)
	}
}

func TestClassifyMissingRoot(t *testing.T) {
	if _, err := album.Classify(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestExtension(t *testing.T) {
	cases := map[string]string{
		"song.flac":      "flac",
		"archive.tar.gz": "gz",
		"README":         "",
		".hidden":        "hidden",
		"trailing.":      "",
	}
	for name, want := range cases {
		if got := album.Extension(name); got != want {
			t.Fatalf("Extension(%q) = %q, want %q", name, got, want)
		}
	}
}

func sorted(values []string) []string {
	out := append([]string(nil), values...)
	sort.Strings(out)
	return out
}
