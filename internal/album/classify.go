package album

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Lossless extensions are transcoded. m4a may hold lossy AAC; callers are
// expected to only point the tool at lossless sources.
var losslessExtensions = map[string]struct{}{
	"flac": {},
	"wav":  {},
	"m4a":  {},
}

var lossyExtensions = map[string]struct{}{
	"mp3":    {},
	"aac":    {},
	"opus":   {},
	"ogg":    {},
	"vorbis": {},
}

// Contents is the result of one walk over an album directory. All paths are
// relative to the album root and use forward slashes.
type Contents struct {
	Directories   []string
	DataFiles     []string
	LosslessFiles []string
	HasLossy      bool
}

// Classify walks root once and sorts every entry by extension.
func Classify(root string) (Contents, error) {
	var contents Contents

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if entry.IsDir() {
			contents.Directories = append(contents.Directories, rel)
			return nil
		}
		if entry.Type()&fs.ModeSymlink != 0 {
			// Linked directories are not followed.
			if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
				return nil
			}
		}

		ext := Extension(entry.Name())
		switch {
		case IsLossless(ext):
			contents.LosslessFiles = append(contents.LosslessFiles, rel)
		case IsLossy(ext):
			contents.HasLossy = true
			contents.DataFiles = append(contents.DataFiles, rel)
		default:
			contents.DataFiles = append(contents.DataFiles, rel)
		}
		return nil
	})
	if err != nil {
		return Contents{}, fmt.Errorf("walk album %q: %w", root, err)
	}
	return contents, nil
}

// Extension returns the text after the final '.' of name, or "" when name has
// no dot. Case is preserved.
func Extension(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 {
		return ""
	}
	return name[idx+1:]
}

// IsLossless reports whether ext names a lossless audio format.
func IsLossless(ext string) bool {
	_, ok := losslessExtensions[ext]
	return ok
}

// IsLossy reports whether ext names a lossy audio format.
func IsLossy(ext string) bool {
	_, ok := lossyExtensions[ext]
	return ok
}

// FileCount is the number of files found, audio or not.
func (c Contents) FileCount() int {
	return len(c.DataFiles) + len(c.LosslessFiles)
}
