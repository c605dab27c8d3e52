package utils

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// GetPathInfo returns the absolute form of relPath and its directory.
func GetPathInfo(relPath string) (fullPath string, parentDir string, err error) {
	// Convert to absolute path (resolves ../../ and cleans the path)
	fullPath, err = filepath.Abs(relPath)
	if err != nil {
		return "", "", errors.Wrapf(err, "resolving %s", relPath)
	}

	// Get the directory containing the file
	parentDir = filepath.Dir(fullPath)

	return fullPath, parentDir, nil
}

// ResolveSibling resolves name against the directory of baseFile. Absolute
// names are returned cleaned.
func ResolveSibling(baseFile, name string) (string, error) {
	if filepath.IsAbs(name) {
		return filepath.Clean(name), nil
	}
	_, dir, err := GetPathInfo(baseFile)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// Stem is the base name of path without its final extension, so
// "dir/mips.isa.ac" gives "mips.isa".
func Stem(path string) string {
	base := filepath.Base(path)
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		return base[:i]
	}
	return base
}
