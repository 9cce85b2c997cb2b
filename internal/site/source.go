package site

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/blogforge/internal/content"
	ferrors "git.home.luguber.info/inful/blogforge/internal/foundation/errors"
)

// contentExtensions are the file extensions treated as content units.
var contentExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
}

// ReadUnits walks the source directory and loads every content file as one or
// more content units, applying the stream split policy per file.
//
// Walk order is lexical, so insertion order into the repository is
// reproducible across runs.
func ReadUnits(sourceDir string, policy content.SplitPolicy) ([]content.Unit, error) {
	var units []content.Unit

	err := filepath.WalkDir(sourceDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && p != sourceDir {
				return filepath.SkipDir
			}
			return nil
		}
		if !contentExtensions[strings.ToLower(filepath.Ext(p))] {
			return nil
		}

		raw, err := os.ReadFile(p) // #nosec G304 -- path comes from walking the configured source dir
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(sourceDir, p)
		if err != nil {
			return err
		}
		source := filepath.ToSlash(rel)

		units = append(units, content.SplitStream(source, raw, policy)...)
		return nil
	})
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to read content units").
			WithContext("source", sourceDir).
			Build()
	}

	return units, nil
}
