package site

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	ferrors "git.home.luguber.info/inful/blogforge/internal/foundation/errors"
	"git.home.luguber.info/inful/blogforge/internal/linkverify"
)

// VerifyLinks loads every rendered page under outputDir and checks internal
// links against the emitted page set.
func VerifyLinks(outputDir, baseURL string) ([]linkverify.Problem, error) {
	pages := map[string][]byte{}

	err := filepath.WalkDir(outputDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".html") {
			return nil
		}
		data, err := os.ReadFile(p) // #nosec G304 -- path comes from walking the output dir
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(outputDir, p)
		if err != nil {
			return err
		}
		pages["/"+filepath.ToSlash(rel)] = data
		return nil
	})
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to read rendered site").
			WithContext("source", outputDir).
			Build()
	}

	return linkverify.VerifyInternal(pages, baseURL)
}
