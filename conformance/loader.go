package conformance

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// LoadedCase is one Case paired with its owning fixture's schema/tuple
// and a stable id derived from the file, fixture and case names, so it is
// the same across runs regardless of file-walk ordering.
type LoadedCase struct {
	ID          uuid.UUID
	File        string
	FixtureName string
	Schema      string
	Tuple       string
	Case        Case
}

// LoadDir walks dir for *.yaml fixtures and flattens every fixture's
// cases into a single slice.
func LoadDir(dir string) ([]LoadedCase, error) {
	var loaded []LoadedCase

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ".yaml" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		var fx Fixture
		if err := yaml.Unmarshal(data, &fx); err != nil {
			return err
		}

		rel, _ := filepath.Rel(dir, path)
		for i, c := range fx.Cases {
			loaded = append(loaded, LoadedCase{
				ID:          uuid.NewSHA1(uuid.NameSpaceOID, []byte(rel+"/"+fx.Name+"/"+c.Name)),
				File:        rel,
				FixtureName: fx.Name,
				Schema:      fx.Schema,
				Tuple:       fx.Tuple,
				Case:        fx.Cases[i],
			})
		}
		return nil
	})

	return loaded, err
}
