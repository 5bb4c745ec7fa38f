package collate

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Folder is a candidate input folder with its image count.
type Folder struct {
	Name   string
	Path   string
	Images int
}

// ListFolders returns the non-hidden sub-folders of root that contain at
// least one file matching pattern, sorted by name.
func ListFolders(root, pattern string) ([]Folder, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var out []Folder
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		path := filepath.Join(root, e.Name())
		files, err := ListInputs(path, pattern)
		if err != nil || len(files) == 0 {
			continue
		}
		out = append(out, Folder{Name: e.Name(), Path: path, Images: len(files)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
