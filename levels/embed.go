package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

// Provider loads map areas by name. Files in Dir win over the embedded copies
// so maps can be edited without rebuilding.
type Provider struct {
	Dir string
}

func NewProvider(dir string) *Provider {
	return &Provider{Dir: dir}
}

// Area loads and parses the named map.
func (p *Provider) Area(name string) (*Area, error) {
	data, err := p.read(name)
	if err != nil {
		return nil, err
	}
	return Parse(name, data)
}

// Names lists the available maps, disk and embedded combined.
func (p *Provider) Names() []string {
	seen := make(map[string]struct{})
	if entries, err := fs.ReadDir(LevelsFS, "."); err == nil {
		for _, e := range entries {
			if n, ok := mapName(e.Name()); ok {
				seen[n] = struct{}{}
			}
		}
	}
	if p.Dir != "" {
		if entries, err := os.ReadDir(p.Dir); err == nil {
			for _, e := range entries {
				if n, ok := mapName(e.Name()); ok {
					seen[n] = struct{}{}
				}
			}
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (p *Provider) read(name string) ([]byte, error) {
	file := fileName(name)
	if p.Dir != "" {
		if data, err := os.ReadFile(filepath.Join(p.Dir, file)); err == nil {
			return data, nil
		}
	}
	data, err := fs.ReadFile(LevelsFS, file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMap, name)
	}
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return data, nil
}

func fileName(name string) string {
	if strings.HasSuffix(name, ".json") {
		return name
	}
	return name + ".json"
}

func mapName(file string) (string, bool) {
	if !strings.HasSuffix(file, ".json") {
		return "", false
	}
	return strings.TrimSuffix(filepath.Base(file), ".json"), true
}
