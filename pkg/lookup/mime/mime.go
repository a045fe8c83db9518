// Package mime answers mimetype→package queries against an
// AppStream-style JSON export of the distribution's component
// metadata.
package mime

import (
	"os"
	"sort"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

var ErrBadPool = errors.New("malformed component metadata")

// Pool is a loaded metadata export. The JSON layout is
//
//	{"components": [{"pkgname": "gimp", "mimetypes": ["image/png"]}]}
//
// as produced by the distribution's appstream export job.
type Pool struct {
	byMime map[string][]string
}

// Load reads a component metadata export from disk.
func Load(path string) (*Pool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

// Parse builds a pool from raw JSON bytes.
func Parse(data []byte) (*Pool, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrBadPool
	}

	components := gjson.GetBytes(data, "components")
	if !components.IsArray() {
		return nil, errors.Wrap(ErrBadPool, "missing components array")
	}

	pool := &Pool{byMime: make(map[string][]string)}

	components.ForEach(func(_, component gjson.Result) bool {
		pkgname := component.Get("pkgname").String()
		if pkgname == "" {
			return true
		}

		component.Get("mimetypes").ForEach(func(_, mt gjson.Result) bool {
			name := mt.String()
			pool.byMime[name] = append(pool.byMime[name], pkgname)
			return true
		})

		return true
	})

	for _, pkgs := range pool.byMime {
		sort.Strings(pkgs)
	}

	return pool, nil
}

// Packages returns the names of packages handling a mimetype, sorted
// and deduplicated.
func (p *Pool) Packages(mimeType string) []string {
	pkgs := p.byMime[mimeType]
	if len(pkgs) == 0 {
		return nil
	}

	out := pkgs[:0:0]
	for i, name := range pkgs {
		if i == 0 || pkgs[i-1] != name {
			out = append(out, name)
		}
	}

	return out
}
