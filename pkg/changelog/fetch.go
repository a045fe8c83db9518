package changelog

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// NotAvailable is emitted when no changelog could be fetched for a
// version.
const NotAvailable = "Changelog for this version is not yet available"

// Getter fetches raw changelog text for a source package.
type Getter struct {
	// Template is the changelog URI with {SOURCE} and {VERSION}
	// placeholders, e.g.
	// "http://changelogs.example.org/{SOURCE}/{VERSION}/changelog".
	Template string
	Client   *http.Client
}

// URL expands the getter's template for one source package version.
func (g *Getter) URL(sourcePkg, version string) string {
	url := strings.ReplaceAll(g.Template, "{SOURCE}", sourcePkg)

	// Strip the epoch, archives do not keep it in their paths.
	if i := strings.IndexByte(version, ':'); i >= 0 {
		version = version[i+1:]
	}

	return strings.ReplaceAll(url, "{VERSION}", version)
}

// Get fetches and returns the changelog text. A missing changelog is
// not an error; the NotAvailable placeholder is returned instead so
// jobs can still emit an update detail.
func (g *Getter) Get(ctx context.Context, sourcePkg, version string) (string, error) {
	if g.Template == "" {
		return NotAvailable, nil
	}

	client := g.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.URL(sourcePkg, version), nil)
	if err != nil {
		return NotAvailable, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return NotAvailable, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return NotAvailable, nil
	}

	if resp.StatusCode != http.StatusOK {
		return NotAvailable, errors.Errorf("unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return NotAvailable, err
	}

	return string(data), nil
}
