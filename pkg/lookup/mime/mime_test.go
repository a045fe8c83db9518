//go:build !integration

package mime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePool = `{
  "components": [
    {"id": "org.gimp.GIMP", "pkgname": "gimp", "mimetypes": ["image/png", "image/xcf"]},
    {"id": "org.gnome.eog", "pkgname": "eog", "mimetypes": ["image/png"]},
    {"id": "org.example.NoPkg", "mimetypes": ["image/png"]},
    {"id": "org.example.NoMime", "pkgname": "quiet"}
  ]
}`

func TestParseAndLookup(t *testing.T) {
	t.Parallel()

	pool, err := Parse([]byte(samplePool))
	require.NoError(t, err)

	assert.Equal(t, []string{"eog", "gimp"}, pool.Packages("image/png"))
	assert.Equal(t, []string{"gimp"}, pool.Packages("image/xcf"))
	assert.Nil(t, pool.Packages("video/unknown"))
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("{not json"))
	assert.ErrorIs(t, err, ErrBadPool)

	_, err = Parse([]byte(`{"components": "nope"}`))
	assert.ErrorIs(t, err, ErrBadPool)
}
