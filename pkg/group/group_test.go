//go:build !integration

package group

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/imz/PackageKit/pkg/pk"
)

func TestFromSection(t *testing.T) {
	t.Parallel()
	tests := []struct {
		section string
		want    pk.Group
	}{
		{section: "Development/C++", want: pk.GroupProgramming},
		{section: "Graphical desktop/KDE", want: pk.GroupDesktopKde},
		{section: "System/Servers", want: pk.GroupServers},
		{section: "Toys", want: pk.GroupGames},
		{section: "Nonexistent/Section", want: pk.GroupUnknown},
		{section: "", want: pk.GroupUnknown},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.section, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, FromSection(tc.section))
		})
	}
}
