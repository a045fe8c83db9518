//go:build !integration

package apt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareVersions(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{name: "equal", a: "1.0-alt1", b: "1.0-alt1", want: 0},
		{name: "newer release", a: "1.0-alt2", b: "1.0-alt1", want: 1},
		{name: "older upstream", a: "0.9-alt1", b: "1.0-alt1", want: -1},
		{name: "multi component", a: "2.6.32-alt10", b: "2.6.4-alt1", want: 1},
		{name: "numeric beats lexical", a: "1.10", b: "1.9", want: 1},
		{name: "empty versus set", a: "", b: "1.0", want: -1},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := CompareVersions(tc.a, tc.b)
			switch {
			case tc.want == 0:
				assert.Zero(t, got)
			case tc.want > 0:
				assert.Positive(t, got)
			default:
				assert.Negative(t, got)
			}
		})
	}
}

func TestCheckDep(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		have string
		op   string
		want string
		ok   bool
	}{
		{name: "no constraint", have: "1.0", op: "", want: "", ok: true},
		{name: "ge satisfied", have: "2.0", op: ">=", want: "1.5", ok: true},
		{name: "ge exact", have: "1.5", op: ">=", want: "1.5", ok: true},
		{name: "strict less", have: "1.0", op: "<<", want: "1.5", ok: true},
		{name: "strict less rejected on equal", have: "1.5", op: "<<", want: "1.5", ok: false},
		{name: "equality", have: "1.5-alt1", op: "=", want: "1.5-alt1", ok: true},
		{name: "equality mismatch", have: "1.5-alt2", op: "=", want: "1.5-alt1", ok: false},
		{name: "strict greater rejected", have: "1.5", op: ">>", want: "2.0", ok: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.ok, CheckDep(tc.have, tc.op, tc.want))
		})
	}
}
