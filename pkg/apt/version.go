package apt

import (
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// CompareVersions orders two package version strings. Strings that
// go-version cannot parse fall back to a segment-wise lexical compare,
// so ordering stays total even for unconventional vendor versions.
func CompareVersions(a, b string) int {
	av, errA := goversion.NewVersion(a)
	bv, errB := goversion.NewVersion(b)

	if errA == nil && errB == nil {
		return av.Compare(bv)
	}

	return lexicalCompare(a, b)
}

func lexicalCompare(a, b string) int {
	as := strings.FieldsFunc(a, isVersionSep)
	bs := strings.FieldsFunc(b, isVersionSep)

	for i := 0; i < len(as) && i < len(bs); i++ {
		if as[i] == bs[i] {
			continue
		}

		an, aNum := atoi(as[i])
		bn, bNum := atoi(bs[i])

		if aNum && bNum {
			switch {
			case an < bn:
				return -1
			case an > bn:
				return 1
			}

			continue
		}

		if as[i] < bs[i] {
			return -1
		}

		return 1
	}

	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	}

	return 0
}

func isVersionSep(r rune) bool {
	return r == '.' || r == '-' || r == '_' || r == '+' || r == '~' || r == ':'
}

func atoi(s string) (int, bool) {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}

		n = n*10 + int(r-'0')
	}

	return n, true
}

// CheckDep evaluates "have op want" for a dependency constraint. An
// empty operator means any version satisfies the dependency.
func CheckDep(have, op, want string) bool {
	if op == "" {
		return true
	}

	cmp := CompareVersions(have, want)

	switch op {
	case "<<", "<":
		return cmp < 0
	case "<=":
		return cmp <= 0
	case "=", "==":
		return cmp == 0
	case ">=":
		return cmp >= 0
	case ">>", ">":
		return cmp > 0
	}

	return false
}
