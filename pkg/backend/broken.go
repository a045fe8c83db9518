package backend

import (
	"strings"

	"github.com/imz/PackageKit/pkg/apt"
	"github.com/imz/PackageKit/pkg/pk"
)

// showBroken renders every broken package's unsatisfied dependencies
// in the classic resolver report layout and emits the whole report as
// one error. With now set the installed world is described, otherwise
// the post-transaction one.
func (j *AptJob) showBroken(now bool, code pk.Error) {
	var out strings.Builder
	out.WriteString("The following packages have unmet dependencies:\n")

	for i := 0; i < j.cache.PkgCount(); i++ {
		pkg := apt.PkgID(i)

		if now {
			if !j.cache.NowBroken(pkg) {
				continue
			}
		} else if !j.cache.InstBroken(pkg) {
			continue
		}

		p := j.cache.Pkg(pkg)
		out.WriteString("  " + p.Name + ":")
		indent := len(p.Name) + 3

		ver := j.cache.InstVer(pkg)
		if now {
			ver = p.CurrentVer()
		}

		if ver == apt.NoVer {
			out.WriteString("\n")
			continue
		}

		firstGroup := true
		for _, g := range j.cache.Ver(ver).Depends {
			if g.Type != apt.DepDepends && g.Type != apt.DepPreDepends &&
				g.Type != apt.DepConflicts {
				continue
			}

			if j.cache.DepGroupSatisfied(pkg, g, now) {
				continue
			}

			depType := g.Type.String()

			for a, alt := range g.Alternatives {
				if !firstGroup {
					out.WriteString(strings.Repeat(" ", indent))
				}
				firstGroup = false

				if a == 0 {
					out.WriteString(" " + depType + ": ")
				} else {
					out.WriteString(strings.Repeat(" ", len(depType)+3))
				}

				out.WriteString(alt.Target)
				if alt.Constrained() {
					out.WriteString(" (" + alt.Op + " " + alt.Version + ")")
				}

				j.writeBrokenReason(&out, alt, now)

				if a != len(g.Alternatives)-1 {
					out.WriteString(" or")
				}

				out.WriteString("\n")
			}
		}

		if firstGroup {
			out.WriteString("\n")
		}
	}

	j.emitter.ErrorCode(code, strings.TrimRight(out.String(), "\n"))
}

// writeBrokenReason explains why one alternative cannot be satisfied.
// Targets with providers get no reason, any of the providers could
// still serve.
func (j *AptJob) writeBrokenReason(out *strings.Builder, alt apt.Dependency, now bool) {
	target, ok := j.cache.FindPkg(alt.Target)
	if !ok {
		out.WriteString(" but it is not installable")
		return
	}

	p := j.cache.Pkg(target)
	if len(p.ProvidedBy()) != 0 {
		return
	}

	ver := j.cache.InstVer(target)
	if now {
		ver = p.CurrentVer()
	}

	if ver != apt.NoVer {
		if now {
			out.WriteString(" but " + j.cache.Ver(ver).Version + " is installed")
		} else {
			out.WriteString(" but " + j.cache.Ver(ver).Version + " is to be installed")
		}

		return
	}

	if j.cache.CandidateVer(target) == apt.NoVer {
		if p.Virtual() {
			out.WriteString(" but it is a virtual package")
		} else {
			out.WriteString(" but it is not installable")
		}

		return
	}

	if now {
		out.WriteString(" but it is not installed")
	} else {
		out.WriteString(" but it is not going to be installed")
	}
}
