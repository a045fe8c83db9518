// Package group maps archive section names onto the daemon's fixed
// package-group taxonomy.
package group

import (
	"github.com/imz/PackageKit/pkg/pk"
)

// sectionGroups is keyed by the full section string as it appears in
// the package index.
var sectionGroups = map[string]pk.Group{
	"Accessibility":                        pk.GroupAccessibility,
	"Archiving/Backup":                     pk.GroupAdminTools,
	"Archiving/Cd burning":                 pk.GroupAccessories,
	"Archiving/Compression":                pk.GroupAccessories,
	"Archiving/Other":                      pk.GroupAccessories,
	"Books/Computer books":                 pk.GroupDocumentation,
	"Books/Faqs":                           pk.GroupDocumentation,
	"Books/Howtos":                         pk.GroupDocumentation,
	"Books/Literature":                     pk.GroupEducation,
	"Books/Other":                          pk.GroupEducation,
	"Communications":                       pk.GroupCommunication,
	"Databases":                            pk.GroupOther,
	"Development/C":                        pk.GroupProgramming,
	"Development/C++":                      pk.GroupProgramming,
	"Development/Databases":                pk.GroupProgramming,
	"Development/Debug":                    pk.GroupProgramming,
	"Development/Debuggers":                pk.GroupProgramming,
	"Development/Documentation":            pk.GroupDocumentation,
	"Development/Erlang":                   pk.GroupProgramming,
	"Development/Functional":               pk.GroupProgramming,
	"Development/GNOME and GTK+":           pk.GroupProgramming,
	"Development/Haskell":                  pk.GroupProgramming,
	"Development/Java":                     pk.GroupProgramming,
	"Development/KDE and QT":               pk.GroupProgramming,
	"Development/Kernel":                   pk.GroupProgramming,
	"Development/Lisp":                     pk.GroupProgramming,
	"Development/ML":                       pk.GroupProgramming,
	"Development/Objective-C":              pk.GroupProgramming,
	"Development/Other":                    pk.GroupProgramming,
	"Development/Perl":                     pk.GroupProgramming,
	"Development/Python":                   pk.GroupProgramming,
	"Development/Python3":                  pk.GroupProgramming,
	"Development/Ruby":                     pk.GroupProgramming,
	"Development/Scheme":                   pk.GroupProgramming,
	"Development/Tcl":                      pk.GroupProgramming,
	"Development/Tools":                    pk.GroupProgramming,
	"Documentation":                        pk.GroupDocumentation,
	"Editors":                              pk.GroupPublishing,
	"Education":                            pk.GroupEducation,
	"Emulators":                            pk.GroupSystem,
	"Engineering":                          pk.GroupElectronics,
	"File tools":                           pk.GroupAccessories,
	"Games/Adventure":                      pk.GroupGames,
	"Games/Arcade":                         pk.GroupGames,
	"Games/Boards":                         pk.GroupGames,
	"Games/Cards":                          pk.GroupGames,
	"Games/Educational":                    pk.GroupGames,
	"Games/Other":                          pk.GroupGames,
	"Games/Puzzles":                        pk.GroupGames,
	"Games/Sports":                         pk.GroupGames,
	"Games/Strategy":                       pk.GroupGames,
	"Graphical desktop/Enlightenment":      pk.GroupDesktopOther,
	"Graphical desktop/FVWM based":         pk.GroupDesktopOther,
	"Graphical desktop/GNOME":              pk.GroupDesktopGnome,
	"Graphical desktop/GNUstep":            pk.GroupDesktopOther,
	"Graphical desktop/Icewm":              pk.GroupDesktopOther,
	"Graphical desktop/KDE":                pk.GroupDesktopKde,
	"Graphical desktop/MATE":               pk.GroupDesktopOther,
	"Graphical desktop/Motif":              pk.GroupDesktopOther,
	"Graphical desktop/Other":              pk.GroupDesktopOther,
	"Graphical desktop/Rox":                pk.GroupDesktopOther,
	"Graphical desktop/Sawfish":            pk.GroupDesktopOther,
	"Graphical desktop/Sugar":              pk.GroupDesktopOther,
	"Graphical desktop/Window Maker":       pk.GroupDesktopOther,
	"Graphical desktop/XFce":               pk.GroupDesktopXfce,
	"Graphics":                             pk.GroupGraphics,
	"Monitoring":                           pk.GroupAccessories,
	"Networking/Chat":                      pk.GroupCommunication,
	"Networking/DNS":                       pk.GroupNetwork,
	"Networking/File transfer":             pk.GroupNetwork,
	"Networking/FTN":                       pk.GroupNetwork,
	"Networking/IRC":                       pk.GroupCommunication,
	"Networking/Instant messaging":         pk.GroupCommunication,
	"Networking/Mail":                      pk.GroupInternet,
	"Networking/News":                      pk.GroupInternet,
	"Networking/Other":                     pk.GroupNetwork,
	"Networking/Remote access":             pk.GroupNetwork,
	"Networking/WWW":                       pk.GroupInternet,
	"Office":                               pk.GroupOffice,
	"Other":                                pk.GroupOther,
	"Publishing":                           pk.GroupPublishing,
	"Sciences/Astronomy":                   pk.GroupScience,
	"Sciences/Biology":                     pk.GroupScience,
	"Sciences/Chemistry":                   pk.GroupScience,
	"Sciences/Computer science":            pk.GroupScience,
	"Sciences/Geosciences":                 pk.GroupScience,
	"Sciences/Mathematics":                 pk.GroupScience,
	"Sciences/Medicine":                    pk.GroupScience,
	"Sciences/Other":                       pk.GroupScience,
	"Sciences/Physics":                     pk.GroupScience,
	"Security/Antivirus":                   pk.GroupScience,
	"Security/Networking":                  pk.GroupScience,
	"Shells":                               pk.GroupSystem,
	"Sound":                                pk.GroupMultimedia,
	"System/Base":                          pk.GroupSystem,
	"System/Configuration/Boot and Init":   pk.GroupSystem,
	"System/Configuration/Hardware":        pk.GroupAdminTools,
	"System/Configuration/Networking":      pk.GroupNetwork,
	"System/Configuration/Other":           pk.GroupSystem,
	"System/Configuration/Packaging":       pk.GroupAdminTools,
	"System/Configuration/Printing":        pk.GroupSystem,
	"System/Fonts/Console":                 pk.GroupFonts,
	"System/Fonts/True type":               pk.GroupFonts,
	"System/Fonts/Type1":                   pk.GroupFonts,
	"System/Fonts/X11 bitmap":              pk.GroupFonts,
	"System/Internationalization":          pk.GroupLocalization,
	"System/Kernel and hardware":           pk.GroupAdminTools,
	"System/Libraries":                     pk.GroupSystem,
	"System/Legacy libraries":              pk.GroupLegacy,
	"System/Servers":                       pk.GroupServers,
	"System/Servers/ZProducts":             pk.GroupUnknown,
	"System/X11":                           pk.GroupDesktopOther,
	"System/XFree86":                       pk.GroupDesktopOther,
	"Terminals":                            pk.GroupDesktopOther,
	"Text tools":                           pk.GroupPublishing,
	"Toys":                                 pk.GroupGames,
	"Video":                                pk.GroupMultimedia,
}

// FromSection maps an index section to a group. Unknown sections map
// to GroupUnknown.
func FromSection(section string) pk.Group {
	return sectionGroups[section]
}
