package elfdeps

import (
	"strings"
	"unicode"
)

// linker soname prefixes that are accepted without the "lib" convention
var linkerPrefixes = []string{"ld.", "ld-", "ld64.", "ld64-"}

// acceptableSoname reports whether a candidate soname is a sane,
// dependency-worthy identity. All sane soname dependencies contain ".so",
// and normal linkable libraries start with "lib"; the dynamic linker's own
// naming conventions are the notable exception. This is a heuristic to
// suppress spurious entries from malformed or unconventional objects, not
// a format validator; FilterSoname disables everything past the
// whitespace check.
func acceptableSoname(cfg Config, soname string) bool {
	sane := false
	for _, r := range soname {
		if !unicode.IsSpace(r) {
			sane = true
			break
		}
	}
	if !sane {
		return false
	}

	if !cfg.FilterSoname {
		return true
	}

	if !strings.Contains(soname, ".so") {
		return false
	}
	for _, prefix := range linkerPrefixes {
		if strings.HasPrefix(soname, prefix) {
			return true
		}
	}
	return strings.HasPrefix(soname, "lib")
}
