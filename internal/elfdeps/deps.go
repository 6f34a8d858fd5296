package elfdeps

import "fmt"

// depList is an ordered, append-only, duplicate-permitting list of
// dependency tokens. The same soname may legitimately appear more than once
// (unversioned from DT_NEEDED and versioned from a version-need entry), and
// the order is the order of discovery during the walk. Deduplication is the
// package manager's business, not ours.
type depList []string

// add composes a dependency token and appends it. A soname rejected by the
// sanity filter is a silent no-op. When a version or marker is present the
// token is "soname(version)marker" with the absent part replaced by an
// empty string; the resulting "soname()marker" form for marker-only tokens
// is parsed positionally by downstream consumers and must stay as is.
func (d *depList) add(cfg Config, soname, version, marker string) {
	if !acceptableSoname(cfg, soname) {
		return
	}
	if version != "" || marker != "" {
		*d = append(*d, fmt.Sprintf("%s(%s)%s", soname, version, marker))
		return
	}
	*d = append(*d, soname)
}

// addRaw appends a literal token, bypassing the soname filter and the
// composer format. Used for synthesized requirements such as
// "rtld(GNU_HASH)" and the interpreter path.
func (d *depList) addRaw(token string) {
	*d = append(*d, token)
}
