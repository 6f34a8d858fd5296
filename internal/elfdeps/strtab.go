package elfdeps

import (
	"bytes"
	"debug/elf"
)

// stringTable returns the raw contents of the string table section linked
// from another section's Link field, or nil if the link is out of range or
// the data cannot be read. Tables are cached per session since the dynamic
// and version sections usually share .dynstr.
func (ei *extractInfo) stringTable(link uint32) []byte {
	if link == 0 || int(link) >= len(ei.file.Sections) {
		return nil
	}
	if tab, ok := ei.strtabs[link]; ok {
		return tab
	}
	scn := ei.file.Sections[link]
	if scn.Type != elf.SHT_STRTAB {
		return nil
	}
	tab, err := scn.Data()
	if err != nil {
		tab = nil
	}
	ei.strtabs[link] = tab
	return tab
}

// getString resolves a zero-terminated string at the given string table
// offset. The second result is false when the offset is out of range or the
// table is not properly terminated; callers skip or truncate on that.
func getString(tab []byte, off uint64) (string, bool) {
	if off >= uint64(len(tab)) {
		return "", false
	}
	end := bytes.IndexByte(tab[off:], 0)
	if end < 0 {
		return "", false
	}
	return string(tab[off : off+uint64(end)]), true
}
