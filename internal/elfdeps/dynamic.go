package elfdeps

import "debug/elf"

// dynamic section entry sizes by ELF class
const (
	dynEntrySize64 = 16
	dynEntrySize32 = 8
)

// processDynamic walks the raw entry array of a SHT_DYNAMIC section,
// recording hashing-scheme presence, the debug tag, the declared soname and
// the needed-library entries. Entries whose strings cannot be resolved are
// skipped individually; the walk continues.
func (ei *extractInfo) processDynamic(scn *elf.Section) {
	data, err := scn.Data()
	if err != nil {
		return
	}
	strtab := ei.stringTable(scn.Link)

	order := ei.file.ByteOrder
	entSize := dynEntrySize64
	if ei.file.Class == elf.ELFCLASS32 {
		entSize = dynEntrySize32
	}

	for off := 0; off+entSize <= len(data); off += entSize {
		var tag elf.DynTag
		var val uint64
		if entSize == dynEntrySize64 {
			tag = elf.DynTag(order.Uint64(data[off:]))
			val = order.Uint64(data[off+8:])
		} else {
			tag = elf.DynTag(order.Uint32(data[off:]))
			val = uint64(order.Uint32(data[off+4:]))
		}

		switch tag {
		case elf.DT_NULL:
			return
		case elf.DT_HASH:
			ei.gotHash = true
		case elf.DT_GNU_HASH:
			ei.gotGNUHash = true
		case elf.DT_DEBUG:
			ei.gotDebug = true
		case elf.DT_SONAME:
			if s, ok := getString(strtab, val); ok && ei.soname == "" {
				ei.soname = s
			}
		case elf.DT_NEEDED:
			if !ei.genRequires() {
				continue
			}
			s, ok := getString(strtab, val)
			if !ok {
				continue
			}
			if ei.cfg.AddNonarch {
				ei.requires.add(ei.cfg, s, "", ei.marker)
			}
			if ei.cfg.AddArch {
				ei.requires.add(ei.cfg, s, "", ei.archMarker)
			}
		}
	}
}
