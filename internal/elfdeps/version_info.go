package elfdeps

import (
	"debug/elf"
	"encoding/binary"
)

// verFlagBase marks a version definition as the object's own intrinsic
// version rather than an exported symbol version (VER_FLG_BASE).
const verFlagBase = 0x1

// Version records have identical layouts in 32- and 64-bit ELF. They are
// variable-length chains: each record points at its successor with a byte
// offset of its own, so traversal follows those offsets rather than a fixed
// stride.
const (
	verdefSize  = 20
	verdauxSize = 8
	verneedSize = 16
	vernauxSize = 16
)

type verdef struct {
	Version uint16
	Flags   uint16
	Ndx     uint16
	Cnt     uint16
	Hash    uint32
	Aux     uint32
	Next    uint32
}

type verdaux struct {
	Name uint32
	Next uint32
}

type verneed struct {
	Version uint16
	Cnt     uint16
	File    uint32
	Aux     uint32
	Next    uint32
}

type vernaux struct {
	Hash  uint32
	Flags uint16
	Other uint16
	Name  uint32
	Next  uint32
}

func readVerdef(data []byte, off int, order binary.ByteOrder) (verdef, bool) {
	if off < 0 || off+verdefSize > len(data) {
		return verdef{}, false
	}
	return verdef{
		Version: order.Uint16(data[off:]),
		Flags:   order.Uint16(data[off+2:]),
		Ndx:     order.Uint16(data[off+4:]),
		Cnt:     order.Uint16(data[off+6:]),
		Hash:    order.Uint32(data[off+8:]),
		Aux:     order.Uint32(data[off+12:]),
		Next:    order.Uint32(data[off+16:]),
	}, true
}

func readVerdaux(data []byte, off int, order binary.ByteOrder) (verdaux, bool) {
	if off < 0 || off+verdauxSize > len(data) {
		return verdaux{}, false
	}
	return verdaux{
		Name: order.Uint32(data[off:]),
		Next: order.Uint32(data[off+4:]),
	}, true
}

func readVerneed(data []byte, off int, order binary.ByteOrder) (verneed, bool) {
	if off < 0 || off+verneedSize > len(data) {
		return verneed{}, false
	}
	return verneed{
		Version: order.Uint16(data[off:]),
		Cnt:     order.Uint16(data[off+2:]),
		File:    order.Uint32(data[off+4:]),
		Aux:     order.Uint32(data[off+8:]),
		Next:    order.Uint32(data[off+12:]),
	}, true
}

func readVernaux(data []byte, off int, order binary.ByteOrder) (vernaux, bool) {
	if off < 0 || off+vernauxSize > len(data) {
		return vernaux{}, false
	}
	return vernaux{
		Hash:  order.Uint32(data[off:]),
		Flags: order.Uint16(data[off+4:]),
		Other: order.Uint16(data[off+6:]),
		Name:  order.Uint32(data[off+8:]),
		Next:  order.Uint32(data[off+12:]),
	}, true
}

// processVerDef walks a SHT_GNU_verdef section and derives versioned
// provides. The definition flagged VER_FLG_BASE names the object itself and
// becomes the soname context for later definitions in the same walk; it is
// never emitted. Malformed or unresolvable records truncate the remaining
// chain silently.
func (ei *extractInfo) processVerDef(scn *elf.Section) {
	data, err := scn.Data()
	if err != nil {
		return
	}
	strtab := ei.stringTable(scn.Link)
	order := ei.file.ByteOrder

	soname := ""
	offset := 0
	for i := int(scn.Info); i > 0; i-- {
		def, ok := readVerdef(data, offset, order)
		if !ok {
			break
		}
		auxOffset := offset + int(def.Aux)
		offset += int(def.Next)

		for j := int(def.Cnt); j > 0; j-- {
			aux, ok := readVerdaux(data, auxOffset, order)
			if !ok {
				break
			}
			s, ok := getString(strtab, uint64(aux.Name))
			if !ok {
				break
			}
			auxOffset += int(aux.Next)

			if def.Flags&verFlagBase != 0 {
				soname = s
				continue
			}
			if soname == "" || ei.cfg.SonameOnly {
				continue
			}
			if ei.cfg.AddNonarch {
				ei.provides.add(ei.cfg, soname, s, ei.marker)
			}
			if ei.cfg.AddArch {
				ei.provides.add(ei.cfg, soname, s, ei.archMarker)
			}
		}
	}
}

// processVerNeed walks a SHT_GNU_verneed section and derives versioned
// requires. Each need record names an external soname; its auxiliary chain
// carries the version names required from it. An unresolvable file name
// truncates the outer chain, an unresolvable auxiliary only its inner one.
func (ei *extractInfo) processVerNeed(scn *elf.Section) {
	data, err := scn.Data()
	if err != nil {
		return
	}
	strtab := ei.stringTable(scn.Link)
	order := ei.file.ByteOrder

	offset := 0
	for i := int(scn.Info); i > 0; i-- {
		need, ok := readVerneed(data, offset, order)
		if !ok {
			break
		}
		soname, ok := getString(strtab, uint64(need.File))
		if !ok {
			break
		}
		auxOffset := offset + int(need.Aux)

		for j := int(need.Cnt); j > 0; j-- {
			aux, ok := readVernaux(data, auxOffset, order)
			if !ok {
				break
			}
			s, ok := getString(strtab, uint64(aux.Name))
			if !ok {
				break
			}
			auxOffset += int(aux.Next)

			if !ei.genRequires() || soname == "" || ei.cfg.SonameOnly {
				continue
			}
			if ei.cfg.AddNonarch {
				ei.requires.add(ei.cfg, soname, s, ei.marker)
			}
			if ei.cfg.AddArch {
				ei.requires.add(ei.cfg, soname, s, ei.archMarker)
			}
		}
		offset += int(need.Next)
	}
}
