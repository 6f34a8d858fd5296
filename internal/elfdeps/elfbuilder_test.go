package elfdeps

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Test fixtures are synthetic 64-bit little-endian ELF images built byte by
// byte, in the same spirit as hand-rolled ELF header fixtures used
// elsewhere: minimal, but valid enough for debug/elf to parse sections,
// program headers and their data.

const (
	ehdrSize = 64
	phdrSize = 56
	shdrSize = 64
)

type testProg struct {
	typ  elf.ProgType
	data []byte
}

type testSection struct {
	name    string
	typ     elf.SectionType
	link    uint32 // index into the final section table
	info    uint32
	entsize uint64
	data    []byte
}

type elfImage struct {
	typ      elf.Type
	machine  elf.Machine
	progs    []testProg
	sections []testSection
}

// build lays the image out as header, program headers, segment and section
// data, then the section header table. A null section is prepended and a
// .shstrtab appended, so caller-specified sections start at table index 1.
func (img elfImage) build(t *testing.T) []byte {
	t.Helper()
	le := binary.LittleEndian

	shstrtab := newStrtab()
	for _, s := range img.sections {
		shstrtab.add(s.name)
	}
	shstrtab.add(".shstrtab")

	sections := make([]testSection, 0, len(img.sections)+2)
	sections = append(sections, testSection{}) // null section
	sections = append(sections, img.sections...)
	sections = append(sections, testSection{
		name: ".shstrtab",
		typ:  elf.SHT_STRTAB,
		data: shstrtab.bytes(),
	})
	shstrndx := len(sections) - 1

	// Data area starts after the fixed-size headers.
	dataOff := ehdrSize + phdrSize*len(img.progs)

	progOffs := make([]int, len(img.progs))
	for i, p := range img.progs {
		progOffs[i] = dataOff
		dataOff += len(p.data)
	}
	sectOffs := make([]int, len(sections))
	for i, s := range sections {
		sectOffs[i] = dataOff
		dataOff += len(s.data)
	}
	shoff := dataOff

	image := make([]byte, shoff+shdrSize*len(sections))

	// ELF header
	copy(image, elf.ELFMAG)
	image[elf.EI_CLASS] = byte(elf.ELFCLASS64)
	image[elf.EI_DATA] = byte(elf.ELFDATA2LSB)
	image[elf.EI_VERSION] = byte(elf.EV_CURRENT)
	le.PutUint16(image[16:], uint16(img.typ))
	le.PutUint16(image[18:], uint16(img.machine))
	le.PutUint32(image[20:], uint32(elf.EV_CURRENT))
	if len(img.progs) > 0 {
		le.PutUint64(image[32:], ehdrSize) // phoff
	}
	le.PutUint64(image[40:], uint64(shoff))
	le.PutUint16(image[52:], ehdrSize)
	le.PutUint16(image[54:], phdrSize)
	le.PutUint16(image[56:], uint16(len(img.progs)))
	le.PutUint16(image[58:], shdrSize)
	le.PutUint16(image[60:], uint16(len(sections)))
	le.PutUint16(image[62:], uint16(shstrndx))

	// Program headers and segment data
	for i, p := range img.progs {
		ph := image[ehdrSize+phdrSize*i:]
		le.PutUint32(ph, uint32(p.typ))
		le.PutUint32(ph[4:], uint32(elf.PF_R))
		le.PutUint64(ph[8:], uint64(progOffs[i]))
		le.PutUint64(ph[32:], uint64(len(p.data))) // filesz
		le.PutUint64(ph[40:], uint64(len(p.data))) // memsz
		copy(image[progOffs[i]:], p.data)
	}

	// Section headers and section data
	for i, s := range sections {
		sh := image[shoff+shdrSize*i:]
		if i > 0 {
			le.PutUint32(sh, shstrtab.offset(s.name))
		}
		le.PutUint32(sh[4:], uint32(s.typ))
		le.PutUint64(sh[24:], uint64(sectOffs[i]))
		le.PutUint64(sh[32:], uint64(len(s.data)))
		le.PutUint32(sh[40:], s.link)
		le.PutUint32(sh[44:], s.info)
		le.PutUint64(sh[56:], s.entsize)
		copy(image[sectOffs[i]:], s.data)
	}

	// The result must round-trip through the external ELF access layer.
	_, err := elf.NewFile(bytes.NewReader(image))
	require.NoError(t, err)

	return image
}

// writeImage writes an ELF image under a temporary directory and returns
// its path. The base name and mode matter: fake-soname synthesis uses the
// name, requires-generation uses the permission bits.
func writeImage(t *testing.T, name string, mode os.FileMode, img elfImage) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, img.build(t), mode))
	return path
}

// strtab builds an ELF string table: NUL-led, NUL-separated.
type strtabBuilder struct {
	buf  []byte
	offs map[string]uint32
}

func newStrtab(names ...string) *strtabBuilder {
	s := &strtabBuilder{buf: []byte{0}, offs: map[string]uint32{"": 0}}
	for _, name := range names {
		s.add(name)
	}
	return s
}

func (s *strtabBuilder) add(name string) {
	if _, ok := s.offs[name]; ok {
		return
	}
	s.offs[name] = uint32(len(s.buf))
	s.buf = append(s.buf, name...)
	s.buf = append(s.buf, 0)
}

func (s *strtabBuilder) offset(name string) uint32 {
	off, ok := s.offs[name]
	if !ok {
		panic("strtab: unknown name " + name)
	}
	return off
}

func (s *strtabBuilder) bytes() []byte { return s.buf }

// dynEntries encodes 64-bit little-endian dynamic section entries from
// tag/value pairs.
func dynEntries(pairs ...[2]uint64) []byte {
	le := binary.LittleEndian
	buf := make([]byte, 0, 16*len(pairs))
	for _, p := range pairs {
		var ent [16]byte
		le.PutUint64(ent[:], p[0])
		le.PutUint64(ent[8:], p[1])
		buf = append(buf, ent[:]...)
	}
	return buf
}

// verneedSection encodes one verneed record with its vernaux chain.
func verneedSection(fileOff uint32, auxNames []uint32) []byte {
	le := binary.LittleEndian
	buf := make([]byte, verneedSize+vernauxSize*len(auxNames))
	le.PutUint16(buf[0:], 1)                    // vn_version
	le.PutUint16(buf[2:], uint16(len(auxNames))) // vn_cnt
	le.PutUint32(buf[4:], fileOff)
	le.PutUint32(buf[8:], verneedSize) // vn_aux
	// vn_next stays 0: single record
	for i, name := range auxNames {
		aux := buf[verneedSize+vernauxSize*i:]
		le.PutUint32(aux[8:], name)
		if i < len(auxNames)-1 {
			le.PutUint32(aux[12:], vernauxSize)
		}
	}
	return buf
}

// verdefRecord describes one verdef entry for verdefSection.
type verdefRecord struct {
	flags    uint16
	auxNames []uint32
}

// verdefSection encodes a chain of verdef records, each followed by its
// verdaux chain.
func verdefSection(records []verdefRecord) []byte {
	le := binary.LittleEndian
	var buf []byte
	for i, rec := range records {
		recSize := verdefSize + verdauxSize*len(rec.auxNames)
		rb := make([]byte, recSize)
		le.PutUint16(rb[0:], 1) // vd_version
		le.PutUint16(rb[2:], rec.flags)
		le.PutUint16(rb[4:], uint16(i+1))             // vd_ndx
		le.PutUint16(rb[6:], uint16(len(rec.auxNames))) // vd_cnt
		le.PutUint32(rb[12:], verdefSize)             // vd_aux
		if i < len(records)-1 {
			le.PutUint32(rb[16:], uint32(recSize)) // vd_next
		}
		for j, name := range rec.auxNames {
			aux := rb[verdefSize+verdauxSize*j:]
			le.PutUint32(aux, name)
			if j < len(rec.auxNames)-1 {
				le.PutUint32(aux[4:], verdauxSize)
			}
		}
		buf = append(buf, rb...)
	}
	return buf
}
