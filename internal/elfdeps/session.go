// Package elfdeps derives dynamic-linking dependency facts from ELF object
// files: the shared-object identity a file provides (its soname, optionally
// versioned and architecture-tagged) and the identities it requires (the
// sonames and symbol versions it links against). Raw container decoding is
// delegated to debug/elf; this package owns the extraction policy layered
// on top of it.
package elfdeps

import (
	"debug/elf"
	"log/slog"
	"os"
	"path/filepath"
)

// maxFileSize is the maximum file size accepted for extraction (1 GB).
const maxFileSize = 1 << 30

// extractInfo is the per-file extraction session. It is populated during a
// single forward walk of the program headers and sections, consumed once to
// synthesize the token lists, then discarded.
type extractInfo struct {
	file *elf.File
	cfg  Config

	isDSO  bool
	isExec bool

	gotDebug   bool
	gotHash    bool
	gotGNUHash bool

	soname     string
	interp     string
	marker     string // class marker, empty when none applies
	archMarker string

	strtabs map[uint32][]byte

	requires depList
	provides depList
}

// genRequires reports whether requires should be generated at all. They
// normally are, for executables and shared objects alike; the exception is
// a non-executable object that nonetheless carries a PT_INTERP segment,
// which would otherwise yield spurious linkage requirements.
func (ei *extractInfo) genRequires() bool {
	return !(ei.interp != "" && !ei.isExec)
}

// Result holds the ordered dependency token lists extracted from one file.
type Result struct {
	Provides []string
	Requires []string
}

// ProcessFile opens and decodes one ELF object and returns its dependency
// token lists. Open and header-decode failures are fatal for the file;
// any ELF type other than shared-object/executable yields a successful
// empty result. Malformed substructures inside a valid object degrade to
// partial results, never to an error.
func ProcessFile(path string, cfg Config) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}
	if !fi.Mode().IsRegular() {
		return nil, &FileAccessError{Path: path, Err: ErrNotRegularFile}
	}
	if fi.Size() > maxFileSize {
		return nil, &FileAccessError{Path: path, Err: ErrFileTooLarge}
	}

	ef, err := elf.NewFile(f)
	if err != nil {
		return nil, &ContainerDecodeError{Path: path, Err: err}
	}

	ei := &extractInfo{
		file:    ef,
		cfg:     cfg,
		strtabs: make(map[uint32][]byte),
	}

	if ef.Type == elf.ET_DYN || ef.Type == elf.ET_EXEC {
		is64 := ef.Class == elf.ELFCLASS64
		isLE := ef.Data == elf.ELFDATA2LSB
		ei.marker = ClassMarker(ef.Machine, is64)
		ei.archMarker = ArchMarker(ef.Machine, is64, isLE)
		ei.isDSO = ef.Type == elf.ET_DYN
		ei.isExec = fi.Mode().Perm()&0o111 != 0

		ei.processProgHeaders()
		ei.processSections()
	}

	ei.finish(path)

	slog.Debug("extracted dependency tokens",
		"path", path,
		"provides", len(ei.provides),
		"requires", len(ei.requires))

	return &Result{
		Provides: ei.provides,
		Requires: ei.requires,
	}, nil
}

// processSections iterates all sections in their physical table order,
// dispatching by section type. The relative interleaving of requires and
// provides discovery in the output follows the object's own section layout,
// which downstream consumers depend on.
func (ei *extractInfo) processSections() {
	for _, scn := range ei.file.Sections {
		switch scn.Type {
		case elf.SHT_GNU_VERDEF:
			ei.processVerDef(scn)
		case elf.SHT_GNU_VERNEED:
			ei.processVerNeed(scn)
		case elf.SHT_DYNAMIC:
			ei.processDynamic(scn)
		}
	}
}

// finish applies the post-walk synthesis rules.
func (ei *extractInfo) finish(path string) {
	// A DSO exposing only a GNU-style hash table needs a runtime loader
	// that understands it; older loaders only know the classic format.
	if ei.genRequires() && ei.gotGNUHash && !ei.gotHash && !ei.cfg.SonameOnly {
		ei.requires.addRaw("rtld(GNU_HASH)")
	}

	// Add the soname provide for true DSOs. DT_DEBUG serves as a proxy for
	// PIE executables masquerading as shared objects, which must not gain a
	// basename provide.
	if ei.isDSO && !ei.gotDebug {
		if ei.soname == "" && ei.cfg.FakeSoname {
			ei.soname = filepath.Base(path)
		}
		if ei.soname != "" {
			if ei.cfg.AddNonarch {
				ei.provides.add(ei.cfg, ei.soname, "", ei.marker)
			}
			if ei.cfg.AddArch {
				ei.provides.add(ei.cfg, ei.soname, "", ei.archMarker)
			}
		}
	}

	if ei.interp != "" && ei.cfg.RequireInterp {
		ei.requires.addRaw(ei.interp)
	}
}
