package elfdeps

import (
	"bytes"
	"debug/elf"
	"io"
)

// processProgHeaders scans the program headers for the PT_INTERP segment and
// stores the runtime interpreter path, zero-terminated within the raw
// segment image. The scan stops at the first match.
func (ei *extractInfo) processProgHeaders() {
	for _, prog := range ei.file.Progs {
		if prog.Type != elf.PT_INTERP {
			continue
		}
		data, err := io.ReadAll(prog.Open())
		if err != nil {
			continue
		}
		if end := bytes.IndexByte(data, 0); end >= 0 {
			data = data[:end]
		}
		ei.interp = string(data)
		break
	}
}
