package elfdeps

import "debug/elf"

// ClassMarker returns the "(64bit)" multilib marker for 64-bit objects, or
// an empty string for 32-bit objects. Alpha historically carries no class
// marker even though it is 64-bit; that exception is preserved.
func ClassMarker(machine elf.Machine, is64 bool) string {
	if !is64 {
		return ""
	}
	switch machine {
	case elf.EM_ALPHA, elf.EM_ALPHA_STD:
		return ""
	default:
		return "(64bit)"
	}
}

// ArchMarker maps (machine, class, endianness) to the architecture marker
// used to disambiguate dependencies across multilib installations. It always
// returns a non-empty tag; unrecognized machines yield "(unknown)" or
// "(unknown64)" by class.
func ArchMarker(machine elf.Machine, is64, isLE bool) string {
	switch machine {
	case elf.EM_386:
		return "(i386)"
	case elf.EM_68K:
		return "(m68k)"
	case elf.EM_AARCH64:
		if isLE {
			return "(aarch64)"
		}
		return "(aarch64_be)"
	case elf.EM_ALPHA, elf.EM_ALPHA_STD:
		return "(alpha)"
	case elf.EM_ARM:
		// The big-endian arm marker has never carried parentheses.
		if isLE {
			return "(arm)"
		}
		return "armeb"
	case elf.EM_IA_64:
		return "(ia64)"
	case elf.EM_MIPS:
		switch {
		case is64 && isLE:
			return "(mips64le)"
		case is64:
			return "(mips64)"
		case isLE:
			return "(mipsel)"
		default:
			return "(mips)"
		}
	case elf.EM_PARISC:
		// Same historical quirk as armeb: no parentheses on 32-bit hppa.
		if is64 {
			return "(hppa64)"
		}
		return "hppa"
	case elf.EM_PPC:
		if isLE {
			return "(ppcle)"
		}
		return "(ppc)"
	case elf.EM_PPC64:
		if isLE {
			return "(ppc64le)"
		}
		return "(ppc64)"
	case elf.EM_RISCV:
		if is64 {
			return "(riscv64)"
		}
		return "(riscv32)"
	case elf.EM_S390:
		if is64 {
			return "(s390x)"
		}
		return "(s390)"
	case elf.EM_SH:
		if isLE {
			return "(shl)"
		}
		return "(sh)"
	case elf.EM_SPARC, elf.EM_SPARC32PLUS, elf.EM_SPARCV9:
		if is64 {
			return "(sparc64)"
		}
		return "(sparc)"
	case elf.EM_X86_64:
		return "(x86_64)"
	default:
		if is64 {
			return "(unknown64)"
		}
		return "(unknown)"
	}
}
