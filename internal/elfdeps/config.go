package elfdeps

// Config controls how dependency tokens are derived from an object file.
// It replaces the process-wide flags of the classic elfdeps tool with one
// immutable value constructed at startup and passed into every extraction.
type Config struct {
	// SonameOnly suppresses version- and post-processing-derived tokens,
	// reporting only identity-level facts.
	SonameOnly bool

	// FakeSoname synthesizes a soname from the file's base name when a
	// shared object declares none.
	FakeSoname bool

	// FilterSoname enables the ".so"/"lib"/"ld" soname sanity heuristics.
	FilterSoname bool

	// RequireInterp emits the interpreter path as a literal requirement.
	RequireInterp bool

	// AddArch emits per-token variants tagged with the architecture marker.
	AddArch bool

	// AddNonarch emits the marker-less and class-marker token variants.
	AddNonarch bool
}

// DefaultConfig returns the extraction defaults of the classic tool:
// soname filtering and fake-soname synthesis on, architecture-tagged
// variants off, marker-less variants on.
func DefaultConfig() Config {
	return Config{
		FakeSoname:   true,
		FilterSoname: true,
		AddNonarch:   true,
	}
}
