package cpu

import (
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"
)

// Features describes the SIMD capabilities of the host CPU.
type Features struct {
	HasSSE2      bool
	HasSSE3      bool
	HasSSSE3     bool
	HasSSE41     bool
	HasAVX       bool
	HasAVX2      bool
	HasAVX512    bool
	HasFMA       bool
	HasNEON      bool
	HasSVE       bool
	Architecture string
}

// DetectFeatures reports the CPU features visible to the current process.
func DetectFeatures() Features {
	return Features{
		HasSSE2:      cpu.X86.HasSSE2,
		HasSSE3:      cpu.X86.HasSSE3,
		HasSSSE3:     cpu.X86.HasSSSE3,
		HasSSE41:     cpu.X86.HasSSE41,
		HasAVX:       cpu.X86.HasAVX,
		HasAVX2:      cpu.X86.HasAVX2,
		HasAVX512:    cpu.X86.HasAVX512,
		HasFMA:       cpu.X86.HasFMA,
		HasNEON:      cpu.ARM64.HasASIMD,
		HasSVE:       cpu.ARM64.HasSVE,
		Architecture: runtime.GOARCH,
	}
}

// String returns a compact feature list such as "amd64+avx2+fma".
func (f Features) String() string {
	parts := []string{f.Architecture}

	flags := []struct {
		on   bool
		name string
	}{
		{f.HasSSE2, "sse2"},
		{f.HasSSE3, "sse3"},
		{f.HasSSSE3, "ssse3"},
		{f.HasSSE41, "sse4.1"},
		{f.HasAVX, "avx"},
		{f.HasAVX2, "avx2"},
		{f.HasAVX512, "avx512"},
		{f.HasFMA, "fma"},
		{f.HasNEON, "neon"},
		{f.HasSVE, "sve"},
	}
	for _, fl := range flags {
		if fl.on {
			parts = append(parts, fl.name)
		}
	}

	return strings.Join(parts, "+")
}
