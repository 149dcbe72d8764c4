// Package hostinfo describes the machine a training run executes on.
package hostinfo

import (
	"fmt"
	"runtime"

	"github.com/klauspost/cpuid/v2"
)

// Info is a snapshot of the host CPU.
type Info struct {
	Brand        string
	LogicalCores int
	FMA3         bool
	AVX2         bool
	GOARCH       string
}

// Detect reads the host CPU description.
func Detect() Info {
	brand := cpuid.CPU.BrandName
	if brand == "" {
		brand = "unknown"
	}
	cores := cpuid.CPU.LogicalCores
	if cores <= 0 {
		cores = runtime.NumCPU()
	}
	return Info{
		Brand:        brand,
		LogicalCores: cores,
		FMA3:         cpuid.CPU.Supports(cpuid.FMA3),
		AVX2:         cpuid.CPU.Supports(cpuid.AVX2),
		GOARCH:       runtime.GOARCH,
	}
}

// String formats the info as a single banner line.
func (i Info) String() string {
	return fmt.Sprintf("cpu=%q arch=%s cores=%d fma3=%t avx2=%t",
		i.Brand, i.GOARCH, i.LogicalCores, i.FMA3, i.AVX2)
}
