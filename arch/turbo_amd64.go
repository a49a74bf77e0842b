//go:build amd64

package arch

// HasTurboControl reports whether ConfigureTurbo/CheckTurbo are backed
// by a real FPU control register on this architecture, as opposed to
// the always-matching no-op fallback.
const HasTurboControl = true

// MXCSR flush-to-zero (bit 15) and denormals-are-zero (bit 6) control the
// handling of subnormal SSE/AVX floating-point values.
const (
	mxcsrFTZ = 1 << 15
	mxcsrDAZ = 1 << 6
	mxcsrTurboMask = mxcsrFTZ | mxcsrDAZ
)

//go:noescape
func getMXCSR() uint32

//go:noescape
func setMXCSR(v uint32)

func configureTurbo(enabled bool) {
	v := getMXCSR()
	if enabled {
		v |= mxcsrTurboMask
	} else {
		v &^= mxcsrTurboMask
	}
	setMXCSR(v)
}

func checkTurbo(enabled bool) bool {
	on := getMXCSR()&mxcsrTurboMask == mxcsrTurboMask
	return on == enabled
}
