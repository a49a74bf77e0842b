package arch

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// Features summarizes the lock-free capabilities this build was compiled
// with, for logging and introspection only — it never changes which code
// path is taken, that is fixed at compile time by HasHardwareDWCAS.
type Features struct {
	Arch                string
	HasHardwareDWCAS    bool
	HasARM64LSEAtomics  bool
	HasTurboControl     bool
}

// CurrentFeatures reports the running build's architecture and the atomic
// primitives it was compiled to use.
func CurrentFeatures() Features {
	return Features{
		Arch:               runtime.GOARCH,
		HasHardwareDWCAS:   HasHardwareDWCAS,
		HasARM64LSEAtomics: cpu.ARM64.HasATOMICS,
		HasTurboControl:    HasTurboControl,
	}
}
