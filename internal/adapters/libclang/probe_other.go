//go:build !darwin && !linux

package libclang

// ProbeResult describes a libclang shared library that loaded and answered.
type ProbeResult struct {
	Path           string `json:"path" yaml:"path"`
	IndexRoundTrip bool   `json:"index_round_trip" yaml:"index_round_trip"`
}

// Probe is not available without dlopen.
func Probe(paths []string) (*ProbeResult, error) {
	if _, err := Locate(paths); err != nil {
		return nil, err
	}
	return nil, ErrProbeUnsupported
}
