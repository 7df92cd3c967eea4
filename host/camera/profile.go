package camera

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"gbcam/core"
)

// Profile is a saved register set plus host-side rendering settings
type Profile struct {
	OutputReference     uint8 `yaml:"output_reference"`
	ZeroPoint           uint8 `yaml:"zero_point"`
	OutputGain          uint8 `yaml:"output_gain"`
	EdgeOperation       uint8 `yaml:"edge_operation"`
	OverrideKernel      bool  `yaml:"override_kernel"`
	ExposureHigh        uint8 `yaml:"exposure_high"`
	ExposureLow         uint8 `yaml:"exposure_low"`
	PixelCoefficient    uint8 `yaml:"pixel_coefficient"`
	NeighborCoefficient uint8 `yaml:"neighbor_coefficient"`
	UnknownCoefficient  uint8 `yaml:"unknown_coefficient"`
	OutputBias          uint8 `yaml:"output_bias"`
	InvertOutput        bool  `yaml:"invert_output"`
	EdgeProcessRatio    uint8 `yaml:"edge_process_ratio"`
	EdgeProcessType     uint8 `yaml:"edge_process_type"`

	// BlackCalibration is [gain, offset]
	BlackCalibration []float64 `yaml:"black_calibration,omitempty"`
	ShiftDelay       int       `yaml:"dma_shift_delay"`
}

// ProfileFromRegisters builds a profile with default rendering settings
func ProfileFromRegisters(r core.Registers) Profile {
	return Profile{
		OutputReference:     r.OutputReference,
		ZeroPoint:           uint8(r.ZeroPoint),
		OutputGain:          r.OutputGain,
		EdgeOperation:       uint8(r.EdgeOperation),
		OverrideKernel:      r.OverrideKernel,
		ExposureHigh:        r.ExposureHigh,
		ExposureLow:         r.ExposureLow,
		PixelCoefficient:    r.PixelCoefficient,
		NeighborCoefficient: r.NeighborCoefficient,
		UnknownCoefficient:  r.UnknownCoefficient,
		OutputBias:          r.OutputBias,
		InvertOutput:        r.InvertOutput,
		EdgeProcessRatio:    uint8(r.EdgeRatio),
		EdgeProcessType:     uint8(r.EdgeProcess),
	}
}

// DefaultProfile matches the device power-on registers
func DefaultProfile() Profile {
	return ProfileFromRegisters(core.DefaultRegisters)
}

// Registers returns the register part of the profile
func (p Profile) Registers() core.Registers {
	return core.Registers{
		OutputReference:     p.OutputReference,
		ZeroPoint:           core.ZeroCalibration(p.ZeroPoint),
		OutputGain:          p.OutputGain,
		EdgeOperation:       core.EdgeDirection(p.EdgeOperation),
		OverrideKernel:      p.OverrideKernel,
		ExposureHigh:        p.ExposureHigh,
		ExposureLow:         p.ExposureLow,
		PixelCoefficient:    p.PixelCoefficient,
		NeighborCoefficient: p.NeighborCoefficient,
		UnknownCoefficient:  p.UnknownCoefficient,
		OutputBias:          p.OutputBias,
		InvertOutput:        p.InvertOutput,
		EdgeRatio:           core.EdgeRatio(p.EdgeProcessRatio),
		EdgeProcess:         core.EdgeProcess(p.EdgeProcessType),
	}
}

// ImageOptions returns the rendering settings. A calibration that is not
// exactly [gain, offset] is ignored.
func (p Profile) ImageOptions() ImageOptions {
	opts := DefaultImageOptions()
	if len(p.BlackCalibration) == 2 {
		opts.Gain = p.BlackCalibration[0]
		opts.Offset = p.BlackCalibration[1]
	}
	opts.ShiftDelay = p.ShiftDelay
	return opts
}

// ParseProfile decodes a YAML profile. Missing keys keep their defaults.
func ParseProfile(data []byte) (Profile, error) {
	p := DefaultProfile()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("camera: invalid profile: %w", err)
	}
	return p, nil
}

// LoadProfile reads a YAML profile from path
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, err
	}
	return ParseProfile(data)
}

// SaveProfile writes p to path as YAML
func SaveProfile(path string, p Profile) error {
	data, err := yaml.Marshal(&p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
