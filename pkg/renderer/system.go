package renderer

import (
	"errors"
	"fmt"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// SystemInfo describes the host a render runs on
type SystemInfo struct {
	CPUModel     string  `json:"cpuModel"`
	LogicalCores int     `json:"logicalCores"`
	ClockGHz     float64 `json:"clockGHz"`
	TotalRAMGB   uint64  `json:"totalRamGB"`
}

// ErrNoCPUInfo is returned when the host reports no processors
var ErrNoCPUInfo = errors.New("no CPU information available")

// GetSystemInfo queries the CPU model, core count and installed memory
func GetSystemInfo() (SystemInfo, error) {
	cpuInfo, err := cpu.Info()
	if err != nil {
		return SystemInfo{}, fmt.Errorf("failed to read CPU info: %w", err)
	}
	if len(cpuInfo) == 0 {
		return SystemInfo{}, ErrNoCPUInfo
	}

	memInfo, err := mem.VirtualMemory()
	if err != nil {
		return SystemInfo{}, fmt.Errorf("failed to read memory info: %w", err)
	}

	cores, err := cpu.Counts(true)
	if err != nil || cores <= 0 {
		cores = len(cpuInfo)
	}

	return SystemInfo{
		CPUModel:     cpuInfo[0].ModelName,
		LogicalCores: cores,
		ClockGHz:     cpuInfo[0].Mhz / 1000,
		TotalRAMGB:   memInfo.Total / (1024 * 1024 * 1024),
	}, nil
}

// String formats the info for log output
func (si SystemInfo) String() string {
	return fmt.Sprintf("%s, %d logical cores @ %.2f GHz, %d GB RAM",
		si.CPUModel, si.LogicalCores, si.ClockGHz, si.TotalRAMGB)
}
