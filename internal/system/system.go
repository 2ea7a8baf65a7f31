package system

import (
	"fmt"
	"log"
	"os/exec"
	"strings"
	"syscall"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// InitResourceLimits raises the open-file limit; a long manifest keeps many
// downloaded resources and segment files around within one run.
func InitResourceLimits() {
	var rLimit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.Printf("[!] could not read file limit: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	if err := syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.Printf("[!] could not raise file limit: %v", err)
	}
}

// GetBestH264Encoder picks a hardware H.264 encoder when ffmpeg advertises
// one, falling back to libx264.
func GetBestH264Encoder() string {
	candidates := []string{"h264_videotoolbox", "h264_nvenc"}

	out, err := exec.Command("ffmpeg", "-encoders").CombinedOutput()
	if err != nil {
		return "libx264"
	}
	for _, name := range candidates {
		if strings.Contains(string(out), name) {
			return name
		}
	}
	return "libx264"
}

// DefaultQuality maps an encoder to a sensible quality value: CRF for
// software x264, a CQ level for NVENC, a bitrate multiplier for
// VideoToolbox.
func DefaultQuality(encoder string) int {
	switch encoder {
	case "h264_videotoolbox":
		return 75
	case "h264_nvenc":
		return 28
	default:
		return 22
	}
}

// PrintStats reports current CPU and memory pressure, for runs started with
// -stats.
func PrintStats(label string) {
	v, err := mem.VirtualMemory()
	if err != nil {
		log.Printf("[!] memory stats unavailable: %v", err)
		return
	}
	percents, err := cpu.Percent(0, false)
	cpuLoad := 0.0
	if err == nil && len(percents) > 0 {
		cpuLoad = percents[0]
	}
	fmt.Printf("[*] %s: cpu %.1f%% | mem %.1f%% (%.1f GiB used)\n",
		label, cpuLoad, v.UsedPercent, float64(v.Used)/(1<<30))
}
