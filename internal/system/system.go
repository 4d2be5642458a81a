package system

import (
	"os/exec"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// WorkerCount sizes the render pool: one worker per logical core, capped so
// the in-flight frame buffers stay within a quarter of available memory.
// frameBytes is the size of one RGBA frame.
func WorkerCount(frameBytes uint64) int {
	workers, err := cpu.Counts(true)
	if err != nil || workers < 1 {
		workers = runtime.NumCPU()
	}

	if vm, err := mem.VirtualMemory(); err == nil && frameBytes > 0 {
		// Each worker holds one buffer, and roughly as many again can sit in
		// the re-sequencing queue.
		budget := vm.Available / 4
		if byMem := int(budget / (frameBytes * 2)); byMem < workers {
			workers = byMem
		}
	}

	if workers < 1 {
		workers = 1
	}
	return workers
}

// DetectEncoder probes ffmpeg for hardware H.264 encoders, preferring
// VideoToolbox, then NVENC, then software libx264.
func DetectEncoder() string {
	out, err := exec.Command("ffmpeg", "-encoders").CombinedOutput()
	if err != nil {
		return "libx264"
	}
	for _, name := range []string{"h264_videotoolbox", "h264_nvenc"} {
		if strings.Contains(string(out), name) {
			return name
		}
	}
	return "libx264"
}
