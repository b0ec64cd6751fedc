package metrics

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

var (
	SystemCPUUsage = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "system_cpu_usage_percent",
			Help: "CPU usage percentage",
		},
	)

	SystemMemoryUsage = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "system_memory_usage_bytes",
			Help: "System memory usage in bytes",
		},
	)

	ProcessResidentMemory = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_resident_memory_usage_bytes",
			Help: "Resident set size of the probe service process",
		},
	)

	ApplicationMemoryUsage = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "application_memory_usage_bytes",
			Help: "Application memory usage in bytes (Go heap allocation)",
		},
	)

	ApplicationGoroutines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "application_goroutines",
			Help: "Number of goroutines, grows with in-flight probe retries",
		},
	)
)

const DefaultCollectInterval = 5 * time.Second

// SystemCollector - фоновая задача, снимающая метрики хоста и процесса.
type SystemCollector struct {
	interval time.Duration
	proc     *process.Process
}

func NewSystemCollector(interval time.Duration) (*SystemCollector, error) {
	proc, err := process.NewProcess(int32(os.Getpid())) //nolint:gosec // pid помещается в int32
	if err != nil {
		return nil, fmt.Errorf("open current process: %w", err)
	}
	return &SystemCollector{
		interval: interval,
		proc:     proc,
	}, nil
}

func (c *SystemCollector) TTL() time.Duration {
	return c.interval
}

func (c *SystemCollector) Info() string {
	return "system metrics collector"
}

// Do снимает метрики. Загрузка CPU считается относительно предыдущего вызова,
// поэтому первый вызов только запоминает точку отсчёта.
func (c *SystemCollector) Do(ctx context.Context) error {
	cpuPercent, err := cpu.PercentWithContext(ctx, 0, false)
	if err == nil && len(cpuPercent) > 0 {
		SystemCPUUsage.Set(cpuPercent[0])
	}

	vmStat, err := mem.VirtualMemoryWithContext(ctx)
	if err == nil {
		SystemMemoryUsage.Set(float64(vmStat.Used))
	}

	memInfo, err := c.proc.MemoryInfoWithContext(ctx)
	if err == nil {
		ProcessResidentMemory.Set(float64(memInfo.RSS))
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	ApplicationMemoryUsage.Set(float64(m.Alloc))
	ApplicationGoroutines.Set(float64(runtime.NumGoroutine()))

	return nil
}
