package rtk

import (
	"context"
	"fmt"
	"time"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"

	"github.com/viant/rtk/service/registry"
	"github.com/viant/rtk/service/scheduler"
	"github.com/viant/rtk/service/timer"
)

// Config is a serialisable representation of the kernel configuration. It can
// be populated from YAML or JSON; the zero-value is useful since all nested
// fields inherit their package defaults.
type Config struct {
	Kernel KernelConfig `json:"kernel" yaml:"kernel"`
	Timer  TimerConfig  `json:"timer" yaml:"timer"`
}

// KernelConfig groups the registry and scheduler settings
type KernelConfig struct {
	// MaxTasks is the fixed capacity of the task pool
	MaxTasks int `json:"maxTasks" yaml:"maxTasks"`

	// StackSize is the per-task stack allocation in bytes
	StackSize int `json:"stackSize" yaml:"stackSize"`

	// PriorityLevels is the number of priority levels, 0 being the highest
	PriorityLevels int `json:"priorityLevels" yaml:"priorityLevels"`

	// TimeSlice is the tick budget granted to a task per dispatch
	TimeSlice int `json:"timeSlice" yaml:"timeSlice"`
}

// TimerConfig holds the periodic tick source settings
type TimerConfig struct {
	// Period is the wall-clock duration of one tick
	Period time.Duration `json:"period" yaml:"period"`
}

// DefaultConfig returns a Config populated with the package defaults. Callers
// may modify the returned struct before passing it to New.
func DefaultConfig() *Config {
	reg := registry.DefaultConfig()
	sched := scheduler.DefaultConfig()
	return &Config{
		Kernel: KernelConfig{
			MaxTasks:       reg.MaxTasks,
			StackSize:      reg.StackSize,
			PriorityLevels: reg.PriorityLevels,
			TimeSlice:      sched.TimeSlice,
		},
		Timer: TimerConfig{
			Period: timer.DefaultConfig().Period,
		},
	}
}

// Validate returns an aggregated error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Kernel.MaxTasks <= 0 {
		return fmt.Errorf("kernel.maxTasks must be > 0")
	}
	if c.Kernel.StackSize <= 0 {
		return fmt.Errorf("kernel.stackSize must be > 0")
	}
	if c.Kernel.PriorityLevels <= 0 {
		return fmt.Errorf("kernel.priorityLevels must be > 0")
	}
	if c.Kernel.TimeSlice <= 0 {
		return fmt.Errorf("kernel.timeSlice must be > 0")
	}
	if c.Timer.Period <= 0 {
		return fmt.Errorf("timer.period must be > 0")
	}
	return nil
}

func (c *Config) registryConfig() registry.Config {
	return registry.Config{
		MaxTasks:       c.Kernel.MaxTasks,
		StackSize:      c.Kernel.StackSize,
		PriorityLevels: c.Kernel.PriorityLevels,
	}
}

func (c *Config) schedulerConfig() scheduler.Config {
	return scheduler.Config{
		TimeSlice:  c.Kernel.TimeSlice,
		TickPeriod: c.Timer.Period,
	}
}

func (c *Config) timerConfig() timer.Config {
	return timer.Config{Period: c.Timer.Period}
}

// LoadConfig reads a YAML configuration from the supplied URL (any scheme
// supported by afs) on top of the defaults.
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %v: %w", URL, err)
	}
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %v: %w", URL, err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
