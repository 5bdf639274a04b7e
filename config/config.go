package config

import (
	"flag"
	"strings"

	"github.com/go-playground/validator"
)

// Environment variables providing flag defaults.
const (
	EnvLogLevel   = "THERMONET_LOG_LEVEL"
	EnvWorkers    = "THERMONET_WORKERS"
	EnvOutputDir  = "THERMONET_OUTPUT_DIR"
	EnvProbeDepth = "THERMONET_PROBE_DEPTH"
	EnvLeakDemand = "THERMONET_LEAK_DEMAND"
)

// Config of one thermonet run.
type Config struct {
	NetworkPath string  `validate:"required,file"`
	LinksPath   string  `validate:"required,file"`
	NodesPath   string  `validate:"required,file"`
	WeatherPath string  `validate:"omitempty,file"`
	ProbeDepth  float64 `validate:"gte=0"` // depth of the weather soil temperature, m
	OutputDir   string  `validate:"required"`
	LogLevel    string  `validate:"oneof=debug info warn error"`
	Workers     int     `validate:"min=1"`

	Mesh              bool
	MaxPipeLength     float64 `validate:"gte=0"` // m, 0 keeps the network's own setting
	IncludeLeakDemand bool
	PlotNodes         []string
}

// Default returns the configuration defaults, taken from the environment.
func Default() Config {
	return Config{
		ProbeDepth:        envFloat(EnvProbeDepth, 0),
		OutputDir:         envString(EnvOutputDir, "out"),
		LogLevel:          envString(EnvLogLevel, "info"),
		Workers:           envInt(EnvWorkers, 1),
		IncludeLeakDemand: envBool(EnvLeakDemand, false),
	}
}

// Parse sets c from command line arguments. Values already in c are the defaults.
func (c *Config) Parse(fs *flag.FlagSet, args []string) error {
	var plot string
	fs.StringVar(&c.NetworkPath, "network", c.NetworkPath, "network JSON file")
	fs.StringVar(&c.LinksPath, "links", c.LinksPath, "hydraulic link results CSV (time,link,flowrate)")
	fs.StringVar(&c.NodesPath, "nodes", c.NodesPath, "hydraulic node results CSV (time,node,demand,leak_demand,head)")
	fs.StringVar(&c.WeatherPath, "weather", c.WeatherPath, "weather CSV, required by soil and air boundary conditions")
	fs.Float64Var(&c.ProbeDepth, "probe-depth", c.ProbeDepth, "depth of the weather soil temperature, m")
	fs.StringVar(&c.OutputDir, "o", c.OutputDir, "output directory")
	fs.StringVar(&c.LogLevel, "log", c.LogLevel, "log level: debug, info, warn, error")
	fs.IntVar(&c.Workers, "workers", c.Workers, "concurrent row builders")
	fs.BoolVar(&c.Mesh, "mesh", c.Mesh, "split long pipes before the run")
	fs.Float64Var(&c.MaxPipeLength, "max-length", c.MaxPipeLength, "maximum pipe length when meshing, m")
	fs.BoolVar(&c.IncludeLeakDemand, "leak", c.IncludeLeakDemand, "add leak demand to the nodal outflow")
	fs.StringVar(&plot, "plot", strings.Join(c.PlotNodes, ","), "comma separated nodes to chart")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c.PlotNodes = nil
	for _, name := range strings.Split(plot, ",") {
		if name = strings.TrimSpace(name); name != "" {
			c.PlotNodes = append(c.PlotNodes, name)
		}
	}
	return nil
}

// Validate checks the struct tags.
func (c Config) Validate() error {
	return validator.New().Struct(c)
}
