package railrl

import (
	"encoding/json"
	"os"
	"path"

	"gopkg.in/yaml.v3"
)

// Config holds the tunable constants of the simulation, along with
// logging and tracing knobs.  Any field left zero-valued after a load
// is filled in with its default by applyDefaults.
type Config struct {
	TotalStations     int     `json:"totalstations" yaml:"totalstations"`
	DefaultCapacity   int     `json:"defaultcapacity" yaml:"defaultcapacity"`
	StartTime         float64 `json:"starttime" yaml:"starttime"`
	WarmupPeriod      float64 `json:"warmupperiod" yaml:"warmupperiod"`
	SimulationEndTime float64 `json:"simulationendtime" yaml:"simulationendtime"`
	MaxPolicyNum      int     `json:"maxpolicynum" yaml:"maxpolicynum"`

	LogLevel  string `json:"loglevel" yaml:"loglevel"`
	TracePath string `json:"tracepath" yaml:"tracepath"`
}

// DefaultConfig returns the configuration used when no file is given,
// matching the common operating point of the system this engine models.
func DefaultConfig() *Config {
	return &Config{
		TotalStations:     252,
		DefaultCapacity:   300,
		StartTime:         18000,
		WarmupPeriod:      3600,
		SimulationEndTime: 64800,
		MaxPolicyNum:      4,
		LogLevel:          "info",
	}
}

// applyDefaults fills in any zero-valued field of cfg from def.
func (cfg *Config) applyDefaults(def *Config) {
	if cfg.TotalStations == 0 {
		cfg.TotalStations = def.TotalStations
	}
	if cfg.DefaultCapacity == 0 {
		cfg.DefaultCapacity = def.DefaultCapacity
	}
	if cfg.StartTime == 0 {
		cfg.StartTime = def.StartTime
	}
	if cfg.WarmupPeriod == 0 {
		cfg.WarmupPeriod = def.WarmupPeriod
	}
	if cfg.SimulationEndTime == 0 {
		cfg.SimulationEndTime = def.SimulationEndTime
	}
	if cfg.MaxPolicyNum == 0 {
		cfg.MaxPolicyNum = def.MaxPolicyNum
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = def.LogLevel
	}
}

// ReadConfig deserializes a Config from filename.  Format (YAML or JSON)
// is selected by the file extension, by the same rule WriteToFile uses.
func ReadConfig(filename string) (*Config, error) {
	dict, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	pathExt := path.Ext(filename)
	if pathExt == ".yaml" || pathExt == ".YAML" || pathExt == ".yml" {
		err = yaml.Unmarshal(dict, cfg)
	} else {
		err = json.Unmarshal(dict, cfg)
	}
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults(DefaultConfig())
	return cfg, nil
}

// WriteToFile stores cfg to filename.  Serialization to json or to yaml
// is selected based on the extension of filename.
func (cfg *Config) WriteToFile(filename string) error {
	pathExt := path.Ext(filename)
	var bytes []byte
	var merr error

	if pathExt == ".yaml" || pathExt == ".YAML" || pathExt == ".yml" {
		bytes, merr = yaml.Marshal(*cfg)
	} else {
		bytes, merr = json.MarshalIndent(*cfg, "", "\t")
	}
	if merr != nil {
		return merr
	}

	f, cerr := os.Create(filename)
	if cerr != nil {
		return cerr
	}
	defer f.Close()

	_, werr := f.WriteString(string(bytes))
	return werr
}
