// railrl runs a rail-network simulation against a loaded topology
// directory, the smallest possible stand-in for the RL agent that
// would otherwise drive the engine through its Run/Reset surface.
package main

import (
	"flag"
	"os"

	"github.com/iti/railrl"
	log "github.com/sirupsen/logrus"
)

func main() {
	topoDir := flag.String("topo", "", "directory holding the static topology CSV files")
	configFile := flag.String("config", "", "optional YAML/JSON configuration file")
	seed := flag.String("seed", "railrl", "name used to seed the simulation's RNG stream")
	episodes := flag.Int("episodes", 1, "number of episodes to run back-to-back")
	tracePath := flag.String("trace", "", "optional path to write a per-event trace file")
	flag.Parse()

	if *topoDir == "" {
		log.Fatal("-topo is required")
	}

	cfg := railrl.DefaultConfig()
	if *configFile != "" {
		loaded, err := railrl.ReadConfig(*configFile)
		if err != nil {
			log.WithError(err).Fatal("failed to read config")
		}
		cfg = loaded
	}
	if *tracePath != "" {
		cfg.TracePath = *tracePath
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	sim, err := railrl.Init(*topoDir, cfg, *seed)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize simulation")
	}

	for i := 0; i < *episodes; i++ {
		if i > 0 {
			sim.Reset()
		}
		report := sim.Run()
		log.Infof("episode %d: %s", i, report.String())
	}

	if cfg.TracePath != "" {
		if err := sim.WriteTrace(cfg.TracePath); err != nil {
			log.WithError(err).Error("failed to write trace")
		}
	}

	os.Exit(0)
}
