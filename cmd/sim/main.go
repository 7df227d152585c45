// Command sim runs an arena scenario without a window: headless for a fixed
// number of ticks, or live in the terminal with -tui.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/milk9111/autocombat/arena"
	"github.com/milk9111/autocombat/logging"
	"github.com/milk9111/autocombat/prefabs"
)

func main() {
	scenario := flag.String("scenario", "arena.yaml", "scenario prefab in prefabs/")
	ticks := flag.Int("ticks", 3600, "maximum ticks to simulate")
	dt := flag.Float64("dt", 1.0/60.0, "seconds per tick")
	untilDone := flag.Bool("until-done", true, "stop as soon as the scenario is over")
	auto := flag.String("auto", "", "force auto-combat on or off (default: scenario)")
	global := flag.String("global", "", "force global search on or off (default: prefab)")
	prefabDir := flag.String("prefabs", prefabs.Dir, "directory whose prefabs override the embedded ones")
	watch := flag.Bool("watch", false, "hot reload prefab edits while running")
	tui := flag.Bool("tui", false, "show the arena live in the terminal")
	logLevel := flag.String("log-level", "warn", "logrus level")
	logJSON := flag.Bool("json", false, "log as JSON")
	logFile := flag.String("log-file", "", "write logs here instead of stderr")
	list := flag.Bool("list", false, "list the available scenarios and exit")
	flag.Parse()

	if err := logging.Configure(*logLevel, *logJSON); err != nil {
		log.Fatal(err)
	}
	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		logging.SetOutput(f)
	} else if *tui {
		// the terminal belongs to the viewer
		logging.SetOutput(io.Discard)
	}
	prefabs.Dir = *prefabDir
	if *list {
		if listScenarios(os.Stdout) == 0 {
			log.Fatal("no scenarios found")
		}
		return
	}

	opts := arena.Options{}
	var err error
	if opts.AutoCombat, err = parseSwitch("auto", *auto); err != nil {
		log.Fatal(err)
	}
	if opts.GlobalSearch, err = parseSwitch("global", *global); err != nil {
		log.Fatal(err)
	}

	a, err := arena.Load(*scenario, opts)
	if err != nil {
		log.Fatal(err)
	}

	var watcher *prefabs.Watcher
	if *watch {
		if watcher, err = prefabs.NewWatcher(prefabs.Dir); err != nil {
			log.Fatal(err)
		}
		defer watcher.Close()
	}

	r := &runner{arena: a, dt: *dt, watcher: watcher, log: logging.For("sim")}
	if *tui {
		if err := runTUI(r); err != nil {
			log.Fatal(err)
		}
	} else {
		r.run(*ticks, *untilDone)
	}
	writeSummary(os.Stdout, *scenario, a)
}

func parseSwitch(name, v string) (*bool, error) {
	switch v {
	case "":
		return nil, nil
	case "on", "true", "1":
		b := true
		return &b, nil
	case "off", "false", "0":
		b := false
		return &b, nil
	}
	return nil, fmt.Errorf("-%s: want on or off, got %q", name, v)
}
