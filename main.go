package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/autocombat/logging"
	"github.com/milk9111/autocombat/prefabs"
)

func main() {
	scenario := flag.String("scenario", "arena.yaml", "scenario prefab in prefabs/")
	debug := flag.Bool("debug", true, "draw the combat overlay (toggle with F3)")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	watch := flag.Bool("watch", true, "hot reload prefab edits from the prefabs directory")
	prefabDir := flag.String("prefabs", prefabs.Dir, "directory whose prefabs override the embedded ones")
	logLevel := flag.String("log-level", "info", "logrus level")
	logJSON := flag.Bool("log-json", false, "log as JSON")
	flag.Parse()

	if err := logging.Configure(*logLevel, *logJSON); err != nil {
		log.Fatal(err)
	}
	prefabs.Dir = *prefabDir

	var watcher *prefabs.Watcher
	if *watch {
		w, err := prefabs.NewWatcher(prefabs.Dir, prefabs.ScriptDir())
		if err != nil {
			logging.For("main").WithError(err).Warn("hot reload disabled")
		} else {
			watcher = w
			defer watcher.Close()
		}
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("autocombat")

	game, err := NewGame(*scenario, *debug, watcher)
	if err != nil {
		log.Fatal(err)
	}
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
