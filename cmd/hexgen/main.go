package main

import (
	"log/slog"
	"os"

	"github.com/urfave/cli"
)

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		slog.Error("Error running hexgen", "error", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "hexgen"
	app.Description = "A procedural hex terrain viewer running on a fixed timestep loop"
	app.Usage = "hexgen [options]"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "Path to a YAML config file",
		},
		cli.StringFlag{
			Name:  "backend",
			Usage: "Window backend: terminal, headless or sdl2 (sdl2 needs -tags sdl2)",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn or error",
		},
		cli.IntFlag{
			Name:  "ups",
			Usage: "Simulation updates per second",
		},
		cli.DurationFlag{
			Name:  "max-frame-time",
			Usage: "Cap on the wall time credited to one frame, e.g. 100ms",
		},
		cli.IntFlag{
			Name:  "fps",
			Usage: "Target frames per second (0 = unlimited)",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run in headless mode (0 = until the script closes)",
		},
		cli.Int64Flag{
			Name:  "seed",
			Usage: "Terrain seed",
		},
		cli.StringFlag{
			Name:  "size",
			Usage: "Terrain size in hexes, e.g. 30x20",
		},
		cli.IntFlag{
			Name:  "snapshot-interval",
			Usage: "Save frame snapshots every N frames in headless mode (0 = disabled)",
		},
		cli.StringFlag{
			Name:  "snapshot-dir",
			Usage: "Directory to save frame snapshots (default: temp directory)",
		},
		cli.BoolFlag{
			Name:  "occlude-on-blur",
			Usage: "Treat focus loss as the window being hidden",
		},
		cli.BoolFlag{
			Name:  "realtime",
			Usage: "Pace headless runs in real time",
		},
	}
	app.Action = runGenerator
	return app
}
