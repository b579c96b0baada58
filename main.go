// Command sketchpad-quick opens a drawing window with the configured
// defaults. The full command line lives in cmd/sketchpad.
package main

import (
	"flag"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"

	"github.com/example/sketchpad/internal/appstate"
	"github.com/example/sketchpad/internal/config"
	"github.com/example/sketchpad/internal/notify"
	"github.com/example/sketchpad/internal/theme"
)

func main() {
	background := flag.String("background", "", "image to draw on")
	output := flag.String("output", "sketch.png", "output file path")
	flag.Parse()

	cfg, err := config.NewLoader("", "").Load()
	if err != nil {
		log.Printf("load config: %v", err)
		cfg = config.New()
	}
	settings := cfg.Sketch.Settings()
	if settings.Stamp, err = cfg.Sketch.LoadStamp(); err != nil {
		log.Printf("stamp: %v", err)
	}

	var bg image.Image
	if *background != "" {
		f, err := os.Open(*background)
		if err != nil {
			log.Fatalf("open background: %v", err)
		}
		bg, _, err = image.Decode(f)
		f.Close()
		if err != nil {
			log.Fatalf("decode background: %v", err)
		}
	}

	loader := theme.NewLoader()
	loader.Inline = cfg.Themes
	t, err := loader.Load(cfg.Theme)
	if err != nil {
		log.Printf("theme: %v", err)
		t = theme.Default()
	}

	st, err := appstate.New(
		appstate.WithSettings(settings),
		appstate.WithBackground(bg, cfg.Sketch.Mode),
		appstate.WithOutput(*output),
		appstate.WithTheme(t),
		appstate.WithNotifier(notify.FromConfig(cfg.Notify)),
	)
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	st.Run()
}
