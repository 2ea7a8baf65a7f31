package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"slidecast/internal/config"
	"slidecast/internal/engine"
	"slidecast/internal/manifest"
	"slidecast/internal/system"
)

func main() {
	system.InitResourceLimits()

	// .env is optional; it just supplies defaults for the flags below.
	godotenv.Load()

	cfg := config.Default()

	inputPtr := flag.String("input", envOr("SLIDECAST_MANIFEST", "input.json"), "Path to the JSON manifest")
	outputPtr := flag.String("output", envOr("SLIDECAST_OUTPUT", ""), "Output video path (default: output/<timestamp>.mp4)")
	configPtr := flag.String("config", "", "Optional YAML config file")
	presetPtr := flag.String("preset", "", "Canvas preset: 9:16 (Shorts/TikTok, default), 16:9, 4:5 (Instagram)")
	widthPtr := flag.Int("width", 0, "Canvas width (overrides preset)")
	heightPtr := flag.Int("height", 0, "Canvas height (overrides preset)")
	fpsPtr := flag.Int("fps", cfg.FPS, "Frames per second")
	intensityPtr := flag.Float64("intensity", cfg.Intensity, "Motion intensity 0.0-1.0 (scales max zoom)")
	frequencyPtr := flag.Float64("frequency", cfg.Frequency, "Motion keyframes per second (0 = start/end pair)")
	encoderPtr := flag.String("encoder", "", "Video encoder (default: auto-detect)")
	qualityPtr := flag.Int("quality", 0, "Encoder quality (0 = auto; x264: CRF, VideoToolbox: bitrate = Q*100kbit/s)")
	timeoutPtr := flag.Duration("render-timeout", cfg.RenderTimeout, "Per-slide render timeout")
	planOutPtr := flag.String("plan-out", "", "Write the generated motion plan to this YAML file")
	planInPtr := flag.String("plan-in", "", "Replay a motion plan instead of generating one")
	outroPtr := flag.String("outro-url", "", "Append a QR outro slide pointing at this URL")
	outroCapPtr := flag.String("outro-caption", "", "Caption for the QR outro slide")
	statsPtr := flag.Bool("stats", false, "Print resource usage around the run")

	flag.Parse()

	if *configPtr != "" {
		if err := config.Load(*configPtr, cfg); err != nil {
			log.Fatalf("[-] config: %v", err)
		}
	}

	// Explicit flags win over the config file; untouched flags keep
	// whatever the file (or the defaults) decided.
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	switch *presetPtr {
	case "16:9":
		cfg.Width, cfg.Height = 1920, 1080
	case "4:5":
		cfg.Width, cfg.Height = 1080, 1350
	case "9:16":
		cfg.Width, cfg.Height = 1080, 1920
	}
	if *widthPtr > 0 {
		cfg.Width = *widthPtr
	}
	if *heightPtr > 0 {
		cfg.Height = *heightPtr
	}

	if set["input"] || cfg.ManifestPath == "" {
		cfg.ManifestPath = *inputPtr
	}
	if set["fps"] {
		cfg.FPS = *fpsPtr
	}
	if set["intensity"] {
		cfg.Intensity = *intensityPtr
	}
	if set["frequency"] {
		cfg.Frequency = *frequencyPtr
	}
	if set["render-timeout"] {
		cfg.RenderTimeout = *timeoutPtr
	}
	if set["plan-out"] {
		cfg.PlanOut = *planOutPtr
	}
	if set["plan-in"] {
		cfg.PlanIn = *planInPtr
	}
	if set["outro-url"] {
		cfg.OutroURL = *outroPtr
	}
	if set["outro-caption"] {
		cfg.OutroCaption = *outroCapPtr
	}
	if set["stats"] {
		cfg.ShowStats = *statsPtr
	}

	if set["output"] || cfg.OutputVideo == "" {
		cfg.OutputVideo = *outputPtr
	}
	if cfg.OutputVideo == "" {
		os.MkdirAll("output", 0755)
		cfg.OutputVideo = filepath.Join("output",
			fmt.Sprintf("slidecast_%s.mp4", time.Now().Format("2006-01-02_15-04-05")))
	}

	if *encoderPtr != "" {
		cfg.VideoEncoder = *encoderPtr
	} else if cfg.VideoEncoder == "" {
		cfg.VideoEncoder = system.GetBestH264Encoder()
		if cfg.VideoEncoder != "libx264" {
			fmt.Printf("[*] hardware encoder detected: %s\n", cfg.VideoEncoder)
		}
	}
	if *qualityPtr > 0 {
		cfg.Quality = *qualityPtr
	} else if cfg.Quality == 0 {
		cfg.Quality = system.DefaultQuality(cfg.VideoEncoder)
	}

	slides, err := manifest.Read(cfg.ManifestPath)
	if err != nil {
		log.Fatalf("[-] manifest: %v", err)
	}

	fmt.Printf("[*] %d slides | %dx%d @ %d fps | intensity %.2f\n",
		len(slides), cfg.Width, cfg.Height, cfg.FPS, cfg.Intensity)

	if cfg.ShowStats {
		system.PrintStats("before run")
	}

	project := engine.NewProject(cfg, slides)
	if err := project.Run(context.Background()); err != nil {
		log.Fatalf("[-] assembly failed: %v", err)
	}

	if cfg.ShowStats {
		system.PrintStats("after run")
	}

	fmt.Printf("[+++] done: %s\n", cfg.OutputVideo)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
