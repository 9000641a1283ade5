package main

import (
	"flag"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"spatial-scene-gen/internal/camera"
	"spatial-scene-gen/internal/caption"
	"spatial-scene-gen/internal/config"
	"spatial-scene-gen/internal/generate"
	"spatial-scene-gen/internal/props"
	"spatial-scene-gen/internal/render"
	"spatial-scene-gen/internal/spatial"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	objects := flag.String("objects", "", "Comma-separated object names (default: all objects from the properties table)")
	random := flag.Bool("random", false, "Enumerate and render all object/rotation/direction/camera combinations")
	maxImages := flag.Int("max-images", 1, "Maximum images per object pair and direction")
	distance := flag.Float64("distance", 3, "Center-to-center distance between the two objects (meters)")
	rot1 := flag.Float64("object1-rotation", 0, "Rotation (degrees) of the first object (single-scene mode)")
	rot2 := flag.Float64("object2-rotation", 0, "Rotation (degrees) of the second object (single-scene mode)")
	direction := flag.String("direction", "front", "Direction of the second object relative to the first (single-scene mode)")
	maxCams := flag.Int("max-camera-configs", 1, "Maximum number of sampled camera configurations")
	camTilt := flag.Float64("camera-tilt", -1, "Fixed camera tilt (degrees), overrides sampling")
	camPan := flag.Float64("camera-pan", -1, "Fixed camera pan (degrees), overrides sampling")
	camHeight := flag.Float64("camera-height", -1, "Fixed camera height (meters), overrides sampling")
	camFocal := flag.Float64("camera-focal", -1, "Fixed camera focal length (mm), overrides sampling")
	maxAttempts := flag.Int("max-render-attempts", 0, "Give up on a scene after this many transient render failures (0 = retry forever)")
	verbose := flag.Bool("v", false, "Debug logging")

	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}

	table, err := props.Load(cfg.PropertiesFile)
	if err != nil {
		log.Fatal().Err(err).Msg("loading properties table")
	}

	captions := caption.Default()
	if cfg.CaptionFile != "" {
		captions, err = caption.Load(cfg.CaptionFile)
		if err != nil {
			log.Fatal().Err(err).Msg("loading caption tables")
		}
	}

	names := table.Names()
	if *objects != "" {
		names = strings.Split(*objects, ",")
		for _, name := range names {
			if _, err := table.Lookup(name); err != nil {
				log.Fatal().Err(err).Msg("unknown object")
			}
		}
	}

	eng := render.New(render.Options{
		CameraX:     cfg.CameraX,
		CameraY:     cfg.CameraY,
		Supersample: cfg.Supersample,
		Format:      cfg.ImageFormat,
	})

	runner, err := generate.NewRunner(generate.Options{
		Config:   cfg,
		Table:    table,
		Captions: captions,
		Engine:   eng,
		Retry:    generate.RetryPolicy{MaxAttempts: *maxAttempts},
		Distance: *distance,
		Logger:   log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("building runner")
	}

	override, haveOverride := cameraOverride(*camTilt, *camPan, *camHeight, *camFocal)

	if *random {
		cams := camera.Sample(*maxCams)
		if haveOverride {
			cams = []camera.Config{override}
		}
		if len(cams) == 0 {
			log.Fatal().Msg("no camera configurations selected")
		}
		if err := runner.RunBatch(names, cams, *maxImages); err != nil {
			log.Fatal().Err(err).Msg("batch run failed")
		}
		return
	}

	if len(names) != 2 {
		log.Fatal().Int("objects", len(names)).Msg("single-scene mode needs exactly two objects")
	}
	dir, err := spatial.Parse(*direction)
	if err != nil {
		log.Fatal().Err(err).Msg("bad direction")
	}
	cam := override
	if !haveOverride {
		cam = camera.Config{Tilt: 90, Pan: 45, Height: 1, FocalLength: 50}
	}
	if err := runner.RunSingle(names[0], names[1], *rot1, *rot2, dir, cam); err != nil {
		log.Fatal().Err(err).Msg("single-scene run failed")
	}
}

// cameraOverride builds a fixed camera configuration when all four override
// flags are set.
func cameraOverride(tilt, pan, height, focal float64) (camera.Config, bool) {
	if tilt < 0 || pan < 0 || height < 0 || focal < 0 {
		return camera.Config{}, false
	}
	return camera.Config{Tilt: tilt, Pan: pan, Height: height, FocalLength: focal}, true
}
