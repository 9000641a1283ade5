// Package generate drives the scene pipeline: it plans each candidate scene,
// renders it through the engine, validates the result and persists or
// discards it. Execution is strictly sequential: one scene is fully resolved
// before the next begins, and the image index advances for every attempt,
// accepted or not.
package generate

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"spatial-scene-gen/internal/camera"
	"spatial-scene-gen/internal/caption"
	"spatial-scene-gen/internal/config"
	"spatial-scene-gen/internal/engine"
	"spatial-scene-gen/internal/mathutil"
	"spatial-scene-gen/internal/overlap"
	"spatial-scene-gen/internal/props"
	"spatial-scene-gen/internal/scene"
	"spatial-scene-gen/internal/spatial"
)

// groundPlaneNormal is the reference plane the direction frame is solved
// against. The ground is the world z=0 plane.
var groundPlaneNormal = mathutil.Vec3{0, 0, 1}

// RetryPolicy bounds the render retry loop. MaxAttempts = 0 retries
// transient failures forever, the default behavior.
type RetryPolicy struct {
	MaxAttempts int
}

// Options collects everything a Runner needs.
type Options struct {
	Config   config.Config
	Table    props.Table
	Captions caption.Tables
	Engine   engine.Engine
	Retry    RetryPolicy
	Distance float64 // center-to-center distance between the two objects
	Logger   zerolog.Logger
}

// Runner generates scenes. Not safe for concurrent use: the image index and
// manifest are plain state advanced scene by scene.
type Runner struct {
	cfg      config.Config
	table    props.Table
	captions caption.Tables
	eng      engine.Engine
	retry    RetryPolicy
	distance float64
	log      zerolog.Logger

	imageIndex int
	attempted  atomic.Int64 // read by the progress reporter
	manifest   []ManifestEntry
}

// NewRunner validates options and builds a Runner.
func NewRunner(opts Options) (*Runner, error) {
	if opts.Engine == nil {
		return nil, fmt.Errorf("generate: no engine")
	}
	if opts.Distance <= 0 {
		return nil, fmt.Errorf("generate: distance must be positive, got %v", opts.Distance)
	}
	return &Runner{
		cfg:      opts.Config,
		table:    opts.Table,
		captions: opts.Captions,
		eng:      opts.Engine,
		retry:    opts.Retry,
		distance: opts.Distance,
		log:      opts.Logger,
	}, nil
}

// RunBatch enumerates and renders the full combinatorial worklist for the
// given object names. The per-pair/per-direction directory tree is created
// up front, before any rendering.
func (r *Runner) RunBatch(names []string, cams []camera.Config, maxPerDirection int) error {
	sets, err := scene.Enumerate(names, r.table, cams, maxPerDirection)
	if err != nil {
		return err
	}

	total := 0
	for _, set := range sets {
		if err := r.makePairDirs(set); err != nil {
			return err
		}
		total += len(set.Plans)
	}
	if err := os.MkdirAll(r.cfg.MasksDir, 0755); err != nil {
		return fmt.Errorf("generate: masks dir: %w", err)
	}

	r.log.Info().Int("scenes", total).Int("pairs", len(sets)).Msg("starting batch run")

	stop := r.startProgress(total)
	defer stop()

	for _, set := range sets {
		pair := set.GroundName + "_" + set.FigureName
		for _, plan := range set.Plans {
			sub := fmt.Sprintf("%s_%s", pair, plan.Direction)
			imgPath := filepath.Join(r.cfg.OutputImageDir, pair, sub, r.sceneFilename(r.cfg.ImageExt()))
			scenePath := filepath.Join(r.cfg.OutputSceneDir, pair, sub, r.sceneFilename(".json"))
			if err := r.resolveScene(plan, imgPath, scenePath); err != nil {
				return err
			}
		}
	}

	manifestPath := filepath.Join(r.cfg.OutputSceneDir, "manifest.json")
	if err := WriteManifest(manifestPath, r.manifest); err != nil {
		return err
	}
	r.log.Info().Int("accepted", len(r.manifest)).Int("attempted", r.imageIndex).
		Str("manifest", manifestPath).Msg("batch run complete")
	return nil
}

// RunSingle renders exactly one scene with fixed rotations, direction and
// camera settings.
func (r *Runner) RunSingle(groundName, figureName string, rot1Deg, rot2Deg float64, dir spatial.Direction, cam camera.Config) error {
	groundSpec, err := r.table.Lookup(groundName)
	if err != nil {
		return err
	}
	figureSpec, err := r.table.Lookup(figureName)
	if err != nil {
		return err
	}
	for _, d := range []string{r.cfg.OutputImageDir, r.cfg.OutputSceneDir, r.cfg.MasksDir} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return fmt.Errorf("generate: output dir %s: %w", d, err)
		}
	}
	plan := scene.Plan{
		Ground:    scene.InstanceAt(groundSpec, rot1Deg),
		Figure:    scene.InstanceAt(figureSpec, rot2Deg),
		Direction: dir,
		Camera:    cam,
	}
	imgPath := filepath.Join(r.cfg.OutputImageDir, r.sceneFilename(r.cfg.ImageExt()))
	scenePath := filepath.Join(r.cfg.OutputSceneDir, r.sceneFilename(".json"))
	return r.resolveScene(plan, imgPath, scenePath)
}

// sceneFilename names the artifact for the current image index.
func (r *Runner) sceneFilename(ext string) string {
	return fmt.Sprintf("%s_%06d%s", r.cfg.FilenamePrefix, r.imageIndex, ext)
}

func (r *Runner) makePairDirs(set scene.PairSet) error {
	pair := set.GroundName + "_" + set.FigureName
	for _, root := range []string{r.cfg.OutputImageDir, r.cfg.OutputSceneDir} {
		for _, d := range spatial.Directions {
			sub := filepath.Join(root, pair, fmt.Sprintf("%s_%s", pair, d))
			if err := os.MkdirAll(sub, 0755); err != nil {
				return fmt.Errorf("generate: output dir %s: %w", sub, err)
			}
		}
	}
	return nil
}

// resolveScene runs one candidate through the full state machine:
// planned -> rendered -> accepted or rejected. Rejection is a normal branch:
// the rendered image is removed and the index still advances.
func (r *Runner) resolveScene(plan scene.Plan, imgPath, scenePath string) error {
	index := r.imageIndex
	r.imageIndex++
	defer r.attempted.Add(1)

	log := r.log.With().Int("index", index).
		Str("ground", plan.Ground.Spec.Name).
		Str("figure", plan.Figure.Spec.Name).
		Str("direction", string(plan.Direction)).Logger()

	sc, err := r.eng.NewScene(r.cfg.Width, r.cfg.Height)
	if err != nil {
		return fmt.Errorf("generate: scene %d: %w", index, err)
	}
	sc.SetCamera(plan.Camera)

	// Degenerate camera geometry is a precondition violation, not a skip.
	frame, err := spatial.SolveFrame(sc.CameraRotation(), groundPlaneNormal)
	if err != nil {
		return fmt.Errorf("generate: scene %d: %w", index, err)
	}
	groundPos, figurePos, err := spatial.Place(frame.Vector(plan.Direction), r.distance)
	if err != nil {
		return fmt.Errorf("generate: scene %d: %w", index, err)
	}
	plan.Ground.Position = groundPos
	plan.Figure.Position = figurePos

	factor := props.PairScaleFactor(plan.Ground.Spec.Group, plan.Figure.Spec.Group)
	plan.Ground.Scale = plan.Ground.Spec.Scale * factor
	plan.Figure.Scale = plan.Figure.Spec.Scale * factor

	for _, inst := range []*scene.ObjectInstance{&plan.Ground, &plan.Figure} {
		assetPath := filepath.Join(r.cfg.ShapeDir, inst.Spec.File)
		if err := sc.LoadObject(inst.Spec.Name, assetPath); err != nil {
			return fmt.Errorf("generate: scene %d: %w", index, err)
		}
		if err := sc.PlaceObject(inst.Spec.Name, inst.Position, inst.Rotation, inst.Scale); err != nil {
			return fmt.Errorf("generate: scene %d: %w", index, err)
		}
	}

	if err := r.renderWithRetry(sc, imgPath); err != nil {
		return fmt.Errorf("generate: scene %d: %w", index, err)
	}

	rejected, err := r.checkOverlap(sc, plan)
	if err != nil {
		return fmt.Errorf("generate: scene %d: %w", index, err)
	}
	if rejected {
		log.Info().Msg("overlap detected, scene rejected")
		if err := os.Remove(imgPath); err != nil {
			return fmt.Errorf("generate: scene %d: discard image: %w", index, err)
		}
		return nil
	}

	maskPath := filepath.Join(r.cfg.MasksDir, filepath.Base(imgPath))
	if err := sc.RenderMask(maskPath); err != nil {
		return fmt.Errorf("generate: scene %d: mask: %w", index, err)
	}

	rec := r.buildRecord(index, filepath.Base(imgPath), plan)
	if err := rec.Write(scenePath); err != nil {
		return fmt.Errorf("generate: scene %d: %w", index, err)
	}

	r.manifest = append(r.manifest, ManifestEntry{
		ImageIndex: index,
		Image:      imgPath,
		Scene:      scenePath,
		Mask:       maskPath,
		Pair:       plan.Ground.Spec.Name + "_" + plan.Figure.Spec.Name,
		Direction:  string(plan.Direction),
	})
	log.Info().Msg("scene accepted")
	return nil
}

// renderWithRetry loops the external render call, retrying transient
// failures per the retry policy. Non-transient errors escalate immediately.
func (r *Runner) renderWithRetry(sc engine.Scene, path string) error {
	attempt := 0
	for {
		attempt++
		err := sc.Render(path)
		if err == nil {
			return nil
		}
		if !engine.IsTransient(err) {
			return err
		}
		r.log.Warn().Err(err).Int("attempt", attempt).Msg("transient render failure, retrying")
		if r.retry.MaxAttempts > 0 && attempt >= r.retry.MaxAttempts {
			return fmt.Errorf("render gave up after %d attempts: %w", attempt, err)
		}
	}
}

// checkOverlap projects both objects' bounding boxes into pixel space and
// applies the occlusion/adjacency rule.
func (r *Runner) checkOverlap(sc engine.Scene, plan scene.Plan) (bool, error) {
	var projs [2]overlap.Projection
	for i, name := range []string{plan.Ground.Spec.Name, plan.Figure.Spec.Name} {
		corners, err := sc.BoundingBox(name)
		if err != nil {
			return false, err
		}
		projs[i] = overlap.ProjectBox(corners, sc.ProjectPoint, r.cfg.Width, r.cfg.Height)
	}
	return overlap.Reject(projs[0], projs[1], plan.Direction), nil
}

// buildRecord assembles the persisted scene description with all captions.
// The figure object's intrinsic relation uses the reversed direction, since
// it is expressed from the ground object's point of view.
func (r *Runner) buildRecord(index int, imageFilename string, plan scene.Plan) *scene.Record {
	rec := &scene.Record{
		ImageIndex:    index,
		ImageFilename: imageFilename,
		Camera:        plan.Camera,
		GroundObject:  scene.NewObjectRecord(plan.Ground),
		FigureObject:  scene.NewObjectRecord(plan.Figure),
		TranslationalCaption: r.captions.Translational(
			plan.Direction, plan.Figure.Spec.Name, plan.Ground.Spec.Name),
		ReflectionalCaption: r.captions.Reflectional(
			plan.Direction, plan.Figure.Spec.Name, plan.Ground.Spec.Name),
	}
	if label, text, ok := r.captions.IntrinsicFor(
		plan.Ground.Orientation, plan.Direction,
		plan.Ground.Spec.Name, plan.Figure.Spec.Name); ok {
		rec.GroundObject.IntrinsicRelation = label
		rec.GroundObject.IntrinsicCaption = text
	}
	if label, text, ok := r.captions.IntrinsicFor(
		plan.Figure.Orientation, plan.Direction.Reverse(),
		plan.Figure.Spec.Name, plan.Ground.Spec.Name); ok {
		rec.FigureObject.IntrinsicRelation = label
		rec.FigureObject.IntrinsicCaption = text
	}
	return rec
}

// startProgress launches the rate reporter; the returned func stops it.
func (r *Runner) startProgress(total int) func() {
	done := make(chan struct{})
	go func() {
		start := time.Now()
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				n := r.attempted.Load()
				if n == 0 {
					continue
				}
				rate := float64(n) / time.Since(start).Seconds()
				r.log.Info().Int64("done", n).Int("total", total).
					Float64("scenes_per_sec", rate).Msg("progress")
			}
		}
	}()
	return func() { close(done) }
}
