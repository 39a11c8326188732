package batch

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"mocap-viewer/internal/playback"
	"mocap-viewer/internal/postprocess"
	"mocap-viewer/internal/raster"
	"mocap-viewer/internal/scene"
	"mocap-viewer/internal/viewer"
	"mocap-viewer/internal/viewmatrix"
)

// Output formats.
const (
	FormatWebP = "webp"
	FormatTGA  = "tga"
)

// AnimationFile is the animated WebP written next to the frames directory.
const AnimationFile = "anim.webp"

// Config holds the settings for a batch run.
type Config struct {
	OutputDir   string
	Format      string
	Width       int
	Height      int
	Supersample int
	Workers     int
	Animate     bool
	FPS         float64
	Label       bool
	Background  color.NRGBA

	// Start is the first frame, clamped to the take.
	Start int
	// Frames is how many frames to play from Start, wrapping after the last
	// one. Zero plays to the end of the take.
	Frames int
	// Hold repeats the start frame this many extra times before playing.
	Hold int
}

// Result holds the outcome of rendering one frame.
type Result struct {
	Frame   int
	Label   string
	Image   string
	Posed   int
	Held    int
	Hidden  int
	Success bool
	Error   string
}

// frameJob is one posed frame waiting to be rendered.
type frameJob struct {
	states []scene.NodeState
}

// poseFrames steps the viewer through the frames in playback order and
// snapshots the scene after each update. Degenerate-bone handling depends on
// the previous frame, so this pass is sequential.
func poseFrames(cfg Config, v *viewer.Viewer, sc *scene.Scene) ([]Result, []frameJob, error) {
	player := playback.New(v.MaxFrame())
	player.Seek(cfg.Start)

	count := cfg.Frames
	if count <= 0 {
		count = player.Max() - player.Frame() + 1
	}
	hold := cfg.Hold
	if hold < 0 {
		hold = 0
	}
	if hold > 0 {
		player.TogglePause()
	}

	n := hold + count
	results := make([]Result, n)
	jobs := make([]frameJob, n)

	for i := 0; i < n; i++ {
		frame := player.Frame()
		st, err := v.Update(frame)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "batch: pose frame %d", frame)
		}
		results[i] = Result{
			Frame:  frame,
			Label:  player.Label(),
			Posed:  st.Posed,
			Held:   st.Held,
			Hidden: st.Hidden,
		}
		jobs[i] = frameJob{states: sc.Snapshot()}
		// A paused player wraps from the last frame, so hold without advancing.
		if player.Paused() {
			if i+1 >= hold {
				player.TogglePause()
			}
			continue
		}
		player.Advance()
	}
	return results, jobs, nil
}

// Run renders every frame of the viewer's motion data with a worker pool.
// Per-frame failures are recorded in the results and combined into the
// returned error.
func Run(ctx context.Context, cfg Config, v *viewer.Viewer, sc *scene.Scene, cam *viewmatrix.Camera, logger *zap.SugaredLogger) ([]Result, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	ext, err := extension(cfg.Format)
	if err != nil {
		return nil, err
	}
	framesDir := filepath.Join(cfg.OutputDir, "frames")
	if err := os.MkdirAll(framesDir, 0755); err != nil {
		return nil, errors.Wrap(err, "batch: create output")
	}

	results, jobs, err := poseFrames(cfg, v, sc)
	if err != nil {
		return nil, err
	}
	total := len(jobs)
	logger.Infow("frames posed", "frames", total, "workers", cfg.Workers)

	var anim []image.Image
	if cfg.Animate {
		anim = make([]image.Image, total)
	}

	var processed atomic.Int64
	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					logger.Infof("[%d/%d] %.1f frames/sec", p, total, float64(p)/elapsed)
				}
			}
		}
	}()

	// Worker pool
	frameChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range frameChan {
				if err := ctx.Err(); err != nil {
					results[idx].Error = err.Error()
					processed.Add(1)
					continue
				}
				img, err := renderFrame(cfg, cam, jobs[idx].states, results[idx].Label)
				if err == nil {
					rel := filepath.Join("frames", fmt.Sprintf("%05d.%s", idx, ext))
					err = encodeFile(filepath.Join(cfg.OutputDir, rel), cfg.Format, img)
					results[idx].Image = filepath.ToSlash(rel)
				}
				if err != nil {
					results[idx].Error = err.Error()
				} else {
					results[idx].Success = true
					if anim != nil {
						anim[idx] = img
					}
				}
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range jobs {
		frameChan <- i
	}
	close(frameChan)

	wg.Wait()
	close(done)

	var errs error
	for _, r := range results {
		if !r.Success {
			errs = multierr.Append(errs, errors.Errorf("frame %d: %s", r.Frame, r.Error))
		}
	}

	if anim != nil && ctx.Err() == nil {
		path := filepath.Join(cfg.OutputDir, AnimationFile)
		if err := WriteAnimation(path, anim, cfg.FPS); err != nil {
			errs = multierr.Append(errs, err)
		} else {
			logger.Infow("animation written", "path", path)
		}
	}

	logger.Infow("render finished", "frames", total, "failed", len(multierr.Errors(errs)), "elapsed", time.Since(start))
	return results, errs
}

func renderFrame(cfg Config, cam *viewmatrix.Camera, states []scene.NodeState, label string) (*image.NRGBA, error) {
	img := raster.Render(states, cam, raster.Options{
		Supersample: cfg.Supersample,
		Background:  cfg.Background,
	})

	// Post-processing: supersample downsample
	if cfg.Supersample > 1 {
		img = postprocess.Downsample(img, cam.Width, cam.Height)
	}
	if img.Bounds().Dx() != cam.Width || img.Bounds().Dy() != cam.Height {
		return nil, errors.Errorf("render size %v, want %dx%d", img.Bounds().Size(), cam.Width, cam.Height)
	}

	if cfg.Label {
		postprocess.DrawLabel(img, label)
	}
	return img, nil
}

func extension(format string) (string, error) {
	switch format {
	case "", FormatWebP:
		return "webp", nil
	case FormatTGA:
		return "tga", nil
	}
	return "", errors.Errorf("batch: unknown format %q", format)
}

func encodeFile(path, format string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	if format == FormatTGA {
		if err := tga.Encode(f, img); err != nil {
			return errors.Wrap(err, "TGA encode")
		}
		return nil
	}
	if err := nativewebp.Encode(f, img, nil); err != nil {
		return errors.Wrap(err, "WebP encode")
	}
	return nil
}

// WriteAnimation encodes the non-nil frames as a looping animated WebP.
func WriteAnimation(path string, frames []image.Image, fps float64) (err error) {
	if fps <= 0 {
		fps = 60
	}
	ms := uint(math.Max(1, math.Round(1000/fps)))

	ani := &nativewebp.Animation{}
	for _, img := range frames {
		if img == nil {
			continue
		}
		ani.Images = append(ani.Images, img)
		ani.Durations = append(ani.Durations, ms)
		ani.Disposals = append(ani.Disposals, 0)
	}
	if len(ani.Images) == 0 {
		return errors.New("batch: no frames for animation")
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "batch: create animation")
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	if err := nativewebp.EncodeAll(f, ani, nil); err != nil {
		return errors.Wrap(err, "batch: encode animation")
	}
	return nil
}
