package engine

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"slidecast/internal/caption"
	"slidecast/internal/config"
	"slidecast/internal/director"
	"slidecast/internal/fetch"
	"slidecast/internal/manifest"
	"slidecast/internal/renderer"
	"slidecast/internal/source"
	"slidecast/internal/video"
)

// Project runs the whole assembly: per-slide fetch, motion synthesis,
// caption timing and render, then the final concatenation. Slides are
// processed strictly in order; one failed slide aborts the batch.
type Project struct {
	Config   *config.Config
	Slides   []manifest.Slide
	Fetcher  *fetch.Client
	Resolver *source.Resolver
	Renderer video.Renderer
	Director *director.Director

	replay *director.Plan
	jobID  string
	tmpDir string
}

// NewProject wires a project from configuration, seeding the motion
// generator from the wall clock.
func NewProject(cfg *config.Config, slides []manifest.Slide) *Project {
	fetcher := fetch.NewClient(cfg.FetchTimeout)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Project{
		Config:   cfg,
		Slides:   slides,
		Fetcher:  fetcher,
		Resolver: &source.Resolver{Fetcher: fetcher, DPI: cfg.DPI},
		Renderer: &video.FFmpegRenderer{Encoder: cfg.VideoEncoder, Quality: cfg.Quality},
		Director: director.NewDirector(cfg.Width*2, cfg.Height*2, rng),
		jobID:    uuid.NewString()[:8],
	}
}

// Run executes the batch. All slide-scoped artifacts live in one temp
// workspace that is removed on every exit path.
func (p *Project) Run(ctx context.Context) error {
	var err error
	p.tmpDir, err = os.MkdirTemp("", "slidecast_"+p.jobID+"_")
	if err != nil {
		return err
	}
	defer os.RemoveAll(p.tmpDir)

	if p.Config.PlanIn != "" {
		p.replay, err = director.ReadPlan(p.Config.PlanIn)
		if err != nil {
			return fmt.Errorf("read plan: %w", err)
		}
		fmt.Printf("[*] replaying motion plan: %s\n", p.Config.PlanIn)
	}

	slides := p.Slides
	if p.Config.OutroURL != "" {
		outro, err := p.buildOutroSlide()
		if err != nil {
			return fmt.Errorf("outro slide: %w", err)
		}
		slides = append(slides, outro)
	}

	plan := &director.Plan{Version: "1.0"}
	segments := make([]string, 0, len(slides))

	for i, slide := range slides {
		fmt.Printf("[*] job %s: slide %d/%d\n", p.jobID, i+1, len(slides))
		segPath, slidePlan, err := p.processSlide(ctx, i, slide)
		if err != nil {
			return fmt.Errorf("slide %d: %w", i+1, err)
		}
		segments = append(segments, segPath)
		plan.Slides = append(plan.Slides, slidePlan)
	}

	if p.Config.PlanOut != "" {
		if err := director.WritePlan(plan, p.Config.PlanOut); err != nil {
			log.Printf("[!] could not write motion plan: %v", err)
		} else {
			fmt.Printf("[*] motion plan written: %s\n", p.Config.PlanOut)
		}
	}

	fmt.Printf("[*] concatenating %d segments\n", len(segments))
	if err := p.Renderer.Concatenate(ctx, segments, p.tmpDir, p.Config.OutputVideo); err != nil {
		return err
	}
	return nil
}

// processSlide runs one slide through the full pipeline and returns the
// rendered segment path plus the motion actually used.
func (p *Project) processSlide(ctx context.Context, index int, slide manifest.Slide) (string, director.SlidePlan, error) {
	stem := fmt.Sprintf("slide_%03d", index)

	audioPath, imagePath, err := p.acquire(ctx, slide, stem)
	if err != nil {
		return "", director.SlidePlan{}, err
	}

	duration := p.effectiveDuration(slide, audioPath)

	params := config.SlideParams{
		Width:     p.Config.Width,
		Height:    p.Config.Height,
		FPS:       p.Config.FPS,
		Duration:  duration,
		Intensity: p.Config.Intensity,
		Frequency: p.Config.Frequency,
		Index:     index,
	}

	keyframes := p.replay.Lookup(index)
	if keyframes == nil {
		keyframes = p.Director.Generate(duration, params.Intensity, params.Frequency, params.FPS)
	}

	assPath := filepath.Join(p.tmpDir, stem+".ass")
	pages := caption.BuildTrack(slide.Caption, p.Config.MaxLineWidth, p.Config.LinesPerPage, duration)
	style := caption.TrackStyle{
		PlayResX: p.Config.Width,
		PlayResY: p.Config.Height,
		FontName: p.Config.FontName,
		FontSize: p.Config.FontSize,
	}
	if err := caption.WriteASS(assPath, pages, style); err != nil {
		return "", director.SlidePlan{}, err
	}

	filter := renderer.SlideFilter(keyframes, params, assPath)

	segPath := filepath.Join(p.tmpDir, stem+".mp4")
	renderCtx := ctx
	if p.Config.RenderTimeout > 0 {
		var cancel context.CancelFunc
		renderCtx, cancel = context.WithTimeout(ctx, p.Config.RenderTimeout)
		defer cancel()
	}
	if err := p.Renderer.RenderSegment(renderCtx, imagePath, audioPath, filter, params, segPath); err != nil {
		return "", director.SlidePlan{}, err
	}

	return segPath, director.SlidePlan{Index: index, Duration: duration, Keyframes: keyframes}, nil
}

// acquire materializes the slide's audio and image locally. When both are
// remote they download in parallel; otherwise each resolves on its own.
func (p *Project) acquire(ctx context.Context, slide manifest.Slide, stem string) (audioPath, imagePath string, err error) {
	if slide.AudioRef == "" {
		imagePath, err = p.Resolver.Resolve(ctx, slide.ImageRef, p.tmpDir, stem+"_image")
		return "", imagePath, err
	}

	if source.IsRemote(slide.AudioRef) && source.IsRemote(slide.ImageRef) {
		audioPath = filepath.Join(p.tmpDir, stem+"_audio.mp3")
		imagePath = filepath.Join(p.tmpDir, stem+"_image.jpg")
		if err := p.Fetcher.Pair(ctx, slide.AudioRef, audioPath, slide.ImageRef, imagePath); err != nil {
			return "", "", err
		}
		return audioPath, imagePath, nil
	}

	if source.IsRemote(slide.AudioRef) {
		audioPath = filepath.Join(p.tmpDir, stem+"_audio.mp3")
		if err := p.Fetcher.Download(ctx, slide.AudioRef, audioPath); err != nil {
			return "", "", err
		}
	} else {
		audioPath = slide.AudioRef
	}

	imagePath, err = p.Resolver.Resolve(ctx, slide.ImageRef, p.tmpDir, stem+"_image")
	if err != nil {
		return "", "", err
	}
	return audioPath, imagePath, nil
}

// effectiveDuration measures the narration and keeps the shorter of the
// measured and declared durations. A failed probe falls back to the
// manifest value.
func (p *Project) effectiveDuration(slide manifest.Slide, audioPath string) float64 {
	target := slide.Duration()
	if audioPath == "" {
		return target
	}
	actual, err := video.ProbeDuration(audioPath)
	if err != nil {
		log.Printf("[!] duration probe failed, using declared %.2fs: %v", target, err)
		return target
	}
	return MinDuration(target, actual)
}

// MinDuration picks the rendered duration for a slide: the shorter of the
// declared target and the measured audio length, ignoring values that are
// unknown (zero or negative).
func MinDuration(target, actual float64) float64 {
	if actual <= 0 {
		return target
	}
	if target <= 0 {
		return actual
	}
	if actual < target {
		return actual
	}
	return target
}

// buildOutroSlide synthesizes the trailing QR slide.
func (p *Project) buildOutroSlide() (manifest.Slide, error) {
	imagePath := filepath.Join(p.tmpDir, "outro_qr.png")
	if err := source.BuildQRSlide(p.Config.OutroURL, p.Config.Width, p.Config.Height, imagePath); err != nil {
		return manifest.Slide{}, err
	}
	return manifest.Slide{
		Caption:    p.Config.OutroCaption,
		ImageRef:   imagePath,
		DurationMS: int64(p.Config.OutroDuration * 1000),
	}, nil
}
