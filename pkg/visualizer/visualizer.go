// Package visualizer runs the channel histogram pipeline: decode an image,
// flatten each of its three channels into (x, y, intensity) samples and
// render one 3D bar chart per channel.
package visualizer

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"log"
	"os"
	"path/filepath"

	colorful "github.com/lucasb-eyer/go-colorful"

	"channelhist/internal/models"
	"channelhist/pkg/channels"
	"channelhist/pkg/config"
	"channelhist/pkg/decode"
	"channelhist/pkg/histogram"
	"channelhist/pkg/render"
	"channelhist/pkg/stl"
	"channelhist/pkg/visualization"
)

// Params holds everything one run needs
type Params struct {
	// ImagePath is the image to visualize
	ImagePath string

	// Config carries figure, decoding and output settings
	Config *config.Config

	// Region restricts the plot to part of the image; empty means all of it
	Region image.Rectangle

	// WriteConfig, when set, asks the caller to write a default config there
	WriteConfig string

	// Display shows the finished figure and blocks until it is dismissed.
	// It is only called when Config.Output.Window is set.
	Display func(img image.Image, title string) error

	// Log receives progress output; nil means standard output
	Log io.Writer
}

// Visualizer runs the pipeline for one image. Each stage keeps its result so
// that callers and tests can inspect how far a run got.
type Visualizer struct {
	// params stores the run configuration
	params *Params

	// logger prints progress when verbose output is enabled
	logger *log.Logger

	// grid is the decoded image
	grid *models.Grid

	// sets holds the flattened samples of each channel
	sets [models.Channels]models.SampleSet

	// figure is the rendered chart image
	figure *image.RGBA
}

// NewVisualizer creates a visualizer for the given parameters.
// A nil Config is replaced by the defaults.
func NewVisualizer(params *Params) *Visualizer {
	if params.Config == nil {
		params.Config = config.DefaultConfig()
	}

	out := params.Log
	if out == nil {
		out = os.Stdout
	}
	if !params.Config.Output.Verbose {
		out = io.Discard
	}

	return &Visualizer{
		params: params,
		logger: log.New(out, "", 0),
	}
}

// Process runs decode, flatten and render, writes the configured outputs and
// finally shows the figure. The first failure ends the run.
func (v *Visualizer) Process() error {
	if v.params.ImagePath == "" {
		return &UsageError{}
	}

	// Step 1: Decode
	v.logger.Println("Step 1: Decoding image...")
	if err := v.decode(); err != nil {
		return err
	}

	// Step 2: Flatten each channel
	v.logger.Println("Step 2: Flattening channels...")
	v.flatten()

	// Step 3: Render
	v.logger.Println("Step 3: Rendering bar charts...")
	if err := v.render(); err != nil {
		return fmt.Errorf("failed to render figure: %w", err)
	}

	// Step 4: Optional artifacts
	if err := v.saveOutputs(); err != nil {
		return err
	}

	// Step 5: Show the figure
	if v.params.Config.Output.Window && v.params.Display != nil {
		v.logger.Println("Close the window to exit.")
		title := "channelhist - " + filepath.Base(v.params.ImagePath)
		if err := v.params.Display(v.figure, title); err != nil {
			return fmt.Errorf("failed to display figure: %w", err)
		}
	}

	return nil
}

// decode loads the image and applies the optional crop and size limit.
// Decode failures are returned unwrapped as *decode.DecodeError.
func (v *Visualizer) decode() error {
	grid, err := decode.Load(v.params.ImagePath)
	if err != nil {
		return err
	}
	v.logger.Printf("Decoded %s: %dx%d pixels", v.params.ImagePath, grid.Width, grid.Height)

	if !v.params.Region.Empty() {
		r := v.params.Region
		grid, err = visualization.NewViewer(grid).ExtractRegion(r.Min.X, r.Min.Y, r.Dx(), r.Dy())
		if err != nil {
			return fmt.Errorf("failed to crop image: %w", err)
		}
		v.logger.Printf("Cropped to %dx%d at (%d,%d)", grid.Width, grid.Height, r.Min.X, r.Min.Y)
	}

	if maxDim := v.params.Config.Decode.MaxDimension; maxDim > 0 {
		before := [2]int{grid.Width, grid.Height}
		grid = decode.Downsample(grid, maxDim)
		if before != [2]int{grid.Width, grid.Height} {
			v.logger.Printf("Downsampled to %dx%d", grid.Width, grid.Height)
		}
	}

	v.grid = grid
	return nil
}

// flatten builds the sample set of each channel and logs its statistics
func (v *Visualizer) flatten() {
	v.sets = channels.FlattenAll(v.grid)

	names := v.params.Config.Channels.Names
	for c, set := range v.sets {
		s := channels.Summarize(set)
		v.logger.Printf("  %-10s samples=%d min=%d max=%d mean=%.2f stddev=%.2f",
			names[c], s.Count, s.Min, s.Max, s.Mean, s.StdDev)
	}
}

// render draws the three charts into one figure
func (v *Visualizer) render() error {
	opts, err := RenderOptions(v.params.Config)
	if err != nil {
		return err
	}

	fig, err := render.Figure(v.sets, opts)
	if err != nil {
		return err
	}

	v.figure = fig
	return nil
}

// saveOutputs writes every artifact enabled in the configuration
func (v *Visualizer) saveOutputs() error {
	out := v.params.Config.Output
	viewer := visualization.NewViewer(v.grid)

	if out.FigurePath != "" {
		if err := viewer.SaveImage(v.figure, out.FigurePath); err != nil {
			return fmt.Errorf("failed to save figure: %w", err)
		}
		v.logger.Printf("Figure saved to: %s", out.FigurePath)
	}

	if out.STLPrefix != "" {
		for c, set := range v.sets {
			mesher := stl.NewBarMesher(render.Bars(set))
			mesher.SetScale(1, 1, float32(out.STLZScale))

			filename := fmt.Sprintf("%s_c%d.stl", out.STLPrefix, c)
			if err := stl.SaveToSTL(filename, mesher.GenerateTriangles()); err != nil {
				return fmt.Errorf("failed to save channel %d mesh: %w", c, err)
			}
			v.logger.Printf("Channel %d mesh saved to: %s", c, filename)
		}
	}

	if out.HistogramPath != "" {
		opts, err := RenderOptions(v.params.Config)
		if err != nil {
			return err
		}
		series := histogram.FromSets(v.sets, opts.Titles, opts.Colors)
		if err := histogram.Save(out.HistogramPath, series, 800, 450); err != nil {
			return err
		}
		v.logger.Printf("Histogram saved to: %s", out.HistogramPath)
	}

	if out.PlanesDir != "" {
		if err := viewer.SaveChannelSequence(out.PlanesDir); err != nil {
			return fmt.Errorf("failed to save channel planes: %w", err)
		}
		v.logger.Printf("Channel planes saved to: %s", out.PlanesDir)
	}

	return nil
}

// RenderOptions converts the figure and channel configuration into render options
func RenderOptions(cfg *config.Config) (render.Options, error) {
	opts := render.DefaultOptions()
	opts.PanelWidth = cfg.Figure.PanelWidth
	opts.PanelHeight = cfg.Figure.PanelHeight
	opts.Elevation = cfg.Figure.Elevation
	opts.Azimuth = cfg.Figure.Azimuth
	opts.ZMax = cfg.Figure.ZMax

	if cfg.Figure.Background != "" {
		bg, err := colorful.Hex(cfg.Figure.Background)
		if err != nil {
			return opts, fmt.Errorf("invalid background color: %w", err)
		}
		r, g, b := bg.RGB255()
		opts.Background = color.RGBA{R: r, G: g, B: b, A: 0xFF}
	}

	colors, err := render.ParseColors(cfg.Channels.Colors)
	if err != nil {
		return opts, err
	}
	opts.Colors = colors

	for c := range opts.Titles {
		if c < len(cfg.Channels.Names) {
			opts.Titles[c] = cfg.Channels.Names[c]
		}
	}

	return opts, nil
}

// Grid returns the decoded grid, or nil before a successful decode
func (v *Visualizer) Grid() *models.Grid {
	return v.grid
}

// SampleSets returns the flattened samples of each channel
func (v *Visualizer) SampleSets() [models.Channels]models.SampleSet {
	return v.sets
}

// Figure returns the rendered figure, or nil if rendering has not happened
func (v *Visualizer) Figure() *image.RGBA {
	return v.figure
}
