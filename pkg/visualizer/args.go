package visualizer

import (
	"flag"
	"fmt"
	"image"
	"io"
	"strconv"
	"strings"

	"channelhist/pkg/config"
)

// DefaultConfigPath is read when -config is not given; a missing file means defaults
const DefaultConfigPath = "channelhist.yaml"

// usageLine is the expected invocation form
const usageLine = "Usage: channelhist [flags] <path-to-image>"

// UsageError reports a command line that does not name an image
type UsageError struct {
	Reason string

	// Err is the flag parsing error, if any
	Err error
}

func (e *UsageError) Error() string {
	if e.Reason == "" {
		return usageLine
	}
	return e.Reason + "\n" + usageLine
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// ParseArgs parses the command line (without the program name) into
// parameters. Flags override the values of the loaded configuration file.
// Flag errors and a missing image path are reported as *UsageError.
func ParseArgs(args []string, output io.Writer) (*Params, error) {
	fs := flag.NewFlagSet("channelhist", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintln(output, usageLine)
		fmt.Fprintln(output, "Flags:")
		fs.PrintDefaults()
	}

	configPath := fs.String("config", DefaultConfigPath, "YAML configuration file")
	writeConfig := fs.String("write-config", "", "write the default configuration to this path and exit")
	figurePath := fs.String("out", "", "save the figure as PNG")
	stlPrefix := fs.String("stl", "", "save one STL mesh per channel as <prefix>_c<N>.stl")
	stlZScale := fs.Float64("stl-zscale", 1, "scale applied to bar heights in STL meshes")
	histogramPath := fs.String("histogram", "", "save the 2D intensity histogram as PNG")
	planesDir := fs.String("planes", "", "save each channel as a grayscale PNG in this directory")
	noWindow := fs.Bool("no-window", false, "do not open the interactive window")
	maxSize := fs.Int("max-size", 0, "shrink images whose longest side exceeds this (0 keeps raw intensities)")
	crop := fs.String("crop", "", "plot only the region x,y,w,h")
	elevation := fs.Float64("elev", 30, "camera elevation in degrees")
	azimuth := fs.Float64("azim", -60, "camera azimuth in degrees")
	quiet := fs.Bool("quiet", false, "only report errors")

	if err := fs.Parse(args); err != nil {
		return nil, &UsageError{Reason: err.Error(), Err: err}
	}

	params := &Params{WriteConfig: *writeConfig}
	if params.WriteConfig != "" {
		return params, nil
	}

	if fs.NArg() < 1 {
		return nil, &UsageError{}
	}
	if fs.NArg() > 1 {
		return nil, &UsageError{Reason: fmt.Sprintf("expected one image path, got %d", fs.NArg())}
	}
	params.ImagePath = fs.Arg(0)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		return nil, err
	}

	// Apply only the flags that were given explicitly
	var flagErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "out":
			cfg.Output.FigurePath = *figurePath
		case "stl":
			cfg.Output.STLPrefix = *stlPrefix
		case "stl-zscale":
			cfg.Output.STLZScale = *stlZScale
		case "histogram":
			cfg.Output.HistogramPath = *histogramPath
		case "planes":
			cfg.Output.PlanesDir = *planesDir
		case "no-window":
			cfg.Output.Window = !*noWindow
		case "max-size":
			cfg.Decode.MaxDimension = *maxSize
		case "elev":
			cfg.Figure.Elevation = *elevation
		case "azim":
			cfg.Figure.Azimuth = *azimuth
		case "quiet":
			cfg.Output.Verbose = !*quiet
		case "crop":
			params.Region, flagErr = ParseRegion(*crop)
		}
	})
	if flagErr != nil {
		return nil, &UsageError{Reason: flagErr.Error()}
	}
	if err := cfg.Validate(); err != nil {
		return nil, &UsageError{Reason: err.Error()}
	}

	params.Config = cfg
	return params, nil
}

// ParseRegion parses "x,y,w,h" into a rectangle
func ParseRegion(s string) (image.Rectangle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, fmt.Errorf("invalid region %q: expected x,y,w,h", s)
	}

	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return image.Rectangle{}, fmt.Errorf("invalid region %q: %w", s, err)
		}
		v[i] = n
	}
	if v[0] < 0 || v[1] < 0 || v[2] <= 0 || v[3] <= 0 {
		return image.Rectangle{}, fmt.Errorf("invalid region %q: origin must be non-negative and size positive", s)
	}

	return image.Rect(v[0], v[1], v[0]+v[2], v[1]+v[3]), nil
}
