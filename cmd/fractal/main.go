// fractal is a CLI for the fractal generation core: it renders one of the
// four variants to a PNG file, driven by flags and/or a JSON/YAML config.
package main

import (
	"context"
	"fmt"
	"image/png"
	"log"
	"os"
	"os/signal"
	"sort"
	"time"

	"github.com/spf13/cobra"

	fractal "github.com/fractalgen/fractal"
)

var (
	configPath string
	outPath    string
	variant    string
	view       string
	depth      int
	workers    int

	width         int
	height        int
	maxIterations int
	zoom          float64
	centerX       float64
	centerY       float64
	scheme        string
	juliaRe       float64
	juliaIm       float64
	escapeRadius  float64
)

var rootCmd = &cobra.Command{
	Use:   "fractal",
	Short: "escape-time and recursive fractal renderer",
	Long: `fractal renders Mandelbrot and Julia sets, the Sierpinski gasket and the
Heighway dragon curve to PNG files.

Configuration comes from an optional JSON/YAML file plus flag overrides;
escape-time variants can render on multiple workers.`,
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "render a fractal to a PNG file",
	RunE:  runRender,
}

var viewsCmd = &cobra.Command{
	Use:   "views",
	Short: "list named Mandelbrot views and Julia constants",
	Run:   runViews,
}

func init() {
	f := renderCmd.Flags()
	f.StringVarP(&configPath, "config", "c", "", "config file (.json, .yaml)")
	f.StringVarP(&outPath, "out", "o", "fractal.png", "output PNG file")
	f.StringVarP(&variant, "variant", "t", "mandelbrot", "mandelbrot, julia, sierpinski or dragon")
	f.StringVar(&view, "view", "", "named Mandelbrot view (see 'fractal views')")
	f.IntVar(&depth, "depth", -1, "recursion depth for sierpinski/dragon (-1 for default)")
	f.IntVar(&workers, "workers", 1, "worker goroutines for escape-time variants")

	f.IntVar(&width, "width", 0, "raster width")
	f.IntVar(&height, "height", 0, "raster height")
	f.IntVar(&maxIterations, "iterations", 0, "iteration cap")
	f.Float64Var(&zoom, "zoom", 0, "zoom factor")
	f.Float64Var(&centerX, "center-x", 0, "viewport center, real part")
	f.Float64Var(&centerY, "center-y", 0, "viewport center, imaginary part")
	f.StringVar(&scheme, "scheme", "", "color scheme: rainbow, fire, ocean, grayscale")
	f.Float64Var(&juliaRe, "julia-re", 0, "julia constant, real part")
	f.Float64Var(&juliaIm, "julia-im", 0, "julia constant, imaginary part")
	f.Float64Var(&escapeRadius, "escape-radius", 0, "escape magnitude threshold")

	rootCmd.AddCommand(renderCmd, viewsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	v, err := fractal.ParseVariant(variant)
	if err != nil {
		return err
	}

	log.Printf("rendering %s at %dx%d, %d iterations", v, cfg.Width, cfg.Height, cfg.MaxIterations)
	start := time.Now()

	ras, err := render(ctx, cfg, v)
	if err != nil {
		return err
	}
	log.Printf("render took %s", time.Since(start))

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, ras.RGBA()); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}

	log.Printf("saved to %q", outPath)
	return nil
}

func render(ctx context.Context, cfg fractal.Config, v fractal.Variant) (*fractal.Raster, error) {
	// Only the escape-time variants are tileable; the recursive ones keep
	// their explicit depth and render single-threaded.
	if workers > 1 && (v == fractal.VariantMandelbrot || v == fractal.VariantJulia) {
		return fractal.RenderParallel(ctx, cfg, v, workers)
	}

	var g fractal.Generator
	var err error
	switch {
	case v == fractal.VariantSierpinski && depth >= 0:
		g = fractal.NewSierpinski(cfg, depth)
	case v == fractal.VariantDragon && depth >= 0:
		g = fractal.NewDragonCurve(cfg, depth)
	default:
		g, err = fractal.New(v, cfg)
		if err != nil {
			return nil, err
		}
	}
	return g.Generate(ctx)
}

// buildConfig layers file config and flag overrides over the defaults.
// Only flags the user actually set override the file.
func buildConfig(cmd *cobra.Command) (fractal.Config, error) {
	cfg := fractal.DefaultConfig()

	if configPath != "" {
		var err error
		cfg, err = fractal.LoadConfig(configPath)
		if err != nil {
			return fractal.Config{}, err
		}
	}

	if view != "" {
		v, ok := fractal.Views[view]
		if !ok {
			return fractal.Config{}, fmt.Errorf("unknown view %q", view)
		}
		cfg = v.Apply(cfg)
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("iterations") {
		cfg.MaxIterations = maxIterations
	}
	if flags.Changed("zoom") {
		cfg.Zoom = zoom
	}
	if flags.Changed("center-x") {
		cfg.CenterX = centerX
	}
	if flags.Changed("center-y") {
		cfg.CenterY = centerY
	}
	if flags.Changed("scheme") {
		s, err := fractal.ParseScheme(scheme)
		if err != nil {
			return fractal.Config{}, err
		}
		cfg.Scheme = s
	}
	if flags.Changed("julia-re") {
		cfg.JuliaC.Real = juliaRe
	}
	if flags.Changed("julia-im") {
		cfg.JuliaC.Imag = juliaIm
	}
	if flags.Changed("escape-radius") {
		cfg.EscapeRadius = escapeRadius
	}

	return cfg, cfg.Validate()
}

func runViews(cmd *cobra.Command, args []string) {
	names := make([]string, 0, len(fractal.Views))
	for name := range fractal.Views {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("Mandelbrot views:")
	for _, name := range names {
		v := fractal.Views[name]
		fmt.Printf("  %-12s center (%g, %g), zoom %g\n", name, v.CenterX, v.CenterY, v.Zoom)
	}

	names = names[:0]
	for name := range fractal.JuliaConstants {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("Julia constants:")
	for _, name := range names {
		c := fractal.JuliaConstants[name]
		fmt.Printf("  %-12s %g%+gi\n", name, c.Real, c.Imag)
	}
}
