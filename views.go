package fractal

// View is a named center/zoom position in the complex plane. Apply copies it
// onto a config without touching the other fields.
type View struct {
	CenterX float64
	CenterY float64
	Zoom    float64
}

// Apply returns cfg positioned at the view.
func (v View) Apply(cfg Config) Config {
	cfg.CenterX = v.CenterX
	cfg.CenterY = v.CenterY
	cfg.Zoom = v.Zoom
	return cfg
}

// Classic landmarks in the Mandelbrot set.
var (
	// FullSet – the whole set, the default view
	FullSet = View{CenterX: 0, CenterY: 0, Zoom: 1}

	// SeahorseValley – dense filaments and repeating “seahorse” curls
	SeahorseValley = View{CenterX: -0.75, CenterY: 0.10, Zoom: 40}

	// ElephantValley – large bulb with trunk-like tendrils
	ElephantValley = View{CenterX: -1.80, CenterY: -0.06, Zoom: 40}

	// SpiralMinibrot – small Mandelbrot copy with tight spiral arms
	SpiralMinibrot = View{CenterX: -0.74275, CenterY: 0.13175, Zoom: 2600}

	// TripleSpiral – threefold symmetric spiral structure
	TripleSpiral = View{CenterX: -0.7465, CenterY: 0.0965, Zoom: 1300}

	// ValleyOfTheDragon – deep, highly detailed spiral filaments
	ValleyOfTheDragon = View{CenterX: -0.7375, CenterY: 0.1825, Zoom: 800}

	// MinibrotInMiniSpiral – self-similar Mandelbrot copy inside a spiral arm
	MinibrotInMiniSpiral = View{CenterX: -1.73825, CenterY: -0.02275, Zoom: 2600}
)

// Views lists the named Mandelbrot views for CLI display.
var Views = map[string]View{
	"full":        FullSet,
	"seahorse":    SeahorseValley,
	"elephant":    ElephantValley,
	"minibrot":    SpiralMinibrot,
	"triple":      TripleSpiral,
	"dragon":      ValleyOfTheDragon,
	"mini-spiral": MinibrotInMiniSpiral,
}

// Well-known Julia constants.
var (
	// ClassicJulia – the default constant, a spiraling dendrite
	ClassicJulia = Complex{Real: -0.7, Imag: 0.27015}

	// Dendrite – thin branching filaments
	Dendrite = Complex{Real: 0, Imag: 1}

	// Rabbit – Douady's rabbit, three-eared bulbs
	Rabbit = Complex{Real: -0.123, Imag: 0.745}

	// Siegel – Siegel disk, smooth spiral interior
	Siegel = Complex{Real: -0.391, Imag: -0.587}
)

// JuliaConstants lists the named Julia constants for CLI display.
var JuliaConstants = map[string]Complex{
	"classic":  ClassicJulia,
	"dendrite": Dendrite,
	"rabbit":   Rabbit,
	"siegel":   Siegel,
}
