package fractal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in   string
		want Variant
	}{
		{"mandelbrot", VariantMandelbrot},
		{"Mandelbrot", VariantMandelbrot},
		{"julia", VariantJulia},
		{"sierpinski", VariantSierpinski},
		{"DRAGON", VariantDragon},
	}
	for _, tt := range tests {
		got, err := ParseVariant(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseVariant("koch")
	assert.Error(t, err)
}

func TestNewCoversAllVariants(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 32
	cfg.Height = 24
	cfg.MaxIterations = 10

	for _, v := range []Variant{VariantMandelbrot, VariantJulia, VariantSierpinski, VariantDragon} {
		g, err := New(v, cfg)
		require.NoError(t, err, v)

		ras, err := g.Generate(context.Background())
		require.NoError(t, err, v)
		assert.Equal(t, cfg.Width, ras.Width)
		assert.Equal(t, cfg.Height, ras.Height)
		assert.Len(t, ras.Pix, 3*cfg.Width*cfg.Height)
	}

	_, err := New(Variant("koch"), cfg)
	assert.Error(t, err)
}

func TestGenerateHonorsCancellation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 64
	cfg.Height = 64
	cfg.MaxIterations = 10

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, v := range []Variant{VariantMandelbrot, VariantJulia, VariantSierpinski, VariantDragon} {
		g, err := New(v, cfg)
		require.NoError(t, err)

		ras, err := g.Generate(ctx)
		assert.ErrorIs(t, err, context.Canceled, "variant %s", v)
		assert.Nil(t, ras, "variant %s", v)
	}
}
