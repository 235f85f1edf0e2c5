package fractal

import "testing"

func TestColorInSetAlwaysBlack(t *testing.T) {
	for _, scheme := range []Scheme{SchemeRainbow, SchemeFire, SchemeOcean, SchemeGrayscale} {
		if got := colorFor(100, 100, scheme); got != black {
			t.Errorf("%s: in-set color = %v, want black", scheme, got)
		}
	}
}

func TestColorZeroIterations(t *testing.T) {
	// t=0 fixed colors: rainbow starts at hue 0 (pure red), the ramps at
	// black.
	tests := []struct {
		scheme Scheme
		want   RGB
	}{
		{SchemeRainbow, RGB{R: 255}},
		{SchemeFire, RGB{}},
		{SchemeOcean, RGB{}},
		{SchemeGrayscale, RGB{}},
	}
	for _, tt := range tests {
		if got := colorFor(0, 100, tt.scheme); got != tt.want {
			t.Errorf("%s: t=0 color = %v, want %v", tt.scheme, got, tt.want)
		}
	}
}

// The last escaping count (max−1) approaches each scheme's endpoint: fire
// and grayscale near white, ocean near (0,127,255), rainbow back near red.
func TestColorNearEndpoints(t *testing.T) {
	const maxIter = 100

	fire := colorFor(maxIter-1, maxIter, SchemeFire)
	if fire.R != 255 || fire.G != 255 || fire.B < 240 {
		t.Errorf("fire endpoint = %v, want near white", fire)
	}

	ocean := colorFor(maxIter-1, maxIter, SchemeOcean)
	if ocean.R != 0 || ocean.G < 120 || ocean.G > 127 || ocean.B < 250 {
		t.Errorf("ocean endpoint = %v, want near (0,127,255)", ocean)
	}

	gray := colorFor(maxIter-1, maxIter, SchemeGrayscale)
	if gray.R < 250 || gray.R != gray.G || gray.G != gray.B {
		t.Errorf("grayscale endpoint = %v, want near white", gray)
	}

	rainbow := colorFor(maxIter-1, maxIter, SchemeRainbow)
	if rainbow.R != 255 || rainbow.G != 0 || rainbow.B > 20 {
		t.Errorf("rainbow endpoint = %v, want near red", rainbow)
	}
}

func TestFireRampSegments(t *testing.T) {
	const maxIter = 100

	// Below the first breakpoint the fire palette is black.
	if got := colorFor(20, maxIter, SchemeFire); got != black {
		t.Errorf("fire t=0.2 = %v, want black", got)
	}

	// Red-only ramp in the second segment.
	got := colorFor(40, maxIter, SchemeFire)
	if got.G != 0 || got.B != 0 || got.R == 0 {
		t.Errorf("fire t=0.4 = %v, want red-only ramp", got)
	}

	// Red saturated, green ramping in the third segment.
	got = colorFor(60, maxIter, SchemeFire)
	if got.R != 255 || got.B != 0 || got.G == 0 {
		t.Errorf("fire t=0.6 = %v, want red+green ramp", got)
	}
}

func TestChannelClamps(t *testing.T) {
	if channel(-0.5) != 0 {
		t.Error("negative intensity must clamp to 0")
	}
	if channel(1.5) != 255 {
		t.Error("overshoot must clamp to 255")
	}
	// Truncation, not rounding: the ocean endpoint depends on it.
	if got := channel(0.5); got != 127 {
		t.Errorf("channel(0.5) = %d, want 127", got)
	}
}

func TestPaletteLUTMatchesColorFor(t *testing.T) {
	const maxIter = 64
	for _, scheme := range []Scheme{SchemeRainbow, SchemeFire, SchemeOcean, SchemeGrayscale} {
		lut := paletteLUT(scheme, maxIter)
		if len(lut) != maxIter+1 {
			t.Fatalf("%s: LUT length %d, want %d", scheme, len(lut), maxIter+1)
		}
		for i, c := range lut {
			if want := colorFor(i, maxIter, scheme); c != want {
				t.Fatalf("%s: LUT[%d] = %v, want %v", scheme, i, c, want)
			}
		}
	}
}
