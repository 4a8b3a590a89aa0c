package odds

import (
	"math"
	"testing"
)

func TestImpliedProbabilityFavorite(t *testing.T) {
	got := ImpliedProbability(-110)
	want := 110.0 / 210.0
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("ImpliedProbability(-110) = %v, want %v", got, want)
	}
}

func TestImpliedProbabilityUnderdog(t *testing.T) {
	got := ImpliedProbability(150)
	if math.Abs(got-0.4) > 1e-12 {
		t.Errorf("ImpliedProbability(+150) = %v, want 0.4", got)
	}
}

func TestImpliedProbabilityZeroOdds(t *testing.T) {
	if got := ImpliedProbability(0); got != NeutralProbability {
		t.Errorf("ImpliedProbability(0) = %v, want neutral %v", got, NeutralProbability)
	}
}

func TestAmericanToDecimal(t *testing.T) {
	if got := AmericanToDecimal(150); math.Abs(got-2.5) > 1e-12 {
		t.Errorf("AmericanToDecimal(+150) = %v, want 2.5", got)
	}
	if got := AmericanToDecimal(-110); math.Abs(got-(100.0/110.0+1)) > 1e-12 {
		t.Errorf("AmericanToDecimal(-110) = %v", got)
	}
	if got := AmericanToDecimal(0); got <= 1 {
		t.Errorf("AmericanToDecimal(0) = %v, want > 1", got)
	}
}

func TestProbabilityToAmericanSignConvention(t *testing.T) {
	// Favorites get negative odds, underdogs positive.
	if got := ProbabilityToAmerican(0.6); got >= 0 {
		t.Errorf("ProbabilityToAmerican(0.6) = %d, want negative (favorite)", got)
	}
	if got := ProbabilityToAmerican(0.4); got <= 0 {
		t.Errorf("ProbabilityToAmerican(0.4) = %d, want positive (underdog)", got)
	}
}

func TestProbabilityToAmericanRoundTrip(t *testing.T) {
	// For any odds with |o| >= 100, implied -> american reproduces the
	// original within one odds unit. -100 is skipped: it encodes the same
	// even-money probability as +100 and normalizes to the positive form.
	for o := 100; o <= 2000; o += 7 {
		candidates := []int{o}
		if o > 100 {
			candidates = append(candidates, -o)
		}
		for _, american := range candidates {
			back := ProbabilityToAmerican(ImpliedProbability(american))
			if d := back - american; d < -1 || d > 1 {
				t.Fatalf("round trip %d -> %v -> %d", american, ImpliedProbability(american), back)
			}
		}
	}
	if got := ProbabilityToAmerican(ImpliedProbability(-100)); got != 100 {
		t.Errorf("even money normalizes to +100, got %d", got)
	}
}

func TestProbabilityToAmericanDegenerateInput(t *testing.T) {
	for _, p := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), -3, 0, 1, 42} {
		got := ProbabilityToAmerican(p)
		// Must always be a usable price.
		if got == 0 {
			t.Errorf("ProbabilityToAmerican(%v) = 0", p)
		}
		back := ImpliedProbability(got)
		if back < MinProbability || back > MaxProbability {
			t.Errorf("ProbabilityToAmerican(%v) = %d implies %v, outside clamp range", p, got, back)
		}
	}
}

func TestClampProbability(t *testing.T) {
	if got := ClampProbability(0); got != MinProbability {
		t.Errorf("ClampProbability(0) = %v, want %v", got, MinProbability)
	}
	if got := ClampProbability(1); got != MaxProbability {
		t.Errorf("ClampProbability(1) = %v, want %v", got, MaxProbability)
	}
	if got := ClampProbability(math.NaN()); got != NeutralProbability {
		t.Errorf("ClampProbability(NaN) = %v, want %v", got, NeutralProbability)
	}
	if got := ClampProbability(0.42); got != 0.42 {
		t.Errorf("ClampProbability(0.42) = %v, want unchanged", got)
	}
}

func TestParseAmerican(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"+150", 150, true},
		{"-110", -110, true},
		{"150", 150, true},
		{" +120 ", 120, true},
		{"0", 0, false},
		{"", 0, false},
		{"abc", 0, false},
		{"+1.5", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseAmerican(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("ParseAmerican(%q) = (%d, %v), want (%d, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestImpliedProbabilityStringFallback(t *testing.T) {
	if got := ImpliedProbabilityString("not-odds"); got != NeutralProbability {
		t.Errorf("malformed string should fall back to %v, got %v", NeutralProbability, got)
	}
	if got := ImpliedProbabilityString("+150"); math.Abs(got-0.4) > 1e-12 {
		t.Errorf("ImpliedProbabilityString(+150) = %v, want 0.4", got)
	}
}

func TestFormatAmerican(t *testing.T) {
	if got := FormatAmerican(150); got != "+150" {
		t.Errorf("FormatAmerican(150) = %q", got)
	}
	if got := FormatAmerican(-110); got != "-110" {
		t.Errorf("FormatAmerican(-110) = %q", got)
	}
}
