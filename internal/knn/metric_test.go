package knn

import (
	"math/rand"
	"testing"
)

func TestEuclideanSquared(t *testing.T) {
	m, err := LookupMetric("EUC")
	if err != nil {
		t.Fatalf("LookupMetric: %v", err)
	}
	a := DataPoint{Features: []float64{0, 0}}
	b := DataPoint{Features: []float64{3, 4}}
	d, err := m(a, b)
	if err != nil {
		t.Fatalf("metric: %v", err)
	}
	if d != 25 {
		t.Fatalf("expected squared euclidean 25, got %v", d)
	}
}

func TestManhattan(t *testing.T) {
	m, _ := LookupMetric("MAN")
	a := DataPoint{Features: []float64{1, 1}}
	b := DataPoint{Features: []float64{4, 5}}
	d, err := m(a, b)
	if err != nil {
		t.Fatalf("metric: %v", err)
	}
	if d != 7 {
		t.Fatalf("expected manhattan 7, got %v", d)
	}
}

func TestChebyshev(t *testing.T) {
	m, _ := LookupMetric("CHE")
	a := DataPoint{Features: []float64{1, 1}}
	b := DataPoint{Features: []float64{4, 5}}
	d, err := m(a, b)
	if err != nil {
		t.Fatalf("metric: %v", err)
	}
	if d != 4 {
		t.Fatalf("expected chebyshev 4, got %v", d)
	}
}

func TestLookupMetric_Unknown(t *testing.T) {
	if _, err := LookupMetric("XYZ"); err != ErrUnknownMetric {
		t.Fatalf("expected ErrUnknownMetric, got %v", err)
	}
}

func TestMetric_ArityMismatch(t *testing.T) {
	m, _ := LookupMetric("EUC")
	a := DataPoint{Features: []float64{1, 2}}
	b := DataPoint{Features: []float64{1}}
	if _, err := m(a, b); err != ErrArityMismatch {
		t.Fatalf("expected ErrArityMismatch, got %v", err)
	}
}

// TestMetricProperties checks symmetry, identity, and non-negativity
// for every registered metric across random point pairs, rather than
// fixed examples alone.
func TestMetricProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for _, name := range []string{"EUC", "MAN", "CHE"} {
		name := name
		t.Run(name, func(t *testing.T) {
			m, err := LookupMetric(name)
			if err != nil {
				t.Fatalf("LookupMetric(%s): %v", name, err)
			}

			for i := 0; i < 100; i++ {
				arity := 1 + rng.Intn(4)
				a := randomDataPoint(rng, arity)
				b := randomDataPoint(rng, arity)

				dab, err := m(a, b)
				if err != nil {
					t.Fatalf("d(a,b): %v", err)
				}
				if dab < 0 {
					t.Fatalf("expected non-negative distance, got %v (a=%v b=%v)", dab, a.Features, b.Features)
				}

				dba, err := m(b, a)
				if err != nil {
					t.Fatalf("d(b,a): %v", err)
				}
				if dab != dba {
					t.Fatalf("expected symmetry, d(a,b)=%v d(b,a)=%v (a=%v b=%v)", dab, dba, a.Features, b.Features)
				}

				daa, err := m(a, a)
				if err != nil {
					t.Fatalf("d(a,a): %v", err)
				}
				if daa != 0 {
					t.Fatalf("expected d(p,p)==0, got %v (a=%v)", daa, a.Features)
				}
			}
		})
	}
}

func randomDataPoint(rng *rand.Rand, arity int) DataPoint {
	f := make([]float64, arity)
	for i := range f {
		f[i] = rng.Float64()*200 - 100
	}
	return DataPoint{Features: f}
}

func TestKnownMetric(t *testing.T) {
	for _, name := range []string{"EUC", "MAN", "CHE"} {
		if !KnownMetric(name) {
			t.Errorf("expected %s to be known", name)
		}
	}
	if KnownMetric("NOPE") {
		t.Error("expected NOPE to be unknown")
	}
}
