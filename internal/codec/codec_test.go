package codec

import (
	"fmt"
	"math"
	"net"
	"testing"

	"github.com/ehrlich-b/knn-service/internal/wire"
)

func pipeCodecs(t *testing.T) (*Codec, *Codec) {
	t.Helper()
	a, b := net.Pipe()
	return New(wire.NewTransport(a)), New(wire.NewTransport(b))
}

func TestCodec_String(t *testing.T) {
	w, r := pipeCodecs(t)
	go w.WriteString("hello, knn")
	got, err := r.ReadString()
	if err != nil {
		t.Fatalf("ReadString: %v", err)
	}
	if got != "hello, knn" {
		t.Fatalf("got %q", got)
	}
}

func TestCodec_EmptyString(t *testing.T) {
	w, r := pipeCodecs(t)
	go w.WriteString("")
	got, err := r.ReadString()
	if err != nil {
		t.Fatalf("ReadString: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestCodec_Float64RoundTrip(t *testing.T) {
	w, r := pipeCodecs(t)
	go w.WriteFloat64(3.140000000001)
	got, err := r.ReadFloat64()
	if err != nil {
		t.Fatalf("ReadFloat64: %v", err)
	}
	if got != 3.140000000001 {
		t.Fatalf("got %v", got)
	}
}

func TestCodec_DataPointRoundTrip(t *testing.T) {
	w, r := pipeCodecs(t)
	p := DataPointWire{Features: []float64{1, 2, 3.5}, Label: "cat"}
	go w.WriteDataPoint(p)
	got, err := r.ReadDataPoint()
	if err != nil {
		t.Fatalf("ReadDataPoint: %v", err)
	}
	if got.Label != p.Label || len(got.Features) != len(p.Features) {
		t.Fatalf("got %+v want %+v", got, p)
	}
	for i := range p.Features {
		if got.Features[i] != p.Features[i] {
			t.Fatalf("feature %d: got %v want %v", i, got.Features[i], p.Features[i])
		}
	}
}

func TestCodec_Float64SpecialValues(t *testing.T) {
	cases := []struct {
		name string
		v    float64
	}{
		{"NaN", math.NaN()},
		{"+Inf", math.Inf(1)},
		{"-Inf", math.Inf(-1)},
		{"+Zero", 0},
		{"-Zero", math.Copysign(0, -1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, r := pipeCodecs(t)
			go w.WriteFloat64(tc.v)
			got, err := r.ReadFloat64()
			if err != nil {
				t.Fatalf("ReadFloat64: %v", err)
			}
			// Compare bit patterns rather than ==, since NaN != NaN
			// and we still want to pin -0 vs +0.
			if math.Float64bits(got) != math.Float64bits(tc.v) {
				t.Fatalf("got bits %x, want %x (got=%v want=%v)", math.Float64bits(got), math.Float64bits(tc.v), got, tc.v)
			}
		})
	}
}

func TestCodec_EmptyFloat64Vector(t *testing.T) {
	w, r := pipeCodecs(t)
	go w.WriteFloat64Vector([]float64{})
	got, err := r.ReadFloat64Vector()
	if err != nil {
		t.Fatalf("ReadFloat64Vector: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty vector, got %v", got)
	}
}

func TestCodec_EmptyBytes(t *testing.T) {
	w, r := pipeCodecs(t)
	go w.WriteBytes([]byte{})
	got, err := r.ReadBytes()
	if err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty bytes, got %v", got)
	}
}

// TestCodec_BoundaryWidths round-trips strings and vectors right at
// and around common length boundaries: empty, single-element, and
// spanning multiple underlying reads (larger than a typical 4KB pipe
// buffer).
func TestCodec_BoundaryWidths(t *testing.T) {
	widths := []int{0, 1, 2, 255, 256, 4096, 4097, 65536}
	for _, n := range widths {
		n := n
		t.Run(fmt.Sprintf("string/%d", n), func(t *testing.T) {
			w, r := pipeCodecs(t)
			s := make([]byte, n)
			for i := range s {
				s[i] = byte('a' + i%26)
			}
			go w.WriteString(string(s))
			got, err := r.ReadString()
			if err != nil {
				t.Fatalf("ReadString: %v", err)
			}
			if got != string(s) {
				t.Fatalf("width %d: round-trip mismatch (got len %d, want len %d)", n, len(got), n)
			}
		})

		t.Run(fmt.Sprintf("vector/%d", n), func(t *testing.T) {
			w, r := pipeCodecs(t)
			v := make([]float64, n)
			for i := range v {
				v[i] = float64(i) * 1.5
			}
			go w.WriteFloat64Vector(v)
			got, err := r.ReadFloat64Vector()
			if err != nil {
				t.Fatalf("ReadFloat64Vector: %v", err)
			}
			if len(got) != len(v) {
				t.Fatalf("width %d: got len %d, want len %d", n, len(got), len(v))
			}
			for i := range v {
				if got[i] != v[i] {
					t.Fatalf("width %d: element %d: got %v want %v", n, i, got[i], v[i])
				}
			}
		})
	}
}

func TestCodec_ByteTag(t *testing.T) {
	w, r := pipeCodecs(t)
	go w.WriteByte(0x7)
	got, err := r.ReadByte()
	if err != nil {
		t.Fatalf("ReadByte: %v", err)
	}
	if got != 0x7 {
		t.Fatalf("got %x", got)
	}
}
