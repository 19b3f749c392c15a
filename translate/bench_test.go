package translate_test

import (
	"testing"

	"github.com/droplab/mfsat/schematic"
	"github.com/droplab/mfsat/translate"
)

// BenchmarkTranslate_SingleChannel measures compiling the minimal
// input-channel-output circuit. The schematic is built once; each
// iteration runs a fresh single-use Translator over it.
func BenchmarkTranslate_SingleChannel(b *testing.B) {
	sch := buildSingleChannel(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := translate.New(sch).Translate(); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkTranslate_TJunction measures compiling a droplet-generating
// T-junction, the densest constraint emitter short of an
// electrophoretic cross.
func BenchmarkTranslate_TJunction(b *testing.B) {
	sch := buildTJunction(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := translate.New(sch).Translate(); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkTranslate_EPCross measures compiling an electrophoretic cross
// with the four-analyte sample, including the symbolic differentiation of
// the concentration profiles.
func BenchmarkTranslate_EPCross(b *testing.B) {
	sch := buildEPCross(b, schematic.WithVoltage(1500))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := translate.New(sch).Translate(); err != nil {
			b.Fatal(err)
		}
	}
}
