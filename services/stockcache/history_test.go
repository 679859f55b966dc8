package stockcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeHistory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want []float64
	}{
		{"empty", "", []float64{}},
		{"plain list", "1,2.5,3", []float64{1, 2.5, 3}},
		{"json style brackets", "[100.5, 101.25]", []float64{100.5, 101.25}},
		{"braces and spaces", " { 4 , 5 } ", []float64{4, 5}},
		{"malformed tokens dropped", "1,abc,,2,NaN,Inf,-Inf,3", []float64{1, 2, 3}},
		{"only garbage", "x,y,z", []float64{}},
		{"negative and exponent", "-1.5,2e2", []float64{-1.5, 200}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, DecodeHistory(tt.raw))
		})
	}
}

func TestDecodeHistory_KeepsNewestPoints(t *testing.T) {
	t.Parallel()

	// Arrange
	points := make([]float64, MaxHistoryPoints+5)
	for i := range points {
		points[i] = float64(i)
	}

	// Act
	got := DecodeHistory(EncodeHistory(points))

	// Assert
	assert.Len(t, got, MaxHistoryPoints)
	assert.Equal(t, float64(5), got[0])
	assert.Equal(t, float64(MaxHistoryPoints+4), got[len(got)-1])
}

func TestEncodeHistory(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", EncodeHistory(nil))
	assert.Equal(t, "101.5,99.01,100", EncodeHistory([]float64{101.5, 99.01, 100}))
	assert.Equal(t, "0.1,0.3", EncodeHistory([]float64{0.1, 0.3}))
}
