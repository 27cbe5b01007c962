package console

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
)

func TestFormatScore(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.4142, "0.41"},
		{0.4151, "0.42"},
		{0.5, "0.5"},
		{6.0, "6"},
		{5.996, "6"},
		{0, "0"},
		{-0.001, "0"},
		{-0.256, "-0.26"},
		{1.0, "1"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatScore(tt.in))
		})
	}
}

func TestFormatOptionalInteger(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.6812, ".68"},
		{0.7, ".7"},
		{1.5, "1.5"},
		{12.3456, "12.35"},
		{0, ""},
		{0.001, ""},
		{-0.25, "-.25"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatOptionalInteger(tt.in))
		})
	}
}

func TestPrintHeaderPlain(t *testing.T) {
	var buf bytes.Buffer
	PrintHeader(&buf, "Tasting wine with Go")
	assert.Equal(t, "-----Tasting wine with Go------\n\n", buf.String())
}

func TestStyleForNonTerminal(t *testing.T) {
	s := StyleFor(&bytes.Buffer{})
	assert.False(t, s.Color)
	assert.Equal(t, DefaultWidth, s.Width)
}

func TestScopedResetsStyle(t *testing.T) {
	var buf bytes.Buffer
	s := Style{Color: true, Width: 10}

	func() {
		restore := s.Scoped(&buf)
		defer restore()
		buf.WriteString("x")
	}()
	assert.Equal(t, ansiHeader+"x"+ansiReset, buf.String())

	buf.Reset()
	restore := Style{}.Scoped(&buf)
	restore()
	assert.Empty(t, buf.String())
}

func TestWaitForEnter(t *testing.T) {
	assert.NoError(t, WaitForEnter(strings.NewReader("\n")))
	assert.NoError(t, WaitForEnter(strings.NewReader("")))
	assert.Error(t, WaitForEnter(iotest.ErrReader(errors.New("closed"))))
}
