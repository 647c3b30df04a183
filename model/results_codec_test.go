package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suvrajeet01/hyperspy/errs"
	"github.com/suvrajeet01/hyperspy/format"
)

func codecTestStore(t *testing.T) *ResultStore {
	t.Helper()
	store, err := NewResultStore([]int{2, 2}, []string{"peak.amplitude", "peak.centre"})
	require.NoError(t, err)

	require.NoError(t, store.Put([]int{0, 0}, convergedResult([]float64{5, 7})))
	require.NoError(t, store.Put([]int{0, 1}, convergedResult([]float64{4.5, 7.25})))
	require.NoError(t, store.Put([]int{1, 0}, &FitResult{
		Values:     []float64{0, 0},
		Converged:  false,
		Iterations: 300,
	}))
	// Position {1,1} deliberately left unfitted.
	return store
}

func assertStoresEqual(t *testing.T, want, got *ResultStore) {
	t.Helper()

	assert.Equal(t, want.NavShape(), got.NavShape())
	assert.Equal(t, want.Labels(), got.Labels())
	assert.Equal(t, want.FittedCount(), got.FittedCount())
	assert.Equal(t, want.ConvergedCount(), got.ConvergedCount())
	assert.Equal(t, want.ConvergedMap(), got.ConvergedMap())

	for p := 0; p < want.NumParameters(); p++ {
		wv, err := want.ParameterMap(p)
		require.NoError(t, err)
		gv, err := got.ParameterMap(p)
		require.NoError(t, err)
		for i := range wv {
			if math.IsNaN(wv[i]) {
				assert.True(t, math.IsNaN(gv[i]))
			} else {
				assert.Equal(t, wv[i], gv[i])
			}
		}
	}
}

func TestResultsCodecRoundTrip(t *testing.T) {
	store := codecTestStore(t)

	for _, typ := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(typ.String(), func(t *testing.T) {
			blob, err := EncodeResults(store, typ)
			require.NoError(t, err)

			decoded, err := DecodeResults(blob)
			require.NoError(t, err)
			assertStoresEqual(t, store, decoded)

			res, err := decoded.Get([]int{1, 0})
			require.NoError(t, err)
			assert.False(t, res.Converged)
			assert.Equal(t, 300, res.Iterations)

			_, err = decoded.Get([]int{1, 1})
			require.ErrorIs(t, err, errs.ErrNotFitted)
		})
	}
}

func TestResultsCodecCompressionShrinksUniformData(t *testing.T) {
	store, err := NewResultStore([]int{16, 16}, []string{"a", "b", "c"})
	require.NoError(t, err)
	for i := 0; i < 16; i++ {
		for j := 0; j < 16; j++ {
			require.NoError(t, store.Put([]int{i, j}, &FitResult{
				Values:    []float64{1, 2, 3},
				StdErrs:   []float64{0.1, 0.1, 0.1},
				Converged: true,
			}))
		}
	}

	plain, err := EncodeResults(store, format.CompressionNone)
	require.NoError(t, err)
	packed, err := EncodeResults(store, format.CompressionZstd)
	require.NoError(t, err)
	assert.Less(t, len(packed), len(plain)/2)
}

func TestResultsCodecInvalidCompression(t *testing.T) {
	store := codecTestStore(t)
	_, err := EncodeResults(store, format.CompressionType(0x7f))
	require.Error(t, err)
}

func TestResultsCodecBadMagic(t *testing.T) {
	store := codecTestStore(t)
	blob, err := EncodeResults(store, format.CompressionNone)
	require.NoError(t, err)

	blob[0] ^= 0xff
	_, err = DecodeResults(blob)
	require.ErrorIs(t, err, errs.ErrInvalidMagicNumber)
}

func TestResultsCodecBadVersion(t *testing.T) {
	store := codecTestStore(t)
	blob, err := EncodeResults(store, format.CompressionNone)
	require.NoError(t, err)

	blob[4] = 0x7f
	_, err = DecodeResults(blob)
	require.ErrorIs(t, err, errs.ErrUnsupportedVersion)
}

func TestResultsCodecTruncated(t *testing.T) {
	store := codecTestStore(t)
	blob, err := EncodeResults(store, format.CompressionNone)
	require.NoError(t, err)

	_, err = DecodeResults(blob[:8])
	require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)

	_, err = DecodeResults(blob[:len(blob)-3])
	require.ErrorIs(t, err, errs.ErrInvalidPayloadSize)
}

func TestResultsCodecLabelCorruption(t *testing.T) {
	store := codecTestStore(t)
	blob, err := EncodeResults(store, format.CompressionNone)
	require.NoError(t, err)

	// Flip a byte inside the first label: the stored column ID no longer
	// matches.
	labelOff := 12 + 4*2 + 8*2 + 2
	blob[labelOff] ^= 0x01
	_, err = DecodeResults(blob)
	require.ErrorIs(t, err, errs.ErrHashCollision)
}
