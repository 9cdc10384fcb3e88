package pitch

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// autocorrDirect computes the unnormalized autocorrelation of signal at
// each lag in [minLag, maxLag], summed over the overlapping region.
// Result index 0 corresponds to minLag.
func autocorrDirect(signal []float64, minLag, maxLag int) []float64 {
	n := len(signal)
	result := make([]float64, maxLag-minLag+1)

	for lag := minLag; lag <= maxLag; lag++ {
		sum := 0.0
		for i := 0; i+lag < n; i++ {
			sum += signal[i] * signal[i+lag]
		}
		result[lag-minLag] = sum
	}

	return result
}

// autocorrFFT computes the same lag range via the Wiener-Khinchin theorem
// using mjibson/go-dsp. The signal is zero-padded to at least twice its
// length so the circular correlation equals the linear one.
func autocorrFFT(signal []float64, minLag, maxLag int) []float64 {
	n := len(signal)

	fftSize := 1
	for fftSize < 2*n {
		fftSize <<= 1
	}

	padded := make([]float64, fftSize)
	copy(padded, signal)

	spectrum := fft.FFTReal(padded)
	for i := range spectrum {
		spectrum[i] = spectrum[i] * cmplx.Conj(spectrum[i])
	}
	full := fft.IFFT(spectrum)

	result := make([]float64, maxLag-minLag+1)
	for lag := minLag; lag <= maxLag && lag < n; lag++ {
		result[lag-minLag] = real(full[lag])
	}

	return result
}
