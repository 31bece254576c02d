package imaging

import "math"

// CalculatePSNR measures the distortion embedding introduced into the
// carrier, in dB. Buffers of different or zero length yield 0;
// identical buffers yield +Inf.
func CalculatePSNR(original, modified []byte) float64 {
	if len(original) != len(modified) {
		return 0.0
	}

	if len(original) == 0 {
		return 0.0
	}

	var mse float64
	for i := range original {
		diff := float64(original[i]) - float64(modified[i])
		mse += diff * diff
	}
	mse /= float64(len(original))

	// If MSE is 0, the images are identical
	if mse == 0 {
		return math.Inf(1)
	}

	// PSNR = 20 * log10(MAX_SIGNAL_VALUE / sqrt(MSE))
	// For 8-bit pixel elements, MAX_SIGNAL_VALUE = 255
	maxSignalValue := 255.0
	psnr := 20 * math.Log10(maxSignalValue/math.Sqrt(mse))

	return psnr
}

// ValidatePSNR reports whether psnr meets the given quality threshold.
func ValidatePSNR(psnr float64, threshold float64) bool {
	if math.IsInf(psnr, 1) {
		return true
	}
	return psnr >= threshold
}
