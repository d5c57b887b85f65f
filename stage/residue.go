package stage

// Residue returns the amplified error 2x - c left after stage code c was
// subtracted from input x. Codes outside {-1, 0, +1} yield ErrInvalidState.
func Residue(c Code, x float64) (float64, error) {
	switch c {
	case CodeLow:
		return 2*x + 1, nil
	case CodeMid:
		return 2 * x, nil
	case CodeHigh:
		return 2*x - 1, nil
	}
	return 0, ErrInvalidState
}

// Convert runs one stage: it quantizes x with the stage's offset error,
// subtracts the code and applies the stage's residue gain error. It returns
// the selected code and table index together with the stage output.
func (c Config) Convert(t CodeTable, x float64) (code Code, index int, out float64, err error) {
	code, index = t.Quantize(x, c.OffsetError)
	r, err := Residue(code, x)
	if err != nil {
		return code, index, 0, err
	}
	return code, index, r * c.GainError, nil
}
