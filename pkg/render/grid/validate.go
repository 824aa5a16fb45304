package grid

import (
	apperrors "github.com/matzehuels/mazegen/pkg/errors"
)

// Validate checks that a rows×cols maze fits in the frame with at least one
// unit of floor per cell.
func Validate(rows, cols int, frameWidth, frameHeight, margin float64) error {
	if margin < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "margin must not be negative, got %g", margin)
	}
	if frameWidth <= 0 || frameHeight <= 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "frame must be positive, got %gx%g", frameWidth, frameHeight)
	}
	if rows < 1 || cols < 1 {
		return apperrors.New(apperrors.ErrCodeInvalidDimensions, "maze must have at least one cell, got %dx%d", rows, cols)
	}
	cw := (frameWidth - margin) / float64(cols)
	ch := (frameHeight - margin) / float64(rows)
	if cw-margin < 1 || ch-margin < 1 {
		return apperrors.New(apperrors.ErrCodeInvalidInput,
			"%dx%d maze does not fit a %gx%g frame with margin %g (cells would be %.2fx%.2f)",
			rows, cols, frameWidth, frameHeight, margin, cw, ch)
	}
	return nil
}
