package domain

import "errors"

var (
	ErrUnknownEmotion = errors.New("unknown emotion")
	ErrInvalidDate    = errors.New("invalid date")
	ErrFutureDate     = errors.New("cannot record a mood for a future date")
	ErrMoodNotFound   = errors.New("no mood recorded for this date")
)
