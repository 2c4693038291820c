package service

import "errors"

var (
	ErrEmptyQuery    = errors.New("search query is empty")
	ErrInvalidRating = errors.New("invalid rating or review")
)
