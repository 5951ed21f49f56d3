package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidGame = errors.New("game does not exist")
	ErrInvalidMark = errors.New("invalid player mark")
	ErrInvalidMove = errors.New("invalid move")

	ErrGameFinished = fmt.Errorf("%w: game is already finished", ErrInvalidMove)
)
