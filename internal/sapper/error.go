package sapper

import "errors"

var ErrInvalidDifficulty = errors.New("invalid difficulty")
