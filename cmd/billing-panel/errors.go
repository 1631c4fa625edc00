package main

import "errors"

var (
	ErrUnknownProvider = errors.New("unknown billing provider")
	ErrRedisRequired   = errors.New("REDIS_URL is required")
	ErrEmptyRecord     = errors.New("empty subscription record")
)
