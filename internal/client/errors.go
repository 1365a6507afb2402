package client

import "errors"

var (
	ErrNoAPIClient = errors.New("no API client provided")
	ErrSeedUser    = errors.New("seed user failed")
	ErrSeedProject = errors.New("seed project failed")
	ErrSeedVacancy = errors.New("seed vacancy failed")
)
