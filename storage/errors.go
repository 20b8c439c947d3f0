package storage

import "errors"

var (
	// Mount table errors
	ErrNotMounted     = errors.New("storage: path not mounted")
	ErrAlreadyMounted = errors.New("storage: path already mounted")
	ErrMountBusy      = errors.New("storage: mount point busy")
	ErrMountFailed    = errors.New("storage: mount failed")

	// File errors
	ErrNotExist = errors.New("storage: file does not exist")
	ErrReadOnly = errors.New("storage: read-only filesystem")
	ErrInvalid  = errors.New("storage: invalid argument")
)
