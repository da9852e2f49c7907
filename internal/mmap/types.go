package mmap

import "errors"

// AccessPattern provides hints to the kernel about how the data will be accessed.
type AccessPattern int

const (
	// AccessDefault is the default access pattern (no specific advice).
	AccessDefault AccessPattern = iota
	// AccessSequential expects data to be accessed sequentially.
	AccessSequential
	// AccessRandom expects data to be accessed randomly.
	AccessRandom
	// AccessWillNeed expects data to be accessed in the near future.
	AccessWillNeed
	// AccessDontNeed expects data to not be accessed in the near future.
	AccessDontNeed
)

// String returns the lowercase name used in configuration files.
func (p AccessPattern) String() string {
	switch p {
	case AccessSequential:
		return "sequential"
	case AccessRandom:
		return "random"
	case AccessWillNeed:
		return "willneed"
	case AccessDontNeed:
		return "dontneed"
	default:
		return "default"
	}
}

// ParseAccessPattern is the inverse of AccessPattern.String. The empty string maps to AccessDefault.
func ParseAccessPattern(s string) (AccessPattern, error) {
	switch s {
	case "", "default", "normal":
		return AccessDefault, nil
	case "sequential":
		return AccessSequential, nil
	case "random":
		return AccessRandom, nil
	case "willneed":
		return AccessWillNeed, nil
	case "dontneed":
		return AccessDontNeed, nil
	}
	return AccessDefault, ErrUnknownPattern
}

var (
	// ErrClosed is returned when attempting to access a closed mapping.
	ErrClosed = errors.New("mmap: mapping is closed")
	// ErrInvalidSize is returned when the file size is invalid (e.g. negative or too large).
	ErrInvalidSize = errors.New("mmap: invalid file size")
	// ErrInvalidOffset is returned when the offset is invalid (e.g. negative).
	ErrInvalidOffset = errors.New("mmap: invalid offset")
	// ErrUnknownPattern is returned by ParseAccessPattern for unrecognised names.
	ErrUnknownPattern = errors.New("mmap: unknown access pattern")
)
