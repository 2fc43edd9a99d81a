// Package errors provides sentinel errors for content discovery.
package errors

import "errors"

var (
	// ErrContentRootNotFound indicates the configured content root does not exist or is not a directory.
	ErrContentRootNotFound = errors.New("content root not found")

	// ErrWalkFailed indicates filesystem traversal of the content root failed.
	ErrWalkFailed = errors.New("content root walk failed")

	// ErrFileReadFailed indicates reading a discovered Markdown file failed.
	ErrFileReadFailed = errors.New("markdown file read failed")

	// ErrInvalidRelativePath indicates computing a path relative to the content root failed.
	ErrInvalidRelativePath = errors.New("invalid relative path calculation")
)
