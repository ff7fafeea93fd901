package service

import "errors"

// ErrPermissionDenied indicates the acting member lacks the role required for
// the operation.
var ErrPermissionDenied = errors.New("permission denied")

// ErrPortfolioNotFound indicates the referenced portfolio does not exist.
var ErrPortfolioNotFound = errors.New("portfolio not found")

// ErrMemberNotFound indicates the referenced member does not exist.
var ErrMemberNotFound = errors.New("member not found")

// ErrSubmissionNotFound indicates the referenced submission does not exist.
var ErrSubmissionNotFound = errors.New("submission not found")

// ErrShoutoutNotFound indicates the referenced shoutout does not exist.
var ErrShoutoutNotFound = errors.New("shoutout not found")

// ErrInvalidRequest flags structural problems caught before grading runs:
// submissions outside the valid window, missing required text, or a
// structurally required category left empty. Wrap it with a descriptive
// message.
var ErrInvalidRequest = errors.New("invalid request")
