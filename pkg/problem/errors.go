package problem

import "errors"

// ErrInvalidProblem wraps every error about the content of a problem file.
// Failures of the reduction itself are returned with the reduce sentinels.
var ErrInvalidProblem = errors.New("problem: invalid problem")
