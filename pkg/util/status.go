package util

import (
	"context"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// StatusWrap prepends a string to the message of an existing error,
// while preserving its gRPC status code. Errors that are not gRPC
// status errors are converted to codes.Unknown.
func StatusWrap(err error, msg string) error {
	s := status.Convert(err)
	return status.Errorf(s.Code(), "%s: %s", msg, s.Message())
}

// StatusWrapf is identical to StatusWrap, except that it constructs
// the prefix using a format string.
func StatusWrapf(err error, format string, args ...interface{}) error {
	return StatusWrap(err, fmt.Sprintf(format, args...))
}

// StatusWrapWithCode is identical to StatusWrap, except that the
// resulting error uses a different status code.
func StatusWrapWithCode(err error, code codes.Code, msg string) error {
	return status.Errorf(code, "%s: %s", msg, status.Convert(err).Message())
}

// StatusFromContext converts the error associated with a context to a
// gRPC Status error. This function ensures that errors such as
// context.Canceled are converted to equivalent gRPC status codes.
func StatusFromContext(ctx context.Context) error {
	switch err := ctx.Err(); err {
	case nil:
		return nil
	case context.Canceled:
		return status.Error(codes.Canceled, err.Error())
	case context.DeadlineExceeded:
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Unknown, err.Error())
	}
}
