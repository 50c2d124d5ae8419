package errors

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// Code classifies an error independently of the transport it leaves through
type Code string

// Error codes
const (
	CodeOK                 Code = "OK"
	CodeCanceled           Code = "CANCELED"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeDeadlineExceeded   Code = "DEADLINE_EXCEEDED"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeUnimplemented      Code = "UNIMPLEMENTED"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"
)

type codeMapping struct {
	http int
	grpc codes.Code
}

var mappings = map[Code]codeMapping{
	CodeOK:                 {http.StatusOK, codes.OK},
	CodeCanceled:           {http.StatusRequestTimeout, codes.Canceled},
	CodeInvalidArgument:    {http.StatusBadRequest, codes.InvalidArgument},
	CodeDeadlineExceeded:   {http.StatusGatewayTimeout, codes.DeadlineExceeded},
	CodeNotFound:           {http.StatusNotFound, codes.NotFound},
	CodeAlreadyExists:      {http.StatusConflict, codes.AlreadyExists},
	CodeFailedPrecondition: {http.StatusUnprocessableEntity, codes.FailedPrecondition},
	CodeUnimplemented:      {http.StatusNotImplemented, codes.Unimplemented},
	CodeInternal:           {http.StatusInternalServerError, codes.Internal},
	CodeUnavailable:        {http.StatusServiceUnavailable, codes.Unavailable},
}

// String returns the code as text
func (c Code) String() string {
	return string(c)
}

// HTTPStatus returns the HTTP status for the code. Unknown codes map to 500.
func (c Code) HTTPStatus() int {
	if m, ok := mappings[c]; ok {
		return m.http
	}
	return http.StatusInternalServerError
}

// GRPCCode returns the gRPC code for the code. Unknown codes map to Unknown.
func (c Code) GRPCCode() codes.Code {
	if m, ok := mappings[c]; ok {
		return m.grpc
	}
	return codes.Unknown
}

// codeFromGRPC maps a gRPC code back, defaulting to CodeInternal
func codeFromGRPC(gc codes.Code) Code {
	for code, m := range mappings {
		if m.grpc == gc {
			return code
		}
	}
	return CodeInternal
}
