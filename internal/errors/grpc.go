package errors

import (
	"errors"
	"fmt"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Domain is reported in the ErrorInfo detail of every status produced here
const Domain = "statblock-api"

// ToGRPCError converts err to a gRPC status error. Metadata travels as an
// errdetails.ErrorInfo whose Reason is the error code.
func ToGRPCError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var e *Error
	if !errors.As(err, &e) {
		return status.Error(codes.Internal, err.Error())
	}

	st := status.New(e.Code.GRPCCode(), e.Message)
	info := &errdetails.ErrorInfo{
		Reason: e.Code.String(),
		Domain: Domain,
	}
	if len(e.Meta) > 0 {
		info.Metadata = make(map[string]string, len(e.Meta))
		for k, v := range e.Meta {
			info.Metadata[k] = fmt.Sprint(v)
		}
	}
	if withDetails, detailErr := st.WithDetails(info); detailErr == nil {
		st = withDetails
	}

	return st.Err()
}

// FromGRPCError converts a gRPC status error back into an *Error.
// Errors without a status are returned unchanged.
func FromGRPCError(err error) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	out := &Error{
		Code:    codeFromGRPC(st.Code()),
		Message: st.Message(),
	}
	for _, detail := range st.Details() {
		info, ok := detail.(*errdetails.ErrorInfo)
		if !ok || info.GetDomain() != Domain {
			continue
		}
		if info.GetReason() != "" {
			out.Code = Code(info.GetReason())
		}
		for k, v := range info.GetMetadata() {
			out.WithMeta(k, v)
		}
		break
	}

	return out
}
