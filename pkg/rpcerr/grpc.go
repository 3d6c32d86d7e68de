package rpcerr

import (
	"strconv"

	"github.com/Nest-Commerce-Microservices/products-ms/pkg/utils"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/status"
)

const (
	ErrorDomain   = "products-ms"
	statusMetaKey = "status"
)

// GRPCStatus implements the interface status.FromError looks for, so a *Error
// returned from a handler reaches the client with a matching code. The HTTP
// status travels in an ErrorInfo detail.
func (e *Error) GRPCStatus() *status.Status {
	st := status.New(utils.HTTPToGRPCCode(e.Status), e.Message)

	withDetails, err := st.WithDetails(&errdetails.ErrorInfo{
		Reason:   strconv.Itoa(e.Status),
		Domain:   ErrorDomain,
		Metadata: map[string]string{statusMetaKey: strconv.Itoa(e.Status)},
	})
	if err != nil {
		return st
	}

	return withDetails
}

// FromStatus rebuilds a normalized error from a gRPC error. Without an
// ErrorInfo detail the status is derived from the gRPC code.
func FromStatus(err error) (*Error, bool) {
	st, ok := status.FromError(err)
	if !ok || st == nil {
		return nil, false
	}

	for _, d := range st.Details() {
		info, ok := d.(*errdetails.ErrorInfo)
		if !ok || info.GetDomain() != ErrorDomain {
			continue
		}
		if code, convErr := strconv.Atoi(info.GetMetadata()[statusMetaKey]); convErr == nil {
			return New(code, st.Message()), true
		}
	}

	return New(utils.GRPCCodeToHTTP(st.Code()), st.Message()), true
}
