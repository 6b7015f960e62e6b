package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified name of the reconciler service.
const ServiceName = "filmed.v1.ReconcilerService"

// Full method names, as seen by interceptors and clients.
const (
	ResolveMethod  = "/" + ServiceName + "/Resolve"
	ValidateMethod = "/" + ServiceName + "/Validate"
)

// ReconcilerServer is the server API of the reconciler service. Requests and
// responses are free-form structs; see converters.go for their fields.
type ReconcilerServer interface {
	Resolve(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Validate(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// ServiceDesc describes the reconciler service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ReconcilerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Resolve", Handler: unaryHandler(ResolveMethod, ReconcilerServer.Resolve)},
		{MethodName: "Validate", Handler: unaryHandler(ValidateMethod, ReconcilerServer.Validate)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "filmed/v1/reconciler.proto",
}

// RegisterReconcilerServer registers srv on s.
func RegisterReconcilerServer(s grpc.ServiceRegistrar, srv ReconcilerServer) {
	s.RegisterService(&ServiceDesc, srv)
}

type unaryMethod func(ReconcilerServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, method unaryMethod) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return method(srv.(ReconcilerServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return method(srv.(ReconcilerServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ReconcilerClient calls the reconciler service over a client connection.
type ReconcilerClient struct {
	cc grpc.ClientConnInterface
}

// NewReconcilerClient creates a client using cc.
func NewReconcilerClient(cc grpc.ClientConnInterface) *ReconcilerClient {
	return &ReconcilerClient{cc: cc}
}

// Resolve calls ReconcilerService.Resolve.
func (c *ReconcilerClient) Resolve(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ResolveMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Validate calls ReconcilerService.Validate.
func (c *ReconcilerClient) Validate(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ValidateMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
