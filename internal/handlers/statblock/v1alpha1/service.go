package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "statblock.v1alpha1.StatblockService"

// Full method names
const (
	GetStatblockFullMethod     = "/" + ServiceName + "/GetStatblock"
	SearchStatblocksFullMethod = "/" + ServiceName + "/SearchStatblocks"
	SaveStatblockFullMethod    = "/" + ServiceName + "/SaveStatblock"
	DeleteStatblockFullMethod  = "/" + ServiceName + "/DeleteStatblock"
	ListTypesFullMethod        = "/" + ServiceName + "/ListTypes"
	ListCategoriesFullMethod   = "/" + ServiceName + "/ListCategories"
	RenderStatblockFullMethod  = "/" + ServiceName + "/RenderStatblock"
	ExportStatblockFullMethod  = "/" + ServiceName + "/ExportStatblock"
	RollAttackFullMethod       = "/" + ServiceName + "/RollAttack"
	ListRollsFullMethod        = "/" + ServiceName + "/ListRolls"
)

// StatblockServiceServer is the server API for the stat block service.
// Requests and responses are protobuf well-known types: names travel as
// StringValue and records as Struct.
type StatblockServiceServer interface {
	GetStatblock(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	SearchStatblocks(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SaveStatblock(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteStatblock(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
	ListTypes(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	ListCategories(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	RenderStatblock(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
	// ExportStatblock returns the indented export document as text so its field order survives
	ExportStatblock(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
	RollAttack(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	ListRolls(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// unaryHandler adapts a typed server method to a grpc.MethodHandler
func unaryHandler[Req proto.Message, Resp proto.Message](
	fullMethod string,
	newReq func() Req,
	call func(StatblockServiceServer, context.Context, Req) (Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := newReq()
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(StatblockServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(StatblockServiceServer), ctx, req.(Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func newStringValue() *wrapperspb.StringValue { return new(wrapperspb.StringValue) }
func newStruct() *structpb.Struct { return new(structpb.Struct) }
func newEmpty() *emptypb.Empty { return new(emptypb.Empty) }

// StatblockServiceDesc describes the service for grpc.ServiceRegistrar
var StatblockServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*StatblockServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetStatblock",
			Handler:    unaryHandler(GetStatblockFullMethod, newStringValue, StatblockServiceServer.GetStatblock),
		},
		{
			MethodName: "SearchStatblocks",
			Handler:    unaryHandler(SearchStatblocksFullMethod, newStruct, StatblockServiceServer.SearchStatblocks),
		},
		{
			MethodName: "SaveStatblock",
			Handler:    unaryHandler(SaveStatblockFullMethod, newStruct, StatblockServiceServer.SaveStatblock),
		},
		{
			MethodName: "DeleteStatblock",
			Handler:    unaryHandler(DeleteStatblockFullMethod, newStringValue, StatblockServiceServer.DeleteStatblock),
		},
		{
			MethodName: "ListTypes",
			Handler:    unaryHandler(ListTypesFullMethod, newStringValue, StatblockServiceServer.ListTypes),
		},
		{
			MethodName: "ListCategories",
			Handler:    unaryHandler(ListCategoriesFullMethod, newEmpty, StatblockServiceServer.ListCategories),
		},
		{
			MethodName: "RenderStatblock",
			Handler:    unaryHandler(RenderStatblockFullMethod, newStringValue, StatblockServiceServer.RenderStatblock),
		},
		{
			MethodName: "ExportStatblock",
			Handler:    unaryHandler(ExportStatblockFullMethod, newStringValue, StatblockServiceServer.ExportStatblock),
		},
		{
			MethodName: "RollAttack",
			Handler:    unaryHandler(RollAttackFullMethod, newStringValue, StatblockServiceServer.RollAttack),
		},
		{
			MethodName: "ListRolls",
			Handler:    unaryHandler(ListRollsFullMethod, newStruct, StatblockServiceServer.ListRolls),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "statblock/v1alpha1/statblock.proto",
}

// RegisterStatblockServiceServer registers srv with s
func RegisterStatblockServiceServer(s grpc.ServiceRegistrar, srv StatblockServiceServer) {
	s.RegisterService(&StatblockServiceDesc, srv)
}

// StatblockServiceClient is the client API for the stat block service
type StatblockServiceClient interface {
	GetStatblock(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	SearchStatblocks(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	SaveStatblock(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	DeleteStatblock(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error)
	ListTypes(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListCategories(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	RenderStatblock(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	ExportStatblock(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	RollAttack(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListRolls(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type statblockServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewStatblockServiceClient creates a client on cc
func NewStatblockServiceClient(cc grpc.ClientConnInterface) StatblockServiceClient {
	return &statblockServiceClient{cc: cc}
}

func invoke[Resp proto.Message](ctx context.Context, cc grpc.ClientConnInterface, method string, in proto.Message, out Resp, opts []grpc.CallOption) (Resp, error) {
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		var zero Resp
		return zero, err
	}
	return out, nil
}

func (c *statblockServiceClient) GetStatblock(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke(ctx, c.cc, GetStatblockFullMethod, in, new(structpb.Struct), opts)
}

func (c *statblockServiceClient) SearchStatblocks(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke(ctx, c.cc, SearchStatblocksFullMethod, in, new(structpb.Struct), opts)
}

func (c *statblockServiceClient) SaveStatblock(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke(ctx, c.cc, SaveStatblockFullMethod, in, new(structpb.Struct), opts)
}

func (c *statblockServiceClient) DeleteStatblock(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke(ctx, c.cc, DeleteStatblockFullMethod, in, new(emptypb.Empty), opts)
}

func (c *statblockServiceClient) ListTypes(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke(ctx, c.cc, ListTypesFullMethod, in, new(structpb.Struct), opts)
}

func (c *statblockServiceClient) ListCategories(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke(ctx, c.cc, ListCategoriesFullMethod, in, new(structpb.Struct), opts)
}

func (c *statblockServiceClient) RenderStatblock(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	return invoke(ctx, c.cc, RenderStatblockFullMethod, in, new(wrapperspb.StringValue), opts)
}

func (c *statblockServiceClient) ExportStatblock(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	return invoke(ctx, c.cc, ExportStatblockFullMethod, in, new(wrapperspb.StringValue), opts)
}

func (c *statblockServiceClient) RollAttack(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke(ctx, c.cc, RollAttackFullMethod, in, new(structpb.Struct), opts)
}

func (c *statblockServiceClient) ListRolls(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke(ctx, c.cc, ListRollsFullMethod, in, new(structpb.Struct), opts)
}
