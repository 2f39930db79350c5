package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "realm.v1alpha1.RealmService"

// RealmServiceServer is the server API for the realm service. Every message
// is a google.protobuf.Struct carrying a JSON object.
type RealmServiceServer interface {
	CreateCharacter(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetCharacter(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ChooseClass(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AllocatePoints(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GrantExperience(context.Context, *structpb.Struct) (*structpb.Struct, error)

	GetInventory(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Equip(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Unequip(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SellToVendor(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateListing(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RemoveListing(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PurchaseListing(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListListings(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListTrades(context.Context, *structpb.Struct) (*structpb.Struct, error)

	CreateGuild(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetGuild(context.Context, *structpb.Struct) (*structpb.Struct, error)
	JoinGuild(context.Context, *structpb.Struct) (*structpb.Struct, error)
	LeaveGuild(context.Context, *structpb.Struct) (*structpb.Struct, error)
	KickMember(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetMemberRole(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Contribute(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateGuildSettings(context.Context, *structpb.Struct) (*structpb.Struct, error)

	FindOpponents(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RecordBattle(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(RealmServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

var methods = []struct {
	name string
	call unaryCall
}{
	{"CreateCharacter", RealmServiceServer.CreateCharacter},
	{"GetCharacter", RealmServiceServer.GetCharacter},
	{"ChooseClass", RealmServiceServer.ChooseClass},
	{"AllocatePoints", RealmServiceServer.AllocatePoints},
	{"GrantExperience", RealmServiceServer.GrantExperience},
	{"GetInventory", RealmServiceServer.GetInventory},
	{"Equip", RealmServiceServer.Equip},
	{"Unequip", RealmServiceServer.Unequip},
	{"SellToVendor", RealmServiceServer.SellToVendor},
	{"CreateListing", RealmServiceServer.CreateListing},
	{"RemoveListing", RealmServiceServer.RemoveListing},
	{"PurchaseListing", RealmServiceServer.PurchaseListing},
	{"ListListings", RealmServiceServer.ListListings},
	{"ListTrades", RealmServiceServer.ListTrades},
	{"CreateGuild", RealmServiceServer.CreateGuild},
	{"GetGuild", RealmServiceServer.GetGuild},
	{"JoinGuild", RealmServiceServer.JoinGuild},
	{"LeaveGuild", RealmServiceServer.LeaveGuild},
	{"KickMember", RealmServiceServer.KickMember},
	{"SetMemberRole", RealmServiceServer.SetMemberRole},
	{"Contribute", RealmServiceServer.Contribute},
	{"UpdateGuildSettings", RealmServiceServer.UpdateGuildSettings},
	{"FindOpponents", RealmServiceServer.FindOpponents},
	{"RecordBattle", RealmServiceServer.RecordBattle},
}

// MethodNames lists every RPC of the realm service
func MethodNames() []string {
	names := make([]string, 0, len(methods))
	for _, m := range methods {
		names = append(names, m.name)
	}
	return names
}

// FullMethod returns the invoke path of an RPC
func FullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

func methodHandler(name string, call unaryCall) grpc.MethodHandler {
	return func(
		srv any,
		ctx context.Context,
		dec func(any) error,
		interceptor grpc.UnaryServerInterceptor,
	) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(RealmServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: FullMethod(name),
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(RealmServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc describes the realm service for grpc.Server
var ServiceDesc = func() grpc.ServiceDesc {
	desc := grpc.ServiceDesc{
		ServiceName: ServiceName,
		HandlerType: (*RealmServiceServer)(nil),
		Streams:     []grpc.StreamDesc{},
	}
	for _, m := range methods {
		desc.Methods = append(desc.Methods, grpc.MethodDesc{
			MethodName: m.name,
			Handler:    methodHandler(m.name, m.call),
		})
	}
	return desc
}()

// RegisterRealmServiceServer registers the realm service on s
func RegisterRealmServiceServer(s grpc.ServiceRegistrar, srv RealmServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Invoke calls an RPC on cc with body as the request object
func Invoke(ctx context.Context, cc grpc.ClientConnInterface, name string, body map[string]any) (map[string]any, error) {
	in, err := structpb.NewStruct(body)
	if err != nil {
		return nil, err
	}

	out := new(structpb.Struct)
	if err := cc.Invoke(ctx, FullMethod(name), in, out); err != nil {
		return nil, err
	}
	return out.AsMap(), nil
}
