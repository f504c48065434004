package grpc

// proto.go defines the gRPC server interface for hta/v1/assessment.proto.
// Messages travel with the JSON codec registered in json_codec.go.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "hta.v1.AssessmentService"

// AssessmentServiceServer is the server API for AssessmentService.
type AssessmentServiceServer interface {
	AssessRisk(context.Context, *AssessRiskRequest) (*AssessRiskResponse, error)
	RecordAssessment(context.Context, *RecordAssessmentRequest) (*RecordAssessmentResponse, error)
	GetAssessment(context.Context, *GetAssessmentRequest) (*GetAssessmentResponse, error)
	mustEmbedUnimplementedAssessmentServiceServer()
}

// UnimplementedAssessmentServiceServer provides forward-compatible default implementations.
type UnimplementedAssessmentServiceServer struct{}

func (UnimplementedAssessmentServiceServer) AssessRisk(context.Context, *AssessRiskRequest) (*AssessRiskResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AssessRisk not implemented")
}
func (UnimplementedAssessmentServiceServer) RecordAssessment(context.Context, *RecordAssessmentRequest) (*RecordAssessmentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RecordAssessment not implemented")
}
func (UnimplementedAssessmentServiceServer) GetAssessment(context.Context, *GetAssessmentRequest) (*GetAssessmentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetAssessment not implemented")
}
func (UnimplementedAssessmentServiceServer) mustEmbedUnimplementedAssessmentServiceServer() {}

// RegisterAssessmentServiceServer registers the AssessmentServiceServer with the gRPC server.
func RegisterAssessmentServiceServer(s grpclib.ServiceRegistrar, srv AssessmentServiceServer) {
	s.RegisterService(&_AssessmentService_serviceDesc, srv)
}

var _AssessmentService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AssessmentServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "AssessRisk", Handler: _AssessmentService_AssessRisk_Handler},
		{MethodName: "RecordAssessment", Handler: _AssessmentService_RecordAssessment_Handler},
		{MethodName: "GetAssessment", Handler: _AssessmentService_GetAssessment_Handler},
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "hta/v1/assessment.proto",
}

func _AssessmentService_AssessRisk_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	req := new(AssessRiskRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AssessmentServiceServer).AssessRisk(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/AssessRisk"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AssessmentServiceServer).AssessRisk(ctx, req.(*AssessRiskRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func _AssessmentService_RecordAssessment_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	req := new(RecordAssessmentRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AssessmentServiceServer).RecordAssessment(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/RecordAssessment"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AssessmentServiceServer).RecordAssessment(ctx, req.(*RecordAssessmentRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func _AssessmentService_GetAssessment_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	req := new(GetAssessmentRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AssessmentServiceServer).GetAssessment(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/GetAssessment"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AssessmentServiceServer).GetAssessment(ctx, req.(*GetAssessmentRequest))
	}
	return interceptor(ctx, req, info, handler)
}
