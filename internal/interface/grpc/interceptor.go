package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	pb "github.com/mo7amed4522/user-services/internal/proto"
)

type ctxKey string

const (
	userIDKey   ctxKey = "userID"
	userRoleKey ctxKey = "userRole"
)

// protectedMethods require a valid access token in metadata.
var protectedMethods = map[string]bool{
	pb.UserServices_LogoutAll_FullMethodName:     true,
	pb.UserServices_GetProfile_FullMethodName:    true,
	pb.UserServices_UpdateProfile_FullMethodName: true,
}

func (s *Server) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	if protectedMethods[info.FullMethod] {
		var accessToken string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			values := md.Get("access_token")
			if len(values) > 0 {
				accessToken = values[0]
			}
		}
		if accessToken == "" {
			return nil, status.Error(codes.Unauthenticated, "missing token")
		}

		claims, err := s.gateway.VerifyAccessToken(accessToken)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}

		ctx = context.WithValue(ctx, userIDKey, claims.UserID)
		ctx = context.WithValue(ctx, userRoleKey, claims.Role)
	}

	return handler(ctx, req)
}

func userIDFrom(ctx context.Context) (string, error) {
	uid, ok := ctx.Value(userIDKey).(string)
	if !ok || uid == "" {
		return "", status.Error(codes.Unauthenticated, "missing token")
	}
	return uid, nil
}
