package grpc

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/mo7amed4522/user-services/internal/application"
	"github.com/mo7amed4522/user-services/internal/domain/entity"
	pb "github.com/mo7amed4522/user-services/internal/proto"
)

func userProto(u *entity.User) *pb.User {
	return &pb.User{
		Id:            u.ID,
		Email:         u.Email,
		Phone:         u.Phone,
		CountryCode:   u.CountryCode,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Role:          u.Role,
		EmailVerified: u.EmailVerified,
		PhoneVerified: u.PhoneVerified,
		Active:        u.Active,
		AvatarUrl:     u.AvatarURL,
	}
}

func pairProto(p *application.TokenPair) *pb.TokenPair {
	return &pb.TokenPair{
		AccessToken:      p.AccessToken,
		AccessExpiresAt:  p.AccessTokenExpiry.Unix(),
		RefreshToken:     p.RefreshToken,
		RefreshExpiresAt: p.RefreshTokenExpiry.Unix(),
	}
}

// statusErr maps domain error kinds onto gRPC status codes.
func statusErr(err error) error {
	switch {
	case errors.Is(err, application.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, "invalid credentials")
	case errors.Is(err, application.ErrTokenInvalid):
		return status.Error(codes.Unauthenticated, "invalid token")
	case errors.Is(err, application.ErrTokenExpired):
		return status.Error(codes.Unauthenticated, "token expired")
	case errors.Is(err, application.ErrTokenReused):
		return status.Error(codes.Unauthenticated, "token revoked")
	case errors.Is(err, application.ErrInactive):
		return status.Error(codes.PermissionDenied, "account inactive")
	case errors.Is(err, application.ErrUserNotFound):
		return status.Error(codes.NotFound, "user not found")
	case errors.Is(err, application.ErrDuplicateEmail):
		return status.Error(codes.AlreadyExists, "email already registered")
	case errors.Is(err, application.ErrCodeInvalid):
		return status.Error(codes.InvalidArgument, "invalid verification code")
	case errors.Is(err, application.ErrCodeExpired):
		return status.Error(codes.InvalidArgument, "verification code expired")
	case errors.Is(err, application.ErrCodeAlreadyUsed):
		return status.Error(codes.AlreadyExists, "verification code already used")
	case errors.Is(err, application.ErrRateLimited):
		return status.Error(codes.ResourceExhausted, "too many requests")
	case errors.Is(err, application.ErrStorageUnavailable):
		return status.Error(codes.Unavailable, "service unavailable")
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
