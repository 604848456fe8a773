package grpc

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/mo7amed4522/user-services/internal/application"
	"github.com/mo7amed4522/user-services/internal/domain/entity"
	pb "github.com/mo7amed4522/user-services/internal/proto"
	"github.com/mo7amed4522/user-services/pkg/mailer"
)

// deliver queues a freshly issued code for out-of-band delivery, mirroring
// the HTTP front end. The plaintext code never crosses the wire to clients.
func (s *Server) deliver(ctx context.Context, email string, handle *application.CodeHandle) {
	if handle == nil {
		return
	}
	if handle.Channel == entity.ChannelEmail && s.mail != nil {
		job := mailer.EmailJob{
			To:       email,
			Subject:  "Your verification code",
			Template: "verification_code",
			Data: map[string]any{
				"code":       handle.Code,
				"expires_at": handle.ExpiresAt,
			},
		}
		if err := s.mail.PublishJSON(ctx, job); err != nil && s.logger != nil {
			s.logger.WithError(err).WithField("user_id", handle.UserID).Error("queue verification email failed")
		}
		return
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"user_id": handle.UserID,
			"channel": handle.Channel,
		}).Info("verification code issued, no delivery provider for channel")
	}
}

func (s *Server) Register(ctx context.Context, req *pb.RegisterRequest) (*pb.RegisterResponse, error) {
	u, err := s.users.Register(ctx, application.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		Phone:       req.Phone,
		CountryCode: req.CountryCode,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
	})
	if err != nil {
		return nil, statusErr(err)
	}
	s.logger.WithField("user_id", u.ID).Info("user registered")
	return &pb.RegisterResponse{User: userProto(u)}, nil
}

func (s *Server) Login(ctx context.Context, req *pb.LoginRequest) (*pb.LoginResponse, error) {
	res, err := s.gateway.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, statusErr(err)
	}
	if res.Pending {
		s.deliver(ctx, res.User.Email, res.Handle)
		return &pb.LoginResponse{
			VerificationRequired: true,
			Channel:              string(res.Handle.Channel),
			CodeExpiresAt:        res.Handle.ExpiresAt.Unix(),
		}, nil
	}
	return &pb.LoginResponse{
		User: userProto(res.User),
		Pair: pairProto(res.Pair),
	}, nil
}

func (s *Server) SendCode(ctx context.Context, req *pb.SendCodeRequest) (*pb.SendCodeResponse, error) {
	handle, err := s.gateway.RequestCode(ctx, req.UserId, entity.Channel(req.Channel))
	if err != nil {
		return nil, statusErr(err)
	}
	email := ""
	if u, err := s.users.GetProfile(ctx, req.UserId); err == nil {
		email = u.Email
	}
	s.deliver(ctx, email, handle)
	return &pb.SendCodeResponse{
		Channel:   string(handle.Channel),
		ExpiresAt: handle.ExpiresAt.Unix(),
	}, nil
}

func (s *Server) Verify(ctx context.Context, req *pb.VerifyRequest) (*pb.TokenPair, error) {
	pair, err := s.gateway.SubmitVerification(ctx, req.UserId, entity.Channel(req.Channel), req.Code)
	if err != nil {
		return nil, statusErr(err)
	}
	return pairProto(pair), nil
}

func (s *Server) Refresh(ctx context.Context, req *pb.RefreshRequest) (*pb.TokenPair, error) {
	pair, err := s.gateway.Refresh(ctx, req.RefreshToken)
	if err != nil {
		return nil, statusErr(err)
	}
	return pairProto(pair), nil
}

func (s *Server) Logout(ctx context.Context, req *pb.LogoutRequest) (*pb.LogoutResponse, error) {
	if err := s.gateway.Logout(ctx, req.RefreshToken); err != nil {
		return nil, statusErr(err)
	}
	return &pb.LogoutResponse{LoggedOut: true}, nil
}

func (s *Server) LogoutAll(ctx context.Context, _ *pb.LogoutAllRequest) (*pb.LogoutResponse, error) {
	uid, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.gateway.LogoutAll(ctx, uid); err != nil {
		return nil, statusErr(err)
	}
	return &pb.LogoutResponse{LoggedOut: true}, nil
}

func (s *Server) ValidateToken(_ context.Context, req *pb.ValidateTokenRequest) (*pb.ValidateTokenResponse, error) {
	claims, err := s.gateway.VerifyAccessToken(req.Token)
	if err != nil {
		return nil, statusErr(err)
	}
	return &pb.ValidateTokenResponse{
		UserId:    claims.UserID,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Unix(),
	}, nil
}

func (s *Server) GetProfile(ctx context.Context, _ *pb.GetProfileRequest) (*pb.User, error) {
	uid, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}
	u, err := s.users.GetProfile(ctx, uid)
	if err != nil {
		return nil, statusErr(err)
	}
	return userProto(u), nil
}

func (s *Server) UpdateProfile(ctx context.Context, req *pb.UpdateProfileRequest) (*pb.User, error) {
	uid, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}
	u, err := s.users.UpdateProfile(ctx, uid, application.UpdateProfileInput{
		Phone:       req.Phone,
		CountryCode: req.CountryCode,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
	})
	if err != nil {
		return nil, statusErr(err)
	}
	return userProto(u), nil
}
