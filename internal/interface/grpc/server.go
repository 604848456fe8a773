// Package grpc is the gRPC front end. It shares the application layer with
// the HTTP front end and adds nothing to it beyond transport concerns.
package grpc

import (
	"context"
	"net"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"

	"github.com/mo7amed4522/user-services/internal/application"
	pb "github.com/mo7amed4522/user-services/internal/proto"
	"github.com/mo7amed4522/user-services/pkg/helpers"
)

type Server struct {
	pb.UnimplementedUserServicesServer
	address string
	gateway *application.AuthGateway
	users   *application.UserService
	mail    *helpers.RabbitPublisher
	logger  *logrus.Logger
}

func NewServer(address string, gateway *application.AuthGateway, users *application.UserService, mail *helpers.RabbitPublisher, logger *logrus.Logger) *Server {
	return &Server{
		address: address,
		gateway: gateway,
		users:   users,
		mail:    mail,
		logger:  logger,
	}
}

// Run serves until ctx is canceled, then drains in-flight calls.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.accessTokenInterceptor))
	pb.RegisterUserServicesServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info("stopping gRPC server")
		srv.GracefulStop()
	}()

	s.logger.WithField("address", s.address).Info("starting gRPC server")
	return srv.Serve(listen)
}
