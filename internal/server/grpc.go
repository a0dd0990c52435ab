package server

import (
	"net"

	"google.golang.org/grpc"

	"github.com/telltale-app/storysync/internal/config"
	myGRPC "github.com/telltale-app/storysync/internal/handler/grpc"
	"github.com/telltale-app/storysync/internal/logger"
)

type grpcServer struct {
	handler *myGRPC.Handler

	server      *grpc.Server
	netListener net.Listener

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) (*grpcServer, error) {
	listener, err := net.Listen("tcp", cfg.GRPCAddress)
	if err != nil {
		return nil, err
	}

	server := grpc.NewServer()
	handler.Register(server)

	return &grpcServer{
		handler:     handler,
		server:      server,
		netListener: listener,
		logger:      logger,
	}, nil
}

func (g *grpcServer) RunServer() {
	if err := g.server.Serve(g.netListener); err != nil {
		g.logger.Error().Msgf("gRPC server Serve: %v\n", err)
	}
}

func (g *grpcServer) Shutdown() {
	g.logger.Info().Msg("GRPC server Shutdown")
	g.handler.MarkNotServing()
	g.server.GracefulStop()
}
