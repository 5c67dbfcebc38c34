package grpc

import (
	"net"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

type App struct {
	srv *grpc.Server
}

// NewGrpc builds the secondary listener. It only carries the standard health
// service so orchestrators can probe the process without touching HTTP.
func NewGrpc() *App {
	srv := grpc.NewServer()

	healthpb.RegisterHealthServer(srv, health.NewServer())
	reflection.Register(srv)

	return &App{srv: srv}
}

func (v *App) Listen() {
	listener, err := net.Listen("tcp", viper.GetString("grpc_bind"))
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when opening grpc listener.")
	}

	if err := v.srv.Serve(listener); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when starting grpc server.")
	}
}
