package grpc

import (
	"context"
	"sync"
	"time"

	grpcprom "github.com/grpc-ecosystem/go-grpc-middleware/providers/prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/Belphemur/filmed/internal/config"
	"github.com/Belphemur/filmed/internal/resolver"
)

var (
	serverMetrics     *grpcprom.ServerMetrics
	serverMetricsOnce sync.Once
)

// sharedServerMetrics registers the gRPC handling metrics once per process.
func sharedServerMetrics() *grpcprom.ServerMetrics {
	serverMetricsOnce.Do(func() {
		serverMetrics = grpcprom.NewServerMetrics(grpcprom.WithServerHandlingTimeHistogram())
		prometheus.MustRegister(serverMetrics)
	})
	return serverMetrics
}

// NewGRPCServer builds the reconciler gRPC server: the reconciler service,
// the health service reporting SERVING, and reflection. Every unary call is
// counted by the Prometheus interceptor and logged.
func NewGRPCServer(r *resolver.Resolver) *grpc.Server {
	srvMetrics := sharedServerMetrics()

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(srvMetrics.UnaryServerInterceptor(), logUnary),
		grpc.ChainStreamInterceptor(srvMetrics.StreamServerInterceptor()),
	)
	RegisterReconcilerServer(s, NewServer(r))

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(s, healthServer)
	for _, name := range []string{"", ServiceName} {
		healthServer.SetServingStatus(name, grpc_health_v1.HealthCheckResponse_SERVING)
	}

	reflection.Register(s)
	srvMetrics.InitializeMetrics(s)
	return s
}

// logUnary logs each call at debug level, and failures other than client
// errors at warn level.
func logUnary(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	logger := config.GetLogger()
	code := status.Code(err)
	event := logger.Debug()
	switch code {
	case codes.OK, codes.InvalidArgument, codes.Canceled, codes.DeadlineExceeded:
	default:
		event = logger.Warn().Err(err)
	}
	event.Str("method", info.FullMethod).Str("code", code.String()).Dur("duration", time.Since(start)).Msg("gRPC call")
	return resp, err
}
