package grpc

import (
	"context"

	"github.com/rs/zerolog"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Belphemur/filmed/internal/config"
	"github.com/Belphemur/filmed/internal/matching"
	"github.com/Belphemur/filmed/internal/resolver"
)

// server implements ReconcilerServer on top of a resolver
type server struct {
	resolver *resolver.Resolver
	logger   zerolog.Logger
}

// NewServer creates a new reconciler service instance
func NewServer(r *resolver.Resolver) ReconcilerServer {
	return &server{
		resolver: r,
		logger:   config.GetLogger(),
	}
}

// Resolve searches the search catalog for the record in the request. A record
// without a match is not an error: the response has resolved=false.
func (s *server) Resolve(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	rec, invalid := convertRecordFromStruct(req)
	if len(invalid) > 0 {
		return nil, invalidArgument("invalid resolve request", invalid)
	}
	s.logger.Debug().Int64("record", rec.ID).Str("name", rec.Name).Int("names", rec.AlternateNames.Len()).Msg("Resolve called")

	res := s.resolver.Resolve(ctx, rec)
	if err := ctx.Err(); err != nil && !res.Resolved() {
		return nil, status.FromContextError(err).Err()
	}

	out, err := convertResolutionToStruct(res)
	if err != nil {
		s.logger.Error().Err(err).Int64("record", rec.ID).Msg("Failed to encode resolution")
		return nil, status.Errorf(codes.Internal, "failed to encode resolution: %v", err)
	}

	s.logger.Debug().Int64("record", rec.ID).Bool("resolved", res.Resolved()).Int("attempts", len(res.Attempts)).Msg("Resolve completed")
	return out, nil
}

// Validate runs the year and duration checks on a record/candidate pair. The
// response carries the verdict and the duration band, in minutes, it used.
func (s *server) Validate(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	in, invalid := convertValidateFromStruct(req)
	if len(invalid) > 0 {
		return nil, invalidArgument("invalid validate request", invalid)
	}

	valid := matching.Validate(in.recordYear, in.recordRuntime, in.candidateYear, in.candidateRuntime)
	recordRuntime := 0
	if in.recordRuntime != nil {
		recordRuntime = *in.recordRuntime
	}
	lower, upper := matching.Band(recordRuntime, in.candidateRuntime)
	s.logger.Debug().
		Str("record_year", in.recordYear.String()).
		Str("candidate_year", in.candidateYear.String()).
		Int("candidate_runtime", in.candidateRuntime).
		Bool("valid", valid).
		Msg("Validate completed")

	return structpb.NewStruct(map[string]any{
		"valid":      valid,
		"band_lower": lower,
		"band_upper": upper,
	})
}

// invalidArgument attaches the field violations to an InvalidArgument status.
func invalidArgument(msg string, v violations) error {
	st := status.New(codes.InvalidArgument, msg)
	detailed, err := st.WithDetails(&errdetails.BadRequest{FieldViolations: v})
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}
