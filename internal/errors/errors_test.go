package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/realm-api/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestErrorString() {
	err := errors.NotFoundf("character %s not found", "chr_1")
	s.Assert().Equal("NOT_FOUND: character chr_1 not found", err.Error())

	wrapped := errors.Wrap(fmt.Errorf("dial tcp: refused"), "failed to load guild")
	s.Assert().Equal("INTERNAL: failed to load guild: dial tcp: refused", wrapped.Error())
}

func (s *ErrorsTestSuite) TestConstructors() {
	testCases := []struct {
		name string
		err  *errors.Error
		code errors.Code
		is   func(error) bool
	}{
		{"NotFound", errors.NotFound("x"), errors.CodeNotFound, errors.IsNotFound},
		{"InvalidArgument", errors.InvalidArgument("x"), errors.CodeInvalidArgument, errors.IsInvalidArgument},
		{"AlreadyExists", errors.AlreadyExists("x"), errors.CodeAlreadyExists, errors.IsAlreadyExists},
		{"PermissionDenied", errors.PermissionDenied("x"), errors.CodePermissionDenied, errors.IsPermissionDenied},
		{"FailedPrecondition", errors.FailedPrecondition("x"), errors.CodeFailedPrecondition, errors.IsFailedPrecondition},
		{"Aborted", errors.Aborted("x"), errors.CodeAborted, errors.IsAborted},
		{"Conflict", errors.Conflict("x"), errors.CodeConflict, errors.IsConflict},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Assert().Equal(tc.code, tc.err.Code)
			s.Assert().Equal("x", tc.err.Message)
			s.Assert().True(tc.is(tc.err))
			s.Assert().True(tc.is(errors.Wrap(tc.err, "wrapped")))
		})
	}
}

func (s *ErrorsTestSuite) TestWrapKeepsCodeAndReason() {
	base := errors.FailedPrecondition("slot is empty").WithReason("NOT_EQUIPPED")
	wrapped := errors.Wrapf(base, "failed to unequip %s", "weapon")

	s.Assert().Equal(errors.CodeFailedPrecondition, wrapped.Code)
	s.Assert().Equal("failed to unequip weapon", wrapped.Message)
	s.Assert().Equal(base, wrapped.Unwrap())
	s.Assert().Equal("NOT_EQUIPPED", errors.GetReason(wrapped))
}

func (s *ErrorsTestSuite) TestWrapPlainError() {
	base := fmt.Errorf("disk full")
	wrapped := errors.Wrap(base, "failed to record trade")

	s.Assert().Equal(errors.CodeInternal, wrapped.Code)
	s.Assert().Equal(base, wrapped.Unwrap())
	s.Assert().Nil(errors.GetMeta(base))
}

func (s *ErrorsTestSuite) TestWrapWithCodeCopiesMeta() {
	base := errors.Conflict("listing sold").WithReason("ALREADY_SOLD")
	wrapped := errors.WrapWithCode(base, errors.CodeUnavailable, "market offline")

	s.Assert().True(errors.IsUnavailable(wrapped))
	s.Assert().Equal("ALREADY_SOLD", errors.GetReason(wrapped))

	// the copy is independent of the source
	wrapped.WithReason("OTHER")
	s.Assert().Equal("ALREADY_SOLD", errors.GetReason(base))
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Assert().Nil(errors.Wrap(nil, "should be nil"))
	s.Assert().Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
}

func (s *ErrorsTestSuite) TestErrorIs() {
	s.Assert().True(errors.Is(errors.Wrap(errors.NotFound("a"), "b"), errors.NotFound("c")))
	s.Assert().False(errors.NotFound("a").Is(errors.InvalidArgument("a")))
}

func (s *ErrorsTestSuite) TestGetCode() {
	s.Assert().Equal(errors.CodeOK, errors.GetCode(nil))
	s.Assert().Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("standard error")))
	s.Assert().Equal(errors.CodeAborted, errors.GetCode(errors.Abortedf("version %d is stale", 3)))
}

func (s *ErrorsTestSuite) TestGetReason() {
	s.Assert().Equal("", errors.GetReason(errors.NotFound("no reason")))
	s.Assert().Equal("", errors.GetReason(fmt.Errorf("standard error")))
	s.Assert().Equal("", errors.GetReason(nil))
}

func (s *ErrorsTestSuite) TestGRPCCodeMapping() {
	testCases := []struct {
		code     errors.Code
		expected codes.Code
	}{
		{errors.CodeNotFound, codes.NotFound},
		{errors.CodeInvalidArgument, codes.InvalidArgument},
		{errors.CodeAlreadyExists, codes.AlreadyExists},
		{errors.CodePermissionDenied, codes.PermissionDenied},
		{errors.CodeFailedPrecondition, codes.FailedPrecondition},
		{errors.CodeAborted, codes.Aborted},
		{errors.CodeConflict, codes.Aborted},
		{errors.CodeInternal, codes.Internal},
		{errors.CodeUnavailable, codes.Unavailable},
		{errors.Code("MADE_UP"), codes.Unknown},
	}

	for _, tc := range testCases {
		s.Run(tc.code.String(), func() {
			s.Assert().Equal(tc.expected, tc.code.GRPCCode())
		})
	}
}

func (s *ErrorsTestSuite) TestGRPCRoundTrip() {
	err := errors.NotFound("character not found").WithMeta("character_id", "chr_1")

	grpcErr := errors.ToGRPCError(err)
	st, ok := status.FromError(grpcErr)
	s.Require().True(ok)
	s.Assert().Equal(codes.NotFound, st.Code())
	s.Assert().Equal("character not found", st.Message())

	back := errors.FromGRPCError(grpcErr)
	s.Assert().True(errors.IsNotFound(back))
	s.Assert().Equal("chr_1", errors.GetMeta(back)["character_id"])
}

func (s *ErrorsTestSuite) TestGRPCConflictKeepsReason() {
	grpcErr := errors.ToGRPCError(errors.Conflict("listing sold").WithReason("ALREADY_SOLD"))
	s.Assert().Equal(codes.Aborted, status.Code(grpcErr))

	back := errors.FromGRPCError(grpcErr)
	s.Assert().True(errors.IsAborted(back))
	s.Assert().Equal("ALREADY_SOLD", errors.GetReason(back))
}

func (s *ErrorsTestSuite) TestGRPCPassthrough() {
	s.Assert().Nil(errors.ToGRPCError(nil))
	s.Assert().Nil(errors.FromGRPCError(nil))

	existing := status.Error(codes.DeadlineExceeded, "too slow")
	s.Assert().Equal(existing, errors.ToGRPCError(existing))
	s.Assert().Equal(errors.CodeDeadlineExceeded, errors.GetCode(errors.FromGRPCError(existing)))

	plain := fmt.Errorf("boom")
	s.Assert().Equal(codes.Internal, status.Code(errors.ToGRPCError(plain)))
	s.Assert().Equal(plain, errors.FromGRPCError(plain))
}

func (s *ErrorsTestSuite) TestGRPCUnknownCodeBecomesInternal() {
	back := errors.FromGRPCError(status.Error(codes.DataLoss, "gone"))
	s.Assert().Equal(errors.CodeInternal, errors.GetCode(back))
}
