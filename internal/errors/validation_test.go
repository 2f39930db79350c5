package errors_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/realm-api/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) fields(err error) map[string]interface{} {
	s.Require().Error(err)
	fields, ok := errors.GetMeta(err)[errors.MetaValidation].(map[string]interface{})
	s.Require().True(ok, "validation meta missing")
	return fields
}

func (s *ValidationTestSuite) TestBuilderListsFieldsInOrder() {
	vb := errors.NewValidationBuilder()
	vb.RequiredField("name").
		Fieldf("price", "must be at most %d", 100).
		InvalidField("currency", "must be gold or diamonds").
		Field("name", "must be no more than 32 characters")

	s.Require().True(vb.HasErrors())
	err := vb.Build()
	s.Assert().True(errors.IsInvalidArgument(err))
	s.Assert().Equal(
		"INVALID_ARGUMENT: validation failed: "+
			"currency: is invalid: must be gold or diamonds; "+
			"name: is required, must be no more than 32 characters; "+
			"price: must be at most 100",
		err.Error())

	fields := s.fields(err)
	s.Assert().Equal("is required, must be no more than 32 characters", fields["name"])
	s.Assert().Len(fields, 3)
}

func (s *ValidationTestSuite) TestBuilderNoErrors() {
	vb := errors.NewValidationBuilder()
	s.Assert().False(vb.HasErrors())
	s.Assert().NoError(vb.Build())
}

func (s *ValidationTestSuite) TestValidateRequired() {
	testCases := []struct {
		name      string
		value     string
		shouldErr bool
	}{
		{"empty string", "", true},
		{"whitespace only", "   ", true},
		{"valid with spaces", "  Aria  ", false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			vb := errors.NewValidationBuilder()
			errors.ValidateRequired("name", tc.value, vb)
			if tc.shouldErr {
				s.Assert().Error(vb.Build())
			} else {
				s.Assert().NoError(vb.Build())
			}
		})
	}
}

func (s *ValidationTestSuite) TestValidateLengthCountsRunes() {
	testCases := []struct {
		name    string
		value   string
		message string
	}{
		{"ascii within bounds", "Ironclad", ""},
		{"multibyte within bounds", "Ærøskøbing", ""},
		{"kana within bounds", "ドラゴン騎士団", ""},
		{"too short", "ab", "must be at least 3 characters"},
		{"too long", "The Exceedingly Long Guild", "must be no more than 12 characters"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			vb := errors.NewValidationBuilder()
			errors.ValidateLength("name", tc.value, 3, 12, vb)
			err := vb.Build()
			if tc.message == "" {
				s.Assert().NoError(err)
				return
			}
			s.Assert().Equal(tc.message, s.fields(err)["name"])
		})
	}
}

func (s *ValidationTestSuite) TestValidatePositive() {
	vb := errors.NewValidationBuilder()
	errors.ValidatePositive("amount", 3, vb)
	errors.ValidatePositive("price", int64(0), vb)
	errors.ValidatePositive("listing_ttl", -time.Second, vb)

	fields := s.fields(vb.Build())
	s.Assert().NotContains(fields, "amount")
	s.Assert().Equal("must be positive, got 0", fields["price"])
	s.Assert().Contains(fields, "listing_ttl")
}

func (s *ValidationTestSuite) TestValidateRange() {
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("port", 70000, 1, 65535, vb)
	errors.ValidateRange("slots", 4, 1, 8, vb)

	fields := s.fields(vb.Build())
	s.Assert().Equal("must be between 1 and 65535", fields["port"])
	s.Assert().NotContains(fields, "slots")
}

func (s *ValidationTestSuite) TestValidateEnum() {
	joinTypes := []string{"open", "closed"}

	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("join_type", "invite", joinTypes, vb)
	errors.ValidateEnum("default", "open", joinTypes, vb)

	fields := s.fields(vb.Build())
	s.Assert().Equal("must be one of: open, closed", fields["join_type"])
	s.Assert().NotContains(fields, "default")
}

func (s *ValidationTestSuite) TestValidationMetaSurvivesGRPC() {
	vb := errors.NewValidationBuilder()
	errors.ValidatePositive("amount", 0, vb)

	back := errors.FromGRPCError(errors.ToGRPCError(vb.Build()))
	s.Assert().True(errors.IsInvalidArgument(back))
	fields, ok := errors.GetMeta(back)[errors.MetaValidation].(map[string]interface{})
	s.Require().True(ok)
	s.Assert().Equal("must be positive, got 0", fields["amount"])
}
