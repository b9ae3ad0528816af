package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (suite *ErrorTestSuite) TestNewError() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.NotNil(err)
	suite.Equal(ErrCodeInvalidParameter, err.Code)
	suite.Equal("invalid parameter", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestNewfError() {
	err := Newf(ErrCodeInvalidParameter, "invalid parameter: %s", "test")
	suite.NotNil(err)
	suite.Equal(ErrCodeInvalidParameter, err.Code)
	suite.Equal("invalid parameter: test", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestWrapError() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeDataNotFound, "data not found", cause)
	suite.NotNil(err)
	suite.Equal(ErrCodeDataNotFound, err.Code)
	suite.Equal("data not found", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestWrapfError() {
	cause := errors.New("underlying error")
	err := Wrapf(ErrCodeDataNotFound, cause, "data not found for symbol: %s", "AAPL")
	suite.NotNil(err)
	suite.Equal(ErrCodeDataNotFound, err.Code)
	suite.Equal("data not found for symbol: AAPL", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestErrorString() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.Equal("[100] invalid parameter", err.Error())
}

func (suite *ErrorTestSuite) TestErrorStringWithCause() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeDataNotFound, "data not found", cause)
	suite.Equal("[200] data not found: underlying error", err.Error())
}

func (suite *ErrorTestSuite) TestUnwrap() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeDataNotFound, "data not found", cause)
	suite.Equal(cause, err.Unwrap())
}

func (suite *ErrorTestSuite) TestUnwrapNil() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.Nil(err.Unwrap())
}

func (suite *ErrorTestSuite) TestGetCode() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.Equal(ErrCodeInvalidParameter, GetCode(err))
}

func (suite *ErrorTestSuite) TestGetCodeFromWrapped() {
	cause := New(ErrCodeTerminalUnavailable, "bridge unreachable")
	err := Wrap(ErrCodeLoginFailed, "login failed", cause)
	// GetCode should return the outermost error's code
	suite.Equal(ErrCodeLoginFailed, GetCode(err))
}

func (suite *ErrorTestSuite) TestGetCodeFromStandardError() {
	err := errors.New("standard error")
	suite.Equal(ErrCodeUnknown, GetCode(err))
}

func (suite *ErrorTestSuite) TestHasCode() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.True(HasCode(err, ErrCodeInvalidParameter))
	suite.False(HasCode(err, ErrCodeDataNotFound))
}

func (suite *ErrorTestSuite) TestIsError() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeDataNotFound, "data not found", cause)
	suite.True(Is(err, cause))
}

func (suite *ErrorTestSuite) TestAsError() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	var codedErr *Error
	suite.True(As(err, &codedErr))
	suite.Equal(ErrCodeInvalidParameter, codedErr.Code)
}

func (suite *ErrorTestSuite) TestErrorCodeValues() {
	// Verify some key error codes have expected values
	suite.Equal(ErrorCode(1), ErrCodeUnknown)
	suite.Equal(ErrorCode(100), ErrCodeInvalidParameter)
	suite.Equal(ErrorCode(200), ErrCodeDataNotFound)
	suite.Equal(ErrorCode(300), ErrCodeTerminalUnavailable)
	suite.Equal(ErrorCode(303), ErrCodeNotConnected)
	suite.Equal(ErrorCode(500), ErrCodeOrderFailed)
	suite.Equal(ErrorCode(505), ErrCodeOrderRejected)
	suite.Equal(ErrorCode(600), ErrCodeJournalFailed)
}

func (suite *ErrorTestSuite) TestRejectionError() {
	err := &RejectionError{
		Retcode: 10006,
		Comment: "Request rejected",
		Message: "BUY order failed: 10006 - Request rejected",
	}
	suite.Equal("BUY order failed: 10006 - Request rejected", err.Error())
	suite.Equal(10006, err.Retcode)
	suite.Equal("Request rejected", err.Comment)
}

func (suite *ErrorTestSuite) TestNewRejectionErrorf() {
	err := NewRejectionErrorf(10019, "No money", "%s order failed: %d - %s", "SELL", 10019, "No money")
	suite.NotNil(err)
	suite.Equal(10019, err.Retcode)
	suite.Equal("No money", err.Comment)
	suite.Equal("SELL order failed: 10019 - No money", err.Message)
}

func (suite *ErrorTestSuite) TestIsRejectionError() {
	rejection := NewRejectionError(10006, "rejected", "order rejected")
	suite.True(IsRejectionError(rejection))

	// Wrapped rejections are still found in the chain
	wrapped := Wrap(ErrCodeOrderRejected, "order rejected", rejection)
	suite.True(IsRejectionError(wrapped))

	stdErr := errors.New("standard error")
	suite.False(IsRejectionError(stdErr))

	codedErr := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.False(IsRejectionError(codedErr))

	suite.False(IsRejectionError(nil))
}

func (suite *ErrorTestSuite) TestMessage() {
	suite.Equal("", Message(nil))
	suite.Equal("Symbol FOO not found", Message(Newf(ErrCodeSymbolNotFound, "Symbol %s not found", "FOO")))
	suite.Equal("Login failed: boom", Message(Wrap(ErrCodeLoginFailed, "Login failed: boom", errors.New("boom"))))
	suite.Equal("plain", Message(errors.New("plain")))

	rejection := NewRejectionError(10006, "rejected", "BUY order failed: 10006 - rejected")
	suite.Equal("BUY order failed: 10006 - rejected", Message(Wrap(ErrCodeOrderRejected, "order rejected", rejection)))
}
