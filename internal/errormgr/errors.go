package errormgr

import (
	"errors"
	"strings"

	"github.com/outofoffice3/common/logger"
)

// ErrorKind is the closed set of failures a dispatch can record.
type ErrorKind string

const (
	ClassificationError ErrorKind = "ClassificationError"
	EnumerationError    ErrorKind = "EnumerationError"
	PublishError        ErrorKind = "PublishError"
	ParseError          ErrorKind = "ParseError"
	LookupError         ErrorKind = "LookupError"
	AcknowledgeError    ErrorKind = "AcknowledgeError"
)

type Error struct {
	Kind      ErrorKind
	AccountId string
	Region    string
	Message   string
	Err       error
}

func (e Error) Error() string {
	var parts []string
	if e.AccountId != "" {
		parts = append(parts, "AccountId: "+e.AccountId)
	}
	if e.Region != "" {
		parts = append(parts, "Region: "+e.Region)
	}
	if e.Message != "" {
		parts = append(parts, "Message: "+e.Message)
	}
	if e.Err != nil {
		parts = append(parts, "Cause: "+e.Err.Error())
	}
	if len(parts) == 0 {
		return "[" + string(e.Kind) + "] unknown error"
	}
	return "[" + string(e.Kind) + "] " + strings.Join(parts, ", ")
}

func (e Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of err, or "" if err is not an Error.
func KindOf(err error) ErrorKind {
	var e Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// error handler
func HandleError(err error, log logger.Logger) {
	if err == nil {
		return
	}
	switch switchErr := err.(type) {
	case Error:
		{
			log.Errorf("%s: %s", switchErr.Kind, switchErr.Error())
		}
	default:
		{
			log.Errorf("unknown error [%T]: %v", switchErr, err)
		}
	}
}
