package errormgr

import (
	"sync"

	"github.com/outofoffice3/common/logger"
)

// ErrorMgr collects the errors recorded during one invocation.
type ErrorMgr interface {
	// log & store error
	StoreError(err error)
	// get errors
	GetErrors() []error
	// get errors of a single kind
	GetErrorsByKind(kind ErrorKind) []error
}

type _ErrorMgr struct {
	mu     sync.Mutex
	log    logger.Logger
	errors []error
}

// create new error manager
func NewErrorMgr(log logger.Logger) ErrorMgr {
	if log == nil {
		log = logger.NewConsoleLogger(logger.LogLevelInfo)
	}
	return &_ErrorMgr{
		log:    log,
		errors: make([]error, 0),
	}
}

func (em *_ErrorMgr) StoreError(err error) {
	if err == nil {
		return
	}
	HandleError(err, em.log)
	em.mu.Lock()
	defer em.mu.Unlock()
	em.errors = append(em.errors, err)
}

func (em *_ErrorMgr) GetErrors() []error {
	em.mu.Lock()
	defer em.mu.Unlock()
	errs := make([]error, len(em.errors))
	copy(errs, em.errors)
	return errs
}

func (em *_ErrorMgr) GetErrorsByKind(kind ErrorKind) []error {
	em.mu.Lock()
	defer em.mu.Unlock()
	errs := make([]error, 0)
	for _, err := range em.errors {
		if KindOf(err) == kind {
			errs = append(errs, err)
		}
	}
	return errs
}
