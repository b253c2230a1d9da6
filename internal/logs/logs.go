// Package logs wraps rows of the api_request_logs table in an object with
// named property access, create, update and delete.
package logs

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"commerce-api/internal/domain/repository"
)

// ErrAlreadyCreated is returned by Create on a wrapper that already has an id
var ErrAlreadyCreated = errors.New("api request log already created")

// InsertFilter may rewrite the arguments of a create before they are sanitized
type InsertFilter func(args repository.Fields) repository.Fields

// PreInsertAction runs after sanitizing, before the row is stored
type PreInsertAction func(args repository.Fields)

// PostInsertAction runs after the store was called. id is 0 if the insert failed.
type PostInsertAction func(args repository.Fields, id int64)

// FieldFilter may rewrite a property value read through Get
type FieldFilter func(key string, value interface{}, id int64) interface{}

// Service loads and creates request log wrappers. Hooks must be registered
// before the service is shared between goroutines.
type Service struct {
	store  repository.APIRequestLogRepository
	logger *zap.Logger

	insertFilters []InsertFilter
	preInsert     []PreInsertAction
	postInsert    []PostInsertAction
	fieldFilters  []FieldFilter
}

func NewService(store repository.APIRequestLogRepository, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

func (s *Service) AddInsertFilter(f InsertFilter) {
	s.insertFilters = append(s.insertFilters, f)
}

func (s *Service) OnPreInsert(a PreInsertAction) {
	s.preInsert = append(s.preInsert, a)
}

func (s *Service) OnPostInsert(a PostInsertAction) {
	s.postInsert = append(s.postInsert, a)
}

func (s *Service) AddFieldFilter(f FieldFilter) {
	s.fieldFilters = append(s.fieldFilters, f)
}

// New returns an empty wrapper ready for Create
func (s *Service) New() *RequestLog {
	return newRequestLog(s)
}

// Load fetches the log with the given id. A missing row yields an empty
// wrapper and no error.
func (s *Service) Load(ctx context.Context, id int64) (*RequestLog, error) {
	l := newRequestLog(s)
	if id <= 0 {
		return l, nil
	}

	row, err := s.store.FindByID(ctx, id)
	if err != nil {
		return l, fmt.Errorf("failed to load api request log %d: %w", id, err)
	}
	if row == nil {
		s.logger.Debug("API request log not found", zap.Int64("id", id))
		return l, nil
	}

	l.fill(row)
	return l, nil
}

func (s *Service) filterInsert(args repository.Fields) repository.Fields {
	for _, f := range s.insertFilters {
		args = f(args)
	}
	return args
}

func (s *Service) filterField(key string, value interface{}, id int64) interface{} {
	for _, f := range s.fieldFilters {
		value = f(key, value, id)
	}
	return value
}

var Module = fx.Module("logs",
	fx.Provide(NewService),
)
