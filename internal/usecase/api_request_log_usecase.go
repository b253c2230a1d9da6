package usecase

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"commerce-api/internal/domain/entity"
	"commerce-api/internal/domain/repository"
	"commerce-api/internal/logs"
)

const maxListLimit = 200

// ErrNothingUpdated is returned when an update changed no stored column
var ErrNothingUpdated = errors.New("api request log was not updated")

// RequestEntry describes one served API request
type RequestEntry struct {
	UserID   int64
	APIKey   string
	Token    string
	Version  string
	Request  string
	Error    string
	IP       string
	Duration time.Duration
}

type APIRequestLogUsecase interface {
	// Record stores an API request log and returns its id
	Record(ctx context.Context, entry RequestEntry) (int64, error)

	// Get returns nil when the log does not exist
	Get(ctx context.Context, id int64) (*logs.RequestLog, error)

	// List returns the newest logs, limit is clamped to 1..200
	List(ctx context.Context, limit int) ([]entity.APIRequestLog, error)

	Update(ctx context.Context, id int64, fields repository.Fields) (*logs.RequestLog, error)

	Delete(ctx context.Context, id int64) (bool, error)
}

type apiRequestLogUsecase struct {
	logs   *logs.Service
	repo   repository.APIRequestLogRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewAPIRequestLogUsecase(svc *logs.Service, repo repository.APIRequestLogRepository, logger *zap.Logger) APIRequestLogUsecase {
	return &apiRequestLogUsecase{
		logs:   svc,
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (u *apiRequestLogUsecase) Record(ctx context.Context, entry RequestEntry) (int64, error) {
	id, err := u.logs.New().Create(ctx, repository.Fields{
		"user_id":      entry.UserID,
		"api_key":      entry.APIKey,
		"token":        entry.Token,
		"version":      entry.Version,
		"request":      entry.Request,
		"error":        entry.Error,
		"ip":           entry.IP,
		"time":         entry.Duration.Seconds(),
		"date_created": u.now().UTC().Format(entity.DateFormat),
	})
	if err != nil {
		u.logger.Error("Failed to record API request",
			zap.String("request", entry.Request),
			zap.Error(err),
		)
		return 0, err
	}

	return id, nil
}

func (u *apiRequestLogUsecase) Get(ctx context.Context, id int64) (*logs.RequestLog, error) {
	l, err := u.logs.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !l.Exists() {
		return nil, nil
	}
	return l, nil
}

func (u *apiRequestLogUsecase) List(ctx context.Context, limit int) ([]entity.APIRequestLog, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	return u.repo.FindAll(ctx, limit)
}

func (u *apiRequestLogUsecase) Update(ctx context.Context, id int64, fields repository.Fields) (*logs.RequestLog, error) {
	l, err := u.Get(ctx, id)
	if err != nil || l == nil {
		return nil, err
	}

	updated, err := l.Update(ctx, fields)
	if err != nil {
		u.logger.Error("Failed to update API request log", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	if !updated {
		return nil, ErrNothingUpdated
	}

	u.logger.Info("API request log updated", zap.Int64("id", id))
	return l, nil
}

func (u *apiRequestLogUsecase) Delete(ctx context.Context, id int64) (bool, error) {
	l, err := u.Get(ctx, id)
	if err != nil || l == nil {
		return false, err
	}

	deleted, err := l.Delete(ctx)
	if err != nil {
		u.logger.Error("Failed to delete API request log", zap.Int64("id", id), zap.Error(err))
		return false, err
	}

	u.logger.Info("API request log deleted", zap.Int64("id", id), zap.Bool("deleted", deleted))
	return deleted, nil
}
