package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"commerce-api/internal/domain/entity"
	"commerce-api/internal/domain/repository"
	"commerce-api/internal/fees"
)

// ErrFeeIDRequired is returned when neither the id nor the label of a fee
// yields a usable key
var ErrFeeIDRequired = errors.New("label or id is required")

type FeeUsecase interface {
	// AddFee adds a fee to the session cart and returns every fee of the cart
	AddFee(ctx context.Context, sessionID string, req *entity.AddFeeRequest) (map[string]entity.Fee, error)

	GetFees(ctx context.Context, sessionID string) (map[string]entity.Fee, error)

	// GetFee returns nil when the cart has no fee with the id
	GetFee(ctx context.Context, sessionID, feeID string) (*entity.Fee, error)

	Total(ctx context.Context, sessionID string) (*entity.FeeTotalResponse, error)

	Reset(ctx context.Context, sessionID string) error
}

type feeUsecase struct {
	repo   repository.FeeSessionRepository
	logger *zap.Logger
}

func NewFeeUsecase(repo repository.FeeSessionRepository, logger *zap.Logger) FeeUsecase {
	return &feeUsecase{
		repo:   repo,
		logger: logger,
	}
}

func (u *feeUsecase) ledger(ctx context.Context, sessionID string) (*fees.Ledger, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session is required")
	}

	stored, err := u.repo.Load(ctx, sessionID)
	if err != nil {
		u.logger.Error("Failed to load session fees", zap.String("session", sessionID), zap.Error(err))
		return nil, err
	}

	return fees.NewLedgerFrom(stored), nil
}

func (u *feeUsecase) AddFee(ctx context.Context, sessionID string, req *entity.AddFeeRequest) (map[string]entity.Fee, error) {
	feeID := fees.ID(req.Label, req.ID)
	if feeID == "" {
		return nil, ErrFeeIDRequired
	}
	if sessionID == "" {
		return nil, fmt.Errorf("session is required")
	}

	all, err := u.repo.Put(ctx, sessionID, feeID, entity.Fee{
		Amount: req.Amount,
		Label:  req.Label,
	})
	if err != nil {
		u.logger.Error("Failed to save session fee", zap.String("session", sessionID), zap.Error(err))
		return nil, err
	}

	u.logger.Info("Fee added",
		zap.String("session", sessionID),
		zap.String("fee", feeID),
		zap.String("amount", req.Amount.String()),
	)
	return all, nil
}

func (u *feeUsecase) GetFees(ctx context.Context, sessionID string) (map[string]entity.Fee, error) {
	ledger, err := u.ledger(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return ledger.All(), nil
}

func (u *feeUsecase) GetFee(ctx context.Context, sessionID, feeID string) (*entity.Fee, error) {
	ledger, err := u.ledger(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	fee, ok := ledger.Get(feeID)
	if !ok {
		return nil, nil
	}
	return &fee, nil
}

func (u *feeUsecase) Total(ctx context.Context, sessionID string) (*entity.FeeTotalResponse, error) {
	ledger, err := u.ledger(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return &entity.FeeTotalResponse{
		Total:   ledger.Total(),
		HasFees: ledger.Has(),
	}, nil
}

func (u *feeUsecase) Reset(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("session is required")
	}
	return u.repo.Clear(ctx, sessionID)
}
