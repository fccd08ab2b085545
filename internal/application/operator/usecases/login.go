package usecases

import (
	"context"

	"lineup/internal/domain/operator"
	"lineup/internal/shared/errors"
	"lineup/internal/shared/logger"
)

type LoginCommand struct {
	Username string
	Password string
}

type LoginResult struct {
	OperatorID   uint
	Username     string
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// PasswordVerifier compares a plaintext credential against a stored hash.
// The comparison itself is delegated entirely to the auth infrastructure.
type PasswordVerifier interface {
	Verify(password, hash string) error
}

// TokenIssuer mints the operator capability tokens required by the
// privileged ledger operations.
type TokenIssuer interface {
	Generate(operatorID uint, username string) (access, refresh string, expiresIn int64, err error)
}

type LoginExecutor interface {
	Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error)
}

type LoginUseCase struct {
	repo     operator.Repository
	verifier PasswordVerifier
	issuer   TokenIssuer
	logger   logger.Interface
}

func NewLoginUseCase(
	repo operator.Repository,
	verifier PasswordVerifier,
	issuer TokenIssuer,
	log logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		repo:     repo,
		verifier: verifier,
		issuer:   issuer,
		logger:   log,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	if cmd.Username == "" || cmd.Password == "" {
		return nil, errors.NewValidationError("username and password are required")
	}

	op, err := uc.repo.ByUsername(ctx, cmd.Username)
	if err != nil {
		if errors.IsNotFoundError(err) {
			// Same response as a wrong password so usernames cannot be
			// probed.
			return nil, errors.NewUnauthorizedError("invalid credentials")
		}
		uc.logger.Errorw("failed to look up operator", "error", err)
		return nil, err
	}

	if err := uc.verifier.Verify(cmd.Password, op.PasswordHash()); err != nil {
		uc.logger.Warnw("operator login rejected", "username", cmd.Username)
		return nil, errors.NewUnauthorizedError("invalid credentials")
	}

	access, refresh, expiresIn, err := uc.issuer.Generate(op.ID(), op.Username())
	if err != nil {
		uc.logger.Errorw("failed to issue operator tokens", "error", err)
		return nil, errors.NewInternalError("failed to issue tokens")
	}

	uc.logger.Infow("operator logged in", "operator_id", op.ID())

	return &LoginResult{
		OperatorID:   op.ID(),
		Username:     op.Username(),
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    expiresIn,
	}, nil
}
