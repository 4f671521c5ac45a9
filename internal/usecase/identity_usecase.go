package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"spiceshop/internal/domain/model"
	repo "spiceshop/internal/repository"
	"spiceshop/internal/validator"

	"go.uber.org/zap"
)

// ユーザー名またはパスワードが違う
var ErrInvalidCredentials = errors.New("invalid credentials")

// Session はログイン中の管理者。
type Session struct {
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
	TokenVersion int       `json:"token_version"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type SignInOutput struct {
	AccessToken string  `json:"access_token"`
	ExpiresIn   int     `json:"expires_in"`
	Session     Session `json:"session"`
}

// IdentityUsecase は管理者のログイン/ログアウトとセッション確認。
// 管理者かどうかは username が adminUsername と一致するかだけで決まる。
type IdentityUsecase struct {
	users         repo.AdminUserRepository
	hasher        PasswordHasher
	verifier      PasswordVerifier
	issuer        *JWTIssuer
	idGen         IDGenerator
	clock         Clock
	adminUsername string
	logger        *zap.Logger
}

func NewIdentityUsecase(
	users repo.AdminUserRepository,
	hasher PasswordHasher,
	verifier PasswordVerifier,
	issuer *JWTIssuer,
	idGen IDGenerator,
	clock Clock,
	adminUsername string,
	logger *zap.Logger,
) *IdentityUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IdentityUsecase{
		users:         users,
		hasher:        hasher,
		verifier:      verifier,
		issuer:        issuer,
		idGen:         idGen,
		clock:         clock,
		adminUsername: adminUsername,
		logger:        logger,
	}
}

func (u *IdentityUsecase) IsAdmin(s Session) bool {
	return u.adminUsername != "" && s.Username == u.adminUsername
}

// SignIn はパスワードを確かめてトークンを発行する。
// 管理者以外はパスワードが合っていてもセッションを作らない。
func (u *IdentityUsecase) SignIn(ctx context.Context, username, password string) (SignInOutput, error) {
	username = strings.TrimSpace(username)
	if err := validator.Credentials(username, password); err != nil {
		return SignInOutput{}, badRequest(err)
	}

	user, err := u.users.FindByUsername(ctx, username)
	if err != nil {
		return SignInOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil || !u.verifier.Verify(password, user.PasswordHash) {
		return SignInOutput{}, NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error())
	}

	now := u.clock.Now()
	s := Session{UserID: user.ID, Username: user.Username, TokenVersion: user.TokenVersion}
	if !u.IsAdmin(s) {
		u.logger.Warn("non-admin sign in rejected", zap.String("username", user.Username))
		return SignInOutput{}, NewHTTPError(http.StatusForbidden, "admin only")
	}

	token, exp, err := u.issuer.Issue(user.ID, user.Username, user.TokenVersion, now)
	if err != nil {
		return SignInOutput{}, NewHTTPError(http.StatusInternalServerError, "token error")
	}
	s.ExpiresAt = exp

	//最終ログイン時刻更新
	user.LastLoginAt = &now
	user.UpdatedAt = now
	if err := u.users.Update(ctx, user); err != nil {
		return SignInOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.logger.Info("admin signed in", zap.String("username", user.Username))
	return SignInOutput{
		AccessToken: token,
		ExpiresIn:   int(exp.Sub(now).Seconds()),
		Session:     s,
	}, nil
}

// SignOut は token_version を上げて、発行済みトークンを全部無効にする。
func (u *IdentityUsecase) SignOut(ctx context.Context, s Session) error {
	if s.UserID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := u.users.IncrementTokenVersion(ctx, s.UserID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	u.logger.Info("admin signed out", zap.String("username", s.Username))
	return nil
}

// CurrentSession はトークンが今も有効ならセッションを返す。
func (u *IdentityUsecase) CurrentSession(ctx context.Context, rawToken string) (Session, bool, error) {
	if strings.TrimSpace(rawToken) == "" {
		return Session{}, false, nil
	}
	claims, err := u.issuer.Parse(rawToken)
	if err != nil {
		return Session{}, false, nil
	}

	user, err := u.users.FindByID(ctx, claims.Subject)
	if err != nil {
		return Session{}, false, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	// ログアウト済み（token_version が進んでいる）
	if user == nil || user.TokenVersion != claims.TokenVersion {
		return Session{}, false, nil
	}

	return Session{
		UserID:       user.ID,
		Username:     user.Username,
		TokenVersion: user.TokenVersion,
		ExpiresAt:    claims.ExpiresAt.Time,
	}, true, nil
}

// EnsureAdmin は管理者アカウントが無ければ作る（起動時）。
func (u *IdentityUsecase) EnsureAdmin(ctx context.Context, password string) error {
	if u.adminUsername == "" || password == "" {
		return nil
	}

	user, err := u.users.FindByUsername(ctx, u.adminUsername)
	if err != nil {
		return err
	}
	if user != nil {
		return nil
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return err
	}
	now := u.clock.Now()
	err = u.users.Create(ctx, &model.AdminUser{
		ID:           u.idGen.NewID(),
		Username:     u.adminUsername,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	// 別プロセスが先に作った
	if errors.Is(err, repo.ErrConflict) {
		return nil
	}
	if err != nil {
		return err
	}
	u.logger.Info("admin account created", zap.String("username", u.adminUsername))
	return nil
}
