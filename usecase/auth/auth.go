package auth

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/fastygo/warehouse-console/api/rest"
	"github.com/fastygo/warehouse-console/api/transport"
	"github.com/fastygo/warehouse-console/domain"
	"github.com/fastygo/warehouse-console/usecase"
)

// Sessions is the session owner the auth flow writes to.
type Sessions interface {
	Establish(ctx context.Context, token string, user interface{}) error
	SetUser(ctx context.Context, user interface{}) error
	Clear(ctx context.Context) error
	Current() domain.Session
}

type UseCase struct {
	api      *rest.AuthAPI
	sessions Sessions
	logger   *zap.Logger
}

func New(api *rest.AuthAPI, sessions Sessions, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		api:      api,
		sessions: sessions,
		logger:   logger,
	}
}

// Login stores the token first, then loads the profile. A failed profile load does not
// fail the login unless it also cost the session.
func (uc *UseCase) Login(ctx context.Context, username, password string) (domain.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.Session{}, domain.NewError(domain.ErrCodeInvalid, "username and password are required")
	}

	token, err := uc.api.Login(ctx, username, password)
	if err != nil {
		return domain.Session{}, err
	}
	if err := uc.sessions.Establish(ctx, token.AccessToken, nil); err != nil {
		return domain.Session{}, err
	}

	if _, err := uc.RefreshProfile(ctx); err != nil {
		if !uc.sessions.Current().LoggedIn() {
			return domain.Session{}, err
		}
		uc.logger.Warn("profile unavailable after login", zap.String("username", username), zap.Error(err))
	}
	return uc.sessions.Current(), nil
}

func (uc *UseCase) Logout(ctx context.Context) error {
	return uc.sessions.Clear(ctx)
}

// RefreshProfile loads /users/me into the session.
func (uc *UseCase) RefreshProfile(ctx context.Context) (*domain.User, error) {
	if !uc.sessions.Current().LoggedIn() {
		return nil, domain.ErrNotLoggedIn
	}
	raw, err := uc.api.Me(ctx)
	if err != nil {
		return nil, err
	}
	if err := uc.sessions.SetUser(ctx, json.RawMessage(raw)); err != nil {
		return nil, err
	}
	return uc.sessions.Current().Profile()
}

// UpdateProfile sends the changes and reloads the profile from the backend.
func (uc *UseCase) UpdateProfile(ctx context.Context, req transport.ProfileUpdateRequest) (*domain.User, error) {
	if !uc.sessions.Current().LoggedIn() {
		return nil, domain.ErrNotLoggedIn
	}
	if _, err := uc.api.UpdateMe(ctx, req); err != nil {
		return nil, err
	}
	return uc.RefreshProfile(ctx)
}

// Whoami reports the cached profile and what the token itself says.
type Whoami struct {
	LoggedIn bool              `json:"logged_in"`
	IsAdmin  bool              `json:"is_admin"`
	User     *domain.User      `json:"user,omitempty"`
	Token    *domain.TokenInfo `json:"token,omitempty"`
}

func (uc *UseCase) Whoami() (Whoami, error) {
	sess := uc.sessions.Current()
	out := Whoami{LoggedIn: sess.LoggedIn(), IsAdmin: sess.IsAdmin()}
	user, err := sess.Profile()
	if err != nil {
		return out, err
	}
	out.User = user
	if sess.LoggedIn() {
		if info, err := sess.TokenInfo(); err == nil {
			out.Token = &info
		} else {
			uc.logger.Debug("token is not a readable JWT", zap.Error(err))
		}
	}
	return out, nil
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (uc *UseCase) Register(d *usecase.Dispatcher) {
	d.RegisterAction("auth/login", usecase.Action(func(ctx context.Context, c credentials) (interface{}, error) {
		sess, err := uc.Login(ctx, c.Username, c.Password)
		if err != nil {
			return nil, err
		}
		return sess.Profile()
	}))
	d.RegisterAction("auth/logout", usecase.Action(func(ctx context.Context, _ struct{}) (interface{}, error) {
		return nil, uc.Logout(ctx)
	}))
	d.RegisterAction("auth/profile", usecase.Action(func(ctx context.Context, _ struct{}) (interface{}, error) {
		return uc.RefreshProfile(ctx)
	}))
	d.RegisterAction("auth/update-profile", usecase.Action(func(ctx context.Context, req transport.ProfileUpdateRequest) (interface{}, error) {
		return uc.UpdateProfile(ctx, req)
	}))
	d.RegisterGetter("auth/whoami", func(context.Context) (interface{}, error) {
		return uc.Whoami()
	})
}
