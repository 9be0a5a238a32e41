package authapi

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"menlo.ai/learning-client/app/domain/navigation"
	"menlo.ai/learning-client/app/infrastructure/apiclient"
	"menlo.ai/learning-client/app/utils/logger"
)

var ErrInvalidCredentials = errors.New("authapi: invalid credentials")

type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Role        Role   `json:"role"`
}

type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult carries the issued token and the location the user was on when their
// previous session ended, if any.
type LoginResult struct {
	Token    Token
	ReturnTo string
}

type AuthService struct {
	client    *apiclient.Client
	navigator navigation.Navigator
}

func NewService(client *apiclient.Client, navigator navigation.Navigator) *AuthService {
	return &AuthService{
		client:    client,
		navigator: navigator,
	}
}

// Login exchanges email and password for a token. With remember set the token
// survives restarts, otherwise it lives for the session only.
func (s *AuthService) Login(ctx context.Context, email, password string, remember bool) (*LoginResult, error) {
	token, err := apiclient.Send[Token](ctx, s.client, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/login",
		Body:   apiclient.JSONBody{Value: credentials{Email: email, Password: password}},
	})
	if err != nil {
		return nil, err
	}
	return s.startSession(ctx, token, remember)
}

// LoginForm is Login against the OAuth2 password endpoint.
func (s *AuthService) LoginForm(ctx context.Context, email, password string, remember bool) (*LoginResult, error) {
	token, err := apiclient.Send[Token](ctx, s.client, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/token",
		Body: apiclient.FormValues(url.Values{
			"username": {email},
			"password": {password},
		}),
	})
	if err != nil {
		return nil, err
	}
	return s.startSession(ctx, token, remember)
}

func (s *AuthService) startSession(ctx context.Context, token Token, remember bool) (*LoginResult, error) {
	if token.AccessToken == "" {
		return nil, ErrInvalidCredentials
	}
	// responses cached for a previous user must not leak into this session
	s.client.Cache().Invalidate(ctx, "")
	if err := s.client.Session().SetToken(ctx, token.AccessToken, remember); err != nil {
		return nil, err
	}
	returnTo, _ := s.client.Session().TakeReturnTo(ctx)
	logger.GetLogger().WithField("role", token.Role).Info("authapi: logged in")
	return &LoginResult{Token: token, ReturnTo: returnTo}, nil
}

// Signup creates a student account through the student router.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*User, error) {
	return s.createUser(ctx, "/signup", req)
}

func (s *AuthService) Register(ctx context.Context, req SignupRequest) (*User, error) {
	return s.createUser(ctx, "/register", req)
}

func (s *AuthService) createUser(ctx context.Context, path string, req SignupRequest) (*User, error) {
	if req.Role == "" {
		req.Role = RoleStudent
	}
	user, err := apiclient.Send[*User](ctx, s.client, apiclient.Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   apiclient.JSONBody{Value: req},
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ForgotPassword asks the backend to mail a reset link. The returned message is the
// backend's confirmation text.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	resp, err := s.client.Do(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/forgot-password",
		Body:   apiclient.JSONBody{Value: map[string]string{"email": email}},
	})
	if err != nil {
		return "", err
	}
	return message(resp.Payload), nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) (string, error) {
	resp, err := s.client.Do(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/reset-password",
		Body: apiclient.JSONBody{Value: map[string]string{
			"token":        token,
			"new_password": newPassword,
		}},
	})
	if err != nil {
		return "", err
	}
	return message(resp.Payload), nil
}

// Logout forgets the token, drops every cached response and returns to the login view.
func (s *AuthService) Logout(ctx context.Context) {
	s.client.Session().ClearToken(ctx)
	s.client.Cache().Invalidate(ctx, "")
	if s.navigator != nil {
		s.navigator.ToLogin(ctx)
	}
}

// CurrentUser decodes the stored token. It returns session.ErrNoToken when logged out.
func (s *AuthService) CurrentUser() (*User, error) {
	claims, err := s.client.Session().Claims()
	if err != nil {
		return nil, err
	}
	return &User{Email: claims.Email(), Role: Role(claims.Role)}, nil
}

func message(p apiclient.Payload) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := p.Decode(&body); err == nil && body.Message != "" {
		return body.Message
	}
	return p.Text()
}
