package handler

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/99minutos/auth-service/internal/core/domain"
)

type stubAuthenticator struct {
	authFn func(ctx context.Context, email, password string) (string, bool, error)
	calls  int
}

func (s *stubAuthenticator) Authenticate(ctx context.Context, email, password string) (string, bool, error) {
	s.calls++
	return s.authFn(ctx, email, password)
}

func tokenAuthenticator(token string) *stubAuthenticator {
	return &stubAuthenticator{
		authFn: func(ctx context.Context, email, password string) (string, bool, error) {
			return token, true, nil
		},
	}
}

type stubEmailChecker struct {
	valid bool
	email string
	calls int
}

func (s *stubEmailChecker) IsValid(email string) bool {
	s.calls++
	s.email = email
	return s.valid
}

type panickingEmailChecker struct{}

func (panickingEmailChecker) IsValid(string) bool {
	panic("checker exploded")
}

func newController(auth *stubAuthenticator, emails *stubEmailChecker) *LoginController {
	return NewLoginController(auth, emails, zerolog.Nop())
}

func loginReq(email, password string) *LoginRequest {
	return &LoginRequest{Body: &LoginBody{Email: email, Password: password}}
}

func assertError(t *testing.T, resp ResponseEnvelope, status int, kind domain.LoginOutcome, param string) {
	t.Helper()
	if resp.StatusCode != status {
		t.Fatalf("expected %d, got %d", status, resp.StatusCode)
	}
	body, ok := resp.Body.(ErrorBody)
	if !ok {
		t.Fatalf("expected ErrorBody, got %T", resp.Body)
	}
	if body.Error != string(kind) || body.Param != param {
		t.Fatalf("unexpected error body: %+v", body)
	}
	if body.Message == "" {
		t.Fatalf("expected a message in %+v", body)
	}
}

func TestLoginController_MissingEmail(t *testing.T) {
	auth := tokenAuthenticator("valid_token")
	lc := newController(auth, &stubEmailChecker{valid: true})

	resp := lc.Handle(context.Background(), loginReq("", "any_password"))

	assertError(t, resp, http.StatusBadRequest, domain.OutcomeMissingParam, "email")
	if auth.calls != 0 {
		t.Fatalf("authenticator should not be called")
	}
}

func TestLoginController_MissingEmailAndPasswordReportsEmail(t *testing.T) {
	lc := newController(tokenAuthenticator("valid_token"), &stubEmailChecker{valid: true})

	resp := lc.Handle(context.Background(), loginReq("", ""))

	assertError(t, resp, http.StatusBadRequest, domain.OutcomeMissingParam, "email")
}

func TestLoginController_MissingPassword(t *testing.T) {
	auth := tokenAuthenticator("valid_token")
	lc := newController(auth, &stubEmailChecker{valid: true})

	resp := lc.Handle(context.Background(), loginReq("any_email@mail.com", ""))

	assertError(t, resp, http.StatusBadRequest, domain.OutcomeMissingParam, "password")
	if auth.calls != 0 {
		t.Fatalf("authenticator should not be called")
	}
}

func TestLoginController_InvalidEmail(t *testing.T) {
	auth := tokenAuthenticator("valid_token")
	emails := &stubEmailChecker{valid: false}
	lc := newController(auth, emails)

	resp := lc.Handle(context.Background(), loginReq("invalid_email.com", "any_password"))

	assertError(t, resp, http.StatusBadRequest, domain.OutcomeInvalidParam, "email")
	if auth.calls != 0 {
		t.Fatalf("authenticator should not be called")
	}
}

func TestLoginController_InvalidEmailBeatsMissingPassword(t *testing.T) {
	lc := newController(tokenAuthenticator("valid_token"), &stubEmailChecker{valid: false})

	resp := lc.Handle(context.Background(), loginReq("invalid_email.com", ""))

	assertError(t, resp, http.StatusBadRequest, domain.OutcomeInvalidParam, "email")
}

func TestLoginController_CallsEmailCheckerWithEmail(t *testing.T) {
	emails := &stubEmailChecker{valid: true}
	lc := newController(tokenAuthenticator("valid_token"), emails)

	_ = lc.Handle(context.Background(), loginReq("any_email@mail.com", "any_password"))

	if emails.calls != 1 || emails.email != "any_email@mail.com" {
		t.Fatalf("checker called %d times with %q", emails.calls, emails.email)
	}
}

func TestLoginController_NilRequest(t *testing.T) {
	auth := tokenAuthenticator("valid_token")
	lc := newController(auth, &stubEmailChecker{valid: true})

	resp := lc.Handle(context.Background(), nil)

	assertError(t, resp, http.StatusInternalServerError, domain.OutcomeInternal, "")
	if auth.calls != 0 {
		t.Fatalf("authenticator should not be called")
	}
}

func TestLoginController_RequestWithoutBody(t *testing.T) {
	auth := tokenAuthenticator("valid_token")
	lc := newController(auth, &stubEmailChecker{valid: true})

	resp := lc.Handle(context.Background(), &LoginRequest{})

	assertError(t, resp, http.StatusInternalServerError, domain.OutcomeInternal, "")
	if auth.calls != 0 {
		t.Fatalf("authenticator should not be called")
	}
}

func TestLoginController_PassesCredentials(t *testing.T) {
	var gotEmail, gotPassword string
	auth := &stubAuthenticator{
		authFn: func(ctx context.Context, email, password string) (string, bool, error) {
			gotEmail, gotPassword = email, password
			return "valid_token", true, nil
		},
	}
	lc := newController(auth, &stubEmailChecker{valid: true})

	_ = lc.Handle(context.Background(), loginReq("any_email@mail.com", "any_password"))

	if gotEmail != "any_email@mail.com" || gotPassword != "any_password" {
		t.Fatalf("unexpected args: %s %s", gotEmail, gotPassword)
	}
}

func TestLoginController_Unauthorized(t *testing.T) {
	auth := &stubAuthenticator{
		authFn: func(ctx context.Context, email, password string) (string, bool, error) {
			return "", false, nil
		},
	}
	lc := newController(auth, &stubEmailChecker{valid: true})

	resp := lc.Handle(context.Background(), loginReq("invalid_email@mail.com", "invalid_password"))

	assertError(t, resp, http.StatusUnauthorized, domain.OutcomeUnauthorized, "")
}

func TestLoginController_Success(t *testing.T) {
	lc := newController(tokenAuthenticator("valid_token"), &stubEmailChecker{valid: true})

	resp := lc.Handle(context.Background(), loginReq("valid_email@mail.com", "valid_password"))

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body, ok := resp.Body.(TokenBody)
	if !ok || body.AccessToken != "valid_token" {
		t.Fatalf("unexpected body: %+v", resp.Body)
	}
}

func TestLoginController_Idempotent(t *testing.T) {
	lc := newController(tokenAuthenticator("valid_token"), &stubEmailChecker{valid: true})

	first := lc.Handle(context.Background(), loginReq("valid_email@mail.com", "valid_password"))
	second := lc.Handle(context.Background(), loginReq("valid_email@mail.com", "valid_password"))

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("envelopes differ: %+v vs %+v", first, second)
	}
}

func TestLoginController_AuthenticatorError(t *testing.T) {
	auth := &stubAuthenticator{
		authFn: func(ctx context.Context, email, password string) (string, bool, error) {
			return "", false, errors.New("mongo: connection reset")
		},
	}
	lc := newController(auth, &stubEmailChecker{valid: true})

	resp := lc.Handle(context.Background(), loginReq("any_email@mail.com", "any_password"))

	assertError(t, resp, http.StatusInternalServerError, domain.OutcomeInternal, "")
	body := resp.Body.(ErrorBody)
	if body.Message != domain.ErrInternal.Error() {
		t.Fatalf("internal detail leaked: %q", body.Message)
	}
}

func TestLoginController_AuthenticatorMisconfigured(t *testing.T) {
	auth := &stubAuthenticator{
		authFn: func(ctx context.Context, email, password string) (string, bool, error) {
			return "", false, domain.Misconfigured("userDirectory")
		},
	}
	lc := newController(auth, &stubEmailChecker{valid: true})

	resp := lc.Handle(context.Background(), loginReq("any_email@mail.com", "any_password"))

	assertError(t, resp, http.StatusInternalServerError, domain.OutcomeInternal, "")
}

func TestLoginController_AuthenticatorPanics(t *testing.T) {
	auth := &stubAuthenticator{
		authFn: func(ctx context.Context, email, password string) (string, bool, error) {
			panic("nil pointer somewhere")
		},
	}
	lc := newController(auth, &stubEmailChecker{valid: true})

	resp := lc.Handle(context.Background(), loginReq("any_email@mail.com", "any_password"))

	assertError(t, resp, http.StatusInternalServerError, domain.OutcomeInternal, "")
}

func TestLoginController_NoAuthenticator(t *testing.T) {
	lc := NewLoginController(nil, &stubEmailChecker{valid: true}, zerolog.Nop())

	resp := lc.Handle(context.Background(), loginReq("any_email@mail.com", "any_password"))

	assertError(t, resp, http.StatusInternalServerError, domain.OutcomeInternal, "")
}

func TestLoginController_NoEmailChecker(t *testing.T) {
	lc := NewLoginController(tokenAuthenticator("valid_token"), nil, zerolog.Nop())

	resp := lc.Handle(context.Background(), loginReq("any_email@mail.com", "any_password"))

	assertError(t, resp, http.StatusInternalServerError, domain.OutcomeInternal, "")
}

func TestLoginController_EmailCheckerPanics(t *testing.T) {
	lc := NewLoginController(tokenAuthenticator("valid_token"), panickingEmailChecker{}, zerolog.Nop())

	resp := lc.Handle(context.Background(), loginReq("any_email@mail.com", "any_password"))

	assertError(t, resp, http.StatusInternalServerError, domain.OutcomeInternal, "")
}

func TestOutcomeOf(t *testing.T) {
	cases := []struct {
		resp ResponseEnvelope
		want domain.LoginOutcome
	}{
		{ResponseEnvelope{StatusCode: http.StatusOK, Body: TokenBody{AccessToken: "t"}}, domain.OutcomeSuccess},
		{missingParam("email"), domain.OutcomeMissingParam},
		{invalidParam("email"), domain.OutcomeInvalidParam},
		{unauthorized(), domain.OutcomeUnauthorized},
		{serverError(), domain.OutcomeInternal},
		{ResponseEnvelope{StatusCode: http.StatusTeapot}, domain.OutcomeInternal},
	}
	for _, tc := range cases {
		if got := OutcomeOf(tc.resp); got != tc.want {
			t.Errorf("OutcomeOf(%d) = %s, want %s", tc.resp.StatusCode, got, tc.want)
		}
	}
}
