package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/auth-service/internal/api/metrics"
	"github.com/99minutos/auth-service/internal/core/domain"
	"github.com/99minutos/auth-service/internal/core/ports"
)

// LoginBody is the decoded login payload.
type LoginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the transport-neutral input of LoginController. A nil Body
// means the payload was absent or could not be decoded.
type LoginRequest struct {
	Body *LoginBody
}

// ResponseEnvelope is what LoginController hands back to the transport.
type ResponseEnvelope struct {
	StatusCode int
	Body       any
}

// ErrorBody is the body of every non-200 envelope. Error is the machine
// readable kind, Param names the offending field for 400s.
type ErrorBody struct {
	Error   string `json:"error"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

// TokenBody is the body of a successful login.
type TokenBody struct {
	AccessToken string `json:"accessToken"`
}

// LoginController validates login input, runs the Authenticator and maps every
// outcome to a ResponseEnvelope. Handle never panics and never returns an error.
type LoginController struct {
	auth   ports.Authenticator
	emails ports.EmailFormatChecker
	log    zerolog.Logger
}

func NewLoginController(auth ports.Authenticator, emails ports.EmailFormatChecker, log zerolog.Logger) *LoginController {
	return &LoginController{auth: auth, emails: emails, log: log}
}

// Handle checks, in order: request presence, email presence, email format,
// password presence. The first failure wins.
func (lc *LoginController) Handle(ctx context.Context, req *LoginRequest) (resp ResponseEnvelope) {
	defer func() {
		if r := recover(); r != nil {
			lc.log.Error().Interface("panic", r).Msg("login collaborator panicked")
			resp = serverError()
		}
		metrics.LoginAttemptsTotal.WithLabelValues(string(OutcomeOf(resp))).Inc()
	}()

	if req == nil || req.Body == nil {
		lc.log.Warn().Msg("login request without body")
		return serverError()
	}
	body := req.Body

	if body.Email == "" {
		return missingParam("email")
	}
	if lc.emails == nil {
		return lc.internalFailure(domain.Misconfigured("emailFormatChecker"))
	}
	if !lc.emails.IsValid(body.Email) {
		return invalidParam("email")
	}
	if body.Password == "" {
		return missingParam("password")
	}
	if lc.auth == nil {
		return lc.internalFailure(domain.Misconfigured("authenticator"))
	}

	start := time.Now()
	token, ok, err := lc.auth.Authenticate(ctx, body.Email, body.Password)
	observeAuthenticate(start, ok, err)

	if err != nil {
		var missing *domain.MissingFieldError
		if errors.As(err, &missing) {
			return missingParam(missing.Field)
		}
		return lc.internalFailure(err)
	}
	if !ok {
		return unauthorized()
	}

	return ResponseEnvelope{StatusCode: http.StatusOK, Body: TokenBody{AccessToken: token}}
}

func (lc *LoginController) internalFailure(err error) ResponseEnvelope {
	lc.log.Error().Err(err).Msg("login failed with internal error")
	return serverError()
}

// OutcomeOf classifies an envelope produced by LoginController.
func OutcomeOf(resp ResponseEnvelope) domain.LoginOutcome {
	if resp.StatusCode == http.StatusOK {
		return domain.OutcomeSuccess
	}
	if body, ok := resp.Body.(ErrorBody); ok {
		return domain.LoginOutcome(body.Error)
	}
	return domain.OutcomeInternal
}

func observeAuthenticate(start time.Time, ok bool, err error) {
	result := "token"
	switch {
	case err != nil:
		result = "error"
	case !ok:
		result = "rejected"
	}
	metrics.AuthenticateDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
}

func missingParam(field string) ResponseEnvelope {
	err := &domain.MissingFieldError{Field: field}
	return ResponseEnvelope{
		StatusCode: http.StatusBadRequest,
		Body:       ErrorBody{Error: string(domain.OutcomeMissingParam), Param: field, Message: err.Error()},
	}
}

func invalidParam(field string) ResponseEnvelope {
	err := &domain.InvalidFieldError{Field: field}
	return ResponseEnvelope{
		StatusCode: http.StatusBadRequest,
		Body:       ErrorBody{Error: string(domain.OutcomeInvalidParam), Param: field, Message: err.Error()},
	}
}

func unauthorized() ResponseEnvelope {
	return ResponseEnvelope{
		StatusCode: http.StatusUnauthorized,
		Body:       ErrorBody{Error: string(domain.OutcomeUnauthorized), Message: domain.ErrUnauthorized.Error()},
	}
}

func serverError() ResponseEnvelope {
	return ResponseEnvelope{
		StatusCode: http.StatusInternalServerError,
		Body:       ErrorBody{Error: string(domain.OutcomeInternal), Message: domain.ErrInternal.Error()},
	}
}
