package ports

import "context"

// Authenticator resolves credentials into an access token.
//
// ok is false when the email is unknown or the password does not match; the
// two cases are deliberately indistinguishable. err is reserved for invalid
// input and collaborator faults.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (token string, ok bool, err error)
}
