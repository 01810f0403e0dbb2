package token

import (
	"strings"

	"github.com/go-playground/validator/v10"
	jwtlib "github.com/golang-jwt/jwt/v5"
	perrors "github.com/jrsteele09/rental-portal/internal/errors"
	"github.com/jrsteele09/rental-portal/users"
)

// UserClaims is the user shape embedded in an access token, either at the top
// level of the payload or nested under "user".
type UserClaims struct {
	ID        string   `json:"id,omitempty"`
	FirstName string   `json:"firstName,omitempty"`
	LastName  string   `json:"lastName,omitempty"`
	Email     string   `json:"email,omitempty"`
	Roles     []string `json:"roles,omitempty"`
	Kind      string   `json:"kind,omitempty"`
}

// Claims is the decoded access token payload
type Claims struct {
	UserClaims
	User *UserClaims `json:"user,omitempty"`
	jwtlib.RegisteredClaims
}

// principal is the schema a decoded payload has to satisfy before it is trusted
type principal struct {
	ID        string           `validate:"required"`
	FirstName string           `validate:"max=100"`
	LastName  string           `validate:"max=100"`
	Email     string           `validate:"required,email"`
	Kind      users.Kind       `validate:"required,oneof=user admin"`
	Roles     []users.RoleType `validate:"dive,required"`
}

// Decoder turns access tokens into users. Signatures are not checked here;
// the backend has already accepted the token through the Validator.
type Decoder struct {
	parser   *jwtlib.Parser
	validate *validator.Validate
}

func NewDecoder() *Decoder {
	return &Decoder{
		parser:   jwtlib.NewParser(),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Parse extracts the claims without verifying the signature
func (d *Decoder) Parse(accessToken string) (*Claims, error) {
	if strings.TrimSpace(accessToken) == "" {
		return nil, perrors.Wrapf(perrors.ErrInvalidClaims, "empty token")
	}
	claims := &Claims{}
	if _, _, err := d.parser.ParseUnverified(accessToken, claims); err != nil {
		return nil, perrors.Wrapf(perrors.ErrInvalidClaims, "parse token: %s", err.Error())
	}
	return claims, nil
}

// Decode parses the token and validates the embedded user against the schema
func (d *Decoder) Decode(accessToken string) (users.User, error) {
	claims, err := d.Parse(accessToken)
	if err != nil {
		return users.User{}, err
	}
	return d.UserFromClaims(claims)
}

func (d *Decoder) UserFromClaims(claims *Claims) (users.User, error) {
	uc := claims.UserClaims
	if claims.User != nil {
		uc = *claims.User
	}
	if uc.ID == "" {
		uc.ID = claims.Subject
	}

	roles := make([]users.RoleType, 0, len(uc.Roles))
	for _, r := range uc.Roles {
		roles = append(roles, users.RoleType(strings.ToLower(strings.TrimSpace(r))))
	}
	kind := users.Kind(strings.ToLower(uc.Kind))
	if kind == "" {
		kind = users.KindForRoles(roles)
	}

	p := principal{
		ID:        uc.ID,
		FirstName: uc.FirstName,
		LastName:  uc.LastName,
		Email:     uc.Email,
		Kind:      kind,
		Roles:     roles,
	}
	if err := d.validate.Struct(p); err != nil {
		return users.User{}, perrors.Wrapf(perrors.ErrInvalidClaims, "claims schema: %s", err.Error())
	}

	return users.User{
		ID:        p.ID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Roles:     p.Roles,
		Kind:      p.Kind,
	}, nil
}
