// Package federated handles sign-in tokens issued by an external identity
// provider.
//
// Trust boundary: token signatures are NOT verified here. The provider
// widget that hands over the token is assumed to have validated it. Do not
// accept tokens from any other source without adding real verification.
package federated

import (
	"encoding/json"
	"strings"

	"github.com/dmitrijs2005/marketfeed/internal/client/models"
	"github.com/dmitrijs2005/marketfeed/internal/client/repositories/users"
	"github.com/dmitrijs2005/marketfeed/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the identity read from a token payload.
type Claims struct {
	Email string
	Name  string
}

var segmentDecoder = jwt.NewParser(jwt.WithPaddingAllowed())

// ParseClaims reads the payload of a header.payload.signature token.
// Only the payload is decoded; it must be a JSON object carrying an email
// claim. A missing name falls back to the email local part. Every failure
// is common.ErrInvalidToken.
func ParseClaims(token string) (Claims, error) {
	parts := strings.Split(strings.TrimSpace(token), ".")
	if len(parts) != 3 {
		return Claims{}, common.ErrInvalidToken
	}

	payload, err := segmentDecoder.DecodeSegment(parts[1])
	if err != nil {
		return Claims{}, common.ErrInvalidToken
	}

	var mc jwt.MapClaims
	if err := json.Unmarshal(payload, &mc); err != nil || mc == nil {
		return Claims{}, common.ErrInvalidToken
	}

	email, _ := mc["email"].(string)
	email = users.Normalize(email)
	if email == "" {
		return Claims{}, common.ErrInvalidToken
	}

	name, _ := mc["name"].(string)
	name = strings.TrimSpace(name)
	if name == "" {
		name = models.LocalPart(email)
	}

	return Claims{Email: email, Name: name}, nil
}
