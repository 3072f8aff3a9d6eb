package sessions

import (
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/securecookie"
)

const tokenName = "access_token"

var ErrInvalidToken = errors.New("invalid or expired token")

type tokenClaims struct {
	UserID   string `json:"uid"`
	IssuedAt int64  `json:"iat"`
}

// TokenCodec issues opaque bearer tokens: a signed and encrypted user id that
// expires after ttl.
type TokenCodec struct {
	codec *securecookie.SecureCookie
	ttl   time.Duration
}

func NewTokenCodec(hashKey, blockKey []byte, ttl time.Duration) *TokenCodec {
	codec := securecookie.New(hashKey, blockKey)
	codec.MaxAge(int(ttl / time.Second))
	codec.SetSerializer(securecookie.JSONEncoder{})
	return &TokenCodec{codec: codec, ttl: ttl}
}

func (t *TokenCodec) Issue(userID string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("cannot issue token without user id")
	}
	token, err := t.codec.Encode(tokenName, tokenClaims{UserID: userID, IssuedAt: time.Now().Unix()})
	if err != nil {
		return "", fmt.Errorf("failed to encode token: %w", err)
	}
	return token, nil
}

// Parse returns the user id carried by token.
func (t *TokenCodec) Parse(token string) (string, error) {
	var claims tokenClaims
	if err := t.codec.Decode(tokenName, token, &claims); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}

func (t *TokenCodec) TTL() time.Duration {
	return t.ttl
}
