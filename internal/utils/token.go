package utils // package utils provides helper functions for token creation and hashing

import (
    "errors" // sentinel errors and errors.Is for classifying verification failures
    "time"   // time utilities for generating expirations

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// Verification failures are collapsed into three categories so that callers
// (the request guard and its tests) can tell them apart without inspecting
// library internals.
var (
    // ErrTokenMalformed means the string does not parse as a three-part JWT.
    ErrTokenMalformed = errors.New("token malformed")
    // ErrTokenExpired means the signature checked out but exp has passed.
    ErrTokenExpired = errors.New("token expired")
    // ErrTokenSignature covers a wrong signature or an unexpected algorithm.
    ErrTokenSignature = errors.New("token signature invalid")
)

// Claims is the claim set embedded in every session token: the user's id,
// email and account type plus the registered iat/exp pair. A token is valid
// purely by its signature and embedded expiry; claims are never re-checked
// against the credential store, so an email or type change only shows up
// after re-login.
type Claims struct {
    UserID   uint64 `json:"id"`
    Email    string `json:"email"`
    UserType string `json:"userType"`
    jwt.RegisteredClaims
}

// SessionToken represents a signed JWT session token along with its expiry.
// The Token field contains the JWT string. Exp stores the expiration
// timestamp as a time.Time. Session tokens are sent in the Authorization
// header when calling protected endpoints.
type SessionToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// NewSessionToken builds and signs an HS256 JWT for a user. It takes the
// signing secret, the user's id, email and account type, and a TTL. The
// expiry defaults to 24 hours when ttl is zero or negative. The returned
// SessionToken carries both the serialized string and the expiration time.
func NewSessionToken(secret string, userID uint64, email, userType string, ttl time.Duration) (SessionToken, error) {
    if ttl <= 0 {
        ttl = 24 * time.Hour
    }
    now := time.Now().UTC()
    exp := now.Add(ttl)
    claims := Claims{
        UserID:   userID,
        Email:    email,
        UserType: userType,
        RegisteredClaims: jwt.RegisteredClaims{
            IssuedAt:  jwt.NewNumericDate(now),
            ExpiresAt: jwt.NewNumericDate(exp),
        },
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return SessionToken{}, err
    }
    return SessionToken{Token: signed, Exp: exp}, nil
}

// VerifySessionToken parses and validates a serialized token. On success the
// embedded claims are returned unchanged. On failure the error is one of
// ErrTokenMalformed, ErrTokenExpired or ErrTokenSignature. Tokens signed
// with any algorithm other than HMAC are rejected as signature failures.
func VerifySessionToken(secret, raw string) (*Claims, error) {
    claims := &Claims{}
    tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, jwt.ErrTokenSignatureInvalid
        }
        return []byte(secret), nil
    })
    if err != nil {
        switch {
        case errors.Is(err, jwt.ErrTokenMalformed):
            return nil, ErrTokenMalformed
        case errors.Is(err, jwt.ErrTokenExpired):
            return nil, ErrTokenExpired
        default:
            return nil, ErrTokenSignature
        }
    }
    if !tok.Valid {
        return nil, ErrTokenSignature
    }
    return claims, nil
}
