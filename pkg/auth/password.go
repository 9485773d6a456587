package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultBcryptCost = 12
	MinPasswordLen    = 8
	MaxPasswordLen    = 128

	// bcrypt only reads the first 72 bytes of its input.
	bcryptMaxInput = 72
)

// Complexity rule identifiers, reported alongside their messages.
const (
	RuleUppercase = "uppercase"
	RuleLowercase = "lowercase"
	RuleDigit     = "digit"
)

// PasswordRuleViolation is one unmet complexity requirement.
type PasswordRuleViolation struct {
	Rule    string
	Message string
}

// PasswordHasher hashes passwords with bcrypt at a fixed work factor.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) (*PasswordHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &PasswordHasher{cost: cost}, nil
}

// Cost returns the configured bcrypt work factor.
func (h *PasswordHasher) Cost() int {
	return h.cost
}

// HashPassword returns a salted bcrypt hash; equal inputs never share a hash.
func (h *PasswordHasher) HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	hashedBytes, err := bcrypt.GenerateFromPassword(bcryptInput(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// ComparePassword returns nil when password matches hashedPassword.
func ComparePassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), bcryptInput(password))
}

// bcryptInput pre-hashes inputs longer than bcrypt accepts so that every
// byte of a long password contributes to the hash.
func bcryptInput(password string) []byte {
	if len(password) <= bcryptMaxInput {
		return []byte(password)
	}
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

// PasswordViolations reports each missing character class separately.
// Length limits are enforced by request validation.
func PasswordViolations(password string) []PasswordRuleViolation {
	hasUpper := false
	hasLower := false
	hasDigit := false

	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	violations := make([]PasswordRuleViolation, 0, 3)
	if !hasUpper {
		violations = append(violations, PasswordRuleViolation{RuleUppercase, "Password must contain at least one uppercase letter"})
	}
	if !hasLower {
		violations = append(violations, PasswordRuleViolation{RuleLowercase, "Password must contain at least one lowercase letter"})
	}
	if !hasDigit {
		violations = append(violations, PasswordRuleViolation{RuleDigit, "Password must contain at least one digit"})
	}
	return violations
}
