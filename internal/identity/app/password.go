package app

import (
	"context"
	"errors"
	"strings"

	"github.com/dwikikusuma/rajah-storefront/internal/identity/domain"
	"golang.org/x/crypto/bcrypt"
)

var ErrUnknownAccount = errors.New("unknown account")

func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(b), err
}

func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// BcryptVerifier checks passwords against the bcrypt hashes held by an AccountStore.
type BcryptVerifier struct {
	accounts AccountStore
}

func NewBcryptVerifier(accounts AccountStore) *BcryptVerifier {
	return &BcryptVerifier{accounts: accounts}
}

func (v *BcryptVerifier) Verify(ctx context.Context, email, password string) (domain.Account, error) {
	acct, err := v.accounts.ByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, ErrUnknownAccount) {
		return domain.Account{}, ErrInvalidCredentials
	}
	if err != nil {
		return domain.Account{}, err
	}
	if !CheckPassword(acct.PasswordHash, password) {
		return domain.Account{}, ErrInvalidCredentials
	}
	return acct, nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
