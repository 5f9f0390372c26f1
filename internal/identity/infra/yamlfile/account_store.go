package yamlfile

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dwikikusuma/rajah-storefront/internal/identity/app"
	"github.com/dwikikusuma/rajah-storefront/internal/identity/domain"
	"gopkg.in/yaml.v3"
)

type file struct {
	Accounts []domain.Account `yaml:"accounts"`
}

// AccountStore is a read-only account list loaded from YAML, keyed by normalized email.
type AccountStore struct {
	byEmail map[string]domain.Account
}

func Open(path string) (*AccountStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open accounts: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func Parse(r io.Reader) (*AccountStore, error) {
	var doc file
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode accounts: %w", err)
	}

	s := &AccountStore{byEmail: make(map[string]domain.Account, len(doc.Accounts))}
	for i, a := range doc.Accounts {
		if a.ID == "" || a.Email == "" || a.PasswordHash == "" {
			return nil, fmt.Errorf("account %d: id, email and password_hash are required", i)
		}
		key := app.NormalizeEmail(a.Email)
		if _, dup := s.byEmail[key]; dup {
			return nil, fmt.Errorf("account %d: duplicate email %s", i, key)
		}
		a.Email = key
		s.byEmail[key] = a
	}
	return s, nil
}

func (s *AccountStore) ByEmail(_ context.Context, email string) (domain.Account, error) {
	a, ok := s.byEmail[app.NormalizeEmail(email)]
	if !ok {
		return domain.Account{}, app.ErrUnknownAccount
	}
	return a, nil
}

func (s *AccountStore) Len() int {
	return len(s.byEmail)
}
