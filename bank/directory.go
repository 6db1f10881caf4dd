package bank

import "fmt"

// Directory is the set of known accounts, keyed by derived username.
// The account list is small and ordered, so lookup is a linear scan.
// Accounts are only removed (closure); there is no runtime creation.
//
// A Directory is not safe for concurrent use on its own; the owning
// Service serializes all access.
type Directory struct {
	accounts []*Account
}

// NewDirectory derives each account's username and builds the directory.
// Usernames must be unique; a collision is a configuration error, not
// something to resolve at lookup time.
func NewDirectory(accounts ...*Account) (*Directory, error) {
	d := &Directory{}
	seen := make(map[string]string, len(accounts))
	for _, acc := range accounts {
		acc.Username = DeriveUsername(acc.Owner)
		if other, ok := seen[acc.Username]; ok {
			return nil, fmt.Errorf("%w: %q (%s and %s)", ErrDuplicateUsername, acc.Username, other, acc.Owner)
		}
		seen[acc.Username] = acc.Owner
		d.accounts = append(d.accounts, acc)
	}
	return d, nil
}

// FindByUsername returns the account for a username, or false if absent.
func (d *Directory) FindByUsername(username string) (*Account, bool) {
	for _, acc := range d.accounts {
		if acc.Username == username {
			return acc, true
		}
	}
	return nil, false
}

// Authenticate returns the account only when both username and PIN match
// exactly. A missing account and a wrong PIN are indistinguishable to the
// caller.
func (d *Directory) Authenticate(username string, pin int) (*Account, error) {
	acc, ok := d.FindByUsername(username)
	if !ok || acc.PIN != pin {
		return nil, ErrInvalidCredentials
	}
	return acc, nil
}

// Remove deletes the account with the given username. Removing an absent
// username is a no-op and reports false.
func (d *Directory) Remove(username string) bool {
	for i, acc := range d.accounts {
		if acc.Username == username {
			d.accounts = append(d.accounts[:i], d.accounts[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of active accounts.
func (d *Directory) Len() int {
	return len(d.accounts)
}
