package user

// Principal is what the authentication gate needs to know about a user.
// It is derived from a User, never stored.
type Principal struct {
	UserID       int64
	Username     string
	PasswordHash string
	Enabled      bool
	Locked       bool
}

// PrincipalOf derives the login view of u. Accounts have no expiry or lock
// state yet, so every stored user is enabled and unlocked.
func PrincipalOf(u User) Principal {
	return Principal{
		UserID:       u.ID,
		Username:     u.Email,
		PasswordHash: u.PasswordHash,
		Enabled:      true,
		Locked:       false,
	}
}

func (p Principal) CanLogin() bool {
	return p.Enabled && !p.Locked && p.PasswordHash != ""
}
