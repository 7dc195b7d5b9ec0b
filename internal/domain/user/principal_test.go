package user

import "testing"

func TestPrincipalOf(t *testing.T) {
	u := User{ID: 7, Email: "sam@example.com", PasswordHash: "$2a$10$hash"}

	p := PrincipalOf(u)

	if p.UserID != 7 || p.Username != "sam@example.com" || p.PasswordHash != u.PasswordHash {
		t.Fatalf("unexpected principal %+v", p)
	}
	if !p.CanLogin() {
		t.Fatalf("expected stored user to be able to log in")
	}
}

func TestPrincipal_CanLogin(t *testing.T) {
	tests := []struct {
		name string
		p    Principal
		want bool
	}{
		{name: "enabled", p: Principal{Enabled: true, PasswordHash: "h"}, want: true},
		{name: "disabled", p: Principal{Enabled: false, PasswordHash: "h"}, want: false},
		{name: "locked", p: Principal{Enabled: true, Locked: true, PasswordHash: "h"}, want: false},
		{name: "no hash", p: Principal{Enabled: true}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.CanLogin(); got != tt.want {
				t.Fatalf("CanLogin() = %v, want %v", got, tt.want)
			}
		})
	}
}
