package session

import (
	"path"
	"strings"
)

type Access int

const (
	AccessAuthenticated Access = iota
	AccessPublic
)

func (a Access) String() string {
	if a == AccessPublic {
		return "public"
	}
	return "authenticated"
}

// Policy is the route table of the gate. Anything not listed as public
// requires a session.
type Policy struct {
	PublicPaths    []string
	PublicPrefixes []string

	LoginPath          string
	DefaultSuccessPath string
	LogoutSuccessPath  string
}

func DefaultPolicy() Policy {
	return Policy{
		PublicPaths:        []string{"/login", "/signup", "/user", "/healthz", "/readyz", "/metrics"},
		PublicPrefixes:     []string{"/static/"},
		LoginPath:          "/login",
		DefaultSuccessPath: "/articles",
		LogoutSuccessPath:  "/login",
	}
}

// Classify works on the cleaned path so dot segments cannot smuggle a
// protected route under a public prefix.
func (p Policy) Classify(raw string) Access {
	clean := path.Clean("/" + raw)
	if strings.HasSuffix(raw, "/") && clean != "/" {
		clean += "/"
	}

	for _, public := range p.PublicPaths {
		if clean == public {
			return AccessPublic
		}
	}
	for _, prefix := range p.PublicPrefixes {
		if strings.HasPrefix(clean, prefix) {
			return AccessPublic
		}
	}
	return AccessAuthenticated
}
