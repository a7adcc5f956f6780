package service

import (
	"fmt"

	"dronedata/internal/models"
)

// Suffixes appended to "/"+location to build the only path a user may open.
const (
	SuffixStatus = ""
	SuffixData   = "data"
)

// Policy reports whether user may open requestedPath on a page whose
// expected path is "/" + location + expectedSuffix.
type Policy func(user models.User, requestedPath, expectedSuffix string) bool

// LiteralPolicy allows exactly one path per user and suffix. The comparison is
// a plain, case-sensitive string match: no trailing-slash, escape or query
// normalisation.
func LiteralPolicy(user models.User, requestedPath, expectedSuffix string) bool {
	return "/"+user.Location+expectedSuffix == requestedPath
}

type GuardService struct {
	policy Policy
}

// NewGuardService returns a guard using p, or LiteralPolicy when p is nil.
func NewGuardService(p Policy) *GuardService {
	if p == nil {
		p = LiteralPolicy
	}
	return &GuardService{policy: p}
}

func (g *GuardService) Authorize(user models.User, requestedPath, expectedSuffix string) error {
	if g.policy(user, requestedPath, expectedSuffix) {
		return nil
	}
	return fmt.Errorf("%w: %q is not open to location %q", ErrLocationMismatch, requestedPath, user.Location)
}
