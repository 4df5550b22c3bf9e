package membershiprepo

import (
	"testing"

	"github.com/Campus-Club-Council/club-portal-api/internal/adapters/contracttest"
	"github.com/Campus-Club-Council/club-portal-api/internal/adapters/postgres/testutil"
	membershiprepoport "github.com/Campus-Club-Council/club-portal-api/internal/ports/out/membershiprepo"
)

func TestContract_PostgresMembershipRepo(t *testing.T) {
	pool := testutil.OpenMigratedPool(t)

	contracttest.RunMembershipRepo(t, func(t *testing.T) (membershiprepoport.Repository, func()) {
		t.Helper()
		return NewRepo(pool), nil
	})
}
