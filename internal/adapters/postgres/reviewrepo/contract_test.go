package reviewrepo

import (
	"testing"

	"github.com/Campus-Club-Council/club-portal-api/internal/adapters/contracttest"
	"github.com/Campus-Club-Council/club-portal-api/internal/adapters/postgres/testutil"
	reviewrepoport "github.com/Campus-Club-Council/club-portal-api/internal/ports/out/reviewrepo"
)

func TestContract_PostgresReviewRepo(t *testing.T) {
	pool := testutil.OpenMigratedPool(t)

	contracttest.RunReviewRepo(t, func(t *testing.T) (reviewrepoport.Repository, func()) {
		t.Helper()
		return NewRepo(pool), nil
	})
}
