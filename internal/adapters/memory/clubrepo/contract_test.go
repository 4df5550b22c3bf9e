package clubrepo

import (
	"testing"

	"github.com/Campus-Club-Council/club-portal-api/internal/adapters/contracttest"
	clubrepoport "github.com/Campus-Club-Council/club-portal-api/internal/ports/out/clubrepo"
)

func TestContract_ClubRepo(t *testing.T) {
	contracttest.RunClubRepo(t, func(t *testing.T) (clubrepoport.Repository, func()) {
		t.Helper()
		return NewRepo(), nil
	})
}
