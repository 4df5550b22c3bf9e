package userrepo

import (
	"testing"

	"github.com/Campus-Club-Council/club-portal-api/internal/adapters/contracttest"
	userrepoport "github.com/Campus-Club-Council/club-portal-api/internal/ports/out/userrepo"
)

func TestContract_UserRepo(t *testing.T) {
	contracttest.RunUserRepo(t, func(t *testing.T) (userrepoport.Repository, func()) {
		t.Helper()
		return NewRepo(), nil
	})
}
