package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mouadlotfi/MasjidQ-A/internal/forum/domain"
	"github.com/mouadlotfi/MasjidQ-A/internal/forum/store"
	"github.com/mouadlotfi/MasjidQ-A/internal/forum/store/drivers/sqlite"
	"github.com/mouadlotfi/MasjidQ-A/pkg/cryptox"
)

const testPassword = "secret123"

func TestMain(m *testing.M) {
	pepperPath := filepath.Join(os.TempDir(), "forum-service-test-pepper")
	cryptox.SetPepperPath(pepperPath)

	os.Remove(pepperPath)
	code := m.Run()
	os.Remove(pepperPath)
	os.Exit(code)
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

// newServices wires the three services against one fresh in-memory store.
func newServices(t *testing.T) (*IdentityService, *ContentService, *FeedService) {
	t.Helper()

	st := newTestStore(t)
	identity := &IdentityService{Store: st, SessionTTL: time.Hour}
	content := &ContentService{Store: st}
	feed := &FeedService{Store: st}
	return identity, content, feed
}

func registerUser(t *testing.T, identity *IdentityService, username string, role domain.Role) domain.Identity {
	t.Helper()

	summary, err := identity.Register(context.Background(), username, testPassword, role.String())
	require.NoError(t, err)
	return domain.Identity{UserID: summary.ID, Username: summary.Username, Role: summary.Role}
}
