package screenstest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/abhisek/talenthub/internal/rewards"
	"github.com/abhisek/talenthub/internal/store"
)

// Rewards returns a rewards service over a private in-memory journal.
func Rewards(t testing.TB) *rewards.Service {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:screens_%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return rewards.NewService(st, nil)
}
