package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"betpool/internal/domain"
)

func TestPlansByCategory(t *testing.T) {
	c := New("5598984595785")

	internet := c.Plans(CategoryInternet)
	require.Len(t, internet, 4)
	for _, p := range internet {
		require.Equal(t, CategoryInternet, p.Category)
	}

	all := c.Plans("")
	require.Len(t, all, 8)
}

func TestFind(t *testing.T) {
	c := New("5598984595785")

	p, err := c.Find("int-400")
	require.NoError(t, err)
	require.True(t, p.IsPopular)

	_, err = c.Find("missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHandoffURL(t *testing.T) {
	c := New("5598984595785")
	p, err := c.Find("int-200")
	require.NoError(t, err)

	hire := c.HandoffURL(p, ActionHire)
	require.Contains(t, hire, "https://wa.me/5598984595785?text=")
	require.Contains(t, hire, "assinar")
	require.NotContains(t, hire, " ") // Fully escaped

	renew := c.HandoffURL(p, ActionRenew)
	require.Contains(t, renew, "RENOVAR")
}
