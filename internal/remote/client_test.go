package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"betpool/internal/domain"
)

func TestLookupUserTranslatesRemoteRow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/v1/users", r.URL.Path)
		require.Equal(t, "eq.maria", r.URL.Query().Get("username"))
		require.Equal(t, "secret", r.Header.Get("apikey"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"username":"maria","password":"p","role":"CLIENT","balance":12.5,"created_by":"joao","pix_key":"maria@pix"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret")
	user, err := c.LookupUser(context.Background(), "maria", "p")
	require.NoError(t, err)
	require.NotNil(t, user)
	require.Equal(t, "maria", user.Username)
	require.Equal(t, "joao", user.CreatedBy)   // created_by -> CreatedBy
	require.Equal(t, "maria@pix", user.PixKey) // pix_key -> PixKey
	require.EqualValues(t, 12.5, user.Balance)
}

func TestLookupUserMissReturnsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret")
	user, err := c.LookupUser(context.Background(), "nobody", "p")
	require.NoError(t, err)
	require.Nil(t, user)
}

func TestLookupUserUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret")
	_, err := c.LookupUser(context.Background(), "maria", "p")
	require.ErrorIs(t, err, domain.ErrRemoteUnavailable)

	// Dead endpoint maps to the same taxonomy.
	srv.Close()
	_, err = c.LookupUser(context.Background(), "maria", "p")
	require.ErrorIs(t, err, domain.ErrRemoteUnavailable)
}
