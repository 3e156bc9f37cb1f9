package pix

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPayload(t *testing.T) {
	p := Payload("maria@pix", "joao")
	require.True(t, strings.HasPrefix(p, "00020126460014BR.GOV.BCB.PIX"))
	require.Contains(t, p, fmt.Sprintf("01%d%s", len("maria@pix"), "maria@pix"))
	require.Contains(t, p, "DEPOSITO joao")
	require.True(t, strings.HasSuffix(p, "63041D3D"))
}
