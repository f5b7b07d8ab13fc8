package textutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dcastano/almacen-api/pkg/textutil"
)

func TestFoldSearch(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Café", "cafe"},
		{"  NARIÑO  ", "narino"},
		{"Panela", "panela"},
		{"azúcar morena", "azucar morena"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, textutil.FoldSearch(tc.in), "entrada: %q", tc.in)
	}
}
