package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanon(t *testing.T) {
	require.Equal(t, "user interface", Canon("  User   Interface\n"))
	require.Equal(t, "bug", Canon("BUG"))
	require.Equal(t, "", Canon(" \t\n"))
}

func TestCollapseWhitespace(t *testing.T) {
	require.Equal(t, "a b c", CollapseWhitespace(" a\n\tb   c "))
}
