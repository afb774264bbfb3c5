package textclean

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripPostedPrefix(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want string
	}{
		{"Posted: June 10 Great game.", "Great game."},
		{"Posted: June 10, 2023 Great game.", "Great game."},
		{"  Posted: Dec. 3\nCrashes constantly.", "Crashes constantly."},
		{"Great game.", "Great game."},
		{"I Posted: June 10 something", "I Posted: June 10 something"},
		{"", ""},
	} {
		require.Equal(t, tc.want, StripPostedPrefix(tc.in), "in=%q", tc.in)
	}
}
