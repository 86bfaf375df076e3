package color_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ippvm/pkg/color"
)

func TestDisabled(t *testing.T) {
	old := color.IsColorEnabled()
	defer color.EnableColor(old)

	color.EnableColor(false)
	require.False(t, color.IsColorEnabled())
	require.Equal(t, "MOVE", color.YellowText("MOVE"))
	require.Equal(t, "3:7", color.CyanText("3:7"))
}

func TestEnabled(t *testing.T) {
	old := color.IsColorEnabled()
	defer color.EnableColor(old)

	color.EnableColor(true)
	out := color.YellowText("MOVE")
	require.Contains(t, out, "MOVE")
	require.Contains(t, out, "\x1b[33m")
	require.NotEqual(t, "GF@a", color.BlueText("GF@a"))
}
