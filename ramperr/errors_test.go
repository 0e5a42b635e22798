package ramperr_test

import (
	"testing"

	"github.com/cayleygraph/ramp/ramperr"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	err := ramperr.New(ramperr.NoPropertyMatches, "property %q had no matches", "name")
	err = err.Push(ramperr.Frame{ShapeID: "_:b1", Edge: "name"})
	err = err.Push(ramperr.Frame{ShapeID: "root"})

	require.True(t, ramperr.As(err, ramperr.NoPropertyMatches))
	require.Contains(t, err.Error(), "RAMP7:")
	require.Contains(t, err.Error(), "root")
	require.Contains(t, err.Error(), "_:b1.name")
}
