package platform

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderRecordsCallsInOrder(t *testing.T) {
	r := NewRecorder(10, 20)

	x, y, err := r.Location()
	require.NoError(t, err)
	assert.Equal(t, 10, x)
	assert.Equal(t, 20, y)

	require.NoError(t, r.KeyDown(KeyAlt))
	require.NoError(t, r.MoveTo(5, 6))
	require.NoError(t, r.Click(ButtonLeft))
	require.NoError(t, r.Scroll(-1))
	require.NoError(t, r.Type("a"))
	require.NoError(t, r.KeyUp(KeyAlt))

	assert.Equal(t, `key-down(alt) move(5,6) click(left) scroll(-1) type("a") key-up(alt)`, r.Trace())

	x, y, err = r.Location()
	require.NoError(t, err)
	assert.Equal(t, 5, x, "move should update the pointer")
	assert.Equal(t, 6, y)
}

func TestRecorderFailOn(t *testing.T) {
	r := NewRecorder(0, 0)
	boom := errors.New("denied")
	r.FailOn(OpClick, boom)

	assert.ErrorIs(t, r.Click(ButtonLeft), boom)
	assert.NoError(t, r.MoveTo(1, 1))
	assert.Len(t, r.Calls(), 2, "failed calls are still recorded")
}

func TestRecorderLocationErr(t *testing.T) {
	r := NewRecorder(0, 0)
	r.LocationErr = errors.New("no pointer")

	_, _, err := r.Location()
	assert.Error(t, err)
	assert.Empty(t, r.Calls())
}

func TestReleaseAll(t *testing.T) {
	r := NewRecorder(0, 0)
	boom := errors.New("stuck")
	r.FailOn(OpKeyUp, boom)

	err := ReleaseAll(r, KeyAlt, KeyControl)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "key-up(alt) key-up(ctrl)", r.Trace(), "every key is attempted")

	r.Reset()
	assert.Empty(t, r.Calls())
}
