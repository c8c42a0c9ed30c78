package piece_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/comparomics/cactuscore/piece"
)

func TestNewPiece(t *testing.T) {
	p, err := piece.NewPiece(1, 5, 9)
	require.NoError(t, err)
	require.Equal(t, int64(5), p.Length())
	require.True(t, p.Forward())

	_, err = piece.NewPiece(1, 9, 5)
	require.ErrorIs(t, err, piece.ErrZeroLength)
}

func TestPiece_ReverseAndForwardCoords(t *testing.T) {
	p, err := piece.NewPiece(1, 3, 7)
	require.NoError(t, err)

	r := p.Reverse()
	require.False(t, r.Forward())
	require.Equal(t, p.Length(), r.Length())

	lo, hi := r.ForwardCoords()
	require.Equal(t, int64(3), lo)
	require.Equal(t, int64(7), hi)
}

func TestPiece_Trim(t *testing.T) {
	p, err := piece.NewPiece(1, 1, 10)
	require.NoError(t, err)

	trimmed := p.Trim(2)
	require.Equal(t, int64(3), trimmed.Start)
	require.Equal(t, int64(8), trimmed.End)
	require.Equal(t, int64(6), trimmed.Length())

	rp, err := piece.NewPiece(1, 1, 10)
	require.NoError(t, err)
	rev := rp.Reverse().Trim(2)
	require.Equal(t, int64(-8), rev.Start)
	require.Equal(t, int64(-3), rev.End)
}

func TestAlignment_Validate(t *testing.T) {
	a := &piece.Alignment{}
	require.ErrorIs(t, a.Validate(), piece.ErrEmptyAlignment)

	p1, _ := piece.NewPiece(1, 1, 5)
	p2, _ := piece.NewPiece(2, 1, 4)
	a = &piece.Alignment{Pairs: []piece.AlignedPair{{A: p1, B: p2, Type: piece.Match}}}
	require.ErrorIs(t, a.Validate(), piece.ErrLengthMismatch)

	p3, _ := piece.NewPiece(2, 1, 5)
	a = &piece.Alignment{Pairs: []piece.AlignedPair{{A: p1, B: p3, Type: piece.Match}}, Score: 0.9}
	require.NoError(t, a.Validate())
}
