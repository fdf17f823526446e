package ubx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBuild(t *testing.T, id ID, payload []byte) []byte {
	t.Helper()
	b, err := Encode(id, payload)
	require.NoError(t, err)
	return b
}

func TestStreamDecoder_Basic(t *testing.T) {
	d := NewStreamDecoder(0)
	frames, err := d.Feed(mustBuild(t, NavPVT, []byte{1, 2, 3}))
	require.NoError(t, err)
	require.Len(t, frames, 1)
	assert.Equal(t, NavPVT, frames[0].ID())
	assert.Equal(t, 0, d.Buffered())
}

func TestStreamDecoder_StickyAndHalfPacket(t *testing.T) {
	a := mustBuild(t, MonVER, []byte("ROM CORE 3.01"))
	b := mustBuild(t, AckACK, []byte{0x06, 0x01})
	c := mustBuild(t, MgaDBD, nil)

	stream := append(append(append([]byte{}, a...), b...), c...)

	t.Run("粘包", func(t *testing.T) {
		d := NewStreamDecoder(0)
		frames, err := d.Feed(stream)
		require.NoError(t, err)
		require.Len(t, frames, 3)
		assert.Equal(t, MonVER, frames[0].ID())
		assert.Equal(t, AckACK, frames[1].ID())
		assert.Equal(t, MgaDBD, frames[2].ID())
	})

	t.Run("逐字节半包", func(t *testing.T) {
		d := NewStreamDecoder(0)
		var got []*Frame
		for _, x := range stream {
			frames, err := d.Feed([]byte{x})
			require.NoError(t, err)
			got = append(got, frames...)
		}
		require.Len(t, got, 3)
		assert.Equal(t, uint64(3), d.Stats().Frames)
		assert.Equal(t, uint64(0), d.Stats().DiscardedBytes)
	})
}

func TestStreamDecoder_NoiseAndResync(t *testing.T) {
	good := mustBuild(t, NavPVT, []byte{9, 9})
	bad := mustBuild(t, NavSAT, []byte{1, 2, 3})
	bad[len(bad)-1] ^= 0xff

	var stream []byte
	stream = append(stream, '$', 'G', 'P', 0xb5, 0x00) // NMEA 噪声 + 孤立同步字节
	stream = append(stream, bad...)
	stream = append(stream, good...)

	d := NewStreamDecoder(0)
	frames, err := d.Feed(stream)
	require.Len(t, frames, 1)
	assert.Equal(t, NavPVT, frames[0].ID())

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrChecksumMismatch))
	assert.False(t, errors.Is(err, ErrSyncMismatch), "噪声不作为帧错误上报")
	assert.Equal(t, uint64(1), d.Stats().ChecksumErrors)
	assert.Equal(t, uint64(5+len(bad)), d.Stats().DiscardedBytes)
}

func TestStreamDecoder_Oversize(t *testing.T) {
	big := mustBuild(t, RxmRAWX, make([]byte, 64))
	small := mustBuild(t, AckNAK, []byte{0x06, 0x01})

	d := NewStreamDecoder(32)
	frames, err := d.Feed(append(big, small...))
	assert.True(t, errors.Is(err, ErrPayloadTooLarge))
	require.Len(t, frames, 1)
	assert.Equal(t, AckNAK, frames[0].ID())
	assert.Equal(t, uint64(1), d.Stats().OversizeFrames)
}

func TestStreamDecoder_TrailingSyncKept(t *testing.T) {
	d := NewStreamDecoder(0)
	frames, err := d.Feed([]byte{0x01, 0x02, 0xb5})
	require.NoError(t, err)
	assert.Empty(t, frames)
	assert.Equal(t, 1, d.Buffered(), "末尾 0xB5 可能是下一帧起点")

	rest := mustBuild(t, MgaDBD, nil)[1:]
	frames, err = d.Feed(rest)
	require.NoError(t, err)
	require.Len(t, frames, 1)
	assert.Equal(t, MgaDBD, frames[0].ID())
}

func TestIndexSync(t *testing.T) {
	assert.Equal(t, -1, indexSync(nil))
	assert.Equal(t, -1, indexSync([]byte{0x62, 0x00}))
	assert.Equal(t, 2, indexSync([]byte{0x00, 0xb5, 0xb5, 0x62}))
	assert.Equal(t, 1, indexSync([]byte{0x00, 0xb5}))
}
