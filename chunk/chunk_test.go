package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCarriesVpccMetadata(t *testing.T) {
	assert.True(t, TypeVpcc.CarriesVpccMetadata())
	assert.True(t, TypeMiv.CarriesVpccMetadata())
	assert.False(t, TypeAudio.CarriesVpccMetadata())
	assert.False(t, TypeHevc.CarriesVpccMetadata())
}

func TestHeaderOK(t *testing.T) {
	assert.True(t, Header{ErrorStreamer: 0}.OK())
	assert.False(t, Header{ErrorStreamer: 1}.OK())
}

func TestNewStampsDistinctIDs(t *testing.T) {
	a := New(Header{TypeID: TypeVpcc}, []byte("a"))
	b := New(Header{TypeID: TypeVpcc}, []byte("b"))
	assert.NotEqual(t, a.ID, b.ID)
}
