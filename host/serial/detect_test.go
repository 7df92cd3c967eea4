package serial

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.bug.st/serial/enumerator"
)

func TestMatchPortByProduct(t *testing.T) {
	ports := []*enumerator.PortDetails{
		{Name: "/dev/ttyS0"},
		{Name: "/dev/ttyACM0", IsUSB: true, VID: "2E8A", PID: "000A"},
		{Name: "/dev/ttyACM1", IsUSB: true, VID: "2e8a", PID: "000a", Product: ProductName},
	}
	name, ok := matchPort(ports)
	require.True(t, ok)
	require.Equal(t, "/dev/ttyACM1", name)
}

func TestMatchPortByID(t *testing.T) {
	ports := []*enumerator.PortDetails{
		{Name: "/dev/ttyUSB0", IsUSB: true, VID: "0403", PID: "6001"},
		{Name: "/dev/ttyACM3", IsUSB: true, VID: "2e8a", PID: "000a"},
	}
	name, ok := matchPort(ports)
	require.True(t, ok)
	require.Equal(t, "/dev/ttyACM3", name)
}

func TestMatchPortNone(t *testing.T) {
	_, ok := matchPort([]*enumerator.PortDetails{{Name: "/dev/ttyS0"}})
	require.False(t, ok)
}
