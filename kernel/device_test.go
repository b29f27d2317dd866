package kernel

import (
	"context"
	"testing"

	"github.com/chrisarg/Bit/bitset"
	"github.com/chrisarg/Bit/container"
	"github.com/stretchr/testify/require"
)

func TestHostVsDeviceParityScenario(t *testing.T) {
	a, b := buildScenario4()
	deviceID := 1001
	ResetDevice(deviceID)
	defer ResetDevice(deviceID)

	host, err := RunHost(context.Background(), a, b, bitset.OpIntersection, HostOptions{})
	require.NoError(t, err)

	device, err := RunDevice(context.Background(), a, b, bitset.OpIntersection, DeviceOptions{DeviceID: deviceID})
	require.NoError(t, err)

	require.Equal(t, host.Data, device.Data)
}

func TestDeviceBackendEquivalenceAllOps(t *testing.T) {
	a, b := buildScenario4()
	deviceID := 1002

	for _, op := range []bitset.Op{bitset.OpUnion, bitset.OpIntersection, bitset.OpDiff, bitset.OpMinus} {
		ResetDevice(deviceID)
		host, err := RunHost(context.Background(), a, b, op, HostOptions{})
		require.NoError(t, err)
		device, err := RunDevice(context.Background(), a, b, op, DeviceOptions{DeviceID: deviceID})
		require.NoError(t, err)
		require.Equal(t, host.Data, device.Data, "op %v", op)
	}
	ResetDevice(deviceID)
}

func TestRefcountHygieneReleaseFalseLeavesResident(t *testing.T) {
	a, b := buildScenario4()
	deviceID := 1003
	ResetDevice(deviceID)
	defer ResetDevice(deviceID)

	_, err := RunDevice(context.Background(), a, b, bitset.OpIntersection, DeviceOptions{DeviceID: deviceID})
	require.NoError(t, err)

	reg := registryFor(deviceID)
	_, resident := reg.operands[wordsIdentity(a.Words())]
	require.True(t, resident, "operand should remain resident when release flags are false")
}

func TestRefcountHygieneReleaseTrueReleases(t *testing.T) {
	a, b := buildScenario4()
	deviceID := 1004
	ResetDevice(deviceID)
	defer ResetDevice(deviceID)

	_, err := RunDevice(context.Background(), a, b, bitset.OpIntersection, DeviceOptions{
		DeviceID:      deviceID,
		ReleaseFirst:  true,
		ReleaseSecond: true,
		ReleaseCounts: true,
	})
	require.NoError(t, err)

	reg := registryFor(deviceID)
	_, resident := reg.operands[wordsIdentity(a.Words())]
	require.False(t, resident, "operand should be released")
}

func TestReleaseOfNonResidentPanics(t *testing.T) {
	deviceID := 1005
	ResetDevice(deviceID)
	defer ResetDevice(deviceID)
	reg := registryFor(deviceID)

	defer func() {
		if recover() == nil {
			t.Errorf("expected panic releasing a never-acquired buffer")
		}
	}()
	reg.releaseOperand([]uint64{1, 2, 3})
}

func TestInvalidDeviceIDPanics(t *testing.T) {
	a, b := buildScenario4()
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for negative device id")
		}
	}()
	_, _ = RunDevice(context.Background(), a, b, bitset.OpIntersection, DeviceOptions{DeviceID: -1})
}

func TestUpdateFlagRefreshesResidentOperand(t *testing.T) {
	a, b := buildScenario4()
	deviceID := 1006
	ResetDevice(deviceID)
	defer ResetDevice(deviceID)

	first, err := RunDevice(context.Background(), a, b, bitset.OpIntersection, DeviceOptions{DeviceID: deviceID})
	require.NoError(t, err)
	require.Equal(t, int32(1), first.At(0, 0))

	updated := a.Get(0)
	updated.SetBit(5)
	a.Put(0, updated)

	stale, err := RunDevice(context.Background(), a, b, bitset.OpIntersection, DeviceOptions{DeviceID: deviceID})
	require.NoError(t, err)
	require.Equal(t, int32(1), stale.At(0, 0), "without UpdateFirst the device copy should still be stale")

	fresh, err := RunDevice(context.Background(), a, b, bitset.OpIntersection, DeviceOptions{DeviceID: deviceID, UpdateFirst: true})
	require.NoError(t, err)
	require.Equal(t, int32(2), fresh.At(0, 0), "bit 5 is also in B's slot 0, so refreshing A's device copy should raise the intersection count from 1 to 2")
}

func TestBandwidthThrottlingDoesNotChangeResult(t *testing.T) {
	a, b := buildScenario4()
	deviceID := 1007
	ResetDevice(deviceID)
	defer ResetDevice(deviceID)

	m, err := RunDevice(context.Background(), a, b, bitset.OpIntersection, DeviceOptions{
		DeviceID:            deviceID,
		TransferBytesPerSec: 1 << 20,
	})
	require.NoError(t, err)
	require.Equal(t, int32(1), m.At(0, 0))
	require.Equal(t, int32(2), m.At(1, 1))
}

func TestContainerLengthMismatchPanics(t *testing.T) {
	a := container.New(64, 2)
	b := container.New(128, 2)
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for length mismatch")
		}
	}()
	_, _ = RunDevice(context.Background(), a, b, bitset.OpIntersection, DeviceOptions{DeviceID: 1})
}
