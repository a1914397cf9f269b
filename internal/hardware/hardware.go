// Package hardware declares the opaque register/bus/table interface that
// the rest of the runtime drives, and an in-memory simulator that
// implements it for tests and for standalone operation without a real
// FPGA attached.
package hardware

import "context"

// Bus geometry and timing constants from the device's register map.
const (
	BitBusCount     = 128
	PosBusCount     = 32
	CaptureBusCount = 64
	ClockFrequency  = 125_000_000
	MaxClockValue   = 1<<48 - 1
)

// TableHandle identifies an open table write/read session returned by
// OpenShortTable/OpenLongTable.
type TableHandle int

// Interface is the device shim every class and the bus registry talk to.
// It is intentionally register-level: no field/attribute vocabulary
// crosses this boundary, matching the external-collaborator contract.
type Interface interface {
	// ReadRegister/WriteRegister address a single 32-bit register owned
	// by block instance (base, instance) at offset reg.
	ReadRegister(ctx context.Context, base, instance, reg uint32) (uint32, error)
	WriteRegister(ctx context.Context, base, instance, reg, value uint32) error

	// ReadBits snapshots the 128-wide bit bus into bits, and sets
	// changes[i] for every index whose value differs from the previous
	// snapshot taken by this same Interface instance.
	ReadBits(ctx context.Context, bits *[BitBusCount]uint32, changes *[BitBusCount]bool) error
	// ReadPositions is ReadBits' 32-wide position-bus counterpart;
	// position values are signed 32-bit.
	ReadPositions(ctx context.Context, pos *[PosBusCount]int32, changes *[PosBusCount]bool) error

	// OpenShortTable/OpenLongTable prepare a table region for writing.
	// Short tables are capped at maxLength words; long tables have
	// capacity 2^order words at a fixed base offset.
	OpenShortTable(ctx context.Context, base, instance uint32, maxLength int) (TableHandle, error)
	OpenLongTable(ctx context.Context, base, instance uint32, order int) (TableHandle, error)

	// ReadTableData reads back the committed words starting at offset.
	ReadTableData(ctx context.Context, h TableHandle, offset int, out []uint32) error
	// WriteTable writes data at offset and returns once the hardware has
	// accepted it.
	WriteTable(ctx context.Context, h TableHandle, offset int, data []uint32) error
	CloseTable(ctx context.Context, h TableHandle) error

	// SetNamedRegister binds a symbolic register name (from the
	// *REG block) to its numeric offset; SetBlockBase records a block's
	// base register number. Both are called once per name during
	// database loading, before Validate.
	SetNamedRegister(name string, reg uint32) error
	SetBlockBase(block string, base uint32) error
	// RequireNamedRegister marks name as a binding Validate must observe
	// before it succeeds (§4.10(5)). The database loader calls this for
	// every name declared in the *REG block as it reads it, so a name
	// that a caller expected (via a prior RequireNamedRegister) but the
	// registers file never binds is caught at start-up.
	RequireNamedRegister(name string)
	// Validate confirms every register binding the loader required is
	// present, returning an error naming the first omission.
	Validate() error
}
