package loom

import (
	"reflect"
	"unsafe"
)

// column is a type-erased, contiguous buffer of component values for a
// single ComponentID within one archetype. Growth doubles the backing
// reflect array (minimum 4), mirroring delaneyj-arche/ecs's Storage.extend
// and the original ecs-complete Column's capacity doubling.
type column struct {
	info         *componentInfo
	buffer       reflect.Value
	base         unsafe.Pointer
	len          uint32
	capacity     uint32
	changedTicks []uint64
}

func newColumn(info *componentInfo) *column {
	return &column{info: info}
}

func (c *column) Len() uint32 { return c.len }
func (c *column) Cap() uint32 { return c.capacity }

// reserve ensures capacity >= len+n, growing the backing array by doubling
// (minimum 4) and copying the live prefix into the new buffer.
func (c *column) reserve(n uint32) {
	needed := c.len + n
	if needed <= c.capacity {
		return
	}
	newCap := c.capacity * 2
	if newCap < 4 {
		newCap = 4
	}
	for newCap < needed {
		newCap *= 2
	}

	old := c.buffer
	c.buffer = reflect.New(reflect.ArrayOf(int(newCap), c.info.typeOf)).Elem()
	c.base = c.buffer.Addr().UnsafePointer()
	if old.IsValid() && c.len > 0 {
		reflect.Copy(c.buffer, old)
	}
	c.capacity = newCap
}

// pushUninit grows the column by one row (content uninitialized until
// writeAt is called) and stamps the row's changed tick.
func (c *column) pushUninit(tick uint64) uint32 {
	c.reserve(1)
	row := c.len
	c.len++
	c.changedTicks = append(c.changedTicks, tick)
	return row
}

func (c *column) elemPtr(row uint32) unsafe.Pointer {
	return unsafe.Add(c.base, uintptr(row)*c.info.itemSize)
}

func (c *column) touch(row uint32, tick uint64) {
	c.changedTicks[row] = tick
}

func (c *column) changedSince(row uint32, sinceTick uint64) bool {
	return c.changedTicks[row] > sinceTick
}

// dropAt runs the component's destructor-equivalent (zeroing) on a live
// slot. Used only by despawn (see archetype.destroyRow) — migration's
// swap-remove never calls this because the value has already been
// bitwise-copied out to the destination archetype.
func (c *column) dropAt(row uint32) {
	zeroBytes(c.elemPtr(row), c.info.itemSize)
}

// swapRemoveAt removes row by overwriting it with the last live row's
// bytes (no destructor invoked) and shrinking len by one.
func (c *column) swapRemoveAt(row uint32) {
	last := c.len - 1
	if row != last {
		copyBytes(c.elemPtr(row), c.elemPtr(last), c.info.itemSize)
		c.changedTicks[row] = c.changedTicks[last]
	}
	c.changedTicks = c.changedTicks[:last]
	c.len--
}

// copyRowFrom bitwise-copies src's row into this column's row, stamping
// the destination's changed tick. Used during structural migration to
// carry an overlapping component from the source archetype's column into
// the destination archetype's column of the same ComponentID.
func (c *column) copyRowFrom(src *column, srcRow uint32, dstRow uint32, tick uint64) {
	copyBytes(c.elemPtr(dstRow), src.elemPtr(srcRow), c.info.itemSize)
	c.changedTicks[dstRow] = tick
}

func copyBytes(dst, src unsafe.Pointer, size uintptr) {
	if size == 0 {
		return
	}
	dstSlice := unsafe.Slice((*byte)(dst), size)
	srcSlice := unsafe.Slice((*byte)(src), size)
	copy(dstSlice, srcSlice)
}

// writeAt stores value at row and stamps the changed tick. Generic free
// function (not a column method) because Go methods cannot introduce a
// new type parameter.
func writeAt[T any](c *column, row uint32, value T, tick uint64) {
	*(*T)(c.elemPtr(row)) = value
	c.touch(row, tick)
}

// readAt returns a pointer into the column's backing array for row; the
// pointer is valid only until the next structural mutation of this
// archetype (push/swap-remove may reallocate or relocate rows).
func readAt[T any](c *column, row uint32) *T {
	return (*T)(c.elemPtr(row))
}

// takeAt bitwise-reads the element out of row and zeroes the slot,
// transferring logical ownership of the value to the caller.
func takeAt[T any](c *column, row uint32) T {
	ptr := (*T)(c.elemPtr(row))
	v := *ptr
	var zero T
	*ptr = zero
	return v
}
