package arena

import (
	"unsafe"

	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

// node records one live allocation.
type node struct {
	next  *node
	buf   []byte  // payload handed to the caller
	chunk int     // chunk the payload lives in
	off   uintptr // payload offset within the chunk
	slot  uint32
}

// Handle identifies an allocation independently of its address. Resolving
// a handle is O(1). Handles are invalidated by Release and Reset; a stale
// handle never resolves to a newer allocation. The zero Handle is invalid.
type Handle struct {
	slot  uint32
	epoch uint32
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool {
	return h == Handle{}
}

// Lookup returns the handle of the allocation whose payload starts at p.
// It scans the live allocations linearly.
func (a *Arena) Lookup(p []byte) (Handle, bool) {
	nd := a.find(p)
	if nd == nil {
		return Handle{}, false
	}
	return a.handleOf(nd), true
}

// Bytes returns the current payload of the allocation identified by h.
func (a *Arena) Bytes(h Handle) ([]byte, error) {
	nd, err := a.resolve(h)
	if err != nil {
		return nil, err
	}
	return nd.buf, nil
}

// Resize is the handle based form of Realloc. The returned handle
// identifies the resized allocation and must be used from now on; the
// returned payload replaces the previous one. On error the arena is
// unchanged.
func (a *Arena) Resize(h Handle, n int) (Handle, []byte, error) {
	nd, err := a.resolve(h)
	if err != nil {
		level.Debug(a.logger).Log("msg", "resize of stale handle", "slot", h.slot, "epoch", h.epoch, "err", err)
		return Handle{}, nil, err
	}
	if err := a.checkSize(n); err != nil {
		return Handle{}, nil, err
	}
	return a.handleOf(nd), a.resize(nd, n), nil
}

func (a *Arena) track(ci int, off uintptr, buf []byte) *node {
	nd := &node{
		next:  a.head,
		buf:   buf,
		chunk: ci,
		off:   off,
		slot:  uint32(len(a.slots)),
	}
	a.head = nd
	a.slots = append(a.slots, nd)
	return nd
}

// find walks the allocation list looking for the node whose payload
// starts at the same address as p.
func (a *Arena) find(p []byte) *node {
	if len(p) == 0 {
		return nil
	}
	ptr := unsafe.SliceData(p)
	for nd := a.head; nd != nil; nd = nd.next {
		if unsafe.SliceData(nd.buf) == ptr {
			return nd
		}
	}
	return nil
}

func (a *Arena) resolve(h Handle) (*node, error) {
	if h.IsZero() || h.epoch != a.epoch || int(h.slot) >= len(a.slots) {
		return nil, errors.Wrapf(ErrStaleHandle, "slot %d epoch %d (arena epoch %d)", h.slot, h.epoch, a.epoch)
	}
	return a.slots[h.slot], nil
}

func (a *Arena) handleOf(nd *node) Handle {
	return Handle{slot: nd.slot, epoch: a.epoch}
}

// dropNodes unlinks every node so that payloads held only by the list
// become collectable, and invalidates outstanding handles.
func (a *Arena) dropNodes() {
	for nd := a.head; nd != nil; {
		next := nd.next
		nd.next, nd.buf = nil, nil
		nd = next
	}
	a.head = nil
	clear(a.slots)
	a.slots = a.slots[:0]
	a.epoch++
	if a.epoch == 0 {
		a.epoch = 1
	}
}
