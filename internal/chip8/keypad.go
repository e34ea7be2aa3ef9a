package chip8

// keypad models the 16-key hex keypad: a mask of currently held keys plus a
// single-slot record of the most recent key-down edge. The edge slot is the
// sole input of the wait-for-key instruction and is consumed by it.
type keypad struct {
	held    uint16
	edge    byte
	edgeSet bool
}

// keyDown marks a key as held. Only a transition from up to down records a
// new edge; repeated down events for a held key are not edges.
func (k *keypad) keyDown(key byte) {
	if key > 0xF {
		return
	}
	bit := uint16(1) << key
	if k.held&bit == 0 {
		k.edge = key
		k.edgeSet = true
	}
	k.held |= bit
}

// keyUp marks a key as released. Releasing a key that is not held is a no-op.
func (k *keypad) keyUp(key byte) {
	if key > 0xF {
		return
	}
	k.held &^= 1 << key
}

// pressed reports whether the key is currently held.
func (k *keypad) pressed(key byte) bool {
	return k.held&(1<<key) != 0
}

// takeEdge consumes and returns the pending key-down edge, if any.
func (k *keypad) takeEdge() (byte, bool) {
	if !k.edgeSet {
		return 0, false
	}
	k.edgeSet = false
	return k.edge, true
}

func (k *keypad) reset() {
	*k = keypad{}
}
