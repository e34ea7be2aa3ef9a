package host

import "github.com/veandco/go-sdl2/sdl"

// keyMap maps the host keyboard to the 16-key hex keypad using the common
// COSMAC VIP layout:
//
//	1 2 3 4        1 2 3 C
//	Q W E R   ->   4 5 6 D
//	A S D F        7 8 9 E
//	Z X C V        A 0 B F
var keyMap = map[sdl.Keycode]byte{
	sdl.K_1: 0x1, sdl.K_2: 0x2, sdl.K_3: 0x3, sdl.K_4: 0xC,
	sdl.K_q: 0x4, sdl.K_w: 0x5, sdl.K_e: 0x6, sdl.K_r: 0xD,
	sdl.K_a: 0x7, sdl.K_s: 0x8, sdl.K_d: 0x9, sdl.K_f: 0xE,
	sdl.K_z: 0xA, sdl.K_x: 0x0, sdl.K_c: 0xB, sdl.K_v: 0xF,
}

// hexKey resolves a host key code to its keypad value. Keys outside the map
// are ignored by the caller.
func hexKey(sym sdl.Keycode) (byte, bool) {
	key, ok := keyMap[sym]
	return key, ok
}
