package tracking

import "strings"

// Mouse button numbers as the hook reports them.
const (
	ButtonLeft   uint16 = 1
	ButtonRight  uint16 = 2
	ButtonMiddle uint16 = 3
	ButtonSide1  uint16 = 4
	ButtonSide2  uint16 = 5
)

// Windows virtual-key codes for the mouse buttons above.
var buttonVirtualKeys = map[uint16]uint16{
	ButtonLeft:   0x01, // VK_LBUTTON
	ButtonRight:  0x02, // VK_RBUTTON
	ButtonMiddle: 0x04, // VK_MBUTTON
	ButtonSide1:  0x05, // VK_XBUTTON1
	ButtonSide2:  0x06, // VK_XBUTTON2
}

// Exit keys the polling backend understands.
var keyVirtualKeys = map[string]uint16{
	"esc":    0x1B,
	"escape": 0x1B,
	"pause":  0x13,
	"end":    0x23,
	"f1":     0x70,
	"f2":     0x71,
	"f3":     0x72,
	"f4":     0x73,
	"f5":     0x74,
	"f6":     0x75,
	"f7":     0x76,
	"f8":     0x77,
	"f9":     0x78,
	"f10":    0x79,
	"f11":    0x7A,
	"f12":    0x7B,
}

func buttonVirtualKey(button uint16) (uint16, bool) {
	vk, ok := buttonVirtualKeys[button]
	return vk, ok
}

func keyVirtualKey(name string) (uint16, bool) {
	vk, ok := keyVirtualKeys[strings.ToLower(strings.TrimSpace(name))]
	return vk, ok
}
