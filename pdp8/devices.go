package pdp8

import "fmt"

// Device is the pluggable I/O handler spec.md §4.8/§6 describes: a
// single synchronous call keyed by the raw instruction word and the
// current accumulator. reason is a non-zero stop code when the device
// wants the interpreter to halt.
type Device interface {
	Number() uint8
	Handle(ir, ac uint16) (out uint16, skip bool, reason uint8)
}

// DeviceTable is the fixed six-bit dispatch array of spec.md §2/§4.8.
// Device numbers 000, 010, and 020-027 are reserved for the built-in
// CPU-control, power-fail, and memory-extension handlers and may not
// be claimed by a user Device.
type DeviceTable struct {
	slots [NumDevices]Device
}

// reservedDevice reports whether num is one of the built-in device
// numbers handled directly inside execIOT rather than through the
// table.
func reservedDevice(num uint8) bool {
	if num == 0 || num == 010 {
		return true
	}
	return num >= 020 && num <= 027
}

// newDeviceTable builds a DeviceTable from devices, rejecting a
// reserved device number or two devices claiming the same number
// (spec.md §7: "device conflict at table build time: fatal").
func newDeviceTable(devices ...Device) (*DeviceTable, error) {
	t := &DeviceTable{}
	for _, d := range devices {
		num := d.Number()
		if int(num) >= NumDevices {
			return nil, fmt.Errorf("%w: device number %03o out of range", errDeviceConflict, num)
		}
		if reservedDevice(num) {
			return nil, fmt.Errorf("%w: device number %03o is reserved", errDeviceConflict, num)
		}
		if t.slots[num] != nil {
			return nil, fmt.Errorf("%w: device number %03o claimed twice", errDeviceConflict, num)
		}
		t.slots[num] = d
	}
	return t, nil
}

// Lookup returns the device registered at num, or nil.
func (t *DeviceTable) Lookup(num uint8) Device {
	if t == nil || int(num) >= NumDevices {
		return nil
	}
	return t.slots[num]
}

// Resettable is implemented by a Device that needs to react to CAF
// (spec.md §4.8 device 000 pulse 7, "reset all dev").
type Resettable interface {
	Reset()
}

// resetAll calls Reset on every registered device that implements
// Resettable.
func (t *DeviceTable) resetAll() {
	if t == nil {
		return
	}
	for _, d := range t.slots {
		if rs, ok := d.(Resettable); ok {
			rs.Reset()
		}
	}
}
