package gamepad

import "math"

// AxisMapping maps a raw joystick axis index onto one of our analog channels.
type AxisMapping struct {
	Index     int32
	Target    AxisID
	IsTrigger bool
	Invert    bool
	// Raw trigger range. Some devices report -32768..32767, others 0..32767.
	RawMin int16
	RawMax int16
}

// ButtonMapping maps a raw joystick button index onto a ButtonID.
type ButtonMapping struct {
	Index  int32
	Target ButtonID
}

// DeviceMapping holds the complete mapping for a device family.
type DeviceMapping struct {
	Name    string
	Axes    []AxisMapping
	Buttons []ButtonMapping
	HasHat  bool
}

// NormalizeAxis converts a raw axis value (-32768..32767) to -1.0..1.0.
func NormalizeAxis(raw int16) float64 {
	v := float64(raw) / math.MaxInt16
	if v < -1.0 {
		v = -1.0
	}
	return v
}

// NormalizeTrigger converts a raw trigger value to 0.0..1.0.
func NormalizeTrigger(raw int16, rawMin, rawMax int16) float64 {
	if rawMax == rawMin {
		return 0
	}
	v := float64(raw-rawMin) / float64(rawMax-rawMin)
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return v
}

// Built-in mappings for common controllers. Stick Y axes are inverted so
// that positive means up, matching the directive coordinate convention.

var xboxMapping = &DeviceMapping{
	Name: "xbox",
	Axes: []AxisMapping{
		{Index: 0, Target: AxisLeftX},
		{Index: 1, Target: AxisLeftY, Invert: true},
		{Index: 2, Target: AxisRightX},
		{Index: 3, Target: AxisRightY, Invert: true},
		{Index: 4, Target: AxisLeftTrigger, IsTrigger: true, RawMin: -32768, RawMax: 32767},
		{Index: 5, Target: AxisRightTrigger, IsTrigger: true, RawMin: -32768, RawMax: 32767},
	},
	Buttons: []ButtonMapping{
		{Index: 0, Target: ButtonA},
		{Index: 1, Target: ButtonB},
		{Index: 2, Target: ButtonX},
		{Index: 3, Target: ButtonY},
		{Index: 4, Target: ButtonLeftShoulder},
		{Index: 5, Target: ButtonRightShoulder},
		{Index: 6, Target: ButtonBack},
		{Index: 7, Target: ButtonStart},
		{Index: 8, Target: ButtonLeftStick},
		{Index: 9, Target: ButtonRightStick},
		{Index: 10, Target: ButtonGuide},
	},
	HasHat: true,
}

var playstationMapping = &DeviceMapping{
	Name: "playstation",
	Axes: []AxisMapping{
		{Index: 0, Target: AxisLeftX},
		{Index: 1, Target: AxisLeftY, Invert: true},
		{Index: 2, Target: AxisRightX},
		{Index: 3, Target: AxisRightY, Invert: true},
		{Index: 4, Target: AxisLeftTrigger, IsTrigger: true, RawMin: -32768, RawMax: 32767},
		{Index: 5, Target: AxisRightTrigger, IsTrigger: true, RawMin: -32768, RawMax: 32767},
	},
	Buttons: []ButtonMapping{
		{Index: 0, Target: ButtonA},     // Cross
		{Index: 1, Target: ButtonB},     // Circle
		{Index: 2, Target: ButtonX},     // Square
		{Index: 3, Target: ButtonY},     // Triangle
		{Index: 4, Target: ButtonBack},  // Share / Create
		{Index: 5, Target: ButtonGuide}, // PS button
		{Index: 6, Target: ButtonStart}, // Options
		{Index: 7, Target: ButtonLeftStick},
		{Index: 8, Target: ButtonRightStick},
		{Index: 9, Target: ButtonLeftShoulder},   // L1
		{Index: 10, Target: ButtonRightShoulder}, // R1
	},
	HasHat: true,
}

var switchProMapping = &DeviceMapping{
	Name: "switch_pro",
	Axes: []AxisMapping{
		{Index: 0, Target: AxisLeftX},
		{Index: 1, Target: AxisLeftY, Invert: true},
		{Index: 2, Target: AxisRightX},
		{Index: 3, Target: AxisRightY, Invert: true},
	},
	Buttons: []ButtonMapping{
		{Index: 0, Target: ButtonA},
		{Index: 1, Target: ButtonB},
		{Index: 2, Target: ButtonX},
		{Index: 3, Target: ButtonY},
		{Index: 4, Target: ButtonLeftShoulder},
		{Index: 5, Target: ButtonRightShoulder},
		{Index: 6, Target: ButtonBack},
		{Index: 7, Target: ButtonStart},
		{Index: 8, Target: ButtonLeftStick},
		{Index: 9, Target: ButtonRightStick},
		{Index: 10, Target: ButtonGuide},
	},
	HasHat: true,
}

var genericMapping = &DeviceMapping{
	Name: "generic",
	Axes: []AxisMapping{
		{Index: 0, Target: AxisLeftX},
		{Index: 1, Target: AxisLeftY, Invert: true},
		{Index: 2, Target: AxisRightX},
		{Index: 3, Target: AxisRightY, Invert: true},
		{Index: 4, Target: AxisLeftTrigger, IsTrigger: true, RawMin: -32768, RawMax: 32767},
		{Index: 5, Target: AxisRightTrigger, IsTrigger: true, RawMin: -32768, RawMax: 32767},
	},
	Buttons: []ButtonMapping{
		{Index: 0, Target: ButtonA},
		{Index: 1, Target: ButtonB},
		{Index: 2, Target: ButtonX},
		{Index: 3, Target: ButtonY},
		{Index: 4, Target: ButtonLeftShoulder},
		{Index: 5, Target: ButtonRightShoulder},
		{Index: 6, Target: ButtonBack},
		{Index: 7, Target: ButtonStart},
		{Index: 8, Target: ButtonLeftStick},
		{Index: 9, Target: ButtonRightStick},
		{Index: 10, Target: ButtonGuide},
	},
	HasHat: true,
}

type deviceKey struct {
	VendorID  uint16
	ProductID uint16
}

var knownDevices = map[deviceKey]*DeviceMapping{
	// Microsoft Xbox controllers
	{0x045E, 0x028E}: xboxMapping, // Xbox 360
	{0x045E, 0x02FF}: xboxMapping, // Xbox One
	{0x045E, 0x0B12}: xboxMapping, // Xbox Series X|S
	{0x045E, 0x0B13}: xboxMapping, // Xbox Series X|S (wireless)
	// Sony PlayStation controllers
	{0x054C, 0x0CE6}: playstationMapping, // DualSense
	{0x054C, 0x09CC}: playstationMapping, // DualShock 4 v2
	{0x054C, 0x05C4}: playstationMapping, // DualShock 4 v1
	// Nintendo Switch Pro Controller
	{0x057E, 0x2009}: switchProMapping,
}

// GetMapping returns the mapping for a device identified by vendor/product
// ID, falling back to the generic mapping when the device is not known.
func GetMapping(vendorID, productID uint16) *DeviceMapping {
	key := deviceKey{VendorID: vendorID, ProductID: productID}
	if m, ok := knownDevices[key]; ok {
		return m
	}
	return genericMapping
}
