package manifest

import "fmt"

// BinaryKind is the output shape of a native artifact.
type BinaryKind int

const (
	Executable BinaryKind = iota + 1
	TestBinary
	SharedLib
	StaticLib
	Framework
)

// binaryKindNames is the fixed external spelling of each kind. Lookups are
// exact; no case folding is applied.
var binaryKindNames = map[BinaryKind]string{
	Executable: "executable",
	TestBinary: "test",
	SharedLib:  "sharedLib",
	StaticLib:  "staticLib",
	Framework:  "framework",
}

// BinaryKinds returns every kind in declaration order.
func BinaryKinds() []BinaryKind {
	return []BinaryKind{Executable, TestBinary, SharedLib, StaticLib, Framework}
}

// ParseBinaryKind returns the kind for its external name.
func ParseBinaryKind(s string) (BinaryKind, error) {
	for _, k := range BinaryKinds() {
		if binaryKindNames[k] == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown binary type %q; valid types: executable, test, sharedLib, staticLib, framework", s)
}

// String returns the external name.
func (k BinaryKind) String() string {
	if name, ok := binaryKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("BinaryKind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k BinaryKind) MarshalText() ([]byte, error) {
	name, ok := binaryKindNames[k]
	if !ok {
		return nil, fmt.Errorf("invalid binary kind %d", int(k))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *BinaryKind) UnmarshalText(text []byte) error {
	parsed, err := ParseBinaryKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
