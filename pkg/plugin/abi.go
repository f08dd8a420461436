package plugin

// The high byte of an Info's 32-bit ABI version belongs to the
// framework; the low 24 bits are for the embedding application to
// carve up. Loader backends compare the framework byte during query
// and reject plugins built against a different framework ABI.
const (
	// ABIFrameworkMask selects the framework-owned byte.
	ABIFrameworkMask uint32 = 0xff000000

	// ABIFrameworkVersion is the framework byte this library emits and
	// accepts.
	ABIFrameworkVersion uint32 = 0x01000000
)

// MakeABIVersion combines the framework byte with an application's low
// 24 bits.
func MakeABIVersion(application uint32) uint32 {
	return ABIFrameworkVersion | (application &^ ABIFrameworkMask)
}

// ABICompatible reports whether v carries the framework byte this
// library accepts.
func ABICompatible(v uint32) bool {
	return v&ABIFrameworkMask == ABIFrameworkVersion
}

// ABIApplicationVersion extracts the application's low 24 bits.
func ABIApplicationVersion(v uint32) uint32 {
	return v &^ ABIFrameworkMask
}
