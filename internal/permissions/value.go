package permissions

// Value is a bit-encoded permission where each bit is an independent
// capability. Values are immutable; all operations return new values.
type Value uint32

// Capability bits. Composite level values are built from these.
const (
	BitRead Value = 1 << iota
	BitWrite
	BitManage
)

const (
	// None grants no access.
	None Value = 0

	// Read allows viewing an app and its conversation history.
	Read = BitRead

	// Write allows editing an app. Write implies read.
	Write = BitRead | BitWrite

	// Manage allows administering an app's collaborators and share links.
	// Manage implies write and read.
	Manage = BitRead | BitWrite | BitManage

	// Owner is the sentinel value implying every capability, present and
	// future. It is held implicitly by an app's creator and never stored
	// as a grant.
	Owner Value = 1<<32 - 1
)

// Combine merges two values into their bitwise union. A principal holding
// multiple grants has the combined value of all of them. Commutative, total.
func Combine(a, b Value) Value {
	return a | b
}

// Contains reports whether v grants every bit of cap. The owner sentinel
// contains everything regardless of individual bits.
func (v Value) Contains(cap Value) bool {
	if v.IsOwner() {
		return true
	}
	return v&cap == cap
}

// IsOwner reports whether v is the owner sentinel.
func (v Value) IsOwner() bool {
	return v == Owner
}
