package shared

// RestType identifies when a resource replenishes
type RestType string

const (
	RestTypeShort RestType = "short"
	RestTypeLong  RestType = "long"
	// RestTypeNone marks resources that never replenish on a rest
	RestTypeNone RestType = "none"
)

// RestoresOn reports whether a resource with this reset type replenishes
// on the given rest. A long rest also restores short-rest resources.
func (r RestType) RestoresOn(rest RestType) bool {
	if r == RestTypeNone {
		return false
	}
	if rest == RestTypeLong {
		return true
	}
	return r == RestTypeShort && rest == RestTypeShort
}
