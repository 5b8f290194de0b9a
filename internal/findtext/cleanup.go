package findtext

// Cleanup unwraps every highlighted unit in doc and returns how many were
// removed. It stops early when it meets a unit that is no longer attached,
// which means the document changed underneath, and when a unit is still
// attached after Unwrap, which means the next lookup would return it again.
func Cleanup(doc Document) int {
	if doc == nil {
		return 0
	}
	removed := 0
	for {
		unit, ok := doc.FirstHighlight()
		if !ok || unit == nil || !unit.Attached() {
			return removed
		}
		unit.Unwrap()
		removed++
		if unit.Attached() {
			return removed
		}
	}
}
