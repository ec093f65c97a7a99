package booking

// slotCatalog is the fixed set of bookable hourly slots per doctor per
// day, covering the 08:00 to 16:00 consultation window.
var slotCatalog = []string{
	"08:00",
	"09:00",
	"10:00",
	"11:00",
	"12:00",
	"13:00",
	"14:00",
	"15:00",
	"16:00",
}

// SlotCatalog returns a copy of the full bookable slot list
func SlotCatalog() []string {
	out := make([]string, len(slotCatalog))
	copy(out, slotCatalog)
	return out
}

func knownSlot(slot string) bool {
	for _, s := range slotCatalog {
		if s == slot {
			return true
		}
	}
	return false
}
