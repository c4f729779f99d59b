package vm

// ---------------------------------------------------------------------------
// Centralized NaN-boxing marker allocation table
// ---------------------------------------------------------------------------
//
// Every heap entity referenced from a Value uses a unique marker byte stored
// in bits 24-31 of the symbol ID. Interned symbols have marker 0. This file is
// the single source of truth for marker allocations.
//
// Once assigned, marker values must not change: dumped payloads and snapshot
// rows may refer to them.

const (
	exceptionMarker  uint32 = 8 << 24
	stringMarker     uint32 = 12 << 24
	hashMarker       uint32 = 13 << 24
	largeIntMarker   uint32 = 14 << 24
	instanceMarker   uint32 = 15 << 24
	classValueMarker uint32 = 36 << 24
	dataMarker       uint32 = 41 << 24
)

// markerMask extracts the marker byte from a symbol ID.
const markerMask uint32 = 0xFF << 24

// idMask extracts the registry ID below the marker byte.
const idMask uint32 = 0x00FFFFFF

func markedValue(marker, id uint32) Value {
	return FromSymbolID(marker | (id & idMask))
}

// markedID returns the registry ID if v carries marker.
func markedID(v Value, marker uint32) (uint32, bool) {
	if !v.IsSymbol() {
		return 0, false
	}
	id := v.SymbolID()
	if id&markerMask != marker {
		return 0, false
	}
	return id & idMask, true
}
