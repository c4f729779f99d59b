package timext

import (
	"fmt"
	"time"

	"github.com/chazu/tock/calendar"
	"github.com/chazu/tock/vm"
	"github.com/fxamacker/cbor/v2"
)

// payload is the wire form of a Time used by _dump/_load and snapshots.
type payload struct {
	Sec    int64  `cbor:"1,keyasint"`
	Nsec   uint32 `cbor:"2,keyasint"`
	Kind   uint8  `cbor:"3,keyasint"`
	Offset int32  `cbor:"4,keyasint,omitempty"`
	Zone   string `cbor:"5,keyasint,omitempty"`
}

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("timext: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// MarshalTime serializes t to canonical CBOR. The local offset is recorded
// by kind only; it resolves against the loader's local zone.
func MarshalTime(t calendar.Time) ([]byte, error) {
	off := t.Offset()
	p := payload{Sec: t.Unix(), Nsec: t.Nanoseconds(), Kind: uint8(off.Kind())}
	switch off.Kind() {
	case calendar.OffsetFixed:
		p.Offset, _ = off.FixedSeconds()
	case calendar.OffsetZone:
		p.Zone = off.ZoneName()
	}
	return cborEncMode.Marshal(p)
}

// UnmarshalTime decodes a MarshalTime payload. local resolves the local
// offset kind; nil means time.Local.
func UnmarshalTime(data []byte, local *time.Location) (calendar.Time, error) {
	var p payload
	if err := cbor.Unmarshal(data, &p); err != nil {
		return calendar.Time{}, fmt.Errorf("timext: unmarshal time: %w", err)
	}
	if p.Nsec >= calendar.NanosPerSecond {
		return calendar.Time{}, fmt.Errorf("timext: unmarshal time: nanoseconds %d out of range", p.Nsec)
	}

	var off calendar.Offset
	var err error
	switch calendar.OffsetKind(p.Kind) {
	case calendar.OffsetUTC:
		off = calendar.UTC()
	case calendar.OffsetFixed:
		off, err = calendar.Fixed(p.Offset)
	case calendar.OffsetZone:
		off, err = calendar.Zone(p.Zone)
	case calendar.OffsetLocal:
		off = calendar.Local(local)
	default:
		err = fmt.Errorf("unknown offset kind %d", p.Kind)
	}
	if err != nil {
		return calendar.Time{}, fmt.Errorf("timext: unmarshal time: %w", err)
	}
	return calendar.New(p.Sec, p.Nsec, off)
}

func (b *Binding) dump(self vm.Value) (vm.Value, error) {
	t, err := b.receiver(self)
	if err != nil {
		return vm.Nil, err
	}
	data, err := MarshalTime(*t)
	if err != nil {
		return vm.Nil, err
	}
	return b.vm.NewStringBytes(data), nil
}

func (b *Binding) load(str vm.Value) (vm.Value, error) {
	data, ok := b.vm.StringBytes(str)
	if !ok {
		return vm.Nil, vm.TypeError("no implicit conversion of " + b.vm.TypeName(str) + " into String")
	}
	t, err := UnmarshalTime(data, b.local)
	if err != nil {
		b.log.Debugf("rejected _load payload: %s", err)
		return vm.Nil, &vm.Error{Kind: vm.KindType, Message: "marshaled time format differ", Err: err}
	}
	return b.Box(t), nil
}
