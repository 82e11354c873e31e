package devices

import (
	"testing"

	"github.com/merbanan/rtl-433-sub002/codec"
	"github.com/merbanan/rtl-433-sub002/event"
)

func TestOregonV1Decode(t *testing.T) {
	// Post-reflect (logical) bytes: channel=5, id=0x42, BCD temp 2.3C
	// positive, checksum = XOR of the first four bytes' low nibble.
	b := []byte{0xA5, 0x42, 0x23, 0x00, 0x00}
	b[4] = codec.XorBytes(b[:4]) & 0x0F

	raw := codec.ReflectNibbles(b)
	buf := bufFromBytes(raw...)

	var got event.Record
	r := OregonV1{}.Decode(buf, func(rec event.Record) { got = rec })
	if r != 1 {
		t.Fatalf("Decode returned %v, want 1", r)
	}
	if v, _ := got.Get("channel"); v.Int != 5 {
		t.Errorf("channel = %d, want 5", v.Int)
	}
	if v, _ := got.Get("id"); v.Int != 0x42 {
		t.Errorf("id = %d, want %d", v.Int, 0x42)
	}
	if v, _ := got.Get("temperature_C"); v.Double != 2.3 {
		t.Errorf("temperature_C = %v, want 2.3", v.Double)
	}
}

func TestOregonV1NegativeTemperature(t *testing.T) {
	b := []byte{0xA5, 0x42, 0x23, 0x08, 0x00}
	b[4] = codec.XorBytes(b[:4]) & 0x0F
	raw := codec.ReflectNibbles(b)
	buf := bufFromBytes(raw...)

	var got event.Record
	r := OregonV1{}.Decode(buf, func(rec event.Record) { got = rec })
	if r != 1 {
		t.Fatalf("Decode returned %v, want 1", r)
	}
	if v, _ := got.Get("temperature_C"); v.Double != -2.3 {
		t.Errorf("temperature_C = %v, want -2.3", v.Double)
	}
}

func TestOregonV1RejectsBadChecksum(t *testing.T) {
	b := []byte{0xA5, 0x42, 0x23, 0x00, 0xFF}
	raw := codec.ReflectNibbles(b)
	buf := bufFromBytes(raw...)
	r := OregonV1{}.Decode(buf, func(event.Record) {})
	if r != -3 {
		t.Fatalf("Decode returned %v, want FailMIC", r)
	}
}
