package devices

import (
	"testing"

	"github.com/merbanan/rtl-433-sub002/codec"
	"github.com/merbanan/rtl-433-sub002/event"
)

func TestBresser3CHDecode(t *testing.T) {
	// Plaintext (pre-inversion) frame: id=0x42, channel=3 in bits 5-7 of
	// byte 1, battery OK, tempRaw=950 (=> 5.0F after the -900/10 mapping),
	// humidity=55, checksum = sum of the first five plaintext bytes.
	plain := []byte{0x42, byte(3 << 5), 0x09, 0x32, 55, 0}
	plain[5] = codec.SumBytes(plain[:5])

	buf := bufFromBytes(invertAll(plain)...)

	var got event.Record
	r := Bresser3CH{}.Decode(buf, func(rec event.Record) { got = rec })
	if r != 1 {
		t.Fatalf("Decode returned %v, want 1", r)
	}
	if v, _ := got.Get("id"); v.Int != 0x42 {
		t.Errorf("id = %d, want %d", v.Int, 0x42)
	}
	if v, _ := got.Get("channel"); v.Int != 3 {
		t.Errorf("channel = %d, want 3", v.Int)
	}
	if v, _ := got.Get("battery"); v.Str != "OK" {
		t.Errorf("battery = %q, want OK", v.Str)
	}
	if v, _ := got.Get("humidity"); v.Int != 55 {
		t.Errorf("humidity = %d, want 55", v.Int)
	}
}

func TestBresser3CHRejectsBadChecksum(t *testing.T) {
	plain := []byte{0x42, byte(3 << 5), 0x09, 0x32, 55, 0xFF}
	buf := bufFromBytes(invertAll(plain)...)

	r := Bresser3CH{}.Decode(buf, func(event.Record) {})
	if r != -3 { // decoder.FailMIC
		t.Fatalf("Decode returned %v, want FailMIC", r)
	}
}

func TestBresser3CHRejectsWrongLength(t *testing.T) {
	buf := bufFromBytes(0x01, 0x02, 0x03)
	r := Bresser3CH{}.Decode(buf, func(event.Record) {})
	if r != -1 { // decoder.AbortLen
		t.Fatalf("Decode returned %v, want AbortLen", r)
	}
}
