package devices

import (
	"testing"

	"github.com/merbanan/rtl-433-sub002/codec"
	"github.com/merbanan/rtl-433-sub002/event"
)

func TestHoneywellContactDecode(t *testing.T) {
	// channel=8, id=0x12345, event byte 0x81 (open, heartbeat clear,
	// battery bit clear => OK).
	plain := make([]byte, 6)
	plain[0] = byte(8<<4) | 0x01
	plain[1] = 0x23
	plain[2] = 0x45
	plain[3] = 0x81
	crc := codec.CRC16(plain[:4], 0x8005, 0x0000, false, false, 0)
	plain[4] = byte(crc >> 8)
	plain[5] = byte(crc)

	buf := bufFromBytes(invertAll(plain)...)

	var got event.Record
	r := HoneywellContact{}.Decode(buf, func(rec event.Record) { got = rec })
	if r != 1 {
		t.Fatalf("Decode returned %v, want 1", r)
	}
	if v, _ := got.Get("id"); v.Str != "12345" {
		t.Errorf("id = %q, want 12345", v.Str)
	}
	if v, _ := got.Get("channel"); v.Int != 8 {
		t.Errorf("channel = %d, want 8", v.Int)
	}
	if v, _ := got.Get("state"); v.Str != "open" {
		t.Errorf("state = %q, want open", v.Str)
	}
	if v, _ := got.Get("battery_ok"); v.Int != 1 {
		t.Errorf("battery_ok = %d, want 1", v.Int)
	}
}

func TestHoneywellContactRejectsBadCRC(t *testing.T) {
	plain := []byte{byte(8 << 4), 0x34, 0x45, 0x81, 0xFF, 0xFF}
	buf := bufFromBytes(invertAll(plain)...)
	r := HoneywellContact{}.Decode(buf, func(event.Record) {})
	if r != -3 {
		t.Fatalf("Decode returned %v, want FailMIC", r)
	}
}
