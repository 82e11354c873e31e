package devices

import (
	"testing"

	"github.com/merbanan/rtl-433-sub002/codec"
	"github.com/merbanan/rtl-433-sub002/event"
)

func TestSteelmateTPMSDecode(t *testing.T) {
	plain := make([]byte, 9)
	plain[0] = 0x12
	plain[1] = 0x34
	plain[2] = 200 // pressure = 200*2.5 = 500 kPa
	plain[3] = 74  // temperature = 74-50 = 24C
	plain[4] = 124 // battery = 124*20 = 2480 mV
	plain[5], plain[6], plain[7] = 0, 0, 0
	plain[8] = codec.XorBytes(plain[:8])

	buf := bufFromBytes(invertAll(plain)...)

	var got event.Record
	r := SteelmateTPMS{}.Decode(buf, func(rec event.Record) { got = rec })
	if r != 1 {
		t.Fatalf("Decode returned %v, want 1", r)
	}
	if v, _ := got.Get("id"); v.Str != "0x1234" {
		t.Errorf("id = %q, want 0x1234", v.Str)
	}
	if v, _ := got.Get("pressure_kPa"); v.Double != 500 {
		t.Errorf("pressure_kPa = %v, want 500", v.Double)
	}
	if v, _ := got.Get("temperature_C"); v.Int != 24 {
		t.Errorf("temperature_C = %d, want 24", v.Int)
	}
	if v, _ := got.Get("battery_mV"); v.Int != 2480 {
		t.Errorf("battery_mV = %d, want 2480", v.Int)
	}
}

func TestSteelmateTPMSRejectsBadChecksum(t *testing.T) {
	plain := make([]byte, 9)
	plain[8] = 0xFF
	buf := bufFromBytes(invertAll(plain)...)
	r := SteelmateTPMS{}.Decode(buf, func(event.Record) {})
	if r != -3 {
		t.Fatalf("Decode returned %v, want FailMIC", r)
	}
}
