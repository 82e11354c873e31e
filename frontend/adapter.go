package frontend

import (
	"io"
	"math"
	"net"

	"github.com/bemasher/rtltcp"
	"github.com/pkg/errors"

	"github.com/merbanan/rtl-433-sub002/pulse"
)

// blockSize is the number of I/Q sample pairs read per Adapter.NextBurst
// call, mirroring the teacher's fixed receive block.
const blockSize = 1 << 14

// Adapter streams I/Q samples from an rtl_tcp-compatible server, envelope-
// detects them, and slices the envelope into pulse.Data bursts on a simple
// adaptive threshold — a protocol-agnostic generalization of the teacher's
// Receiver, which instead looked only for one fixed SCM preamble.
type Adapter struct {
	rtltcp.SDR

	sampleRate uint32
	threshold  float64

	block []byte
	env   []float64
	level bool
}

// Config is the subset of SDR tuning parameters an Adapter needs.
type Config struct {
	ServerAddr   *net.TCPAddr
	SampleRate   uint32
	CenterFreq   uint32
	OffsetTuning bool
	AutoGain     bool
}

// NewAdapter connects to cfg.ServerAddr and tunes the dongle per cfg.
func NewAdapter(cfg Config) (*Adapter, error) {
	a := &Adapter{sampleRate: cfg.SampleRate}
	if err := a.Connect(cfg.ServerAddr); err != nil {
		return nil, errors.Wrap(err, "frontend: connecting to rtl_tcp")
	}
	a.SetSampleRate(cfg.SampleRate)
	a.SetCenterFreq(cfg.CenterFreq)
	a.SetOffsetTuning(cfg.OffsetTuning)
	a.SetGainMode(cfg.AutoGain)

	a.block = make([]byte, blockSize<<1)
	a.env = make([]float64, blockSize)
	return a, nil
}

// Close releases the SDR connection.
func (a *Adapter) Close() {
	a.SDR.Close()
}

// NextBurst reads one block of I/Q samples, AM-demodulates it, and slices
// the envelope into a pulse.Data burst using a mid-point threshold between
// the block's observed high and low levels — the generic envelope-follower
// every OOK slicer in this module is ultimately fed from.
func (a *Adapter) NextBurst() (*pulse.Data, error) {
	if _, err := io.ReadFull(a, a.block); err != nil {
		return nil, errors.Wrap(err, "frontend: reading sample block")
	}

	lo, hi := math.MaxFloat64, -math.MaxFloat64
	for i := 0; i < blockSize; i++ {
		m := mag(a.block[i<<1], a.block[(i<<1)+1])
		a.env[i] = m
		if m < lo {
			lo = m
		}
		if m > hi {
			hi = m
		}
	}
	mid := (lo + hi) / 2

	pd := pulse.New(a.sampleRate, blockSize/4)
	pd.OOKLowEstimate = int32(lo * 1e4)
	pd.OOKHighEstimate = int32(hi * 1e4)

	var curPulse, curGap int32
	inPulse := a.level
	for i := 0; i < blockSize; i++ {
		high := a.env[i] > mid
		switch {
		case high == inPulse && inPulse:
			curPulse++
		case high == inPulse && !inPulse:
			curGap++
		case inPulse && !high:
			inPulse = false
			curGap = 1
		default: // !inPulse && high: gap just ended, a full pulse/gap pair is complete
			pd.Add(curPulse, curGap)
			inPulse = true
			curPulse = 1
		}
	}
	if curPulse > 0 {
		pd.Add(curPulse, curGap)
	}
	a.level = inPulse
	return pd, nil
}

// mag converts one unsigned 8-bit I/Q sample pair into a normalized
// magnitude, the same shift-and-normalize the teacher's Mag function used.
func mag(i, q byte) float64 {
	di := (127.5 - float64(i)) / 127
	dq := (127.5 - float64(q)) / 127
	return math.Hypot(di, dq)
}
