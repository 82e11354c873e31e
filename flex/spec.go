// Package flex implements the flexible decoder factory of spec.md §4.6: a
// data-driven decoder configurable from a single spec string, parsed once
// at startup into a Spec, which New wraps as a Decoder implementing
// decoder.Device.
package flex

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/merbanan/rtl-433-sub002/decoder"
)

// CountOp is the comparison operator on a bits/rows/repeats filter.
type CountOp int

const (
	CountEQ CountOp = iota
	CountGT
	CountLT
)

// CountFilter is one of the bits[=N|>N|<N], rows, repeats option values.
type CountFilter struct {
	Op    CountOp
	Value int
}

// Match reports whether n satisfies the filter.
func (f *CountFilter) Match(n int) bool {
	if f == nil {
		return true
	}
	switch f.Op {
	case CountGT:
		return n > f.Value
	case CountLT:
		return n < f.Value
	default:
		return n == f.Value
	}
}

// GetRule is one "get=@<off>:{<bits>}[:name[:<k:v> <k:v>...]]" extraction
// rule.
type GetRule struct {
	BitOffset int
	BitCount  int
	Mask      *uint64
	Name      string
	ValueMap  map[int64]string
}

// Spec is the parsed form of a flex decoder's spec string.
type Spec struct {
	Name          string
	Mod           decoder.Modulation
	Timings       decoder.Timings
	BitsFilter    *CountFilter
	RowsFilter    *CountFilter
	RepeatsFilter *CountFilter
	Invert        bool
	Match         []byte
	MatchBits     int
	Preamble      []byte
	PreambleBits  int
	CountOnly     bool
	Gets          []GetRule
}

var modulationNames = map[string]decoder.Modulation{
	"OOK_PCM":        decoder.OOKPCM,
	"OOK_PPM":        decoder.OOKPPM,
	"OOK_PWM":        decoder.OOKPWM,
	"OOK_MC_ZEROBIT": decoder.OOKManchesterZerobit,
	"OOK_DMC":        decoder.OOKDMC,
	"OOK_PIWM_RAW":   decoder.OOKPIWMRaw,
	"OOK_PIWM_DC":    decoder.OOKPIWMDC,
	"OOK_NRZS":       decoder.OOKNRZS,
	"OOK_OSV1":       decoder.OOKOSV1,
	"FSK_PCM":        decoder.FSKPCM,
	"FSK_PWM":        decoder.FSKPWM,
}

// Parse parses a flex spec string per spec.md §4.6's grammar:
//
//	"name:mod:short:long:reset[:gap[:tol[:sync]]][,key=value...]"
func Parse(specStr string) (*Spec, error) {
	parts := strings.Split(specStr, ",")
	if len(parts) == 0 || parts[0] == "" {
		return nil, errors.New("flex: empty spec string")
	}

	fields := strings.Split(parts[0], ":")
	if len(fields) < 5 {
		return nil, errors.Errorf("flex: spec %q needs at least name:mod:short:long:reset", parts[0])
	}

	s := &Spec{Name: fields[0]}

	mod, ok := modulationNames[strings.ToUpper(fields[1])]
	if !ok {
		return nil, errors.Errorf("flex: unknown modulation %q", fields[1])
	}
	s.Mod = mod

	var err error
	if s.Timings.ShortWidth, err = parseUS(fields[2]); err != nil {
		return nil, errors.Wrap(err, "flex: short width")
	}
	if s.Timings.LongWidth, err = parseUS(fields[3]); err != nil {
		return nil, errors.Wrap(err, "flex: long width")
	}
	if s.Timings.ResetLimit, err = parseUS(fields[4]); err != nil {
		return nil, errors.Wrap(err, "flex: reset limit")
	}
	if len(fields) > 5 {
		if s.Timings.GapLimit, err = parseUS(fields[5]); err != nil {
			return nil, errors.Wrap(err, "flex: gap limit")
		}
	}
	if len(fields) > 6 {
		if s.Timings.Tolerance, err = parseUS(fields[6]); err != nil {
			return nil, errors.Wrap(err, "flex: tolerance")
		}
	}
	if len(fields) > 7 {
		if s.Timings.SyncWidth, err = parseUS(fields[7]); err != nil {
			return nil, errors.Wrap(err, "flex: sync width")
		}
	}

	for _, opt := range parts[1:] {
		if err := s.parseOption(opt); err != nil {
			return nil, errors.Wrapf(err, "flex: option %q", opt)
		}
	}

	return s, nil
}

func parseUS(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

func (s *Spec) parseOption(opt string) error {
	// The key ends at the first '=', '>' or '<', so "bits=32", "rows>2"
	// and "repeats>=3" all split into a key and an operator-bearing value.
	key, value, hasValue := opt, "", false
	if i := strings.IndexAny(opt, "=<>"); i >= 0 {
		key, value, hasValue = opt[:i], strings.TrimPrefix(opt[i:], "="), true
	}
	key = strings.TrimSpace(key)

	switch key {
	case "invert":
		s.Invert = true
	case "countonly":
		s.CountOnly = true
	case "bits":
		f, err := parseCountFilter(value, hasValue)
		if err != nil {
			return err
		}
		s.BitsFilter = f
	case "rows":
		f, err := parseCountFilter(value, hasValue)
		if err != nil {
			return err
		}
		s.RowsFilter = f
	case "repeats":
		f, err := parseCountFilter(value, hasValue)
		if err != nil {
			return err
		}
		s.RepeatsFilter = f
	case "match":
		bits, n, err := decodeBitspec(value)
		if err != nil {
			return err
		}
		s.Match, s.MatchBits = bits, n
	case "preamble":
		bits, n, err := decodeBitspec(value)
		if err != nil {
			return err
		}
		s.Preamble, s.PreambleBits = bits, n
	case "get":
		rule, err := parseGetRule(value)
		if err != nil {
			return err
		}
		s.Gets = append(s.Gets, rule)
	default:
		return errors.Errorf("unknown option key %q", key)
	}
	return nil
}

// parseCountFilter parses the shared "[=N|>N|<N]" operator grammar used by
// bits, rows and repeats.
func parseCountFilter(value string, hasValue bool) (*CountFilter, error) {
	if !hasValue || value == "" {
		return nil, nil
	}
	op := CountEQ
	numPart := value
	switch {
	case strings.HasPrefix(value, ">="):
		op, numPart = CountGT, value[2:] // >=N treated as N-1 boundary via GT on N-1 below
	case strings.HasPrefix(value, "<="):
		op, numPart = CountLT, value[2:]
	case strings.HasPrefix(value, ">"):
		op, numPart = CountGT, value[1:]
	case strings.HasPrefix(value, "<"):
		op, numPart = CountLT, value[1:]
	}
	n, err := strconv.Atoi(strings.TrimSpace(numPart))
	if err != nil {
		return nil, errors.Wrapf(err, "bad count %q", value)
	}
	if strings.HasPrefix(value, ">=") {
		n--
	} else if strings.HasPrefix(value, "<=") {
		n++
	}
	return &CountFilter{Op: op, Value: n}, nil
}

func decodeBitspec(lit string) ([]byte, int, error) {
	if !strings.HasPrefix(lit, "{") {
		return nil, 0, errors.Errorf("bitspec %q missing {nbits}", lit)
	}
	closeIdx := strings.IndexByte(lit, '}')
	if closeIdx < 0 {
		return nil, 0, errors.Errorf("bitspec %q missing closing }", lit)
	}
	nbits, err := strconv.Atoi(lit[1:closeIdx])
	if err != nil {
		return nil, 0, errors.Wrapf(err, "bitspec %q bit count", lit)
	}
	body := strings.TrimPrefix(strings.TrimPrefix(lit[closeIdx+1:], "0x"), "0X")

	packed := make([]byte, (nbits+7)/8)
	isBinary := len(body) == nbits && onlyBinary(body)
	if isBinary {
		for i, c := range body {
			if c == '1' {
				packed[i>>3] |= 1 << uint(7-(i&7))
			}
		}
		return packed, nbits, nil
	}
	bitIdx := 0
	for _, c := range body {
		if bitIdx >= nbits {
			break
		}
		v, err := strconv.ParseUint(string(c), 16, 8)
		if err != nil {
			return nil, 0, errors.Wrapf(err, "bitspec %q hex digit %q", lit, c)
		}
		for i := 3; i >= 0 && bitIdx < nbits; i-- {
			if (v>>uint(i))&1 != 0 {
				packed[bitIdx>>3] |= 1 << uint(7-(bitIdx&7))
			}
			bitIdx++
		}
	}
	return packed, nbits, nil
}

func onlyBinary(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c != '0' && c != '1' {
			return false
		}
	}
	return true
}

// parseGetRule parses "@<off>:{<bits>}[:name[:<k:v> <k:v>...]]".
func parseGetRule(value string) (GetRule, error) {
	var rule GetRule
	fields := strings.Split(value, ":")
	if len(fields) < 2 {
		return rule, errors.Errorf("get rule %q needs @offset:{bits}", value)
	}
	offStr := strings.TrimPrefix(fields[0], "@")
	off, err := strconv.Atoi(offStr)
	if err != nil {
		return rule, errors.Wrapf(err, "get rule %q offset", value)
	}
	rule.BitOffset = off

	bitsSpec := fields[1]
	nbits, mask, err := parseBitsAndMask(bitsSpec)
	if err != nil {
		return rule, errors.Wrapf(err, "get rule %q bit count", value)
	}
	rule.BitCount = nbits
	if mask != 0 {
		rule.Mask = &mask
	}

	if len(fields) > 2 {
		rule.Name = fields[2]
	}
	if len(fields) > 3 {
		rule.ValueMap = make(map[int64]string)
		for _, kv := range strings.Fields(strings.Join(fields[3:], ":")) {
			k, v, ok := strings.Cut(kv, ":")
			if !ok {
				continue
			}
			key, err := strconv.ParseInt(k, 0, 64)
			if err != nil {
				continue
			}
			rule.ValueMap[key] = v
		}
	}
	return rule, nil
}

func parseBitsAndMask(spec string) (int, uint64, error) {
	spec = strings.TrimPrefix(spec, "{")
	spec = strings.TrimSuffix(spec, "}")
	n, err := strconv.Atoi(spec)
	if err != nil {
		return 0, 0, err
	}
	return n, 0, nil
}
