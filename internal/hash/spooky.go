package hash

import "encoding/binary"

// SpookyHash V2 (128-bit, incremental), ported from Bob Jenkins' public
// domain reference algorithm: 96-byte mix blocks staged in a 192-byte
// buffer, a short-message path below 192 bytes, little-endian reads, and the published V2
// constants and rotation amounts. Object/property header hashing must
// reproduce the reference Alembic implementation bit for bit, and no
// ecosystem-common Go module exposes this exact incremental
// init/update/finalize/short-end-mix shape, so it lives here next to the
// MurmurHash3 wrapper.
const (
	spookyNumVars   = 12
	spookyBlockSize = spookyNumVars * 8 // 96
	spookyBufSize   = 2 * spookyBlockSize // 192
	spookyConst     = uint64(0xdeadbeefdeadbeef)
)

func rot64(x uint64, k uint) uint64 {
	return (x << k) | (x >> (64 - k))
}

// le64 reads a little-endian uint64 at byte offset i*8 in b.
func le64(b []byte, i int) uint64 {
	return binary.LittleEndian.Uint64(b[i*8:])
}

// mix is the 12-variable block mixing round applied to one 96-byte chunk.
func mix(data []byte, s [spookyNumVars]uint64) [spookyNumVars]uint64 {
	s0, s1, s2, s3 := s[0], s[1], s[2], s[3]
	s4, s5, s6, s7 := s[4], s[5], s[6], s[7]
	s8, s9, s10, s11 := s[8], s[9], s[10], s[11]

	s0 += le64(data, 0)
	s2 ^= s10
	s11 ^= s0
	s0 = rot64(s0, 11)
	s11 += s1

	s1 += le64(data, 1)
	s3 ^= s11
	s0 ^= s1
	s1 = rot64(s1, 32)
	s0 += s2

	s2 += le64(data, 2)
	s4 ^= s0
	s1 ^= s2
	s2 = rot64(s2, 43)
	s1 += s3

	s3 += le64(data, 3)
	s5 ^= s1
	s2 ^= s3
	s3 = rot64(s3, 31)
	s2 += s4

	s4 += le64(data, 4)
	s6 ^= s2
	s3 ^= s4
	s4 = rot64(s4, 17)
	s3 += s5

	s5 += le64(data, 5)
	s7 ^= s3
	s4 ^= s5
	s5 = rot64(s5, 28)
	s4 += s6

	s6 += le64(data, 6)
	s8 ^= s4
	s5 ^= s6
	s6 = rot64(s6, 39)
	s5 += s7

	s7 += le64(data, 7)
	s9 ^= s5
	s6 ^= s7
	s7 = rot64(s7, 57)
	s6 += s8

	s8 += le64(data, 8)
	s10 ^= s6
	s7 ^= s8
	s8 = rot64(s8, 55)
	s7 += s9

	s9 += le64(data, 9)
	s11 ^= s7
	s8 ^= s9
	s9 = rot64(s9, 54)
	s8 += s10

	s10 += le64(data, 10)
	s0 ^= s8
	s9 ^= s10
	s10 = rot64(s10, 22)
	s9 += s11

	s11 += le64(data, 11)
	s1 ^= s9
	s10 ^= s11
	s11 = rot64(s11, 46)
	s10 += s0

	return [spookyNumVars]uint64{s0, s1, s2, s3, s4, s5, s6, s7, s8, s9, s10, s11}
}

func endPartial(h [spookyNumVars]uint64) [spookyNumVars]uint64 {
	h0, h1, h2, h3 := h[0], h[1], h[2], h[3]
	h4, h5, h6, h7 := h[4], h[5], h[6], h[7]
	h8, h9, h10, h11 := h[8], h[9], h[10], h[11]

	h11 += h1
	h2 ^= h11
	h1 = rot64(h1, 44)
	h0 += h2
	h3 ^= h0
	h2 = rot64(h2, 15)
	h1 += h3
	h4 ^= h1
	h3 = rot64(h3, 34)
	h2 += h4
	h5 ^= h2
	h4 = rot64(h4, 21)
	h3 += h5
	h6 ^= h3
	h5 = rot64(h5, 38)
	h4 += h6
	h7 ^= h4
	h6 = rot64(h6, 33)
	h5 += h7
	h8 ^= h5
	h7 = rot64(h7, 10)
	h6 += h8
	h9 ^= h6
	h8 = rot64(h8, 13)
	h7 += h9
	h10 ^= h7
	h9 = rot64(h9, 38)
	h8 += h10
	h11 ^= h8
	h10 = rot64(h10, 53)
	h9 += h11
	h0 ^= h9
	h11 = rot64(h11, 42)
	h10 += h0
	h1 ^= h10
	h0 = rot64(h0, 54)

	return [spookyNumVars]uint64{h0, h1, h2, h3, h4, h5, h6, h7, h8, h9, h10, h11}
}

// end folds the final 96-byte block into h (3 EndPartial rounds after the
// block is added in).
func end(data []byte, h [spookyNumVars]uint64) [spookyNumVars]uint64 {
	for i := range h {
		h[i] += le64(data, i)
	}
	h = endPartial(h)
	h = endPartial(h)
	h = endPartial(h)

	return h
}

func shortMix(h0, h1, h2, h3 uint64) (uint64, uint64, uint64, uint64) {
	h2 = rot64(h2, 50)
	h2 += h3
	h0 ^= h2
	h3 = rot64(h3, 52)
	h3 += h0
	h1 ^= h3
	h0 = rot64(h0, 30)
	h0 += h1
	h2 ^= h0
	h1 = rot64(h1, 41)
	h1 += h2
	h3 ^= h1
	h2 = rot64(h2, 54)
	h2 += h3
	h0 ^= h2
	h3 = rot64(h3, 48)
	h3 += h0
	h1 ^= h3
	h0 = rot64(h0, 38)
	h0 += h1
	h2 ^= h0
	h1 = rot64(h1, 37)
	h1 += h2
	h3 ^= h1
	h2 = rot64(h2, 62)
	h2 += h3
	h0 ^= h2
	h3 = rot64(h3, 34)
	h3 += h0
	h1 ^= h3
	h0 = rot64(h0, 5)
	h0 += h1
	h2 ^= h0
	h1 = rot64(h1, 36)
	h1 += h2
	h3 ^= h1

	return h0, h1, h2, h3
}

func shortEnd(h0, h1, h2, h3 uint64) (uint64, uint64, uint64, uint64) {
	h3 ^= h2
	h2 = rot64(h2, 15)
	h3 += h2
	h0 ^= h3
	h3 = rot64(h3, 52)
	h0 += h3
	h1 ^= h0
	h0 = rot64(h0, 26)
	h1 += h0
	h2 ^= h1
	h1 = rot64(h1, 51)
	h2 += h1
	h3 ^= h2
	h2 = rot64(h2, 28)
	h3 += h2
	h0 ^= h3
	h3 = rot64(h3, 9)
	h0 += h3
	h1 ^= h0
	h0 = rot64(h0, 47)
	h1 += h0
	h2 ^= h1
	h1 = rot64(h1, 54)
	h2 += h1
	h3 ^= h2
	h2 = rot64(h2, 32)
	h3 += h2
	h0 ^= h3
	h3 = rot64(h3, 25)
	h0 += h3
	h1 ^= h0
	h0 = rot64(h0, 63)
	h1 += h0

	return h0, h1, h2, h3
}

// byteAt reads byte i of message as a uint64; it does no bounds handling
// of its own (only used for the tail of short(); the switch below never
// reads past len(message)).
func byteAt(message []byte, i int) uint64 {
	return uint64(message[i])
}

// short implements the short-message path (len(message) < spookyBufSize)
// shared by the one-shot hasher and short_end_mix folding.
func short(seed1, seed2 uint64, message []byte) (uint64, uint64) {
	length := len(message)
	a, b := seed1, seed2
	c, d := spookyConst, spookyConst

	remainder := length % 32
	pos := 0

	if length > 15 {
		fullSets := length / 32
		for i := 0; i < fullSets; i++ {
			c += le64(message, pos/8)
			d += le64(message, pos/8+1)
			a, b, c, d = shortMix(a, b, c, d)
			a += le64(message, pos/8+2)
			b += le64(message, pos/8+3)
			pos += 32
		}

		if remainder >= 16 {
			c += le64(message, pos/8)
			d += le64(message, pos/8+1)
			a, b, c, d = shortMix(a, b, c, d)
			pos += 16
			remainder -= 16
		}
	}

	d += uint64(length) << 56

	tail := message[pos:]
	switch remainder {
	case 15:
		d += byteAt(tail, 14) << 48
		fallthrough
	case 14:
		d += byteAt(tail, 13) << 40
		fallthrough
	case 13:
		d += byteAt(tail, 12) << 32
		fallthrough
	case 12:
		d += uint64(binary.LittleEndian.Uint32(tail[8:12]))
		c += le64(tail, 0)
	case 11:
		d += byteAt(tail, 10) << 16
		fallthrough
	case 10:
		d += byteAt(tail, 9) << 8
		fallthrough
	case 9:
		d += byteAt(tail, 8)
		fallthrough
	case 8:
		c += le64(tail, 0)
	case 7:
		c += byteAt(tail, 6) << 48
		fallthrough
	case 6:
		c += byteAt(tail, 5) << 40
		fallthrough
	case 5:
		c += byteAt(tail, 4) << 32
		fallthrough
	case 4:
		c += uint64(binary.LittleEndian.Uint32(tail[0:4]))
	case 3:
		c += byteAt(tail, 2) << 16
		fallthrough
	case 2:
		c += byteAt(tail, 1) << 8
		fallthrough
	case 1:
		c += byteAt(tail, 0)
	case 0:
		c += spookyConst
		d += spookyConst
	}

	a, b, c, d = shortEnd(a, b, c, d)

	return a, b
}

// ShortEndMix folds newBytes into an existing 128-bit running state using
// the short-message path, producing a new 128-bit state. This is the
// primitive header hashing uses to fold a child's already-finalized digest
// into a parent's running hash without restarting the whole incremental
// hasher.
func ShortEndMix(h1, h2 uint64, newBytes []byte) (uint64, uint64) {
	return short(h1, h2, newBytes)
}

// Spooky is an incremental SpookyHash V2 hasher. The zero value is not
// ready for use; call Init first.
type Spooky struct {
	data      [spookyBufSize]byte
	state     [spookyNumVars]uint64
	length    uint64
	remainder int
}

// NewSpooky returns an initialized incremental hasher.
func NewSpooky(seed1, seed2 uint64) *Spooky {
	s := &Spooky{}
	s.Init(seed1, seed2)

	return s
}

// Init (re)initializes the hasher with a pair of 64-bit seeds.
func (s *Spooky) Init(seed1, seed2 uint64) {
	s.length = 0
	s.remainder = 0
	s.state[0] = seed1
	s.state[1] = seed2
}

// Update feeds more bytes into the running hash. Safe to call any number
// of times before Finalize; the result is independent of how the input is
// chunked across calls.
func (s *Spooky) Update(message []byte) {
	newLength := len(message) + s.remainder

	if newLength < spookyBufSize {
		copy(s.data[s.remainder:], message)
		s.length += uint64(len(message))
		s.remainder = newLength

		return
	}

	var h [spookyNumVars]uint64
	if s.length < spookyBufSize {
		h[0], h[3], h[6], h[9] = s.state[0], s.state[0], s.state[0], s.state[0]
		h[1], h[4], h[7], h[10] = s.state[1], s.state[1], s.state[1], s.state[1]
		h[2], h[5], h[8], h[11] = spookyConst, spookyConst, spookyConst, spookyConst
	} else {
		h = s.state
	}
	s.length += uint64(len(message))

	pos := 0
	if s.remainder > 0 {
		prefix := spookyBufSize - s.remainder
		copy(s.data[s.remainder:], message[:prefix])
		h = mix(s.data[0:], h)
		h = mix(s.data[spookyBlockSize:], h)
		pos = prefix
	}

	remaining := message[pos:]
	fullBlocks := len(remaining) / spookyBlockSize
	for i := 0; i < fullBlocks; i++ {
		h = mix(remaining[i*spookyBlockSize:], h)
	}

	tailStart := fullBlocks * spookyBlockSize
	tailLen := len(remaining) - tailStart
	s.remainder = tailLen
	copy(s.data[0:], remaining[tailStart:])

	s.state = h
}

// Finalize returns the 128-bit digest of everything fed so far. The
// hasher's state is left valid for inspection but should not be reused
// without calling Init again.
func (s *Spooky) Finalize() (uint64, uint64) {
	if s.length < spookyBufSize {
		return short(s.state[0], s.state[1], s.data[:s.length])
	}

	data := s.data
	remainder := s.remainder
	h := s.state

	pos := 0
	if remainder >= spookyBlockSize {
		h = mix(data[0:], h)
		pos = spookyBlockSize
		remainder -= spookyBlockSize
	}

	var tail [spookyBlockSize]byte
	copy(tail[:], data[pos:pos+remainder])
	tail[spookyBlockSize-1] = byte(remainder)

	h = end(tail[:], h)

	return h[0], h[1]
}

// SpookyHash128 computes the one-shot SpookyHash V2 digest of message with
// the given seed pair. Equivalent to Init+Update+Finalize but avoids the
// incremental buffering overhead for inputs known up front.
func SpookyHash128(seed1, seed2 uint64, message []byte) (uint64, uint64) {
	if len(message) < spookyBufSize {
		return short(seed1, seed2, message)
	}

	h := [spookyNumVars]uint64{
		seed1, seed2, spookyConst, seed1,
		seed2, spookyConst, seed1, seed2,
		spookyConst, seed1, seed2, spookyConst,
	}

	fullBlocks := len(message) / spookyBlockSize
	for i := 0; i < fullBlocks; i++ {
		h = mix(message[i*spookyBlockSize:], h)
	}

	tailStart := fullBlocks * spookyBlockSize
	var tail [spookyBlockSize]byte
	copy(tail[:], message[tailStart:])
	tail[spookyBlockSize-1] = byte(len(message) - tailStart)

	h = end(tail[:], h)

	return h[0], h[1]
}
