package kernel

import (
	"encoding/binary"
	"math"
)

// Binary emission for the minimal core wasm modules fitness kernels need:
// one exported memory, one exported function "fitness" of type (i32) -> f64.

type buffer struct {
	bytes []byte
}

func (b *buffer) byte(v byte) {
	b.bytes = append(b.bytes, v)
}

func (b *buffer) raw(v []byte) {
	b.bytes = append(b.bytes, v...)
}

// u32 writes unsigned LEB128 encoding.
func (b *buffer) u32(v uint32) {
	for {
		byt := byte(v & 0x7F)
		v >>= 7
		if v != 0 {
			byt |= 0x80
		}
		b.byte(byt)
		if v == 0 {
			break
		}
	}
}

// i32 writes signed LEB128 encoding.
func (b *buffer) i32(v int32) {
	for {
		byt := byte(v & 0x7F)
		v >>= 7
		if (v == 0 && byt&0x40 == 0) || (v == -1 && byt&0x40 != 0) {
			b.byte(byt)
			break
		}
		b.byte(byt | 0x80)
	}
}

func (b *buffer) f64(v float64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
	b.raw(buf[:])
}

func (b *buffer) str(s string) {
	b.u32(uint32(len(s)))
	b.raw([]byte(s))
}

func (b *buffer) section(id byte, content *buffer) {
	b.byte(id)
	b.u32(uint32(len(content.bytes)))
	b.raw(content.bytes)
}

// Section ids and type markers.
const (
	sectionType   = 0x01
	sectionFunc   = 0x03
	sectionMemory = 0x05
	sectionExport = 0x07
	sectionCode   = 0x0A

	funcTypeMarker = 0x60
	valI32         = 0x7F
	valF64         = 0x7C
	blockVoid      = 0x40

	exportFunc   = 0x00
	exportMemory = 0x02
)

// Instruction opcodes (the subset fitness kernels use).
const (
	opBlock    = 0x02
	opLoop     = 0x03
	opEnd      = 0x0B
	opBr       = 0x0C
	opBrIf     = 0x0D
	opLocalGet = 0x20
	opLocalSet = 0x21
	opF64Load  = 0x2B
	opI32Const = 0x41
	opF64Const = 0x44
	opI32GeS   = 0x4E
	opI32Add   = 0x6A
	opI32Sub   = 0x6B
	opI32Mul   = 0x6C
	opF64Add   = 0xA0
	opF64Sub   = 0xA1
	opF64Mul   = 0xA2
)

// body accumulates a function's instruction stream. Local index 0 is the
// i32 dimension parameter, index 1 the i32 loop counter, indices 2 and up
// the f64 scratch locals declared through emitFitness.
type body struct {
	buf buffer
}

func (f *body) block() { f.buf.byte(opBlock); f.buf.byte(blockVoid) }
func (f *body) loop()  { f.buf.byte(opLoop); f.buf.byte(blockVoid) }
func (f *body) end()   { f.buf.byte(opEnd) }

func (f *body) br(d uint32)   { f.buf.byte(opBr); f.buf.u32(d) }
func (f *body) brIf(d uint32) { f.buf.byte(opBrIf); f.buf.u32(d) }

func (f *body) localGet(i uint32) { f.buf.byte(opLocalGet); f.buf.u32(i) }
func (f *body) localSet(i uint32) { f.buf.byte(opLocalSet); f.buf.u32(i) }

func (f *body) i32Const(v int32) { f.buf.byte(opI32Const); f.buf.i32(v) }
func (f *body) i32Add()          { f.buf.byte(opI32Add) }
func (f *body) i32Sub()          { f.buf.byte(opI32Sub) }
func (f *body) i32Mul()          { f.buf.byte(opI32Mul) }
func (f *body) i32GeS()          { f.buf.byte(opI32GeS) }

// f64Load loads a double from linear memory with natural alignment.
func (f *body) f64Load() {
	f.buf.byte(opF64Load)
	f.buf.u32(3) // alignment exponent
	f.buf.u32(0) // offset
}

func (f *body) f64Const(v float64) { f.buf.byte(opF64Const); f.buf.f64(v) }
func (f *body) f64Add()            { f.buf.byte(opF64Add) }
func (f *body) f64Sub()            { f.buf.byte(opF64Sub) }
func (f *body) f64Mul()            { f.buf.byte(opF64Mul) }

// loadX pushes x[idxLocal], reading 8 bytes per element from offset zero.
func (f *body) loadX(idxLocal uint32) {
	f.localGet(idxLocal)
	f.i32Const(8)
	f.i32Mul()
	f.f64Load()
}

// emitFitness assembles a complete module around the given body: an
// exported one-page memory holding the decision vector as packed f64s,
// and an exported function fitness(n: i32) -> f64. f64Locals is the number
// of f64 scratch locals the body uses; the body must leave its f64 result
// on the stack and must not emit the trailing end.
func emitFitness(f64Locals uint32, f *body) []byte {
	mod := &buffer{}
	mod.raw([]byte{0x00, 0x61, 0x73, 0x6D}) // magic
	mod.raw([]byte{0x01, 0x00, 0x00, 0x00}) // version

	// Type section: (i32) -> f64
	sec := &buffer{}
	sec.u32(1)
	sec.byte(funcTypeMarker)
	sec.u32(1)
	sec.byte(valI32)
	sec.u32(1)
	sec.byte(valF64)
	mod.section(sectionType, sec)

	// Function section: one function of type 0.
	sec = &buffer{}
	sec.u32(1)
	sec.u32(0)
	mod.section(sectionFunc, sec)

	// Memory section: one page, no maximum.
	sec = &buffer{}
	sec.u32(1)
	sec.byte(0x00)
	sec.u32(1)
	mod.section(sectionMemory, sec)

	// Export section: memory and the fitness function.
	sec = &buffer{}
	sec.u32(2)
	sec.str("memory")
	sec.byte(exportMemory)
	sec.u32(0)
	sec.str("fitness")
	sec.byte(exportFunc)
	sec.u32(0)
	mod.section(sectionExport, sec)

	// Code section: locals declaration plus the body.
	code := &buffer{}
	code.u32(2) // two local groups
	code.u32(1)
	code.byte(valI32)
	code.u32(f64Locals)
	code.byte(valF64)
	code.raw(f.buf.bytes)
	code.byte(opEnd)

	sec = &buffer{}
	sec.u32(1)
	sec.u32(uint32(len(code.bytes)))
	sec.raw(code.bytes)
	mod.section(sectionCode, sec)

	return mod.bytes
}
