package heap

// memoryModule returns the binary of a wasm module whose only content is one
// memory of pages initial pages and no maximum:
//
//	(module (memory <pages>))
func memoryModule(pages uint32) []byte {
	limits := append([]byte{0x00}, uleb128(pages)...)
	section := append(uleb128(1), limits...)

	bin := []byte{
		0x00, 0x61, 0x73, 0x6d, // magic
		0x01, 0x00, 0x00, 0x00, // version
		0x05, // memory section
	}
	bin = append(bin, uleb128(uint32(len(section)))...)
	bin = append(bin, section...)

	return bin
}

func uleb128(v uint32) (out []byte) {
	for {
		b := byte(v & 0x7f)
		v >>= 7

		if v == 0 {
			return append(out, b)
		}

		out = append(out, b|0x80)
	}
}
