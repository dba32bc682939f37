package scs

import "encoding/binary"

// lengthMarkerSize is the size of the body length stored in front of the
// body inside the encrypted buffer.
const lengthMarkerSize = 4

// frameCapacity returns the working buffer capacity needed for a body of at
// most bodyBound bytes: length marker, body and one block of padding.
func frameCapacity(bodyBound, blockSize int) int {
	return lengthMarkerSize + bodyBound + blockSize
}

// pad zero-fills buf up to the next multiple of blockSize. Block-aligned
// input is returned unchanged. The padded length must fit in cap(buf).
func pad(blockSize int, buf []byte) ([]byte, error) {
	rem := len(buf) % blockSize
	if rem == 0 {
		return buf, nil
	}
	padLen := blockSize - rem
	if len(buf)+padLen > cap(buf) {
		return nil, ErrMem
	}
	n := len(buf)
	buf = buf[:n+padLen]
	clear(buf[n:])
	return buf, nil
}

// putLength writes the body length marker at the start of buf.
func putLength(buf []byte, bodyLen int) {
	binary.BigEndian.PutUint32(buf[:lengthMarkerSize], uint32(bodyLen))
}

// unpad returns the body of a decrypted buffer. The length marker must fit
// and every fill byte after the body must be zero.
func unpad(buf []byte) ([]byte, error) {
	if len(buf) < lengthMarkerSize {
		return nil, ErrMalformedToken
	}
	bodyLen := binary.BigEndian.Uint32(buf[:lengthMarkerSize])
	if uint64(bodyLen) > uint64(len(buf)-lengthMarkerSize) {
		return nil, ErrMalformedToken
	}
	end := lengthMarkerSize + int(bodyLen)
	var acc byte
	for _, b := range buf[end:] {
		acc |= b
	}
	if acc != 0 {
		return nil, ErrMalformedToken
	}
	return buf[lengthMarkerSize:end], nil
}
