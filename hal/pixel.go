package hal

// bgrxToRGBA converts a strided BGRX frame into tightly packed RGBA with
// opaque alpha. dst must hold width*height*4 bytes.
func bgrxToRGBA(dst, src []byte, width, height, stride int) {
	for y := 0; y < height; y++ {
		row := src[y*stride : y*stride+width*4]
		out := dst[y*width*4 : (y+1)*width*4]
		for i := 0; i+3 < len(row); i += 4 {
			out[i+0] = row[i+2]
			out[i+1] = row[i+1]
			out[i+2] = row[i+0]
			out[i+3] = 0xFF
		}
	}
}

// bgrxAt returns the red, green and blue bytes of one pixel.
func bgrxAt(src []byte, stride, x, y int) (r, g, b uint8) {
	off := y*stride + x*4
	return src[off+2], src[off+1], src[off]
}
