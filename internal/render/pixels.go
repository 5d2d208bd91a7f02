package render

// fillValueRGBA converts the first w*h items of a multi-channel pattern into
// RGBA pixels in buf. One channel is drawn as grey; two channels fill red
// and green; channels past the third are ignored.
func fillValueRGBA(buf []byte, values []float32, channels, w, h int) {
	if channels <= 0 {
		return
	}
	for i := 0; i < w*h && (i+1)*channels <= len(values); i++ {
		base := i * 4
		item := values[i*channels : (i+1)*channels]
		r := unorm8(item[0])
		g, b := r, r
		if channels > 1 {
			g = unorm8(item[1])
			b = 0
		}
		if channels > 2 {
			b = unorm8(item[2])
		}
		buf[base+0] = r
		buf[base+1] = g
		buf[base+2] = b
		buf[base+3] = 0xff
	}
}

// fillProfileRGBA draws profile as white columns on a black w*h canvas,
// scaled so the largest value spans the full height.
func fillProfileRGBA(buf []byte, profile []float64, w, h int) {
	for i := range buf {
		buf[i] = 0
	}
	if len(profile) == 0 || w <= 0 || h <= 0 {
		return
	}
	var peak float64
	for _, v := range profile {
		if v > peak {
			peak = v
		}
	}
	if peak <= 0 {
		return
	}
	for x := 0; x < w; x++ {
		v := profile[x*len(profile)/w]
		height := int(v / peak * float64(h))
		for y := h - height; y < h; y++ {
			base := (y*w + x) * 4
			buf[base+0] = 0xff
			buf[base+1] = 0xff
			buf[base+2] = 0xff
			buf[base+3] = 0xc0
		}
	}
}

func unorm8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xff
	}
	return uint8(v*255 + 0.5)
}
