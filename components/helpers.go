package components

import "github.com/suvrajeet01/hyperspy/model"

// copyParams copies value, bounds and free flag position-wise from src to
// dst. Twin links are intentionally not carried over; clones are used by
// parallel fit workers, which reject twinned parameters up front.
func copyParams(dst, src []*model.Parameter) {
	for i := range dst {
		min, max := src[i].Bounds()
		_ = dst[i].SetBounds(min, max)
		_ = dst[i].SetValue(src[i].Value())
		dst[i].SetFree(src[i].Free())
	}
}
