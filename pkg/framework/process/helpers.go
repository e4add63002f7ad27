package process

// ProcessChannels calls fn for each input/output pair of a 32-bit block.
// Disconnected channels are skipped.
func (ctx *Context) ProcessChannels(fn func(ch int, input, output []float32)) {
	for ch := range min(len(ctx.Input), len(ctx.Output)) {
		if ctx.Input[ch] == nil || ctx.Output[ch] == nil {
			continue
		}
		fn(ch, ctx.Input[ch], ctx.Output[ch])
	}
}

// ProcessChannels64 is ProcessChannels for a 64-bit block.
func (ctx *Context) ProcessChannels64(fn func(ch int, input, output []float64)) {
	for ch := range min(len(ctx.Input64), len(ctx.Output64)) {
		if ctx.Input64[ch] == nil || ctx.Output64[ch] == nil {
			continue
		}
		fn(ch, ctx.Input64[ch], ctx.Output64[ch])
	}
}

// GetNumChannels returns the minimum of input and output channels
func (ctx *Context) GetNumChannels() int {
	return min(ctx.NumInputChannels(), ctx.NumOutputChannels())
}
