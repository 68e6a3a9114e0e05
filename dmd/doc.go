// Package dmd provides the dot bitmaps drawn on the clock's dot-matrix display.
//
// Every dot holds a 4-bit intensity level (0-15). Dots are stored two per byte,
// high nibble first, the same packing the display controller expects:
//
//	Dots:   0  1  2  3
//	Levels: 5  10 3  12
//	Bytes:  0x5A  0x3C
//
// A Dotmap is both an image.Image and a tinygo drivers.Displayer, so tinyfont can
// rasterize text straight into it and the host window can scale it with image/draw.
//
// The display itself is a Frame: a 128x32 Dotmap composed from scratch every frame.
//
//	frame := dmd.NewFrame()
//	bar := dmd.New(68, 8)
//	bar.Fill(5)
//	frame.DotBlt(bar, 0, 0, bar.Width(), bar.Height(), 30, 12)
package dmd
