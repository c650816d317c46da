/*
Package artfx is an image processing library which turns photos into artwork: stained
glass, oil painting, watercolor, pencil sketch, mosaic, comic book, crosshatch and
pointillism, with an optional vignette on top.

Every effect works on a Buffer, an interleaved RGBA raster, never writes into its input and
ends by blending the computed image with the original by the requested intensity.

The package provides a command line utility supporting various customization options.
Check the supported commands by typing:

	$ artfx --help

Example to apply a single style to a buffer:

	package main

	import (
		"github.com/esimov/artfx"
	)

	func main() {
		buf := artfx.FromImage(srcImg)
		out := artfx.Apply(buf, artfx.StyleStainedGlass, 80, artfx.Options{
			"cellSize":    24,
			"borderColor": "#202020",
			"seed":        42,
		})
		_ = out.NRGBA()
	}

Example to decode, process and encode an image with a vignette:

	package main

	import (
		"context"
		"fmt"
		"os"

		"github.com/disintegration/imaging"
		"github.com/esimov/artfx"
	)

	func main() {
		p := &artfx.Processor{
			Style:     artfx.StyleWatercolor,
			Intensity: 100,
			Vignette:  60,
		}
		in, _ := os.Open("in.jpg")
		out, _ := os.Create("out.png")
		if err := p.Process(context.Background(), in, out, imaging.PNG); err != nil {
			fmt.Printf("Error on processing: %s", err.Error())
		}
	}
*/
package artfx
