/*
Package seamcut is a content aware image resize library. It shrinks an
image by repeatedly removing the lowest importance one pixel wide path
(a seam), so the visually relevant parts survive long after a plain
rescale would have squashed them.

Three interchangeable seam finding strategies are provided: dynamic
programming (optimal), a greedy walk (fast, non optimal) and a
shortest path search over a layered graph (optimal, used as a cross
check for the DP result).

The package ships with a command line interface:

	$ seamcut -in image.jpg -out small.jpg -width 640 -method dp

For programmatic use the Processor covers the common cases:

	package main

	import (
		"log"
		"os"

		"github.com/seamcut/seamcut"
	)

	func main() {
		in, _ := os.Open("image.jpg")
		out, _ := os.Create("small.jpg")

		p := &seamcut.Processor{
			NewWidth: 640,
			Method:   seamcut.MethodDP,
		}
		if err := p.Process(in, out); err != nil {
			log.Fatalf("error rescaling image: %v", err)
		}
	}

Hosts that want to drive the engine one seam at a time (for live
previews or overlays) can use the Resizer directly: Energy, FindSeam
and Step expose each stage of the carve loop individually.
*/
package seamcut
