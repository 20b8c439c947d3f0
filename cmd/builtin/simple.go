package builtin

import (
	"fmt"
	"io"
	"runtime"
)

// Hello prints the console greeting.
func Hello(w io.Writer) func(argv []string) int {
	return func(argv []string) int {
		fmt.Fprint(w, "Hello World! Welcome to ESP32 console!\n")
		return 0
	}
}

// Status prints the heap figures of the running process.
func Status(w io.Writer) func(argv []string) int {
	return func(argv []string) int {
		var stats runtime.MemStats
		runtime.ReadMemStats(&stats)

		fmt.Fprint(w, "+--------------------------+\n")
		fmt.Fprint(w, "|     System Status        |\n")
		fmt.Fprint(w, "+--------------------------+\n")
		fmt.Fprintf(w, "|  Free heap:  %6d KB   |\n", (stats.HeapIdle-stats.HeapReleased)/1024)
		fmt.Fprintf(w, "|  Heap used:  %6d KB   |\n", stats.HeapAlloc/1024)
		fmt.Fprintf(w, "|  Go ver:     %-11s |\n", runtime.Version())
		fmt.Fprint(w, "+--------------------------+\n")
		return 0
	}
}

func About(w io.Writer) func(argv []string) int {
	return func(argv []string) int {
		fmt.Fprint(w, "CLI-API Basic Example\n")
		fmt.Fprint(w, "  A simplified API for console commands.\n")
		return 0
	}
}
