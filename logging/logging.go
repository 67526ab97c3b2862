package logging

import (
	"io"
	"log"
	"os"
)

// Init points the standard logger at stdout. When verbose is false all log
// output is discarded.
func Init(verbose bool) {
	if !verbose {
		log.SetOutput(io.Discard)
		return
	}
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}
