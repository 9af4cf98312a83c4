// Command mandv fits changepoint models to energy measurement data.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "mandv: %v\n", err)
		os.Exit(1)
	}
}
