package main

import (
	"fmt"
	"os"

	"tablecrm_cashier/internal"
)

func main() {
	if err := internal.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
