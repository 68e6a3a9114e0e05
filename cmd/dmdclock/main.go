//go:build !tinygo

package main

import "dmdclock/cmd/dmdclock/cmd"

func main() {
	cmd.Execute()
}
