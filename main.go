// Package main is the entry point for the exportscan CLI.
package main

import "exportscan.dev/pkg/exportscan/cmd"

func main() {
	cmd.Execute()
}
