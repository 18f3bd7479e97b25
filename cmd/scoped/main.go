// Package main is the entry point for the scoped CLI.
package main

import "gooze.dev/pkg/scoped/cmd"

func main() {
	cmd.Execute()
}
