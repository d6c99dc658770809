// Package main is the entry point for the modelgate CLI.
package main

func main() {
	Execute()
}
