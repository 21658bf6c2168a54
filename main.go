// File: greengarden/main.go
package main

import "greengarden/cli"

func main() {
	cli.Execute()
}
