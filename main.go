package main

import "github.com/theirongolddev/ccq/cmd"

func main() {
	cmd.Execute()
}
