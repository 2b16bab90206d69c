package main

import (
	"github.com/malchin/market/cmd"
)

func main() {
	cmd.Start()
}
