package main

import (
	"github.com/SumanthCsy/Mens-Club-sub000/app/cmd"
)

func main() {
	cmd.RunCli()
}
