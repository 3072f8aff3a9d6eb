package main

import (
	"github.com/Rakhulsr/go-ecommerce-api/app/cmd"
)

func main() {
	cmd.RunCli()
}
