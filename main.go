package main

import (
	"fmt"
	"os"

	"github.com/codemill/errcodes/cmd"
)

var version = "dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Println("errcodes", version)
		return
	}
	cmd.RunCheck(os.Args[1:])
}
