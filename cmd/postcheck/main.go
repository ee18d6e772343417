package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
)

const usage = `usage: postcheck [run] [flags]
       postcheck serve [flags]
       postcheck init-config [flags]

Run "postcheck <command> -h" for the flags of a command.
`

func main() {
	args := os.Args[1:]
	cmd := "run"
	if len(args) > 0 {
		switch args[0] {
		case "run", "serve", "init-config":
			cmd, args = args[0], args[1:]
		case "help", "-h", "-help", "--help":
			fmt.Fprint(os.Stderr, usage)
			return
		}
	}

	var err error
	switch cmd {
	case "serve":
		err = serveCmd(args)
	case "init-config":
		err = initConfigCmd(args)
	default:
		err = runCmd(args, os.Stdout)
	}

	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("[%s] %v", cmd, err)
	}
}
