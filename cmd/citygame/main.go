package main

import (
	"os"

	"github.com/spf13/cobra"
)

const releaseVersion = "0.1.0"

func main() {
	cfg := &Config{}
	cobra.CheckErr(newCmd(cfg, os.Stdin, os.Stdout).Execute())
}
