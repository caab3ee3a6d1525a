package main

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/tlvproto/tlv/cmd/tlvcat/root"
)

func main() {
	if err := root.NewRootCmd().Execute(); err != nil {
		log.Error("tlvcat failed", "error", err)
		os.Exit(1)
	}
}
