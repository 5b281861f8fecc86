package main

import (
	"log"
	"os"

	"github.com/evolvlearn/portal/core"
	"github.com/evolvlearn/portal/services/backend"
	logsvc "github.com/evolvlearn/portal/services/logger"
	"github.com/evolvlearn/portal/services/tokenstore"
)

func main() {
	conf := core.NewConfig()

	stdLogger := log.New(os.Stderr, "EVOLV : ", log.LstdFlags)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)

	cli := commandLine{
		api:    backend.NewClient(conf, logger),
		store:  tokenstore.New(conf),
		logger: logger,
		out:    os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			stdLogger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
