package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-i2p/logger"

	"github.com/tungsten-replicator/configure-service/lib/cli"
)

var log = logger.GetGoI2PLogger()

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.Execute(ctx, os.Args[1:])
	stop()
	if err != nil {
		log.WithError(err).Debug("configure-service failed")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
